package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"lintwell/src/broker"
	"lintwell/src/contracts"
	"lintwell/src/discover"
	"lintwell/src/logger"
	"lintwell/src/runner"
	"lintwell/src/store"
)

// Agent consumes lint requests, runs the linter, and publishes raw output
// chunks for the analysis agent.
type Agent struct {
	broker broker.Broker
	runner *runner.Runner
	store  store.Store
	logger logger.Logger
}

// NewAgent creates a lint agent. store may be nil when no persistence is
// configured.
func NewAgent(brk broker.Broker, run *runner.Runner, st store.Store, log logger.Logger) *Agent {
	return &Agent{
		broker: brk,
		runner: run,
		store:  st,
		logger: log,
	}
}

// Run starts the agent's main loop. It subscribes to lintwell.requests and
// processes incoming lint requests until the context ends.
func (a *Agent) Run(ctx context.Context) error {
	a.logger.Info("[LintAgent] Starting...")

	msgChan, err := a.broker.Subscribe(ctx, contracts.TopicRequests, "lintwell-ingest")
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", contracts.TopicRequests, err)
	}

	a.logger.Info("[LintAgent] Listening for requests on '%s' topic...", contracts.TopicRequests)

	for {
		select {
		case msg, ok := <-msgChan:
			if !ok {
				a.logger.Info("[LintAgent] Message channel closed, shutting down")
				return nil
			}
			if err := a.processRequest(ctx, msg); err != nil {
				a.logger.Error("[LintAgent] Error processing request: %v", err)
			}

		case <-ctx.Done():
			a.logger.Info("[LintAgent] Context cancelled, shutting down")
			return ctx.Err()
		}
	}
}

// processRequest lints the requested root and publishes the output chunks.
func (a *Agent) processRequest(ctx context.Context, msg broker.Message) error {
	var request contracts.LintRequest
	if err := json.Unmarshal(msg.Value, &request); err != nil {
		return fmt.Errorf("failed to unmarshal request: %w", err)
	}

	a.logger.Info("[LintAgent] Processing request %s (root: %s)", request.RequestID, request.Root)
	a.setStatus(ctx, &request, "processing", 0, 0)

	files, err := discover.Files(request.Root, discover.Options{})
	if err != nil {
		a.setStatus(ctx, &request, "failed", 0, 0)
		return fmt.Errorf("discovery failed for %s: %w", request.Root, err)
	}
	if len(files) == 0 {
		a.logger.Info("[LintAgent] No Python files under %s", request.Root)
		a.setStatus(ctx, &request, "completed", 0, 0)
		return nil
	}

	a.logger.Info("[LintAgent] Linting %d files", len(files))

	result, err := a.runner.Run(ctx, request.Root, files, request.PassthroughArgs)
	if err != nil {
		a.setStatus(ctx, &request, "failed", 0, 0)
		return fmt.Errorf("lint run failed: %w", err)
	}

	metadata := map[string]string{
		"root":       request.Root,
		"file_count": strconv.Itoa(len(files)),
		"exit_code":  strconv.Itoa(result.ExitCode),
	}

	chunks := ChunkOutput(result.Output, request.RequestID, request.Root, result.ExitCode, metadata)
	a.logger.Info("[LintAgent] Publishing %d output chunks (exit: %s)",
		len(chunks), runner.DecodeStatus(result.ExitCode))

	for _, chunk := range chunks {
		payload, err := json.Marshal(chunk)
		if err != nil {
			return fmt.Errorf("failed to marshal chunk %d: %w", chunk.ChunkIndex, err)
		}
		if err := a.broker.Publish(ctx, contracts.TopicOutputRaw, request.RequestID, payload); err != nil {
			return fmt.Errorf("failed to publish chunk %d: %w", chunk.ChunkIndex, err)
		}
	}

	a.setStatus(ctx, &request, "processing", len(chunks), result.ExitCode)
	return nil
}

// setStatus records run progress when a store is configured.
func (a *Agent) setStatus(ctx context.Context, request *contracts.LintRequest, state string, chunks, exitCode int) {
	if a.store == nil {
		return
	}
	if err := a.store.CreateRun(ctx, request.RequestID, request.Root); err != nil {
		a.logger.Error("[LintAgent] Failed to create run record: %v", err)
		return
	}
	status := &contracts.RunStatus{
		RequestID:   request.RequestID,
		Root:        request.Root,
		Status:      state,
		ChunksTotal: chunks,
		ExitCode:    exitCode,
	}
	if err := a.store.UpdateRunStatus(ctx, status); err != nil {
		a.logger.Error("[LintAgent] Failed to update run status: %v", err)
	}
}
