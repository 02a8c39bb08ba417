package analyze

import (
	"context"
	"encoding/json"
	"fmt"

	"lintwell/src/broker"
	"lintwell/src/contracts"
	"lintwell/src/logger"
	"lintwell/src/store"
)

// Agent consumes raw output chunks, analyzes them, publishes findings, and
// persists them when a store is configured.
type Agent struct {
	broker broker.Broker
	store  store.Store
	logger logger.Logger

	// chunksSeen tracks per-request progress for status updates.
	chunksSeen map[string]int
	findings   map[string]int
}

// NewAgent creates an analysis agent. store may be nil.
func NewAgent(brk broker.Broker, st store.Store, log logger.Logger) *Agent {
	return &Agent{
		broker:     brk,
		store:      st,
		logger:     log,
		chunksSeen: make(map[string]int),
		findings:   make(map[string]int),
	}
}

// Run starts the agent's main loop, consuming lintwell.output.raw until the
// context ends.
func (a *Agent) Run(ctx context.Context) error {
	a.logger.Info("[AnalyzeAgent] Starting...")

	msgChan, err := a.broker.Subscribe(ctx, contracts.TopicOutputRaw, "lintwell-analyze")
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", contracts.TopicOutputRaw, err)
	}

	a.logger.Info("[AnalyzeAgent] Listening for chunks on '%s' topic...", contracts.TopicOutputRaw)

	for {
		select {
		case msg, ok := <-msgChan:
			if !ok {
				a.logger.Info("[AnalyzeAgent] Message channel closed, shutting down")
				return nil
			}
			if err := a.processChunk(ctx, msg); err != nil {
				a.logger.Error("[AnalyzeAgent] Error processing chunk: %v", err)
			}

		case <-ctx.Done():
			a.logger.Info("[AnalyzeAgent] Context cancelled, shutting down")
			return ctx.Err()
		}
	}
}

// processChunk analyzes one chunk and publishes its cards.
func (a *Agent) processChunk(ctx context.Context, msg broker.Message) error {
	var chunk contracts.OutputChunk
	if err := json.Unmarshal(msg.Value, &chunk); err != nil {
		return fmt.Errorf("failed to unmarshal chunk: %w", err)
	}

	a.logger.Debug("[AnalyzeAgent] Analyzing chunk %d/%d of request %s",
		chunk.ChunkIndex+1, chunk.TotalChunks, chunk.RequestID)

	cards, err := AnalyzeChunk(chunk)
	if err != nil {
		return err
	}

	for i := range cards {
		payload, err := json.Marshal(cards[i])
		if err != nil {
			return fmt.Errorf("failed to marshal card: %w", err)
		}
		if err := a.broker.Publish(ctx, contracts.TopicFindings, chunk.RequestID, payload); err != nil {
			return fmt.Errorf("failed to publish finding: %w", err)
		}
		if a.store != nil {
			if err := a.store.SaveFinding(ctx, &cards[i]); err != nil {
				a.logger.Error("[AnalyzeAgent] Failed to save finding: %v", err)
			}
		}
	}

	a.chunksSeen[chunk.RequestID]++
	a.findings[chunk.RequestID] += len(cards)
	a.updateStatus(ctx, chunk)
	return nil
}

// updateStatus marks the run completed once every chunk has been analyzed.
func (a *Agent) updateStatus(ctx context.Context, chunk contracts.OutputChunk) {
	if a.store == nil {
		return
	}

	state := "processing"
	if a.chunksSeen[chunk.RequestID] >= chunk.TotalChunks {
		state = "completed"
	}

	status := &contracts.RunStatus{
		RequestID:       chunk.RequestID,
		Root:            chunk.Root,
		Status:          state,
		ChunksTotal:     chunk.TotalChunks,
		ChunksProcessed: a.chunksSeen[chunk.RequestID],
		FindingsCount:   a.findings[chunk.RequestID],
		ExitCode:        chunk.ExitCode,
	}
	if err := a.store.UpdateRunStatus(ctx, status); err != nil {
		a.logger.Error("[AnalyzeAgent] Failed to update run status: %v", err)
	}
}
