package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lintwell/src/analyze"
	"lintwell/src/broker"
	"lintwell/src/contracts"
	"lintwell/src/ingest"
	"lintwell/src/logger"
	"lintwell/src/runner"
	"lintwell/src/store"
)

// Distributed submits lint requests to Kafka and can host the agents
// in-process for single-binary deployments.
type Distributed struct {
	broker broker.Broker
	store  store.Store
	cfg    *Config
	log    logger.Logger
}

// NewDistributed connects to the configured brokers and, when a DSN is
// set, to Postgres.
func NewDistributed(cfg *Config, log logger.Logger) (*Distributed, error) {
	if log == nil {
		log = logger.NewSilentLogger()
	}

	brk, err := broker.NewKafka(cfg.KafkaBrokers, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to brokers: %w", err)
	}

	var st store.Store
	if cfg.PostgresDSN != "" {
		pg, err := store.NewPostgres(cfg.PostgresDSN)
		if err != nil {
			brk.Close()
			return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
		if err := pg.EnsureSchema(context.Background()); err != nil {
			pg.Close()
			brk.Close()
			return nil, err
		}
		st = pg
	}

	return &Distributed{broker: brk, store: st, cfg: cfg, log: log}, nil
}

// Submit publishes a lint request and records it in the store.
func (d *Distributed) Submit(ctx context.Context, root string, passthrough []string) (string, error) {
	requestID := NewRequestID()

	request := contracts.LintRequest{
		RequestID:       requestID,
		Root:            root,
		PassthroughArgs: passthrough,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
	payload, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	if d.store != nil {
		if err := d.store.CreateRun(ctx, requestID, root); err != nil {
			return "", err
		}
	}
	if err := d.broker.Publish(ctx, contracts.TopicRequests, requestID, payload); err != nil {
		return "", fmt.Errorf("failed to publish request: %w", err)
	}
	return requestID, nil
}

// StartAgents runs the lint and analysis agents as goroutines on this
// pipeline's broker. Used by the combined agent binary.
func (d *Distributed) StartAgents(ctx context.Context) {
	lintAgent := ingest.NewAgent(d.broker, runner.New(d.cfg.PylintBin), d.store, d.log)
	go func() {
		if err := lintAgent.Run(ctx); err != nil && err != context.Canceled {
			d.log.Error("[Pipeline] Lint agent error: %v", err)
		}
	}()

	analysisAgent := analyze.NewAgent(d.broker, d.store, d.log)
	go func() {
		if err := analysisAgent.Run(ctx); err != nil && err != context.Canceled {
			d.log.Error("[Pipeline] Analysis agent error: %v", err)
		}
	}()
}

// Store returns the configured store, or nil.
func (d *Distributed) Store() store.Store {
	return d.store
}

// Broker returns the underlying broker.
func (d *Distributed) Broker() broker.Broker {
	return d.broker
}

// Close releases the broker and store connections.
func (d *Distributed) Close() error {
	var firstErr error
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			firstErr = err
		}
	}
	if err := d.broker.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
