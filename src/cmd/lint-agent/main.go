// Package main provides the standalone lint agent binary.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lintwell/src/broker"
	"lintwell/src/config"
	"lintwell/src/ingest"
	"lintwell/src/logger"
	"lintwell/src/runner"
	"lintwell/src/store"
)

func main() {
	cfg := config.LoadFromEnv()

	if !cfg.Distributed() {
		fmt.Fprintln(os.Stderr, "ERROR: KAFKA_BROKERS environment variable is required for the lint agent")
		fmt.Fprintln(os.Stderr, "Example: export KAFKA_BROKERS=localhost:19092")
		os.Exit(1)
	}

	log := logger.NewConsoleLogger()

	log.Info("Starting Lintwell Lint Agent")
	log.Info("Kafka brokers: %v", cfg.KafkaBrokers)

	brk, err := broker.NewKafka(cfg.KafkaBrokers, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create broker: %v\n", err)
		os.Exit(1)
	}
	defer brk.Close()

	var st store.Store
	if cfg.PostgresDSN != "" {
		pg, err := store.NewPostgres(cfg.PostgresDSN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to connect to Postgres: %v\n", err)
			os.Exit(1)
		}
		defer pg.Close()
		if err := pg.EnsureSchema(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to prepare schema: %v\n", err)
			os.Exit(1)
		}
		st = pg
	}

	agent := ingest.NewAgent(brk, runner.New(cfg.PylintBin), st, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("Shutdown signal received, stopping agent...")
		cancel()
	}()

	log.Info("Lint agent started, waiting for requests...")
	if err := agent.Run(ctx); err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "Agent error: %v\n", err)
		os.Exit(1)
	}

	log.Info("Lint agent stopped")
}
