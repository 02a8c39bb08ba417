// Package main provides the standalone analysis agent binary.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lintwell/src/analyze"
	"lintwell/src/broker"
	"lintwell/src/config"
	"lintwell/src/logger"
	"lintwell/src/store"
)

func main() {
	cfg := config.LoadFromEnv()

	if !cfg.Distributed() {
		fmt.Fprintln(os.Stderr, "ERROR: KAFKA_BROKERS environment variable is required for the analyze agent")
		fmt.Fprintln(os.Stderr, "Example: export KAFKA_BROKERS=localhost:19092")
		os.Exit(1)
	}

	log := logger.NewConsoleLogger()

	log.Info("Starting Lintwell Analyze Agent")
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
		if err := pg.EnsureSchema(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to prepare schema: %v\n", err)
			os.Exit(1)
		}
		defer pg.Close()
		st = pg
	}

	agent := analyze.NewAgent(brk, st, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("Shutdown signal received, stopping agent...")
		cancel()
	}()

	log.Info("Analyze agent started, waiting for chunks...")
	if err := agent.Run(ctx); err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "Agent error: %v\n", err)
		os.Exit(1)
	}

	log.Info("Analyze agent stopped")
}
