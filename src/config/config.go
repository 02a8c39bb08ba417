// Package config provides configuration management for the lintwell application.
package config

import (
	"os"
	"strings"
)

// Config holds the application configuration.
type Config struct {
	// PylintBin is the pylint executable to invoke. Defaults to "pylint"
	// resolved via PATH.
	PylintBin string

	// KafkaBrokers is the list of Kafka/Redpanda seed brokers. When empty,
	// the pipeline runs in local (in-process) mode.
	KafkaBrokers []string

	// PostgresDSN is the connection string for the findings store. Optional
	// in local mode.
	PostgresDSN string

	// CacheDir is the directory for the incremental result cache. Defaults
	// to ".lintwell" under the lint root.
	CacheDir string
}

// LoadFromEnv loads configuration from environment variables.
// All variables are optional; zero values select local-mode defaults.
func LoadFromEnv() *Config {
	cfg := &Config{
		PylintBin:   os.Getenv("PYLINT_BIN"),
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		CacheDir:    os.Getenv("LINTWELL_CACHE_DIR"),
	}

	if cfg.PylintBin == "" {
		cfg.PylintBin = "pylint"
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	return cfg
}

// Distributed reports whether the configuration selects distributed mode.
func (c *Config) Distributed() bool {
	return len(c.KafkaBrokers) > 0
}
