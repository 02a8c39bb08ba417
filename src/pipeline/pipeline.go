// Package pipeline wires discovery, lint execution, analysis and ranking
// together. It is used by the CLI, the agents, and the MCP server.
package pipeline

import (
	"crypto/rand"
	"encoding/hex"
)

// Mode selects how a lint request is executed.
type Mode int

const (
	// LocalMode runs the whole pipeline in-process.
	LocalMode Mode = iota

	// DistributedMode submits requests to Kafka for the lint and analysis
	// agents to process.
	DistributedMode
)

func (m Mode) String() string {
	if m == DistributedMode {
		return "distributed"
	}
	return "local"
}

// Config carries the pipeline-relevant configuration.
type Config struct {
	KafkaBrokers []string
	PostgresDSN  string
	PylintBin    string
	CacheDir     string
}

// DetectMode selects distributed mode when brokers are configured.
func DetectMode(cfg *Config) Mode {
	if len(cfg.KafkaBrokers) > 0 {
		return DistributedMode
	}
	return LocalMode
}

// NewRequestID generates a random request identifier.
func NewRequestID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "req-00000000"
	}
	return "req-" + hex.EncodeToString(buf)
}
