package logger

import (
	"fmt"
	"io"
	"os"
)

// Logger is the logging interface used by the agents and pipelines.
type Logger interface {
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
}

// ConsoleLogger writes human-readable logs to stderr. stdout is reserved
// for lint results so that `lintwell run` output stays machine-readable.
// Debug lines are emitted only when LINTWELL_DEBUG is set.
type ConsoleLogger struct {
	out   io.Writer
	debug bool
}

func NewConsoleLogger() *ConsoleLogger {
	return &ConsoleLogger{
		out:   os.Stderr,
		debug: os.Getenv("LINTWELL_DEBUG") != "",
	}
}

func (c *ConsoleLogger) Info(msg string, args ...interface{}) {
	fmt.Fprintf(c.out, "[INFO] "+msg+"\n", args...)
}

func (c *ConsoleLogger) Error(msg string, args ...interface{}) {
	fmt.Fprintf(c.out, "[ERROR] "+msg+"\n", args...)
}

func (c *ConsoleLogger) Debug(msg string, args ...interface{}) {
	if !c.debug {
		return
	}
	fmt.Fprintf(c.out, "[DEBUG] "+msg+"\n", args...)
}

// SilentLogger discards all log messages. Used in TUI mode and under the
// MCP stdio server, where stray output would corrupt the display or the
// protocol stream.
type SilentLogger struct{}

func NewSilentLogger() *SilentLogger {
	return &SilentLogger{}
}

func (s *SilentLogger) Info(msg string, args ...interface{})  {}
func (s *SilentLogger) Error(msg string, args ...interface{}) {}
func (s *SilentLogger) Debug(msg string, args ...interface{}) {}
