// Package contracts defines the message types exchanged between lintwell agents.
package contracts

import "strconv"

// LintRequest asks the agents to lint a source tree.
// Published to: lintwell.requests
// Key: {request_id}
type LintRequest struct {
	RequestID string `json:"request_id"`
	// Root is the directory to discover Python files under.
	Root string `json:"root"`
	// PassthroughArgs are forwarded to the pylint invocation unchanged.
	PassthroughArgs []string `json:"passthrough_args,omitempty"`
	Timestamp       string   `json:"timestamp"`
}

// OutputChunk carries a slice of raw linter output.
// Published to: lintwell.output.raw
// Key: {request_id}
type OutputChunk struct {
	RequestID   string            `json:"request_id"`
	Root        string            `json:"root"`
	ChunkIndex  int               `json:"chunk_index"`
	TotalChunks int               `json:"total_chunks"`
	Content     string            `json:"content"`
	// LineStart and LineEnd are 1-indexed positions within the full output.
	LineStart int               `json:"line_start"`
	LineEnd   int               `json:"line_end"`
	ExitCode  int               `json:"exit_code"`
	Metadata  map[string]string `json:"metadata"`
}

// LintCard is one analyzed diagnostic, ready for ranking and display.
// Published to: lintwell.findings
// Key: {request_id}
type LintCard struct {
	// Identity
	ID          string `json:"id"`
	RequestID   string `json:"request_id"`
	MessageHash string `json:"message_hash"`

	// Location
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Column int    `json:"column"`

	// Diagnostic
	Code     string `json:"code"`   // e.g. "E1101"
	Symbol   string `json:"symbol"` // e.g. "no-member"
	Severity string `json:"severity"`

	// Content
	RawMessage    string `json:"raw_message"`
	NormalizedMsg string `json:"normalized_message"`
	// SeverityWeight determines rank order within a tier (0.0 to 1.0).
	SeverityWeight float64 `json:"severity_weight"`

	Metadata  map[string]string `json:"metadata"`
	Timestamp string            `json:"timestamp"`
}

// GetRecurrenceCount returns how many times this diagnostic pattern was seen.
// Defaults to 1 when the analyzer recorded no count.
func (c LintCard) GetRecurrenceCount() int {
	if c.Metadata == nil {
		return 1
	}
	if v, ok := c.Metadata["recurrence_count"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 1
}

// RunStatus tracks the lifecycle of a lint request.
type RunStatus struct {
	RequestID       string
	Root            string
	Status          string // pending, processing, completed, failed
	ChunksTotal     int
	ChunksProcessed int
	FindingsCount   int
	ExitCode        int
}

// Topic names used by the distributed pipeline.
const (
	// TopicRequests carries lint requests.
	TopicRequests = "lintwell.requests"

	// TopicOutputRaw carries raw pylint output chunks (~500KB each).
	TopicOutputRaw = "lintwell.output.raw"

	// TopicFindings carries analyzed lint cards.
	TopicFindings = "lintwell.findings"
)
