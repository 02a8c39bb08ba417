// Package mcp provides the MCP server implementation for LLM-driven lint
// triage.
package mcp

// RunInfo contains lint run metadata.
type RunInfo struct {
	Root        string `json:"root"`
	ExitCode    int    `json:"exit_code"`
	Status      string `json:"status"`
	FilesTotal  int    `json:"files_total"`
	FilesCached int    `json:"files_cached"`
	Timestamp   string `json:"timestamp"`
}

// Finding is a deduplicated, LLM-ready lint finding.
type Finding struct {
	ID         string  `json:"id"`
	Message    string  `json:"message"`
	Pattern    string  `json:"pattern"`
	Severity   string  `json:"severity"`
	Code       string  `json:"code"`
	Symbol     string  `json:"symbol,omitempty"`
	Path       string  `json:"path"`
	Line       int     `json:"line"`
	Column     int     `json:"column"`
	Weight     float64 `json:"weight"`
	Recurrence int     `json:"recurrence"`
}

// FindingSummary is a lightweight reference to a finding; drill in with
// get_finding_details.
type FindingSummary struct {
	ID       string `json:"id"`
	Tier     int    `json:"tier"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Path     string `json:"path"`
}

// TieredFindings groups findings by tier before manifest conversion.
type TieredFindings struct {
	Blocking []Finding
	Style    []Finding
}

// ManifestResponse is the lint_path tool response. Blocking findings are
// fully expanded; style findings are summarized to keep token usage down.
type ManifestResponse struct {
	RequestID        string           `json:"request_id"`
	Run              RunInfo          `json:"run"`
	BlockingFindings []Finding        `json:"blocking_findings"`
	StyleFindings    []FindingSummary `json:"style_findings"`
	Truncated        bool             `json:"truncated,omitempty"`
}
