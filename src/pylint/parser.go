// Package pylint parses pylint output into structured diagnostics.
// Both the default "parseable" text format and --output-format=json are
// supported; the text format is what CI logs contain.
package pylint

import (
	"bufio"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Diagnostic is one message emitted by pylint.
type Diagnostic struct {
	Path    string
	Line    int
	Column  int
	Code    string // message id, e.g. "E1101"
	Symbol  string // symbolic name, e.g. "no-member"
	Message string
}

// parseableLine matches pylint's parseable/text output:
//
//	gnomad_qc/v3/create_release.py:42:8: E1101: Instance of 'X' has no 'y' member (no-member)
//
// The trailing symbol is optional (older pylint versions omit it).
var parseableLine = regexp.MustCompile(`^(.+?):(\d+):(\d+): ([FEWRCI]\d{4}): (.*?)(?: \(([a-z0-9-]+)\))?$`)

// jsonMessage mirrors one entry of pylint's JSON output format.
type jsonMessage struct {
	Type      string `json:"type"`
	Module    string `json:"module"`
	Path      string `json:"path"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	MessageID string `json:"message-id"`
	Symbol    string `json:"symbol"`
	Message   string `json:"message"`
}

// Parse parses pylint output, auto-detecting JSON versus text format.
// Non-diagnostic lines (module headers, score summary) are skipped.
func Parse(data []byte) ([]Diagnostic, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, "[") {
		return parseJSON([]byte(trimmed))
	}
	return parseText(trimmed), nil
}

// parseJSON parses --output-format=json output.
func parseJSON(data []byte) ([]Diagnostic, error) {
	var messages []jsonMessage
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse pylint JSON output: %w", err)
	}

	diags := make([]Diagnostic, 0, len(messages))
	for _, m := range messages {
		diags = append(diags, Diagnostic{
			Path:    m.Path,
			Line:    m.Line,
			Column:  m.Column,
			Code:    m.MessageID,
			Symbol:  m.Symbol,
			Message: m.Message,
		})
	}
	return diags, nil
}

// parseText parses the default text output line by line.
func parseText(content string) []Diagnostic {
	var diags []Diagnostic

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		d, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		diags = append(diags, d)
	}
	return diags
}

// ParseLine parses a single parseable-format line. The second return value
// is false for headers, separators, and the score summary.
func ParseLine(line string) (Diagnostic, bool) {
	m := parseableLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if m == nil {
		return Diagnostic{}, false
	}

	lineNo, err := strconv.Atoi(m[2])
	if err != nil {
		return Diagnostic{}, false
	}
	col, err := strconv.Atoi(m[3])
	if err != nil {
		return Diagnostic{}, false
	}

	return Diagnostic{
		Path:    m[1],
		Line:    lineNo,
		Column:  col,
		Code:    m[4],
		Symbol:  m[6],
		Message: m[5],
	}, true
}

// Location renders the path:line:column form used in displays.
func (d Diagnostic) Location() string {
	return fmt.Sprintf("%s:%d:%d", d.Path, d.Line, d.Column)
}
