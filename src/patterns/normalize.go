// Package patterns provides unified normalization of lint diagnostics for
// both recurrence detection (grouping the same message across files) and
// presentation (compact display).
//
// The same underlying patterns are used with different masking levels:
//   - MaskRecurrence: aggressive normalization for grouping (masks paths,
//     line numbers, and quoted identifiers)
//   - MaskPresentation: conservative normalization for display (preserves
//     identifiers and line numbers)
package patterns

import (
	"regexp"
	"strings"
)

// MaskingLevel controls how aggressively messages are normalized.
type MaskingLevel int

const (
	// MaskPresentation preserves diagnostic details like identifiers.
	// Use for: MCP responses, UI display, debugging output.
	MaskPresentation MaskingLevel = iota

	// MaskRecurrence normalizes for grouping identical diagnostics.
	// "Unused variable 'foo'" and "Unused variable 'bar'" become one
	// pattern with a recurrence count of two.
	MaskRecurrence
)

// Shared regex patterns - compiled once at package init.
var (
	// quotedNamePattern matches identifiers pylint quotes in messages:
	// 'variable_name', "ClassName", `attr`.
	quotedNamePattern = regexp.MustCompile(`(['"` + "`" + `])[\w.<>-]+(['"` + "`" + `])`)

	// longPathPattern matches paths with 3+ directories. Captures the
	// filename and optional :line suffix for preservation.
	longPathPattern = regexp.MustCompile(`(?:[^/\s]+/){3,}([^/\s:]+(?::\d+)?)`)

	// anyPathPattern matches any slash-separated path ending in .py with
	// an optional :line:col suffix.
	anyPathPattern = regexp.MustCompile(`[\w./-]+\.py(?::\d+(?::\d+)?)?`)

	// numberPattern matches standalone numbers (line/column references,
	// counts embedded in messages).
	numberPattern = regexp.MustCompile(`\b\d+\b`)

	// whitespacePattern matches runs of whitespace.
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalize applies pattern normalization to a single diagnostic message.
// The masking level determines how aggressively patterns are replaced.
func Normalize(msg string, level MaskingLevel) string {
	switch level {
	case MaskPresentation:
		msg = compressPaths(msg)
	case MaskRecurrence:
		msg = maskQuotedNames(msg)
		msg = maskPaths(msg)
		msg = maskNumbers(msg)
	}
	return normalizeWhitespace(msg)
}

// NormalizeAll normalizes a batch of messages at one level.
func NormalizeAll(msgs []string, level MaskingLevel) []string {
	if len(msgs) == 0 {
		return msgs
	}
	result := make([]string, len(msgs))
	for i, msg := range msgs {
		result[i] = Normalize(msg, level)
	}
	return result
}

// --- Presentation transforms ---

// compressPaths shortens long paths while preserving filename and line.
// a/b/c/d/module.py:42 → .../module.py:42
func compressPaths(msg string) string {
	return longPathPattern.ReplaceAllString(msg, ".../$1")
}

// --- Recurrence transforms ---

// maskQuotedNames replaces quoted identifiers so the same message about
// different names groups together.
func maskQuotedNames(msg string) string {
	return quotedNamePattern.ReplaceAllString(msg, "$1[NAME]$2")
}

// maskPaths replaces file references entirely.
func maskPaths(msg string) string {
	return anyPathPattern.ReplaceAllString(msg, "[PATH]")
}

// maskNumbers replaces standalone numbers so line references group.
func maskNumbers(msg string) string {
	return numberPattern.ReplaceAllString(msg, "[NUM]")
}

// --- Shared cleanup ---

func normalizeWhitespace(msg string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(msg, " "))
}
