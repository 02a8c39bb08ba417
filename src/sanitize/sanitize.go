// Package sanitize cleans captured linter output before parsing and display.
// CI runners interleave ANSI color codes and carriage-return progress lines
// into tool output; both confuse the diagnostic parser.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	// ANSI escape codes: \x1b[...m (SGR sequences)
	ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

	// Cursor-control sequences some runners emit around progress output.
	cursorPattern = regexp.MustCompile(`\x1b\[[0-9;]*[ABCDEFGJK]`)
)

// StripANSI removes ANSI SGR and cursor-control sequences.
func StripANSI(s string) string {
	s = ansiPattern.ReplaceAllString(s, "")
	s = cursorPattern.ReplaceAllString(s, "")
	return s
}

// CollapseProgress resolves carriage-return overwrites within each line:
// for "aaa\rbbb" only "bbb" survives, matching what a terminal would show.
func CollapseProgress(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if idx := strings.LastIndex(line, "\r"); idx >= 0 {
			lines[i] = line[idx+1:]
		}
	}
	return strings.Join(lines, "\n")
}

// Clean applies the full sanitization pass used before parsing.
func Clean(s string) string {
	return CollapseProgress(StripANSI(s))
}
