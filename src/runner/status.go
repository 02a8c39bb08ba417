package runner

import (
	"fmt"
	"strings"
)

// Pylint encodes its outcome as a bitmask exit code. Each bit marks that at
// least one message of that class was emitted.
const (
	ExitFatal      = 1 << 0 // fatal message issued
	ExitError      = 1 << 1 // error message issued
	ExitWarning    = 1 << 2 // warning message issued
	ExitRefactor   = 1 << 3 // refactor message issued
	ExitConvention = 1 << 4 // convention message issued
	ExitUsage      = 1 << 5 // usage error (bad args, crash)
)

// Status is the decoded form of a pylint exit code.
type Status struct {
	Code       int
	Fatal      bool
	Error      bool
	Warning    bool
	Refactor   bool
	Convention bool
	Usage      bool
}

// DecodeStatus decodes a raw pylint exit code.
func DecodeStatus(code int) Status {
	return Status{
		Code:       code,
		Fatal:      code&ExitFatal != 0,
		Error:      code&ExitError != 0,
		Warning:    code&ExitWarning != 0,
		Refactor:   code&ExitRefactor != 0,
		Convention: code&ExitConvention != 0,
		Usage:      code&ExitUsage != 0,
	}
}

// Clean reports whether the run completed without any diagnostic.
func (s Status) Clean() bool {
	return s.Code == 0
}

// Blocking reports whether the run produced fatal or error class messages,
// or failed outright with a usage error.
func (s Status) Blocking() bool {
	return s.Fatal || s.Error || s.Usage
}

// String renders the decoded classes, e.g. "error|convention (18)".
func (s Status) String() string {
	if s.Code == 0 {
		return "clean (0)"
	}

	var parts []string
	if s.Fatal {
		parts = append(parts, "fatal")
	}
	if s.Error {
		parts = append(parts, "error")
	}
	if s.Warning {
		parts = append(parts, "warning")
	}
	if s.Refactor {
		parts = append(parts, "refactor")
	}
	if s.Convention {
		parts = append(parts, "convention")
	}
	if s.Usage {
		parts = append(parts, "usage")
	}
	if len(parts) == 0 {
		parts = append(parts, "unknown")
	}

	return fmt.Sprintf("%s (%d)", strings.Join(parts, "|"), s.Code)
}
