package pylint

import "strings"

// Severity classes, ordered from most to least severe. They correspond to
// the first letter of the pylint message id.
const (
	SeverityFatal      = "FATAL"      // F - parse errors, crashes
	SeverityError      = "ERROR"      // E - likely bugs
	SeverityWarning    = "WARNING"    // W - stylistic problems, minor issues
	SeverityRefactor   = "REFACTOR"   // R - code smell
	SeverityConvention = "CONVENTION" // C - coding standard violation
	SeverityInfo       = "INFO"       // I - informational
)

// Severity returns the severity class for the diagnostic's message id.
// Unknown ids are treated as INFO.
func (d Diagnostic) Severity() string {
	if d.Code == "" {
		return SeverityInfo
	}
	switch d.Code[0] {
	case 'F':
		return SeverityFatal
	case 'E':
		return SeverityError
	case 'W':
		return SeverityWarning
	case 'R':
		return SeverityRefactor
	case 'C':
		return SeverityConvention
	}
	return SeverityInfo
}

// Weight maps a severity class to a rank weight in [0,1]. Higher weights
// sort first within a tier.
func Weight(severity string) float64 {
	switch strings.ToUpper(severity) {
	case SeverityFatal:
		return 1.0
	case SeverityError:
		return 0.9
	case SeverityWarning:
		return 0.6
	case SeverityRefactor:
		return 0.4
	case SeverityConvention:
		return 0.3
	}
	return 0.1
}
