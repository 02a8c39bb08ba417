package store

import "fmt"

// ErrNotFound reports a missing run or finding.
type ErrNotFound struct {
	RequestID   string
	MessageHash string
}

func (e ErrNotFound) Error() string {
	if e.MessageHash != "" {
		return fmt.Sprintf("finding not found: request %s hash %s", e.RequestID, e.MessageHash)
	}
	return fmt.Sprintf("run not found: %s", e.RequestID)
}
