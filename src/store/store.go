// Package store defines the interface for persisting lint runs and findings.
package store

import (
	"context"

	"lintwell/src/contracts"
)

// Store persists lint runs and their findings.
type Store interface {
	// CreateRun creates a new run record in pending state.
	CreateRun(ctx context.Context, requestID string, root string) error

	// GetRunStatus returns the status of a run.
	GetRunStatus(ctx context.Context, requestID string) (*contracts.RunStatus, error)

	// UpdateRunStatus updates the status of a run.
	UpdateRunStatus(ctx context.Context, status *contracts.RunStatus) error

	// SaveFinding saves a single finding.
	SaveFinding(ctx context.Context, card *contracts.LintCard) error

	// GetFindings retrieves all findings for a run, ordered by severity
	// weight descending.
	GetFindings(ctx context.Context, requestID string) ([]contracts.LintCard, error)

	// GetByHash retrieves a single finding by its message hash.
	GetByHash(ctx context.Context, requestID, messageHash string) (contracts.LintCard, error)

	// Close closes the store connection.
	Close() error
}
