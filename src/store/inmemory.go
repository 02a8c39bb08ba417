package store

import (
	"context"
	"sort"
	"sync"

	"lintwell/src/contracts"
)

// InMemory is a thread-safe in-memory Store. Used in local mode and by the
// MCP server, where findings only need to outlive a single session.
type InMemory struct {
	mu       sync.RWMutex
	runs     map[string]*contracts.RunStatus
	findings map[string][]contracts.LintCard          // request_id -> cards
	byHash   map[string]map[string]contracts.LintCard // request_id -> message_hash -> card
}

// NewInMemory creates an empty in-memory store.
func NewInMemory() *InMemory {
	return &InMemory{
		runs:     make(map[string]*contracts.RunStatus),
		findings: make(map[string][]contracts.LintCard),
		byHash:   make(map[string]map[string]contracts.LintCard),
	}
}

// CreateRun records a new pending run.
func (s *InMemory) CreateRun(ctx context.Context, requestID string, root string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[requestID]; exists {
		return nil
	}
	s.runs[requestID] = &contracts.RunStatus{
		RequestID: requestID,
		Root:      root,
		Status:    "pending",
	}
	return nil
}

// GetRunStatus returns the status of a run.
func (s *InMemory) GetRunStatus(ctx context.Context, requestID string) (*contracts.RunStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status, ok := s.runs[requestID]
	if !ok {
		return nil, ErrNotFound{RequestID: requestID}
	}
	copied := *status
	return &copied, nil
}

// UpdateRunStatus replaces the status of an existing run.
func (s *InMemory) UpdateRunStatus(ctx context.Context, status *contracts.RunStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[status.RequestID]; !ok {
		return ErrNotFound{RequestID: status.RequestID}
	}
	copied := *status
	s.runs[status.RequestID] = &copied
	return nil
}

// SaveFinding appends a finding and indexes it by message hash.
func (s *InMemory) SaveFinding(ctx context.Context, card *contracts.LintCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.findings[card.RequestID] = append(s.findings[card.RequestID], *card)

	hashMap, ok := s.byHash[card.RequestID]
	if !ok {
		hashMap = make(map[string]contracts.LintCard)
		s.byHash[card.RequestID] = hashMap
	}
	hashMap[card.MessageHash] = *card
	return nil
}

// GetFindings retrieves all findings for a run, highest weight first.
func (s *InMemory) GetFindings(ctx context.Context, requestID string) ([]contracts.LintCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cards, ok := s.findings[requestID]
	if !ok {
		return nil, ErrNotFound{RequestID: requestID}
	}

	sorted := make([]contracts.LintCard, len(cards))
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SeverityWeight > sorted[j].SeverityWeight
	})
	return sorted, nil
}

// GetByHash retrieves a single finding by message hash.
func (s *InMemory) GetByHash(ctx context.Context, requestID, messageHash string) (contracts.LintCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hashMap, ok := s.byHash[requestID]
	if !ok {
		return contracts.LintCard{}, ErrNotFound{RequestID: requestID, MessageHash: messageHash}
	}
	card, ok := hashMap[messageHash]
	if !ok {
		return contracts.LintCard{}, ErrNotFound{RequestID: requestID, MessageHash: messageHash}
	}
	return card, nil
}

// Close is a no-op for the in-memory store.
func (s *InMemory) Close() error {
	return nil
}
