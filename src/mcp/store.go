package mcp

import "sync"

// FindingsStore stores tiered findings per request for later drill-down.
type FindingsStore interface {
	// Store saves the tiered findings for a request.
	Store(requestID string, tiered TieredFindings)
	// Get retrieves a single finding by its message hash.
	Get(requestID, findingID string) (Finding, bool)
	// GetAll retrieves all findings for a request.
	GetAll(requestID string) (TieredFindings, bool)
}

// InMemoryStore is a thread-safe in-memory implementation of FindingsStore.
type InMemoryStore struct {
	mu       sync.RWMutex
	requests map[string]TieredFindings
	findings map[string]map[string]Finding // request_id -> finding_id -> finding
}

// NewInMemoryStore creates an empty findings store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		requests: make(map[string]TieredFindings),
		findings: make(map[string]map[string]Finding),
	}
}

// Store saves tiered findings, indexed by message hash for drill-down.
func (s *InMemoryStore) Store(requestID string, tiered TieredFindings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests[requestID] = tiered

	index := make(map[string]Finding, len(tiered.Blocking)+len(tiered.Style))
	for _, f := range tiered.Blocking {
		index[f.ID] = f
	}
	for _, f := range tiered.Style {
		index[f.ID] = f
	}
	s.findings[requestID] = index
}

// Get retrieves a finding by message hash (used as finding ID).
func (s *InMemoryStore) Get(requestID, findingID string) (Finding, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index, ok := s.findings[requestID]; ok {
		f, found := index[findingID]
		return f, found
	}
	return Finding{}, false
}

// GetAll retrieves the full tiered findings for a request.
func (s *InMemoryStore) GetAll(requestID string) (TieredFindings, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.requests[requestID]
	return t, ok
}
