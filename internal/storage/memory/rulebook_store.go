package memory

import (
	"context"
	"sync"

	"prop-risk-engine/internal/domain"
	"prop-risk-engine/internal/storage"
)

// RulebookStore is an in-memory implementation of storage.RulebookStore.
type RulebookStore struct {
	mu   sync.RWMutex
	data map[string][]domain.RuleDefinition // keyed by firm_id
}

// NewRulebookStore creates a new in-memory rulebook store.
func NewRulebookStore() *RulebookStore {
	return &RulebookStore{
		data: make(map[string][]domain.RuleDefinition),
	}
}

// Compile-time interface check.
var _ storage.RulebookStore = (*RulebookStore)(nil)

// Put stores or replaces a firm's rulebook.
func (s *RulebookStore) Put(_ context.Context, firmID string, rules []domain.RuleDefinition) error {
	if firmID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]domain.RuleDefinition, len(rules))
	copy(stored, rules)
	s.data[firmID] = stored
	return nil
}

// GetByFirmID retrieves a firm's rulebook. Returns ErrNotFound if not exists.
func (s *RulebookStore) GetByFirmID(_ context.Context, firmID string) ([]domain.RuleDefinition, error) {
	if firmID == "" {
		return nil, storage.ErrInvalidInput
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rules, exists := s.data[firmID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	result := make([]domain.RuleDefinition, len(rules))
	copy(result, rules)
	return result, nil
}
