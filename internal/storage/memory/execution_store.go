package memory

import (
	"context"
	"sort"
	"sync"

	"prop-risk-engine/internal/domain"
	"prop-risk-engine/internal/storage"
)

// ExecutionStore is an in-memory implementation of storage.ExecutionStore.
type ExecutionStore struct {
	mu   sync.RWMutex
	data map[string][]domain.RawExecutionRecord // keyed by account_id
}

// NewExecutionStore creates a new in-memory execution store.
func NewExecutionStore() *ExecutionStore {
	return &ExecutionStore{
		data: make(map[string][]domain.RawExecutionRecord),
	}
}

// Compile-time interface check.
var _ storage.ExecutionStore = (*ExecutionStore)(nil)

// InsertBulk appends execution records for an account.
func (s *ExecutionStore) InsertBulk(_ context.Context, accountID string, records []domain.RawExecutionRecord) error {
	if accountID == "" {
		return storage.ErrInvalidInput
	}
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[accountID] = append(s.data[accountID], records...)
	return nil
}

// GetByAccountID retrieves all records for an account, ordered by timestamp ASC.
func (s *ExecutionStore) GetByAccountID(_ context.Context, accountID string) ([]domain.RawExecutionRecord, error) {
	if accountID == "" {
		return nil, storage.ErrInvalidInput
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.RawExecutionRecord, len(s.data[accountID]))
	copy(records, s.data[accountID])

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp < records[j].Timestamp
	})
	return records, nil
}
