package memory

import (
	"context"
	"sync"

	"prop-risk-engine/internal/domain"
	"prop-risk-engine/internal/storage"
)

type equitySeries struct {
	computedAt int64
	points     []domain.EquityPoint
}

// EquitySeriesStore is an in-memory implementation of storage.EquitySeriesStore.
type EquitySeriesStore struct {
	mu   sync.RWMutex
	data map[string][]equitySeries // keyed by account_id
}

// NewEquitySeriesStore creates a new in-memory equity series store.
func NewEquitySeriesStore() *EquitySeriesStore {
	return &EquitySeriesStore{
		data: make(map[string][]equitySeries),
	}
}

// Compile-time interface check.
var _ storage.EquitySeriesStore = (*EquitySeriesStore)(nil)

// InsertBulk appends one computed equity series for an account.
func (s *EquitySeriesStore) InsertBulk(_ context.Context, accountID string, computedAt int64, points []domain.EquityPoint) error {
	if accountID == "" {
		return storage.ErrInvalidInput
	}
	if len(points) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]domain.EquityPoint, len(points))
	copy(stored, points)
	s.data[accountID] = append(s.data[accountID], equitySeries{computedAt: computedAt, points: stored})
	return nil
}

// GetLatest retrieves the most recently computed series for an account.
// Returns ErrNotFound if the account has none.
func (s *EquitySeriesStore) GetLatest(_ context.Context, accountID string) ([]domain.EquityPoint, error) {
	if accountID == "" {
		return nil, storage.ErrInvalidInput
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	series := s.data[accountID]
	if len(series) == 0 {
		return nil, storage.ErrNotFound
	}

	latest := series[0]
	for _, candidate := range series[1:] {
		if candidate.computedAt >= latest.computedAt {
			latest = candidate
		}
	}

	points := make([]domain.EquityPoint, len(latest.points))
	copy(points, latest.points)
	return points, nil
}
