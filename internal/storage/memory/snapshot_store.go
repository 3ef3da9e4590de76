package memory

import (
	"context"
	"sync"

	"prop-risk-engine/internal/domain"
	"prop-risk-engine/internal/storage"
)

// SnapshotStore is an in-memory implementation of storage.SnapshotStore.
type SnapshotStore struct {
	mu   sync.RWMutex
	data map[string][]*domain.ComplianceSnapshot // keyed by account_id, append order
	ids  map[string]struct{}                     // snapshot_id uniqueness
}

// NewSnapshotStore creates a new in-memory snapshot store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		data: make(map[string][]*domain.ComplianceSnapshot),
		ids:  make(map[string]struct{}),
	}
}

// Compile-time interface check.
var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// Insert adds a new snapshot. Returns ErrDuplicateKey if snapshot_id exists.
func (s *SnapshotStore) Insert(_ context.Context, snapshot *domain.ComplianceSnapshot) error {
	if snapshot == nil || snapshot.SnapshotID == "" || snapshot.AccountID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ids[snapshot.SnapshotID]; exists {
		return storage.ErrDuplicateKey
	}

	copied := *snapshot
	s.ids[snapshot.SnapshotID] = struct{}{}
	s.data[snapshot.AccountID] = append(s.data[snapshot.AccountID], &copied)
	return nil
}

// GetLatest retrieves the most recent snapshot for an account by ComputedAt,
// falling back to insertion order on ties. Returns ErrNotFound if none.
func (s *SnapshotStore) GetLatest(_ context.Context, accountID string) (*domain.ComplianceSnapshot, error) {
	if accountID == "" {
		return nil, storage.ErrInvalidInput
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshots := s.data[accountID]
	if len(snapshots) == 0 {
		return nil, storage.ErrNotFound
	}

	latest := snapshots[0]
	for _, snap := range snapshots[1:] {
		if snap.ComputedAt >= latest.ComputedAt {
			latest = snap
		}
	}

	copied := *latest
	return &copied, nil
}
