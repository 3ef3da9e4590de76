package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"prop-risk-engine/internal/domain"
	"prop-risk-engine/internal/storage"
)

// SnapshotStore implements storage.SnapshotStore using PostgreSQL.
// Evaluations and headroom are stored as JSONB documents: consumers read
// snapshots whole, never by individual rule.
type SnapshotStore struct {
	pool *Pool
}

// NewSnapshotStore creates a new SnapshotStore.
func NewSnapshotStore(pool *Pool) *SnapshotStore {
	return &SnapshotStore{pool: pool}
}

// Compile-time interface check.
var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// Insert adds a new snapshot. Returns ErrDuplicateKey if snapshot_id exists.
func (s *SnapshotStore) Insert(ctx context.Context, snapshot *domain.ComplianceSnapshot) error {
	if snapshot == nil || snapshot.SnapshotID == "" || snapshot.AccountID == "" {
		return storage.ErrInvalidInput
	}

	groups, err := json.Marshal(snapshot.Groups)
	if err != nil {
		return fmt.Errorf("marshal evaluation groups: %w", err)
	}
	headroom, err := json.Marshal(snapshot.Headroom)
	if err != nil {
		return fmt.Errorf("marshal headroom: %w", err)
	}

	query := `
		INSERT INTO compliance_snapshots (snapshot_id, account_id, computed_at, groups, headroom)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := s.pool.Exec(ctx, query, snapshot.SnapshotID, snapshot.AccountID, snapshot.ComputedAt, groups, headroom); err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// GetLatest retrieves the most recent snapshot for an account.
// Returns ErrNotFound if the account has none.
func (s *SnapshotStore) GetLatest(ctx context.Context, accountID string) (*domain.ComplianceSnapshot, error) {
	if accountID == "" {
		return nil, storage.ErrInvalidInput
	}

	query := `
		SELECT snapshot_id, account_id, computed_at, groups, headroom
		FROM compliance_snapshots
		WHERE account_id = $1
		ORDER BY computed_at DESC
		LIMIT 1
	`

	var snap domain.ComplianceSnapshot
	var groups, headroom []byte
	err := s.pool.QueryRow(ctx, query, accountID).Scan(
		&snap.SnapshotID, &snap.AccountID, &snap.ComputedAt, &groups, &headroom,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	if err := json.Unmarshal(groups, &snap.Groups); err != nil {
		return nil, fmt.Errorf("unmarshal evaluation groups: %w", err)
	}
	if err := json.Unmarshal(headroom, &snap.Headroom); err != nil {
		return nil, fmt.Errorf("unmarshal headroom: %w", err)
	}
	return &snap, nil
}
