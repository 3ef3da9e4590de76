// Package storage defines the caller-owned repositories the pipeline uses.
// The compute core itself never touches a store; only the pipeline runner
// and command binaries do.
package storage

import (
	"context"

	"prop-risk-engine/internal/domain"
)

// ExecutionStore provides access to raw broker execution records.
type ExecutionStore interface {
	// InsertBulk appends execution records for an account.
	InsertBulk(ctx context.Context, accountID string, records []domain.RawExecutionRecord) error

	// GetByAccountID retrieves all records for an account, ordered by timestamp ASC.
	GetByAccountID(ctx context.Context, accountID string) ([]domain.RawExecutionRecord, error)
}

// RulebookStore provides access to firm rule definitions.
type RulebookStore interface {
	// Put stores or replaces a firm's rulebook.
	Put(ctx context.Context, firmID string, rules []domain.RuleDefinition) error

	// GetByFirmID retrieves a firm's rulebook. Returns ErrNotFound if not exists.
	GetByFirmID(ctx context.Context, firmID string) ([]domain.RuleDefinition, error)
}

// SnapshotStore provides the two operations callers need around the core:
// store the latest compliance snapshot for an account and fetch it back.
type SnapshotStore interface {
	// Insert adds a new snapshot. Returns ErrDuplicateKey if snapshot_id exists.
	Insert(ctx context.Context, snapshot *domain.ComplianceSnapshot) error

	// GetLatest retrieves the most recent snapshot for an account.
	// Returns ErrNotFound if the account has none.
	GetLatest(ctx context.Context, accountID string) (*domain.ComplianceSnapshot, error)
}

// EquitySeriesStore provides access to computed equity curves.
type EquitySeriesStore interface {
	// InsertBulk appends one computed equity series for an account.
	InsertBulk(ctx context.Context, accountID string, computedAt int64, points []domain.EquityPoint) error

	// GetLatest retrieves the most recently computed series for an account,
	// ordered by point index ASC. Returns ErrNotFound if the account has none.
	GetLatest(ctx context.Context, accountID string) ([]domain.EquityPoint, error)
}
