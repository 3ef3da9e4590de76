package postgres

import (
	"context"
	"fmt"

	"prop-risk-engine/internal/domain"
	"prop-risk-engine/internal/storage"
)

// ExecutionStore implements storage.ExecutionStore using PostgreSQL.
type ExecutionStore struct {
	pool *Pool
}

// NewExecutionStore creates a new ExecutionStore.
func NewExecutionStore(pool *Pool) *ExecutionStore {
	return &ExecutionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ExecutionStore = (*ExecutionStore)(nil)

// InsertBulk appends execution records for an account atomically.
func (s *ExecutionStore) InsertBulk(ctx context.Context, accountID string, records []domain.RawExecutionRecord) error {
	if accountID == "" {
		return storage.ErrInvalidInput
	}
	if len(records) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO executions (
			account_id, ts, symbol, side, volume, price, role,
			realized_profit, position_correlation_id, comment
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	for _, r := range records {
		_, err := tx.Exec(ctx, query,
			accountID, r.Timestamp, r.Symbol, r.Side, r.Volume, r.Price, r.Role,
			r.RealizedProfit, r.PositionCorrelationID, r.Comment,
		)
		if err != nil {
			return fmt.Errorf("insert execution record: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByAccountID retrieves all records for an account, ordered by timestamp ASC.
func (s *ExecutionStore) GetByAccountID(ctx context.Context, accountID string) ([]domain.RawExecutionRecord, error) {
	if accountID == "" {
		return nil, storage.ErrInvalidInput
	}

	query := `
		SELECT ts, symbol, side, volume, price, role,
		       realized_profit, position_correlation_id, comment
		FROM executions
		WHERE account_id = $1
		ORDER BY ts ASC, id ASC
	`

	rows, err := s.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("query executions: %w", err)
	}
	defer rows.Close()

	var records []domain.RawExecutionRecord
	for rows.Next() {
		var r domain.RawExecutionRecord
		if err := rows.Scan(
			&r.Timestamp, &r.Symbol, &r.Side, &r.Volume, &r.Price, &r.Role,
			&r.RealizedProfit, &r.PositionCorrelationID, &r.Comment,
		); err != nil {
			return nil, fmt.Errorf("scan execution record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate executions: %w", err)
	}
	return records, nil
}
