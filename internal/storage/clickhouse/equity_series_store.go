package clickhouse

import (
	"context"
	"fmt"

	"prop-risk-engine/internal/domain"
	"prop-risk-engine/internal/storage"
)

// EquitySeriesStore implements storage.EquitySeriesStore using ClickHouse.
// Equity curves are append-only: each recomputation writes a new series
// keyed by (account_id, computed_at).
type EquitySeriesStore struct {
	conn *Conn
}

// NewEquitySeriesStore creates a new EquitySeriesStore.
func NewEquitySeriesStore(conn *Conn) *EquitySeriesStore {
	return &EquitySeriesStore{conn: conn}
}

// Compile-time interface check.
var _ storage.EquitySeriesStore = (*EquitySeriesStore)(nil)

// InsertBulk appends one computed equity series for an account.
func (s *EquitySeriesStore) InsertBulk(ctx context.Context, accountID string, computedAt int64, points []domain.EquityPoint) error {
	if accountID == "" {
		return storage.ErrInvalidInput
	}
	if len(points) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO equity_series (account_id, computed_at, idx, equity)
	`)
	if err != nil {
		return fmt.Errorf("prepare equity series batch: %w", err)
	}

	for _, p := range points {
		if err := batch.Append(accountID, computedAt, int32(p.Index), p.Equity); err != nil {
			return fmt.Errorf("append equity point: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send equity series batch: %w", err)
	}
	return nil
}

// GetLatest retrieves the most recently computed series for an account,
// ordered by point index ASC. Returns ErrNotFound if the account has none.
func (s *EquitySeriesStore) GetLatest(ctx context.Context, accountID string) ([]domain.EquityPoint, error) {
	if accountID == "" {
		return nil, storage.ErrInvalidInput
	}

	query := `
		SELECT idx, equity
		FROM equity_series
		WHERE account_id = ?
		  AND computed_at = (
			SELECT max(computed_at) FROM equity_series WHERE account_id = ?
		  )
		ORDER BY idx ASC
	`

	rows, err := s.conn.Query(ctx, query, accountID, accountID)
	if err != nil {
		return nil, fmt.Errorf("query equity series: %w", err)
	}
	defer rows.Close()

	var points []domain.EquityPoint
	for rows.Next() {
		var idx int32
		var equity float64
		if err := rows.Scan(&idx, &equity); err != nil {
			return nil, fmt.Errorf("scan equity point: %w", err)
		}
		points = append(points, domain.EquityPoint{Index: int(idx), Equity: equity})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate equity series: %w", err)
	}

	if len(points) == 0 {
		return nil, storage.ErrNotFound
	}
	return points, nil
}
