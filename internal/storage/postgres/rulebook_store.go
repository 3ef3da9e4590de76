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

// RulebookStore implements storage.RulebookStore using PostgreSQL.
type RulebookStore struct {
	pool *Pool
}

// NewRulebookStore creates a new RulebookStore.
func NewRulebookStore(pool *Pool) *RulebookStore {
	return &RulebookStore{pool: pool}
}

// Compile-time interface check.
var _ storage.RulebookStore = (*RulebookStore)(nil)

// Put stores or replaces a firm's rulebook.
func (s *RulebookStore) Put(ctx context.Context, firmID string, rules []domain.RuleDefinition) error {
	if firmID == "" {
		return storage.ErrInvalidInput
	}

	payload, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("marshal rulebook: %w", err)
	}

	query := `
		INSERT INTO rulebooks (firm_id, rules)
		VALUES ($1, $2)
		ON CONFLICT (firm_id) DO UPDATE SET rules = EXCLUDED.rules
	`

	if _, err := s.pool.Exec(ctx, query, firmID, payload); err != nil {
		return fmt.Errorf("upsert rulebook: %w", err)
	}
	return nil
}

// GetByFirmID retrieves a firm's rulebook. Returns ErrNotFound if not exists.
func (s *RulebookStore) GetByFirmID(ctx context.Context, firmID string) ([]domain.RuleDefinition, error) {
	if firmID == "" {
		return nil, storage.ErrInvalidInput
	}

	var payload []byte
	err := s.pool.QueryRow(ctx, `SELECT rules FROM rulebooks WHERE firm_id = $1`, firmID).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("query rulebook: %w", err)
	}

	var rules []domain.RuleDefinition
	if err := json.Unmarshal(payload, &rules); err != nil {
		return nil, fmt.Errorf("unmarshal rulebook: %w", err)
	}
	return rules, nil
}
