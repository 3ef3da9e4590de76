package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"prop-risk-engine/internal/domain"
	"prop-risk-engine/internal/storage"
)

// Runner loads an account's inputs from caller-owned stores, evaluates the
// pipeline, and persists the outputs. Stores are injected: the runner owns
// no global state and can be invoked concurrently for different accounts.
type Runner struct {
	executionStore    storage.ExecutionStore
	rulebookStore     storage.RulebookStore
	snapshotStore     storage.SnapshotStore
	equitySeriesStore storage.EquitySeriesStore

	logger zerolog.Logger
}

// Options for creating a Runner. ExecutionStore and RulebookStore are
// required; the output stores and logger are optional.
type Options struct {
	ExecutionStore    storage.ExecutionStore
	RulebookStore     storage.RulebookStore
	SnapshotStore     storage.SnapshotStore
	EquitySeriesStore storage.EquitySeriesStore
	Logger            *zerolog.Logger
}

// NewRunner creates a new pipeline runner.
func NewRunner(opts Options) *Runner {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Runner{
		executionStore:    opts.ExecutionStore,
		rulebookStore:     opts.RulebookStore,
		snapshotStore:     opts.SnapshotStore,
		equitySeriesStore: opts.EquitySeriesStore,
		logger:            logger,
	}
}

// Run evaluates one account against a firm's rulebook and persists the
// resulting snapshot and equity curve through the configured stores.
// A missing rulebook degrades to an empty rule set: the derived-read path
// must stay renderable even with no rules on file.
func (r *Runner) Run(ctx context.Context, accountID, firmID string, metrics domain.AccountMetrics, model domain.DrawdownModel, computedAt int64) (*Result, error) {
	records, err := r.executionStore.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("load executions for %s: %w", accountID, err)
	}

	rules, err := r.rulebookStore.GetByFirmID(ctx, firmID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("load rulebook %s: %w", firmID, err)
		}
		r.logger.Warn().Str("firm_id", firmID).Msg("no rulebook on file, evaluating without rules")
		rules = nil
	}

	result := Evaluate(AccountInput{
		AccountID:  accountID,
		Records:    records,
		Rules:      rules,
		Metrics:    metrics,
		Model:      model,
		ComputedAt: computedAt,
	})

	r.logger.Info().
		Str("account_id", accountID).
		Int("records", len(records)).
		Int("trades", len(result.Trades)).
		Float64("max_drawdown_pct", result.Drawdown.MaxPeakToTroughPct).
		Msg("pipeline evaluated")

	if r.snapshotStore != nil {
		if err := r.snapshotStore.Insert(ctx, result.Snapshot); err != nil && !errors.Is(err, storage.ErrDuplicateKey) {
			return nil, fmt.Errorf("persist snapshot for %s: %w", accountID, err)
		}
	}
	if r.equitySeriesStore != nil {
		if err := r.equitySeriesStore.InsertBulk(ctx, accountID, computedAt, result.EquityCurve); err != nil {
			return nil, fmt.Errorf("persist equity series for %s: %w", accountID, err)
		}
	}

	return result, nil
}
