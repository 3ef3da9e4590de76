package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prop-risk-engine/internal/domain"
	"prop-risk-engine/internal/storage"
	"prop-risk-engine/internal/storage/postgres"
)

func TestExecutionStore_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := postgres.NewExecutionStore(pool)

	records := []domain.RawExecutionRecord{
		{Timestamp: 200, Symbol: "EURUSD", Side: domain.SideSell, Volume: 1.2, Price: 1.1050, Role: domain.RoleClose, RealizedProfit: 120, PositionCorrelationID: "pos-1"},
		{Timestamp: 100, Symbol: "EURUSD", Side: domain.SideBuy, Volume: 1.0, Price: 1.1000, Role: domain.RoleOpen, PositionCorrelationID: "pos-1", Comment: "entry"},
	}
	require.NoError(t, store.InsertBulk(ctx, "acc-1", records))

	got, err := store.GetByAccountID(ctx, "acc-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Ordered by timestamp ASC regardless of insertion order.
	assert.Equal(t, int64(100), got[0].Timestamp)
	assert.Equal(t, domain.RoleOpen, got[0].Role)
	assert.Equal(t, "entry", got[0].Comment)
	assert.Equal(t, int64(200), got[1].Timestamp)
	assert.InDelta(t, 120.0, got[1].RealizedProfit, 1e-9)

	// Other accounts see nothing.
	other, err := store.GetByAccountID(ctx, "acc-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestRulebookStore_PutAndReplace(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := postgres.NewRulebookStore(pool)

	_, err := store.GetByFirmID(ctx, "firm-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	rules := []domain.RuleDefinition{
		{ID: "dd-10", Category: domain.CategorySurvival, Type: domain.RuleMaxDrawdownPct, Limit: 10, Basis: domain.BasisEquity, Model: domain.RuleModelTrailing, Severity: domain.SeverityCritical},
		{ID: "daily-5", Category: domain.CategorySurvival, Type: domain.RuleDailyLossPct, Limit: 5, Basis: domain.BasisEquity, Model: domain.RuleModelStatic, Severity: domain.SeverityCritical},
	}
	require.NoError(t, store.Put(ctx, "firm-1", rules))

	got, err := store.GetByFirmID(ctx, "firm-1")
	require.NoError(t, err)
	assert.Equal(t, rules, got)

	// Put replaces the whole rulebook.
	replacement := rules[:1]
	require.NoError(t, store.Put(ctx, "firm-1", replacement))

	got, err = store.GetByFirmID(ctx, "firm-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "dd-10", got[0].ID)
}

func TestSnapshotStore_InsertAndGetLatest(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := postgres.NewSnapshotStore(pool)

	_, err := store.GetLatest(ctx, "acc-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	older := &domain.ComplianceSnapshot{
		SnapshotID: "snap-1",
		AccountID:  "acc-1",
		ComputedAt: 100,
		Groups: []domain.CategoryEvaluations{{
			Category: domain.CategorySurvival,
			Evaluations: []domain.RuleEvaluation{{
				RuleID:            "daily-5",
				Category:          domain.CategorySurvival,
				UsedRatio:         0.6,
				RemainingAbsolute: 200,
				RemainingPercent:  2,
				Zone:              domain.ZoneWarning,
				Label:             "Daily loss 5%",
			}},
		}},
		Headroom: domain.HeadroomSummary{DailyLossRemainingUsd: 200, DailyLossRemainingPct: 2},
	}
	newer := &domain.ComplianceSnapshot{SnapshotID: "snap-2", AccountID: "acc-1", ComputedAt: 200}

	require.NoError(t, store.Insert(ctx, older))
	require.NoError(t, store.Insert(ctx, newer))

	got, err := store.GetLatest(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "snap-2", got.SnapshotID)

	// Duplicate snapshot IDs are rejected: history is append-only.
	err = store.Insert(ctx, &domain.ComplianceSnapshot{SnapshotID: "snap-1", AccountID: "acc-1", ComputedAt: 300})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestSnapshotStore_EvaluationsSurviveRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := postgres.NewSnapshotStore(pool)

	snap := &domain.ComplianceSnapshot{
		SnapshotID: "snap-1",
		AccountID:  "acc-1",
		ComputedAt: 100,
		Groups: []domain.CategoryEvaluations{{
			Category: domain.CategoryBehavior,
			Evaluations: []domain.RuleEvaluation{{
				RuleID:        "best-day",
				Category:      domain.CategoryBehavior,
				UsedRatio:     1,
				Zone:          domain.ZoneDanger,
				Label:         "Best day 55% vs limit 40%",
				Informational: true,
			}},
		}},
	}
	require.NoError(t, store.Insert(ctx, snap))

	got, err := store.GetLatest(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, snap.Groups, got.Groups)
	assert.Equal(t, snap.Headroom, got.Headroom)
}
