package clickhouse_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prop-risk-engine/internal/domain"
	"prop-risk-engine/internal/storage"
	chstore "prop-risk-engine/internal/storage/clickhouse"
)

func TestEquitySeriesStore_GetLatestReturnsNewestRun(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := chstore.NewEquitySeriesStore(conn)

	older := []domain.EquityPoint{
		{Index: 0, Equity: 10000},
		{Index: 1, Equity: 10100},
	}
	newer := []domain.EquityPoint{
		{Index: 0, Equity: 10000},
		{Index: 1, Equity: 10100},
		{Index: 2, Equity: 10120},
	}
	require.NoError(t, store.InsertBulk(ctx, "acc-1", 100, older))
	require.NoError(t, store.InsertBulk(ctx, "acc-1", 200, newer))

	got, err := store.GetLatest(ctx, "acc-1")
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Only the newest run, ordered by point index.
	for i, p := range got {
		assert.Equal(t, i, p.Index)
		assert.InDelta(t, newer[i].Equity, p.Equity, 1e-9)
	}
}

func TestEquitySeriesStore_UnknownAccountNotFound(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := chstore.NewEquitySeriesStore(conn)

	_, err := store.GetLatest(ctx, "acc-missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestEquitySeriesStore_EmptySeriesIsNoop(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := chstore.NewEquitySeriesStore(conn)

	require.NoError(t, store.InsertBulk(ctx, "acc-1", 100, nil))

	_, err := store.GetLatest(ctx, "acc-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestEquitySeriesStore_AccountsAreIsolated(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := chstore.NewEquitySeriesStore(conn)

	require.NoError(t, store.InsertBulk(ctx, "acc-1", 100, []domain.EquityPoint{{Index: 0, Equity: 10000}}))
	require.NoError(t, store.InsertBulk(ctx, "acc-2", 100, []domain.EquityPoint{{Index: 0, Equity: 50000}}))

	got, err := store.GetLatest(ctx, "acc-2")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 50000, got[0].Equity, 1e-9)
}
