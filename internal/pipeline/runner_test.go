package pipeline

import (
	"context"
	"testing"

	"prop-risk-engine/internal/storage/memory"
)

func TestRunner_PersistsSnapshotAndEquitySeries(t *testing.T) {
	ctx := context.Background()
	in := sampleInput()

	executionStore := memory.NewExecutionStore()
	rulebookStore := memory.NewRulebookStore()
	snapshotStore := memory.NewSnapshotStore()
	equitySeriesStore := memory.NewEquitySeriesStore()

	if err := executionStore.InsertBulk(ctx, in.AccountID, in.Records); err != nil {
		t.Fatalf("seed executions: %v", err)
	}
	if err := rulebookStore.Put(ctx, "firm-1", in.Rules); err != nil {
		t.Fatalf("seed rulebook: %v", err)
	}

	runner := NewRunner(Options{
		ExecutionStore:    executionStore,
		RulebookStore:     rulebookStore,
		SnapshotStore:     snapshotStore,
		EquitySeriesStore: equitySeriesStore,
	})

	result, err := runner.Run(ctx, in.AccountID, "firm-1", in.Metrics, in.Model, in.ComputedAt)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	stored, err := snapshotStore.GetLatest(ctx, in.AccountID)
	if err != nil {
		t.Fatalf("get latest snapshot: %v", err)
	}
	if stored.SnapshotID != result.Snapshot.SnapshotID {
		t.Errorf("stored snapshot %s, result snapshot %s", stored.SnapshotID, result.Snapshot.SnapshotID)
	}

	points, err := equitySeriesStore.GetLatest(ctx, in.AccountID)
	if err != nil {
		t.Fatalf("get latest equity series: %v", err)
	}
	if len(points) != len(result.EquityCurve) {
		t.Errorf("stored %d equity points, result has %d", len(points), len(result.EquityCurve))
	}
}

func TestRunner_MissingRulebookDegradesToEmptyRules(t *testing.T) {
	ctx := context.Background()
	in := sampleInput()

	executionStore := memory.NewExecutionStore()
	if err := executionStore.InsertBulk(ctx, in.AccountID, in.Records); err != nil {
		t.Fatalf("seed executions: %v", err)
	}

	runner := NewRunner(Options{
		ExecutionStore: executionStore,
		RulebookStore:  memory.NewRulebookStore(),
		SnapshotStore:  memory.NewSnapshotStore(),
	})

	result, err := runner.Run(ctx, in.AccountID, "no-such-firm", in.Metrics, in.Model, in.ComputedAt)
	if err != nil {
		t.Fatalf("run should tolerate a missing rulebook: %v", err)
	}
	if len(result.Snapshot.Groups) != 0 {
		t.Errorf("expected no rule groups without a rulebook, got %d", len(result.Snapshot.Groups))
	}
	if len(result.Trades) == 0 {
		t.Error("trades should still be reconstructed")
	}
}

func TestRunner_RerunSameTimestampIsIdempotent(t *testing.T) {
	ctx := context.Background()
	in := sampleInput()

	executionStore := memory.NewExecutionStore()
	rulebookStore := memory.NewRulebookStore()
	snapshotStore := memory.NewSnapshotStore()

	if err := executionStore.InsertBulk(ctx, in.AccountID, in.Records); err != nil {
		t.Fatalf("seed executions: %v", err)
	}
	if err := rulebookStore.Put(ctx, "firm-1", in.Rules); err != nil {
		t.Fatalf("seed rulebook: %v", err)
	}

	runner := NewRunner(Options{
		ExecutionStore: executionStore,
		RulebookStore:  rulebookStore,
		SnapshotStore:  snapshotStore,
	})

	first, err := runner.Run(ctx, in.AccountID, "firm-1", in.Metrics, in.Model, in.ComputedAt)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	// Second run produces the same snapshot ID; the duplicate insert is
	// tolerated rather than surfaced.
	second, err := runner.Run(ctx, in.AccountID, "firm-1", in.Metrics, in.Model, in.ComputedAt)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first.Snapshot.SnapshotID != second.Snapshot.SnapshotID {
		t.Errorf("snapshot IDs differ across identical runs: %s vs %s",
			first.Snapshot.SnapshotID, second.Snapshot.SnapshotID)
	}
}
