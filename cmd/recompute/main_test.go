package main

import (
	"math"
	"testing"
)

func TestResolveMetrics_OmittedValuesCascade(t *testing.T) {
	nan := math.NaN()
	m := resolveMetrics(100000, nan, nan, nan, nan, nan, nan, 0, 0)

	if m.InitialEquity != 100000 || m.Balance != 100000 || m.Equity != 100000 {
		t.Errorf("expected cascade from initial balance, got %+v", m)
	}
	if m.PeakBalance != 100000 || m.PeakEquity != 100000 {
		t.Errorf("expected peaks to default, got %+v", m)
	}
}

func TestResolveMetrics_ExplicitZeroEquityKept(t *testing.T) {
	nan := math.NaN()
	m := resolveMetrics(100000, nan, nan, 0, nan, nan, nan, 0, 0)

	if m.Equity != 0 {
		t.Errorf("expected supplied zero equity to survive, got %f", m.Equity)
	}
	if m.Balance != 100000 {
		t.Errorf("expected balance to still default to initial, got %f", m.Balance)
	}
}
