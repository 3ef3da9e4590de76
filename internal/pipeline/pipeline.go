// Package pipeline composes the four compute stages for one account:
// reconstruction, equity/drawdown, performance statistics, and rule
// compliance. The composition itself is a pure function; the Runner adds
// store wiring around it for callers that persist results.
package pipeline

import (
	"prop-risk-engine/internal/compliance"
	"prop-risk-engine/internal/domain"
	"prop-risk-engine/internal/equity"
	"prop-risk-engine/internal/performance"
	"prop-risk-engine/internal/reconstruct"
)

// AccountInput carries everything one evaluation needs. All fields are
// plain values supplied by the caller; nothing is fetched.
type AccountInput struct {
	AccountID  string
	Records    []domain.RawExecutionRecord
	Rules      []domain.RuleDefinition
	Metrics    domain.AccountMetrics
	Model      domain.DrawdownModel
	ComputedAt int64 // snapshot timestamp, Unix seconds
}

// Result is the full output of one account evaluation.
type Result struct {
	Trades      []domain.ReconstructedTrade
	EquityCurve []domain.EquityPoint
	Drawdown    domain.DrawdownResult
	Performance domain.PerformanceMetrics
	Snapshot    *domain.ComplianceSnapshot
}

// Evaluate runs the full pipeline on in-memory inputs. Stage order is
// reconstruct -> {equity, performance} -> compliance; the middle two do not
// depend on each other. Deterministic: identical inputs yield identical
// results, so recomputation is always safe.
func Evaluate(in AccountInput) *Result {
	trades := reconstruct.Reconstruct(in.AccountID, in.Records, in.Metrics.InitialBalance)

	curve := equity.BuildCurve(in.Metrics.InitialEquity, trades)
	drawdown := equity.Compute(curve, equity.LiveInput{
		Model:          in.Model,
		InitialBalance: in.Metrics.InitialBalance,
		InitialEquity:  in.Metrics.InitialEquity,
		PeakBalance:    in.Metrics.PeakBalance,
		PeakEquity:     in.Metrics.PeakEquity,
		Balance:        in.Metrics.Balance,
		Equity:         in.Metrics.Equity,
	})

	perf := performance.Compute(trades, in.Metrics.InitialEquity)
	snapshot := compliance.NewEvaluator().Evaluate(in.AccountID, in.Rules, in.Metrics, in.ComputedAt)

	return &Result{
		Trades:      trades,
		EquityCurve: curve,
		Drawdown:    drawdown,
		Performance: perf,
		Snapshot:    snapshot,
	}
}
