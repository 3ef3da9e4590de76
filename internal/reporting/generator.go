// Package reporting builds flat-file report artifacts (Markdown, CSV) from
// pipeline results. Rendering is deterministic: rows are sorted and the
// clock is injectable.
package reporting

import (
	"sort"
	"time"

	"prop-risk-engine/internal/domain"
	"prop-risk-engine/internal/pipeline"
)

// Generator produces reports from pipeline results.
type Generator struct {
	now func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate builds a complete report for one evaluated account.
func (g *Generator) Generate(accountID string, result *pipeline.Result) *Report {
	return &Report{
		GeneratedAt:     g.now(),
		AccountID:       accountID,
		TradeSummary:    buildTradeSummary(result.Trades),
		Performance:     buildPerformance(result.Performance),
		Drawdown:        buildDrawdown(result.Drawdown),
		RuleEvaluations: buildRuleEvaluations(result.Snapshot),
		Headroom: HeadroomSection{
			DailyLossRemainingUsd:   result.Snapshot.Headroom.DailyLossRemainingUsd,
			DailyLossRemainingPct:   result.Snapshot.Headroom.DailyLossRemainingPct,
			MaxDrawdownRemainingUsd: result.Snapshot.Headroom.MaxDrawdownRemainingUsd,
			MaxDrawdownRemainingPct: result.Snapshot.Headroom.MaxDrawdownRemainingPct,
		},
		Trades:          buildTradeRows(result.Trades),
	}
}

func buildTradeSummary(trades []domain.ReconstructedTrade) TradeSummary {
	summary := TradeSummary{TotalTrades: len(trades)}
	for i, tr := range trades {
		if tr.Confidence == domain.ConfidenceSynthesized {
			summary.SynthesizedTrades++
		}
		summary.TotalVolume += tr.MatchedVolume
		summary.NetProfit += tr.RealizedProfit
		if i == 0 || tr.CloseTimestamp < summary.FirstCloseAt {
			summary.FirstCloseAt = tr.CloseTimestamp
		}
		if tr.CloseTimestamp > summary.LastCloseAt {
			summary.LastCloseAt = tr.CloseTimestamp
		}
	}
	return summary
}

func buildPerformance(m domain.PerformanceMetrics) PerformanceSection {
	return PerformanceSection{
		WinRate:      m.WinRate,
		ProfitFactor: m.ProfitFactor,
		Expectancy:   m.Expectancy,
		AvgWin:       m.AvgWin,
		AvgLoss:      m.AvgLoss,
		Sharpe:       m.Sharpe,
		Sortino:      m.Sortino,
		Calmar:       m.Calmar,
		MAR:          m.MAR,
		CAGR:         m.CAGR,
	}
}

func buildDrawdown(d domain.DrawdownResult) DrawdownSection {
	return DrawdownSection{
		Model:              string(d.Model),
		MaxPeakToTroughPct: d.MaxPeakToTroughPct,
		MaxPeakToTroughUsd: d.MaxPeakToTroughUsd,
		CurrentUsd:         d.CurrentDrawdownUsd,
		CurrentPct:         d.CurrentDrawdownPct,
	}
}

// buildRuleEvaluations flattens the grouped snapshot into sorted rows.
func buildRuleEvaluations(snap *domain.ComplianceSnapshot) []RuleEvaluationRow {
	var rows []RuleEvaluationRow
	for _, group := range snap.Groups {
		for _, eval := range group.Evaluations {
			rows = append(rows, RuleEvaluationRow{
				Category:          eval.Category,
				RuleID:            eval.RuleID,
				Label:             eval.Label,
				Zone:              string(eval.Zone),
				UsedRatio:         eval.UsedRatio,
				RemainingAbsolute: eval.RemainingAbsolute,
				RemainingPercent:  eval.RemainingPercent,
				Informational:     eval.Informational,
			})
		}
	}

	// Sort by (category, rule_id)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].RuleID < rows[j].RuleID
	})
	return rows
}

// buildTradeRows converts trades to rows sorted by (close_timestamp, trade_id).
func buildTradeRows(trades []domain.ReconstructedTrade) []TradeRow {
	rows := make([]TradeRow, len(trades))
	for i, tr := range trades {
		rows[i] = TradeRow{
			TradeID:        tr.TradeID,
			Symbol:         tr.Symbol,
			Direction:      tr.Direction,
			MatchedVolume:  tr.MatchedVolume,
			EntryPrice:     tr.EntryPrice,
			ExitPrice:      tr.ExitPrice,
			RealizedProfit: tr.RealizedProfit,
			OpenTimestamp:  tr.OpenTimestamp,
			CloseTimestamp: tr.CloseTimestamp,
			Outcome:        tr.Outcome,
			Confidence:     tr.Confidence,
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CloseTimestamp != rows[j].CloseTimestamp {
			return rows[i].CloseTimestamp < rows[j].CloseTimestamp
		}
		return rows[i].TradeID < rows[j].TradeID
	})
	return rows
}
