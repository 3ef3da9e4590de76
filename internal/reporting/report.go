package reporting

import "time"

// Report represents one account's evaluation report.
type Report struct {
	// Metadata
	GeneratedAt time.Time
	AccountID   string

	// Trade Summary
	TradeSummary TradeSummary

	// Performance (nullable ratios rendered as "n/a")
	Performance PerformanceSection

	// Drawdown
	Drawdown DrawdownSection

	// Rule Evaluations (sorted by category, rule_id)
	RuleEvaluations []RuleEvaluationRow

	// Headroom
	Headroom HeadroomSection

	// Trades (sorted by close timestamp, trade_id)
	Trades []TradeRow
}

// TradeSummary contains reconstruction totals.
type TradeSummary struct {
	TotalTrades       int
	SynthesizedTrades int
	TotalVolume       float64
	NetProfit         float64
	FirstCloseAt      int64 // Unix seconds, 0 when no trades
	LastCloseAt       int64
}

// PerformanceSection holds the statistics table. Pointer fields stay nil
// when the underlying ratio is undefined.
type PerformanceSection struct {
	WinRate      float64
	ProfitFactor *float64
	Expectancy   float64
	AvgWin       float64
	AvgLoss      float64
	Sharpe       *float64
	Sortino      *float64
	Calmar       *float64
	MAR          *float64
	CAGR         *float64
}

// DrawdownSection summarizes the historical curve and the live state.
type DrawdownSection struct {
	Model              string
	MaxPeakToTroughPct float64
	MaxPeakToTroughUsd float64
	CurrentUsd         float64
	CurrentPct         *float64
}

// RuleEvaluationRow represents one rule in the evaluation table.
type RuleEvaluationRow struct {
	Category          string
	RuleID            string
	Label             string
	Zone              string
	UsedRatio         float64
	RemainingAbsolute float64
	RemainingPercent  float64
	Informational     bool
}

// HeadroomSection is the rolled-up distance to the binding limits.
type HeadroomSection struct {
	DailyLossRemainingUsd   float64
	DailyLossRemainingPct   float64
	MaxDrawdownRemainingUsd float64
	MaxDrawdownRemainingPct float64
}

// TradeRow represents one reconstructed trade in the trade table.
type TradeRow struct {
	TradeID        string
	Symbol         string
	Direction      string
	MatchedVolume  float64
	EntryPrice     float64
	ExitPrice      float64
	RealizedProfit float64
	OpenTimestamp  int64
	CloseTimestamp int64
	Outcome        string
	Confidence     string
}
