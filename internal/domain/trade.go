package domain

// ReconstructedTrade represents one round-trip trade produced by FIFO
// matching of open and close execution legs. Immutable once produced.
type ReconstructedTrade struct {
	TradeID   string // deterministic hash
	AccountID string
	Symbol    string
	Direction string // "long" | "short"

	EntryPrice     float64
	ExitPrice      float64
	MatchedVolume  float64 // lots matched between the open and close legs
	RealizedProfit float64 // pro-rata share of the close leg's profit

	OpenTimestamp  int64 // Unix seconds
	CloseTimestamp int64 // Unix seconds

	Outcome     string   // "win" | "loss" | "breakeven", from sign of profit
	Confidence  string   // "full" | "synthesized"
	RiskPercent *float64 // profit / baseline balance, nil when no baseline
}

// Trade direction constants
const (
	DirectionLong  = "long"
	DirectionShort = "short"
)

// Trade outcome constants
const (
	OutcomeWin       = "win"
	OutcomeLoss      = "loss"
	OutcomeBreakeven = "breakeven"
)

// Reconstruction confidence constants. A synthesized trade is produced from
// a close leg with no matching open lot (history window starts mid-position)
// and uses the close record's own price/time as both entry and exit.
const (
	ConfidenceFull        = "full"
	ConfidenceSynthesized = "synthesized"
)
