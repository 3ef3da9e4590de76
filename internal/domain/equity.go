package domain

// EquityPoint is one point on an account's historical equity curve.
// Index 0 is the baseline; point i reflects equity after trade i-1.
type EquityPoint struct {
	Index  int
	Equity float64
}

// DrawdownModel selects the comparison peak for live drawdown accounting.
// Static models fix the peak at account inception; trailing models update
// the peak upward whenever a new high is observed, never downward.
type DrawdownModel string

const (
	ModelStaticBalance   DrawdownModel = "static_balance"
	ModelStaticEquity    DrawdownModel = "static_equity"
	ModelTrailingBalance DrawdownModel = "trailing_balance"
	ModelTrailingEquity  DrawdownModel = "trailing_equity"
)

// Trailing reports whether the model updates its peak on new highs.
func (m DrawdownModel) Trailing() bool {
	return m == ModelTrailingBalance || m == ModelTrailingEquity
}

// BalanceBased reports whether the model tracks balance rather than equity.
func (m DrawdownModel) BalanceBased() bool {
	return m == ModelStaticBalance || m == ModelTrailingBalance
}

// Valid reports whether the model is one of the four accounting models.
func (m DrawdownModel) Valid() bool {
	switch m {
	case ModelStaticBalance, ModelStaticEquity, ModelTrailingBalance, ModelTrailingEquity:
		return true
	}
	return false
}

// DrawdownResult holds the drawdown figures for one account. Historical
// fields come from the equity curve; the current fields are computed from
// the live balance/equity pair under the active accounting model.
// Percent fields are in percent points (1.905 means 1.905%).
type DrawdownResult struct {
	MaxPeakToTroughPct  float64 // worst decline from a running peak
	MaxPeakToTroughUsd  float64
	MaxStartToTroughPct float64 // decline from the fixed baseline, clamped at 0
	MaxStartToTroughUsd float64

	Model              DrawdownModel
	CurrentDrawdownUsd float64
	CurrentDrawdownPct *float64 // nil when the comparison peak is 0
}
