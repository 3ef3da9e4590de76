package domain

// PerformanceMetrics holds risk-adjusted return statistics computed from a
// trade list. Ratio fields are nil whenever their preconditions are unmet
// (fewer than 2 returns, zero variance, zero drawdown, non-positive equity);
// a nil Sharpe is a normal state for a new account, not a fault.
type PerformanceMetrics struct {
	Sharpe           *float64
	Sortino          *float64
	Calmar           *float64
	MAR              *float64
	CAGR             *float64
	AnnualizedReturn *float64
	ProfitFactor     *float64 // nil when there are no losing trades

	Expectancy float64
	WinRate    float64
	AvgWin     float64
	AvgLoss    float64 // reported as a positive magnitude

	TotalTrades int
	Wins        int
	Losses      int
}
