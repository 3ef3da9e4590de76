package equity

import "prop-risk-engine/internal/domain"

// BuildCurve produces the historical equity series from a baseline value
// and an ordered trade list: equity[0] = baseline, each later point adds
// one trade's realized profit.
func BuildCurve(baseline float64, trades []domain.ReconstructedTrade) []domain.EquityPoint {
	points := make([]domain.EquityPoint, 0, len(trades)+1)
	points = append(points, domain.EquityPoint{Index: 0, Equity: baseline})

	running := baseline
	for i, tr := range trades {
		running += tr.RealizedProfit
		points = append(points, domain.EquityPoint{Index: i + 1, Equity: running})
	}
	return points
}

// Historical computes peak-to-trough and start-to-trough drawdown over an
// equity series. Peak-to-trough tracks a running maximum through a trailing
// tracker; start-to-trough compares the fixed baseline (point 0) to the
// series minimum through a static tracker, so a series that never dips
// below baseline reports zero.
func Historical(points []domain.EquityPoint) domain.DrawdownResult {
	result := domain.DrawdownResult{}
	if len(points) == 0 {
		return result
	}

	baseline := points[0].Equity
	trailing := NewPeakTracker(domain.ModelTrailingEquity, baseline)
	static := NewPeakTracker(domain.ModelStaticEquity, baseline)

	for _, p := range points {
		trailing.Observe(p.Equity)

		usd, pct := trailing.Drawdown(p.Equity)
		if usd > result.MaxPeakToTroughUsd {
			result.MaxPeakToTroughUsd = usd
		}
		if pct != nil && *pct > result.MaxPeakToTroughPct {
			result.MaxPeakToTroughPct = *pct
		}

		usd, pct = static.Drawdown(p.Equity)
		if usd > result.MaxStartToTroughUsd {
			result.MaxStartToTroughUsd = usd
		}
		if pct != nil && *pct > result.MaxStartToTroughPct {
			result.MaxStartToTroughPct = *pct
		}
	}
	return result
}

// Compute combines the historical curve figures with the live drawdown
// under the account's accounting model into one DrawdownResult.
func Compute(points []domain.EquityPoint, live LiveInput) domain.DrawdownResult {
	result := Historical(points)
	result.Model = live.Model
	result.CurrentDrawdownUsd, result.CurrentDrawdownPct = Live(live)
	return result
}
