// Package performance computes risk-adjusted return statistics from a trade
// list. Everything is recomputed from scratch on each call; there is no
// incremental state. Estimators return nil instead of failing whenever a
// precondition is unmet.
package performance

import (
	"math"

	"prop-risk-engine/internal/domain"
	"prop-risk-engine/internal/equity"
)

const secondsPerYear = 365 * 24 * 60 * 60

// Compute builds PerformanceMetrics from an ordered trade list and the
// account's starting equity. An empty trade list yields a metrics object
// with every ratio nil and TotalTrades 0.
func Compute(trades []domain.ReconstructedTrade, startEquity float64) domain.PerformanceMetrics {
	metrics := domain.PerformanceMetrics{TotalTrades: len(trades)}
	if len(trades) == 0 {
		return metrics
	}

	returns := perTradeReturns(trades, startEquity)
	metrics.Sharpe = sharpe(returns)
	metrics.Sortino = sortino(returns)

	grossProfit := 0.0
	grossLoss := 0.0
	endEquity := startEquity
	for _, tr := range trades {
		endEquity += tr.RealizedProfit
		switch tr.Outcome {
		case domain.OutcomeWin:
			metrics.Wins++
			grossProfit += tr.RealizedProfit
		case domain.OutcomeLoss:
			metrics.Losses++
			grossLoss += tr.RealizedProfit
		}
	}

	metrics.WinRate = float64(metrics.Wins) / float64(len(trades))
	if metrics.Wins > 0 {
		metrics.AvgWin = grossProfit / float64(metrics.Wins)
	}
	if metrics.Losses > 0 {
		metrics.AvgLoss = math.Abs(grossLoss) / float64(metrics.Losses)
		pf := grossProfit / math.Abs(grossLoss)
		metrics.ProfitFactor = &pf
	}
	metrics.Expectancy = metrics.WinRate*metrics.AvgWin - (1-metrics.WinRate)*metrics.AvgLoss

	years := elapsedYears(trades)
	if years != nil && startEquity > 0 {
		totalReturn := (endEquity - startEquity) / startEquity
		annualized := totalReturn / *years
		metrics.AnnualizedReturn = &annualized

		if endEquity > 0 {
			cagr := math.Pow(endEquity/startEquity, 1 / *years) - 1
			metrics.CAGR = &cagr
		}
	}

	// MAR and Calmar divide by the worst peak-to-trough drawdown as a
	// fraction. Zero drawdown is a valid "no drawdown observed" state and
	// leaves both nil.
	drawdown := equity.Historical(equity.BuildCurve(startEquity, trades)).MaxPeakToTroughPct / 100
	if drawdown > 0 {
		if metrics.AnnualizedReturn != nil {
			mar := *metrics.AnnualizedReturn / drawdown
			metrics.MAR = &mar
		}
		if metrics.CAGR != nil {
			calmar := *metrics.CAGR / drawdown
			metrics.Calmar = &calmar
		}
	}

	return metrics
}

// perTradeReturns computes r[i] = pnl[i] / equity-before-trade[i]. A zero
// denominator contributes a zero return rather than failing.
func perTradeReturns(trades []domain.ReconstructedTrade, startEquity float64) []float64 {
	returns := make([]float64, len(trades))
	running := startEquity
	for i, tr := range trades {
		if running != 0 {
			returns[i] = tr.RealizedProfit / running
		}
		running += tr.RealizedProfit
	}
	return returns
}

// sharpe is mean return over sample standard deviation. Nil with fewer than
// 2 returns or zero deviation.
func sharpe(returns []float64) *float64 {
	if len(returns) < 2 {
		return nil
	}
	mean := computeMean(returns)
	stddev := computeStddev(returns, mean)
	if stddev == 0 {
		return nil
	}
	s := mean / stddev
	return &s
}

// sortino is mean return over the sample standard deviation of negative
// returns only, with the same guards as sharpe.
func sortino(returns []float64) *float64 {
	if len(returns) < 2 {
		return nil
	}
	var negative []float64
	for _, r := range returns {
		if r < 0 {
			negative = append(negative, r)
		}
	}
	if len(negative) < 2 {
		return nil
	}
	stddev := computeStddev(negative, computeMean(negative))
	if stddev == 0 {
		return nil
	}
	s := computeMean(returns) / stddev
	return &s
}

// elapsedYears is the span between first and last trade timestamps divided
// by 365 days. Nil with fewer than 2 distinct timestamps.
func elapsedYears(trades []domain.ReconstructedTrade) *float64 {
	if len(trades) < 2 {
		return nil
	}
	first := trades[0].CloseTimestamp
	last := trades[len(trades)-1].CloseTimestamp
	if last <= first {
		return nil
	}
	years := float64(last-first) / secondsPerYear
	return &years
}

// computeMean calculates the arithmetic mean.
func computeMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// computeStddev calculates sample standard deviation (n-1 denominator).
func computeStddev(values []float64, mean float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(n-1))
}
