// Package equity builds equity curves and computes drawdown figures. All
// drawdown math, historical and live, flows through one PeakTracker
// primitive: two divergent implementations of "drawdown" are a direct
// source of dashboard/rule disagreement.
package equity

import "prop-risk-engine/internal/domain"

// PeakTracker tracks the comparison peak for drawdown accounting. Static
// models keep the peak fixed at its initial value; trailing models move it
// up whenever a higher value is observed, never down.
type PeakTracker struct {
	model domain.DrawdownModel
	peak  float64
}

// NewPeakTracker creates a tracker with the peak seeded at initial.
func NewPeakTracker(model domain.DrawdownModel, initial float64) *PeakTracker {
	return &PeakTracker{model: model, peak: initial}
}

// Observe feeds one value to the tracker. Static models ignore it.
func (t *PeakTracker) Observe(value float64) {
	if t.model.Trailing() && value > t.peak {
		t.peak = value
	}
}

// Peak returns the current comparison peak.
func (t *PeakTracker) Peak() float64 {
	return t.peak
}

// Drawdown returns the decline from the peak to current, clamped at zero,
// as an absolute figure and as percent points of the peak. The percent is
// nil when the peak is not positive.
func (t *PeakTracker) Drawdown(current float64) (usd float64, pct *float64) {
	usd = t.peak - current
	if usd < 0 {
		usd = 0
	}
	if t.peak > 0 {
		p := usd / t.peak * 100
		pct = &p
	}
	return usd, pct
}

// LiveInput carries everything live drawdown needs. Peak values are the
// running highs maintained by the caller across refreshes; inception values
// anchor the static models.
type LiveInput struct {
	Model          domain.DrawdownModel
	InitialBalance float64
	InitialEquity  float64
	PeakBalance    float64
	PeakEquity     float64
	Balance        float64
	Equity         float64
}

// Live computes the current drawdown for a live balance/equity pair under
// the given accounting model.
func Live(in LiveInput) (usd float64, pct *float64) {
	initial := in.InitialEquity
	peak := in.PeakEquity
	current := in.Equity
	if in.Model.BalanceBased() {
		initial = in.InitialBalance
		peak = in.PeakBalance
		current = in.Balance
	}

	tracker := NewPeakTracker(in.Model, initial)
	tracker.Observe(peak)
	tracker.Observe(current)
	return tracker.Drawdown(current)
}
