// Package compliance evaluates a firm's rulebook against current account
// metrics and produces per-rule headroom plus an aggregate snapshot.
package compliance

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"prop-risk-engine/internal/domain"
)

// Evaluator evaluates funded-account rules.
type Evaluator struct{}

// NewEvaluator creates a new rule evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate runs every rule against the metrics snapshot and returns the
// evaluations grouped by category with a rolled-up headroom summary.
// computedAt is the snapshot timestamp in Unix seconds.
func (e *Evaluator) Evaluate(accountID string, rules []domain.RuleDefinition, m domain.AccountMetrics, computedAt int64) *domain.ComplianceSnapshot {
	byCategory := make(map[string][]domain.RuleEvaluation)
	headroom := domain.HeadroomSummary{}
	firstDrawdown := true
	firstDailyLoss := true

	for _, rule := range rules {
		var eval domain.RuleEvaluation
		switch rule.Type {
		case domain.RuleMaxDrawdownPct:
			eval = e.evaluateMaxDrawdown(rule, m)
			// Tightest remaining distance wins the summary.
			if firstDrawdown || eval.RemainingAbsolute < headroom.MaxDrawdownRemainingUsd {
				headroom.MaxDrawdownRemainingUsd = eval.RemainingAbsolute
				headroom.MaxDrawdownRemainingPct = eval.RemainingPercent
				firstDrawdown = false
			}
		case domain.RuleDailyLossPct:
			eval = e.evaluateDailyLoss(rule, m)
			if firstDailyLoss || eval.RemainingAbsolute < headroom.DailyLossRemainingUsd {
				headroom.DailyLossRemainingUsd = eval.RemainingAbsolute
				headroom.DailyLossRemainingPct = eval.RemainingPercent
				firstDailyLoss = false
			}
		case domain.RuleBestDayPct:
			eval = e.evaluateBestDay(rule, m)
		case domain.RuleMinAvgTradeDuration:
			eval = e.evaluateMinAvgDuration(rule, m)
		default:
			continue
		}
		byCategory[rule.Category] = append(byCategory[rule.Category], eval)
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	groups := make([]domain.CategoryEvaluations, 0, len(categories))
	for _, c := range categories {
		groups = append(groups, domain.CategoryEvaluations{Category: c, Evaluations: byCategory[c]})
	}

	return &domain.ComplianceSnapshot{
		SnapshotID: snapshotID(accountID, computedAt),
		AccountID:  accountID,
		ComputedAt: computedAt,
		Groups:     groups,
		Headroom:   headroom,
	}
}

// snapshotID derives a name-based UUID from (account, computed_at) so that
// identical inputs reproduce identical snapshots.
func snapshotID(accountID string, computedAt int64) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s|%d", accountID, computedAt))).String()
}

// evaluateMaxDrawdown measures used drawdown against the rule's limit. The
// base resolves per the rule's model: trailing rules measure against the
// running peak, static rules against the fixed inception value.
func (e *Evaluator) evaluateMaxDrawdown(rule domain.RuleDefinition, m domain.AccountMetrics) domain.RuleEvaluation {
	var base, used float64
	if rule.Model == domain.RuleModelTrailing {
		base = m.PeakEquity
		current := m.Equity
		if rule.Basis == domain.BasisBalance {
			base = m.PeakBalance
			current = m.Balance
		}
		used = base - current
	} else {
		base = m.InitialEquity
		current := m.Equity
		if rule.Basis == domain.BasisBalance {
			base = m.InitialBalance
			current = m.Balance
		}
		used = base - current
	}
	if used < 0 {
		used = 0
	}

	label := fmt.Sprintf("Max drawdown %.4g%% (%s %s)", rule.Limit, rule.Model, rule.Basis)
	return e.headroomEvaluation(rule, base, used, label)
}

// evaluateDailyLoss measures today's loss against the start-of-day equity.
func (e *Evaluator) evaluateDailyLoss(rule domain.RuleDefinition, m domain.AccountMetrics) domain.RuleEvaluation {
	base := m.StartOfDayEquity
	lossToday := base - m.Equity
	if lossToday < 0 {
		lossToday = 0
	}

	label := fmt.Sprintf("Daily loss %.4g%%", rule.Limit)
	return e.headroomEvaluation(rule, base, lossToday, label)
}

// headroomEvaluation applies the shared limit/ratio/remaining math for
// survival-style rules. limit = rule percent x base; all division guarded.
func (e *Evaluator) headroomEvaluation(rule domain.RuleDefinition, base, used float64, label string) domain.RuleEvaluation {
	limit := rule.Limit / 100 * base

	ratio := 0.0
	if limit > 0 {
		ratio = used / limit
	}
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}
	remainingPct := 0.0
	if base > 0 {
		remainingPct = remaining / base * 100
	}

	return domain.RuleEvaluation{
		RuleID:            rule.ID,
		Category:          rule.Category,
		UsedRatio:         ratio,
		RemainingAbsolute: remaining,
		RemainingPercent:  remainingPct,
		Zone:              classifyZone(ratio, rule.Severity),
		Label:             label,
	}
}

// evaluateBestDay flags accounts whose single best day exceeds the allowed
// share of total profit style limits. Informational: no headroom figures.
func (e *Evaluator) evaluateBestDay(rule domain.RuleDefinition, m domain.AccountMetrics) domain.RuleEvaluation {
	exceeded := m.BestDayProfitPct > rule.Limit
	return e.informationalEvaluation(rule, exceeded,
		fmt.Sprintf("Best day %.4g%% vs limit %.4g%%", m.BestDayProfitPct, rule.Limit))
}

// evaluateMinAvgDuration flags accounts whose average trade duration falls
// below the rule's threshold in seconds.
func (e *Evaluator) evaluateMinAvgDuration(rule domain.RuleDefinition, m domain.AccountMetrics) domain.RuleEvaluation {
	violated := m.AvgTradeDurationSec < rule.Limit
	return e.informationalEvaluation(rule, violated,
		fmt.Sprintf("Avg trade duration %.0fs vs minimum %.0fs", m.AvgTradeDurationSec, rule.Limit))
}

func (e *Evaluator) informationalEvaluation(rule domain.RuleDefinition, violated bool, label string) domain.RuleEvaluation {
	ratio := 0.0
	if violated {
		ratio = 1.0
	}
	return domain.RuleEvaluation{
		RuleID:        rule.ID,
		Category:      rule.Category,
		UsedRatio:     ratio,
		Zone:          classifyZone(ratio, rule.Severity),
		Label:         label,
		Informational: true,
	}
}

// classifyZone applies the canonical threshold scheme. It is the only zone
// classification in the codebase and must stay that way: a second threshold
// table is how dashboards and evaluators start disagreeing.
func classifyZone(ratio float64, severity string) domain.Zone {
	var zone domain.Zone
	switch {
	case ratio >= 1.0:
		zone = domain.ZoneBreach
	case ratio >= 0.85:
		zone = domain.ZoneDanger
	case ratio >= 0.60:
		zone = domain.ZoneWarning
	default:
		zone = domain.ZoneSafe
	}

	if zone == domain.ZoneBreach && severity != domain.SeverityCritical {
		zone = domain.ZoneDanger
	}
	return zone
}
