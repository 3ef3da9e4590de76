package domain

// RuleDefinition describes one rule from a funded-account rulebook.
// Limit is in percent points for percentage rules (5 means 5%) and in
// seconds for duration rules.
type RuleDefinition struct {
	ID       string
	Category string // "survival" | "behavior" | "execution" | "payout"
	Type     string // rule type constant below
	Limit    float64
	Basis    string // "balance" | "equity"
	Model    string // "static" | "trailing"
	Severity string // "critical" | "warning" | "info"
}

// Rule type constants
const (
	RuleMaxDrawdownPct      = "max-drawdown-pct"
	RuleDailyLossPct        = "daily-loss-pct"
	RuleBestDayPct          = "best-day-pct"
	RuleMinAvgTradeDuration = "min-avg-trade-duration"
)

// Rule category constants
const (
	CategorySurvival  = "survival"
	CategoryBehavior  = "behavior"
	CategoryExecution = "execution"
	CategoryPayout    = "payout"
)

// Rule basis constants
const (
	BasisBalance = "balance"
	BasisEquity  = "equity"
)

// Rule model constants
const (
	RuleModelStatic   = "static"
	RuleModelTrailing = "trailing"
)

// Rule severity constants
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Zone classifies rule headroom. Canonical scheme: ratio >= 1.0 breach,
// >= 0.85 danger, >= 0.60 warning, else safe. For non-critical rules a
// breach collapses to danger.
type Zone string

const (
	ZoneSafe    Zone = "safe"
	ZoneWarning Zone = "warning"
	ZoneDanger  Zone = "danger"
	ZoneBreach  Zone = "breach"
)

// RuleEvaluation is the outcome of evaluating one rule against current
// account metrics. Behavioral rules are informational: they carry a zone
// and label but no headroom figures.
type RuleEvaluation struct {
	RuleID            string
	Category          string
	UsedRatio         float64
	RemainingAbsolute float64
	RemainingPercent  float64 // remaining as % of the rule's base
	Zone              Zone
	Label             string
	Informational     bool
}

// CategoryEvaluations groups evaluations under one rule category.
type CategoryEvaluations struct {
	Category    string
	Evaluations []RuleEvaluation
}

// HeadroomSummary rolls up the tightest remaining distance before the
// survival limits are hit.
type HeadroomSummary struct {
	MaxDrawdownRemainingUsd float64
	MaxDrawdownRemainingPct float64
	DailyLossRemainingUsd   float64
	DailyLossRemainingPct   float64
}

// ComplianceSnapshot is the aggregate compliance state of one account at a
// point in time.
type ComplianceSnapshot struct {
	SnapshotID string
	AccountID  string
	ComputedAt int64 // Unix seconds
	Groups     []CategoryEvaluations
	Headroom   HeadroomSummary
}

// AccountMetrics is the live metrics snapshot the compliance evaluator
// reads. Supplied by the caller; the core never fetches it.
type AccountMetrics struct {
	InitialBalance      float64 // balance at account inception
	InitialEquity       float64 // equity at account inception
	Balance             float64
	Equity              float64
	StartOfDayEquity    float64
	PeakBalance         float64 // highest observed balance
	PeakEquity          float64 // highest observed equity
	BestDayProfitPct    float64 // best single-day profit in percent points
	AvgTradeDurationSec float64
}
