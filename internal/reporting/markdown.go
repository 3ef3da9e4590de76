package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Account Evaluation Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Account: %s\n\n", r.AccountID))

	// Trade Summary
	sb.WriteString("## Trade Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Total Trades | %d |\n", r.TradeSummary.TotalTrades))
	sb.WriteString(fmt.Sprintf("| Synthesized Trades | %d |\n", r.TradeSummary.SynthesizedTrades))
	sb.WriteString(fmt.Sprintf("| Total Volume | %.2f |\n", r.TradeSummary.TotalVolume))
	sb.WriteString(fmt.Sprintf("| Net Profit | %.2f |\n", r.TradeSummary.NetProfit))
	sb.WriteString(fmt.Sprintf("| First Close (s) | %d |\n", r.TradeSummary.FirstCloseAt))
	sb.WriteString(fmt.Sprintf("| Last Close (s) | %d |\n", r.TradeSummary.LastCloseAt))
	sb.WriteString("\n")

	// Performance
	sb.WriteString("## Performance\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Win Rate | %.4f |\n", r.Performance.WinRate))
	sb.WriteString(fmt.Sprintf("| Profit Factor | %s |\n", formatNullable(r.Performance.ProfitFactor)))
	sb.WriteString(fmt.Sprintf("| Expectancy | %.4f |\n", r.Performance.Expectancy))
	sb.WriteString(fmt.Sprintf("| Avg Win | %.4f |\n", r.Performance.AvgWin))
	sb.WriteString(fmt.Sprintf("| Avg Loss | %.4f |\n", r.Performance.AvgLoss))
	sb.WriteString(fmt.Sprintf("| Sharpe | %s |\n", formatNullable(r.Performance.Sharpe)))
	sb.WriteString(fmt.Sprintf("| Sortino | %s |\n", formatNullable(r.Performance.Sortino)))
	sb.WriteString(fmt.Sprintf("| Calmar | %s |\n", formatNullable(r.Performance.Calmar)))
	sb.WriteString(fmt.Sprintf("| MAR | %s |\n", formatNullable(r.Performance.MAR)))
	sb.WriteString(fmt.Sprintf("| CAGR | %s |\n", formatNullable(r.Performance.CAGR)))
	sb.WriteString("\n")

	// Drawdown
	sb.WriteString("## Drawdown\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Model | %s |\n", r.Drawdown.Model))
	sb.WriteString(fmt.Sprintf("| Max Peak-to-Trough %% | %.4f |\n", r.Drawdown.MaxPeakToTroughPct))
	sb.WriteString(fmt.Sprintf("| Max Peak-to-Trough USD | %.2f |\n", r.Drawdown.MaxPeakToTroughUsd))
	sb.WriteString(fmt.Sprintf("| Current USD | %.2f |\n", r.Drawdown.CurrentUsd))
	sb.WriteString(fmt.Sprintf("| Current %% | %s |\n", formatNullable(r.Drawdown.CurrentPct)))
	sb.WriteString("\n")

	// Rule Evaluations
	sb.WriteString("## Rule Evaluations\n\n")
	if len(r.RuleEvaluations) > 0 {
		sb.WriteString("| Category | Rule | Zone | Used | Remaining USD | Remaining % | Info |\n")
		sb.WriteString("|----------|------|------|------|---------------|-------------|------|\n")
		for _, e := range r.RuleEvaluations {
			info := ""
			if e.Informational {
				info = "yes"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %.4f | %.2f | %.4f | %s |\n",
				e.Category, e.RuleID, e.Zone, e.UsedRatio,
				e.RemainingAbsolute, e.RemainingPercent, info))
		}
	} else {
		sb.WriteString("No rules evaluated.\n")
	}
	sb.WriteString("\n")

	// Headroom
	sb.WriteString("## Headroom\n\n")
	sb.WriteString("| Limit | Remaining USD | Remaining % |\n")
	sb.WriteString("|-------|---------------|-------------|\n")
	sb.WriteString(fmt.Sprintf("| Daily Loss | %.2f | %.4f |\n",
		r.Headroom.DailyLossRemainingUsd, r.Headroom.DailyLossRemainingPct))
	sb.WriteString(fmt.Sprintf("| Max Drawdown | %.2f | %.4f |\n",
		r.Headroom.MaxDrawdownRemainingUsd, r.Headroom.MaxDrawdownRemainingPct))
	sb.WriteString("\n")

	// Trades
	sb.WriteString("## Trades\n\n")
	if len(r.Trades) > 0 {
		sb.WriteString("| Symbol | Direction | Volume | Entry | Exit | Profit | Outcome | Confidence |\n")
		sb.WriteString("|--------|-----------|--------|-------|------|--------|---------|------------|\n")
		for _, tr := range r.Trades {
			sb.WriteString(fmt.Sprintf("| %s | %s | %.2f | %.5f | %.5f | %.2f | %s | %s |\n",
				tr.Symbol, tr.Direction, tr.MatchedVolume,
				tr.EntryPrice, tr.ExitPrice, tr.RealizedProfit,
				tr.Outcome, tr.Confidence))
		}
	} else {
		sb.WriteString("No trades reconstructed.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

func formatNullable(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", *v)
}
