package reporting

import (
	"fmt"
	"strings"
)

// RenderTradesCSV renders reconstructed trades as CSV string.
func RenderTradesCSV(trades []TradeRow) string {
	var sb strings.Builder

	// Header
	sb.WriteString("trade_id,symbol,direction,matched_volume,entry_price,exit_price,")
	sb.WriteString("realized_profit,open_timestamp,close_timestamp,outcome,confidence\n")

	// Rows
	for _, tr := range trades {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%.6f,%.6f,%.6f,%.6f,%d,%d,%s,%s\n",
			tr.TradeID,
			tr.Symbol,
			tr.Direction,
			tr.MatchedVolume,
			tr.EntryPrice,
			tr.ExitPrice,
			tr.RealizedProfit,
			tr.OpenTimestamp,
			tr.CloseTimestamp,
			tr.Outcome,
			tr.Confidence,
		))
	}

	return sb.String()
}

// RenderEvaluationsCSV renders rule evaluations as CSV string.
func RenderEvaluationsCSV(rows []RuleEvaluationRow) string {
	var sb strings.Builder

	sb.WriteString("category,rule_id,zone,used_ratio,remaining_usd,remaining_pct,informational\n")

	for _, e := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%.6f,%.6f,%.6f,%t\n",
			e.Category,
			e.RuleID,
			e.Zone,
			e.UsedRatio,
			e.RemainingAbsolute,
			e.RemainingPercent,
			e.Informational,
		))
	}

	return sb.String()
}
