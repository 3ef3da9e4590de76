// Package reconstruct turns raw broker execution legs into round-trip trades
// via FIFO matching of open and close legs. All functions are pure: no state
// survives a call, so identical input always yields identical output.
package reconstruct

import (
	"math"

	"prop-risk-engine/internal/domain"
	"prop-risk-engine/internal/idhash"
)

const volumeEpsilon = 1e-9

// openLot is matcher state for one still-open execution leg. Lots exist only
// inside a single Reconstruct call and are never shared across calls.
type openLot struct {
	symbol          string
	direction       string
	remainingVolume float64
	entryPrice      float64
	entryTimestamp  int64
}

// Reconstruct matches open and close legs per symbol in FIFO order and
// returns the resulting trades ordered by close time. Records failing
// validation are filtered, never raised: one bad record must not invalidate
// an entire history. baselineBalance, when positive, is used to derive each
// trade's RiskPercent.
func Reconstruct(accountID string, records []domain.RawExecutionRecord, baselineBalance float64) []domain.ReconstructedTrade {
	valid := filterValid(records)
	SortRecords(valid)

	queues := make(map[string][]*openLot)
	trades := make([]domain.ReconstructedTrade, 0, len(valid))
	sequence := 0

	for _, rec := range valid {
		switch rec.Role {
		case domain.RoleOpen:
			queues[rec.Symbol] = append(queues[rec.Symbol], &openLot{
				symbol:          rec.Symbol,
				direction:       directionFromOpenSide(rec.Side),
				remainingVolume: rec.Volume,
				entryPrice:      rec.Price,
				entryTimestamp:  rec.Timestamp,
			})
		case domain.RoleClose:
			trades = matchClose(accountID, rec, queues, baselineBalance, trades, &sequence)
		}
	}

	return trades
}

// matchClose drains lots from the head of the symbol's queue, emitting one
// trade per matched lot. Profit is allocated pro rata against the close
// leg's total volume so that allocations sum exactly to the leg's recorded
// profit. A close with no open context synthesizes a degenerate trade rather
// than being dropped silently.
func matchClose(accountID string, rec domain.RawExecutionRecord, queues map[string][]*openLot, baselineBalance float64, trades []domain.ReconstructedTrade, sequence *int) []domain.ReconstructedTrade {
	queue := queues[rec.Symbol]
	closeRemaining := rec.Volume

	for closeRemaining > volumeEpsilon && len(queue) > 0 {
		lot := queue[0]
		matched := math.Min(lot.remainingVolume, closeRemaining)
		profit := rec.RealizedProfit * (matched / rec.Volume)

		trades = append(trades, buildTrade(accountID, lot, rec, matched, profit, baselineBalance, *sequence, domain.ConfidenceFull))
		*sequence++

		lot.remainingVolume -= matched
		closeRemaining -= matched
		if lot.remainingVolume <= volumeEpsilon {
			queue = queue[1:]
		}
	}

	// Leftover close volume with an empty queue: the history window started
	// mid-position. Synthesize a low-confidence trade from the close leg
	// itself so volume and profit stay conserved.
	if closeRemaining > volumeEpsilon {
		profit := rec.RealizedProfit * (closeRemaining / rec.Volume)
		synthetic := &openLot{
			symbol:          rec.Symbol,
			direction:       directionFromCloseSide(rec.Side),
			remainingVolume: closeRemaining,
			entryPrice:      rec.Price,
			entryTimestamp:  rec.Timestamp,
		}
		trades = append(trades, buildTrade(accountID, synthetic, rec, closeRemaining, profit, baselineBalance, *sequence, domain.ConfidenceSynthesized))
		*sequence++
	}

	queues[rec.Symbol] = queue
	return trades
}

func buildTrade(accountID string, lot *openLot, closeRec domain.RawExecutionRecord, matched, profit, baselineBalance float64, sequence int, confidence string) domain.ReconstructedTrade {
	trade := domain.ReconstructedTrade{
		TradeID:        idhash.ComputeTradeID(accountID, lot.symbol, lot.direction, lot.entryTimestamp, closeRec.Timestamp, sequence),
		AccountID:      accountID,
		Symbol:         lot.symbol,
		Direction:      lot.direction,
		EntryPrice:     lot.entryPrice,
		ExitPrice:      closeRec.Price,
		MatchedVolume:  matched,
		RealizedProfit: profit,
		OpenTimestamp:  lot.entryTimestamp,
		CloseTimestamp: closeRec.Timestamp,
		Outcome:        outcomeFromProfit(profit),
		Confidence:     confidence,
	}

	if baselineBalance > 0 {
		risk := profit / baselineBalance * 100
		trade.RiskPercent = &risk
	}

	return trade
}

// filterValid drops records with an empty symbol, non-finite price or
// volume, non-positive volume, or an unrecognized role or side.
func filterValid(records []domain.RawExecutionRecord) []domain.RawExecutionRecord {
	valid := make([]domain.RawExecutionRecord, 0, len(records))
	for _, rec := range records {
		if rec.Symbol == "" {
			continue
		}
		if math.IsNaN(rec.Price) || math.IsInf(rec.Price, 0) {
			continue
		}
		if math.IsNaN(rec.Volume) || math.IsInf(rec.Volume, 0) || rec.Volume <= 0 {
			continue
		}
		if rec.Role != domain.RoleOpen && rec.Role != domain.RoleClose {
			continue
		}
		if rec.Side != domain.SideBuy && rec.Side != domain.SideSell {
			continue
		}
		valid = append(valid, rec)
	}
	return valid
}

// directionFromOpenSide maps the open leg's side to the trade direction:
// buying to open is a long, selling to open is a short.
func directionFromOpenSide(side string) string {
	if side == domain.SideBuy {
		return domain.DirectionLong
	}
	return domain.DirectionShort
}

// directionFromCloseSide infers direction for a synthesized trade from the
// close leg alone: selling to close implies a long was open.
func directionFromCloseSide(side string) string {
	if side == domain.SideSell {
		return domain.DirectionLong
	}
	return domain.DirectionShort
}

func outcomeFromProfit(profit float64) string {
	switch {
	case profit > volumeEpsilon:
		return domain.OutcomeWin
	case profit < -volumeEpsilon:
		return domain.OutcomeLoss
	default:
		return domain.OutcomeBreakeven
	}
}
