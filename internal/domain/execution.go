// Package domain contains the core data structures shared across packages.
package domain

// RawExecutionRecord represents one broker execution leg as exported from the
// trading platform. Records are untyped on arrival; validation and matching
// happen during reconstruction.
type RawExecutionRecord struct {
	Timestamp int64  // Unix seconds
	Symbol    string // e.g. "EURUSD"
	Side      string // "buy" | "sell"
	Volume    float64
	Price     float64
	Role      string // "open" | "close"

	RealizedProfit        float64 // populated on close legs
	PositionCorrelationID string  // broker position/ticket ID, optional
	Comment               string  // broker comment field, optional
}

// Execution side constants
const (
	SideBuy  = "buy"
	SideSell = "sell"
)

// Execution role constants
const (
	RoleOpen  = "open"
	RoleClose = "close"
)
