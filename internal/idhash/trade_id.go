package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComputeTradeID computes a deterministic trade_id using SHA256.
// Formula: SHA256(account_id|symbol|direction|open_ts|close_ts|sequence)
// Sequence disambiguates multiple matches emitted from one close leg.
// Returns hex-encoded hash (64 characters).
func ComputeTradeID(
	accountID string,
	symbol string,
	direction string,
	openTimestamp int64,
	closeTimestamp int64,
	sequence int,
) string {
	data := fmt.Sprintf("%s|%s|%s|%d|%d|%d",
		accountID,
		symbol,
		direction,
		openTimestamp,
		closeTimestamp,
		sequence,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
