package reconstruct

import (
	"sort"

	"prop-risk-engine/internal/domain"
)

// SortRecords orders records by (timestamp ASC, role open-before-close,
// correlation_id ASC, symbol ASC). Opens sort before closes at equal
// timestamps so a position opened and closed in the same second still
// matches. The remaining keys are tie-breakers for deterministic output.
func SortRecords(records []domain.RawExecutionRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return compareRecords(records[i], records[j]) < 0
	})
}

// compareRecords returns:
//   - negative if a < b
//   - zero if a == b
//   - positive if a > b
func compareRecords(a, b domain.RawExecutionRecord) int {
	if a.Timestamp != b.Timestamp {
		if a.Timestamp < b.Timestamp {
			return -1
		}
		return 1
	}
	if ra, rb := roleRank(a.Role), roleRank(b.Role); ra != rb {
		return ra - rb
	}
	if a.PositionCorrelationID != b.PositionCorrelationID {
		if a.PositionCorrelationID < b.PositionCorrelationID {
			return -1
		}
		return 1
	}
	if a.Symbol != b.Symbol {
		if a.Symbol < b.Symbol {
			return -1
		}
		return 1
	}
	return 0
}

func roleRank(role string) int {
	if role == domain.RoleOpen {
		return 0
	}
	return 1
}
