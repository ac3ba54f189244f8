package progress

import (
	"slices"
	"time"

	"liftlog/api/internal/domain"
)

// MaxTopPerformances is the size of every ledger leaderboard.
const MaxTopPerformances = 2

// FoldPerformance adds one observation to a ledger entry and returns the updated entry.
// A nil existing entry yields an entry holding only obs; the caller fills in its key.
//
// The observation is appended, the list is stable-sorted by (weight, reps) descending and cut to
// MaxTopPerformances. Observations with identical stats are not merged, so a repeated top set
// can take both slots.
func FoldPerformance(existing *domain.PerformanceLedgerEntry, obs domain.Performance, now time.Time) domain.PerformanceLedgerEntry {
	var entry domain.PerformanceLedgerEntry
	if existing != nil {
		entry = *existing
	}

	top := make([]domain.Performance, 0, len(entry.TopPerformances)+1)
	top = append(top, entry.TopPerformances...)
	top = append(top, obs)
	slices.SortStableFunc(top, comparePerformance)
	if len(top) > MaxTopPerformances {
		top = top[:MaxTopPerformances]
	}

	entry.TopPerformances = top
	entry.LastUpdated = now
	return entry
}

// comparePerformance orders heavier first, then more reps.
func comparePerformance(a, b domain.Performance) int {
	switch {
	case a.Weight > b.Weight:
		return -1
	case a.Weight < b.Weight:
		return 1
	case a.Reps > b.Reps:
		return -1
	case a.Reps < b.Reps:
		return 1
	}
	return 0
}
