// Package progress holds the personal record and workout resume rules. Everything here is pure:
// callers fetch and persist the documents.
package progress

import "liftlog/api/internal/domain"

// Beats reports whether candidate ranks above current: heavier wins, and at equal weight more reps wins.
func Beats(candidate, current domain.SetRecord) bool {
	if candidate.Weight != current.Weight {
		return candidate.Weight > current.Weight
	}
	return candidate.Reps > current.Reps
}

// BestSet picks the best set of a logged exercise. Ties keep the first one seen.
// The second return value is false when there are no sets, in which case nothing should be recorded.
func BestSet(sets []domain.SetRecord) (domain.SetRecord, bool) {
	if len(sets) == 0 {
		return domain.SetRecord{}, false
	}
	best := sets[0]
	for _, s := range sets[1:] {
		if Beats(s, best) {
			best = s
		}
	}
	return best, true
}

// CountsTowardRecords reports whether a best set may enter the ledger. Unloaded sets
// (bodyweight holds, planks) never do.
func CountsTowardRecords(best domain.SetRecord) bool {
	return best.Weight > 0
}
