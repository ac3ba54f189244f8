package progress_test

import (
	"math/rand"
	"testing"
	"time"

	"liftlog/api/internal/domain"
	"liftlog/api/internal/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func perf(weight float64, reps int, date time.Time) domain.Performance {
	return domain.Performance{Weight: weight, Reps: reps, Date: date}
}

func TestFoldPerformance_Scenarios(t *testing.T) {
	day1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 2)
	day3 := day1.AddDate(0, 0, 4)

	// empty ledger: first observation becomes the only record
	entry := progress.FoldPerformance(nil, perf(135, 10, day1), day1)
	require.Len(t, entry.TopPerformances, 1)
	assert.Equal(t, perf(135, 10, day1), entry.TopPerformances[0])
	assert.Equal(t, day1, entry.LastUpdated)

	// heavier set takes first place
	entry = progress.FoldPerformance(&entry, perf(155, 8, day2), day2)
	assert.Equal(t, []domain.Performance{perf(155, 8, day2), perf(135, 10, day1)}, entry.TopPerformances)

	// same weight with more reps evicts the older second place
	entry = progress.FoldPerformance(&entry, perf(135, 12, day3), day3)
	assert.Equal(t, []domain.Performance{perf(155, 8, day2), perf(135, 12, day3)}, entry.TopPerformances)
	assert.Equal(t, day3, entry.LastUpdated)
}

func TestFoldPerformance_KeepsIdentity(t *testing.T) {
	userID := primitive.NewObjectID()
	existing := &domain.PerformanceLedgerEntry{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		ExerciseName: "Deadlift",
	}
	now := time.Now().UTC()

	entry := progress.FoldPerformance(existing, perf(200, 1, now), now)
	assert.Equal(t, existing.ID, entry.ID)
	assert.Equal(t, userID, entry.UserID)
	assert.Equal(t, "Deadlift", entry.ExerciseName)
	assert.Empty(t, existing.TopPerformances, "input entry must not be modified")
}

func TestFoldPerformance_LowerObservationDoesNotEvict(t *testing.T) {
	now := time.Now().UTC()
	entry := domain.PerformanceLedgerEntry{
		TopPerformances: []domain.Performance{perf(155, 8, now), perf(135, 12, now)},
	}

	updated := progress.FoldPerformance(&entry, perf(95, 20, now), now)
	assert.Equal(t, entry.TopPerformances, updated.TopPerformances)
}

// Identical stats on different days are not merged: they are distinct observations and can
// occupy both slots. Whether a repeated top set should count once is still undecided, so this
// test pins the current behavior.
func TestFoldPerformance_DuplicateStatsCountTwice(t *testing.T) {
	day1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 7)
	day3 := day1.AddDate(0, 0, 14)

	entry := progress.FoldPerformance(nil, perf(100, 5, day1), day1)
	entry = progress.FoldPerformance(&entry, perf(100, 5, day2), day2)
	assert.Equal(t, []domain.Performance{perf(100, 5, day1), perf(100, 5, day2)}, entry.TopPerformances)

	// a third identical set ties with both and the stable order keeps the older ones
	entry = progress.FoldPerformance(&entry, perf(100, 5, day3), day3)
	assert.Equal(t, []domain.Performance{perf(100, 5, day1), perf(100, 5, day2)}, entry.TopPerformances)
}

func TestFoldPerformance_BoundedAndSorted(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for round := 0; round < 200; round++ {
		var entry *domain.PerformanceLedgerEntry
		var all []domain.Performance
		for i := 0; i < 1+rnd.Intn(15); i++ {
			obs := perf(float64(rnd.Intn(8)*5), rnd.Intn(10), now.Add(time.Duration(i)*time.Hour))
			all = append(all, obs)
			updated := progress.FoldPerformance(entry, obs, obs.Date)
			entry = &updated

			top := entry.TopPerformances
			require.LessOrEqual(t, len(top), progress.MaxTopPerformances)
			for k := 1; k < len(top); k++ {
				assert.False(t, progress.Beats(
					domain.SetRecord{Weight: top[k].Weight, Reps: top[k].Reps},
					domain.SetRecord{Weight: top[k-1].Weight, Reps: top[k-1].Reps},
				), "not sorted: %v", top)
			}
		}

		// first place is the best of everything ever observed
		best, _ := progress.BestSet(toSets(all))
		assert.Equal(t, best.Weight, entry.TopPerformances[0].Weight)
		assert.Equal(t, best.Reps, entry.TopPerformances[0].Reps)
	}
}

func toSets(perfs []domain.Performance) []domain.SetRecord {
	sets := make([]domain.SetRecord, len(perfs))
	for i, p := range perfs {
		sets[i] = domain.SetRecord{Weight: p.Weight, Reps: p.Reps}
	}
	return sets
}
