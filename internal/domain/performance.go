package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Performance is one ranked observation in a ledger entry.
type Performance struct {
	Weight float64   `bson:"weight" json:"weight"`
	Reps   int       `bson:"reps" json:"reps"`
	Date   time.Time `bson:"date" json:"date"`
}

// PerformanceLedgerEntry holds the running top performances of one user for one exercise.
// TopPerformances is kept sorted by (weight, reps) descending. There is at most one entry
// per (UserID, ExerciseName).
type PerformanceLedgerEntry struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	ExerciseName    string             `bson:"exerciseName" json:"exerciseName"`
	TopPerformances []Performance      `bson:"topPerformances" json:"topPerformances"`
	LastUpdated     time.Time          `bson:"lastUpdated" json:"lastUpdated"`
}
