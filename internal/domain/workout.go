package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetRecord is one logged (reps, weight) pair.
type SetRecord struct {
	Reps   int     `bson:"reps" json:"reps"`
	Weight float64 `bson:"weight" json:"weight"`
}

// WorkoutEntry is one exercise performed on one date. Entries are never updated in place;
// corrections are done by deleting and logging again.
type WorkoutEntry struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID  `bson:"userId" json:"userId"`
	SessionID    *primitive.ObjectID `bson:"sessionId,omitempty" json:"sessionId,omitempty"` // Set when produced by a plan execution
	ExerciseID   string              `bson:"exerciseId,omitempty" json:"exerciseId,omitempty"`
	ExerciseName string              `bson:"exerciseName" json:"exerciseName"`
	MuscleGroup  string              `bson:"muscleGroup" json:"muscleGroup"`
	MuscleDetail string              `bson:"muscleDetail,omitempty" json:"muscleDetail,omitempty"`
	Sets         []SetRecord         `bson:"sets" json:"sets"`
	Notes        string              `bson:"notes,omitempty" json:"notes,omitempty"`
	LoggedAt     time.Time           `bson:"loggedAt" json:"loggedAt"`
}

// ExerciseSummary aggregates a user's entries for one exercise.
type ExerciseSummary struct {
	ExerciseName  string    `bson:"_id" json:"exerciseName"`
	MuscleGroup   string    `bson:"muscleGroup" json:"muscleGroup"`
	TotalWorkouts int       `bson:"totalWorkouts" json:"totalWorkouts"`
	LastWorkout   time.Time `bson:"lastWorkout" json:"lastWorkout"`
}
