package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutSession is the as-executed snapshot of one full plan run.
type WorkoutSession struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	PlanID      primitive.ObjectID `bson:"planId" json:"planId"`
	PlanName    string             `bson:"planName" json:"planName"`
	Exercises   []SessionExercise  `bson:"exercises" json:"exercises"`
	CompletedAt time.Time          `bson:"completedAt" json:"completedAt"`
}

type SessionExercise struct {
	ExerciseID   string      `bson:"exerciseId,omitempty" json:"exerciseId,omitempty"`
	Name         string      `bson:"name" json:"name"`
	Group        string      `bson:"group,omitempty" json:"group,omitempty"`
	MuscleDetail string      `bson:"muscleDetail,omitempty" json:"muscleDetail,omitempty"`
	Sets         []SetRecord `bson:"sets" json:"sets"`
}
