package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Plan is a named, ordered list of exercises with their template sets.
type Plan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Exercises []PlanExercise     `bson:"exercises" json:"exercises"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PlanExercise is one exercise slot of a plan. ExerciseID stays the same across plan edits
// so executed sessions can be joined back to it even after a rename.
type PlanExercise struct {
	ExerciseID   string      `bson:"exerciseId" json:"exerciseId"`
	Name         string      `bson:"name" json:"name"`
	Group        string      `bson:"group" json:"group"`
	MuscleDetail string      `bson:"muscleDetail,omitempty" json:"muscleDetail,omitempty"`
	Sets         []SetRecord `bson:"sets" json:"sets"`
}
