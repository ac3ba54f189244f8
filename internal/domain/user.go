package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account that owns plans, sessions and performance history.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Unique, stored lowercased
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Age          *int               `bson:"age,omitempty" json:"age,omitempty"`
	BodyWeight   *float64           `bson:"bodyWeight,omitempty" json:"bodyWeight,omitempty"`
	IsAdmin      bool               `bson:"isAdmin" json:"isAdmin"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
