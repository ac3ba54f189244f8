package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthSession identifies the caller of a request. It is built from a verified token and handed
// explicitly to whatever needs the user id; nothing looks it up from global state.
type AuthSession struct {
	UserID    primitive.ObjectID
	IsAdmin   bool
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s AuthSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
