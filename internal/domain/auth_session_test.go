package domain_test

import (
	"testing"
	"time"

	"liftlog/api/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestAuthSession_Expired(t *testing.T) {
	exp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := domain.AuthSession{IssuedAt: exp.Add(-time.Hour), ExpiresAt: exp}

	assert.False(t, s.Expired(exp.Add(-time.Second)))
	assert.True(t, s.Expired(exp), "a session is no longer valid at its expiry instant")
	assert.True(t, s.Expired(exp.Add(time.Minute)))
	assert.True(t, domain.AuthSession{}.Expired(exp), "zero session never authenticates")
}
