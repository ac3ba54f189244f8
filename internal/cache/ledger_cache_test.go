package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"liftlog/api/internal/cache"
	"liftlog/api/internal/config"
	"liftlog/api/internal/domain"
	"liftlog/api/internal/metrics"
	"liftlog/api/internal/repository"
	"liftlog/api/internal/repository/mocks"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

func newCachedRepo(t *testing.T) (*cache.PerformanceRepository, *mocks.MockPerformanceRepository, *miniredis.Miniredis, *metrics.Metrics) {
	t.Helper()
	ctrl := gomock.NewController(t)
	next := mocks.NewMockPerformanceRepository(ctrl)

	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	m := metrics.NewTestMetrics()
	return cache.NewPerformanceRepository(next, client, time.Minute, m), next, s, m
}

func testEntry(userID primitive.ObjectID) *domain.PerformanceLedgerEntry {
	date := time.Date(2024, 4, 4, 0, 0, 0, 0, time.UTC)
	return &domain.PerformanceLedgerEntry{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		ExerciseName:    "Bench",
		TopPerformances: []domain.Performance{{Weight: 100, Reps: 5, Date: date}},
		LastUpdated:     date,
	}
}

func TestConnectRedis_NoAddr(t *testing.T) {
	assert.Nil(t, cache.ConnectRedis(config.RedisConfig{}))
}

func TestPerformanceRepository_ReadThrough(t *testing.T) {
	repo, next, s, m := newCachedRepo(t)
	userID := primitive.NewObjectID()
	entry := testEntry(userID)

	next.EXPECT().Get(gomock.Any(), userID, "Bench").Return(entry, nil).Times(1)

	first, err := repo.Get(context.Background(), userID, "Bench")
	require.NoError(t, err)
	assert.Equal(t, entry, first)
	assert.True(t, s.Exists(cache.LedgerKey(userID, "Bench")))
	assert.Equal(t, time.Minute, s.TTL(cache.LedgerKey(userID, "Bench")))

	second, err := repo.Get(context.Background(), userID, "Bench")
	require.NoError(t, err)
	assert.Equal(t, entry.ID, second.ID)
	assert.Equal(t, entry.TopPerformances, second.TopPerformances)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterCacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterCacheLookups.WithLabelValues("hit")))
}

func TestPerformanceRepository_NotFoundIsNotCached(t *testing.T) {
	repo, next, s, _ := newCachedRepo(t)
	userID := primitive.NewObjectID()

	next.EXPECT().Get(gomock.Any(), userID, "Squat").Return(nil, repository.ErrNotFound).Times(2)

	for range 2 {
		_, err := repo.Get(context.Background(), userID, "Squat")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	}
	assert.False(t, s.Exists(cache.LedgerKey(userID, "Squat")))
}

func TestPerformanceRepository_WriteThrough(t *testing.T) {
	repo, next, s, _ := newCachedRepo(t)
	userID := primitive.NewObjectID()
	entry := testEntry(userID)

	next.EXPECT().Upsert(gomock.Any(), entry).Return(entry, nil)

	stored, err := repo.Upsert(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, entry, stored)
	assert.True(t, s.Exists(cache.LedgerKey(userID, "Bench")))

	// served from the cache, no further call to next
	got, err := repo.Get(context.Background(), userID, "Bench")
	require.NoError(t, err)
	assert.Equal(t, entry.ID, got.ID)
}

func TestPerformanceRepository_FailedUpsertInvalidates(t *testing.T) {
	repo, next, s, _ := newCachedRepo(t)
	userID := primitive.NewObjectID()
	entry := testEntry(userID)
	key := cache.LedgerKey(userID, "Bench")
	require.NoError(t, s.Set(key, `{"exerciseName":"Bench"}`))

	next.EXPECT().Upsert(gomock.Any(), entry).Return(nil, errors.New("write conflict"))

	_, err := repo.Upsert(context.Background(), entry)
	assert.Error(t, err)
	assert.False(t, s.Exists(key))
}

func TestPerformanceRepository_RedisDownFallsBack(t *testing.T) {
	repo, next, s, m := newCachedRepo(t)
	userID := primitive.NewObjectID()
	entry := testEntry(userID)
	s.Close()

	next.EXPECT().Get(gomock.Any(), userID, "Bench").Return(entry, nil)

	got, err := repo.Get(context.Background(), userID, "Bench")
	require.NoError(t, err)
	assert.Equal(t, entry, got)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterCacheLookups.WithLabelValues("error")))
}

func TestPerformanceRepository_CorruptValue(t *testing.T) {
	repo, next, s, _ := newCachedRepo(t)
	userID := primitive.NewObjectID()
	entry := testEntry(userID)
	require.NoError(t, s.Set(cache.LedgerKey(userID, "Bench"), "not json"))

	next.EXPECT().Get(gomock.Any(), userID, "Bench").Return(entry, nil)

	got, err := repo.Get(context.Background(), userID, "Bench")
	require.NoError(t, err)
	assert.Equal(t, entry, got)
}

func TestPerformanceRepository_ListPassesThrough(t *testing.T) {
	repo, next, _, _ := newCachedRepo(t)
	userID := primitive.NewObjectID()
	list := []domain.PerformanceLedgerEntry{*testEntry(userID)}

	next.EXPECT().ListByUser(gomock.Any(), userID).Return(list, nil)

	got, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, list, got)
}
