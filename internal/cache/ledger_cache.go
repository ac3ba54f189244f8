package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"liftlog/api/internal/domain"
	"liftlog/api/internal/metrics"
	"liftlog/api/internal/repository"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const ledgerKeyPrefix = "ledger"

// PerformanceRepository wraps a repository.PerformanceRepository with a Redis read-through,
// write-through cache of single ledger entries. Redis failures are logged and fall back to
// the wrapped repository; they never fail a request.
type PerformanceRepository struct {
	next    repository.PerformanceRepository
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
}

var _ repository.PerformanceRepository = (*PerformanceRepository)(nil)

func NewPerformanceRepository(
	next repository.PerformanceRepository,
	client *redis.Client,
	ttl time.Duration,
	m *metrics.Metrics,
) *PerformanceRepository {
	return &PerformanceRepository{
		next:    next,
		client:  client,
		ttl:     ttl,
		metrics: m,
	}
}

func LedgerKey(userID primitive.ObjectID, exerciseName string) string {
	return fmt.Sprintf("%s:%s:%s", ledgerKeyPrefix, userID.Hex(), exerciseName)
}

func (r *PerformanceRepository) Get(ctx context.Context, userID primitive.ObjectID, exerciseName string) (*domain.PerformanceLedgerEntry, error) {
	key := LedgerKey(userID, exerciseName)

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var entry domain.PerformanceLedgerEntry
		uErr := json.Unmarshal(raw, &entry)
		if uErr == nil {
			r.lookup("hit")
			return &entry, nil
		}
		log.Warnf("ledger cache: corrupt value for %s: %s", key, uErr)
		r.lookup("error")
	case errors.Is(err, redis.Nil):
		r.lookup("miss")
	default:
		log.Warnf("ledger cache: get %s: %s", key, err)
		r.lookup("error")
	}

	entry, err := r.next.Get(ctx, userID, exerciseName)
	if err != nil {
		return nil, err
	}
	r.store(ctx, entry)
	return entry, nil
}

func (r *PerformanceRepository) Upsert(ctx context.Context, entry *domain.PerformanceLedgerEntry) (*domain.PerformanceLedgerEntry, error) {
	stored, err := r.next.Upsert(ctx, entry)
	if err != nil {
		// The store may or may not hold the new value; drop ours so the next read goes to it.
		r.invalidate(ctx, LedgerKey(entry.UserID, entry.ExerciseName))
		return nil, err
	}
	r.store(ctx, stored)
	return stored, nil
}

func (r *PerformanceRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.PerformanceLedgerEntry, error) {
	return r.next.ListByUser(ctx, userID)
}

func (r *PerformanceRepository) store(ctx context.Context, entry *domain.PerformanceLedgerEntry) {
	raw, err := json.Marshal(entry)
	if err != nil {
		log.Warnf("ledger cache: marshal: %s", err)
		return
	}
	key := LedgerKey(entry.UserID, entry.ExerciseName)
	if err := r.client.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		log.Warnf("ledger cache: set %s: %s", key, err)
	}
}

func (r *PerformanceRepository) invalidate(ctx context.Context, key string) {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		log.Warnf("ledger cache: del %s: %s", key, err)
	}
}

func (r *PerformanceRepository) lookup(outcome string) {
	if r.metrics == nil {
		return
	}
	r.metrics.CounterCacheLookups.WithLabelValues(outcome).Inc()
}
