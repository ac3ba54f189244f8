package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"liftlog/api/internal/domain"
	"liftlog/api/internal/metrics"
	"liftlog/api/internal/repository"
	"liftlog/api/internal/repository/mocks"
	"liftlog/api/internal/service"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

// echoUpsert makes the mocked repository return what it was given, like the real one does.
func echoUpsert(_ context.Context, e *domain.PerformanceLedgerEntry) (*domain.PerformanceLedgerEntry, error) {
	stored := *e
	return &stored, nil
}

func stats(entry *domain.PerformanceLedgerEntry) [][2]float64 {
	out := make([][2]float64, 0, len(entry.TopPerformances))
	for _, p := range entry.TopPerformances {
		out = append(out, [2]float64{p.Weight, float64(p.Reps)})
	}
	return out
}

func TestPerformanceService_Record_Scenarios(t *testing.T) {
	ctrl := gomock.NewController(t)
	perfRepo := mocks.NewMockPerformanceRepository(ctrl)
	m := metrics.NewTestMetrics()
	svc := service.NewPerformanceService(perfRepo, m)
	session := testSession()
	ctx := context.Background()

	var current *domain.PerformanceLedgerEntry
	perfRepo.EXPECT().Get(gomock.Any(), session.UserID, "Bench Press").DoAndReturn(
		func(context.Context, primitive.ObjectID, string) (*domain.PerformanceLedgerEntry, error) {
			if current == nil {
				return nil, repository.ErrNotFound
			}
			return current, nil
		}).Times(3)
	perfRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(echoUpsert).Times(3)

	// empty ledger
	entry, err := svc.Record(ctx, session, service.RecordInput{ExerciseName: "Bench Press", Weight: 135, Reps: 10})
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{135, 10}}, stats(entry))
	assert.Equal(t, session.UserID, entry.UserID)
	current = entry

	// heavier set takes first place
	entry, err = svc.Record(ctx, session, service.RecordInput{ExerciseName: "Bench Press", Weight: 155, Reps: 8})
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{155, 8}, {135, 10}}, stats(entry))
	current = entry

	// same weight with more reps evicts the weaker second place
	entry, err = svc.Record(ctx, session, service.RecordInput{ExerciseName: "Bench Press", Weight: 135, Reps: 12})
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{155, 8}, {135, 12}}, stats(entry))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.CounterLedgerUpdates.WithLabelValues("updated")))
}

func TestPerformanceService_Record_KeepsDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	perfRepo := mocks.NewMockPerformanceRepository(ctrl)
	svc := service.NewPerformanceService(perfRepo, metrics.NewTestMetrics())
	session := testSession()
	date := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

	perfRepo.EXPECT().Get(gomock.Any(), session.UserID, "Row").Return(nil, repository.ErrNotFound)
	perfRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(echoUpsert)

	entry, err := svc.Record(context.Background(), session, service.RecordInput{ExerciseName: "Row", Weight: 80, Reps: 8, Date: date})
	require.NoError(t, err)
	require.Len(t, entry.TopPerformances, 1)
	assert.Equal(t, date, entry.TopPerformances[0].Date)
	assert.False(t, entry.LastUpdated.IsZero())
}

func TestPerformanceService_Record_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	perfRepo := mocks.NewMockPerformanceRepository(ctrl)
	svc := service.NewPerformanceService(perfRepo, metrics.NewTestMetrics())
	session := testSession()

	for name, in := range map[string]service.RecordInput{
		"no name":         {Weight: 10, Reps: 1},
		"negative weight": {ExerciseName: "Curl", Weight: -1, Reps: 1},
		"negative reps":   {ExerciseName: "Curl", Weight: 10, Reps: -1},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Record(context.Background(), session, in)
			assert.ErrorIs(t, err, service.ErrInvalidPerformance)
		})
	}
}

func TestPerformanceService_Record_PersistenceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	perfRepo := mocks.NewMockPerformanceRepository(ctrl)
	m := metrics.NewTestMetrics()
	svc := service.NewPerformanceService(perfRepo, m)
	session := testSession()
	dbErr := errors.New("connection reset")

	perfRepo.EXPECT().Get(gomock.Any(), session.UserID, "Squat").Return(nil, repository.ErrNotFound)
	perfRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil, dbErr)

	_, err := svc.Record(context.Background(), session, service.RecordInput{ExerciseName: "Squat", Weight: 100, Reps: 5})
	assert.ErrorIs(t, err, service.ErrLedgerPersistence)
	assert.ErrorIs(t, err, dbErr)

	perfRepo.EXPECT().Get(gomock.Any(), session.UserID, "Squat").Return(nil, dbErr)
	_, err = svc.Record(context.Background(), session, service.RecordInput{ExerciseName: "Squat", Weight: 100, Reps: 5})
	assert.ErrorIs(t, err, service.ErrLedgerPersistence)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterLedgerUpdates.WithLabelValues("failed")))
}

func TestPerformanceService_Get_Missing(t *testing.T) {
	ctrl := gomock.NewController(t)
	perfRepo := mocks.NewMockPerformanceRepository(ctrl)
	svc := service.NewPerformanceService(perfRepo, metrics.NewTestMetrics())
	session := testSession()

	perfRepo.EXPECT().Get(gomock.Any(), session.UserID, "Deadlift").Return(nil, repository.ErrNotFound)

	entry, err := svc.Get(context.Background(), session, " Deadlift")
	require.NoError(t, err)
	assert.Equal(t, "Deadlift", entry.ExerciseName)
	assert.NotNil(t, entry.TopPerformances)
	assert.Empty(t, entry.TopPerformances)
}
