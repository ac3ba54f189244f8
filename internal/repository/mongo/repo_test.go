package mongo_test

import (
	"context"
	"testing"
	"time"

	"liftlog/api/internal/domain"
	"liftlog/api/internal/repository"
	repomongo "liftlog/api/internal/repository/mongo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockT(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestUserRepository(t *testing.T) {
	mt := newMockT(t)

	mt.Run("create lowercases email", func(mt *mtest.T) {
		repo := repomongo.NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user := &domain.User{Name: "Ana", Email: "Ana@Example.COM", PasswordHash: "hash"}
		id, err := repo.Create(context.Background(), user)
		require.NoError(mt, err)
		assert.False(mt, id.IsZero())
		assert.Equal(mt, id, user.ID)
		assert.Equal(mt, "ana@example.com", user.Email)
		assert.False(mt, user.CreatedAt.IsZero())
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		repo := repomongo.NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		_, err := repo.Create(context.Background(), &domain.User{Email: "a@b.c", PasswordHash: "h"})
		assert.ErrorIs(mt, err, repository.ErrDuplicate)
	})

	mt.Run("create requires password hash", func(mt *mtest.T) {
		repo := repomongo.NewMongoUserRepository(mt.DB)
		_, err := repo.Create(context.Background(), &domain.User{Email: "a@b.c"})
		assert.Error(mt, err)
	})

	mt.Run("get by email", func(mt *mtest.T) {
		repo := repomongo.NewMongoUserRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "liftlog.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Ana"},
			{Key: "email", Value: "ana@example.com"},
			{Key: "isAdmin", Value: true},
		}))

		user, err := repo.GetByEmail(context.Background(), "ANA@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, id, user.ID)
		assert.Equal(mt, "Ana", user.Name)
		assert.True(mt, user.IsAdmin)
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repo := repomongo.NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "liftlog.users", mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("update unknown user", func(mt *mtest.T) {
		repo := repomongo.NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.Update(context.Background(), &domain.User{ID: primitive.NewObjectID(), Email: "x@y.z"})
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})
}

func TestPlanRepository(t *testing.T) {
	mt := newMockT(t)
	userID := primitive.NewObjectID()

	mt.Run("create requires name", func(mt *mtest.T) {
		repo := repomongo.NewMongoPlanRepository(mt.DB)
		_, err := repo.Create(context.Background(), &domain.Plan{UserID: userID})
		assert.Error(mt, err)
	})

	mt.Run("list by user", func(mt *mtest.T) {
		repo := repomongo.NewMongoPlanRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "liftlog.plans", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "userId", Value: userID},
				{Key: "name", Value: "Push"},
				{Key: "exercises", Value: bson.A{
					bson.D{
						{Key: "exerciseId", Value: "ex-1"},
						{Key: "name", Value: "Bench"},
						{Key: "group", Value: "Chest"},
						{Key: "sets", Value: bson.A{bson.D{{Key: "reps", Value: 8}, {Key: "weight", Value: 60.0}}}},
					},
				}},
			},
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "userId", Value: userID},
				{Key: "name", Value: "Pull"},
			},
		))

		plans, err := repo.ListByUser(context.Background(), userID)
		require.NoError(mt, err)
		require.Len(mt, plans, 2)
		assert.Equal(mt, "Push", plans[0].Name)
		require.Len(mt, plans[0].Exercises, 1)
		assert.Equal(mt, "ex-1", plans[0].Exercises[0].ExerciseID)
		assert.Equal(mt, []domain.SetRecord{{Reps: 8, Weight: 60}}, plans[0].Exercises[0].Sets)
	})

	mt.Run("list by user empty", func(mt *mtest.T) {
		repo := repomongo.NewMongoPlanRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "liftlog.plans", mtest.FirstBatch))

		plans, err := repo.ListByUser(context.Background(), userID)
		require.NoError(mt, err)
		assert.NotNil(mt, plans)
		assert.Empty(mt, plans)
	})

	mt.Run("delete foreign plan", func(mt *mtest.T) {
		repo := repomongo.NewMongoPlanRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.Delete(context.Background(), userID, primitive.NewObjectID())
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("update", func(mt *mtest.T) {
		repo := repomongo.NewMongoPlanRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		plan := &domain.Plan{ID: primitive.NewObjectID(), UserID: userID, Name: "Legs"}
		require.NoError(mt, repo.Update(context.Background(), plan))
		assert.False(mt, plan.UpdatedAt.IsZero())
	})
}

func TestSessionRepository(t *testing.T) {
	mt := newMockT(t)
	userID := primitive.NewObjectID()
	planID := primitive.NewObjectID()

	mt.Run("get last for plan", func(mt *mtest.T) {
		repo := repomongo.NewMongoSessionRepository(mt.DB)
		completed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "liftlog.workout_sessions", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "userId", Value: userID},
			{Key: "planId", Value: planID},
			{Key: "planName", Value: "Push"},
			{Key: "completedAt", Value: primitive.NewDateTimeFromTime(completed)},
		}))

		session, err := repo.GetLastForPlan(context.Background(), userID, planID)
		require.NoError(mt, err)
		assert.Equal(mt, "Push", session.PlanName)
		assert.True(mt, completed.Equal(session.CompletedAt))
	})

	mt.Run("get last for plan none", func(mt *mtest.T) {
		repo := repomongo.NewMongoSessionRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "liftlog.workout_sessions", mtest.FirstBatch))

		_, err := repo.GetLastForPlan(context.Background(), userID, planID)
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("create sets completedAt", func(mt *mtest.T) {
		repo := repomongo.NewMongoSessionRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		session := &domain.WorkoutSession{UserID: userID, PlanID: planID}
		id, err := repo.Create(context.Background(), session)
		require.NoError(mt, err)
		assert.Equal(mt, id, session.ID)
		assert.False(mt, session.CompletedAt.IsZero())
	})

	mt.Run("create requires plan", func(mt *mtest.T) {
		repo := repomongo.NewMongoSessionRepository(mt.DB)
		_, err := repo.Create(context.Background(), &domain.WorkoutSession{UserID: userID})
		assert.Error(mt, err)
	})
}

func TestWorkoutRepository(t *testing.T) {
	mt := newMockT(t)
	userID := primitive.NewObjectID()

	mt.Run("grouped", func(mt *mtest.T) {
		repo := repomongo.NewMongoWorkoutRepository(mt.DB)
		last := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "liftlog.workouts", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "Bench"},
			{Key: "muscleGroup", Value: "Chest"},
			{Key: "totalWorkouts", Value: 3},
			{Key: "lastWorkout", Value: primitive.NewDateTimeFromTime(last)},
		}))

		summaries, err := repo.Grouped(context.Background(), userID)
		require.NoError(mt, err)
		require.Len(mt, summaries, 1)
		assert.Equal(mt, "Bench", summaries[0].ExerciseName)
		assert.Equal(mt, 3, summaries[0].TotalWorkouts)
		assert.True(mt, last.Equal(summaries[0].LastWorkout))
	})

	mt.Run("list by exercise", func(mt *mtest.T) {
		repo := repomongo.NewMongoWorkoutRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "liftlog.workouts", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "userId", Value: userID},
			{Key: "exerciseName", Value: "Squat"},
			{Key: "sets", Value: bson.A{bson.D{{Key: "reps", Value: 5}, {Key: "weight", Value: 100.0}}}},
		}))

		entries, err := repo.ListByExercise(context.Background(), userID, "Squat", 5)
		require.NoError(mt, err)
		require.Len(mt, entries, 1)
		assert.Equal(mt, []domain.SetRecord{{Reps: 5, Weight: 100}}, entries[0].Sets)
	})

	mt.Run("create keeps loggedAt", func(mt *mtest.T) {
		repo := repomongo.NewMongoWorkoutRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		logged := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		entry := &domain.WorkoutEntry{UserID: userID, ExerciseName: "Row", LoggedAt: logged}
		_, err := repo.Create(context.Background(), entry)
		require.NoError(mt, err)
		assert.Equal(mt, logged, entry.LoggedAt)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := repomongo.NewMongoWorkoutRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		assert.NoError(mt, repo.Delete(context.Background(), userID, primitive.NewObjectID()))
	})
}

func TestPerformanceRepository(t *testing.T) {
	mt := newMockT(t)
	userID := primitive.NewObjectID()

	mt.Run("upsert returns stored entry", func(mt *mtest.T) {
		repo := repomongo.NewMongoPerformanceRepository(mt.DB)
		storedID := primitive.NewObjectID()
		date := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: storedID},
			{Key: "userId", Value: userID},
			{Key: "exerciseName", Value: "Bench"},
			{Key: "topPerformances", Value: bson.A{
				bson.D{{Key: "weight", Value: 100.0}, {Key: "reps", Value: 5}, {Key: "date", Value: primitive.NewDateTimeFromTime(date)}},
			}},
			{Key: "lastUpdated", Value: primitive.NewDateTimeFromTime(date)},
		}}))

		stored, err := repo.Upsert(context.Background(), &domain.PerformanceLedgerEntry{
			UserID:          userID,
			ExerciseName:    "Bench",
			TopPerformances: []domain.Performance{{Weight: 100, Reps: 5, Date: date}},
			LastUpdated:     date,
		})
		require.NoError(mt, err)
		assert.Equal(mt, storedID, stored.ID)
		require.Len(mt, stored.TopPerformances, 1)
		assert.Equal(mt, 100.0, stored.TopPerformances[0].Weight)
	})

	mt.Run("upsert requires key", func(mt *mtest.T) {
		repo := repomongo.NewMongoPerformanceRepository(mt.DB)
		_, err := repo.Upsert(context.Background(), &domain.PerformanceLedgerEntry{UserID: userID})
		assert.Error(mt, err)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		repo := repomongo.NewMongoPerformanceRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "liftlog.performances", mtest.FirstBatch))

		_, err := repo.Get(context.Background(), userID, "Deadlift")
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})
}

func TestContactRepository(t *testing.T) {
	mt := newMockT(t)

	mt.Run("create resets read flag", func(mt *mtest.T) {
		repo := repomongo.NewMongoContactRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		msg := &domain.ContactMessage{Name: "Bo", Email: "bo@x.io", Message: "hi", Read: true}
		_, err := repo.Create(context.Background(), msg)
		require.NoError(mt, err)
		assert.False(mt, msg.Read)
	})

	mt.Run("mark read missing", func(mt *mtest.T) {
		repo := repomongo.NewMongoContactRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))
		assert.ErrorIs(mt, repo.MarkRead(context.Background(), primitive.NewObjectID()), repository.ErrNotFound)
	})
}
