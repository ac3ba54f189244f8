package mongo

import (
	"context"
	"errors"
	"time"

	"liftlog/api/internal/domain"
	"liftlog/api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout entry. LoggedAt defaults to now.
func (r *mongoWorkoutRepository) Create(ctx context.Context, entry *domain.WorkoutEntry) (primitive.ObjectID, error) {
	if entry.UserID == primitive.NilObjectID || entry.ExerciseName == "" {
		return primitive.NilObjectID, errors.New("workout entry requires userId and exerciseName")
	}
	entry.ID = primitive.NewObjectID()
	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout ID")
	}
	return insertedID, nil
}

// ListByUser retrieves all entries of a user, newest first.
func (r *mongoWorkoutRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutEntry, error) {
	return r.find(ctx, bson.M{"userId": userID}, options.Find().SetSort(bson.D{{Key: "loggedAt", Value: -1}}))
}

// ListByExercise retrieves the latest entries of one exercise.
func (r *mongoWorkoutRepository) ListByExercise(ctx context.Context, userID primitive.ObjectID, exerciseName string, limit int64) ([]domain.WorkoutEntry, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "loggedAt", Value: -1}}).
		SetLimit(limit)
	return r.find(ctx, bson.M{"userId": userID, "exerciseName": exerciseName}, findOptions)
}

func (r *mongoWorkoutRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.WorkoutEntry, error) {
	entries := []domain.WorkoutEntry{}
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Grouped summarizes a user's entries per exercise, most recently trained first.
func (r *mongoWorkoutRepository) Grouped(ctx context.Context, userID primitive.ObjectID) ([]domain.ExerciseSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
		{{Key: "$sort", Value: bson.M{"loggedAt": -1}}},
		{{Key: "$group", Value: bson.M{
			"_id":           "$exerciseName",
			"muscleGroup":   bson.M{"$first": "$muscleGroup"},
			"totalWorkouts": bson.M{"$sum": 1},
			"lastWorkout":   bson.M{"$max": "$loggedAt"},
		}}},
		{{Key: "$sort", Value: bson.M{"lastWorkout": -1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	summaries := []domain.ExerciseSummary{}
	if err = cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// Delete removes an entry owned by userID.
func (r *mongoWorkoutRepository) Delete(ctx context.Context, userID, entryID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": entryID, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "loggedAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "exerciseName", Value: 1}, {Key: "loggedAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	})
}
