package mongo

import (
	"context"
	"errors"

	"liftlog/api/internal/domain"
	"liftlog/api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const performanceCollectionName = "performances"

// mongoPerformanceRepository keeps one ledger document per (userId, exerciseName).
type mongoPerformanceRepository struct {
	collection *mongo.Collection
}

func NewMongoPerformanceRepository(db *mongo.Database) repository.PerformanceRepository {
	return &mongoPerformanceRepository{
		collection: db.Collection(performanceCollectionName),
	}
}

func (r *mongoPerformanceRepository) Get(ctx context.Context, userID primitive.ObjectID, exerciseName string) (*domain.PerformanceLedgerEntry, error) {
	var entry domain.PerformanceLedgerEntry
	filter := bson.M{"userId": userID, "exerciseName": exerciseName}

	err := r.collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// Upsert replaces the whole document in one round trip and returns what was stored.
// Concurrent writers for the same key are last-write-wins.
func (r *mongoPerformanceRepository) Upsert(ctx context.Context, entry *domain.PerformanceLedgerEntry) (*domain.PerformanceLedgerEntry, error) {
	if entry.UserID == primitive.NilObjectID || entry.ExerciseName == "" {
		return nil, errors.New("ledger entry requires userId and exerciseName")
	}

	filter := bson.M{"userId": entry.UserID, "exerciseName": entry.ExerciseName}
	replacement := bson.M{
		"userId":          entry.UserID,
		"exerciseName":    entry.ExerciseName,
		"topPerformances": entry.TopPerformances,
		"lastUpdated":     entry.LastUpdated,
	}
	opts := options.FindOneAndReplace().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored domain.PerformanceLedgerEntry
	err := r.collection.FindOneAndReplace(ctx, filter, replacement, opts).Decode(&stored)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost an insert race on the unique index; the other writer's document stands.
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return &stored, nil
}

// ListByUser returns all ledger entries of a user, most recently updated first.
func (r *mongoPerformanceRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.PerformanceLedgerEntry, error) {
	entries := []domain.PerformanceLedgerEntry{}
	findOptions := options.Find().SetSort(bson.D{{Key: "lastUpdated", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// EnsurePerformanceIndexes creates the unique (userId, exerciseName) index. Call during startup.
func EnsurePerformanceIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "exerciseName", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "lastUpdated", Value: -1}},
			Options: options.Index(),
		},
	})
}
