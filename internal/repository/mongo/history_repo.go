package mongo

import (
	"context"
	"errors"
	"time"

	"drillhub/workout-app/internal/domain"
	"drillhub/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const historyCollectionName = "workout_history"

// mongoHistoryRepository implements repository.HistoryRepository
type mongoHistoryRepository struct {
	collection *mongo.Collection
}

// NewMongoHistoryRepository creates a new workout history repository backed by MongoDB.
func NewMongoHistoryRepository(db *mongo.Database) repository.HistoryRepository {
	return &mongoHistoryRepository{
		collection: db.Collection(historyCollectionName),
	}
}

// Create inserts a new history record, stamping CompletedAt if unset.
func (r *mongoHistoryRepository) Create(ctx context.Context, history *domain.WorkoutHistory) (primitive.ObjectID, error) {
	if history.Type == "" {
		return primitive.NilObjectID, errors.New("history type is required")
	}

	history.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if history.CompletedAt.IsZero() {
		history.CompletedAt = now
	}
	history.CreatedAt = now
	history.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, history)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted history ID")
	}
	return insertedID, nil
}

// GetByID retrieves a history record by its ID.
func (r *mongoHistoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutHistory, error) {
	var history domain.WorkoutHistory
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&history)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &history, nil
}

// List retrieves history records newest first, with filtering and pagination.
func (r *mongoHistoryRepository) List(ctx context.Context, opts repository.HistoryListOptions) ([]domain.WorkoutHistory, int64, error) {
	filter := bson.M{}
	if opts.Type != "" {
		filter["type"] = opts.Type
	}
	if opts.Difficulty != "" {
		filter["difficulty"] = opts.Difficulty
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = 10
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "completedAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var histories []domain.WorkoutHistory
	if err = cursor.All(ctx, &histories); err != nil {
		return nil, 0, err
	}
	return histories, total, nil
}

// Update applies a partial patch to a history record and returns the updated
// document.
func (r *mongoHistoryRepository) Update(ctx context.Context, id primitive.ObjectID, update repository.HistoryUpdate) (*domain.WorkoutHistory, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Duration != nil {
		set["duration"] = *update.Duration
	}
	if update.Rating != nil {
		set["rating"] = *update.Rating
	}
	if update.Notes != nil {
		set["notes"] = *update.Notes
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var history domain.WorkoutHistory
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&history)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &history, nil
}

// EnsureHistoryIndexes creates necessary indexes for the workout_history collection.
func EnsureHistoryIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "type", Value: 1}, {Key: "completedAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "difficulty", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
