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

const drillCollectionName = "drills"

// mongoDrillRepository implements repository.DrillRepository
type mongoDrillRepository struct {
	collection *mongo.Collection
}

// NewMongoDrillRepository creates a new drill catalog repository backed by MongoDB.
func NewMongoDrillRepository(db *mongo.Database) repository.DrillRepository {
	return &mongoDrillRepository{
		collection: db.Collection(drillCollectionName),
	}
}

// Create inserts a new drill into the catalog.
func (r *mongoDrillRepository) Create(ctx context.Context, drill *domain.Drill) (primitive.ObjectID, error) {
	if drill.Name == "" || drill.Category == "" {
		return primitive.NilObjectID, errors.New("drill name and category are required")
	}

	drill.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	drill.CreatedAt = now
	drill.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, drill)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByID retrieves a drill by its ID.
func (r *mongoDrillRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Drill, error) {
	var drill domain.Drill
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&drill)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &drill, nil
}

// GetByIDs retrieves all drills whose IDs appear in the given list. Missing
// IDs are silently skipped (history may reference deleted drills).
func (r *mongoDrillRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Drill, error) {
	if len(ids) == 0 {
		return []domain.Drill{}, nil
	}

	var drills []domain.Drill
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &drills); err != nil {
		return nil, err
	}
	return drills, nil
}

// List retrieves catalog drills, optionally filtered by category and sorted.
func (r *mongoDrillRepository) List(ctx context.Context, opts repository.DrillListOptions) ([]domain.Drill, error) {
	filter := bson.M{}
	if opts.Category != "" && opts.Category != "All" {
		filter["category"] = opts.Category
	}

	sortField := opts.SortBy
	if sortField == "" {
		sortField = "category"
	}
	sortDir := 1
	if opts.SortDesc {
		sortDir = -1
	}
	findOptions := options.Find().SetSort(bson.D{{Key: sortField, Value: sortDir}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var drills []domain.Drill
	if err = cursor.All(ctx, &drills); err != nil {
		return nil, err
	}
	return drills, nil
}

// Find retrieves all drills matching a generation filter. Sampling happens in
// the service layer, not here.
func (r *mongoDrillRepository) Find(ctx context.Context, filter repository.DrillFilter) ([]domain.Drill, error) {
	query := bson.M{}
	if len(filter.Categories) > 0 {
		query["category"] = bson.M{"$in": filter.Categories}
	}
	if filter.Difficulty != "" {
		query["difficulty"] = filter.Difficulty
	}
	if filter.Intensity != "" {
		query["intensity"] = filter.Intensity
	}

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var drills []domain.Drill
	if err = cursor.All(ctx, &drills); err != nil {
		return nil, err
	}
	return drills, nil
}

// Count returns the number of drills for a category/difficulty pair. Empty
// arguments are not applied.
func (r *mongoDrillRepository) Count(ctx context.Context, category, difficulty string) (int64, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	if difficulty != "" {
		filter["difficulty"] = difficulty
	}
	return r.collection.CountDocuments(ctx, filter)
}

// Update modifies an existing drill and bumps the UpdatedAt timestamp.
func (r *mongoDrillRepository) Update(ctx context.Context, drill *domain.Drill) error {
	if drill.ID == primitive.NilObjectID {
		return errors.New("drill ID is required for update")
	}

	filter := bson.M{"_id": drill.ID}
	update := bson.M{
		"$set": bson.M{
			"name":           drill.Name,
			"description":    drill.Description,
			"category":       drill.Category,
			"difficulty":     drill.Difficulty,
			"intensity":      drill.Intensity,
			"videoObjectKey": drill.VideoObjectKey,
			"updatedAt":      time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a drill and returns the deleted record.
func (r *mongoDrillRepository) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Drill, error) {
	var drill domain.Drill
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&drill)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &drill, nil
}

// EnsureDrillIndexes creates necessary indexes for the drills collection.
func EnsureDrillIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "difficulty", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
			Options: options.Index().SetName("drill_text_search"),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
