package repository

import (
	"context"

	"drillhub/workout-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors from driver errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// DrillFilter selects the drill pool a workout samples from. Empty fields
// are not applied. Categories is an OR-set; Difficulty and Intensity are
// exact matches.
type DrillFilter struct {
	Categories []string
	Difficulty string
	Intensity  string
}

// DrillListOptions controls catalog listing. Category "" or "All" means no
// category filter. SortBy defaults to "category" ascending.
type DrillListOptions struct {
	Category string
	SortBy   string
	SortDesc bool
}

// DrillRepository defines the interface for interacting with the drill catalog.
type DrillRepository interface {
	Create(ctx context.Context, drill *domain.Drill) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Drill, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Drill, error)
	List(ctx context.Context, opts DrillListOptions) ([]domain.Drill, error)
	Find(ctx context.Context, filter DrillFilter) ([]domain.Drill, error)
	Count(ctx context.Context, category, difficulty string) (int64, error)
	Update(ctx context.Context, drill *domain.Drill) error
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.Drill, error)
}

// TemplateListOptions controls template listing. PublicOnly restricts the
// result to isPublic templates; Page is 1-based.
type TemplateListOptions struct {
	Type       string
	Difficulty string
	PublicOnly bool
	SortBy     string
	SortDesc   bool
	Page       int
	Limit      int
}

// TemplateRepository defines the interface for interacting with workout templates.
// Create returns ErrDuplicate on a name collision.
type TemplateRepository interface {
	Create(ctx context.Context, template *domain.WorkoutTemplate) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error)
	List(ctx context.Context, opts TemplateListOptions) ([]domain.WorkoutTemplate, int64, error)
	IncrementUsage(ctx context.Context, id primitive.ObjectID) error
}

// HistoryListOptions controls history listing, newest first. Page is 1-based.
type HistoryListOptions struct {
	Type       string
	Difficulty string
	Page       int
	Limit      int
}

// HistoryUpdate carries the patchable workout history fields. Nil means
// "leave unchanged".
type HistoryUpdate struct {
	Duration *int
	Rating   *int
	Notes    *string
}

// HistoryRepository defines the interface for interacting with workout history.
type HistoryRepository interface {
	Create(ctx context.Context, history *domain.WorkoutHistory) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutHistory, error)
	List(ctx context.Context, opts HistoryListOptions) ([]domain.WorkoutHistory, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, update HistoryUpdate) (*domain.WorkoutHistory, error)
}
