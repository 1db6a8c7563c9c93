// Package memory provides in-memory implementations of the repository
// interfaces for tests and local development without a running MongoDB.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"drillhub/workout-app/internal/domain"
	"drillhub/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrillRepository is a map-backed repository.DrillRepository.
type DrillRepository struct {
	mu     sync.RWMutex
	drills map[primitive.ObjectID]domain.Drill
}

func NewDrillRepository() *DrillRepository {
	return &DrillRepository{drills: make(map[primitive.ObjectID]domain.Drill)}
}

func (r *DrillRepository) Create(_ context.Context, drill *domain.Drill) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	drill.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	drill.CreatedAt = now
	drill.UpdatedAt = now
	r.drills[drill.ID] = *drill
	return drill.ID, nil
}

func (r *DrillRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Drill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	drill, ok := r.drills[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &drill, nil
}

func (r *DrillRepository) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Drill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	drills := make([]domain.Drill, 0, len(ids))
	for _, id := range ids {
		if drill, ok := r.drills[id]; ok {
			drills = append(drills, drill)
		}
	}
	return drills, nil
}

func (r *DrillRepository) List(_ context.Context, opts repository.DrillListOptions) ([]domain.Drill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var drills []domain.Drill
	for _, drill := range r.drills {
		if opts.Category != "" && opts.Category != "All" && drill.Category != opts.Category {
			continue
		}
		drills = append(drills, drill)
	}

	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = "category"
	}
	sort.Slice(drills, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "name":
			less = drills[i].Name < drills[j].Name
		case "difficulty":
			less = drills[i].Difficulty < drills[j].Difficulty
		case "createdAt":
			less = drills[i].CreatedAt.Before(drills[j].CreatedAt)
		default:
			less = drills[i].Category < drills[j].Category
		}
		if opts.SortDesc {
			return !less
		}
		return less
	})
	return drills, nil
}

func (r *DrillRepository) Find(_ context.Context, filter repository.DrillFilter) ([]domain.Drill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var drills []domain.Drill
	for _, drill := range r.drills {
		if len(filter.Categories) > 0 && !contains(filter.Categories, drill.Category) {
			continue
		}
		if filter.Difficulty != "" && drill.Difficulty != filter.Difficulty {
			continue
		}
		if filter.Intensity != "" && drill.Intensity != filter.Intensity {
			continue
		}
		drills = append(drills, drill)
	}
	// Stable order so callers (and tests) see deterministic input to sampling.
	sort.Slice(drills, func(i, j int) bool { return drills[i].Name < drills[j].Name })
	return drills, nil
}

func (r *DrillRepository) Count(_ context.Context, category, difficulty string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, drill := range r.drills {
		if category != "" && drill.Category != category {
			continue
		}
		if difficulty != "" && drill.Difficulty != difficulty {
			continue
		}
		count++
	}
	return count, nil
}

func (r *DrillRepository) Update(_ context.Context, drill *domain.Drill) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.drills[drill.ID]
	if !ok {
		return repository.ErrNotFound
	}
	drill.CreatedAt = existing.CreatedAt
	drill.UpdatedAt = time.Now().UTC()
	r.drills[drill.ID] = *drill
	return nil
}

func (r *DrillRepository) Delete(_ context.Context, id primitive.ObjectID) (*domain.Drill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	drill, ok := r.drills[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.drills, id)
	return &drill, nil
}

// Len reports the number of stored drills.
func (r *DrillRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.drills)
}

// TemplateRepository is a map-backed repository.TemplateRepository.
type TemplateRepository struct {
	mu        sync.RWMutex
	templates map[primitive.ObjectID]domain.WorkoutTemplate
}

func NewTemplateRepository() *TemplateRepository {
	return &TemplateRepository{templates: make(map[primitive.ObjectID]domain.WorkoutTemplate)}
}

func (r *TemplateRepository) Create(_ context.Context, template *domain.WorkoutTemplate) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.templates {
		if existing.Name == template.Name {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}

	template.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	template.CreatedAt = now
	template.UpdatedAt = now
	r.templates[template.ID] = *template
	return template.ID, nil
}

func (r *TemplateRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	template, ok := r.templates[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &template, nil
}

func (r *TemplateRepository) List(_ context.Context, opts repository.TemplateListOptions) ([]domain.WorkoutTemplate, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.WorkoutTemplate
	for _, template := range r.templates {
		if opts.PublicOnly && !template.IsPublic {
			continue
		}
		if opts.Type != "" && template.Type != opts.Type {
			continue
		}
		if opts.Difficulty != "" && template.Difficulty != opts.Difficulty {
			continue
		}
		matched = append(matched, template)
	}

	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = "usageCount"
	}
	sort.Slice(matched, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "name":
			less = matched[i].Name < matched[j].Name
		default:
			less = matched[i].UsageCount < matched[j].UsageCount
		}
		if opts.SortDesc {
			return !less
		}
		return less
	})

	total := int64(len(matched))
	return paginate(matched, opts.Page, opts.Limit), total, nil
}

func (r *TemplateRepository) IncrementUsage(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	template, ok := r.templates[id]
	if !ok {
		return repository.ErrNotFound
	}
	template.UsageCount++
	r.templates[id] = template
	return nil
}

// HistoryRepository is a map-backed repository.HistoryRepository.
type HistoryRepository struct {
	mu        sync.RWMutex
	histories map[primitive.ObjectID]domain.WorkoutHistory
}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{histories: make(map[primitive.ObjectID]domain.WorkoutHistory)}
}

func (r *HistoryRepository) Create(_ context.Context, history *domain.WorkoutHistory) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	history.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if history.CompletedAt.IsZero() {
		history.CompletedAt = now
	}
	history.CreatedAt = now
	history.UpdatedAt = now
	r.histories[history.ID] = *history
	return history.ID, nil
}

func (r *HistoryRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history, ok := r.histories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &history, nil
}

func (r *HistoryRepository) List(_ context.Context, opts repository.HistoryListOptions) ([]domain.WorkoutHistory, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.WorkoutHistory
	for _, history := range r.histories {
		if opts.Type != "" && history.Type != opts.Type {
			continue
		}
		if opts.Difficulty != "" && history.Difficulty != opts.Difficulty {
			continue
		}
		matched = append(matched, history)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CompletedAt.After(matched[j].CompletedAt)
	})

	total := int64(len(matched))
	return paginate(matched, opts.Page, opts.Limit), total, nil
}

func (r *HistoryRepository) Update(_ context.Context, id primitive.ObjectID, update repository.HistoryUpdate) (*domain.WorkoutHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	history, ok := r.histories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.Duration != nil {
		history.Duration = *update.Duration
	}
	if update.Rating != nil {
		history.Rating = *update.Rating
	}
	if update.Notes != nil {
		history.Notes = *update.Notes
	}
	history.UpdatedAt = time.Now().UTC()
	r.histories[id] = history
	return &history, nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, page, limit int) []T {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
