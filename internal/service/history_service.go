package service

import (
	"context"
	"errors"
	"fmt"

	"drillhub/workout-app/internal/domain"
	"drillhub/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrRatingOutOfRange = fmt.Errorf("rating must be between %d and %d", domain.MinRating, domain.MaxRating)
	ErrEmptyUpdate      = errors.New("at least one of duration, rating or notes is required")
)

// HistoryEntry is a history record with its drill references expanded inline.
// Drills deleted since generation are simply missing from the expansion.
type HistoryEntry struct {
	domain.WorkoutHistory
	ExpandedDrills []domain.Drill
}

// ListHistoryInput controls history listing.
type ListHistoryInput struct {
	Type       string
	Difficulty string
	Page       int
	Limit      int
}

// UpdateHistoryInput carries the patchable fields of a history record.
type UpdateHistoryInput struct {
	Duration *int
	Rating   *int
	Notes    *string
}

// HistoryService manages the log of generated workouts.
type HistoryService interface {
	ListHistory(ctx context.Context, input ListHistoryInput) ([]HistoryEntry, int64, error)
	UpdateHistory(ctx context.Context, workoutID primitive.ObjectID, input UpdateHistoryInput) (*HistoryEntry, error)
}

type historyService struct {
	historyRepo repository.HistoryRepository
	drillRepo   repository.DrillRepository
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(historyRepo repository.HistoryRepository, drillRepo repository.DrillRepository) HistoryService {
	return &historyService{
		historyRepo: historyRepo,
		drillRepo:   drillRepo,
	}
}

func (s *historyService) ListHistory(ctx context.Context, input ListHistoryInput) ([]HistoryEntry, int64, error) {
	histories, total, err := s.historyRepo.List(ctx, repository.HistoryListOptions{
		Type:       input.Type,
		Difficulty: input.Difficulty,
		Page:       input.Page,
		Limit:      input.Limit,
	})
	if err != nil {
		return nil, 0, err
	}

	entries := make([]HistoryEntry, 0, len(histories))
	for _, history := range histories {
		entry, err := s.expand(ctx, history)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, *entry)
	}
	return entries, total, nil
}

// UpdateHistory applies a partial patch to a workout history record. At least
// one field must be present; rating must be within [1,5] or the stored record
// is left untouched.
func (s *historyService) UpdateHistory(ctx context.Context, workoutID primitive.ObjectID, input UpdateHistoryInput) (*HistoryEntry, error) {
	if input.Duration == nil && input.Rating == nil && input.Notes == nil {
		return nil, ErrEmptyUpdate
	}
	if input.Rating != nil && (*input.Rating < domain.MinRating || *input.Rating > domain.MaxRating) {
		return nil, ErrRatingOutOfRange
	}

	history, err := s.historyRepo.Update(ctx, workoutID, repository.HistoryUpdate{
		Duration: input.Duration,
		Rating:   input.Rating,
		Notes:    input.Notes,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return s.expand(ctx, *history)
}

func (s *historyService) expand(ctx context.Context, history domain.WorkoutHistory) (*HistoryEntry, error) {
	drills, err := s.drillRepo.GetByIDs(ctx, history.Drills)
	if err != nil {
		return nil, err
	}

	// Restore draw order; GetByIDs makes no ordering promise.
	byID := make(map[primitive.ObjectID]domain.Drill, len(drills))
	for _, drill := range drills {
		byID[drill.ID] = drill
	}
	ordered := make([]domain.Drill, 0, len(history.Drills))
	for _, id := range history.Drills {
		if drill, ok := byID[id]; ok {
			ordered = append(ordered, drill)
		}
	}

	return &HistoryEntry{WorkoutHistory: history, ExpandedDrills: ordered}, nil
}
