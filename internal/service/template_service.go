package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"drillhub/workout-app/internal/domain"
	"drillhub/workout-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrTemplateNotFound  = errors.New("template not found")
	ErrTemplateNameTaken = errors.New("template name must be unique")
)

// CreateTemplateInput carries the fields for a new workout template.
type CreateTemplateInput struct {
	Name           string
	Description    string
	Type           string
	Difficulty     string
	DrillCount     int
	TargetDuration int
	Filters        domain.TemplateFilters
	IsPublic       *bool
}

// ListTemplatesInput controls template listing.
type ListTemplatesInput struct {
	Type       string
	Difficulty string
	SortBy     string
	Order      string
	Page       int
	Limit      int
}

// TemplateService manages workout generation presets.
type TemplateService interface {
	CreateTemplate(ctx context.Context, input CreateTemplateInput) (*domain.WorkoutTemplate, error)
	ListTemplates(ctx context.Context, input ListTemplatesInput) ([]domain.WorkoutTemplate, int64, error)
}

type templateService struct {
	templateRepo repository.TemplateRepository
}

// NewTemplateService creates a new TemplateService.
func NewTemplateService(templateRepo repository.TemplateRepository) TemplateService {
	return &templateService{templateRepo: templateRepo}
}

func (s *templateService) CreateTemplate(ctx context.Context, input CreateTemplateInput) (*domain.WorkoutTemplate, error) {
	verr := &ValidationError{}

	if input.Name == "" {
		verr.Add("name", "name is required")
	}
	if input.Description == "" {
		verr.Add("description", "description is required")
	}
	if input.Type == "" {
		verr.Add("type", "type is required")
	} else if !domain.IsValidWorkoutType(input.Type) {
		verr.Add("type", fmt.Sprintf("type must be one of: %s", strings.Join(domain.WorkoutTypes, ", ")))
	}

	difficulty := input.Difficulty
	if difficulty == "" {
		verr.Add("difficulty", "difficulty is required")
	} else if canonical, ok := domain.CanonicalDifficulty(difficulty); ok {
		difficulty = canonical
	} else {
		verr.Add("difficulty", fmt.Sprintf("difficulty must be one of: %s", strings.Join(domain.Difficulties, ", ")))
	}

	if input.DrillCount < 1 {
		verr.Add("drillCount", "drillCount must be at least 1")
	}
	if input.TargetDuration < 1 {
		verr.Add("targetDuration", "targetDuration is required")
	}
	if input.Filters.Intensity != "" && !domain.IsValidIntensity(input.Filters.Intensity) {
		verr.Add("filters", fmt.Sprintf("filter intensity must be one of: %s", strings.Join(domain.Intensities, ", ")))
	}

	if verr.HasErrors() {
		return nil, verr
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	template := &domain.WorkoutTemplate{
		Name:           strings.TrimSpace(input.Name),
		Description:    input.Description,
		Type:           input.Type,
		Difficulty:     difficulty,
		DrillCount:     input.DrillCount,
		TargetDuration: input.TargetDuration,
		Filters:        input.Filters,
		IsPublic:       isPublic,
		UsageCount:     0,
	}

	templateID, err := s.templateRepo.Create(ctx, template)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTemplateNameTaken
		}
		return nil, err
	}
	return s.templateRepo.GetByID(ctx, templateID)
}

// ListTemplates returns public templates with filtering, sorting and
// pagination, plus the total match count.
func (s *templateService) ListTemplates(ctx context.Context, input ListTemplatesInput) ([]domain.WorkoutTemplate, int64, error) {
	sortBy := input.SortBy
	if sortBy == "" {
		sortBy = "usageCount"
	}
	order := input.Order
	if order == "" {
		order = "desc"
	}

	templates, total, err := s.templateRepo.List(ctx, repository.TemplateListOptions{
		Type:       input.Type,
		Difficulty: input.Difficulty,
		PublicOnly: true,
		SortBy:     sortBy,
		SortDesc:   order == "desc",
		Page:       input.Page,
		Limit:      input.Limit,
	})
	if err != nil {
		return nil, 0, err
	}
	if templates == nil {
		templates = []domain.WorkoutTemplate{}
	}
	return templates, total, nil
}
