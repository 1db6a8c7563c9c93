package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"drillhub/workout-app/internal/domain"
	"drillhub/workout-app/internal/repository"
	"drillhub/workout-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrDrillNotFound = errors.New("drill not found")
	ErrNoDrillVideo  = errors.New("drill has no video attached")
)

// CreateDrillInput carries the fields for a new catalog drill.
type CreateDrillInput struct {
	Name        string
	Description string
	Category    string
	Difficulty  string
	Intensity   string
}

// UpdateDrillInput carries a partial drill patch. Nil fields are left unchanged.
type UpdateDrillInput struct {
	Name        *string
	Description *string
	Category    *string
	Difficulty  *string
	Intensity   *string
}

// DrillService manages the drill catalog.
type DrillService interface {
	CreateDrill(ctx context.Context, input CreateDrillInput) (*domain.Drill, error)
	GetDrill(ctx context.Context, id primitive.ObjectID) (*domain.Drill, error)
	ListDrills(ctx context.Context, category, sortBy, order string) ([]domain.Drill, error)
	UpdateDrill(ctx context.Context, id primitive.ObjectID, input UpdateDrillInput) (*domain.Drill, error)
	DeleteDrill(ctx context.Context, id primitive.ObjectID) (*domain.Drill, error)
	RequestVideoUpload(ctx context.Context, id primitive.ObjectID, contentType string) (string, error)
	GetVideoDownloadURL(ctx context.Context, id primitive.ObjectID) (string, error)
}

type drillService struct {
	drillRepo   repository.DrillRepository
	fileStorage storage.FileStorage
}

// NewDrillService creates a new DrillService. fileStorage may be nil when no
// object storage is configured; video operations then fail with ErrNoDrillVideo.
func NewDrillService(drillRepo repository.DrillRepository, fileStorage storage.FileStorage) DrillService {
	return &drillService{
		drillRepo:   drillRepo,
		fileStorage: fileStorage,
	}
}

// validateDrillFields checks enum membership and length limits, collecting
// per-field messages. The difficulty is canonicalized (legacy Easy/Medium/Hard
// values are mapped) before validation.
func validateDrillFields(drill *domain.Drill) *ValidationError {
	verr := &ValidationError{}

	if drill.Name == "" {
		verr.Add("name", "name is required")
	} else if len(drill.Name) > domain.MaxDrillNameLength {
		verr.Add("name", fmt.Sprintf("name cannot be more than %d characters", domain.MaxDrillNameLength))
	}

	if drill.Description == "" {
		verr.Add("description", "description is required")
	} else if len(drill.Description) > domain.MaxDrillDescriptionLength {
		verr.Add("description", fmt.Sprintf("description cannot be more than %d characters", domain.MaxDrillDescriptionLength))
	}

	if drill.Category == "" {
		verr.Add("category", "category is required")
	} else if !domain.IsValidCategory(drill.Category) {
		verr.Add("category", fmt.Sprintf("category must be one of: %s", strings.Join(domain.DrillCategories, ", ")))
	}

	if drill.Difficulty == "" {
		verr.Add("difficulty", "difficulty is required")
	} else if canonical, ok := domain.CanonicalDifficulty(drill.Difficulty); ok {
		drill.Difficulty = canonical
	} else {
		verr.Add("difficulty", fmt.Sprintf("difficulty must be one of: %s", strings.Join(domain.Difficulties, ", ")))
	}

	if drill.Intensity != "" && !domain.IsValidIntensity(drill.Intensity) {
		verr.Add("intensity", fmt.Sprintf("intensity must be one of: %s", strings.Join(domain.Intensities, ", ")))
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

func (s *drillService) CreateDrill(ctx context.Context, input CreateDrillInput) (*domain.Drill, error) {
	drill := &domain.Drill{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Category:    input.Category,
		Difficulty:  input.Difficulty,
		Intensity:   input.Intensity,
	}

	if verr := validateDrillFields(drill); verr != nil {
		return nil, verr
	}

	drillID, err := s.drillRepo.Create(ctx, drill)
	if err != nil {
		return nil, err
	}
	return s.drillRepo.GetByID(ctx, drillID)
}

func (s *drillService) GetDrill(ctx context.Context, id primitive.ObjectID) (*domain.Drill, error) {
	drill, err := s.drillRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDrillNotFound
		}
		return nil, err
	}
	return drill, nil
}

func (s *drillService) ListDrills(ctx context.Context, category, sortBy, order string) ([]domain.Drill, error) {
	opts := repository.DrillListOptions{
		Category: category,
		SortBy:   sortBy,
		SortDesc: order == "desc",
	}
	drills, err := s.drillRepo.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	if drills == nil {
		drills = []domain.Drill{}
	}
	return drills, nil
}

// UpdateDrill merges the patch into the stored drill and re-validates the
// whole record before persisting.
func (s *drillService) UpdateDrill(ctx context.Context, id primitive.ObjectID, input UpdateDrillInput) (*domain.Drill, error) {
	existing, err := s.drillRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDrillNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		existing.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		existing.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		existing.Category = *input.Category
	}
	if input.Difficulty != nil {
		existing.Difficulty = *input.Difficulty
	}
	if input.Intensity != nil {
		existing.Intensity = *input.Intensity
	}

	if verr := validateDrillFields(existing); verr != nil {
		return nil, verr
	}

	if err := s.drillRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDrillNotFound
		}
		return nil, err
	}
	return existing, nil
}

func (s *drillService) DeleteDrill(ctx context.Context, id primitive.ObjectID) (*domain.Drill, error) {
	drill, err := s.drillRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDrillNotFound
		}
		return nil, err
	}
	return drill, nil
}

// RequestVideoUpload assigns a fresh object key to the drill and returns a
// presigned PUT URL the client uploads the demo video to.
func (s *drillService) RequestVideoUpload(ctx context.Context, id primitive.ObjectID, contentType string) (string, error) {
	if s.fileStorage == nil {
		return "", ErrNoDrillVideo
	}

	drill, err := s.drillRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrDrillNotFound
		}
		return "", err
	}

	objectKey := fmt.Sprintf("drills/%s/video/%s", drill.ID.Hex(), uuid.NewString())
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", err
	}

	drill.VideoObjectKey = objectKey
	if err := s.drillRepo.Update(ctx, drill); err != nil {
		return "", err
	}
	return uploadURL, nil
}

// GetVideoDownloadURL returns a presigned GET URL for the drill's demo video.
func (s *drillService) GetVideoDownloadURL(ctx context.Context, id primitive.ObjectID) (string, error) {
	if s.fileStorage == nil {
		return "", ErrNoDrillVideo
	}

	drill, err := s.drillRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrDrillNotFound
		}
		return "", err
	}
	if drill.VideoObjectKey == "" {
		return "", ErrNoDrillVideo
	}

	return s.fileStorage.GeneratePresignedDownloadURL(ctx, drill.VideoObjectKey, storage.DefaultPresignedURLExpiry)
}
