package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"drillhub/workout-app/internal/domain"
	"drillhub/workout-app/internal/metrics"
	"drillhub/workout-app/internal/repository"
	"drillhub/workout-app/internal/sample"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrNoMatchingDrills = errors.New("no matching drills found for the specified criteria")
)

// GenerateInput carries the parameters of a full workout generation request.
// The timing overrides (RestBetweenSets, SetsPerExercise, TimePerExercise)
// apply only when positive; zero or negative values fall back to the defaults.
type GenerateInput struct {
	Type               string
	Count              int
	Difficulty         string
	TemplateID         string
	WorkoutStyle       string
	PreferredEquipment []string
	Intensity          string
	RestBetweenSets    int
	SetsPerExercise    int
	TimePerExercise    int
}

// DifficultyCount is the drill count for one difficulty level.
type DifficultyCount struct {
	Difficulty string `json:"difficulty"`
	Count      int64  `json:"count"`
}

// WorkoutTypeSummary aggregates catalog coverage for one workout type.
type WorkoutTypeSummary struct {
	Type         string            `json:"type"`
	TotalDrills  int64             `json:"totalDrills"`
	ByDifficulty []DifficultyCount `json:"byDifficulty"`
}

// WorkoutOverview is the catalog coverage report for all workout types,
// optionally including the most used public templates.
type WorkoutOverview struct {
	WorkoutTypes     []WorkoutTypeSummary     `json:"workoutTypes"`
	Total            int64                    `json:"total"`
	PopularTemplates []domain.WorkoutTemplate `json:"popularTemplates,omitempty"`
}

// GeneratorService assembles randomized workouts from the drill catalog.
type GeneratorService interface {
	Generate(ctx context.Context, input GenerateInput) (*domain.GeneratedWorkout, error)
	GenerateSimple(ctx context.Context, category string, count int) ([]domain.Drill, error)
	Overview(ctx context.Context, includeTemplates bool) (*WorkoutOverview, error)
}

type generatorService struct {
	drillRepo    repository.DrillRepository
	templateRepo repository.TemplateRepository
	historyRepo  repository.HistoryRepository

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGeneratorService creates a new GeneratorService. The rand source is
// injected so tests can make draws reproducible.
func NewGeneratorService(
	drillRepo repository.DrillRepository,
	templateRepo repository.TemplateRepository,
	historyRepo repository.HistoryRepository,
	rng *rand.Rand,
) GeneratorService {
	return &generatorService{
		drillRepo:    drillRepo,
		templateRepo: templateRepo,
		historyRepo:  historyRepo,
		rng:          rng,
	}
}

// typeFilters maps each workout type to the drill filter it samples from.
// Endurance selects by intensity rather than category.
var typeFilters = map[string]repository.DrillFilter{
	domain.CategoryUpperBody:   {Categories: []string{"Push", "Pull", domain.CategoryUpperBody}},
	domain.CategoryLowerBody:   {Categories: []string{"Legs", domain.CategoryLowerBody}},
	domain.CategoryMaxSpeed:    {Categories: []string{"Speed", "Agility"}},
	domain.CategoryEndurance:   {Intensity: domain.IntensityHigh},
	domain.CategoryPlyometrics: {Categories: []string{domain.CategoryPlyometrics, "Jump Training"}},
}

// styleRule describes how one workout style reshapes the base structure.
// Zero-valued fields leave the corresponding exercise/structure field alone.
type styleRule struct {
	sets                int
	repsPerSet          int
	restAfter           int
	workTime            int
	restTime            int
	holdTime            int
	repetitions         int
	rounds              int
	restBetweenRounds   int
	circuits            int
	restBetweenCircuits int
}

// styleRules is keyed by lowercased style name. Unknown or absent styles
// keep the base structure.
var styleRules = map[string]styleRule{
	"circuit":     {rounds: 3, restBetweenRounds: 60},
	"hiit":        {workTime: 30, restTime: 15, rounds: 4, restBetweenRounds: 90},
	"strength":    {sets: 4, repsPerSet: 8, restAfter: 90},
	"endurance":   {sets: 3, repsPerSet: 15, restAfter: 45, circuits: 2, restBetweenCircuits: 120},
	"flexibility": {holdTime: 30, repetitions: 3, restAfter: 20},
}

func applyStyle(structure *domain.Structure, style string) {
	rule, ok := styleRules[strings.ToLower(style)]
	if !ok {
		return
	}

	for i := range structure.Exercises {
		ex := &structure.Exercises[i]
		if rule.sets > 0 {
			ex.Sets = rule.sets
		}
		if rule.repsPerSet > 0 {
			ex.RepsPerSet = rule.repsPerSet
		}
		if rule.restAfter > 0 {
			ex.RestAfter = rule.restAfter
		}
		if rule.workTime > 0 {
			ex.WorkTime = rule.workTime
		}
		if rule.restTime > 0 {
			ex.RestTime = rule.restTime
		}
		if rule.holdTime > 0 {
			ex.HoldTime = rule.holdTime
		}
		if rule.repetitions > 0 {
			ex.Repetitions = rule.repetitions
		}
	}

	structure.Rounds = rule.rounds
	structure.RestBetweenRounds = rule.restBetweenRounds
	structure.Circuits = rule.circuits
	structure.RestBetweenCircuits = rule.restBetweenCircuits
}

// Generate runs the full generation pipeline: validate, merge template,
// filter, sample, structure, persist history.
func (s *generatorService) Generate(ctx context.Context, input GenerateInput) (*domain.GeneratedWorkout, error) {
	verr := &ValidationError{}

	if input.Type == "" || !domain.IsValidWorkoutType(input.Type) {
		verr.Add("type", fmt.Sprintf("Type must be one of: %s", strings.Join(domain.WorkoutTypes, ", ")))
	}
	if input.TemplateID == "" && input.Count < 1 {
		verr.Add("count", "Count must be a positive number")
	}
	if input.WorkoutStyle != "" && !domain.IsValidWorkoutStyle(input.WorkoutStyle) {
		verr.Add("workoutStyle", fmt.Sprintf("Style must be one of: %s", strings.Join(domain.WorkoutStyles, ", ")))
	}

	difficulty := input.Difficulty
	if difficulty != "" {
		canonical, ok := domain.CanonicalDifficulty(difficulty)
		if !ok {
			verr.Add("difficulty", fmt.Sprintf("Difficulty must be one of: %s", strings.Join(domain.Difficulties, ", ")))
		} else {
			difficulty = canonical
		}
	}

	if verr.HasErrors() {
		metrics.GenerationFailures.WithLabelValues("validation").Inc()
		return nil, verr
	}

	workoutType := input.Type
	count := input.Count

	// Template values take precedence over client-supplied ones. The usage
	// counter bump is not transactional with the history write below; a
	// failure in between leaves the counter ahead by one.
	if input.TemplateID != "" {
		templateID, err := primitive.ObjectIDFromHex(input.TemplateID)
		if err != nil {
			metrics.GenerationFailures.WithLabelValues("template_not_found").Inc()
			return nil, ErrTemplateNotFound
		}
		template, err := s.templateRepo.GetByID(ctx, templateID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				metrics.GenerationFailures.WithLabelValues("template_not_found").Inc()
				return nil, ErrTemplateNotFound
			}
			return nil, err
		}

		workoutType = template.Type
		count = template.DrillCount
		difficulty = template.Difficulty
		// Equipment and intensity preferences are carried along, but the
		// catalog records neither yet, so they do not narrow the filter.
		input.PreferredEquipment = template.Filters.Equipment
		input.Intensity = template.Filters.Intensity

		if err := s.templateRepo.IncrementUsage(ctx, templateID); err != nil {
			return nil, err
		}
	}

	filter := typeFilters[workoutType]
	filter.Difficulty = difficulty

	matching, err := s.drillRepo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(matching) == 0 {
		metrics.GenerationFailures.WithLabelValues("no_drills").Inc()
		return nil, ErrNoMatchingDrills
	}

	s.mu.Lock()
	drills := sample.Draw(s.rng, matching, count)
	s.mu.Unlock()

	structure := domain.Structure{
		Exercises: make([]domain.Exercise, len(drills)),
	}
	for i, drill := range drills {
		structure.Exercises[i] = domain.Exercise{
			Drill:      drill,
			Sets:       orDefault(input.SetsPerExercise, 3),
			TimePerSet: orDefault(input.TimePerExercise, 45),
			RestAfter:  orDefault(input.RestBetweenSets, 30),
		}
	}
	applyStyle(&structure, input.WorkoutStyle)

	historyDifficulty := difficulty
	if historyDifficulty == "" {
		historyDifficulty = domain.DifficultyIntermediate
	}

	drillIDs := make([]primitive.ObjectID, len(drills))
	for i, drill := range drills {
		drillIDs[i] = drill.ID
	}

	historyID, err := s.historyRepo.Create(ctx, &domain.WorkoutHistory{
		Type:       workoutType,
		Drills:     drillIDs,
		Difficulty: historyDifficulty,
		Style:      input.WorkoutStyle,
		Duration:   0,
		Rating:     0,
	})
	if err != nil {
		return nil, err
	}

	metrics.WorkoutsGenerated.WithLabelValues(workoutType, input.WorkoutStyle).Inc()
	metrics.DrillsSampled.Observe(float64(len(drills)))

	return &domain.GeneratedWorkout{
		Type:       workoutType,
		Style:      input.WorkoutStyle,
		Difficulty: difficulty,
		DrillCount: len(drills),
		WorkoutID:  historyID.Hex(),
		Structure:  structure,
		Drills:     drills,
	}, nil
}

// GenerateSimple draws a random sample of drills by category, with no
// styling, template merge or history record.
func (s *generatorService) GenerateSimple(ctx context.Context, category string, count int) ([]domain.Drill, error) {
	if count < 1 {
		count = 5
	}

	filter := repository.DrillFilter{}
	if category != "" && category != "All" {
		filter.Categories = []string{category}
	}

	matching, err := s.drillRepo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(matching) == 0 {
		return nil, ErrNoMatchingDrills
	}

	s.mu.Lock()
	drills := sample.Draw(s.rng, matching, count)
	s.mu.Unlock()

	return drills, nil
}

// Overview reports per-type, per-difficulty drill counts, plus the ten most
// used public templates when requested.
func (s *generatorService) Overview(ctx context.Context, includeTemplates bool) (*WorkoutOverview, error) {
	overview := &WorkoutOverview{
		WorkoutTypes: make([]WorkoutTypeSummary, 0, len(domain.WorkoutTypes)),
	}

	for _, workoutType := range domain.WorkoutTypes {
		summary := WorkoutTypeSummary{
			Type:         workoutType,
			ByDifficulty: make([]DifficultyCount, 0, len(domain.Difficulties)),
		}
		for _, difficulty := range domain.Difficulties {
			count, err := s.drillRepo.Count(ctx, workoutType, difficulty)
			if err != nil {
				return nil, err
			}
			summary.ByDifficulty = append(summary.ByDifficulty, DifficultyCount{
				Difficulty: difficulty,
				Count:      count,
			})
			summary.TotalDrills += count
		}
		overview.WorkoutTypes = append(overview.WorkoutTypes, summary)
		overview.Total += summary.TotalDrills
	}

	if includeTemplates {
		templates, _, err := s.templateRepo.List(ctx, repository.TemplateListOptions{
			PublicOnly: true,
			SortBy:     "usageCount",
			SortDesc:   true,
			Page:       1,
			Limit:      10,
		})
		if err != nil {
			return nil, err
		}
		overview.PopularTemplates = templates
	}

	return overview, nil
}

func orDefault(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
