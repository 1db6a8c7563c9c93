package service

import (
	"context"
	"math/rand"
	"testing"

	"drillhub/workout-app/internal/domain"
	"drillhub/workout-app/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type generatorFixture struct {
	drills    *memory.DrillRepository
	templates *memory.TemplateRepository
	histories *memory.HistoryRepository
	generator GeneratorService
}

func newGeneratorFixture(t *testing.T, seed int64) *generatorFixture {
	t.Helper()
	drills := memory.NewDrillRepository()
	templates := memory.NewTemplateRepository()
	histories := memory.NewHistoryRepository()
	return &generatorFixture{
		drills:    drills,
		templates: templates,
		histories: histories,
		generator: NewGeneratorService(drills, templates, histories, rand.New(rand.NewSource(seed))),
	}
}

func (f *generatorFixture) seedDrills(t *testing.T, category, difficulty string, count int) []primitive.ObjectID {
	t.Helper()
	ids := make([]primitive.ObjectID, 0, count)
	for i := 0; i < count; i++ {
		drill := &domain.Drill{
			Name:        category + " drill " + string(rune('A'+i)),
			Description: "a drill",
			Category:    category,
			Difficulty:  difficulty,
		}
		id, err := f.drills.Create(context.Background(), drill)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestGenerateReturnsRequestedCount(t *testing.T) {
	f := newGeneratorFixture(t, 1)
	f.seedDrills(t, domain.CategoryUpperBody, domain.DifficultyIntermediate, 8)

	workout, err := f.generator.Generate(context.Background(), GenerateInput{
		Type:       domain.CategoryUpperBody,
		Count:      3,
		Difficulty: domain.DifficultyIntermediate,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, workout.DrillCount)
	assert.Len(t, workout.Drills, 3)
	assert.Len(t, workout.Structure.Exercises, 3)

	seen := make(map[string]bool)
	for _, drill := range workout.Drills {
		assert.False(t, seen[drill.ID.Hex()], "drill sampled twice")
		seen[drill.ID.Hex()] = true
		assert.Equal(t, domain.CategoryUpperBody, drill.Category)
		assert.Equal(t, domain.DifficultyIntermediate, drill.Difficulty)
	}
}

func TestGenerateShortSampleWhenFewerMatch(t *testing.T) {
	f := newGeneratorFixture(t, 2)
	f.seedDrills(t, domain.CategoryLowerBody, domain.DifficultyBeginner, 2)

	workout, err := f.generator.Generate(context.Background(), GenerateInput{
		Type:       domain.CategoryLowerBody,
		Count:      10,
		Difficulty: domain.DifficultyBeginner,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, workout.DrillCount)
}

func TestGenerateFailsWhenNoDrillsMatch(t *testing.T) {
	f := newGeneratorFixture(t, 3)

	_, err := f.generator.Generate(context.Background(), GenerateInput{
		Type:  domain.CategoryPlyometrics,
		Count: 3,
	})
	assert.ErrorIs(t, err, ErrNoMatchingDrills)
}

func TestGenerateValidation(t *testing.T) {
	f := newGeneratorFixture(t, 4)

	tests := []struct {
		name  string
		input GenerateInput
		field string
	}{
		{"missing type", GenerateInput{Count: 3}, "type"},
		{"bad type", GenerateInput{Type: "Yoga", Count: 3}, "type"},
		{"missing count", GenerateInput{Type: domain.CategoryUpperBody}, "count"},
		{"negative count", GenerateInput{Type: domain.CategoryUpperBody, Count: -1}, "count"},
		{"bad style", GenerateInput{Type: domain.CategoryUpperBody, Count: 3, WorkoutStyle: "Tabata"}, "workoutStyle"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.generator.Generate(context.Background(), tc.input)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
}

func TestGenerateStyleStructuring(t *testing.T) {
	tests := []struct {
		style string
		check func(t *testing.T, workout *domain.GeneratedWorkout)
	}{
		{domain.StyleCircuit, func(t *testing.T, w *domain.GeneratedWorkout) {
			assert.Equal(t, 3, w.Structure.Rounds)
			assert.Equal(t, 60, w.Structure.RestBetweenRounds)
			for _, ex := range w.Structure.Exercises {
				assert.Equal(t, 3, ex.Sets)
				assert.Equal(t, 45, ex.TimePerSet)
				assert.Equal(t, 30, ex.RestAfter)
			}
		}},
		{domain.StyleHIIT, func(t *testing.T, w *domain.GeneratedWorkout) {
			assert.Equal(t, 4, w.Structure.Rounds)
			assert.Equal(t, 90, w.Structure.RestBetweenRounds)
			for _, ex := range w.Structure.Exercises {
				assert.Equal(t, 30, ex.WorkTime)
				assert.Equal(t, 15, ex.RestTime)
			}
		}},
		{domain.StyleStrength, func(t *testing.T, w *domain.GeneratedWorkout) {
			assert.Zero(t, w.Structure.Rounds)
			for _, ex := range w.Structure.Exercises {
				assert.Equal(t, 4, ex.Sets)
				assert.Equal(t, 8, ex.RepsPerSet)
				assert.Equal(t, 90, ex.RestAfter)
			}
		}},
		{domain.StyleEndurance, func(t *testing.T, w *domain.GeneratedWorkout) {
			assert.Equal(t, 2, w.Structure.Circuits)
			assert.Equal(t, 120, w.Structure.RestBetweenCircuits)
			for _, ex := range w.Structure.Exercises {
				assert.Equal(t, 3, ex.Sets)
				assert.Equal(t, 15, ex.RepsPerSet)
				assert.Equal(t, 45, ex.RestAfter)
			}
		}},
		{domain.StyleFlexibility, func(t *testing.T, w *domain.GeneratedWorkout) {
			for _, ex := range w.Structure.Exercises {
				assert.Equal(t, 30, ex.HoldTime)
				assert.Equal(t, 3, ex.Repetitions)
				assert.Equal(t, 20, ex.RestAfter)
			}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.style, func(t *testing.T) {
			f := newGeneratorFixture(t, 5)
			f.seedDrills(t, domain.CategoryUpperBody, domain.DifficultyIntermediate, 6)

			workout, err := f.generator.Generate(context.Background(), GenerateInput{
				Type:         domain.CategoryUpperBody,
				Count:        4,
				WorkoutStyle: tc.style,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.style, workout.Style)
			tc.check(t, workout)
		})
	}
}

func TestGenerateStyleMatchIsCaseInsensitive(t *testing.T) {
	f := newGeneratorFixture(t, 6)
	f.seedDrills(t, domain.CategoryUpperBody, domain.DifficultyIntermediate, 4)

	workout, err := f.generator.Generate(context.Background(), GenerateInput{
		Type:         domain.CategoryUpperBody,
		Count:        2,
		WorkoutStyle: "HIIT",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, workout.Structure.Rounds)
}

func TestGenerateEnduranceSelectsByIntensity(t *testing.T) {
	f := newGeneratorFixture(t, 16)

	// Endurance ignores category and filters on intensity instead.
	for i, intensity := range []string{domain.IntensityHigh, domain.IntensityHigh, domain.IntensityLow} {
		_, err := f.drills.Create(context.Background(), &domain.Drill{
			Name:        "endurance drill " + string(rune('A'+i)),
			Description: "a drill",
			Category:    domain.CategoryEndurance,
			Difficulty:  domain.DifficultyIntermediate,
			Intensity:   intensity,
		})
		require.NoError(t, err)
	}
	// High-intensity drills from other categories qualify too.
	_, err := f.drills.Create(context.Background(), &domain.Drill{
		Name:        "burpee sprint",
		Description: "a drill",
		Category:    domain.CategoryUpperBody,
		Difficulty:  domain.DifficultyIntermediate,
		Intensity:   domain.IntensityHigh,
	})
	require.NoError(t, err)

	workout, err := f.generator.Generate(context.Background(), GenerateInput{
		Type:  domain.CategoryEndurance,
		Count: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, workout.DrillCount)
	for _, drill := range workout.Drills {
		assert.Equal(t, domain.IntensityHigh, drill.Intensity)
	}
}

func TestGenerateNoStyleKeepsBaseStructure(t *testing.T) {
	f := newGeneratorFixture(t, 7)
	f.seedDrills(t, domain.CategoryMaxSpeed, domain.DifficultyAdvanced, 4)

	// Max Speed samples from the Speed/Agility categories.
	for i := 0; i < 3; i++ {
		_, err := f.drills.Create(context.Background(), &domain.Drill{
			Name:        "sprint variant " + string(rune('A'+i)),
			Description: "a drill",
			Category:    "Speed",
			Difficulty:  domain.DifficultyAdvanced,
		})
		require.NoError(t, err)
	}

	workout, err := f.generator.Generate(context.Background(), GenerateInput{
		Type:  domain.CategoryMaxSpeed,
		Count: 2,
	})
	require.NoError(t, err)

	assert.Zero(t, workout.Structure.Rounds)
	assert.Zero(t, workout.Structure.Circuits)
	for _, ex := range workout.Structure.Exercises {
		assert.Equal(t, 3, ex.Sets)
		assert.Equal(t, 45, ex.TimePerSet)
		assert.Equal(t, 30, ex.RestAfter)
		assert.Zero(t, ex.RepsPerSet)
	}
	for _, drill := range workout.Drills {
		assert.Equal(t, "Speed", drill.Category)
	}
}

func TestGenerateTimingOverrides(t *testing.T) {
	f := newGeneratorFixture(t, 8)
	f.seedDrills(t, domain.CategoryUpperBody, domain.DifficultyIntermediate, 4)

	workout, err := f.generator.Generate(context.Background(), GenerateInput{
		Type:            domain.CategoryUpperBody,
		Count:           2,
		SetsPerExercise: 5,
		TimePerExercise: 60,
		RestBetweenSets: 40,
	})
	require.NoError(t, err)
	for _, ex := range workout.Structure.Exercises {
		assert.Equal(t, 5, ex.Sets)
		assert.Equal(t, 60, ex.TimePerSet)
		assert.Equal(t, 40, ex.RestAfter)
	}
}

func TestGenerateNegativeTimingOverridesFallBackToDefaults(t *testing.T) {
	f := newGeneratorFixture(t, 17)
	f.seedDrills(t, domain.CategoryUpperBody, domain.DifficultyIntermediate, 4)

	workout, err := f.generator.Generate(context.Background(), GenerateInput{
		Type:            domain.CategoryUpperBody,
		Count:           2,
		SetsPerExercise: -5,
		TimePerExercise: -60,
		RestBetweenSets: -40,
	})
	require.NoError(t, err)
	for _, ex := range workout.Structure.Exercises {
		assert.Equal(t, 3, ex.Sets)
		assert.Equal(t, 45, ex.TimePerSet)
		assert.Equal(t, 30, ex.RestAfter)
	}
}

func TestGeneratePersistsHistory(t *testing.T) {
	f := newGeneratorFixture(t, 9)
	f.seedDrills(t, domain.CategoryUpperBody, "", 5)

	workout, err := f.generator.Generate(context.Background(), GenerateInput{
		Type:         domain.CategoryUpperBody,
		Count:        3,
		WorkoutStyle: domain.StyleCircuit,
	})
	require.NoError(t, err)
	require.NotEmpty(t, workout.WorkoutID)

	historyID, err := primitive.ObjectIDFromHex(workout.WorkoutID)
	require.NoError(t, err)
	history, err := f.histories.GetByID(context.Background(), historyID)
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryUpperBody, history.Type)
	assert.Equal(t, domain.StyleCircuit, history.Style)
	assert.Len(t, history.Drills, 3)
	assert.Zero(t, history.Duration)
	assert.Zero(t, history.Rating)
	// No difficulty requested: history defaults to Intermediate.
	assert.Equal(t, domain.DifficultyIntermediate, history.Difficulty)

	// Draw order is preserved in the history record.
	for i, drill := range workout.Drills {
		assert.Equal(t, drill.ID, history.Drills[i])
	}
}

func TestGenerateFromTemplate(t *testing.T) {
	f := newGeneratorFixture(t, 10)
	f.seedDrills(t, domain.CategoryLowerBody, domain.DifficultyAdvanced, 6)
	// Lower Body also samples from the Legs category.
	_, err := f.drills.Create(context.Background(), &domain.Drill{
		Name:        "wall sit",
		Description: "a drill",
		Category:    "Legs",
		Difficulty:  domain.DifficultyAdvanced,
	})
	require.NoError(t, err)

	templateID, err := f.templates.Create(context.Background(), &domain.WorkoutTemplate{
		Name:           "leg day",
		Description:    "lower body preset",
		Type:           domain.CategoryLowerBody,
		Difficulty:     domain.DifficultyAdvanced,
		DrillCount:     4,
		TargetDuration: 30,
		IsPublic:       true,
	})
	require.NoError(t, err)

	// Template values override the client-supplied type and count.
	workout, err := f.generator.Generate(context.Background(), GenerateInput{
		Type:       domain.CategoryUpperBody,
		Count:      1,
		TemplateID: templateID.Hex(),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryLowerBody, workout.Type)
	assert.Equal(t, 4, workout.DrillCount)
	assert.Equal(t, domain.DifficultyAdvanced, workout.Difficulty)

	template, err := f.templates.GetByID(context.Background(), templateID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), template.UsageCount)
}

func TestGenerateTemplateUsageCountIncrementsPerCall(t *testing.T) {
	f := newGeneratorFixture(t, 11)
	f.seedDrills(t, domain.CategoryUpperBody, domain.DifficultyBeginner, 5)

	templateID, err := f.templates.Create(context.Background(), &domain.WorkoutTemplate{
		Name:           "push day",
		Description:    "upper body preset",
		Type:           domain.CategoryUpperBody,
		Difficulty:     domain.DifficultyBeginner,
		DrillCount:     2,
		TargetDuration: 20,
		IsPublic:       true,
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := f.generator.Generate(context.Background(), GenerateInput{
			Type:       domain.CategoryUpperBody,
			TemplateID: templateID.Hex(),
		})
		require.NoError(t, err)
	}

	template, err := f.templates.GetByID(context.Background(), templateID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), template.UsageCount)
}

func TestGenerateUnknownTemplate(t *testing.T) {
	f := newGeneratorFixture(t, 12)
	f.seedDrills(t, domain.CategoryUpperBody, "", 3)

	_, err := f.generator.Generate(context.Background(), GenerateInput{
		Type:       domain.CategoryUpperBody,
		Count:      2,
		TemplateID: primitive.NewObjectID().Hex(),
	})
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = f.generator.Generate(context.Background(), GenerateInput{
		Type:       domain.CategoryUpperBody,
		Count:      2,
		TemplateID: "not-a-hex-id",
	})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestGenerateSimple(t *testing.T) {
	f := newGeneratorFixture(t, 13)
	f.seedDrills(t, domain.CategoryEndurance, domain.DifficultyBeginner, 8)

	drills, err := f.generator.GenerateSimple(context.Background(), domain.CategoryEndurance, 3)
	require.NoError(t, err)
	assert.Len(t, drills, 3)

	// Count defaults to 5 when unset.
	drills, err = f.generator.GenerateSimple(context.Background(), domain.CategoryEndurance, 0)
	require.NoError(t, err)
	assert.Len(t, drills, 5)

	// "All" samples across every category.
	drills, err = f.generator.GenerateSimple(context.Background(), "All", 4)
	require.NoError(t, err)
	assert.Len(t, drills, 4)

	_, err = f.generator.GenerateSimple(context.Background(), domain.CategoryPlyometrics, 3)
	assert.ErrorIs(t, err, ErrNoMatchingDrills)
}

func TestOverviewCountsByTypeAndDifficulty(t *testing.T) {
	f := newGeneratorFixture(t, 14)
	f.seedDrills(t, domain.CategoryUpperBody, domain.DifficultyBeginner, 2)
	f.seedDrills(t, domain.CategoryUpperBody, domain.DifficultyAdvanced, 1)
	f.seedDrills(t, domain.CategoryEndurance, domain.DifficultyIntermediate, 3)

	overview, err := f.generator.Overview(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, int64(6), overview.Total)
	assert.Len(t, overview.WorkoutTypes, len(domain.WorkoutTypes))
	assert.Nil(t, overview.PopularTemplates)

	byType := make(map[string]WorkoutTypeSummary)
	for _, summary := range overview.WorkoutTypes {
		byType[summary.Type] = summary
	}
	assert.Equal(t, int64(3), byType[domain.CategoryUpperBody].TotalDrills)
	assert.Equal(t, int64(3), byType[domain.CategoryEndurance].TotalDrills)
	assert.Equal(t, int64(0), byType[domain.CategoryPlyometrics].TotalDrills)
}

func TestOverviewIncludesPopularTemplates(t *testing.T) {
	f := newGeneratorFixture(t, 15)

	for _, name := range []string{"alpha", "bravo"} {
		_, err := f.templates.Create(context.Background(), &domain.WorkoutTemplate{
			Name:           name,
			Description:    "preset",
			Type:           domain.CategoryUpperBody,
			Difficulty:     domain.DifficultyBeginner,
			DrillCount:     3,
			TargetDuration: 20,
			IsPublic:       true,
		})
		require.NoError(t, err)
	}
	_, err := f.templates.Create(context.Background(), &domain.WorkoutTemplate{
		Name:           "private",
		Description:    "hidden preset",
		Type:           domain.CategoryUpperBody,
		Difficulty:     domain.DifficultyBeginner,
		DrillCount:     3,
		TargetDuration: 20,
		IsPublic:       false,
	})
	require.NoError(t, err)

	overview, err := f.generator.Overview(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, overview.PopularTemplates, 2)
	for _, template := range overview.PopularTemplates {
		assert.True(t, template.IsPublic)
	}
}
