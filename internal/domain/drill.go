package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Drill categories. These double as workout types for generation.
const (
	CategoryUpperBody   = "Upper Body"
	CategoryLowerBody   = "Lower Body"
	CategoryMaxSpeed    = "Max Speed"
	CategoryEndurance   = "Endurance"
	CategoryPlyometrics = "Plyometrics"
)

// Canonical difficulty levels, shared by drills, templates, history and generation.
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

// Intensity levels (optional drill attribute, used by the Endurance type filter).
const (
	IntensityLow    = "Low"
	IntensityMedium = "Medium"
	IntensityHigh   = "High"
)

var DrillCategories = []string{
	CategoryUpperBody,
	CategoryLowerBody,
	CategoryMaxSpeed,
	CategoryEndurance,
	CategoryPlyometrics,
}

var Difficulties = []string{
	DifficultyBeginner,
	DifficultyIntermediate,
	DifficultyAdvanced,
}

var Intensities = []string{
	IntensityLow,
	IntensityMedium,
	IntensityHigh,
}

// legacyDifficulties maps the older catalog vocabulary onto the canonical levels.
// Accepted on input only; stored and returned values are always canonical.
var legacyDifficulties = map[string]string{
	"Easy":   DifficultyBeginner,
	"Medium": DifficultyIntermediate,
	"Hard":   DifficultyAdvanced,
}

// CanonicalDifficulty maps legacy values (Easy/Medium/Hard) to the canonical
// enum and passes canonical values through unchanged. The boolean reports
// whether the input is a recognized difficulty at all.
func CanonicalDifficulty(value string) (string, bool) {
	if mapped, ok := legacyDifficulties[value]; ok {
		return mapped, true
	}
	for _, d := range Difficulties {
		if d == value {
			return d, true
		}
	}
	return "", false
}

func IsValidCategory(value string) bool {
	for _, c := range DrillCategories {
		if c == value {
			return true
		}
	}
	return false
}

func IsValidIntensity(value string) bool {
	for _, i := range Intensities {
		if i == value {
			return true
		}
	}
	return false
}

// Drill is an atomic exercise record in the catalog.
type Drill struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Difficulty  string             `bson:"difficulty" json:"difficulty"`
	Intensity   string             `bson:"intensity,omitempty" json:"intensity,omitempty"`

	// VideoObjectKey points at an optional demo video in object storage.
	// Exposed to clients only via presigned URLs, never directly.
	VideoObjectKey string `bson:"videoObjectKey,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Field length limits enforced at creation and update.
const (
	MaxDrillNameLength        = 100
	MaxDrillDescriptionLength = 1000
)
