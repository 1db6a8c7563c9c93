package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateFilters narrows the drill pool a template samples from.
type TemplateFilters struct {
	Difficulty []string `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Equipment  []string `bson:"equipment,omitempty" json:"equipment,omitempty"`
	Intensity  string   `bson:"intensity,omitempty" json:"intensity,omitempty"`
}

// WorkoutTemplate is a named, reusable generation preset. Names are unique.
type WorkoutTemplate struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Description    string             `bson:"description" json:"description"`
	Type           string             `bson:"type" json:"type"`
	Difficulty     string             `bson:"difficulty" json:"difficulty"`
	DrillCount     int                `bson:"drillCount" json:"drillCount"`
	TargetDuration int                `bson:"targetDuration" json:"targetDuration"` // minutes
	Filters        TemplateFilters    `bson:"filters,omitempty" json:"filters,omitempty"`
	IsPublic       bool               `bson:"isPublic" json:"isPublic"`
	UsageCount     int64              `bson:"usageCount" json:"usageCount"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
