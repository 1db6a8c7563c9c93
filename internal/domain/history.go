package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating bounds for completed workouts. Zero means "not rated yet".
const (
	MinRating = 1
	MaxRating = 5
)

// WorkoutHistory records a single generation event. Drill references are kept
// in draw order. Duration and rating start at zero and are patched later;
// deleting a drill does not clean up history references.
type WorkoutHistory struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Type        string               `bson:"type" json:"type"`
	Drills      []primitive.ObjectID `bson:"drills" json:"drills"`
	Difficulty  string               `bson:"difficulty" json:"difficulty"`
	Style       string               `bson:"style,omitempty" json:"style,omitempty"`
	CompletedAt time.Time            `bson:"completedAt" json:"completedAt"`
	Duration    int                  `bson:"duration" json:"duration"` // minutes
	Rating      int                  `bson:"rating" json:"rating"`
	Notes       string               `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}
