package api

import (
	"net/http"
	"strconv"
	"time"

	"drillhub/workout-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoryHandler holds the workout history service dependency.
type HistoryHandler struct {
	historyService service.HistoryService
	logger         *logrus.Logger
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyService service.HistoryService, logger *logrus.Logger) *HistoryHandler {
	return &HistoryHandler{historyService: historyService, logger: logger}
}

// --- DTOs ---

// UpdateHistoryRequest patches a history record addressed by workoutId in
// the body. At least one of duration, rating or notes must be present.
type UpdateHistoryRequest struct {
	WorkoutID string  `json:"workoutId"`
	Duration  *int    `json:"duration"`
	Rating    *int    `json:"rating"`
	Notes     *string `json:"notes"`
}

// HistoryResponse is the DTO for returning a history record, with the
// referenced drills expanded inline.
type HistoryResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Drills      []DrillResponse `json:"drills"`
	Difficulty  string          `json:"difficulty"`
	Style       string          `json:"style,omitempty"`
	CompletedAt time.Time       `json:"completedAt"`
	Duration    int             `json:"duration"`
	Rating      int             `json:"rating"`
	Notes       string          `json:"notes,omitempty"`
}

// MapHistoryToResponse converts a service.HistoryEntry to its DTO.
func MapHistoryToResponse(entry *service.HistoryEntry) HistoryResponse {
	if entry == nil {
		return HistoryResponse{}
	}
	return HistoryResponse{
		ID:          entry.ID.Hex(),
		Type:        entry.Type,
		Drills:      MapDrillsToResponse(entry.ExpandedDrills),
		Difficulty:  entry.Difficulty,
		Style:       entry.Style,
		CompletedAt: entry.CompletedAt,
		Duration:    entry.Duration,
		Rating:      entry.Rating,
		Notes:       entry.Notes,
	}
}

// --- Handler Methods ---

// ListHistory handles GET /api/workouts/history with filtering and pagination.
func (h *HistoryHandler) ListHistory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, total, err := h.historyService.ListHistory(c.Request.Context(), service.ListHistoryInput{
		Type:       c.Query("type"),
		Difficulty: c.Query("difficulty"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	workouts := make([]HistoryResponse, len(entries))
	for i, entry := range entries {
		workouts[i] = MapHistoryToResponse(&entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"workouts":   workouts,
		"pagination": newPagination(total, page, limit),
	})
}

// UpdateHistory handles PATCH /api/workouts/history.
func (h *HistoryHandler) UpdateHistory(c *gin.Context) {
	var req UpdateHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.WorkoutID == "" {
		abortWithError(c, http.StatusBadRequest, "Workout ID is required")
		return
	}
	workoutID, err := primitive.ObjectIDFromHex(req.WorkoutID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format")
		return
	}

	entry, err := h.historyService.UpdateHistory(c.Request.Context(), workoutID, service.UpdateHistoryInput{
		Duration: req.Duration,
		Rating:   req.Rating,
		Notes:    req.Notes,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MapHistoryToResponse(entry))
}
