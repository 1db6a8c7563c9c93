package api

import (
	"net/http"

	"drillhub/workout-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// WorkoutHandler holds the workout generator service dependency.
type WorkoutHandler struct {
	generatorService service.GeneratorService
	logger           *logrus.Logger
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(generatorService service.GeneratorService, logger *logrus.Logger) *WorkoutHandler {
	return &WorkoutHandler{generatorService: generatorService, logger: logger}
}

// --- DTOs ---

// GenerateWorkoutRequest defines the JSON body of a full generation request.
type GenerateWorkoutRequest struct {
	Type               string   `json:"type"`
	Count              int      `json:"count"`
	Difficulty         string   `json:"difficulty"`
	TemplateID         string   `json:"templateId"`
	WorkoutStyle       string   `json:"workoutStyle"`
	PreferredEquipment []string `json:"preferredEquipment"`
	Intensity          string   `json:"intensity"`
	RestBetweenSets    int      `json:"restBetweenSets"`
	SetsPerExercise    int      `json:"setsPerExercise"`
	TimePerExercise    int      `json:"timePerExercise"`
}

// GenerateSimpleRequest defines the JSON body of the simple sampling path.
type GenerateSimpleRequest struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// --- Handler Methods ---

// GenerateWorkout handles POST /api/workouts — the full generation pipeline
// with styles, templates and history recording.
func (h *WorkoutHandler) GenerateWorkout(c *gin.Context) {
	var req GenerateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	workout, err := h.generatorService.Generate(c.Request.Context(), service.GenerateInput{
		Type:               req.Type,
		Count:              req.Count,
		Difficulty:         req.Difficulty,
		TemplateID:         req.TemplateID,
		WorkoutStyle:       req.WorkoutStyle,
		PreferredEquipment: req.PreferredEquipment,
		Intensity:          req.Intensity,
		RestBetweenSets:    req.RestBetweenSets,
		SetsPerExercise:    req.SetsPerExercise,
		TimePerExercise:    req.TimePerExercise,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// GenerateSimple handles POST /api/workouts/generate — a pure random sample
// of drills by category, no styling or history.
func (h *WorkoutHandler) GenerateSimple(c *gin.Context) {
	var req GenerateSimpleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	drills, err := h.generatorService.GenerateSimple(c.Request.Context(), req.Category, req.Count)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MapDrillsToResponse(drills))
}

// GetOverview handles GET /api/workouts — per-type/difficulty drill counts,
// plus popular public templates when includeTemplates=true.
func (h *WorkoutHandler) GetOverview(c *gin.Context) {
	includeTemplates := c.Query("includeTemplates") == "true"

	overview, err := h.generatorService.Overview(c.Request.Context(), includeTemplates)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	response := gin.H{
		"workoutTypes": overview.WorkoutTypes,
		"total":        overview.Total,
	}
	if includeTemplates {
		response["popularTemplates"] = MapTemplatesToResponse(overview.PopularTemplates)
	}
	c.JSON(http.StatusOK, response)
}
