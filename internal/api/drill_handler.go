package api

import (
	"net/http"
	"time"

	"drillhub/workout-app/internal/domain"
	"drillhub/workout-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrillHandler holds the drill catalog service dependency.
type DrillHandler struct {
	drillService service.DrillService
	logger       *logrus.Logger
}

// NewDrillHandler creates a new DrillHandler.
func NewDrillHandler(drillService service.DrillService, logger *logrus.Logger) *DrillHandler {
	return &DrillHandler{drillService: drillService, logger: logger}
}

// --- DTOs ---

// CreateDrillRequest defines the expected JSON for uploading a drill.
// Field presence is validated by the service so missing fields come back
// as per-field messages rather than a single binding error.
type CreateDrillRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	Intensity   string `json:"intensity"`
}

// UpdateDrillRequest defines a partial drill patch.
type UpdateDrillRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Difficulty  *string `json:"difficulty"`
	Intensity   *string `json:"intensity"`
}

// DrillResponse is the DTO for returning drill details.
type DrillResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Difficulty  string    `json:"difficulty"`
	Intensity   string    `json:"intensity,omitempty"`
	HasVideo    bool      `json:"hasVideo"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MapDrillToResponse converts a domain.Drill to DrillResponse DTO.
func MapDrillToResponse(drill *domain.Drill) DrillResponse {
	if drill == nil {
		return DrillResponse{}
	}
	return DrillResponse{
		ID:          drill.ID.Hex(),
		Name:        drill.Name,
		Description: drill.Description,
		Category:    drill.Category,
		Difficulty:  drill.Difficulty,
		Intensity:   drill.Intensity,
		HasVideo:    drill.VideoObjectKey != "",
		CreatedAt:   drill.CreatedAt,
		UpdatedAt:   drill.UpdatedAt,
	}
}

// MapDrillsToResponse converts a slice of domain.Drill to response DTOs.
func MapDrillsToResponse(drills []domain.Drill) []DrillResponse {
	responses := make([]DrillResponse, len(drills))
	for i, drill := range drills {
		responses[i] = MapDrillToResponse(&drill)
	}
	return responses
}

// drillIDFromParam parses the :id route parameter, aborting with a 400
// before any storage access when the format is invalid.
func drillIDFromParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid drill ID format")
		return primitive.NilObjectID, false
	}
	return id, true
}

// --- Handler Methods ---

// ListDrills handles GET /api/drills with optional category filter and sorting.
func (h *DrillHandler) ListDrills(c *gin.Context) {
	category := c.Query("category")
	sortBy := c.DefaultQuery("sortBy", "category")
	order := c.DefaultQuery("order", "asc")

	drills, err := h.drillService.ListDrills(c.Request.Context(), category, sortBy, order)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MapDrillsToResponse(drills))
}

// CreateDrill handles POST /api/drills.
func (h *DrillHandler) CreateDrill(c *gin.Context) {
	var req CreateDrillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	drill, err := h.drillService.CreateDrill(c.Request.Context(), service.CreateDrillInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Difficulty:  req.Difficulty,
		Intensity:   req.Intensity,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, MapDrillToResponse(drill))
}

// GetDrill handles GET /api/drills/:id.
func (h *DrillHandler) GetDrill(c *gin.Context) {
	id, ok := drillIDFromParam(c)
	if !ok {
		return
	}

	drill, err := h.drillService.GetDrill(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MapDrillToResponse(drill))
}

// UpdateDrill handles PATCH /api/drills/:id.
func (h *DrillHandler) UpdateDrill(c *gin.Context) {
	id, ok := drillIDFromParam(c)
	if !ok {
		return
	}

	var req UpdateDrillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	drill, err := h.drillService.UpdateDrill(c.Request.Context(), id, service.UpdateDrillInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Difficulty:  req.Difficulty,
		Intensity:   req.Intensity,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MapDrillToResponse(drill))
}

// DeleteDrill handles DELETE /api/drills/:id, returning the deleted record.
func (h *DrillHandler) DeleteDrill(c *gin.Context) {
	id, ok := drillIDFromParam(c)
	if !ok {
		return
	}

	drill, err := h.drillService.DeleteDrill(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Drill deleted successfully",
		"id":           id.Hex(),
		"deletedDrill": MapDrillToResponse(drill),
	})
}

// VideoUploadRequest carries the content type of the demo video to upload.
type VideoUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// RequestVideoUpload handles POST /api/drills/:id/video, returning a
// presigned PUT URL.
func (h *DrillHandler) RequestVideoUpload(c *gin.Context) {
	id, ok := drillIDFromParam(c)
	if !ok {
		return
	}

	var req VideoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "contentType is required")
		return
	}

	uploadURL, err := h.drillService.RequestVideoUpload(c.Request.Context(), id, req.ContentType)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploadUrl": uploadURL})
}

// GetVideoDownloadURL handles GET /api/drills/:id/video, returning a
// presigned GET URL for the attached demo video.
func (h *DrillHandler) GetVideoDownloadURL(c *gin.Context) {
	id, ok := drillIDFromParam(c)
	if !ok {
		return
	}

	downloadURL, err := h.drillService.GetVideoDownloadURL(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": downloadURL})
}
