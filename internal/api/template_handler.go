package api

import (
	"net/http"
	"strconv"
	"time"

	"drillhub/workout-app/internal/domain"
	"drillhub/workout-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TemplateHandler holds the workout template service dependency.
type TemplateHandler struct {
	templateService service.TemplateService
	logger          *logrus.Logger
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService service.TemplateService, logger *logrus.Logger) *TemplateHandler {
	return &TemplateHandler{templateService: templateService, logger: logger}
}

// --- DTOs ---

// TemplateFiltersRequest mirrors domain.TemplateFilters on the wire.
type TemplateFiltersRequest struct {
	Difficulty []string `json:"difficulty"`
	Equipment  []string `json:"equipment"`
	Intensity  string   `json:"intensity"`
}

// CreateTemplateRequest defines the JSON body for creating a template.
type CreateTemplateRequest struct {
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Type           string                 `json:"type"`
	Difficulty     string                 `json:"difficulty"`
	DrillCount     int                    `json:"drillCount"`
	TargetDuration int                    `json:"targetDuration"`
	Filters        TemplateFiltersRequest `json:"filters"`
	IsPublic       *bool                  `json:"isPublic"`
}

// TemplateResponse is the DTO for returning template details.
type TemplateResponse struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Type           string                 `json:"type"`
	Difficulty     string                 `json:"difficulty"`
	DrillCount     int                    `json:"drillCount"`
	TargetDuration int                    `json:"targetDuration"`
	Filters        domain.TemplateFilters `json:"filters"`
	IsPublic       bool                   `json:"isPublic"`
	UsageCount     int64                  `json:"usageCount"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

// PaginationResponse is the shared pagination envelope for list endpoints.
type PaginationResponse struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

func newPagination(total int64, page, limit int) PaginationResponse {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	pages := (total + int64(limit) - 1) / int64(limit)
	return PaginationResponse{Total: total, Page: page, Limit: limit, Pages: pages}
}

// MapTemplateToResponse converts a domain.WorkoutTemplate to its DTO.
func MapTemplateToResponse(template *domain.WorkoutTemplate) TemplateResponse {
	if template == nil {
		return TemplateResponse{}
	}
	return TemplateResponse{
		ID:             template.ID.Hex(),
		Name:           template.Name,
		Description:    template.Description,
		Type:           template.Type,
		Difficulty:     template.Difficulty,
		DrillCount:     template.DrillCount,
		TargetDuration: template.TargetDuration,
		Filters:        template.Filters,
		IsPublic:       template.IsPublic,
		UsageCount:     template.UsageCount,
		CreatedAt:      template.CreatedAt,
		UpdatedAt:      template.UpdatedAt,
	}
}

// MapTemplatesToResponse converts a slice of templates to response DTOs.
func MapTemplatesToResponse(templates []domain.WorkoutTemplate) []TemplateResponse {
	responses := make([]TemplateResponse, len(templates))
	for i, template := range templates {
		responses[i] = MapTemplateToResponse(&template)
	}
	return responses
}

// --- Handler Methods ---

// ListTemplates handles GET /api/workouts/templates — public templates with
// filtering, sorting and pagination.
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	templates, total, err := h.templateService.ListTemplates(c.Request.Context(), service.ListTemplatesInput{
		Type:       c.Query("type"),
		Difficulty: c.Query("difficulty"),
		SortBy:     c.DefaultQuery("sortBy", "usageCount"),
		Order:      c.DefaultQuery("order", "desc"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"templates":  MapTemplatesToResponse(templates),
		"pagination": newPagination(total, page, limit),
	})
}

// CreateTemplate handles POST /api/workouts/templates.
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	template, err := h.templateService.CreateTemplate(c.Request.Context(), service.CreateTemplateInput{
		Name:           req.Name,
		Description:    req.Description,
		Type:           req.Type,
		Difficulty:     req.Difficulty,
		DrillCount:     req.DrillCount,
		TargetDuration: req.TargetDuration,
		Filters: domain.TemplateFilters{
			Difficulty: req.Filters.Difficulty,
			Equipment:  req.Filters.Equipment,
			Intensity:  req.Filters.Intensity,
		},
		IsPublic: req.IsPublic,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, MapTemplateToResponse(template))
}
