package api

import (
	"errors"
	"net/http"

	"drillhub/workout-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondServiceError maps service-layer errors onto the HTTP error
// taxonomy: validation → 400 with per-field messages, not-found → 404,
// duplicate name → 400, everything else → 500 with the detail logged only.
func respondServiceError(c *gin.Context, logger *logrus.Logger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		abortWithFieldErrors(c, verr.Fields)
	case errors.Is(err, service.ErrDrillNotFound):
		abortWithError(c, http.StatusNotFound, "Drill not found")
	case errors.Is(err, service.ErrTemplateNotFound):
		abortWithError(c, http.StatusNotFound, "Template not found")
	case errors.Is(err, service.ErrWorkoutNotFound):
		abortWithError(c, http.StatusNotFound, "Workout not found")
	case errors.Is(err, service.ErrNoMatchingDrills):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoDrillVideo):
		abortWithError(c, http.StatusNotFound, "Drill has no video attached")
	case errors.Is(err, service.ErrTemplateNameTaken):
		abortWithFieldErrors(c, map[string][]string{"name": {"Template name must be unique"}})
	case errors.Is(err, service.ErrRatingOutOfRange),
		errors.Is(err, service.ErrEmptyUpdate):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		logger.WithFields(logrus.Fields{
			"requestId": c.GetString(ContextRequestIDKey),
			"path":      c.Request.URL.Path,
		}).WithError(err).Error("request failed")
		abortWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
