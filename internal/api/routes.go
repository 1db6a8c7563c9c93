package api

import (
	"net/http"

	"drillhub/workout-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// SetupRoutes wires all handlers onto the router.
func SetupRoutes(
	router *gin.Engine,
	logger *logrus.Logger,
	drillService service.DrillService,
	generatorService service.GeneratorService,
	templateService service.TemplateService,
	historyService service.HistoryService,
) {
	drillHandler := NewDrillHandler(drillService, logger)
	workoutHandler := NewWorkoutHandler(generatorService, logger)
	templateHandler := NewTemplateHandler(templateService, logger)
	historyHandler := NewHistoryHandler(historyService, logger)

	router.Use(RequestID(), RequestLogger(logger), Metrics())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")
	{
		drillGroup := apiGroup.Group("/drills")
		{
			drillGroup.GET("", drillHandler.ListDrills)
			drillGroup.POST("", drillHandler.CreateDrill)
			drillGroup.GET("/:id", drillHandler.GetDrill)
			drillGroup.PATCH("/:id", drillHandler.UpdateDrill)
			drillGroup.DELETE("/:id", drillHandler.DeleteDrill)
			drillGroup.POST("/:id/video", drillHandler.RequestVideoUpload)
			drillGroup.GET("/:id/video", drillHandler.GetVideoDownloadURL)
		}

		workoutGroup := apiGroup.Group("/workouts")
		{
			workoutGroup.GET("", workoutHandler.GetOverview)
			workoutGroup.POST("", workoutHandler.GenerateWorkout)
			workoutGroup.POST("/generate", workoutHandler.GenerateSimple)

			workoutGroup.GET("/templates", templateHandler.ListTemplates)
			workoutGroup.POST("/templates", templateHandler.CreateTemplate)

			workoutGroup.GET("/history", historyHandler.ListHistory)
			workoutGroup.PATCH("/history", historyHandler.UpdateHistory)
		}
	}
}
