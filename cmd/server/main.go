package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"drillhub/workout-app/internal/api"
	"drillhub/workout-app/internal/config"
	repoMongo "drillhub/workout-app/internal/repository/mongo"
	"drillhub/workout-app/internal/service"
	"drillhub/workout-app/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.WithError(err).Fatal("could not load config")
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	}
	logger.Info("configuration loaded")

	// --- Database Connection ---
	dbClient, err := repoMongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.WithError(err).Fatal("could not connect to MongoDB")
	}
	defer func() {
		logger.Info("disconnecting MongoDB")
		if err := repoMongo.DisconnectDB(dbClient); err != nil {
			logger.WithError(err).Error("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info("database connection established")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		repoMongo.EnsureDrillIndexes(ctx, appDB.Collection("drills"))
		repoMongo.EnsureTemplateIndexes(ctx, appDB.Collection("workout_templates"))
		repoMongo.EnsureHistoryIndexes(ctx, appDB.Collection("workout_history"))
		logger.Info("index creation process completed")
	}()

	// --- Initialize Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.BucketName != "" {
		fileStorage, err = storage.NewS3Storage(cfg.S3)
		if err != nil {
			logger.WithError(err).Fatal("failed to initialize S3 storage")
		}
		logger.WithField("bucket", cfg.S3.BucketName).Info("object storage initialized")
	} else {
		logger.Info("object storage not configured, drill videos disabled")
	}

	// --- Initialize Repositories ---
	drillRepo := repoMongo.NewMongoDrillRepository(appDB)
	templateRepo := repoMongo.NewMongoTemplateRepository(appDB)
	historyRepo := repoMongo.NewMongoHistoryRepository(appDB)

	// --- Initialize Services ---
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	drillService := service.NewDrillService(drillRepo, fileStorage)
	templateService := service.NewTemplateService(templateRepo)
	historyService := service.NewHistoryService(historyRepo, drillRepo)
	generatorService := service.NewGeneratorService(drillRepo, templateRepo, historyRepo, rng)

	// --- Initialize Gin Engine ---
	router := gin.New()
	router.Use(gin.Recovery())

	logger.Info("setting up API routes")
	api.SetupRoutes(router, logger, drillService, generatorService, templateService, historyService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.WithField("address", cfg.Server.Address).Info("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("listen and serve error")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.WithError(err).Fatal("server forced to shutdown")
	}

	logger.Info("server exiting")
}
