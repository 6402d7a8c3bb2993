package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Prakhar9001/Fake-news-detection-system/internal/adapter/http/router"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/adapter/inference"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/adapter/repository/memory"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/domain/repository"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/infrastructure/cache"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/infrastructure/config"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/infrastructure/logger"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/infrastructure/metrics"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/infrastructure/storage"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/usecase"
)

const modelLoadTimeout = 2 * time.Minute

//	@title			NewsGuard API
//	@version		1.0
//	@description	Classifies news text as REAL or FAKE.
//	@BasePath		/api/v1
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Load the model before anything listens
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), modelLoadTimeout)
	model, err := inference.Load(loadCtx, storage.NewArtifactStore(cfg.Model), cfg.Model.Path)
	cancelLoad()
	if err != nil {
		log.Error("Failed to load model", zap.String("path", cfg.Model.Path), zap.Error(err))
		return fmt.Errorf("failed to load model from %s: %w", cfg.Model.Path, err)
	}
	info := model.Info()
	log.Info("Model loaded",
		zap.String("version", info.Version),
		zap.String("source", info.Source),
		zap.Int("features", info.Features),
		zap.Int("estimators", len(info.Estimators)),
	)

	// Initialize Redis (optional, continue without it)
	var (
		redisClient     *redis.Client
		predictionCache repository.PredictionCache
	)
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("Failed to connect to Redis, continuing without cache", zap.Error(err))
			redisClient = nil
		} else {
			log.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr()))
			predictionCache = cache.NewPredictionCache(redisClient, cfg.Redis.TTL)
		}
	}

	// Metrics
	m := metrics.New(prometheus.DefaultRegisterer)
	m.SetModel(info.Version)

	// Usecase
	limits := usecase.Limits{
		MaxTextBytes: cfg.Model.MaxTextBytes,
		MaxBatchSize: cfg.Model.MaxBatchSize,
	}
	classifyUC := usecase.NewClassifyUsecase(
		model,
		memory.NewCheckRepository(cfg.History.Size),
		predictionCache,
		m,
		log,
		limits,
	)

	// Setup router
	r := router.Setup(router.Deps{
		Model:      model,
		ClassifyUC: classifyUC,
		Redis:      redisClient,
		Metrics:    m,
		Gatherer:   prometheus.DefaultGatherer,
		Logger:     log,
		Limits:     limits,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close Redis connection
	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Info("Server exited")
	return nil
}
