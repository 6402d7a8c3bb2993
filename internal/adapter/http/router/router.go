package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/Prakhar9001/Fake-news-detection-system/docs"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/adapter/http/handler"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/adapter/http/middleware"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/domain/service"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/infrastructure/metrics"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/usecase"
)

// Deps are the collaborators the HTTP layer is built from. Redis, Metrics and
// Gatherer are optional.
type Deps struct {
	Model      service.Model
	ClassifyUC usecase.ClassifyUsecase
	Redis      *redis.Client
	Metrics    *metrics.Metrics
	Gatherer   prometheus.Gatherer
	Logger     *zap.Logger
	Limits     usecase.Limits
}

// Setup creates and configures the Gin router
func Setup(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics(d.Metrics))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handler.NewHealthHandler(d.Model, d.Redis)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	if d.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	} else {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// API docs
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	classifyHandler := handler.NewClassifyHandler(d.ClassifyUC, d.Limits)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		classify := v1.Group("/classify")
		{
			classify.POST("", classifyHandler.Classify)
			classify.POST("/batch", classifyHandler.ClassifyBatch)
		}

		checks := v1.Group("/checks")
		{
			checks.GET("", classifyHandler.ListChecks)
			checks.GET("/:id", classifyHandler.GetCheck)
		}

		v1.GET("/model", classifyHandler.GetModel)
	}

	return router
}
