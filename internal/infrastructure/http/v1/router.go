// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"offerte/internal/infrastructure/http/v1/handlers"
	"offerte/internal/infrastructure/http/v1/middleware"
	"offerte/internal/infrastructure/storage/postgres"
	"offerte/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection (for health checks and drafts)
	Pool *pgxpool.Pool

	// DraftRepo persists wizard drafts; nil disables the draft routes
	DraftRepo *postgres.DraftRepo

	// Logger for request logging
	Logger *logger.Logger

	// Version reported by the info endpoint
	Version string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	api := router.Group("/api/v1")
	{
		baseHandler := handlers.NewBaseHandler()

		offerHandler := handlers.NewOfferHandler(baseHandler)
		offerHandler.RegisterRoutes(api.Group("/offers"))

		if cfg.DraftRepo != nil {
			draftHandler := handlers.NewDraftHandler(baseHandler, cfg.DraftRepo)
			draftHandler.RegisterRoutes(api.Group("/drafts"))
		}
	}

	return router
}
