package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/orgname/api/handler"
	"github.com/use-agent/orgname/api/middleware"
	"github.com/use-agent/orgname/cache"
	"github.com/use-agent/orgname/config"
	"github.com/use-agent/orgname/resolver"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(r *resolver.Resolver, cfg *config.Config, cc *cache.Cache, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	v1 := router.Group("/api/v1")

	// Health stays outside auth.
	v1.GET("/health", handler.Health(cfg.Batch.Concurrency, startTime))

	// Protected group: auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Single-URL extraction.
	protected.POST("/extract", handler.Extract(r, cc))

	// Batch extraction.
	protected.POST("/batch/extract", handler.PostBatch(r, cfg.Batch.Concurrency))
	protected.GET("/batch/:id", handler.GetBatch())

	return router
}
