package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/pricescout/api/handler"
	"github.com/use-agent/pricescout/api/middleware"
	"github.com/use-agent/pricescout/cache"
	"github.com/use-agent/pricescout/competitor"
	"github.com/use-agent/pricescout/config"
	"github.com/use-agent/pricescout/resolver"
	"github.com/use-agent/pricescout/scraper"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	Resolve: Auth (if enabled) → RateLimit
//
// Status and health stay outside auth so monitoring probes and capability
// discovery always work.
func NewRouter(rs *resolver.Resolver, sc *scraper.Scraper, reg *competitor.Registry, cfg *config.Config, cc *cache.Cache, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	v1.GET("/status", handler.Status(reg))
	v1.GET("/health", handler.Health(sc, startTime))

	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	protected.POST("/resolve", handler.Resolve(rs, cc, cfg.Scraper.ResolveTimeout))

	return r
}
