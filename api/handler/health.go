package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/pricescout/models"
	"github.com/use-agent/pricescout/scraper"
)

// Health returns a handler for GET /api/v1/health.
//
// The browser session is lazy, so "launched: false" before the first
// resolution is healthy, not a fault.
func Health(sc *scraper.Scraper, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:  "healthy",
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Browser: sc.Stats(),
			Version: "0.1.0",
		})
	}
}
