package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/pricescout/models"
)

// ProtocolVersion is the static capability marker reported by /status.
const ProtocolVersion = "1.0"

// CompetitorLister exposes the configured competitor keys.
type CompetitorLister interface {
	Keys() []string
}

// Status returns a handler for GET /api/v1/status. Callers use it to
// discover the supported competitors without triggering a scrape.
func Status(competitors CompetitorLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.StatusResponse{
			OK:          true,
			Version:     ProtocolVersion,
			Competitors: competitors.Keys(),
		})
	}
}
