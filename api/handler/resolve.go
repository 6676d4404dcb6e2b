package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/pricescout/cache"
	"github.com/use-agent/pricescout/models"
)

// ProductResolver is the pipeline entry point the transport invokes.
// *resolver.Resolver is the production implementation.
type ProductResolver interface {
	Resolve(ctx context.Context, product models.Product, competitorKey string) *models.Resolution
}

// Resolve returns a handler for POST /api/v1/resolve.
//
// Structural input failures (missing fields) are the only 4xx path; every
// pipeline outcome, found or not, is a 200 with a tagged Resolution body.
func Resolve(rs ProductResolver, cc *cache.Cache, resolveTimeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ResolveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		var cacheKey string
		if cc != nil {
			cacheKey = cache.Key(req.Competitor, req.Product.Name)
			if cached, hit := cc.Get(cacheKey); hit {
				cached.CacheStatus = "hit"
				c.JSON(http.StatusOK, cached)
				return
			}
		}

		// The resolution deliberately does not inherit the request
		// context: once started it runs to completion or to its own
		// timeouts, even if the caller disconnects.
		ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
		defer cancel()

		result := rs.Resolve(ctx, req.Product, req.Competitor)

		// Only found resolutions are stored, but every cache-enabled
		// response is tagged so empty always means caching is disabled.
		if cc != nil {
			if result.Found {
				cc.Set(cacheKey, *result)
			}
			result.CacheStatus = "miss"
		}

		c.JSON(http.StatusOK, result)
	}
}
