package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/orgname/cache"
	"github.com/use-agent/orgname/models"
	"github.com/use-agent/orgname/resolver"
)

// Extract returns a handler for POST /api/v1/extract.
//
// The handler runs the full pipeline synchronously for one URL. Outcomes
// with status not_found, unreachable, or error are still Success: the
// pipeline completed and the outcome carries the diagnostics.
func Extract(r *resolver.Resolver, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ExtractRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ExtractResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		req.Defaults()

		start := time.Now()
		url := resolver.NormalizeURL(req.URL)
		key := cache.Key(url)

		if cached, hit := cc.Get(key, req.MaxCacheAge); hit {
			c.JSON(http.StatusOK, models.ExtractResponse{
				Success:     true,
				Outcome:     cached,
				CacheStatus: "hit",
				Timing:      models.TimingInfo{TotalMs: time.Since(start).Milliseconds()},
			})
			return
		}

		ctx := c.Request.Context()
		if req.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, time.Duration(req.Timeout)*time.Second)
			defer cancel()
		}

		fetchStart := time.Now()
		outcome := r.Resolve(ctx, url)
		fetchMs := time.Since(fetchStart).Milliseconds()

		cc.Set(key, &outcome)

		resp := models.ExtractResponse{
			Success: true,
			Outcome: &outcome,
			Timing: models.TimingInfo{
				TotalMs: time.Since(start).Milliseconds(),
				FetchMs: fetchMs,
			},
		}
		if req.MaxCacheAge > 0 {
			resp.CacheStatus = "miss"
		}
		c.JSON(http.StatusOK, resp)
	}
}
