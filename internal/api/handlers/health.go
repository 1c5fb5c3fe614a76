// Package handlers provides HTTP handlers for the API.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/unifiedui/docsession/internal/api/dto"
	"github.com/unifiedui/docsession/internal/core/cache"
)

// Pinger is anything whose connection can be checked.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	docDB Pinger
	cache cache.Client
}

// NewHealthHandler creates a new HealthHandler. cacheClient may be nil when
// caching is disabled.
func NewHealthHandler(docDB Pinger, cacheClient cache.Client) *HealthHandler {
	return &HealthHandler{
		docDB: docDB,
		cache: cacheClient,
	}
}

// check pings every dependency concurrently and returns per-component errors.
func (h *HealthHandler) check(ctx context.Context) map[string]error {
	var docDBErr, cacheErr error

	var g errgroup.Group
	g.Go(func() error {
		docDBErr = h.docDB.Ping(ctx)
		return nil
	})
	if h.cache != nil {
		g.Go(func() error {
			cacheErr = h.cache.Ping(ctx)
			return nil
		})
	}
	_ = g.Wait()

	results := map[string]error{"docdb": docDBErr}
	if h.cache != nil {
		results["cache"] = cacheErr
	}
	return results
}

// Health handles the /health endpoint.
// @Summary Health check
// @Description Returns the overall health status and component statuses
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service healthy"
// @Failure 503 {object} dto.HealthResponse "Service unhealthy"
// @Router /api/v1/docsession/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	components := make(map[string]string)
	healthy := true

	for name, err := range h.check(c.Request.Context()) {
		if err != nil {
			components[name] = "unhealthy"
			healthy = false
		} else {
			components[name] = "healthy"
		}
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, dto.HealthResponse{
		Status:     status,
		Components: components,
	})
}

// Ready handles the /ready endpoint.
// @Summary Readiness check
// @Description Returns 200 if the service is ready to accept traffic
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Service ready"
// @Failure 503 {object} map[string]string "Service not ready"
// @Router /api/v1/docsession/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	for name, err := range h.check(c.Request.Context()) {
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": name + " unavailable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// Live handles the /live endpoint.
// @Summary Liveness check
// @Description Returns 200 if the service is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Service alive"
// @Router /api/v1/docsession/live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
