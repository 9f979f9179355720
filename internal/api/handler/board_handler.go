package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cuongbtq/jobboard/internal/board/domain"
	"github.com/gin-gonic/gin"
)

// BoardHandler serves board-wide reads and the health probe
type BoardHandler struct {
	base
	health      HealthChecker
	serviceName string
}

// NewBoardHandler creates a new BoardHandler instance
func NewBoardHandler(deps *Dependencies) *BoardHandler {
	return &BoardHandler{
		base:        newBase(deps),
		health:      deps.Health,
		serviceName: deps.ServiceName,
	}
}

// Stats handles GET /api/stats
func (h *BoardHandler) Stats(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, "compute stats", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Lookups handles GET /api/lookups
func (h *BoardHandler) Lookups(c *gin.Context) {
	c.JSON(http.StatusOK, domain.AllLookups())
}

// Health handles GET /health
func (h *BoardHandler) Health(c *gin.Context) {
	if h.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.health.HealthCheck(ctx); err != nil {
			h.logger.Warn("Health check failed", slog.Any("error", err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": h.serviceName,
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.serviceName,
	})
}
