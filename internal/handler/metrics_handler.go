package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edu-sched/bwm-ilp-api/pkg/metrics"
)

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	registry *metrics.Registry
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(registry *metrics.Registry) *MetricsHandler {
	return &MetricsHandler{registry: registry}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.registry == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.registry.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for readiness/liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
