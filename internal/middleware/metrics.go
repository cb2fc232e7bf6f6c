package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edu-sched/bwm-ilp-api/pkg/metrics"
)

// Metrics returns middleware that captures request metrics using the provided registry.
func Metrics(reg *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if reg == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		reg.ObserveHTTPRequest(c.Request.Method, path, status, duration)
	}
}
