package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/o6b7/travelbond/internal/metrics"
)

// MetricsMiddleware collects HTTP metrics for Prometheus.
// Requests are labelled by route template so /events/:id stays one series.
func MetricsMiddleware() gin.HandlerFunc {
	m := metrics.Get()

	return func(c *gin.Context) {
		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.HTTPActiveConnections.WithLabelValues(method, path).Inc()
		defer m.HTTPActiveConnections.WithLabelValues(method, path).Dec()

		startTime := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(startTime).Seconds())

		if size := c.Writer.Size(); size > 0 {
			m.HTTPResponseSize.WithLabelValues(method, path, status).Observe(float64(size))
		}
		if c.Writer.Status() >= 500 {
			metrics.RecordError("http_5xx", path)
		}
	}
}
