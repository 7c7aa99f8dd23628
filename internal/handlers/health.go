package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type healthCheck struct {
	name  string
	check func(ctx context.Context) error
}

// AddHealthCheck registers a dependency probed by /health
func (h *Handlers) AddHealthCheck(name string, check func(ctx context.Context) error) {
	h.checks = append(h.checks, healthCheck{name: name, check: check})
}

// Health reports the status of the service and each registered dependency.
// Any failing dependency turns the response into a 503.
// GET /health
func (h *Handlers) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(h.checks))
	for _, hc := range h.checks {
		if err := hc.check(ctx); err != nil {
			checks[hc.name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[hc.name] = "ok"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	c.JSON(status, gin.H{
		"status":    overall,
		"timestamp": time.Now().UTC(),
		"service":   "travelbond",
		"checks":    checks,
	})
}
