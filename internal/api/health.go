package api

import (
	"context"  // Check deadlines
	"net/http" // HTTP status codes
	"sort"     // Stable check order
	"time"     // Check timeout

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

const healthTimeout = 3 * time.Second // Upper bound for all checks together

// HealthCheck verifies one dependency
type HealthCheck func(ctx context.Context) error

// Response struct for the health check
type HealthResponse struct {
	Status string            `json:"status"`           // ok or degraded
	Checks map[string]string `json:"checks,omitempty"` // Per dependency result
}

// HealthHandler reports 200 when every dependency answers, 503 otherwise
func HealthHandler(checks map[string]HealthCheck) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		resp := HealthResponse{Status: "ok", Checks: make(map[string]string, len(names))}
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				logrus.WithFields(logrus.Fields{
					"dependency": name,        // Failing dependency
					"error":      err.Error(), // Error message
				}).Warn("Health check failed")
				resp.Checks[name] = "error" // Details stay in the log
				resp.Status = "degraded"
				continue
			}
			resp.Checks[name] = "ok"
		}

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, resp)
	}
}
