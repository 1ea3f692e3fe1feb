package middleware

import (
	"time" // Request latency

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // Request IDs
	"github.com/sirupsen/logrus" // Logging library
)

const (
	RequestIDKey    = "request_id"   // Gin context key for the request ID
	RequestIDHeader = "X-Request-ID" // Header echoing the request ID
)

// RequestLogger tags each request with an ID and logs one line when it finishes
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(RequestIDHeader) // Reuse caller supplied ID
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		fields := logrus.Fields{
			"request_id": requestID,                        // Correlation ID
			"method":     c.Request.Method,                 // HTTP method
			"path":       c.Request.URL.Path,               // Request path
			"status":     status,                           // Response status
			"latency_ms": time.Since(start).Milliseconds(), // Duration
			"client_ip":  c.ClientIP(),                     // Remote address
		}
		if who, ok := CurrentIdentity(c); ok {
			fields["user_id"] = who.UserID // Authenticated caller
		}
		entry := logrus.WithFields(fields)
		switch {
		case status >= 500:
			entry.Error("HTTP request")
		case status >= 400:
			entry.Warn("HTTP request")
		default:
			entry.Info("HTTP request")
		}
	}
}
