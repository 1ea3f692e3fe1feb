package middleware

import (
	"context"  // Per request deadlines
	"net/http" // Body size limits
	"time"     // Timeouts

	"github.com/gin-gonic/gin" // Gin web framework
)

// Timeout bounds every request with a deadline that reaches the database driver
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next() // Timeout disabled
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx) // Stores read the deadline from here
		c.Next()
	}
}

// BodyLimit caps the request body; reads past n bytes fail
func BodyLimit(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
