package middleware

import (
	"cat_api/internal/apperror" // Unclassified message
	"cat_api/internal/domain"   // Message body
	"fmt"                       // Panic value formatting
	"io"                        // Discarded default output
	"net/http"                  // HTTP status codes
	"runtime/debug"             // Stack traces

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Recovery turns a panic into the same {message} 500 every other unclassified failure gets
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString(RequestIDKey), // Correlation ID
			"method":     c.Request.Method,          // HTTP method
			"path":       c.FullPath(),              // Route pattern
			"panic":      fmt.Sprint(recovered),     // Recovered value
			"stack":      string(debug.Stack()),     // Where it happened
		}).Error("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, domain.Message{Message: apperror.UnclassifiedMessage})
	})
}
