package middleware

import (
	"cat_api/internal/apperror" // Classified errors
	"cat_api/internal/domain"   // Message body
	"net/http"                  // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// ErrorResponder is the single place errors become HTTP responses. Handlers
// and middlewares push failures with c.Error and return without writing.
func ErrorResponder() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 {
			return
		}
		appErr := apperror.From(c.Errors.Last().Err) // Classify the final failure
		if appErr.Status >= http.StatusInternalServerError {
			logrus.WithFields(logrus.Fields{
				"request_id": c.GetString(RequestIDKey), // Correlation ID
				"method":     c.Request.Method,          // HTTP method
				"path":       c.FullPath(),              // Route pattern
				"error":      appErr.Error(),            // Cause, never sent to clients
			}).Error("Unclassified failure")
		}
		if c.Writer.Written() {
			return // A response already went out
		}
		c.AbortWithStatusJSON(appErr.Status, domain.Message{Message: appErr.Message})
	}
}
