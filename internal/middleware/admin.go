package middleware

import (
	"cat_api/internal/apperror" // Classified errors
	"cat_api/internal/domain"   // Stored user and identity
	"context"                   // Lookup context

	"github.com/gin-gonic/gin" // Gin web framework
)

// UserLookup loads the stored account behind a token
type UserLookup interface {
	GetUser(ctx context.Context, userID int) (domain.User, error)
}

// AdminOnlyMiddleware rejects callers whose stored account is not an admin.
// The role is read from the database on every request, so a demotion takes
// effect before the caller's token expires. It only guards the request;
// queries behind it are not scoped by role.
func AdminOnlyMiddleware(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		who, exists := CurrentIdentity(c) // Get identity from context
		// Anonymous requests never reach here on protected routes
		if !exists {
			_ = c.Error(apperror.Unauthorized("Unauthorized"))
			c.Abort()
			return
		}
		user, err := users.GetUser(c.Request.Context(), who.UserID)
		if apperror.IsKind(err, apperror.KindNotFound) {
			_ = c.Error(apperror.Unauthorized("Unauthorized")) // Account deleted after the token was issued
			c.Abort()
			return
		}
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		// Check if the stored role is admin
		if user.Role != domain.RoleAdmin {
			_ = c.Error(apperror.Forbidden("Admin only"))
			c.Abort()
			return
		}
		c.Set(IdentityKey, domain.IdentityOf(user)) // Handlers see the current account
		c.Next()
	}
}
