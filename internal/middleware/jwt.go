package middleware

import (
	"cat_api/internal/apperror" // Classified errors
	"cat_api/internal/domain"   // Identity type
	"cat_api/internal/utils"    // JWT utility functions
	"strings"                   // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
)

// IdentityKey is the gin context key holding the authenticated domain.Identity
const IdentityKey = "identity"

// identityFromHeader extracts and validates the bearer token, if any
func identityFromHeader(c *gin.Context, secret string) (domain.Identity, bool, error) {
	authHeader := c.GetHeader("Authorization") // Get Authorization header
	if authHeader == "" {
		return domain.Identity{}, false, nil // Anonymous request
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return domain.Identity{}, true, apperror.Unauthorized("Missing or invalid Authorization header")
	}
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
	claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
	if err != nil {
		return domain.Identity{}, true, apperror.Unauthorized("Invalid or expired token")
	}
	return claims.Identity, true, nil
}

// JWTAuthMiddleware validates JWT tokens and stores the caller identity
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		who, present, err := identityFromHeader(c, secret)
		if !present {
			err = apperror.Unauthorized("Missing or invalid Authorization header")
		}
		if err != nil {
			_ = c.Error(err) // Reported by ErrorResponder
			c.Abort()
			return
		}
		c.Set(IdentityKey, who) // Store identity in context
		c.Next()                // Proceed to the next handler
	}
}

// OptionalJWTMiddleware stores the caller identity when a valid token is sent and
// lets the request through anonymously otherwise
func OptionalJWTMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if who, _, err := identityFromHeader(c, secret); err == nil && who.UserID > 0 {
			c.Set(IdentityKey, who) // Store identity in context
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity set by one of the JWT middlewares
func CurrentIdentity(c *gin.Context) (domain.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return domain.Identity{}, false
	}
	who, ok := v.(domain.Identity)
	return who, ok
}
