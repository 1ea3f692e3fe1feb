package api

import (
	"cat_api/internal/apperror"   // Classified errors
	"cat_api/internal/domain"     // Domain models
	"cat_api/internal/utils"      // JWT and password helpers
	"cat_api/internal/validation" // Binding error translation
	"context"                     // Request scoped deadlines
	"net/http"                    // HTTP status codes
	"strings"                     // Input normalization
	"time"                        // Token lifetime

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// LoginThrottle counts failed logins per email
type LoginThrottle interface {
	Blocked(ctx context.Context, email string) (bool, error)
	Fail(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,trimmed_email"` // Login email, case and padding ignored
	Password string `json:"password" binding:"required"`            // Plain password
}

// Response struct for a successful login
type LoginResponse struct {
	Message string          `json:"message"` // Always "Login successful"
	Token   string          `json:"token"`   // Signed JWT
	User    domain.Identity `json:"user"`    // Logged in user
}

// AuthConfig carries the token settings for LoginHandler
type AuthConfig struct {
	Secret string        // HMAC signing key
	TTL    time.Duration // Token lifetime
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(users UserModel, throttle LoginThrottle, auth AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(validation.Translate(err))
			return
		}
		ctx := c.Request.Context()
		email := strings.ToLower(strings.TrimSpace(req.Email))

		// Refuse early when this email failed too often
		blocked, err := throttle.Blocked(ctx, email)
		if err != nil {
			logLimiterError("blocked", email, err) // Fail open while Redis is down
		}
		if blocked {
			_ = c.Error(apperror.TooManyRequests("Too many login attempts"))
			return
		}

		user, err := users.GetUserLogin(ctx, email)
		if err != nil {
			if apperror.IsKind(err, apperror.KindNotFound) {
				recordFailure(ctx, throttle, email)
			}
			_ = c.Error(err)
			return
		}
		// Compare provided password with stored hash
		if !utils.CheckPassword(user.PasswordHash, req.Password) {
			recordFailure(ctx, throttle, email)
			_ = c.Error(apperror.Forbidden("Incorrect username/password"))
			return
		}

		who := domain.IdentityOf(user)
		token, err := utils.GenerateJWT(who, auth.Secret, auth.TTL)
		if err != nil {
			_ = c.Error(apperror.Internal(err))
			return
		}
		if err := throttle.Reset(ctx, email); err != nil {
			logLimiterError("reset", email, err)
		}
		c.JSON(http.StatusOK, LoginResponse{Message: "Login successful", Token: token, User: who})
	}
}

func recordFailure(ctx context.Context, throttle LoginThrottle, email string) {
	if err := throttle.Fail(ctx, email); err != nil {
		logLimiterError("fail", email, err)
	}
}

func logLimiterError(op, email string, err error) {
	logrus.WithFields(logrus.Fields{
		"op":    op,          // Limiter operation
		"email": email,       // Throttled key
		"error": err.Error(), // Error message
	}).Warn("Login limiter unavailable")
}
