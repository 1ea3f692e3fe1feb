package server

import (
	"cat_api/internal/api"        // HTTP handlers
	"cat_api/internal/domain"     // Message body
	"cat_api/internal/middleware" // Custom middlewares
	"net/http"                    // HTTP status codes
	"time"                        // Durations

	"github.com/gin-gonic/gin" // Gin web framework
)

// Deps is everything the router needs to serve requests
type Deps struct {
	Cats           api.CatModel               // Cat persistence
	Users          api.UserModel              // User persistence
	Limiter        api.LoginThrottle          // Failed login counter
	Uploads        *api.Uploader              // Image storage
	Health         map[string]api.HealthCheck // Dependency checks
	JWTSecret      string                     // Token signing key
	JWTTTL         time.Duration              // Token lifetime
	RequestTimeout time.Duration              // Per request deadline
	MaxBodyBytes   int64                      // Request body limit
}

// NewRouter builds the gin engine with every route of the API
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = d.MaxBodyBytes
	r.Use(
		middleware.Recovery(),                // Panics become a 500 {message}
		middleware.RequestLogger(),           // One log line per request
		middleware.ErrorResponder(),          // c.Error to {message}
		middleware.Timeout(d.RequestTimeout), // Deadline for stores
		middleware.BodyLimit(d.MaxBodyBytes), // Upload size cap
	)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, domain.Message{Message: "Not found"})
	})

	requireAuth := middleware.JWTAuthMiddleware(d.JWTSecret)  // 401 without a valid token
	softAuth := middleware.OptionalJWTMiddleware(d.JWTSecret) // Identity when present
	adminOnly := middleware.AdminOnlyMiddleware(d.Users)      // 403 unless the stored role is admin

	r.GET("/healthz", api.HealthHandler(d.Health))
	if d.Uploads != nil {
		r.Static("/uploads", d.Uploads.Dir()) // Stored cat images
	}

	// Auth routes
	r.POST("/auth/login", api.LoginHandler(d.Users, d.Limiter, api.AuthConfig{Secret: d.JWTSecret, TTL: d.JWTTTL}))

	// Cat routes, writes need a token
	cats := r.Group("/cats")
	cats.GET("", api.ListCatsHandler(d.Cats))
	cats.GET("/:id", api.GetCatHandler(d.Cats))
	cats.POST("", requireAuth, api.CreateCatHandler(d.Cats, d.Uploads))
	cats.PUT("/:id", requireAuth, api.UpdateCatHandler(d.Cats))
	cats.DELETE("/:id", requireAuth, api.DeleteCatHandler(d.Cats))

	// User routes
	users := r.Group("/users")
	users.GET("", api.ListUsersHandler(d.Users))
	users.GET("/token", softAuth, api.CheckTokenHandler())
	users.GET("/:id", api.GetUserHandler(d.Users))
	users.POST("", api.CreateUserHandler(d.Users))
	users.PUT("", requireAuth, api.UpdateCurrentUserHandler(d.Users))
	users.PUT("/:id", requireAuth, adminOnly, api.UpdateUserHandler(d.Users))
	users.DELETE("", requireAuth, api.DeleteCurrentUserHandler(d.Users))
	users.DELETE("/:id", requireAuth, adminOnly, api.DeleteUserHandler(d.Users))

	return r
}
