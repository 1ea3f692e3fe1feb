package server

import (
	"cat_api/internal/api"    // HTTP handlers
	"cat_api/internal/config" // Application configuration
	"cat_api/internal/db"     // Database connection
	"cat_api/internal/store"  // MySQL stores
	"cat_api/internal/utils"  // Login limiter
	"context"                 // Shutdown and health checks
	"errors"                  // Error inspection
	"fmt"                     // Error wrapping
	"net/http"                // HTTP server
	"os"                      // Upload directory
	"time"                    // Server timeouts

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

const shutdownTimeout = 10 * time.Second // Grace period for in-flight requests

// Server owns the HTTP listener and the connections behind it
type Server struct {
	httpServer *http.Server  // HTTP listener
	db         *gorm.DB      // MySQL pool
	rdb        *redis.Client // Optional Redis client
}

// SetupLogger configures logrus the same way for every command
func SetupLogger(cfg *config.Config) error {
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{}) // Machine readable in production
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	logrus.SetLevel(level)
	return nil
}

// NewRedis connects to Redis when an address is configured; nil otherwise
func NewRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		logrus.Warn("REDIS_ADDR not set, login throttling disabled")
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})
	// Test Redis connection
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

// New wires the stores, the limiter and the router
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	rdb, err := NewRedis(ctx, cfg)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	health := map[string]api.HealthCheck{"mysql": sqlDB.PingContext}
	if rdb != nil {
		health["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	router := NewRouter(Deps{
		Cats:           store.NewCatStore(gdb),
		Users:          store.NewUserStore(gdb),
		Limiter:        utils.NewLoginLimiter(rdb, cfg.LoginMaxAttempt, cfg.LoginWindow),
		Uploads:        api.NewUploader(cfg.UploadDir),
		Health:         health,
		JWTSecret:      cfg.JWTSecret,
		JWTTTL:         cfg.JWTTTL,
		RequestTimeout: cfg.RequestTimeout,
		MaxBodyBytes:   cfg.MaxUploadBytes,
	})
	// Set trusted proxies for Gin
	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.AppPort,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		db:  gdb,
		rdb: rdb,
	}, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", s.httpServer.Addr).Info("Server running")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.closeConns()
		return err
	case <-ctx.Done():
	}

	logrus.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := s.httpServer.Shutdown(shutdownCtx)
	s.closeConns()
	return err
}

func (s *Server) closeConns() {
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if s.rdb != nil {
		_ = s.rdb.Close()
	}
}
