package config

import (
	"fmt"  // For error wrapping
	"time" // For durations

	"github.com/caarlos0/env/v10" // For struct based env parsing
	"github.com/joho/godotenv"    // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort  string `env:"APP_PORT" envDefault:"8080"`  // Application port
	IsProd   bool   `env:"IS_PROD" envDefault:"false"`  // Is production environment
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"` // Logrus level name

	DBUser          string        `env:"DB_USER" envDefault:"root"`             // Database user
	DBPassword      string        `env:"DB_PASSWORD"`                           // Database password
	DBHost          string        `env:"DB_HOST" envDefault:"localhost"`        // Database host
	DBPort          string        `env:"DB_PORT" envDefault:"3306"`             // Database port
	DBName          string        `env:"DB_NAME" envDefault:"cats"`             // Database name
	DBMaxOpenConns  int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`     // Pool size
	DBMaxIdleConns  int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`      // Idle connections kept
	DBConnMaxLife   time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"` // Connection recycle age
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`      // Per request deadline
	JWTSecret       string        `env:"JWT_SECRET,required,notEmpty"`          // JWT secret key
	JWTTTL          time.Duration `env:"JWT_TTL" envDefault:"24h"`              // Token lifetime
	RedisAddr       string        `env:"REDIS_ADDR"`                            // Redis server address, empty disables throttling
	RedisPass       string        `env:"REDIS_PASS"`                            // Redis password
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`               // Redis database number
	LoginMaxAttempt int64         `env:"LOGIN_MAX_ATTEMPTS" envDefault:"5"`     // Failed logins allowed per window
	LoginWindow     time.Duration `env:"LOGIN_WINDOW" envDefault:"15m"`         // Failed login window
	UploadDir       string        `env:"UPLOAD_DIR" envDefault:"uploads"`       // Where cat images are stored
	MaxUploadBytes  int64         `env:"MAX_UPLOAD_BYTES" envDefault:"8388608"` // Request body size limit
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err) // Missing required keys end up here
	}
	return cfg, nil
}
