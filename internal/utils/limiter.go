package utils

import (
	"context" // Context for Redis operations
	"strings" // Key normalization
	"time"    // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

const loginAttemptsPrefix = "login:failed:" // Redis key prefix for failed login counters

// LoginLimiter counts failed logins per email in Redis
type LoginLimiter struct {
	rdb         *redis.Client // Redis client
	maxAttempts int64         // Failures allowed inside one window
	window      time.Duration // Counter lifetime, starts at the first failure
}

// NewLoginLimiter returns a limiter; a nil client disables throttling
func NewLoginLimiter(rdb *redis.Client, maxAttempts int64, window time.Duration) *LoginLimiter {
	return &LoginLimiter{rdb: rdb, maxAttempts: maxAttempts, window: window}
}

func loginKey(email string) string {
	return loginAttemptsPrefix + strings.ToLower(strings.TrimSpace(email))
}

// Blocked reports whether the email used up its failed attempts
func (l *LoginLimiter) Blocked(ctx context.Context, email string) (bool, error) {
	if l == nil || l.rdb == nil {
		return false, nil // Throttling disabled
	}
	n, err := l.rdb.Get(ctx, loginKey(email)).Int64() // Current failure count
	if err == redis.Nil {
		return false, nil // No failures recorded
	} else if err != nil {
		return false, err // Other Redis error
	}
	return n >= l.maxAttempts, nil
}

// Fail records one failed attempt and starts the window on the first failure
func (l *LoginLimiter) Fail(ctx context.Context, email string) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	key := loginKey(email)
	n, err := l.rdb.Incr(ctx, key).Result() // Count this failure
	if err != nil {
		return err
	}
	if n == 1 {
		return l.rdb.Expire(ctx, key, l.window).Err() // Window starts at first failure only
	}
	return nil
}

// Reset clears the counter after a successful login
func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return l.rdb.Del(ctx, loginKey(email)).Err() // Delete key from Redis
}
