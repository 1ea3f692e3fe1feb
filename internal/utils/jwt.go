package utils

import (
	"cat_api/internal/domain" // Identity carried in tokens
	"errors"                  // Error values
	"time"                    // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// ErrUnexpectedSigningMethod is returned for tokens not signed with HMAC
var ErrUnexpectedSigningMethod = errors.New("unexpected signing method")

// JWT Claims
type Claims struct {
	domain.Identity      // Caller identity: user_id, user_name, email, role
	jwt.RegisteredClaims // Standard JWT claims
}

// GenerateJWT creates a JWT token for the given identity
func GenerateJWT(who domain.Identity, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	// Set token claims
	claims := Claims{
		Identity: who, // Custom identity claims
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)), // Token expires after ttl
			IssuedAt:  jwt.NewNumericDate(now),          // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a JWT token string
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnexpectedSigningMethod // Reject alg confusion
		}
		return []byte(secret), nil // Return the secret key for validation
	})
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.UserID > 0 {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrTokenInvalidClaims
}
