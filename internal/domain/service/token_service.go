package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and validates session tokens.
type TokenService interface {
	// GenerateTokens creates an access and refresh token pair for a member
	// identity. Roles travel only in the access token.
	GenerateTokens(email string, roles []string) (accessToken string, refreshToken string, err error)

	// ValidateToken checks a token string against a secret.
	ValidateToken(tokenString string, secret string) (*jwt.Token, error)

	// GetRefreshTokenDuration returns the configured refresh token lifetime.
	GetRefreshTokenDuration() time.Duration
}

// TokenGenerator mints opaque single-use tokens (email verification, magic
// links) from a cryptographically secure random source.
type TokenGenerator interface {
	NewToken() (string, error)
}
