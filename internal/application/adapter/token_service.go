package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenClaims represents the claims contained in a JWT access token.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService defines the interface for JWT token operations. Token issuance
// belongs to the external auth service; this API only validates access tokens
// to resolve the owner id, and generation exists for tooling and tests.
type TokenService interface {
	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	// GenerateAccessToken generates a signed access token for a user.
	GenerateAccessToken(ctx context.Context, userID uuid.UUID, email string, expiry time.Duration) (string, error)
}
