package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenValidator defines the operation for verifying JWT access tokens
// issued by the identity service.
type TokenValidator interface {
	// ValidateToken validates the provided token string and extracts the claims.
	// Returns the claims containing user information if the token is valid,
	// or an error if validation fails (expired, invalid signature, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the validated content of an access token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for,
	// parsed from the registered "sub" claim.
	UserID uuid.UUID `json:"sub,omitempty"`

	// Role is the platform role from the custom "rol" claim.
	Role Role `json:"rol,omitempty"`

	// Standard registered JWT claims
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
