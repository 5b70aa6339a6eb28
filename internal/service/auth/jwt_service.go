package auth

import (
	"context"
	"time"

	"github.com/taskhq/taskhq-api/internal/domain"
)

// TokenService defines operations for managing JWT authentication tokens.
type TokenService interface {
	// GenerateToken creates a signed JWT access token containing the user's
	// identity claims. Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, user *domain.User) (string, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Returns the claims containing user information if the token is valid,
	// or an error if validation fails (expired, invalid signature, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the identity carried by a verified token.
// It extends standard JWT registered claims with application-specific fields.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID int64 `json:"uid,omitempty"`

	// UserName is the display name of the user at issuance time.
	UserName string `json:"userName,omitempty"`

	// Email is the user's email at issuance time.
	Email string `json:"email,omitempty"`

	// Role is the user's permission tier at issuance time. Authorization
	// decisions read the role from here, not from the database, so a role
	// change takes effect only on the next sign-in.
	Role domain.Role `json:"role,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
