package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/casafind/casafind-api/internal/domain"
)

// Identity is the authenticated caller attached to a request.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   domain.Role
}

// IdentityOf builds the identity carried in tokens issued for user.
func IdentityOf(user *domain.User) Identity {
	return Identity{UserID: user.ID, Email: user.Email, Role: user.Role}
}

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed token for id and returns it with its
	// expiry time.
	GenerateToken(ctx context.Context, id Identity) (string, time.Time, error)

	// ValidateToken verifies the signature and time claims of tokenString.
	// Returns ErrExpiredToken for expired tokens and ErrInvalidToken for
	// anything else that fails.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims are the verified contents of a token.
type Claims struct {
	UserID    uuid.UUID
	Email     string
	Role      domain.Role
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

// Identity returns the caller described by the claims.
func (c *Claims) Identity() Identity {
	return Identity{UserID: c.UserID, Email: c.Email, Role: c.Role}
}
