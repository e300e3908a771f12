package service

import (
	"context"

	"user-directory/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the signed, time-bounded identity assertion carried in the
// bearer token. It is never persisted; verification rebuilds it from the token.
type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type TokenService interface {
	Issue(ctx context.Context, acct *domain.Account) (string, error)
	// Verify checks signature and expiry. Any failure comes back as
	// domain.ErrInvalidToken; a claim set is never partially trusted.
	Verify(ctx context.Context, token string) (*SessionClaims, error)
}
