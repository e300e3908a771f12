package impl

import (
	"context"
	"fmt"
	"time"

	"user-directory/internal/domain"
	"user-directory/internal/observability/metrics"
	"user-directory/internal/service"

	"github.com/golang-jwt/jwt/v5"
)

type TokenConfig struct {
	Issuer string
	TTL    time.Duration // fixed session lifetime, e.g. 24h
	// SigningKey is the process-wide HS256 secret, loaded once at startup.
	// Rotating it invalidates every outstanding token.
	SigningKey []byte
}

type TokenServiceImpl struct {
	cfg TokenConfig
}

func NewTokenServiceHS256(cfg TokenConfig) *TokenServiceImpl {
	return &TokenServiceImpl{cfg: cfg}
}

func (t *TokenServiceImpl) Issue(ctx context.Context, acct *domain.Account) (string, error) {
	result := "success"
	defer func() {
		metrics.TokensIssuedTotal.WithLabelValues(result).Inc()
	}()

	now := time.Now().UTC()
	claims := service.SessionClaims{
		Email: acct.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Subject:   acct.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.TTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.cfg.SigningKey)
	if err != nil {
		result = "failure"
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify decodes and validates the token. Bad signature, malformed structure,
// and expiry all collapse into domain.ErrInvalidToken; jwt/v5 treats a token
// whose expiry equals the current instant as already expired.
func (t *TokenServiceImpl) Verify(ctx context.Context, token string) (*service.SessionClaims, error) {
	result := "success"
	defer func() {
		metrics.TokensVerifiedTotal.WithLabelValues(result).Inc()
	}()

	claims := &service.SessionClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return t.cfg.SigningKey, nil
	})
	if err != nil || !parsed.Valid {
		result = "failure"
		return nil, domain.ErrInvalidToken
	}
	if t.cfg.Issuer != "" && claims.Issuer != t.cfg.Issuer {
		result = "failure"
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
