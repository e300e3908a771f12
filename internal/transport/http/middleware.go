package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	obsmw "user-directory/internal/observability/middleware"
	"user-directory/internal/service"
)

type claimsKey struct{}

// ClaimsFrom returns the session claims attached by RequireAuth.
func ClaimsFrom(ctx context.Context) (*service.SessionClaims, bool) {
	v, ok := ctx.Value(claimsKey{}).(*service.SessionClaims)
	return v, ok
}

// RequireAuth gates protected routes behind a bearer token. Missing header
// and malformed scheme are both plain "unauthenticated"; the gate only
// annotates or rejects the in-flight request, never touches stored state.
func RequireAuth(tokens service.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if !strings.HasPrefix(strings.ToLower(raw), "bearer ") {
				writeError(w, http.StatusUnauthorized, "unauthenticated", "missing bearer token")
				return
			}
			tokStr := strings.TrimSpace(raw[len("Bearer "):])

			claims, err := tokens.Verify(r.Context(), tokStr)
			if err != nil {
				slog.Warn("rejected bearer token",
					"error", err,
					"request_id", obsmw.RequestIDFromContext(r.Context()),
				)
				writeError(w, http.StatusUnauthorized, "unauthenticated", "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
