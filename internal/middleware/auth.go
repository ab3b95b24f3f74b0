package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/santhosh-ovd/indian-dishes/server/internal/auth"
)

const (
	authorizationHeaderKey  = "Authorization"
	authorizationTypeBearer = "bearer"
)

type contextKey string

const claimsContextKey contextKey = "auth_claims"

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

// BearerAuth rejects requests without a valid "Authorization: Bearer <token>"
// header with 401 and stores the token claims in the request context.
func BearerAuth(verifier TokenVerifier, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(authorizationHeaderKey)
			if header == "" {
				unauthorized(w, "Authorization header required")
				return
			}

			fields := strings.Fields(header)
			if len(fields) != 2 || strings.ToLower(fields[0]) != authorizationTypeBearer {
				unauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := verifier.VerifyToken(fields[1])
			if err != nil {
				logger.Warn("token verification failed", "path", r.URL.Path, "error", err)
				if errors.Is(err, auth.ErrExpiredToken) {
					unauthorized(w, "Token has expired")
					return
				}
				unauthorized(w, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the claims stored by BearerAuth, if any.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="dishes"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
