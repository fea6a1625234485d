// Package auth guards API routes with bearer-token validation. Identity is a
// transport concern: domain services never see who made the request.
package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"minehub/pkg/requestcontext"
)

// RequireAuth validates the Authorization bearer token against the configured
// HMAC signing key. Invalid or missing tokens get a 401 without reaching the
// domain layer.
func RequireAuth(signingKey string, logger *slog.Logger) func(http.Handler) http.Handler {
	key := []byte(signingKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				writeUnauthorized(w, "missing bearer token")
				return
			}

			_, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return key, nil
			}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
			if err != nil {
				ctx := r.Context()
				logger.WarnContext(ctx, "unauthorized request",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				writeUnauthorized(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, desc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write(fmt.Appendf(nil, `{"code":401,"message":"%s"}`, desc))
}
