package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/forumhub/backend/internal/token"
)

const identityKey contextKey = "identity"

// Auth validates the bearer token and stores the verified identity in the
// request context. Requests without a credential and requests with a bad or
// expired credential both get 401; ownership and role checks happen later in
// the services, against this identity only.
func Auth(generator *token.Generator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenString string

			// Expected format: "Bearer <token>"
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
					tokenString = parts[1]
				}
			}

			if tokenString == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"authentication required"}`))
				return
			}

			identity, err := generator.Verify(tokenString)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				if errors.Is(err, token.ErrExpired) {
					w.Write([]byte(`{"error":"token expired"}`))
				} else {
					w.Write([]byte(`{"error":"invalid token"}`))
				}
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity retrieves the verified actor identity from context
func GetIdentity(ctx context.Context) (token.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(token.Identity)
	return identity, ok
}
