package api

import (
	"net/http"
	"strings"
)

// AuthMiddleware returns middleware that validates the admin Bearer token.
// If token is empty, any request carrying a Bearer token is accepted; this is
// only meant for local development.
func AuthMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const prefix = "Bearer "
			if !strings.HasPrefix(authHeader, prefix) {
				Unauthorized(w)
				return
			}
			if bearer := authHeader[len(prefix):]; token != "" && bearer != token {
				Unauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
