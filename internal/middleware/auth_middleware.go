package middleware

import (
	"net/http"

	"github.com/yasinhessnawi1/migrationpack/internal/auth"
)

// JWTAuth is a middleware that requires a valid operator token
func JWTAuth(jwtService auth.JWTValidator) func(http.Handler) http.Handler {
	provider := auth.NewJWTAuthProvider(jwtService)
	return auth.RequireAuth(provider)
}
