// Package auth authenticates operators calling the migration pack API.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/migrationpack/internal/constants"
	"github.com/yasinhessnawi1/migrationpack/internal/utils"
)

// ContextKey is a custom type for context keys to prevent collisions.
type ContextKey string

// Context keys for storing the authenticated operator and request metadata.
const (
	// UsernameContextKey is the context key for storing the authenticated operator name.
	UsernameContextKey ContextKey = constants.UsernameContextKey

	// TokenIDContextKey is the context key for storing the id of the token used.
	TokenIDContextKey ContextKey = constants.TokenIDContextKey

	// RequestIDContextKey is the context key for storing the unique request ID.
	RequestIDContextKey ContextKey = constants.RequestIDContextKey
)

// Identity describes an authenticated caller.
type Identity struct {
	Username string
	TokenID  string
}

// AuthProvider defines methods for different authentication mechanisms.
type AuthProvider interface {
	// Authenticate checks the request and returns the caller if valid.
	//
	// Parameters:
	//   - r: The HTTP request containing authentication credentials
	//
	// Returns:
	//   - The authenticated identity
	//   - error: An error if authentication fails, nil if successful
	Authenticate(r *http.Request) (Identity, error)
}

// JWTAuthProvider implements JWT-based authentication.
type JWTAuthProvider struct {
	jwtService JWTValidator
}

// NewJWTAuthProvider creates a new JWTAuthProvider with the specified JWT validator.
func NewJWTAuthProvider(jwtService JWTValidator) *JWTAuthProvider {
	return &JWTAuthProvider{
		jwtService: jwtService,
	}
}

// Authenticate implements the AuthProvider interface for JWT authentication.
// The token is read from the Authorization header, or from the auth cookie
// when no header is present.
func (p *JWTAuthProvider) Authenticate(r *http.Request) (Identity, error) {
	authHeader := r.Header.Get(constants.HeaderAuthorization)
	if authHeader == "" {
		cookie, err := r.Cookie(constants.AuthTokenCookie)
		if err != nil {
			return Identity{}, utils.ErrUnauthorized
		}
		authHeader = constants.BearerTokenPrefix + cookie.Value
	}

	if !strings.HasPrefix(authHeader, constants.BearerTokenPrefix) {
		return Identity{}, utils.ErrUnauthorized
	}

	token := strings.TrimPrefix(authHeader, constants.BearerTokenPrefix)
	if token == "" {
		return Identity{}, utils.ErrUnauthorized
	}

	claims, err := p.jwtService.ValidateToken(token, constants.TokenTypeAccess)
	if err != nil {
		return Identity{}, err
	}

	return Identity{Username: claims.Username, TokenID: claims.ID}, nil
}

// AuthMiddleware wraps an HTTP handler with authentication.
// It tries each provider in turn and lets the request through on the first
// success.
func AuthMiddleware(next http.Handler, providers ...AuthProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(constants.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
			r.Header.Set(constants.HeaderXRequestID, requestID)
		}

		ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)

		lastErr := utils.ErrUnauthorized
		for _, provider := range providers {
			identity, err := provider.Authenticate(r)
			if err == nil {
				ctx = context.WithValue(ctx, UsernameContextKey, identity.Username)
				ctx = context.WithValue(ctx, TokenIDContextKey, identity.TokenID)

				utils.LogAuth("authenticated", identity.Username, identity.TokenID, true, "")
				log.Debug().
					Str("request_id", requestID).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("Operator authenticated")

				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			lastErr = err
		}

		utils.LogAuth("authenticated", "", "", false, lastErr.Error())
		log.Info().
			Err(lastErr).
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Authentication failed")

		var appErr *utils.AppError
		if errors.As(lastErr, &appErr) {
			utils.ErrorFromAppError(w, appErr)
		} else {
			utils.Unauthorized(w, constants.MsgAuthRequired)
		}
	})
}

// RequireAuth returns a middleware that requires authentication.
func RequireAuth(providers ...AuthProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return AuthMiddleware(next, providers...)
	}
}

// GetUsername extracts the operator name from the request context.
func GetUsername(r *http.Request) (string, bool) {
	username, ok := r.Context().Value(UsernameContextKey).(string)
	return username, ok
}

// GetTokenID extracts the id of the token the request was authenticated with.
func GetTokenID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(TokenIDContextKey).(string)
	return id, ok
}

// GetRequestID extracts the request ID from the request context.
func GetRequestID(r *http.Request) (string, bool) {
	requestID, ok := r.Context().Value(RequestIDContextKey).(string)
	return requestID, ok
}

// IsAuthenticated reports whether an operator is present in the request context.
func IsAuthenticated(r *http.Request) bool {
	_, ok := GetUsername(r)
	return ok
}
