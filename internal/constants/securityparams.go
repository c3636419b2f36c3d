package constants

// Context Keys
const (
	UsernameContextKey  = "username"
	TokenIDContextKey   = "token_id"
	RequestIDContextKey = "request_id"
)

// Token Types
const (
	TokenTypeAccess = "access"
)

// BearerTokenPrefix precedes the token in the Authorization header.
const BearerTokenPrefix = "Bearer "

// Cookie Names
const (
	AuthTokenCookie = "auth_token"
)

// Rate limit categories
const (
	RateLimitCategoryPack = "pack"
)
