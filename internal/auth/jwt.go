package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/yasinhessnawi1/migrationpack/internal/config"
	"github.com/yasinhessnawi1/migrationpack/internal/constants"
	"github.com/yasinhessnawi1/migrationpack/internal/utils"
)

// JWT errors
var (
	ErrInvalidSigningMethod = errors.New("invalid signing method")
	ErrEmptySubject         = errors.New("token subject must not be empty")
)

// OperatorClaims represents the claims of an operator access token
type OperatorClaims struct {
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTService issues and validates operator access tokens
type JWTService struct {
	Config *config.JWTSettings

	// now is replaced in tests
	now func() time.Time
}

// NewJWTService creates a new JWTService instance
func NewJWTService(config *config.JWTSettings) *JWTService {
	return &JWTService{
		Config: config,
		now:    time.Now,
	}
}

// GetConfig returns the JWT settings, falling back to defaults when unset
func (s *JWTService) GetConfig() *config.JWTSettings {
	if s.Config == nil {
		return &config.JWTSettings{
			Expiry: constants.DefaultJWTExpiry,
			Issuer: constants.DefaultJWTIssuer,
		}
	}
	return s.Config
}

func (s *JWTService) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// GenerateAccessToken issues an access token for username valid for expiry.
// A zero expiry uses the configured default.
// It returns the signed token and its unique id.
func (s *JWTService) GenerateAccessToken(username string, expiry time.Duration) (string, string, error) {
	if username == "" {
		return "", "", ErrEmptySubject
	}
	cfg := s.GetConfig()
	if expiry <= 0 {
		expiry = cfg.Expiry
	}

	jwtID := uuid.New().String()
	now := s.clock()
	claims := OperatorClaims{
		Username:  username,
		TokenType: constants.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			NotBefore: jwt.NewNumericDate(now),
			ID:        jwtID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, jwtID, nil
}

// ValidateToken validates a JWT token and returns its claims if valid
func (s *JWTService) ValidateToken(tokenString string, expectedType string) (*OperatorClaims, error) {
	cfg := s.GetConfig()
	parser := jwt.Parser{}
	token, err := parser.ParseWithClaims(tokenString, &OperatorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, utils.NewExpiredTokenError()
		}
		return nil, utils.NewInvalidTokenError()
	}

	if !token.Valid {
		return nil, utils.NewInvalidTokenError()
	}

	claims, ok := token.Claims.(*OperatorClaims)
	if !ok {
		return nil, utils.NewInvalidTokenError()
	}

	if claims.TokenType != expectedType || claims.Username == "" {
		return nil, utils.NewInvalidTokenError()
	}

	if cfg.Issuer != "" && !claims.VerifyIssuer(cfg.Issuer, true) {
		return nil, utils.NewInvalidTokenError()
	}

	return claims, nil
}
