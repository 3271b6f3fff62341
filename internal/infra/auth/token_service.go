// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"ecoroute/config"
	"ecoroute/internal/domain/service"
	"ecoroute/internal/errors"
)

const defaultTokenTTL = time.Hour * 24

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret   string        // Secret key for signing access tokens.
	tokenTTL time.Duration // Time-to-live for access tokens.
}

// NewTokenService is the constructor for jwtService.
// Auth is optional: when no auth block is configured it returns a nil
// service and the HTTP layer leaves guarded routes open.
func NewTokenService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Auth == nil {
		return nil, nil
	}
	if cfg.Auth.Secret == "" {
		return nil, errors.New("auth secret must be provided")
	}

	ttl := cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &jwtService{
		secret:   cfg.Auth.Secret,
		tokenTTL: ttl,
	}, nil
}

// Generate creates a signed access token for a subject.
func (s *jwtService) Generate(subject uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,                           // Subject (who the token is for)
		"iat": time.Now().Unix(),                 // Issued At
		"exp": time.Now().Add(s.tokenTTL).Unix(), // Expiration Time
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// Validate parses and verifies a token string.
func (s *jwtService) Validate(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
}

// TokenTTL returns the configured access token lifetime.
func (s *jwtService) TokenTTL() time.Duration {
	return s.tokenTTL
}
