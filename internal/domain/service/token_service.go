package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService issues and verifies the bearer tokens that guard fleet
// mutations.
type TokenService interface {
	// Generate creates a signed access token for a subject.
	Generate(subject uuid.UUID) (string, error)

	// Validate parses and verifies a token string.
	Validate(tokenString string) (*jwt.Token, error)

	// TokenTTL returns the configured access token lifetime.
	TokenTTL() time.Duration
}
