package middleware

import (
	"strings"

	"ecoroute/internal/delivery/http/response"
	"ecoroute/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware. A nil token
// service means auth is not configured and guarded routes stay open.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate is the core middleware function that validates the JWT access token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.tokenSvc == nil {
			return next(c)
		}

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN_FORMAT", "Invalid token format, must be Bearer token")
		}

		token, err := m.tokenSvc.Validate(tokenString)
		if err != nil || !token.Valid {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return response.Unauthorized(c, "INVALID_TOKEN", "Failed to parse token claims")
		}

		subjectStr, ok := claims["sub"].(string)
		if !ok {
			return response.Unauthorized(c, "INVALID_TOKEN", "Subject missing from token")
		}
		subject, err := uuid.Parse(subjectStr)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid subject format in token")
		}

		// Set the caller identity on the context for handlers to use
		c.Set("subjectID", subject)

		return next(c)
	}
}
