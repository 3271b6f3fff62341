package handler

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"ecoroute/config"
	"ecoroute/internal/delivery/http/response"
	"ecoroute/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	Config   *config.Config
	TokenSvc service.TokenService // nil when auth is not configured
	Logger   *slog.Logger
}

// AuthHandler issues the bearer tokens that guard fleet mutations.
type AuthHandler struct {
	cfg      *config.Config
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		cfg:      params.Config,
		tokenSvc: params.TokenSvc,
		logger:   params.Logger,
	}
}

// IssueTokenRequest represents the request body for issuing a token
type IssueTokenRequest struct {
	Secret  string     `json:"secret" validate:"required"`
	Subject *uuid.UUID `json:"subject,omitempty"`
}

// IssueToken exchanges the shared admin secret for a signed bearer token
func (h *AuthHandler) IssueToken(c echo.Context) error {
	if h.tokenSvc == nil {
		return response.NotFound(c, "AUTH_DISABLED", "Authentication is not configured")
	}

	var req IssueTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid token request")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if subtle.ConstantTimeCompare([]byte(req.Secret), []byte(h.cfg.Auth.Secret)) != 1 {
		return response.Unauthorized(c, "INVALID_CREDENTIALS", "Invalid admin secret")
	}

	subject := uuid.New()
	if req.Subject != nil {
		subject = *req.Subject
	}

	token, err := h.tokenSvc.Generate(subject)
	if err != nil {
		h.logger.Error("failed to sign access token", slog.String("error", err.Error()))

		return response.InternalServerError(c, "TOKEN_SIGNING_FAILED", "Failed to issue token")
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(h.tokenSvc.TokenTTL().Seconds()),
		"subject":      subject,
	}, "Token issued successfully")
}
