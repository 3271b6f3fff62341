package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoroute/config"
	"ecoroute/internal/domain/service"
	"ecoroute/internal/infra/auth"

	"github.com/labstack/echo/v4"
)

func newAuthHandler(t *testing.T, secret string) (*AuthHandler, service.TokenService) {
	t.Helper()

	cfg := &config.Config{
		Auth: &config.AuthConfig{Secret: secret, TokenTTL: time.Hour},
	}
	tokenSvc, err := auth.NewTokenService(cfg)
	require.NoError(t, err)

	return NewAuthHandler(AuthHandlerParams{
		Config:   cfg,
		TokenSvc: tokenSvc,
		Logger:   slog.Default(),
	}), tokenSvc
}

func issueTokenRequest(body string) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return rec, newEcho().NewContext(req, rec)
}

func TestIssueToken(t *testing.T) {
	t.Parallel()

	h, tokenSvc := newAuthHandler(t, "s3cret")

	rec, c := issueTokenRequest(`{"secret": "s3cret"}`)

	require.NoError(t, h.IssueToken(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
			ExpiresIn   int    `json:"expires_in"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Bearer", body.Data.TokenType)
	assert.Equal(t, 3600, body.Data.ExpiresIn)

	// The issued token verifies against the same service.
	token, err := tokenSvc.Validate(body.Data.AccessToken)
	require.NoError(t, err)
	assert.True(t, token.Valid)
}

func TestIssueTokenRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	h, _ := newAuthHandler(t, "s3cret")

	rec, c := issueTokenRequest(`{"secret": "guess"}`)

	require.NoError(t, h.IssueToken(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
}

func TestIssueTokenRequiresSecret(t *testing.T) {
	t.Parallel()

	h, _ := newAuthHandler(t, "s3cret")

	rec, c := issueTokenRequest(`{}`)

	require.NoError(t, h.IssueToken(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIssueTokenWithAuthDisabled(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(AuthHandlerParams{
		Config: &config.Config{},
		Logger: slog.Default(),
	})

	rec, c := issueTokenRequest(`{"secret": "anything"}`)

	require.NoError(t, h.IssueToken(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_DISABLED")
}
