package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// HealthHandlerParams holds dependencies for HealthHandler, injected by Fx.
type HealthHandlerParams struct {
	fx.In

	DB *gorm.DB // nil when persistence is not configured
}

// HealthHandler reports service and storage health.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler is the constructor for HealthHandler
func NewHealthHandler(params HealthHandlerParams) *HealthHandler {
	return &HealthHandler{db: params.DB}
}

// HealthCheck reports service liveness and database connectivity.
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	database := "disabled"
	if h.db != nil {
		database = "ok"
		if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request().Context()) != nil {
			database = "unreachable"
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":   "ok",
		"database": database,
	})
}

// Root returns basic service information.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"service": "ecoroute",
		"version": "1.0.0",
		"status":  "running",
	})
}
