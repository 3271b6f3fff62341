// Package handler contains the HTTP request handlers.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"ecoroute/internal/delivery/http/response"
	"ecoroute/internal/domain/entity"
	domainerrors "ecoroute/internal/domain/errors"
	"ecoroute/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// TripHandlerParams holds dependencies for TripHandler, injected by Fx.
type TripHandlerParams struct {
	fx.In

	TripUC usecase.TripUsecase
	Logger *slog.Logger
}

// TripHandler holds dependencies for route calculation handlers
type TripHandler struct {
	tripUC usecase.TripUsecase
	logger *slog.Logger
}

// NewTripHandler is the constructor for TripHandler
func NewTripHandler(params TripHandlerParams) *TripHandler {
	return &TripHandler{
		tripUC: params.TripUC,
		logger: params.Logger,
	}
}

// CoordinatePayload represents a geographic point in a request body.
// Pointers keep zero values (the equator, the prime meridian) valid.
type CoordinatePayload struct {
	Lat *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lng *float64 `json:"lng" validate:"required,min=-180,max=180"`
}

// CalculateRouteRequest represents the request body for a route calculation
type CalculateRouteRequest struct {
	Origin         CoordinatePayload `json:"origin" validate:"required"`
	Destination    CoordinatePayload `json:"destination" validate:"required"`
	TransportMode  string            `json:"transport_mode" validate:"required"`
	FuelType       string            `json:"fuel_type"`
	CargoWeightKg  float64           `json:"cargo_weight_kg" validate:"min=0"`
	Traffic        string            `json:"traffic" validate:"omitempty,oneof=light normal heavy severe"`
	Alternatives   int               `json:"alternatives" validate:"min=0,max=5"`
	OrganizationID *uuid.UUID        `json:"organization_id,omitempty"`
}

// CalculateRoute handles a route calculation request
func (h *TripHandler) CalculateRoute(c echo.Context) error {
	var req CalculateRouteRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid route calculation input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := usecase.RouteRequest{
		Origin:         entity.Coordinate{Lat: *req.Origin.Lat, Lng: *req.Origin.Lng},
		Destination:    entity.Coordinate{Lat: *req.Destination.Lat, Lng: *req.Destination.Lng},
		TransportMode:  req.TransportMode,
		FuelType:       req.FuelType,
		CargoWeightKg:  req.CargoWeightKg,
		Traffic:        req.Traffic,
		Alternatives:   req.Alternatives,
		OrganizationID: req.OrganizationID,
	}

	calculation, err := h.tripUC.CalculateRoute(c.Request().Context(), input)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, calculation, "Route calculated successfully")
}

// History handles retrieving recent route calculations
func (h *TripHandler) History(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return response.BadRequest(c, "INVALID_LIMIT", "limit must be a non-negative integer")
		}
		limit = parsed
	}

	records, err := h.tripUC.History(c.Request().Context(), limit)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, records, "Route history retrieved successfully")
}

// handleAppError handles application errors
func (h *TripHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
