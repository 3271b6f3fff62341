package handler

import (
	"log/slog"
	"net/http"

	"ecoroute/internal/delivery/http/response"
	"ecoroute/internal/domain/entity"
	domainerrors "ecoroute/internal/domain/errors"
	"ecoroute/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// FleetHandlerParams holds dependencies for FleetHandler, injected by Fx.
type FleetHandlerParams struct {
	fx.In

	FleetUC usecase.FleetUsecase
	Logger  *slog.Logger
}

// FleetHandler holds dependencies for organization and vehicle handlers
type FleetHandler struct {
	fleetUC usecase.FleetUsecase
	logger  *slog.Logger
}

// NewFleetHandler is the constructor for FleetHandler
func NewFleetHandler(params FleetHandlerParams) *FleetHandler {
	return &FleetHandler{
		fleetUC: params.FleetUC,
		logger:  params.Logger,
	}
}

// CreateOrganizationRequest represents the request body for creating an organization
type CreateOrganizationRequest struct {
	Name         string `json:"name" validate:"required"`
	Type         string `json:"type" validate:"omitempty,oneof=logistics supplier customer"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
}

// CreateVehicleRequest represents the request body for creating a vehicle
type CreateVehicleRequest struct {
	OrganizationID       *uuid.UUID         `json:"organization_id,omitempty"`
	Name                 string             `json:"name" validate:"required"`
	VehicleType          string             `json:"vehicle_type" validate:"required"`
	FuelType             string             `json:"fuel_type"`
	MaxCargoKg           int                `json:"max_cargo_kg" validate:"min=0"`
	FuelEfficiencyKmPerL float64            `json:"fuel_efficiency_km_per_l" validate:"min=0"`
	CO2FactorKgPerL      float64            `json:"co2_factor_kg_per_l" validate:"min=0"`
	CurrentLocation      *CoordinatePayload `json:"current_location,omitempty"`
}

// CreateOrganization handles registering a new organization
func (h *FleetHandler) CreateOrganization(c echo.Context) error {
	var req CreateOrganizationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid organization input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := usecase.CreateOrganizationInput{
		Name:         req.Name,
		Type:         req.Type,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
	}

	org, err := h.fleetUC.CreateOrganization(c.Request().Context(), input)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, org, "Organization created successfully")
}

// ListOrganizations handles retrieving all organizations
func (h *FleetHandler) ListOrganizations(c echo.Context) error {
	orgs, err := h.fleetUC.ListOrganizations(c.Request().Context())
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orgs, "Organizations retrieved successfully")
}

// ListVehicles handles retrieving the vehicles of an organization
func (h *FleetHandler) ListVehicles(c echo.Context) error {
	orgID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid organization ID")
	}

	vehicles, err := h.fleetUC.ListVehicles(c.Request().Context(), orgID)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, vehicles, "Vehicles retrieved successfully")
}

// CreateVehicle handles registering a new fleet vehicle
func (h *FleetHandler) CreateVehicle(c echo.Context) error {
	var req CreateVehicleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid vehicle input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := usecase.CreateVehicleInput{
		OrganizationID:       req.OrganizationID,
		Name:                 req.Name,
		VehicleType:          req.VehicleType,
		FuelType:             req.FuelType,
		MaxCargoKg:           req.MaxCargoKg,
		FuelEfficiencyKmPerL: req.FuelEfficiencyKmPerL,
		CO2FactorKgPerL:      req.CO2FactorKgPerL,
	}
	if req.CurrentLocation != nil {
		input.CurrentLocation = &entity.Coordinate{
			Lat: *req.CurrentLocation.Lat,
			Lng: *req.CurrentLocation.Lng,
		}
	}

	vehicle, err := h.fleetUC.CreateVehicle(c.Request().Context(), input)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, vehicle, "Vehicle created successfully")
}

// handleAppError handles application errors
func (h *FleetHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
