package usecase

import (
	"context"

	"github.com/google/uuid"

	"ecoroute/internal/domain/entity"
)

// CreateOrganizationInput carries the fields for a new organization.
type CreateOrganizationInput struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
}

// CreateVehicleInput carries the fields for a new fleet vehicle.
type CreateVehicleInput struct {
	OrganizationID       *uuid.UUID         `json:"organization_id,omitempty"`
	Name                 string             `json:"name"`
	VehicleType          string             `json:"vehicle_type"`
	FuelType             string             `json:"fuel_type"`
	MaxCargoKg           int                `json:"max_cargo_kg"`
	FuelEfficiencyKmPerL float64            `json:"fuel_efficiency_km_per_l"`
	CO2FactorKgPerL      float64            `json:"co2_factor_kg_per_l"`
	CurrentLocation      *entity.Coordinate `json:"current_location,omitempty"`
}

// FleetUsecase defines the organization and vehicle management use cases.
type FleetUsecase interface {
	// CreateOrganization registers a new organization.
	CreateOrganization(ctx context.Context, input CreateOrganizationInput) (*entity.Organization, error)

	// ListOrganizations returns all registered organizations.
	ListOrganizations(ctx context.Context) ([]*entity.Organization, error)

	// ListVehicles returns the vehicles of an organization.
	ListVehicles(ctx context.Context, orgID uuid.UUID) ([]*entity.Vehicle, error)

	// CreateVehicle registers a new fleet vehicle.
	CreateVehicle(ctx context.Context, input CreateVehicleInput) (*entity.Vehicle, error)
}
