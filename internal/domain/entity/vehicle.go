package entity

import (
	"time"

	"github.com/google/uuid"
)

// Vehicle is a fleet asset with the attributes that feed emission estimates.
type Vehicle struct {
	ID             uuid.UUID
	OrganizationID *uuid.UUID // Optional owning organization.
	Name           string
	VehicleType    string // Transport mode (e.g., "truck", "ship", "train").
	FuelType       string // Fuel or drivetrain variant (e.g., "diesel", "electric").

	// Specifications
	MaxCargoKg           int
	FuelEfficiencyKmPerL float64
	CO2FactorKgPerL      float64

	// Status
	IsActive        bool
	CurrentLocation *Coordinate

	CreatedAt time.Time
	UpdatedAt time.Time
}
