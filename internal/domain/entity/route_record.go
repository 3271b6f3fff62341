package entity

import (
	"time"

	"github.com/google/uuid"
)

// RouteRecord is a persisted route calculation: the request parameters, the
// selected route metrics, and the emission outcome.
type RouteRecord struct {
	ID             uuid.UUID
	OrganizationID *uuid.UUID // Optional owning organization.

	Origin      Coordinate
	Destination Coordinate

	DistanceKm    float64
	DurationHours float64
	TransportMode string
	FuelType      string
	CargoWeightKg int

	// Emission outcome of the selected (eco) candidate.
	TotalCO2Kg         float64
	CO2PerKm           float64
	FuelConsumedLiters float64
	FuelCostEstimate   float64
	EcoScore           float64

	// Geometry and weather are stored as raw JSON documents.
	Geometry []byte
	Weather  []byte

	CreatedAt time.Time
}
