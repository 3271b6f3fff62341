// Package usecase defines the application service interfaces and their
// request/response types.
package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"ecoroute/internal/domain/entity"
)

// RouteRequest is a route calculation request.
type RouteRequest struct {
	Origin         entity.Coordinate `json:"origin"`
	Destination    entity.Coordinate `json:"destination"`
	TransportMode  string            `json:"transport_mode"`
	FuelType       string            `json:"fuel_type"`
	CargoWeightKg  float64           `json:"cargo_weight_kg"`
	Traffic        string            `json:"traffic"`
	Alternatives   int               `json:"alternatives"`
	OrganizationID *uuid.UUID        `json:"organization_id,omitempty"`
}

// EmissionReport carries the emission estimate of one route option.
type EmissionReport struct {
	TotalCO2Kg         float64 `json:"total_co2_kg"`
	CO2PerKm           float64 `json:"co2_per_km"`
	FuelConsumedLiters float64 `json:"fuel_consumed_liters"`
	FuelCostEstimate   float64 `json:"fuel_cost_estimate"`
	ConfidenceScore    float64 `json:"confidence_score"`
	Grade              string  `json:"grade"`
	Degraded           bool    `json:"degraded,omitempty"`
}

// RouteOption is one labeled route candidate with its emission estimate.
type RouteOption struct {
	Label         string         `json:"label"` // "eco", "fastest" or "alternate"
	DistanceKm    float64        `json:"distance_km"`
	DurationHours float64        `json:"duration_hours"`
	Geometry      orb.LineString `json:"geometry"`
	Instructions  []string       `json:"instructions,omitempty"`
	Summary       string         `json:"summary,omitempty"`
	Emissions     EmissionReport `json:"emissions"`
}

// EnvironmentalImpact summarizes the impact of the eco option.
type EnvironmentalImpact struct {
	EcoScore      float64 `json:"eco_score"`       // 0 to 100, higher is cleaner
	TreesToOffset float64 `json:"trees_to_offset"` // annual tree equivalents
	Rating        string  `json:"rating"`          // "eco-friendly", "moderate" or "high-impact"
}

// RouteCalculation is the complete outcome of one route calculation.
type RouteCalculation struct {
	Origin        entity.Coordinate       `json:"origin"`
	Destination   entity.Coordinate       `json:"destination"`
	TransportMode string                  `json:"transport_mode"`
	FuelType      string                  `json:"fuel_type"`
	Weather       *entity.WeatherSnapshot `json:"weather,omitempty"`
	Options       []RouteOption           `json:"routes"`
	Impact        EnvironmentalImpact     `json:"environmental_impact"`
}

// TripUsecase defines the route calculation use cases.
type TripUsecase interface {
	// CalculateRoute produces labeled route options with emission estimates
	// between two points.
	CalculateRoute(ctx context.Context, req RouteRequest) (*RouteCalculation, error)

	// History returns the most recent persisted route calculations.
	History(ctx context.Context, limit int) ([]*entity.RouteRecord, error)
}
