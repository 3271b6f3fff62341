// Package routing provides concrete implementations of the RouteSource
// domain service.
package routing

import (
	"context"
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"ecoroute/internal/domain/emissions"
	"ecoroute/internal/domain/entity"
	"ecoroute/internal/domain/service"
)

const earthRadiusKm = 6371.0

// Detour shape applied to the fabricated alternative candidate.
const (
	altDistanceFactor = 1.08
	altDurationFactor = 1.15
	altMidpointOffset = 0.10
)

// mockSource fabricates routes from great-circle geometry and per-mode
// cruise speeds. It backs every non-road transport mode and serves as the
// fallback when the routing engine is unreachable.
type mockSource struct{}

// NewMockSource creates the great-circle route source.
func NewMockSource() service.RouteSource {
	return &mockSource{}
}

// Routes returns a direct great-circle candidate, plus one fabricated
// detour when alternatives are requested.
func (s *mockSource) Routes(_ context.Context, origin, destination entity.Coordinate, mode string, alternatives int) ([]entity.RouteLeg, error) {
	distance := haversineKm(origin, destination)
	duration := distance / averageSpeed(mode)
	midpoint := entity.Coordinate{
		Lat: (origin.Lat + destination.Lat) / 2,
		Lng: (origin.Lng + destination.Lng) / 2,
	}

	direct := entity.RouteLeg{
		DistanceKm:    distance,
		DurationHours: duration,
		Geometry:      orb.LineString{origin.Point(), midpoint.Point(), destination.Point()},
		Instructions: []string{
			"Start",
			fmt.Sprintf("Head directly toward destination for %.0f km", distance),
			"Arrive at destination",
		},
		Summary: "direct route",
	}

	legs := []entity.RouteLeg{direct}
	if alternatives > 0 {
		legs = append(legs, fabricateDetour(origin, destination, direct))
	}

	return legs, nil
}

// fabricateDetour derives a slightly longer candidate by displacing the
// midpoint sideways and scaling distance and duration.
func fabricateDetour(origin, destination entity.Coordinate, direct entity.RouteLeg) entity.RouteLeg {
	dLat := destination.Lat - origin.Lat
	dLng := destination.Lng - origin.Lng
	midpoint := entity.Coordinate{
		Lat: (origin.Lat+destination.Lat)/2 + dLng*altMidpointOffset,
		Lng: (origin.Lng+destination.Lng)/2 - dLat*altMidpointOffset,
	}

	distance := direct.DistanceKm * altDistanceFactor

	return entity.RouteLeg{
		DistanceKm:    distance,
		DurationHours: direct.DurationHours * altDurationFactor,
		Geometry:      orb.LineString{origin.Point(), midpoint.Point(), destination.Point()},
		Instructions: []string{
			"Start",
			fmt.Sprintf("Take the longer corridor for %.0f km", distance),
			"Arrive at destination",
		},
		Summary: "alternate corridor",
	}
}

func averageSpeed(mode string) float64 {
	if speed, ok := emissions.AverageSpeeds[mode]; ok {
		return speed
	}

	return emissions.DefaultAverageSpeed
}

// haversineKm computes the great-circle distance between two coordinates.
func haversineKm(a, b entity.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
