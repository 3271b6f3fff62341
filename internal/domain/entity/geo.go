// Package entity contains the core business objects of the project.
package entity

import (
	"math"

	"github.com/paulmach/orb"
)

// Coordinate is a geographic point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinate lies within Earth bounds.
func (c Coordinate) Valid() bool {
	// Reject NaN or infinities early
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) ||
		math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return false
	}

	return c.Lat >= -90 && c.Lat <= 90 &&
		c.Lng >= -180 && c.Lng <= 180
}

// Point returns the coordinate as an orb point (lng, lat order).
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Lng, c.Lat}
}

// RouteLeg is one route candidate returned by a route source.
// It exists only for the duration of a single request.
type RouteLeg struct {
	DistanceKm    float64        `json:"distance_km"`
	DurationHours float64        `json:"duration_hours"`
	Geometry      orb.LineString `json:"geometry"`     // ordered (lng, lat) pairs
	Instructions  []string       `json:"instructions"` // opaque turn-by-turn pass-through
	Summary       string         `json:"summary,omitempty"`
}

// WeatherSnapshot is the ambient weather at a location, consumed by the
// emission estimator and echoed back in the route response.
type WeatherSnapshot struct {
	TemperatureC float64 `json:"temperature"`
	WindSpeed    float64 `json:"wind_speed"`
	Humidity     int     `json:"humidity"`
	Condition    string  `json:"conditions"`
}
