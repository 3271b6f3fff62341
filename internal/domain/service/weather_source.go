package service

import (
	"context"

	"ecoroute/internal/domain/entity"
)

// WeatherSource reports current weather conditions at a location.
type WeatherSource interface {
	// Snapshot returns the weather at the given point. Implementations may
	// serve cached observations.
	Snapshot(ctx context.Context, lat, lng float64) (entity.WeatherSnapshot, error)
}
