// Package service defines the external-service interfaces of the domain layer.
package service

import (
	"context"

	"ecoroute/internal/domain/entity"
)

// RouteSource produces route candidates between two points. Implementations
// must return at least one candidate or an error, never an empty slice.
type RouteSource interface {
	// Routes returns up to alternatives+1 candidate routes for the given
	// transport mode, primary route first.
	Routes(ctx context.Context, origin, destination entity.Coordinate, mode string, alternatives int) ([]entity.RouteLeg, error)
}
