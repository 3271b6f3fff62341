package repository

import (
	"context"

	"ecoroute/internal/domain/entity"
)

// RouteRepository persists completed route calculations.
type RouteRepository interface {
	// Create stores a route record.
	Create(ctx context.Context, record *entity.RouteRecord) error

	// ListRecent returns the most recent route records, newest first.
	ListRecent(ctx context.Context, limit int) ([]*entity.RouteRecord, error)
}
