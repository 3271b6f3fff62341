package repository

import (
	"context"

	"github.com/google/uuid"

	"ecoroute/internal/domain/entity"
)

// VehicleRepository persists fleet vehicles.
type VehicleRepository interface {
	// Create stores a new vehicle.
	Create(ctx context.Context, vehicle *entity.Vehicle) error

	// ListByOrganization returns the vehicles owned by an organization.
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*entity.Vehicle, error)
}
