// Package repository defines the persistence interfaces of the domain layer.
package repository

import (
	"context"

	"github.com/google/uuid"

	"ecoroute/internal/domain/entity"
)

// OrganizationRepository persists organizations.
type OrganizationRepository interface {
	// Create stores a new organization.
	Create(ctx context.Context, org *entity.Organization) error

	// List returns all organizations ordered by creation time.
	List(ctx context.Context) ([]*entity.Organization, error)

	// FindByID returns the organization with the given ID, or
	// ErrOrganizationNotFound when it does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Organization, error)
}
