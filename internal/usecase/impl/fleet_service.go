package impl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"ecoroute/internal/domain/emissions"
	"ecoroute/internal/domain/entity"
	domainerrors "ecoroute/internal/domain/errors"
	"ecoroute/internal/domain/repository"
	"ecoroute/internal/errors"
	"ecoroute/internal/usecase"
)

// FleetParams defines the dependencies of the fleet service.
type FleetParams struct {
	fx.In

	OrgRepo     repository.OrganizationRepository
	VehicleRepo repository.VehicleRepository
	Logger      *slog.Logger
}

type fleetService struct {
	orgRepo     repository.OrganizationRepository
	vehicleRepo repository.VehicleRepository
	logger      *slog.Logger
}

// NewFleetService creates a new fleet service instance.
func NewFleetService(params FleetParams) usecase.FleetUsecase {
	return &fleetService{
		orgRepo:     params.OrgRepo,
		vehicleRepo: params.VehicleRepo,
		logger:      params.Logger,
	}
}

// CreateOrganization registers a new organization.
func (s *fleetService) CreateOrganization(ctx context.Context, input usecase.CreateOrganizationInput) (*entity.Organization, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name is required")
	}

	org := &entity.Organization{
		Name:         strings.TrimSpace(input.Name),
		Type:         input.Type,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Address:      input.Address,
	}

	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, mapStorageError(err)
	}

	return org, nil
}

// ListOrganizations returns all registered organizations.
func (s *fleetService) ListOrganizations(ctx context.Context) ([]*entity.Organization, error) {
	orgs, err := s.orgRepo.List(ctx)
	if err != nil {
		return nil, mapStorageError(err)
	}

	return orgs, nil
}

// ListVehicles returns the vehicles of an organization. The organization
// must exist.
func (s *fleetService) ListVehicles(ctx context.Context, orgID uuid.UUID) ([]*entity.Vehicle, error) {
	if _, err := s.orgRepo.FindByID(ctx, orgID); err != nil {
		return nil, mapStorageError(err)
	}

	vehicles, err := s.vehicleRepo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, mapStorageError(err)
	}

	return vehicles, nil
}

// CreateVehicle registers a new fleet vehicle.
func (s *fleetService) CreateVehicle(ctx context.Context, input usecase.CreateVehicleInput) (*entity.Vehicle, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name is required")
	}
	if !emissions.KnownMode(input.VehicleType) {
		return nil, domainerrors.ErrUnknownTransportMode.WithDetails(
			"supported modes: " + strings.Join(emissions.Modes(), ", "),
		)
	}
	if input.CurrentLocation != nil && !input.CurrentLocation.Valid() {
		return nil, domainerrors.ErrInvalidCoordinates
	}

	if input.OrganizationID != nil {
		if _, err := s.orgRepo.FindByID(ctx, *input.OrganizationID); err != nil {
			return nil, mapStorageError(err)
		}
	}

	vehicle := &entity.Vehicle{
		OrganizationID:       input.OrganizationID,
		Name:                 strings.TrimSpace(input.Name),
		VehicleType:          input.VehicleType,
		FuelType:             input.FuelType,
		MaxCargoKg:           input.MaxCargoKg,
		FuelEfficiencyKmPerL: input.FuelEfficiencyKmPerL,
		CO2FactorKgPerL:      input.CO2FactorKgPerL,
		IsActive:             true,
		CurrentLocation:      input.CurrentLocation,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, mapStorageError(err)
	}

	return vehicle, nil
}

// mapStorageError converts repository sentinels to application errors.
func mapStorageError(err error) error {
	switch {
	case errors.Is(err, repository.ErrStorageDisabled):
		return domainerrors.ErrStorageUnavailable
	case errors.Is(err, repository.ErrOrganizationNotFound):
		return domainerrors.ErrOrganizationNotFound
	default:
		return err
	}
}
