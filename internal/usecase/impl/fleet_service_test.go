package impl

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoroute/internal/domain/entity"
	domainerrors "ecoroute/internal/domain/errors"
	"ecoroute/internal/domain/repository"
	"ecoroute/internal/usecase"
)

type stubOrgRepo struct {
	orgs      map[uuid.UUID]*entity.Organization
	createErr error
	listErr   error
}

func newStubOrgRepo() *stubOrgRepo {
	return &stubOrgRepo{orgs: make(map[uuid.UUID]*entity.Organization)}
}

func (s *stubOrgRepo) Create(_ context.Context, org *entity.Organization) error {
	if s.createErr != nil {
		return s.createErr
	}
	org.ID = uuid.New()
	s.orgs[org.ID] = org

	return nil
}

func (s *stubOrgRepo) List(_ context.Context) ([]*entity.Organization, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}

	orgs := make([]*entity.Organization, 0, len(s.orgs))
	for _, org := range s.orgs {
		orgs = append(orgs, org)
	}

	return orgs, nil
}

func (s *stubOrgRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Organization, error) {
	org, ok := s.orgs[id]
	if !ok {
		return nil, repository.ErrOrganizationNotFound
	}

	return org, nil
}

type stubVehicleRepo struct {
	vehicles  []*entity.Vehicle
	createErr error
}

func (s *stubVehicleRepo) Create(_ context.Context, vehicle *entity.Vehicle) error {
	if s.createErr != nil {
		return s.createErr
	}
	vehicle.ID = uuid.New()
	s.vehicles = append(s.vehicles, vehicle)

	return nil
}

func (s *stubVehicleRepo) ListByOrganization(_ context.Context, orgID uuid.UUID) ([]*entity.Vehicle, error) {
	matched := make([]*entity.Vehicle, 0)
	for _, vehicle := range s.vehicles {
		if vehicle.OrganizationID != nil && *vehicle.OrganizationID == orgID {
			matched = append(matched, vehicle)
		}
	}

	return matched, nil
}

func newFleetService(orgRepo *stubOrgRepo, vehicleRepo *stubVehicleRepo) usecase.FleetUsecase {
	return NewFleetService(FleetParams{
		OrgRepo:     orgRepo,
		VehicleRepo: vehicleRepo,
		Logger:      slog.Default(),
	})
}

func TestCreateOrganization(t *testing.T) {
	t.Parallel()

	svc := newFleetService(newStubOrgRepo(), &stubVehicleRepo{})

	org, err := svc.CreateOrganization(context.Background(), usecase.CreateOrganizationInput{
		Name: "  Acme Logistics  ",
		Type: "logistics",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, org.ID)
	assert.Equal(t, "Acme Logistics", org.Name)
}

func TestCreateOrganizationRequiresName(t *testing.T) {
	t.Parallel()

	svc := newFleetService(newStubOrgRepo(), &stubVehicleRepo{})

	_, err := svc.CreateOrganization(context.Background(), usecase.CreateOrganizationInput{Name: "   "})

	require.Error(t, err)
	assert.ErrorContains(t, err, domainerrors.ErrValidationFailed.Message())
}

func TestCreateOrganizationStorageDisabled(t *testing.T) {
	t.Parallel()

	orgRepo := newStubOrgRepo()
	orgRepo.createErr = repository.ErrStorageDisabled
	svc := newFleetService(orgRepo, &stubVehicleRepo{})

	_, err := svc.CreateOrganization(context.Background(), usecase.CreateOrganizationInput{Name: "Acme"})

	require.ErrorIs(t, err, domainerrors.ErrStorageUnavailable)
}

func TestListVehiclesUnknownOrganization(t *testing.T) {
	t.Parallel()

	svc := newFleetService(newStubOrgRepo(), &stubVehicleRepo{})

	_, err := svc.ListVehicles(context.Background(), uuid.New())

	require.ErrorIs(t, err, domainerrors.ErrOrganizationNotFound)
}

func TestCreateVehicle(t *testing.T) {
	t.Parallel()

	orgRepo := newStubOrgRepo()
	vehicleRepo := &stubVehicleRepo{}
	svc := newFleetService(orgRepo, vehicleRepo)

	org, err := svc.CreateOrganization(context.Background(), usecase.CreateOrganizationInput{Name: "Acme"})
	require.NoError(t, err)

	vehicle, err := svc.CreateVehicle(context.Background(), usecase.CreateVehicleInput{
		OrganizationID: &org.ID,
		Name:           "Truck 7",
		VehicleType:    "truck",
		FuelType:       "diesel",
		MaxCargoKg:     24000,
	})

	require.NoError(t, err)
	assert.True(t, vehicle.IsActive)

	vehicles, err := svc.ListVehicles(context.Background(), org.ID)
	require.NoError(t, err)
	assert.Len(t, vehicles, 1)
}

func TestCreateVehicleValidation(t *testing.T) {
	t.Parallel()

	svc := newFleetService(newStubOrgRepo(), &stubVehicleRepo{})

	tests := []struct {
		name    string
		input   usecase.CreateVehicleInput
		wantErr string
	}{
		{
			name:    "missing name",
			input:   usecase.CreateVehicleInput{VehicleType: "truck"},
			wantErr: domainerrors.ErrValidationFailed.Message(),
		},
		{
			name:    "unknown vehicle type",
			input:   usecase.CreateVehicleInput{Name: "Rover", VehicleType: "rover"},
			wantErr: domainerrors.ErrUnknownTransportMode.Message(),
		},
		{
			name: "invalid location",
			input: usecase.CreateVehicleInput{
				Name:            "Truck 1",
				VehicleType:     "truck",
				CurrentLocation: &entity.Coordinate{Lat: 95, Lng: 0},
			},
			wantErr: domainerrors.ErrInvalidCoordinates.Message(),
		},
		{
			name: "unknown organization",
			input: usecase.CreateVehicleInput{
				Name:           "Truck 1",
				VehicleType:    "truck",
				OrganizationID: func() *uuid.UUID { id := uuid.New(); return &id }(),
			},
			wantErr: domainerrors.ErrOrganizationNotFound.Message(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.CreateVehicle(context.Background(), tt.input)

			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
