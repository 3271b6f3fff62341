package postgres

import (
	"context"

	"ecoroute/internal/domain/entity"
	domainerrors "ecoroute/internal/domain/errors"
	"ecoroute/internal/domain/repository"
	"ecoroute/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// vehicleRepository implements the repository.VehicleRepository interface.
type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository is the constructor for vehicleRepository.
// The db handle may be nil when persistence is disabled.
func NewVehicleRepository(db *gorm.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

// Create persists a new vehicle.
func (repo *vehicleRepository) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	if repo.db == nil {
		return repository.ErrStorageDisabled
	}

	vehicleM := fromVehicleDomain(vehicle)

	if err := repo.db.WithContext(ctx).Create(vehicleM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrOrganizationNotFound.WrapMessage("invalid organization reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required vehicle information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create vehicle")
	}

	// Update the entity with generated values
	vehicle.ID = vehicleM.ID
	vehicle.CreatedAt = vehicleM.CreatedAt
	vehicle.UpdatedAt = vehicleM.UpdatedAt

	return nil
}

// ListByOrganization returns the vehicles owned by an organization.
func (repo *vehicleRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*entity.Vehicle, error) {
	if repo.db == nil {
		return nil, repository.ErrStorageDisabled
	}

	var vehicleModels []*model.VehicleModel
	if err := repo.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at ASC").
		Find(&vehicleModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list vehicles by organization")
	}

	vehicles := make([]*entity.Vehicle, 0, len(vehicleModels))
	for _, vehicleM := range vehicleModels {
		vehicles = append(vehicles, toVehicleDomain(vehicleM))
	}

	return vehicles, nil
}

// --- Mapper Functions ---

// toVehicleDomain converts a GORM VehicleModel to a domain Vehicle entity.
func toVehicleDomain(data *model.VehicleModel) *entity.Vehicle {
	if data == nil {
		return nil
	}

	vehicle := &entity.Vehicle{
		ID:                   data.ID,
		OrganizationID:       data.OrganizationID,
		Name:                 data.Name,
		VehicleType:          data.VehicleType,
		FuelType:             data.FuelType,
		MaxCargoKg:           data.MaxCargoKg,
		FuelEfficiencyKmPerL: data.FuelEfficiencyKmPerL,
		CO2FactorKgPerL:      data.CO2FactorKgPerL,
		IsActive:             data.IsActive,
		CreatedAt:            data.CreatedAt,
		UpdatedAt:            data.UpdatedAt,
	}
	if data.CurrentLat != nil && data.CurrentLng != nil {
		vehicle.CurrentLocation = &entity.Coordinate{Lat: *data.CurrentLat, Lng: *data.CurrentLng}
	}

	return vehicle
}

// fromVehicleDomain converts a domain Vehicle entity to a GORM VehicleModel.
func fromVehicleDomain(data *entity.Vehicle) *model.VehicleModel {
	if data == nil {
		return nil
	}

	vehicleM := &model.VehicleModel{
		ID:                   data.ID,
		OrganizationID:       data.OrganizationID,
		Name:                 data.Name,
		VehicleType:          data.VehicleType,
		FuelType:             data.FuelType,
		MaxCargoKg:           data.MaxCargoKg,
		FuelEfficiencyKmPerL: data.FuelEfficiencyKmPerL,
		CO2FactorKgPerL:      data.CO2FactorKgPerL,
		IsActive:             data.IsActive,
		CreatedAt:            data.CreatedAt,
		UpdatedAt:            data.UpdatedAt,
	}
	if data.CurrentLocation != nil {
		lat, lng := data.CurrentLocation.Lat, data.CurrentLocation.Lng
		vehicleM.CurrentLat, vehicleM.CurrentLng = &lat, &lng
	}

	return vehicleM
}
