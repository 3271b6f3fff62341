package postgres

import (
	"context"

	"ecoroute/internal/domain/entity"
	domainerrors "ecoroute/internal/domain/errors"
	"ecoroute/internal/domain/repository"
	"ecoroute/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const defaultHistoryLimit = 50

// routeRepository implements the repository.RouteRepository interface.
type routeRepository struct {
	db *gorm.DB
}

// NewRouteRepository is the constructor for routeRepository.
// The db handle may be nil when persistence is disabled.
func NewRouteRepository(db *gorm.DB) repository.RouteRepository {
	return &routeRepository{db: db}
}

// Create persists a route record.
func (repo *routeRepository) Create(ctx context.Context, record *entity.RouteRecord) error {
	if repo.db == nil {
		return repository.ErrStorageDisabled
	}

	recordM := fromRouteRecordDomain(record)

	if err := repo.db.WithContext(ctx).Create(recordM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrOrganizationNotFound.WrapMessage("invalid organization reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create route record")
	}

	// Update the entity with generated values
	record.ID = recordM.ID
	record.CreatedAt = recordM.CreatedAt

	return nil
}

// ListRecent returns the most recent route records, newest first.
func (repo *routeRepository) ListRecent(ctx context.Context, limit int) ([]*entity.RouteRecord, error) {
	if repo.db == nil {
		return nil, repository.ErrStorageDisabled
	}

	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	var recordModels []*model.RouteRecordModel
	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&recordModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list recent route records")
	}

	records := make([]*entity.RouteRecord, 0, len(recordModels))
	for _, recordM := range recordModels {
		records = append(records, toRouteRecordDomain(recordM))
	}

	return records, nil
}

// --- Mapper Functions ---

// toRouteRecordDomain converts a GORM RouteRecordModel to a domain RouteRecord entity.
func toRouteRecordDomain(data *model.RouteRecordModel) *entity.RouteRecord {
	if data == nil {
		return nil
	}

	return &entity.RouteRecord{
		ID:                 data.ID,
		OrganizationID:     data.OrganizationID,
		Origin:             entity.Coordinate{Lat: data.OriginLat, Lng: data.OriginLng},
		Destination:        entity.Coordinate{Lat: data.DestinationLat, Lng: data.DestinationLng},
		DistanceKm:         data.DistanceKm,
		DurationHours:      data.DurationHours,
		TransportMode:      data.TransportMode,
		FuelType:           data.FuelType,
		CargoWeightKg:      data.CargoWeightKg,
		TotalCO2Kg:         data.TotalCO2Kg,
		CO2PerKm:           data.CO2PerKm,
		FuelConsumedLiters: data.FuelConsumedLiters,
		FuelCostEstimate:   data.FuelCostEstimate,
		EcoScore:           data.EcoScore,
		Geometry:           data.Geometry,
		Weather:            data.Weather,
		CreatedAt:          data.CreatedAt,
	}
}

// fromRouteRecordDomain converts a domain RouteRecord entity to a GORM RouteRecordModel.
func fromRouteRecordDomain(data *entity.RouteRecord) *model.RouteRecordModel {
	if data == nil {
		return nil
	}

	return &model.RouteRecordModel{
		ID:                 data.ID,
		OrganizationID:     data.OrganizationID,
		OriginLat:          data.Origin.Lat,
		OriginLng:          data.Origin.Lng,
		DestinationLat:     data.Destination.Lat,
		DestinationLng:     data.Destination.Lng,
		DistanceKm:         data.DistanceKm,
		DurationHours:      data.DurationHours,
		TransportMode:      data.TransportMode,
		FuelType:           data.FuelType,
		CargoWeightKg:      data.CargoWeightKg,
		TotalCO2Kg:         data.TotalCO2Kg,
		CO2PerKm:           data.CO2PerKm,
		FuelConsumedLiters: data.FuelConsumedLiters,
		FuelCostEstimate:   data.FuelCostEstimate,
		EcoScore:           data.EcoScore,
		Geometry:           data.Geometry,
		Weather:            data.Weather,
		CreatedAt:          data.CreatedAt,
	}
}
