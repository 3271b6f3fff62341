// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
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

// organizationRepository implements the repository.OrganizationRepository interface.
type organizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository is the constructor for organizationRepository.
// The db handle may be nil when persistence is disabled.
func NewOrganizationRepository(db *gorm.DB) repository.OrganizationRepository {
	return &organizationRepository{db: db}
}

// Create persists a new organization.
func (repo *organizationRepository) Create(ctx context.Context, org *entity.Organization) error {
	if repo.db == nil {
		return repository.ErrStorageDisabled
	}

	orgM := fromOrganizationDomain(org)

	if err := repo.db.WithContext(ctx).Create(orgM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("organization already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required organization information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create organization")
	}

	// Update the entity with generated values
	org.ID = orgM.ID
	org.CreatedAt = orgM.CreatedAt
	org.UpdatedAt = orgM.UpdatedAt

	return nil
}

// List returns all organizations ordered by creation time.
func (repo *organizationRepository) List(ctx context.Context) ([]*entity.Organization, error) {
	if repo.db == nil {
		return nil, repository.ErrStorageDisabled
	}

	var orgModels []*model.OrganizationModel
	if err := repo.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&orgModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list organizations")
	}

	orgs := make([]*entity.Organization, 0, len(orgModels))
	for _, orgM := range orgModels {
		orgs = append(orgs, toOrganizationDomain(orgM))
	}

	return orgs, nil
}

// FindByID retrieves an organization by its unique ID.
func (repo *organizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Organization, error) {
	if repo.db == nil {
		return nil, repository.ErrStorageDisabled
	}

	var orgM model.OrganizationModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&orgM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrganizationNotFound
		}

		return nil, errors.Wrap(err, "failed to find organization by ID")
	}

	return toOrganizationDomain(&orgM), nil
}

// --- Mapper Functions ---

// toOrganizationDomain converts a GORM OrganizationModel to a domain Organization entity.
func toOrganizationDomain(data *model.OrganizationModel) *entity.Organization {
	if data == nil {
		return nil
	}

	return &entity.Organization{
		ID:           data.ID,
		Name:         data.Name,
		Type:         data.Type,
		ContactEmail: data.ContactEmail,
		ContactPhone: data.ContactPhone,
		Address:      data.Address,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromOrganizationDomain converts a domain Organization entity to a GORM OrganizationModel.
func fromOrganizationDomain(data *entity.Organization) *model.OrganizationModel {
	if data == nil {
		return nil
	}

	return &model.OrganizationModel{
		ID:           data.ID,
		Name:         data.Name,
		Type:         data.Type,
		ContactEmail: data.ContactEmail,
		ContactPhone: data.ContactPhone,
		Address:      data.Address,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
