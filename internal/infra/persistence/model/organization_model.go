package model

import (
	"time"

	"github.com/google/uuid"
)

// OrganizationModel is the GORM-specific struct for the 'organizations' table.
type OrganizationModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Type         string    `gorm:"type:varchar(50);not null;index:idx_organizations_on_type"`
	ContactEmail string    `gorm:"type:varchar(255)"`
	ContactPhone string    `gorm:"type:varchar(50)"`
	Address      string    `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrganizationModel) TableName() string {
	return "organizations"
}
