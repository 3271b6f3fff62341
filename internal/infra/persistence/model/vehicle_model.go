package model

import (
	"time"

	"github.com/google/uuid"
)

// VehicleModel is the GORM-specific struct for the 'vehicles' table.
type VehicleModel struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	OrganizationID       *uuid.UUID `gorm:"type:uuid;index:idx_vehicles_on_organization"`
	Name                 string     `gorm:"type:varchar(255);not null"`
	VehicleType          string     `gorm:"type:varchar(50);not null"`
	FuelType             string     `gorm:"type:varchar(50);not null"`
	MaxCargoKg           int        `gorm:"not null;default:0"`
	FuelEfficiencyKmPerL float64    `gorm:"type:decimal(8,2)"`
	CO2FactorKgPerL      float64    `gorm:"type:decimal(8,4)"`
	IsActive             bool       `gorm:"not null;default:true"`
	CurrentLat           *float64   `gorm:"type:decimal(10,8)"`
	CurrentLng           *float64   `gorm:"type:decimal(11,8)"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName explicitly sets the table name for GORM.
func (VehicleModel) TableName() string {
	return "vehicles"
}
