package model

import (
	"time"

	"github.com/google/uuid"
)

// RouteRecordModel is the GORM-specific struct for the 'route_records' table.
// Geometry and Weather hold raw JSON documents.
type RouteRecordModel struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	OrganizationID     *uuid.UUID `gorm:"type:uuid;index:idx_route_records_on_organization"`
	OriginLat          float64    `gorm:"type:decimal(10,8);not null"`
	OriginLng          float64    `gorm:"type:decimal(11,8);not null"`
	DestinationLat     float64    `gorm:"type:decimal(10,8);not null"`
	DestinationLng     float64    `gorm:"type:decimal(11,8);not null"`
	DistanceKm         float64    `gorm:"type:decimal(12,3);not null"`
	DurationHours      float64    `gorm:"type:decimal(10,3);not null"`
	TransportMode      string     `gorm:"type:varchar(50);not null"`
	FuelType           string     `gorm:"type:varchar(50);not null"`
	CargoWeightKg      int        `gorm:"not null;default:0"`
	TotalCO2Kg         float64    `gorm:"type:decimal(14,3);not null"`
	CO2PerKm           float64    `gorm:"type:decimal(10,4);not null"`
	FuelConsumedLiters float64    `gorm:"type:decimal(12,3)"`
	FuelCostEstimate   float64    `gorm:"type:decimal(12,2)"`
	EcoScore           float64    `gorm:"type:decimal(6,2)"`
	Geometry           []byte     `gorm:"type:jsonb"`
	Weather            []byte     `gorm:"type:jsonb"`
	CreatedAt          time.Time  `gorm:"index:idx_route_records_on_created_at,sort:desc"`
}

// TableName explicitly sets the table name for GORM.
func (RouteRecordModel) TableName() string {
	return "route_records"
}
