package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
)

// VehicleModel is a vehicle line. BrandID is nil for legacy rows imported
// before they were linked to a manufacturer.
type VehicleModel struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Name        string            `gorm:"column:name;not null"`
	Slug        string            `gorm:"column:slug;not null;uniqueIndex:idx_vehicle_models_brand_slug"`
	BrandID     *uuid.UUID        `gorm:"column:brand_id;type:uuid;uniqueIndex:idx_vehicle_models_brand_slug"`
	Brand       *Brand            `gorm:"foreignKey:BrandID"`
	VehicleType enums.VehicleType `gorm:"column:vehicle_type;type:varchar(16);not null;default:'car'"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// HasBrand reports whether the model is linked to a manufacturer.
func (m VehicleModel) HasBrand() bool {
	return m.BrandID != nil && *m.BrandID != uuid.Nil
}
