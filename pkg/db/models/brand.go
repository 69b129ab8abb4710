package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
)

// Brand is a vehicle manufacturer.
type Brand struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Name        string            `gorm:"column:name;not null"`
	Slug        string            `gorm:"column:slug;not null;uniqueIndex:idx_brands_slug"`
	IsActive    bool              `gorm:"column:is_active;not null"`
	VehicleType enums.VehicleType `gorm:"column:vehicle_type;type:varchar(16);not null;default:'car'"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
