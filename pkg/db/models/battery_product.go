package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
	"github.com/angelmondragon/partsfinder-backend/pkg/types"
)

// BatteryProduct is linked to its vehicle by brand and model slug. Rows
// imported without slugs only carry the free-text names.
type BatteryProduct struct {
	ID            uuid.UUID   `gorm:"column:id;type:uuid;primaryKey"`
	Name          string      `gorm:"column:name;not null"`
	Reference     string      `gorm:"column:reference"`
	Slug          string      `gorm:"column:slug"`
	BrandName     string      `gorm:"column:brand_name"`
	BrandSlug     string      `gorm:"column:brand_slug;index:idx_battery_products_vehicle"`
	ModelName     string      `gorm:"column:model_name"`
	ModelSlug     string      `gorm:"column:model_slug;index:idx_battery_products_vehicle"`
	Motorisations types.JSONB `gorm:"column:motorisations;type:jsonb"`
	ImageURL      *string     `gorm:"column:image_url"`
	IsActive      bool        `gorm:"column:is_active;not null"`
	CreatedAt     time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

// BatteryMotorisation is one entry of BatteryProduct.Motorisations.
type BatteryMotorisation struct {
	Motorisation string            `json:"motorisation"`
	Fuel         string            `json:"fuel,omitempty"`
	StartDate    string            `json:"startDate,omitempty"`
	EndDate      string            `json:"endDate,omitempty"`
	BatteryType  enums.BatteryType `json:"batteryType,omitempty"`
	BatteryRef   string            `json:"batteryRef,omitempty"`
}

// MotorisationList decodes the motorisations document.
func (b BatteryProduct) MotorisationList() ([]BatteryMotorisation, error) {
	if len(b.Motorisations) == 0 {
		return nil, nil
	}
	var out []BatteryMotorisation
	if err := b.Motorisations.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
