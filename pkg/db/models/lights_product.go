package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/partsfinder-backend/pkg/types"
)

// LightsProduct is a bulb or lamp reference. BrandID/ModelID are nil for
// legacy rows that only carry BrandName/ModelName.
type LightsProduct struct {
	ID                    uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	Name                  string           `gorm:"column:name;not null"`
	Reference             string           `gorm:"column:reference"`
	Description           *string          `gorm:"column:description"`
	BrandID               *uuid.UUID       `gorm:"column:brand_id;type:uuid;index:idx_lights_products_vehicle"`
	ModelID               *uuid.UUID       `gorm:"column:model_id;type:uuid;index:idx_lights_products_vehicle"`
	BrandName             string           `gorm:"column:brand_name"`
	ModelName             string           `gorm:"column:model_name"`
	Positions             types.StringList `gorm:"column:positions;type:jsonb"`
	ConstructionYearStart *int             `gorm:"column:construction_year_start"`
	ConstructionYearEnd   *int             `gorm:"column:construction_year_end"`
	TypeConception        *string          `gorm:"column:type_conception"`
	PartNumber            *string          `gorm:"column:part_number"`
	IsActive              bool             `gorm:"column:is_active;not null"`
	CreatedAt             time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
