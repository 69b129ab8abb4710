package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
)

// FilterProduct is an oil, air, diesel or cabin filter.
type FilterProduct struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	Manufacturer  string           `gorm:"column:manufacturer;not null;default:'PURFLUX'"`
	FilterType    enums.FilterType `gorm:"column:filter_type;type:varchar(16);not null;index:idx_filter_products_type_reference"`
	Reference     string           `gorm:"column:reference;not null;index:idx_filter_products_type_reference"`
	FullReference *string          `gorm:"column:full_reference"`
	FullName      string           `gorm:"column:full_name"`
	EAN           *string          `gorm:"column:ean"`
	InternalSKU   *string          `gorm:"column:internal_sku"`
	Slug          string           `gorm:"column:slug"`
	ImageURL      *string          `gorm:"column:image_url"`
	IsActive      bool             `gorm:"column:is_active;not null"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
