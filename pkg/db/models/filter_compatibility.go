package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
	"github.com/angelmondragon/partsfinder-backend/pkg/types"
)

// FilterCompatibility links a vehicle variant to the filter references that
// fit it. Filters holds {"<filter type>": [{"ref": "...", "notes": "..."}]}.
type FilterCompatibility struct {
	ID              uuid.UUID   `gorm:"column:id;type:uuid;primaryKey"`
	BrandID         *uuid.UUID  `gorm:"column:brand_id;type:uuid;index:idx_filter_compatibilities_vehicle"`
	ModelID         *uuid.UUID  `gorm:"column:model_id;type:uuid;index:idx_filter_compatibilities_vehicle"`
	BrandName       string      `gorm:"column:brand_name;not null"`
	ModelName       string      `gorm:"column:model_name;not null"`
	VehicleModel    string      `gorm:"column:vehicle_model"`
	VehicleVariant  string      `gorm:"column:vehicle_variant"`
	EngineCode      *string     `gorm:"column:engine_code"`
	Power           *string     `gorm:"column:power"`
	ProductionStart *int        `gorm:"column:production_start"`
	ProductionEnd   *int        `gorm:"column:production_end"`
	Filters         types.JSONB `gorm:"column:filters;type:jsonb"`
	Metadata        types.JSONB `gorm:"column:metadata;type:jsonb"`
	CreatedAt       time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

// FilterRef is one supplier reference listed on a compatibility row.
type FilterRef struct {
	Ref   string           `json:"ref"`
	Notes types.StringList `json:"notes,omitempty"`
}

// FilterRefs decodes the filters document keyed by filter type. Unknown
// filter types are ignored and an empty document has no references.
func (f FilterCompatibility) FilterRefs() (map[enums.FilterType][]FilterRef, error) {
	if len(f.Filters) == 0 {
		return map[enums.FilterType][]FilterRef{}, nil
	}
	var raw map[string][]FilterRef
	if err := f.Filters.Decode(&raw); err != nil {
		return nil, err
	}
	out := make(map[enums.FilterType][]FilterRef, len(raw))
	for key, refs := range raw {
		ft, err := enums.ParseFilterType(key)
		if err != nil {
			continue
		}
		out[ft] = append(out[ft], refs...)
	}
	return out, nil
}
