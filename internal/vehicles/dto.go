package vehicles

import (
	"github.com/angelmondragon/partsfinder-backend/pkg/db/models"
	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
	"github.com/google/uuid"
)

// BrandDTO is the public shape of a brand.
type BrandDTO struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	VehicleType enums.VehicleType `json:"vehicleType"`
}

// ModelDTO is the public shape of a vehicle model.
type ModelDTO struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	BrandSlug   string            `json:"brandSlug"`
	VehicleType enums.VehicleType `json:"vehicleType"`
}

func brandDTO(b models.Brand) BrandDTO {
	return BrandDTO{ID: b.ID, Name: b.Name, Slug: b.Slug, VehicleType: b.VehicleType}
}

func modelDTO(m models.VehicleModel, brandSlug string) ModelDTO {
	return ModelDTO{ID: m.ID, Name: m.Name, Slug: m.Slug, BrandSlug: brandSlug, VehicleType: m.VehicleType}
}
