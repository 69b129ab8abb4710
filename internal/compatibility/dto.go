package compatibility

import (
	"encoding/json"

	"github.com/angelmondragon/partsfinder-backend/pkg/db/models"
	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
	"github.com/google/uuid"
)

// Product is any category item returned for a vehicle.
type Product interface {
	Reference() string
}

// BatteryDTO is the public shape of a battery product.
type BatteryDTO struct {
	ID            uuid.UUID                    `json:"id"`
	Name          string                       `json:"name"`
	Ref           string                       `json:"reference"`
	Slug          string                       `json:"slug"`
	BrandName     string                       `json:"brand"`
	ModelName     string                       `json:"model"`
	Motorisations []models.BatteryMotorisation `json:"motorisations"`
	ImageURL      *string                      `json:"imageUrl,omitempty"`
}

func (b BatteryDTO) Reference() string { return b.Ref }

func newBatteryDTO(p models.BatteryProduct, motorisations []models.BatteryMotorisation) BatteryDTO {
	if motorisations == nil {
		motorisations = []models.BatteryMotorisation{}
	}
	return BatteryDTO{
		ID:            p.ID,
		Name:          p.Name,
		Ref:           p.Reference,
		Slug:          p.Slug,
		BrandName:     p.BrandName,
		ModelName:     p.ModelName,
		Motorisations: motorisations,
		ImageURL:      p.ImageURL,
	}
}

// LightDTO is the public shape of a lights product.
type LightDTO struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	Ref                   string    `json:"reference"`
	Description           *string   `json:"description,omitempty"`
	BrandName             string    `json:"brand"`
	ModelName             string    `json:"model"`
	Positions             []string  `json:"positions"`
	ConstructionYearStart *int      `json:"constructionYearStart"`
	ConstructionYearEnd   *int      `json:"constructionYearEnd"`
	TypeConception        *string   `json:"typeConception,omitempty"`
	PartNumber            *string   `json:"partNumber,omitempty"`
}

func (l LightDTO) Reference() string { return l.Ref }

func newLightDTO(p models.LightsProduct) LightDTO {
	return LightDTO{
		ID:                    p.ID,
		Name:                  p.Name,
		Ref:                   p.Reference,
		Description:           p.Description,
		BrandName:             p.BrandName,
		ModelName:             p.ModelName,
		Positions:             nonNil(p.Positions),
		ConstructionYearStart: p.ConstructionYearStart,
		ConstructionYearEnd:   p.ConstructionYearEnd,
		TypeConception:        p.TypeConception,
		PartNumber:            p.PartNumber,
	}
}

// WiperDTO is the public shape of a wipers product.
type WiperDTO struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	Ref                   string    `json:"reference"`
	Description           *string   `json:"description,omitempty"`
	BrandName             string    `json:"brand"`
	ModelName             string    `json:"model"`
	Positions             []string  `json:"positions"`
	Direction             *string   `json:"direction,omitempty"`
	WiperBrand            *string   `json:"wiperBrand,omitempty"`
	SizeMM                *int      `json:"sizeMm,omitempty"`
	ConstructionYearStart *int      `json:"constructionYearStart"`
	ConstructionYearEnd   *int      `json:"constructionYearEnd"`
}

func (w WiperDTO) Reference() string { return w.Ref }

func newWiperDTO(p models.WipersProduct) WiperDTO {
	return WiperDTO{
		ID:                    p.ID,
		Name:                  p.Name,
		Ref:                   p.Reference,
		Description:           p.Description,
		BrandName:             p.BrandName,
		ModelName:             p.ModelName,
		Positions:             nonNil(p.Positions),
		Direction:             p.Direction,
		WiperBrand:            p.WiperBrand,
		SizeMM:                p.SizeMM,
		ConstructionYearStart: p.ConstructionYearStart,
		ConstructionYearEnd:   p.ConstructionYearEnd,
	}
}

// FilterDTO is the public shape of a filter product, oil filters included.
// CompatibilityRef is the supplier reference that led to the product.
type FilterDTO struct {
	ID               uuid.UUID        `json:"id"`
	Manufacturer     string           `json:"manufacturer"`
	FilterType       enums.FilterType `json:"filterType"`
	Ref              string           `json:"reference"`
	FullReference    *string          `json:"fullReference,omitempty"`
	FullName         string           `json:"fullName"`
	EAN              *string          `json:"ean,omitempty"`
	Slug             string           `json:"slug"`
	ImageURL         *string          `json:"imageUrl,omitempty"`
	CompatibilityRef string           `json:"compatibilityRef,omitempty"`
	Notes            []string         `json:"notes,omitempty"`
}

func (f FilterDTO) Reference() string { return f.Ref }

func newFilterDTO(p models.FilterProduct, ref models.FilterRef) FilterDTO {
	return FilterDTO{
		ID:               p.ID,
		Manufacturer:     p.Manufacturer,
		FilterType:       p.FilterType,
		Ref:              p.Reference,
		FullReference:    p.FullReference,
		FullName:         p.FullName,
		EAN:              p.EAN,
		Slug:             p.Slug,
		ImageURL:         p.ImageURL,
		CompatibilityRef: ref.Ref,
		Notes:            ref.Notes,
	}
}

// cachedProduct replays a product read back from the response cache.
type cachedProduct struct {
	ref string
	raw json.RawMessage
}

func (c cachedProduct) Reference() string { return c.ref }

func (c cachedProduct) MarshalJSON() ([]byte, error) {
	return c.raw, nil
}

func (c *cachedProduct) UnmarshalJSON(data []byte) error {
	var head struct {
		Reference string `json:"reference"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	c.ref = head.Reference
	c.raw = append(json.RawMessage(nil), data...)
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
