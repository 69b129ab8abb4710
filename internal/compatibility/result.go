package compatibility

import (
	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
)

// ProductsByCategory always holds one entry per category.
type ProductsByCategory map[enums.Category][]Product

func emptyProducts() ProductsByCategory {
	out := make(ProductsByCategory, len(enums.Categories()))
	for _, category := range enums.Categories() {
		out[category] = []Product{}
	}
	return out
}

// Filters echoes the query that produced a result.
type Filters struct {
	BrandSlug    string  `json:"brandSlug"`
	ModelSlug    string  `json:"modelSlug"`
	Motorisation *string `json:"motorisation"`
	VehicleModel *string `json:"vehicleModel"`
	Year         *int    `json:"year"`
}

// Meta summarises a result.
type Meta struct {
	Total      int                    `json:"total"`
	ByCategory map[enums.Category]int `json:"byCategory"`
	Filters    Filters                `json:"filters"`
}

// VehicleProducts is the aggregated answer for one vehicle query.
type VehicleProducts struct {
	Data ProductsByCategory `json:"data"`
	Meta Meta               `json:"meta"`
}

func newVehicleProducts(q VehicleQuery, data ProductsByCategory) *VehicleProducts {
	meta := Meta{
		ByCategory: make(map[enums.Category]int, len(data)),
		Filters: Filters{
			BrandSlug:    q.BrandSlug,
			ModelSlug:    q.ModelSlug,
			Motorisation: q.Motorisation,
			VehicleModel: q.VehicleModel,
			Year:         q.Year,
		},
	}
	for _, category := range enums.Categories() {
		if data[category] == nil {
			data[category] = []Product{}
		}
		n := len(data[category])
		meta.ByCategory[category] = n
		meta.Total += n
	}
	return &VehicleProducts{Data: data, Meta: meta}
}
