package matching

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/partsfinder-backend/pkg/db/models"
)

// Candidates is a sorted, read-only view over the brands and models a
// description can resolve to. Build it once with NewCandidates when the same
// reference set is matched many times.
type Candidates struct {
	brands        []models.Brand
	brandsByID    map[uuid.UUID]int
	models        []models.VehicleModel
	modelsByBrand map[uuid.UUID][]int
}

// NewCandidates copies and orders the inputs. Brands without a slug and
// models without a known brand are ignored: neither can anchor a match.
func NewCandidates(brands []models.Brand, vmodels []models.VehicleModel) *Candidates {
	c := &Candidates{
		brands:        make([]models.Brand, 0, len(brands)),
		brandsByID:    make(map[uuid.UUID]int, len(brands)),
		modelsByBrand: make(map[uuid.UUID][]int),
	}
	for _, b := range brands {
		if b.Slug == "" {
			continue
		}
		c.brands = append(c.brands, b)
	}
	sort.SliceStable(c.brands, func(i, j int) bool {
		return lessSlugID(c.brands[i].Slug, c.brands[i].ID, c.brands[j].Slug, c.brands[j].ID)
	})
	for i, b := range c.brands {
		if _, dup := c.brandsByID[b.ID]; !dup {
			c.brandsByID[b.ID] = i
		}
	}

	c.models = make([]models.VehicleModel, 0, len(vmodels))
	for _, vm := range vmodels {
		if !vm.HasBrand() || vm.Slug == "" {
			continue
		}
		if _, ok := c.brandsByID[*vm.BrandID]; !ok {
			continue
		}
		vm.Brand = nil
		c.models = append(c.models, vm)
	}
	sort.SliceStable(c.models, func(i, j int) bool {
		return lessSlugID(c.models[i].Slug, c.models[i].ID, c.models[j].Slug, c.models[j].ID)
	})
	for i, vm := range c.models {
		c.modelsByBrand[*vm.BrandID] = append(c.modelsByBrand[*vm.BrandID], i)
	}
	return c
}

// Len reports the number of usable brands and models.
func (c *Candidates) Len() (brands, vehicleModels int) {
	if c == nil {
		return 0, 0
	}
	return len(c.brands), len(c.models)
}

func (c *Candidates) brandOf(vm models.VehicleModel) models.Brand {
	return c.brands[c.brandsByID[*vm.BrandID]]
}

func (c *Candidates) modelsOf(brandID uuid.UUID) []models.VehicleModel {
	idx := c.modelsByBrand[brandID]
	out := make([]models.VehicleModel, 0, len(idx))
	for _, i := range idx {
		out = append(out, c.models[i])
	}
	return out
}

func (c *Candidates) full(vm models.VehicleModel, strength Strength) Match {
	model := vm
	return Match{Brand: c.brandOf(vm), Model: &model, Strength: strength}
}

func lessSlugID(a string, aID uuid.UUID, b string, bID uuid.UUID) bool {
	if a != b {
		return a < b
	}
	return strings.Compare(aID.String(), bID.String()) < 0
}
