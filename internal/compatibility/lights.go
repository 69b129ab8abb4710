package compatibility

import (
	"context"

	"github.com/angelmondragon/partsfinder-backend/internal/matching"
	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
)

type lightsAdapter struct {
	repo *Repository
}

func (a *lightsAdapter) category() enums.Category { return enums.CategoryLights }

func (a *lightsAdapter) minStrength() matching.Strength { return matching.StrengthBrandInName }

func (a *lightsAdapter) direct(ctx context.Context, vehicle Vehicle) ([]Product, error) {
	rows, err := a.repo.LightsByVehicle(ctx, vehicle.Brand.ID, vehicle.Model.ID, vehicle.Year)
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, newLightDTO(row))
	}
	return out, nil
}

func (a *lightsAdapter) unlinked(ctx context.Context, vehicle Vehicle) ([]freeTextRow, error) {
	rows, err := a.repo.UnlinkedLights(ctx, vehicle.Year)
	if err != nil {
		return nil, err
	}
	out := make([]freeTextRow, 0, len(rows))
	for _, row := range rows {
		dto := newLightDTO(row)
		out = append(out, freeTextRow{
			id:        row.ID,
			brandName: row.BrandName,
			modelName: row.ModelName,
			load: func(context.Context) ([]Product, error) {
				return []Product{dto}, nil
			},
		})
	}
	return out, nil
}
