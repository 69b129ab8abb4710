package compatibility

import (
	"context"

	"github.com/angelmondragon/partsfinder-backend/internal/matching"
	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
)

type wipersAdapter struct {
	repo *Repository
}

func (a *wipersAdapter) category() enums.Category { return enums.CategoryWipers }

func (a *wipersAdapter) minStrength() matching.Strength { return matching.StrengthBrandInName }

func (a *wipersAdapter) direct(ctx context.Context, vehicle Vehicle) ([]Product, error) {
	rows, err := a.repo.WipersByVehicle(ctx, vehicle.Brand.ID, vehicle.Model.ID, vehicle.Year)
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, newWiperDTO(row))
	}
	return out, nil
}

func (a *wipersAdapter) unlinked(ctx context.Context, vehicle Vehicle) ([]freeTextRow, error) {
	rows, err := a.repo.UnlinkedWipers(ctx, vehicle.Year)
	if err != nil {
		return nil, err
	}
	out := make([]freeTextRow, 0, len(rows))
	for _, row := range rows {
		dto := newWiperDTO(row)
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
