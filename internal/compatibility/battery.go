package compatibility

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/partsfinder-backend/internal/matching"
	"github.com/angelmondragon/partsfinder-backend/pkg/db/models"
	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
	"github.com/angelmondragon/partsfinder-backend/pkg/logger"
)

type batteryAdapter struct {
	repo *Repository
	logg *logger.Logger
}

func (a *batteryAdapter) category() enums.Category { return enums.CategoryBatteries }

func (a *batteryAdapter) minStrength() matching.Strength { return matching.StrengthExactName }

func (a *batteryAdapter) direct(ctx context.Context, vehicle Vehicle) ([]Product, error) {
	rows, err := a.repo.BatteriesByVehicle(ctx, vehicle.Brand.Slug, vehicle.Model.Slug)
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(rows))
	for _, row := range rows {
		dto, ok, err := batteryForVehicle(row, vehicle.Motorisation)
		if err != nil {
			a.logg.Warn(a.logg.WithFields(ctx, map[string]any{
				"row_id": row.ID.String(),
				"reason": err.Error(),
			}), "resolver.row_skipped")
			continue
		}
		if ok {
			out = append(out, dto)
		}
	}
	return out, nil
}

func (a *batteryAdapter) unlinked(ctx context.Context, vehicle Vehicle) ([]freeTextRow, error) {
	rows, err := a.repo.UnlinkedBatteries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]freeTextRow, 0, len(rows))
	for _, row := range rows {
		row := row
		out = append(out, freeTextRow{
			id:        row.ID,
			brandName: row.BrandName,
			modelName: row.ModelName,
			load: func(context.Context) ([]Product, error) {
				dto, ok, err := batteryForVehicle(row, vehicle.Motorisation)
				if err != nil || !ok {
					return nil, err
				}
				return []Product{dto}, nil
			},
		})
	}
	return out, nil
}

// batteryForVehicle decodes the row and applies the motorisation filter: a
// case-insensitive substring match against any listed motorisation.
func batteryForVehicle(row models.BatteryProduct, motorisation string) (BatteryDTO, bool, error) {
	motorisations, err := row.MotorisationList()
	if err != nil {
		return BatteryDTO{}, false, fmt.Errorf("%w: decode motorisations: %v", errMalformedRow, err)
	}
	if motorisation != "" {
		needle := strings.ToLower(motorisation)
		found := false
		for _, m := range motorisations {
			if m.Motorisation != "" && strings.Contains(strings.ToLower(m.Motorisation), needle) {
				found = true
				break
			}
		}
		if !found {
			return BatteryDTO{}, false, nil
		}
	}
	return newBatteryDTO(row, motorisations), true, nil
}
