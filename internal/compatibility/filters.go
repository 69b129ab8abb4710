package compatibility

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/partsfinder-backend/internal/matching"
	"github.com/angelmondragon/partsfinder-backend/pkg/db/models"
	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
	"github.com/angelmondragon/partsfinder-backend/pkg/logger"
)

// filterAdapter resolves products through filter compatibility rows. The
// oil variant only follows oil references, the other one everything else.
type filterAdapter struct {
	repo  *Repository
	logg  *logger.Logger
	oil   bool
	types []enums.FilterType
}

func newFilterAdapter(repo *Repository, logg *logger.Logger, oil bool) *filterAdapter {
	var types []enums.FilterType
	for _, ft := range enums.FilterTypes() {
		if (ft == enums.FilterTypeOil) == oil {
			types = append(types, ft)
		}
	}
	return &filterAdapter{repo: repo, logg: logg, oil: oil, types: types}
}

func (a *filterAdapter) category() enums.Category {
	if a.oil {
		return enums.CategoryOil
	}
	return enums.CategoryFilters
}

func (a *filterAdapter) minStrength() matching.Strength { return matching.StrengthExactName }

func (a *filterAdapter) direct(ctx context.Context, vehicle Vehicle) ([]Product, error) {
	rows, err := a.repo.CompatibilitiesByVehicle(ctx, vehicle.Brand.ID, vehicle.Model.ID, compatibilityFilterFor(vehicle))
	if err != nil {
		return nil, err
	}
	var out []Product
	for _, row := range rows {
		products, err := a.expand(ctx, row)
		if err != nil {
			if errors.Is(err, errMalformedRow) {
				a.logg.Warn(a.logg.WithFields(ctx, map[string]any{
					"row_id": row.ID.String(),
					"reason": err.Error(),
				}), "resolver.row_skipped")
				continue
			}
			return nil, err
		}
		out = append(out, products...)
	}
	return out, nil
}

func (a *filterAdapter) unlinked(ctx context.Context, vehicle Vehicle) ([]freeTextRow, error) {
	rows, err := a.repo.UnlinkedCompatibilities(ctx, compatibilityFilterFor(vehicle))
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
			load: func(ctx context.Context) ([]Product, error) {
				return a.expand(ctx, row)
			},
		})
	}
	return out, nil
}

// expand turns every reference of the adapter's filter types listed on row
// into the matching catalog products.
func (a *filterAdapter) expand(ctx context.Context, row models.FilterCompatibility) ([]Product, error) {
	refs, err := row.FilterRefs()
	if err != nil {
		return nil, fmt.Errorf("%w: decode filters: %v", errMalformedRow, err)
	}
	var out []Product
	for _, ft := range a.types {
		for _, ref := range refs[ft] {
			if strings.TrimSpace(ref.Ref) == "" {
				continue
			}
			products, err := lookupReference(ctx, a.repo, ref.Ref, ft)
			if err != nil {
				return nil, err
			}
			for _, p := range products {
				out = append(out, newFilterDTO(p, ref))
			}
		}
	}
	return out, nil
}

func compatibilityFilterFor(vehicle Vehicle) CompatibilityFilter {
	return CompatibilityFilter{
		EngineCode:   vehicle.Motorisation,
		VehicleModel: vehicle.VehicleModel,
		Year:         vehicle.Year,
	}
}

// CleanReference strips the supplier prefix from a compatibility reference:
// "56-CS701" becomes "CS701". References without a prefix are returned
// trimmed.
func CleanReference(ref string) string {
	ref = strings.TrimSpace(ref)
	if i := strings.Index(ref, "-"); i >= 0 {
		return strings.TrimSpace(ref[i+1:])
	}
	return ref
}

type filterProductFinder interface {
	FindFilterProducts(ctx context.Context, reference string, filterType enums.FilterType, prefix bool) ([]models.FilterProduct, error)
}

// lookupReference resolves a compatibility reference to active products:
// exact reference first, then products whose reference starts with it
// ("CS701" finds "CS701A").
func lookupReference(ctx context.Context, finder filterProductFinder, ref string, filterType enums.FilterType) ([]models.FilterProduct, error) {
	cleaned := CleanReference(ref)
	if cleaned == "" {
		return nil, nil
	}
	exact, err := finder.FindFilterProducts(ctx, cleaned, filterType, false)
	if err != nil {
		return nil, err
	}
	if len(exact) > 0 {
		return exact, nil
	}
	return finder.FindFilterProducts(ctx, cleaned, filterType, true)
}
