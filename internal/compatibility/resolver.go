package compatibility

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/partsfinder-backend/internal/matching"
	"github.com/angelmondragon/partsfinder-backend/pkg/db/models"
	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
	"github.com/angelmondragon/partsfinder-backend/pkg/logger"
	"github.com/google/uuid"
)

// errMalformedRow marks a candidate row whose stored data cannot be decoded.
// Such rows are skipped, never fatal.
var errMalformedRow = errors.New("malformed row")

// Resolver produces the products of one category that fit a vehicle.
type Resolver interface {
	Category() enums.Category
	Resolve(ctx context.Context, vehicle Vehicle) ([]Product, error)
}

// freeTextRow is a candidate whose vehicle link is only a brand/model
// description. load expands the row into products once the description has
// matched the vehicle.
type freeTextRow struct {
	id        uuid.UUID
	brandName string
	modelName string
	load      func(ctx context.Context) ([]Product, error)
}

// categoryAdapter supplies the schema specific half of a resolver.
type categoryAdapter interface {
	category() enums.Category
	minStrength() matching.Strength
	direct(ctx context.Context, vehicle Vehicle) ([]Product, error)
	unlinked(ctx context.Context, vehicle Vehicle) ([]freeTextRow, error)
}

// templateResolver runs the shared lookup: direct relation first, then the
// matcher over free-text rows, then de-duplication by reference.
type templateResolver struct {
	adapter categoryAdapter
	matcher *matching.Matcher
	logg    *logger.Logger
}

func newTemplateResolver(adapter categoryAdapter, matcher *matching.Matcher, logg *logger.Logger) *templateResolver {
	return &templateResolver{adapter: adapter, matcher: matcher, logg: logg}
}

func (r *templateResolver) Category() enums.Category {
	return r.adapter.category()
}

func (r *templateResolver) Resolve(ctx context.Context, vehicle Vehicle) ([]Product, error) {
	products, err := r.adapter.direct(ctx, vehicle)
	if err != nil {
		return nil, fmt.Errorf("%s direct lookup: %w", r.adapter.category(), err)
	}

	if len(products) == 0 {
		rows, err := r.adapter.unlinked(ctx, vehicle)
		if err != nil {
			return nil, fmt.Errorf("%s unlinked lookup: %w", r.adapter.category(), err)
		}
		candidates := matching.NewCandidates([]models.Brand{vehicle.Brand}, []models.VehicleModel{vehicle.Model})
		for _, row := range rows {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if !r.accepts(candidates, vehicle, row) {
				continue
			}
			items, err := row.load(ctx)
			if err != nil {
				if errors.Is(err, errMalformedRow) {
					r.skipRow(ctx, row.id, err.Error())
					continue
				}
				return nil, fmt.Errorf("%s load row %s: %w", r.adapter.category(), row.id, err)
			}
			products = append(products, items...)
		}
	}

	return r.dedupe(ctx, products), nil
}

// accepts reports whether row describes exactly the queried brand and model
// at the category's minimum strength.
func (r *templateResolver) accepts(candidates *matching.Candidates, vehicle Vehicle, row freeTextRow) bool {
	match, ok := r.matcher.MatchIn(candidates, row.brandName, row.modelName)
	if !ok || match.BrandOnly() {
		return false
	}
	if match.Brand.ID != vehicle.Brand.ID || match.Model.ID != vehicle.Model.ID {
		return false
	}
	return match.Strength.AtLeast(r.adapter.minStrength())
}

func (r *templateResolver) dedupe(ctx context.Context, products []Product) []Product {
	out := make([]Product, 0, len(products))
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		ref := p.Reference()
		if ref == "" {
			r.logg.Warn(r.logg.WithField(ctx, "reason", "missing reference"), "resolver.row_skipped")
			continue
		}
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, p)
	}
	return out
}

func (r *templateResolver) skipRow(ctx context.Context, id uuid.UUID, reason string) {
	r.logg.Warn(r.logg.WithFields(ctx, map[string]any{
		"row_id": id.String(),
		"reason": reason,
	}), "resolver.row_skipped")
}

// NewResolvers builds the five category resolvers over repo.
func NewResolvers(repo *Repository, matcher *matching.Matcher, logg *logger.Logger) ([]Resolver, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if matcher == nil {
		return nil, fmt.Errorf("matcher required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	adapters := []categoryAdapter{
		&batteryAdapter{repo: repo, logg: logg},
		&lightsAdapter{repo: repo},
		&wipersAdapter{repo: repo},
		newFilterAdapter(repo, logg, false),
		newFilterAdapter(repo, logg, true),
	}
	out := make([]Resolver, 0, len(adapters))
	for _, adapter := range adapters {
		out = append(out, newTemplateResolver(adapter, matcher, logg))
	}
	return out, nil
}
