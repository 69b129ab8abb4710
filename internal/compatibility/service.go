package compatibility

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/partsfinder-backend/pkg/db"
	"github.com/angelmondragon/partsfinder-backend/pkg/db/models"
	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/partsfinder-backend/pkg/errors"
	"github.com/angelmondragon/partsfinder-backend/pkg/logger"
	"github.com/angelmondragon/partsfinder-backend/pkg/metrics"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultResolverTimeout bounds each category resolver call.
const DefaultResolverTimeout = 3 * time.Second

type vehicleStore interface {
	FindBrandBySlug(ctx context.Context, slug string) (*models.Brand, error)
	FindModel(ctx context.Context, brandID uuid.UUID, slug string) (*models.VehicleModel, error)
}

// Service answers "which parts fit this vehicle".
type Service interface {
	GetAllProductsByVehicle(ctx context.Context, query VehicleQuery) (*VehicleProducts, error)
}

// ServiceParams wires the aggregator. Cache is optional: results are cached
// for CacheTTL when both are set. Timeout bounds each resolver call and
// defaults to DefaultResolverTimeout.
type ServiceParams struct {
	Vehicles  vehicleStore
	Resolvers []Resolver
	Logger    *logger.Logger
	Metrics   *metrics.ResolverMetrics
	Cache     ResponseCache
	CacheTTL  time.Duration
	Timeout   time.Duration
}

type service struct {
	vehicles  vehicleStore
	resolvers []Resolver
	logg      *logger.Logger
	metrics   *metrics.ResolverMetrics
	cache     ResponseCache
	cacheTTL  time.Duration
	timeout   time.Duration
}

// NewService validates params and builds the aggregator.
func NewService(params ServiceParams) (Service, error) {
	if params.Vehicles == nil {
		return nil, fmt.Errorf("vehicle store required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if len(params.Resolvers) == 0 {
		return nil, fmt.Errorf("at least one resolver required")
	}
	seen := map[enums.Category]struct{}{}
	for _, r := range params.Resolvers {
		if r == nil {
			return nil, fmt.Errorf("nil resolver")
		}
		if !r.Category().IsValid() {
			return nil, fmt.Errorf("resolver has unknown category %q", r.Category())
		}
		if _, dup := seen[r.Category()]; dup {
			return nil, fmt.Errorf("duplicate resolver for %s", r.Category())
		}
		seen[r.Category()] = struct{}{}
	}
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = DefaultResolverTimeout
	}
	return &service{
		vehicles:  params.Vehicles,
		resolvers: params.Resolvers,
		logg:      params.Logger,
		metrics:   params.Metrics,
		cache:     params.Cache,
		cacheTTL:  params.CacheTTL,
		timeout:   timeout,
	}, nil
}

// GetAllProductsByVehicle validates the query, resolves the vehicle and fans
// out to every category resolver. A failing or slow resolver leaves its
// category empty; only an invalid query or an unreachable store is an error.
func (s *service) GetAllProductsByVehicle(ctx context.Context, query VehicleQuery) (*VehicleProducts, error) {
	query = query.Normalize()
	if err := query.Validate(); err != nil {
		return nil, err
	}
	ctx = s.logg.WithVehicle(ctx, query.BrandSlug, query.ModelSlug)

	if cached, ok := s.readCache(ctx, query); ok {
		return cached, nil
	}

	vehicle, found, err := s.resolveVehicle(ctx, query)
	if err != nil {
		return nil, err
	}
	if !found {
		s.logg.Info(ctx, "vehicle_products.vehicle_not_found")
		result := newVehicleProducts(query, emptyProducts())
		s.writeCache(ctx, query, result)
		return result, nil
	}

	data, complete := s.fanOut(ctx, vehicle)
	result := newVehicleProducts(query, data)
	if complete {
		s.writeCache(ctx, query, result)
	}
	return result, nil
}

func (s *service) resolveVehicle(ctx context.Context, query VehicleQuery) (Vehicle, bool, error) {
	brand, err := s.vehicles.FindBrandBySlug(ctx, query.BrandSlug)
	if err != nil {
		if db.IsNotFound(err) {
			return Vehicle{}, false, nil
		}
		return Vehicle{}, false, storeUnavailable(err, "load brand")
	}
	model, err := s.vehicles.FindModel(ctx, brand.ID, query.ModelSlug)
	if err != nil {
		if db.IsNotFound(err) {
			return Vehicle{}, false, nil
		}
		return Vehicle{}, false, storeUnavailable(err, "load model")
	}
	return newVehicle(query, *brand, *model), true, nil
}

func storeUnavailable(err error, op string) error {
	return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err), "reference store unavailable")
}

// fanOut runs every resolver concurrently. complete is false when any
// resolver failed or timed out.
func (s *service) fanOut(ctx context.Context, vehicle Vehicle) (ProductsByCategory, bool) {
	results := make([][]Product, len(s.resolvers))
	failed := make([]bool, len(s.resolvers))

	var g errgroup.Group
	for i, resolver := range s.resolvers {
		i, resolver := i, resolver
		g.Go(func() error {
			products, err := s.runResolver(ctx, resolver, vehicle)
			if err != nil {
				failed[i] = true
				s.logg.Error(s.logg.WithCategory(ctx, resolver.Category().String()), "resolver.failed", err)
				return nil
			}
			results[i] = products
			return nil
		})
	}
	_ = g.Wait()

	data := emptyProducts()
	complete := true
	for i, resolver := range s.resolvers {
		if failed[i] {
			complete = false
			continue
		}
		if results[i] != nil {
			data[resolver.Category()] = results[i]
		}
	}
	return data, complete
}

type resolverOutcome struct {
	products []Product
	err      error
}

// runResolver calls resolver under its own timeout. The call runs in a
// separate goroutine so a resolver that ignores ctx cannot hold the request.
func (s *service) runResolver(ctx context.Context, resolver Resolver, vehicle Vehicle) ([]Product, error) {
	category := resolver.Category()
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	ctx = s.logg.WithCategory(ctx, category.String())

	start := time.Now()
	done := make(chan resolverOutcome, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- resolverOutcome{err: fmt.Errorf("%w: %s panicked: %v", ErrResolverFailure, category, rec)}
			}
		}()
		products, err := resolver.Resolve(ctx, vehicle)
		done <- resolverOutcome{products: products, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			outcome := metrics.ResolverOutcomeFailure
			if errors.Is(out.err, context.DeadlineExceeded) {
				outcome = metrics.ResolverOutcomeTimeout
			}
			s.metrics.ObserveCall(category.String(), outcome, time.Since(start), 0)
			if errors.Is(out.err, ErrResolverFailure) {
				return nil, out.err
			}
			return nil, fmt.Errorf("%w: %s: %w", ErrResolverFailure, category, out.err)
		}
		s.metrics.ObserveCall(category.String(), metrics.ResolverOutcomeSuccess, time.Since(start), len(out.products))
		return out.products, nil
	case <-ctx.Done():
		s.metrics.ObserveCall(category.String(), metrics.ResolverOutcomeTimeout, time.Since(start), 0)
		return nil, fmt.Errorf("%w: %s: %w", ErrResolverFailure, category, ctx.Err())
	}
}
