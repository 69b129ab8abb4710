package backfill

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/partsfinder-backend/internal/matching"
	"github.com/angelmondragon/partsfinder-backend/pkg/db"
	"github.com/angelmondragon/partsfinder-backend/pkg/db/models"
	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
	"github.com/angelmondragon/partsfinder-backend/pkg/logger"
	"github.com/angelmondragon/partsfinder-backend/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

type vehicleStore interface {
	ListBrands(ctx context.Context, vehicleType *enums.VehicleType, activeOnly bool) ([]models.Brand, error)
	ListBrandedModels(ctx context.Context, vehicleType enums.VehicleType) ([]models.VehicleModel, error)
	ListUnbrandedModels(ctx context.Context, vehicleType enums.VehicleType) ([]models.VehicleModel, error)
	AssignBrand(ctx context.Context, modelID, brandID uuid.UUID) (bool, error)
}

// Params configure a Backfiller.
type Params struct {
	Logger      *logger.Logger
	Store       vehicleStore
	Matcher     *matching.Matcher
	Metrics     *metrics.MatchMetrics
	VehicleType enums.VehicleType
	ApplyFuzzy  bool
	DryRun      bool
}

// Backfiller links brand-less vehicle models to their manufacturer using the
// same matcher the resolvers use for free-text product rows.
type Backfiller struct {
	logg        *logger.Logger
	store       vehicleStore
	matcher     *matching.Matcher
	metrics     *metrics.MatchMetrics
	vehicleType enums.VehicleType
	applyFuzzy  bool
	dryRun      bool
	now         func() time.Time
}

// New validates params and builds a Backfiller.
func New(params Params) (*Backfiller, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("vehicle store required")
	}
	if params.Matcher == nil {
		return nil, fmt.Errorf("matcher required")
	}
	vt := params.VehicleType
	if vt == "" {
		vt = enums.VehicleTypeCar
	}
	if !vt.IsValid() {
		return nil, fmt.Errorf("invalid vehicle type %q", vt)
	}
	return &Backfiller{
		logg:        params.Logger,
		store:       params.Store,
		matcher:     params.Matcher,
		metrics:     params.Metrics,
		vehicleType: vt,
		applyFuzzy:  params.ApplyFuzzy,
		dryRun:      params.DryRun,
		now:         time.Now,
	}, nil
}

// Run matches every brand-less model of the configured vehicle type. Exact
// and brand-in-name matches are written, fuzzy ones only when ApplyFuzzy is
// set. The report is returned even when some writes failed; those failures
// are combined into the error.
func (b *Backfiller) Run(ctx context.Context) (*Report, error) {
	report := newReport(b.vehicleType, b.dryRun, b.applyFuzzy, b.now().UTC())
	ctx = b.logg.WithFields(ctx, map[string]any{
		"vehicle_type": b.vehicleType.String(),
		"dry_run":      b.dryRun,
	})

	vt := b.vehicleType
	brands, err := b.store.ListBrands(ctx, &vt, false)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	branded, err := b.store.ListBrandedModels(ctx, vt)
	if err != nil {
		return nil, fmt.Errorf("list branded models: %w", err)
	}
	pending, err := b.store.ListUnbrandedModels(ctx, vt)
	if err != nil {
		return nil, fmt.Errorf("list unbranded models: %w", err)
	}

	candidates := matching.NewCandidates(brands, branded)
	var errs error
	for _, vm := range pending {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = b.now().UTC()
			return report, multierr.Append(errs, err)
		}
		report.Scanned++
		if err := b.process(ctx, candidates, vm, report); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	report.FinishedAt = b.now().UTC()
	b.logg.Info(b.logg.WithFields(ctx, report.Summary()), "backfill.complete")
	return report, errs
}

func (b *Backfiller) process(ctx context.Context, candidates *matching.Candidates, vm models.VehicleModel, report *Report) error {
	text := strings.TrimSpace(vm.Name)
	if text == "" {
		text = vm.Slug
	}
	match, ok := b.matcher.MatchIn(candidates, "", text)
	if !ok {
		report.Unmatched = append(report.Unmatched, Unmatched{ModelID: vm.ID, ModelName: vm.Name, ModelSlug: vm.Slug})
		b.metrics.IncDecision(matching.StrengthNone.String(), ActionUnmatched)
		return nil
	}

	strategy := match.Strength.String()
	report.ByStrategy[strategy]++
	decision := Decision{
		ModelID:   vm.ID,
		ModelName: vm.Name,
		ModelSlug: vm.Slug,
		BrandID:   match.Brand.ID,
		BrandSlug: match.Brand.Slug,
		BrandName: match.Brand.Name,
		Strategy:  strategy,
	}
	if match.Model != nil {
		decision.MatchedModelSlug = match.Model.Slug
	}

	var err error
	switch {
	case match.Strength == matching.StrengthFuzzy && !b.applyFuzzy:
		decision.Action = ActionReview
	case b.dryRun:
		decision.Action = ActionDryRun
	default:
		decision.Action, err = b.apply(ctx, vm.ID, match.Brand.ID)
	}
	report.add(decision)
	b.metrics.IncDecision(strategy, decision.Action)

	if decision.Action == ActionApplied || decision.Action == ActionDryRun {
		b.logg.Info(b.logg.WithFields(ctx, map[string]any{
			"model_id":   vm.ID.String(),
			"model_name": vm.Name,
			"brand_slug": match.Brand.Slug,
			"strategy":   strategy,
			"action":     decision.Action,
		}), "backfill.model_matched")
	}
	return err
}

// apply writes the link. A model whose slug already exists under the target
// brand is a conflict, not a failure.
func (b *Backfiller) apply(ctx context.Context, modelID, brandID uuid.UUID) (string, error) {
	linked, err := b.store.AssignBrand(ctx, modelID, brandID)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return ActionConflict, nil
		}
		return ActionFailed, fmt.Errorf("assign brand to model %s: %w", modelID, err)
	}
	if !linked {
		return ActionSkipped, nil
	}
	return ActionApplied, nil
}
