package compatibility

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/partsfinder-backend/pkg/db/models"
	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/partsfinder-backend/pkg/errors"
	"github.com/google/uuid"
)

type compatibilityStore interface {
	filterProductFinder
	CompatibilitiesByNames(ctx context.Context, brandName, modelName string) ([]models.FilterCompatibility, error)
}

// VariantDTO is one selectable engine/trim of a vehicle.
type VariantDTO struct {
	ID         uuid.UUID `json:"id"`
	Variant    string    `json:"variant"`
	FullName   string    `json:"fullName"`
	EngineCode *string   `json:"engineCode"`
	Power      *string   `json:"power"`
}

// MatchProductInput asks which catalog product answers a compatibility
// reference.
type MatchProductInput struct {
	Ref        string `json:"ref" validate:"required"`
	FilterType string `json:"filterType" validate:"required"`
}

// FilterCompatibilityService backs the variant picker and the reference
// lookup used by the filter pages.
type FilterCompatibilityService interface {
	Variants(ctx context.Context, brandName, modelName string) ([]VariantDTO, error)
	MatchProduct(ctx context.Context, input MatchProductInput) (*FilterDTO, error)
}

type filterCompatibilityService struct {
	store compatibilityStore
}

// NewFilterCompatibilityService builds the service over store.
func NewFilterCompatibilityService(store compatibilityStore) (FilterCompatibilityService, error) {
	if store == nil {
		return nil, fmt.Errorf("compatibility store required")
	}
	return &filterCompatibilityService{store: store}, nil
}

// Variants returns the distinct vehicle variants recorded for a brand/model
// name pair, sorted by variant. The first row of each variant wins.
func (s *filterCompatibilityService) Variants(ctx context.Context, brandName, modelName string) ([]VariantDTO, error) {
	brandName = strings.TrimSpace(brandName)
	modelName = strings.TrimSpace(modelName)
	if brandName == "" || modelName == "" {
		details := map[string]string{}
		if brandName == "" {
			details["brand"] = "is required"
		}
		if modelName == "" {
			details["model"] = "is required"
		}
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand and model are required").WithDetails(details)
	}

	rows, err := s.store.CompatibilitiesByNames(ctx, brandName, modelName)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list compatibilities")
	}
	out := make([]VariantDTO, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if _, dup := seen[row.VehicleVariant]; dup {
			continue
		}
		seen[row.VehicleVariant] = struct{}{}
		out = append(out, VariantDTO{
			ID:         row.ID,
			Variant:    row.VehicleVariant,
			FullName:   row.VehicleModel,
			EngineCode: row.EngineCode,
			Power:      row.Power,
		})
	}
	return out, nil
}

// MatchProduct returns the first active product answering input.Ref.
func (s *filterCompatibilityService) MatchProduct(ctx context.Context, input MatchProductInput) (*FilterDTO, error) {
	filterType, err := enums.ParseFilterType(input.FilterType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid filterType").
			WithDetails(map[string]string{"filterType": input.FilterType})
	}
	if CleanReference(input.Ref) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ref is required").
			WithDetails(map[string]string{"ref": "is required"})
	}

	products, err := lookupReference(ctx, s.store, input.Ref, filterType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup filter product")
	}
	if len(products) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no product for reference").
			WithDetails(map[string]string{"ref": input.Ref})
	}
	dto := newFilterDTO(products[0], models.FilterRef{Ref: input.Ref})
	return &dto, nil
}
