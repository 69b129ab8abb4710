package vehicles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/partsfinder-backend/pkg/db"
	"github.com/angelmondragon/partsfinder-backend/pkg/db/models"
	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/partsfinder-backend/pkg/errors"
	"github.com/google/uuid"
)

type vehiclesRepository interface {
	FindBrandBySlug(ctx context.Context, slug string) (*models.Brand, error)
	ListBrands(ctx context.Context, vehicleType *enums.VehicleType, activeOnly bool) ([]models.Brand, error)
	ListModelsByBrand(ctx context.Context, brandID uuid.UUID) ([]models.VehicleModel, error)
}

// Service exposes the brand and model catalog used to build vehicle pickers.
type Service interface {
	ListBrands(ctx context.Context, vehicleType string) ([]BrandDTO, error)
	ListModels(ctx context.Context, brandSlug string) ([]ModelDTO, error)
}

type service struct {
	repo vehiclesRepository
}

// NewService builds a catalog service backed by repo.
func NewService(repo vehiclesRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vehicles repository required")
	}
	return &service{repo: repo}, nil
}

// ListBrands returns active brands, optionally filtered by vehicle type.
func (s *service) ListBrands(ctx context.Context, vehicleType string) ([]BrandDTO, error) {
	var filter *enums.VehicleType
	if strings.TrimSpace(vehicleType) != "" {
		parsed, err := enums.ParseVehicleType(vehicleType)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid vehicleType").
				WithDetails(map[string]string{"vehicleType": vehicleType})
		}
		filter = &parsed
	}

	rows, err := s.repo.ListBrands(ctx, filter, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list brands")
	}
	out := make([]BrandDTO, 0, len(rows))
	for _, b := range rows {
		out = append(out, brandDTO(b))
	}
	return out, nil
}

// ListModels returns the models of the brand identified by brandSlug.
func (s *service) ListModels(ctx context.Context, brandSlug string) ([]ModelDTO, error) {
	brandSlug = strings.TrimSpace(brandSlug)
	if brandSlug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brandSlug is required")
	}
	brand, err := s.repo.FindBrandBySlug(ctx, brandSlug)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, ErrBrandNotFound, "brand not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load brand")
	}

	rows, err := s.repo.ListModelsByBrand(ctx, brand.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list models")
	}
	out := make([]ModelDTO, 0, len(rows))
	for _, m := range rows {
		out = append(out, modelDTO(m, brand.Slug))
	}
	return out, nil
}

// IsBrandNotFound reports whether err carries ErrBrandNotFound.
func IsBrandNotFound(err error) bool {
	return errors.Is(err, ErrBrandNotFound)
}
