package compatibility

import (
	"context"
	"strings"

	"github.com/angelmondragon/partsfinder-backend/pkg/db/models"
	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// productLookupLimit caps how many filter products one supplier reference
// can expand to.
const productLookupLimit = 100

// CompatibilityFilter narrows filter compatibility rows.
type CompatibilityFilter struct {
	EngineCode   string
	VehicleModel string
	Year         *int
}

// Repository reads category products and filter compatibility rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a product repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// BatteriesByVehicle returns active batteries linked to the brand/model slugs.
func (r *Repository) BatteriesByVehicle(ctx context.Context, brandSlug, modelSlug string) ([]models.BatteryProduct, error) {
	var rows []models.BatteryProduct
	err := r.db.WithContext(ctx).
		Where("brand_slug = ? AND model_slug = ? AND is_active = ?", brandSlug, modelSlug, true).
		Order("reference ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UnlinkedBatteries returns active batteries that only carry free-text
// vehicle names.
func (r *Repository) UnlinkedBatteries(ctx context.Context) ([]models.BatteryProduct, error) {
	var rows []models.BatteryProduct
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("(brand_slug IS NULL OR brand_slug = '' OR model_slug IS NULL OR model_slug = '')").
		Where("(brand_name <> '' OR model_name <> '')").
		Order("reference ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// LightsByVehicle returns active lights linked to brandID/modelID whose
// construction years cover year.
func (r *Repository) LightsByVehicle(ctx context.Context, brandID, modelID uuid.UUID, year *int) ([]models.LightsProduct, error) {
	var rows []models.LightsProduct
	err := r.db.WithContext(ctx).
		Scopes(yearScope("construction_year_start", "construction_year_end", year)).
		Where("brand_id = ? AND model_id = ? AND is_active = ?", brandID, modelID, true).
		Order("reference ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UnlinkedLights returns active lights missing a brand or model link.
func (r *Repository) UnlinkedLights(ctx context.Context, year *int) ([]models.LightsProduct, error) {
	var rows []models.LightsProduct
	err := r.db.WithContext(ctx).
		Scopes(yearScope("construction_year_start", "construction_year_end", year)).
		Where("is_active = ? AND (brand_id IS NULL OR model_id IS NULL)", true).
		Order("reference ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// WipersByVehicle returns active wipers linked to brandID/modelID whose
// construction years cover year.
func (r *Repository) WipersByVehicle(ctx context.Context, brandID, modelID uuid.UUID, year *int) ([]models.WipersProduct, error) {
	var rows []models.WipersProduct
	err := r.db.WithContext(ctx).
		Scopes(yearScope("construction_year_start", "construction_year_end", year)).
		Where("brand_id = ? AND model_id = ? AND is_active = ?", brandID, modelID, true).
		Order("reference ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UnlinkedWipers returns active wipers missing a brand or model link.
func (r *Repository) UnlinkedWipers(ctx context.Context, year *int) ([]models.WipersProduct, error) {
	var rows []models.WipersProduct
	err := r.db.WithContext(ctx).
		Scopes(yearScope("construction_year_start", "construction_year_end", year)).
		Where("is_active = ? AND (brand_id IS NULL OR model_id IS NULL)", true).
		Order("reference ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CompatibilitiesByVehicle returns the compatibility rows linked to
// brandID/modelID.
func (r *Repository) CompatibilitiesByVehicle(ctx context.Context, brandID, modelID uuid.UUID, filter CompatibilityFilter) ([]models.FilterCompatibility, error) {
	var rows []models.FilterCompatibility
	err := r.db.WithContext(ctx).
		Scopes(compatibilityScope(filter)).
		Where("brand_id = ? AND model_id = ?", brandID, modelID).
		Order("vehicle_variant ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UnlinkedCompatibilities returns compatibility rows missing a brand or
// model link.
func (r *Repository) UnlinkedCompatibilities(ctx context.Context, filter CompatibilityFilter) ([]models.FilterCompatibility, error) {
	var rows []models.FilterCompatibility
	err := r.db.WithContext(ctx).
		Scopes(compatibilityScope(filter)).
		Where("(brand_id IS NULL OR model_id IS NULL)").
		Order("vehicle_variant ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CompatibilitiesByNames returns the rows recorded for a brand/model name
// pair ordered by variant.
func (r *Repository) CompatibilitiesByNames(ctx context.Context, brandName, modelName string) ([]models.FilterCompatibility, error) {
	var rows []models.FilterCompatibility
	err := r.db.WithContext(ctx).
		Where("brand_name = ? AND model_name = ?", brandName, modelName).
		Order("vehicle_variant ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindFilterProducts returns active products of filterType whose reference
// equals reference, or starts with it when prefix is set.
func (r *Repository) FindFilterProducts(ctx context.Context, reference string, filterType enums.FilterType, prefix bool) ([]models.FilterProduct, error) {
	query := r.db.WithContext(ctx).
		Where("filter_type = ? AND is_active = ?", filterType, true)
	if prefix {
		query = query.Where(`reference LIKE ? ESCAPE '\'`, escapeLike(reference)+"%")
	} else {
		query = query.Where("reference = ?", reference)
	}

	var rows []models.FilterProduct
	err := query.Order("reference ASC").Order("id ASC").Limit(productLookupLimit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func yearScope(startCol, endCol string, year *int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if year == nil {
			return db
		}
		return db.
			Where("("+startCol+" IS NULL OR "+startCol+" <= ?)", *year).
			Where("("+endCol+" IS NULL OR "+endCol+" >= ?)", *year)
	}
}

func compatibilityScope(filter CompatibilityFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.EngineCode != "" {
			db = db.Where(`LOWER(engine_code) LIKE ? ESCAPE '\'`, containsPattern(filter.EngineCode))
		}
		if filter.VehicleModel != "" {
			db = db.Where(`LOWER(vehicle_model) LIKE ? ESCAPE '\'`, containsPattern(filter.VehicleModel))
		}
		return db.Scopes(yearScope("production_start", "production_end", filter.Year))
	}
}

func containsPattern(value string) string {
	return "%" + escapeLike(strings.ToLower(value)) + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}
