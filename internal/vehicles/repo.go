package vehicles

import (
	"context"

	"github.com/angelmondragon/partsfinder-backend/pkg/db/models"
	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes brand and vehicle model persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a vehicles repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindBrandBySlug loads a brand by its unique slug.
func (r *Repository) FindBrandBySlug(ctx context.Context, slug string) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

// FindModel loads the model with slug that belongs to brandID.
func (r *Repository) FindModel(ctx context.Context, brandID uuid.UUID, slug string) (*models.VehicleModel, error) {
	var model models.VehicleModel
	err := r.db.WithContext(ctx).
		Where("brand_id = ? AND slug = ?", brandID, slug).
		First(&model).Error
	if err != nil {
		return nil, err
	}
	return &model, nil
}

// ListBrands returns brands ordered by name. A nil vehicleType lists every type.
func (r *Repository) ListBrands(ctx context.Context, vehicleType *enums.VehicleType, activeOnly bool) ([]models.Brand, error) {
	query := r.db.WithContext(ctx).Model(&models.Brand{})
	if vehicleType != nil {
		query = query.Where("vehicle_type = ?", *vehicleType)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var rows []models.Brand
	if err := query.Order("name ASC").Order("slug ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListModelsByBrand returns the brand's models ordered by name.
func (r *Repository) ListModelsByBrand(ctx context.Context, brandID uuid.UUID) ([]models.VehicleModel, error) {
	var rows []models.VehicleModel
	err := r.db.WithContext(ctx).
		Where("brand_id = ?", brandID).
		Order("name ASC").Order("slug ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListBrandedModels returns every model linked to a brand for a vehicle type.
func (r *Repository) ListBrandedModels(ctx context.Context, vehicleType enums.VehicleType) ([]models.VehicleModel, error) {
	var rows []models.VehicleModel
	err := r.db.WithContext(ctx).
		Where("brand_id IS NOT NULL AND vehicle_type = ?", vehicleType).
		Order("slug ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListUnbrandedModels returns legacy models that still lack a brand.
func (r *Repository) ListUnbrandedModels(ctx context.Context, vehicleType enums.VehicleType) ([]models.VehicleModel, error) {
	var rows []models.VehicleModel
	err := r.db.WithContext(ctx).
		Where("brand_id IS NULL AND vehicle_type = ?", vehicleType).
		Order("slug ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AssignBrand links an unbranded model to brandID. It reports false when the
// model was linked concurrently or no longer exists.
func (r *Repository) AssignBrand(ctx context.Context, modelID, brandID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.VehicleModel{}).
		Where("id = ? AND brand_id IS NULL", modelID).
		Update("brand_id", brandID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ExistingBrandSlugs returns the subset of slugs already stored.
func (r *Repository) ExistingBrandSlugs(ctx context.Context, slugs []string) (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(slugs))
	if len(slugs) == 0 {
		return out, nil
	}
	var found []string
	err := r.db.WithContext(ctx).
		Model(&models.Brand{}).
		Where("slug IN ?", slugs).
		Pluck("slug", &found).Error
	if err != nil {
		return nil, err
	}
	for _, s := range found {
		out[s] = struct{}{}
	}
	return out, nil
}

// CreateBrands inserts the provided brands.
func (r *Repository) CreateBrands(ctx context.Context, brands []models.Brand) error {
	if len(brands) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&brands).Error
}
