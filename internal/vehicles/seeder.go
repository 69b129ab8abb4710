package vehicles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/angelmondragon/partsfinder-backend/pkg/db/models"
	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
	"github.com/angelmondragon/partsfinder-backend/pkg/logger"
	"github.com/angelmondragon/partsfinder-backend/pkg/slug"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// SeedRow is one entry of the brands reference file.
type SeedRow struct {
	Name        string      `json:"name"`
	Active      activeValue `json:"active"`
	VehicleType string      `json:"vehicleType"`
}

// activeValue accepts true/false as well as the 0/1 integers found in older
// exports.
type activeValue bool

func (a *activeValue) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch raw {
	case "true", "1", `"1"`, `"true"`:
		*a = true
	case "false", "0", "null", `"0"`, `"false"`, `""`:
		*a = false
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("invalid active value %s", raw)
		}
		*a = n != 0
	}
	return nil
}

// SeedResult summarises a seeding run.
type SeedResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Ignored int `json:"ignored"`
}

// Seeder loads the reference brands into an empty or partially seeded store.
type Seeder struct {
	repo *Repository
	tx   txRunner
	logg *logger.Logger
}

// NewSeeder builds a seeder. tx runs the inserts in one transaction.
func NewSeeder(repo *Repository, tx txRunner, logg *logger.Logger) (*Seeder, error) {
	if repo == nil {
		return nil, fmt.Errorf("vehicles repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Seeder{repo: repo, tx: tx, logg: logg}, nil
}

// SeedBrandsFile seeds brands from path. A missing file is not an error.
func (s *Seeder) SeedBrandsFile(ctx context.Context, path string) (SeedResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logg.Info(s.logg.WithField(ctx, "path", path), "seed.brands_file_missing")
			return SeedResult{}, nil
		}
		return SeedResult{}, fmt.Errorf("read brands file: %w", err)
	}
	var rows []SeedRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return SeedResult{}, fmt.Errorf("decode brands file %s: %w", path, err)
	}
	return s.SeedBrands(ctx, rows)
}

// SeedBrands creates every brand whose slug is not stored yet. Rows with an
// empty name or slug, and duplicates within rows, are ignored. Running it
// twice creates nothing the second time.
func (s *Seeder) SeedBrands(ctx context.Context, rows []SeedRow) (SeedResult, error) {
	var result SeedResult
	seen := make(map[string]struct{}, len(rows))
	candidates := make([]models.Brand, 0, len(rows))
	slugs := make([]string, 0, len(rows))

	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		brandSlug := slug.Make(name)
		if brandSlug == "" {
			result.Ignored++
			continue
		}
		if _, dup := seen[brandSlug]; dup {
			result.Ignored++
			continue
		}
		seen[brandSlug] = struct{}{}

		vehicleType, err := enums.ParseVehicleType(row.VehicleType)
		if err != nil {
			return SeedResult{}, fmt.Errorf("brand %q: %w", name, err)
		}
		candidates = append(candidates, models.Brand{
			ID:          uuid.New(),
			Name:        name,
			Slug:        brandSlug,
			IsActive:    bool(row.Active),
			VehicleType: vehicleType,
		})
		slugs = append(slugs, brandSlug)
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		existing, err := repo.ExistingBrandSlugs(ctx, slugs)
		if err != nil {
			return err
		}
		toCreate := make([]models.Brand, 0, len(candidates))
		for _, b := range candidates {
			if _, ok := existing[b.Slug]; ok {
				result.Skipped++
				continue
			}
			toCreate = append(toCreate, b)
		}
		if err := repo.CreateBrands(ctx, toCreate); err != nil {
			return err
		}
		result.Created = len(toCreate)
		return nil
	})
	if err != nil {
		return SeedResult{}, fmt.Errorf("seed brands: %w", err)
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"created": result.Created,
		"skipped": result.Skipped,
		"ignored": result.Ignored,
	}), "seed.brands_complete")
	return result, nil
}
