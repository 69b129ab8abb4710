package vehicles

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/angelmondragon/partsfinder-backend/pkg/db"
	"github.com/angelmondragon/partsfinder-backend/pkg/db/models"
	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
	"github.com/angelmondragon/partsfinder-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSeeder(t *testing.T) (*Seeder, *Repository) {
	t.Helper()
	conn := openTestDB(t)
	repo := NewRepository(conn)
	logg := logger.New(logger.Options{ServiceName: "seed-test", Output: io.Discard})
	seeder, err := NewSeeder(repo, db.NewFromGorm(conn), logg)
	require.NoError(t, err)
	return seeder, repo
}

func TestSeedBrandsIsIdempotent(t *testing.T) {
	seeder, repo := newTestSeeder(t)
	ctx := context.Background()

	rows := []SeedRow{
		{Name: "CITROËN", Active: true},
		{Name: "Citroen"},
		{Name: "Peugeot & Talbot", Active: true},
		{Name: "Ducati", Active: true, VehicleType: "moto"},
		{Name: "   "},
	}

	first, err := seeder.SeedBrands(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Created: 3, Skipped: 0, Ignored: 2}, first)

	second, err := seeder.SeedBrands(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Created: 0, Skipped: 3, Ignored: 2}, second)

	brands, err := repo.ListBrands(ctx, nil, false)
	require.NoError(t, err)
	require.Len(t, brands, 3)

	bySlug := map[string]models.Brand{}
	for _, b := range brands {
		bySlug[b.Slug] = b
	}
	assert.Equal(t, "CITROËN", bySlug["citroen"].Name)
	assert.Contains(t, bySlug, "peugeot-and-talbot")
	assert.Equal(t, enums.VehicleTypeMoto, bySlug["ducati"].VehicleType)
	assert.True(t, bySlug["ducati"].IsActive)
}

func TestSeedBrandsRejectsUnknownVehicleType(t *testing.T) {
	seeder, repo := newTestSeeder(t)
	ctx := context.Background()

	_, err := seeder.SeedBrands(ctx, []SeedRow{
		{Name: "Abarth", Active: true},
		{Name: "Boeing", VehicleType: "plane"},
	})
	require.Error(t, err)

	brands, err := repo.ListBrands(ctx, nil, false)
	require.NoError(t, err)
	assert.Empty(t, brands, "nothing is written when the file is invalid")
}

func TestSeedBrandsFile(t *testing.T) {
	seeder, repo := newTestSeeder(t)
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "brands.json")
	payload := `[{"name": "Abarth", "active": 1}, {"name": "Alpine", "active": 0}, {"name": "Škoda", "active": true}]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	result, err := seeder.SeedBrandsFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Created)

	active, err := repo.ListBrands(ctx, nil, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "abarth", active[0].Slug)
	assert.Equal(t, "skoda", active[1].Slug)

	missing, err := seeder.SeedBrandsFile(ctx, filepath.Join(dir, "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, SeedResult{}, missing)
}

func TestSeedShippedBrandsFile(t *testing.T) {
	seeder, repo := newTestSeeder(t)
	ctx := context.Background()

	result, err := seeder.SeedBrandsFile(ctx, filepath.Join("..", "..", "data", "brands.json"))
	require.NoError(t, err)
	assert.Equal(t, 23, result.Created)

	moto := enums.VehicleTypeMoto
	bikes, err := repo.ListBrands(ctx, &moto, true)
	require.NoError(t, err)
	assert.Len(t, bikes, 4)

	citroen, err := repo.FindBrandBySlug(ctx, "citroen")
	require.NoError(t, err)
	assert.Equal(t, "Citroën", citroen.Name)
}
