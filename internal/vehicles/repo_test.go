package vehicles

import (
	"context"
	"testing"

	"github.com/angelmondragon/partsfinder-backend/pkg/db"
	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryLookups(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	abarth := mustCreateBrand(t, conn, "Abarth", "abarth", enums.VehicleTypeCar, true)
	ducati := mustCreateBrand(t, conn, "Ducati", "ducati", enums.VehicleTypeMoto, true)
	mustCreateBrand(t, conn, "Talbot", "talbot", enums.VehicleTypeCar, false)
	spider := mustCreateModel(t, conn, &abarth, "124 Spider", "124-spider")
	mustCreateModel(t, conn, &abarth, "500", "500")
	mustCreateModel(t, conn, &ducati, "Monster", "monster")
	legacy := mustCreateModel(t, conn, nil, "CITRON C4", "citron-c4")

	brand, err := repo.FindBrandBySlug(ctx, "abarth")
	require.NoError(t, err)
	assert.Equal(t, abarth.ID, brand.ID)

	_, err = repo.FindBrandBySlug(ctx, "lada")
	assert.True(t, db.IsNotFound(err))

	model, err := repo.FindModel(ctx, abarth.ID, "124-spider")
	require.NoError(t, err)
	assert.Equal(t, spider.ID, model.ID)

	_, err = repo.FindModel(ctx, ducati.ID, "124-spider")
	assert.True(t, db.IsNotFound(err))

	car := enums.VehicleTypeCar
	brands, err := repo.ListBrands(ctx, &car, true)
	require.NoError(t, err)
	require.Len(t, brands, 1)
	assert.Equal(t, "abarth", brands[0].Slug)

	all, err := repo.ListBrands(ctx, nil, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	abarthModels, err := repo.ListModelsByBrand(ctx, abarth.ID)
	require.NoError(t, err)
	require.Len(t, abarthModels, 2)
	assert.Equal(t, "124 Spider", abarthModels[0].Name)

	unbranded, err := repo.ListUnbrandedModels(ctx, enums.VehicleTypeCar)
	require.NoError(t, err)
	require.Len(t, unbranded, 1)
	assert.Equal(t, legacy.ID, unbranded[0].ID)

	branded, err := repo.ListBrandedModels(ctx, enums.VehicleTypeCar)
	require.NoError(t, err)
	assert.Len(t, branded, 2)
}

func TestRepositoryAssignBrandOnlyOnce(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	citroen := mustCreateBrand(t, conn, "Citroën", "citroen", enums.VehicleTypeCar, true)
	peugeot := mustCreateBrand(t, conn, "Peugeot", "peugeot", enums.VehicleTypeCar, true)
	legacy := mustCreateModel(t, conn, nil, "CITRON C4", "citron-c4")

	ok, err := repo.AssignBrand(ctx, legacy.ID, citroen.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.AssignBrand(ctx, legacy.ID, peugeot.ID)
	require.NoError(t, err)
	assert.False(t, ok, "an already linked model must not be relinked")

	unbranded, err := repo.ListUnbrandedModels(ctx, enums.VehicleTypeCar)
	require.NoError(t, err)
	assert.Empty(t, unbranded)
}

func TestRepositoryExistingBrandSlugs(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	mustCreateBrand(t, conn, "Abarth", "abarth", enums.VehicleTypeCar, true)

	existing, err := repo.ExistingBrandSlugs(ctx, []string{"abarth", "alpine"})
	require.NoError(t, err)
	assert.Contains(t, existing, "abarth")
	assert.NotContains(t, existing, "alpine")

	empty, err := repo.ExistingBrandSlugs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
