package compatibility

import (
	"fmt"
	"io"
	"testing"

	"github.com/angelmondragon/partsfinder-backend/internal/matching"
	"github.com/angelmondragon/partsfinder-backend/pkg/db/models"
	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
	"github.com/angelmondragon/partsfinder-backend/pkg/logger"
	"github.com/angelmondragon/partsfinder-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("failed to access sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := conn.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return conn
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "compatibility-test", Output: io.Discard})
}

func newTestMatcher() *matching.Matcher {
	return matching.New(matching.DefaultOptions())
}

type catalog struct {
	t  *testing.T
	db *gorm.DB
}

func (c catalog) brand(name, slug string) models.Brand {
	c.t.Helper()
	b := models.Brand{ID: uuid.New(), Name: name, Slug: slug, IsActive: true, VehicleType: enums.VehicleTypeCar}
	if err := c.db.Create(&b).Error; err != nil {
		c.t.Fatalf("create brand: %v", err)
	}
	return b
}

func (c catalog) model(brand models.Brand, name, slug string) models.VehicleModel {
	c.t.Helper()
	id := brand.ID
	m := models.VehicleModel{ID: uuid.New(), Name: name, Slug: slug, BrandID: &id, VehicleType: enums.VehicleTypeCar}
	if err := c.db.Create(&m).Error; err != nil {
		c.t.Fatalf("create model: %v", err)
	}
	return m
}

func (c catalog) battery(p models.BatteryProduct) models.BatteryProduct {
	c.t.Helper()
	p.ID = uuid.New()
	if p.Name == "" {
		p.Name = "Battery " + p.Reference
	}
	if err := c.db.Create(&p).Error; err != nil {
		c.t.Fatalf("create battery: %v", err)
	}
	return p
}

func (c catalog) light(p models.LightsProduct) models.LightsProduct {
	c.t.Helper()
	p.ID = uuid.New()
	if p.Name == "" {
		p.Name = "Bulb " + p.Reference
	}
	if err := c.db.Create(&p).Error; err != nil {
		c.t.Fatalf("create light: %v", err)
	}
	return p
}

func (c catalog) wiper(p models.WipersProduct) models.WipersProduct {
	c.t.Helper()
	p.ID = uuid.New()
	if p.Name == "" {
		p.Name = "Wiper " + p.Reference
	}
	if err := c.db.Create(&p).Error; err != nil {
		c.t.Fatalf("create wiper: %v", err)
	}
	return p
}

func (c catalog) filter(ft enums.FilterType, reference string, active bool) models.FilterProduct {
	c.t.Helper()
	p := models.FilterProduct{
		ID:           uuid.New(),
		Manufacturer: "PURFLUX",
		FilterType:   ft,
		Reference:    reference,
		FullName:     "Filter " + reference,
		Slug:         "filter-" + reference,
		IsActive:     active,
	}
	if err := c.db.Create(&p).Error; err != nil {
		c.t.Fatalf("create filter product: %v", err)
	}
	return p
}

func (c catalog) compatibility(row models.FilterCompatibility) models.FilterCompatibility {
	c.t.Helper()
	row.ID = uuid.New()
	if err := c.db.Create(&row).Error; err != nil {
		c.t.Fatalf("create compatibility: %v", err)
	}
	return row
}

func motorisations(t *testing.T, entries ...models.BatteryMotorisation) types.JSONB {
	t.Helper()
	doc, err := types.NewJSONB(entries)
	if err != nil {
		t.Fatalf("encode motorisations: %v", err)
	}
	return doc
}

func filtersDoc(t *testing.T, refs map[string][]models.FilterRef) types.JSONB {
	t.Helper()
	doc, err := types.NewJSONB(refs)
	if err != nil {
		t.Fatalf("encode filters: %v", err)
	}
	return doc
}

func uuidPtr(id uuid.UUID) *uuid.UUID { return &id }

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func newTestResolvers(t *testing.T, conn *gorm.DB) map[enums.Category]Resolver {
	t.Helper()
	resolvers, err := NewResolvers(NewRepository(conn), newTestMatcher(), testLogger())
	if err != nil {
		t.Fatalf("new resolvers: %v", err)
	}
	out := make(map[enums.Category]Resolver, len(resolvers))
	for _, r := range resolvers {
		out[r.Category()] = r
	}
	return out
}

func references(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Reference())
	}
	return out
}
