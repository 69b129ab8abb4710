package vehicles

import (
	"fmt"
	"testing"

	"github.com/angelmondragon/partsfinder-backend/pkg/db/models"
	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
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

	if err := conn.AutoMigrate(&models.Brand{}, &models.VehicleModel{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return conn
}

func mustCreateBrand(t *testing.T, tx *gorm.DB, name, slug string, vehicleType enums.VehicleType, active bool) models.Brand {
	t.Helper()
	brand := models.Brand{ID: uuid.New(), Name: name, Slug: slug, IsActive: active, VehicleType: vehicleType}
	if err := tx.Create(&brand).Error; err != nil {
		t.Fatalf("create brand: %v", err)
	}
	return brand
}

func mustCreateModel(t *testing.T, tx *gorm.DB, brand *models.Brand, name, slug string) models.VehicleModel {
	t.Helper()
	model := models.VehicleModel{ID: uuid.New(), Name: name, Slug: slug, VehicleType: enums.VehicleTypeCar}
	if brand != nil {
		id := brand.ID
		model.BrandID = &id
		model.VehicleType = brand.VehicleType
	}
	if err := tx.Create(&model).Error; err != nil {
		t.Fatalf("create model: %v", err)
	}
	return model
}
