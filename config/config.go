package config

import (
	"fmt"
	"os"

	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/models"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("no .env file found, relying on environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		logrus.Fatalf("AutoMigrate failed: %v", err)
	}
}

// Migrate is separate from InitDB so tests can run it against their
// own database handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Vitamin{},
		&models.Mineral{},
		&models.AminoAcid{},
		&models.Fiber{},
		&models.FattyAcid{},
		&models.Nutrient{},
		&models.Food{},
		&models.FoodNutrient{},
		&models.NutrientMapping{},
		&models.HealthCondition{},
		&models.UserHealthCondition{},
		&models.ConditionNutrientEffect{},
		&models.NutrientBaseline{},
		&models.UserVitaminRequirement{},
		&models.UserMineralRequirement{},
		&models.UserAminoRequirement{},
		&models.UserFiberRequirement{},
		&models.UserFattyAcidRequirement{},
		&models.MealEntry{},
		&models.UserNutrientManualLog{},
		&models.DailySummary{},
		&models.UserNutrientNotification{},
		&models.UserNutrientTracking{},
		&models.UserDevice{},
	)
}
