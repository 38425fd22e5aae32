package services

import (
	"testing"
	"time"

	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/config"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/models"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB points the package-global handle at a fresh in-memory
// database so each test runs against its own schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw handle: %v", err)
	}
	// A second pooled connection would see its own empty :memory: db.
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })
	return db
}

func strPtr(s string) *string { return &s }

func f64Ptr(f float64) *float64 { return &f }

func uintPtr(u uint) *uint { return &u }

func timePtr(t time.Time) *time.Time { return &t }

func create(t *testing.T, db *gorm.DB, v interface{}) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("seed %T: %v", v, err)
	}
}

// testDay is an arbitrary fixed service day used by intake tests.
func testDay(t *testing.T) time.Time {
	t.Helper()
	day, err := utils.ParseDay("2026-03-10")
	if err != nil {
		t.Fatalf("parse test day: %v", err)
	}
	return day
}

// fixture seeds one entity per taxonomy, the generic nutrients they map
// to, three foods with composition rows, population baselines and one
// health condition with a fiber effect.
type fixture struct {
	DB   *gorm.DB
	User models.User

	VitC    models.Vitamin
	Iron    models.Mineral
	Leucine models.AminoAcid
	Pectin  models.Fiber
	Oleic   models.FattyAcid

	NutVitC models.Nutrient
	NutFE   models.Nutrient
	NutLeu  models.Nutrient
	NutFib  models.Nutrient
	NutFAMS models.Nutrient

	Beef   models.Food
	Orange models.Food
	Oats   models.Food

	Diabetes models.HealthCondition
}

func seedFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	f := &fixture{DB: db}

	f.User = models.User{
		Email:    "an.nguyen@example.com",
		Password: "x",
		FullName: "An Nguyen",
		Sex:      strPtr("male"),
		Birthday: timePtr(time.Now().AddDate(-30, 0, -1)),
		HeightCm: f64Ptr(172),
		WeightKg: f64Ptr(70),
	}
	create(t, db, &f.User)

	f.VitC = models.Vitamin{Code: "VITC", Name: "Vitamin C", Unit: "mg", HomeDisplay: true}
	f.Iron = models.Mineral{Code: "MIN_FE", Name: "Iron", Unit: "mg", HomeDisplay: true}
	f.Leucine = models.AminoAcid{Code: "LEU", Name: "Leucine"}
	f.Pectin = models.Fiber{Code: "FIBTG", Name: "Dietary fiber", Unit: "g"}
	f.Oleic = models.FattyAcid{Code: "FAMS", Name: "Monounsaturated fat", Unit: "g"}
	create(t, db, &f.VitC)
	create(t, db, &f.Iron)
	create(t, db, &f.Leucine)
	create(t, db, &f.Pectin)
	create(t, db, &f.Oleic)

	f.NutVitC = models.Nutrient{NutrientCode: "VITC", Name: "Vitamin C", Unit: "mg"}
	f.NutFE = models.Nutrient{NutrientCode: "FE", Name: "Iron", Unit: "mg"}
	f.NutLeu = models.Nutrient{NutrientCode: "AMINO_LEU", Name: "Leucine", Unit: "mg"}
	f.NutFib = models.Nutrient{NutrientCode: "FIBTG", Name: "Dietary fiber", Unit: "g"}
	f.NutFAMS = models.Nutrient{NutrientCode: "FAMS", Name: "Monounsaturated fat", Unit: "g"}
	create(t, db, &f.NutVitC)
	create(t, db, &f.NutFE)
	create(t, db, &f.NutLeu)
	create(t, db, &f.NutFib)
	create(t, db, &f.NutFAMS)
	for _, code := range []struct{ code, name, unit string }{
		{"ENERC_KCAL", "Energy", "kcal"},
		{"PROCNT", "Protein", "g"},
		{"FAT", "Fat", "g"},
		{"CHOCDF", "Carbohydrate", "g"},
	} {
		create(t, db, &models.Nutrient{NutrientCode: code.code, Name: code.name, Unit: code.unit})
	}

	create(t, db, &models.NutrientMapping{NutrientID: f.NutVitC.ID, VitaminID: uintPtr(f.VitC.ID), Factor: 1})
	create(t, db, &models.NutrientMapping{NutrientID: f.NutFE.ID, MineralID: uintPtr(f.Iron.ID), Factor: 1})
	create(t, db, &models.NutrientMapping{NutrientID: f.NutLeu.ID, AminoAcidID: uintPtr(f.Leucine.ID), Factor: 1})
	create(t, db, &models.NutrientMapping{NutrientID: f.NutFib.ID, FiberID: uintPtr(f.Pectin.ID), Factor: 1})
	create(t, db, &models.NutrientMapping{NutrientID: f.NutFAMS.ID, FattyAcidID: uintPtr(f.Oleic.ID), Factor: 1})

	f.Beef = models.Food{Name: "Beef sirloin", Category: "meat"}
	f.Orange = models.Food{Name: "Orange", Category: "fruit"}
	f.Oats = models.Food{Name: "Rolled oats", Category: "grain"}
	create(t, db, &f.Beef)
	create(t, db, &f.Orange)
	create(t, db, &f.Oats)

	composition := []models.FoodNutrient{
		{FoodID: f.Beef.ID, NutrientID: f.NutFE.ID, AmountPer100g: 2},
		{FoodID: f.Beef.ID, NutrientID: nutrientID(t, db, "PROCNT"), AmountPer100g: 26},
		{FoodID: f.Beef.ID, NutrientID: nutrientID(t, db, "ENERC_KCAL"), AmountPer100g: 250},
		{FoodID: f.Beef.ID, NutrientID: nutrientID(t, db, "FAT"), AmountPer100g: 15},
		{FoodID: f.Orange.ID, NutrientID: f.NutVitC.ID, AmountPer100g: 50},
		{FoodID: f.Orange.ID, NutrientID: nutrientID(t, db, "ENERC_KCAL"), AmountPer100g: 47},
		{FoodID: f.Orange.ID, NutrientID: nutrientID(t, db, "CHOCDF"), AmountPer100g: 12},
		{FoodID: f.Oats.ID, NutrientID: f.NutFib.ID, AmountPer100g: 10},
	}
	for i := range composition {
		create(t, db, &composition[i])
	}

	baselines := []models.NutrientBaseline{
		{Taxonomy: "vitamin", EntityID: f.VitC.ID, Sex: "", AgeMin: 0, AgeMax: 200, Amount: 90, Unit: "mg"},
		{Taxonomy: "mineral", EntityID: f.Iron.ID, Sex: "", AgeMin: 0, AgeMax: 200, Amount: 18, Unit: "mg"},
		{Taxonomy: "mineral", EntityID: f.Iron.ID, Sex: "male", AgeMin: 0, AgeMax: 200, Amount: 8, Unit: "mg"},
		{Taxonomy: "amino_acid", EntityID: f.Leucine.ID, Sex: "", AgeMin: 0, AgeMax: 200, Amount: 39, Unit: "mg", PerKg: true},
		{Taxonomy: "fiber", EntityID: f.Pectin.ID, Sex: "", AgeMin: 0, AgeMax: 200, Amount: 25, Unit: "g"},
		{Taxonomy: "fatty_acid", EntityID: f.Oleic.ID, Sex: "", AgeMin: 0, AgeMax: 200, Amount: 20, Unit: "g"},
	}
	for i := range baselines {
		create(t, db, &baselines[i])
	}

	f.Diabetes = models.HealthCondition{Name: "Diabetes", NameVi: "Tieu duong"}
	create(t, db, &f.Diabetes)
	create(t, db, &models.ConditionNutrientEffect{
		ConditionID:       f.Diabetes.ID,
		NutrientID:        f.NutFib.ID,
		EffectType:        "increase",
		AdjustmentPercent: 40,
	})

	return f
}

func nutrientID(t *testing.T, db *gorm.DB, code string) uint {
	t.Helper()
	var n models.Nutrient
	if err := db.Where("nutrient_code = ?", code).First(&n).Error; err != nil {
		t.Fatalf("nutrient %s: %v", code, err)
	}
	return n.ID
}

func floatsClose(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-6
}
