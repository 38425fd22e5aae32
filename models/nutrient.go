package models

import "gorm.io/gorm"

// Nutrient is the generic lab-measured nutrient row. Food composition
// references these; taxonomy entities are linked via NutrientMapping.
type Nutrient struct {
	gorm.Model
	NutrientCode string `gorm:"size:50;uniqueIndex;not null"` // e.g. VITC, FE, AMINO_LEU
	Name         string `gorm:"size:100;not null"`
	Unit         string `gorm:"size:20"`
	ImageURL     string
	Benefits     string `gorm:"type:text"`
}

type Food struct {
	gorm.Model
	Name     string `gorm:"size:200;not null"`
	Category string `gorm:"size:50"`
}

// FoodNutrient holds composition per 100g of the food. The column name
// is pinned because the default naming would render it amount_per100g
// and every aggregation query references it in raw SQL.
type FoodNutrient struct {
	gorm.Model
	FoodID        uint    `gorm:"index:ux_food_nutrient,unique;not null"`
	NutrientID    uint    `gorm:"index:ux_food_nutrient,unique;not null"`
	AmountPer100g float64 `gorm:"column:amount_per_100g;not null"`
}

// NutrientMapping links one generic nutrient to at most one taxonomy
// entity. At most one of the five foreign keys is set per row; Factor
// is a multiplicative unit/potency conversion, default 1.
type NutrientMapping struct {
	gorm.Model
	NutrientID  uint `gorm:"uniqueIndex;not null"`
	VitaminID   *uint
	MineralID   *uint
	AminoAcidID *uint
	FiberID     *uint
	FattyAcidID *uint
	Factor      float64 `gorm:"default:1"`
}
