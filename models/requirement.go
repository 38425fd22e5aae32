package models

import "gorm.io/gorm"

// NutrientBaseline is the population RDA before per-user adjustment,
// bracketed by sex and age. Sex "" matches anyone; sex-specific rows
// win over generic ones. PerKg baselines scale by body weight.
type NutrientBaseline struct {
	gorm.Model
	Taxonomy string  `gorm:"size:20;index:idx_baseline;not null"` // "vitamin" | "mineral" | ...
	EntityID uint    `gorm:"index:idx_baseline;not null"`
	Sex      string  `gorm:"size:10;index:idx_baseline"` // "" = any
	AgeMin   int     `gorm:"default:0"`
	AgeMax   int     `gorm:"default:200"`
	Amount   float64 `gorm:"not null"`
	Unit     string  `gorm:"size:20"`
	PerKg    bool
}

// The five per-user requirement caches. Recommended = Base * Multiplier
// at the time of the last refresh; the source of truth is the compute
// function, so rows are safe to drop and lazily rebuild.

type UserVitaminRequirement struct {
	gorm.Model
	UserID      uint `gorm:"index:ux_user_vitamin_req,unique;not null"`
	VitaminID   uint `gorm:"index:ux_user_vitamin_req,unique;not null"`
	Base        float64
	Multiplier  float64
	Recommended float64
	Unit        string `gorm:"size:20"`
}

type UserMineralRequirement struct {
	gorm.Model
	UserID      uint `gorm:"index:ux_user_mineral_req,unique;not null"`
	MineralID   uint `gorm:"index:ux_user_mineral_req,unique;not null"`
	Base        float64
	Multiplier  float64
	Recommended float64
	Unit        string `gorm:"size:20"`
}

type UserAminoRequirement struct {
	gorm.Model
	UserID      uint `gorm:"index:ux_user_amino_req,unique;not null"`
	AminoAcidID uint `gorm:"index:ux_user_amino_req,unique;not null"`
	Base        float64
	Multiplier  float64
	Recommended float64
	Unit        string `gorm:"size:20"`
}

type UserFiberRequirement struct {
	gorm.Model
	UserID      uint `gorm:"index:ux_user_fiber_req,unique;not null"`
	FiberID     uint `gorm:"index:ux_user_fiber_req,unique;not null"`
	Base        float64
	Multiplier  float64
	Recommended float64
	Unit        string `gorm:"size:20"`
}

type UserFattyAcidRequirement struct {
	gorm.Model
	UserID      uint `gorm:"index:ux_user_fatty_req,unique;not null"`
	FattyAcidID uint `gorm:"index:ux_user_fatty_req,unique;not null"`
	Base        float64
	Multiplier  float64
	Recommended float64
	Unit        string `gorm:"size:20"`
}
