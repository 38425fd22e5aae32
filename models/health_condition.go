package models

import (
	"time"

	"gorm.io/gorm"
)

type HealthCondition struct {
	gorm.Model
	Name   string `gorm:"size:100;not null"`
	NameVi string `gorm:"size:100"`
}

// UserHealthCondition rows with status "active" feed the requirement
// calculator; recovered rows are kept for history.
type UserHealthCondition struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null"`
	ConditionID uint   `gorm:"index;not null"`
	Status      string `gorm:"size:20;default:active"` // "active" | "recovered"
	DiagnosedAt time.Time
	RecoveredAt *time.Time
}

// ConditionNutrientEffect: an active condition shifts the target of a
// generic nutrient by a signed percentage. Effects from several active
// conditions on the same nutrient are additive, not compounded.
type ConditionNutrientEffect struct {
	gorm.Model
	ConditionID       uint    `gorm:"index;not null"`
	NutrientID        uint    `gorm:"index;not null"`
	EffectType        string  `gorm:"size:10"` // "increase" | "decrease"
	AdjustmentPercent float64 // signed
}
