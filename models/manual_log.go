package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserNutrientManualLog accumulates non-meal nutrient intake (AI scans,
// chatbot-approved estimates, direct manual entry). One row per
// (user, day, type, code); repeated contributions add to Amount via an
// atomic upsert, never overwrite. Rows are a historical record and are
// never deleted.
type UserNutrientManualLog struct {
	gorm.Model
	UserID       uint      `gorm:"index:ux_manual_nutrient,unique;not null"`
	LogDate      time.Time `gorm:"index:ux_manual_nutrient,unique;not null"`
	NutrientType string    `gorm:"size:20;index:ux_manual_nutrient,unique;not null"`
	NutrientCode string    `gorm:"size:50;index:ux_manual_nutrient,unique;not null"`

	NutrientID   uint
	NutrientName string `gorm:"size:100"`
	Unit         string `gorm:"size:20"`
	Amount       float64
	Source       string         `gorm:"size:20"` // "manual" | "scan" | "chatbot"
	SourceRef    string         `gorm:"size:64"`
	Metadata     datatypes.JSON // food name, confidence, source
}
