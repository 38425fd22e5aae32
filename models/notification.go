package models

import (
	"time"

	"gorm.io/gorm"
)

// Date is the service day the alert evaluates, not the insertion
// moment; deduplication keys on it so host timezone never matters.
type UserNutrientNotification struct {
	gorm.Model
	UserID           uint      `gorm:"index;not null"`
	Date             time.Time `gorm:"index"`
	NutrientType     string    `gorm:"size:20"`
	NutrientID       uint
	NotificationType string `gorm:"size:30"` // "deficiency"
	Message          string `gorm:"type:text"`
	Severity         string `gorm:"size:10"` // "warning" | "severe"
	IsRead           bool
}

// UserNutrientTracking is the per-day snapshot refreshed after meal and
// manual-intake operations. TargetAmount nil means the requirement was
// not computable when the snapshot was taken.
type UserNutrientTracking struct {
	gorm.Model
	UserID       uint      `gorm:"index:ux_nutrient_tracking,unique;not null"`
	Date         time.Time `gorm:"index:ux_nutrient_tracking,unique;not null"`
	NutrientType string    `gorm:"size:20;index:ux_nutrient_tracking,unique;not null"`
	NutrientID   uint      `gorm:"index:ux_nutrient_tracking,unique;not null"`

	TargetAmount  *float64
	CurrentAmount float64
	Unit          string `gorm:"size:20"`
}
