package models

import (
	"time"

	"gorm.io/gorm"
)

// DailySummary holds per-user-per-day macro totals plus water, tracked
// outside the typed taxonomy system. Totals only ever grow within a
// day, through additive upserts.
type DailySummary struct {
	gorm.Model
	UserID uint      `gorm:"index:ux_daily_summary,unique;not null"`
	Date   time.Time `gorm:"index:ux_daily_summary,unique;not null"`

	TotalCalories float64
	TotalProtein  float64
	TotalFat      float64
	TotalCarbs    float64
	TotalWaterMl  float64
}
