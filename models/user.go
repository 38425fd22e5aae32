package models

import (
	"time"

	"gorm.io/gorm"
)

// User biometrics are pointers so the requirement calculator can tell
// "never provided" apart from a literal zero.
type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	FullName string

	Sex            *string `gorm:"size:10"` // "male" | "female"
	Birthday       *time.Time
	HeightCm       *float64
	WeightKg       *float64
	ActivityFactor *float64 // 1.2 sedentary … 1.9 athlete
	Goal           string   `gorm:"size:30"` // "lose" | "maintain" | "gain"

	Onboarded bool
}
