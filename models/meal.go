package models

import (
	"time"

	"gorm.io/gorm"
)

// MealEntry is one logged portion of a food. WeightG is grams; nutrient
// contribution scales linearly as amount_per_100g * weight_g / 100.
// The macro columns are a snapshot taken at logging time.
type MealEntry struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null"`
	FoodID    uint      `gorm:"index;not null"`
	MealType  string    `gorm:"size:20"` // "breakfast" | "lunch" | "dinner" | "snack"
	WeightG   float64   `gorm:"not null"`
	EntryDate time.Time `gorm:"index;not null"` // truncated to the service day

	Calories float64
	Protein  float64
	Fat      float64
	Carbs    float64
}
