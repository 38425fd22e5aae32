package services

import (
	"errors"
	"strings"
	"time"

	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/config"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/models"

	"gorm.io/gorm"
)

var mealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
}

// macroSnapshot reads the food's macro composition and scales it to the
// consumed weight. Missing composition rows simply contribute zero.
func macroSnapshot(foodID uint, weightG float64) (map[string]float64, error) {
	var rows []struct {
		NutrientCode string
		Amount       float64
	}
	err := config.DB.Table("food_nutrients fn").
		Select("n.nutrient_code, fn.amount_per_100g AS amount").
		Joins("JOIN nutrients n ON n.id = fn.nutrient_id").
		Where("fn.food_id = ? AND fn.deleted_at IS NULL", foodID).
		Where("n.nutrient_code IN ?", []string{"ENERC_KCAL", "PROCNT", "FAT", "CHOCDF"}).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	snapshot := map[string]float64{}
	for _, r := range rows {
		snapshot[r.NutrientCode] = r.Amount * weightG / 100.0
	}
	return snapshot, nil
}

// LogMealEntry records one consumed portion. The aggregator reads these
// rows; the macro columns are a snapshot for list views.
func LogMealEntry(userID, foodID uint, mealType string, weightG float64, day time.Time) (*models.MealEntry, error) {
	mealType = strings.ToLower(strings.TrimSpace(mealType))
	if !mealTypes[mealType] {
		return nil, errors.New("unknown meal type")
	}
	if weightG <= 0 {
		return nil, errors.New("weight must be positive")
	}

	var food models.Food
	if err := config.DB.First(&food, foodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("food not found")
		}
		return nil, err
	}

	macros, err := macroSnapshot(foodID, weightG)
	if err != nil {
		return nil, err
	}

	entry := &models.MealEntry{
		UserID:    userID,
		FoodID:    foodID,
		MealType:  mealType,
		WeightG:   weightG,
		EntryDate: day,
		Calories:  macros["ENERC_KCAL"],
		Protein:   macros["PROCNT"],
		Fat:       macros["FAT"],
		Carbs:     macros["CHOCDF"],
	}
	if err := config.DB.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func ListMealEntriesByDate(userID uint, day time.Time) ([]models.MealEntry, error) {
	var entries []models.MealEntry
	err := config.DB.
		Where("user_id = ? AND entry_date = ?", userID, day).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func DeleteMealEntry(userID, entryID uint) error {
	result := config.DB.
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&models.MealEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
