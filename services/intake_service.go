package services

import (
	"fmt"
	"time"

	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/config"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/utils"

	"github.com/sirupsen/logrus"
)

// NutrientIntakeRow is one entity's consumption against its target for
// a day. TargetAmount nil means "not computable" (cold cache or missing
// profile); 0 means a genuinely zero target. The two must never be
// conflated.
type NutrientIntakeRow struct {
	NutrientType         string   `json:"nutrient_type"`
	NutrientID           uint     `json:"nutrient_id"`
	NutrientCode         string   `json:"nutrient_code"`
	NutrientName         string   `json:"nutrient_name"`
	CurrentAmount        float64  `json:"current_amount"`
	TargetAmount         *float64 `json:"target_amount"`
	Unit                 string   `json:"unit"`
	Percentage           float64  `json:"percentage"`
	OriginalTargetAmount *float64 `json:"original_target_amount,omitempty"`
	AdjustmentPercent    float64  `json:"adjustment_percent"`
	HasAdjustment        bool     `json:"has_adjustment"`
}

type intakeScanRow struct {
	NutrientID    uint
	NutrientCode  string
	NutrientName  string
	CurrentAmount float64
	BaseTarget    *float64
	Multiplier    *float64
	TargetAmount  *float64
	Unit          string
}

// taxonomyIntake aggregates one taxonomy for one user-day. The query
// starts from the taxonomy table and LEFT JOINs outward so every entity
// produces a row, zero consumption included.
func taxonomyIntake(userID uint, day time.Time, tax *TaxonomyInfo) ([]intakeScanRow, error) {
	unitExpr := "t.unit"
	groupUnit := ", t.unit"
	if tax.DefaultUnit != "" {
		unitExpr = "'" + tax.DefaultUnit + "'"
		groupUnit = ""
	}

	var rows []intakeScanRow
	err := config.DB.Table(tax.Table+" t").
		Select(fmt.Sprintf(`t.id AS nutrient_id, t.code AS nutrient_code, t.name AS nutrient_name,
			COALESCE(SUM(fn.amount_per_100g * me.weight_g / 100.0), 0) AS current_amount,
			ur.base AS base_target, ur.multiplier AS multiplier, ur.recommended AS target_amount,
			%s AS unit`, unitExpr)).
		Joins(fmt.Sprintf("LEFT JOIN %s ur ON ur.%s = t.id AND ur.user_id = ? AND ur.deleted_at IS NULL", tax.RequirementTable, tax.RequirementFK), userID).
		Joins("LEFT JOIN nutrients n ON UPPER(n.nutrient_code) = " + tax.codeMatchExpr("t.code") + " AND n.deleted_at IS NULL").
		Joins("LEFT JOIN food_nutrients fn ON fn.nutrient_id = n.id AND fn.deleted_at IS NULL").
		Joins("LEFT JOIN meal_entries me ON me.food_id = fn.food_id AND me.user_id = ? AND me.entry_date = ? AND me.deleted_at IS NULL", userID, day).
		Where("t.deleted_at IS NULL").
		Group("t.id, t.code, t.name, ur.base, ur.multiplier, ur.recommended" + groupUnit).
		Order("t.name").
		Scan(&rows).Error
	return rows, err
}

// manualAdditions returns the summed manual-log amounts for the day,
// keyed "type:id" so they can be merged onto aggregator rows.
func manualAdditions(userID uint, day time.Time) (map[string]float64, error) {
	var rows []struct {
		NutrientType string
		NutrientID   uint
		TotalAmount  float64
	}
	err := config.DB.Table("user_nutrient_manual_logs").
		Select("nutrient_type, nutrient_id, SUM(amount) AS total_amount").
		Where("user_id = ? AND log_date = ? AND deleted_at IS NULL", userID, day).
		Group("nutrient_type, nutrient_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	m := make(map[string]float64, len(rows))
	for _, r := range rows {
		m[fmt.Sprintf("%s:%d", r.NutrientType, r.NutrientID)] = r.TotalAmount
	}
	return m, nil
}

// CalculateDailyIntake produces the flat five-taxonomy result set for a
// user-day: meal consumption plus manual-log additions against cached
// targets. Condition adjustments are already baked into the cached
// multiplier; this only surfaces them, it never applies them again.
// It is a pure read; calling it repeatedly returns identical results.
func CalculateDailyIntake(userID uint, day time.Time) ([]NutrientIntakeRow, error) {
	manual, err := manualAdditions(userID, day)
	if err != nil {
		return nil, err
	}

	var out []NutrientIntakeRow
	for i := range Taxonomies {
		tax := &Taxonomies[i]
		rows, err := taxonomyIntake(userID, day, tax)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			row := NutrientIntakeRow{
				NutrientType:  tax.Type,
				NutrientID:    r.NutrientID,
				NutrientCode:  r.NutrientCode,
				NutrientName:  r.NutrientName,
				CurrentAmount: r.CurrentAmount + manual[fmt.Sprintf("%s:%d", tax.Type, r.NutrientID)],
				TargetAmount:  r.TargetAmount,
				Unit:          r.Unit,
			}

			if r.Multiplier != nil && *r.Multiplier != 1 && r.BaseTarget != nil {
				row.OriginalTargetAmount = r.BaseTarget
				row.AdjustmentPercent = (*r.Multiplier - 1) * 100
				row.HasAdjustment = true
			}
			if row.TargetAmount != nil && *row.TargetAmount > 0 {
				row.Percentage = row.CurrentAmount / *row.TargetAmount * 100
			}
			out = append(out, row)
		}
	}
	return out, nil
}

// NutrientSourceRow attributes one food's contribution to one nutrient
// entity for the breakdown view.
type NutrientSourceRow struct {
	NutrientType      string  `json:"nutrient_type"`
	NutrientID        uint    `json:"nutrient_id"`
	Code              string  `json:"code"`
	Name              string  `json:"name"`
	Unit              string  `json:"unit"`
	FoodName          string  `json:"food_name"`
	MealType          string  `json:"meal_type"`
	WeightG           float64 `json:"weight_g"`
	ContributedAmount float64 `json:"contributed_amount"`
}

// DailyIntakeBreakdown lists which foods contributed how much to each
// nutrient entity on the day, across all five taxonomies.
func DailyIntakeBreakdown(userID uint, day time.Time) ([]NutrientSourceRow, error) {
	var out []NutrientSourceRow
	for i := range Taxonomies {
		tax := &Taxonomies[i]
		unitExpr := "t.unit"
		if tax.DefaultUnit != "" {
			unitExpr = "'" + tax.DefaultUnit + "'"
		}
		var rows []NutrientSourceRow
		err := config.DB.Table(tax.Table+" t").
			Select(fmt.Sprintf(`t.id AS nutrient_id, t.code, t.name, %s AS unit,
				f.name AS food_name, me.meal_type, me.weight_g,
				fn.amount_per_100g * me.weight_g / 100.0 AS contributed_amount`, unitExpr)).
			Joins("JOIN nutrients n ON UPPER(n.nutrient_code) = "+tax.codeMatchExpr("t.code")+" AND n.deleted_at IS NULL").
			Joins("JOIN food_nutrients fn ON fn.nutrient_id = n.id AND fn.amount_per_100g > 0 AND fn.deleted_at IS NULL").
			Joins("JOIN meal_entries me ON me.food_id = fn.food_id AND me.user_id = ? AND me.entry_date = ? AND me.deleted_at IS NULL", userID, day).
			Joins("JOIN foods f ON f.id = me.food_id").
			Where("t.deleted_at IS NULL").
			Order("t.code, contributed_amount DESC").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for j := range rows {
			rows[j].NutrientType = tax.Type
		}
		out = append(out, rows...)
	}
	return out, nil
}

// ResolveDay turns an optional YYYY-MM-DD query value into a service
// day, defaulting to today.
func ResolveDay(raw string) (time.Time, error) {
	if raw == "" {
		return utils.ServiceDate(), nil
	}
	day, err := utils.ParseDay(raw)
	if err != nil {
		logrus.WithField("date", raw).Warn("invalid date parameter")
		return time.Time{}, err
	}
	return day, nil
}
