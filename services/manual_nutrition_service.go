package services

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/config"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Macro codes never touch the taxonomy log; they roll up into
// DailySummary instead.
var macroCodes = map[string]string{
	"ENERC_KCAL": "calories",
	"PROCNT":     "protein",
	"FAT":        "fat",
	"CHOCDF":     "carbs",
}

// Contribution is one nutrient amount arriving from a non-meal source.
// AI payloads are inconsistent about field names, so code and amount
// each accept the variants seen in the wild.
type Contribution struct {
	NutrientID    uint     `json:"nutrient_id"`
	Code          string   `json:"code"`
	NutrientCode  string   `json:"nutrient_code"`
	Amount        float64  `json:"amount"`
	CurrentAmount *float64 `json:"current_amount"`
	Value         *float64 `json:"value"`
	Unit          string   `json:"unit"`
	FoodName      string   `json:"food_name"`
	Confidence    *float64 `json:"confidence"`
}

func (c *Contribution) code() string {
	raw := c.NutrientCode
	if raw == "" {
		raw = c.Code
	}
	return strings.ToUpper(strings.TrimSpace(raw))
}

func (c *Contribution) amount() float64 {
	if c.Amount != 0 {
		return c.Amount
	}
	if c.CurrentAmount != nil {
		return *c.CurrentAmount
	}
	if c.Value != nil {
		return *c.Value
	}
	return 0
}

// MacroTotals is the post-update DailySummary view returned for
// immediate UI feedback.
type MacroTotals struct {
	TodayCalories float64 `json:"today_calories"`
	TodayProtein  float64 `json:"today_protein"`
	TodayFat      float64 `json:"today_fat"`
	TodayCarbs    float64 `json:"today_carbs"`
}

type ManualIntakeInput struct {
	UserID    uint
	Nutrients []Contribution
	FoodName  string
	Source    string // "manual" | "scan" | "chatbot"
	SourceRef string
	Date      time.Time
}

// SaveManualIntake normalizes a batch of contributions into the
// taxonomy-keyed manual log and the macro daily summary. Unresolvable
// codes and non-positive amounts are skipped, never fatal; one bad
// contribution must not sink the batch.
func SaveManualIntake(in ManualIntakeInput) (*MacroTotals, error) {
	if in.Source == "" {
		in.Source = "manual"
	}
	if in.SourceRef == "" {
		in.SourceRef = uuid.NewString()
	}

	macros := map[string]float64{}
	for _, contribution := range in.Nutrients {
		code := contribution.code()
		amount := contribution.amount()
		if code == "" || amount <= 0 {
			continue
		}

		if key, ok := macroCodes[code]; ok {
			macros[key] += amount
			continue
		}

		resolved, err := resolveContribution(&contribution, code)
		if err != nil {
			return nil, err
		}
		if resolved == nil {
			logrus.WithFields(logrus.Fields{
				"user_id": in.UserID,
				"code":    code,
			}).Warn("nutrient code not found, skipping contribution")
			continue
		}

		foodName := contribution.FoodName
		if foodName == "" {
			foodName = in.FoodName
		}
		metadata, _ := json.Marshal(map[string]interface{}{
			"food_name":  foodName,
			"confidence": contribution.Confidence,
			"source":     in.Source,
		})

		unit := resolved.Unit
		if unit == "" {
			unit = contribution.Unit
		}

		row := models.UserNutrientManualLog{
			UserID:       in.UserID,
			LogDate:      in.Date,
			NutrientType: resolved.NutrientType,
			NutrientCode: resolved.Code,
			NutrientID:   resolved.NutrientID,
			NutrientName: resolved.Name,
			Unit:         unit,
			Amount:       amount,
			Source:       in.Source,
			SourceRef:    in.SourceRef,
			Metadata:     datatypes.JSON(metadata),
		}

		// The accumulation must happen inside the database: a
		// read-then-write pair would lose updates under concurrent
		// approvals for the same user/day/code.
		err = config.DB.
			Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "user_id"}, {Name: "log_date"},
					{Name: "nutrient_type"}, {Name: "nutrient_code"},
				},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"amount":     gorm.Expr("amount + excluded.amount"),
					"source":     gorm.Expr("excluded.source"),
					"source_ref": gorm.Expr("excluded.source_ref"),
					"metadata":   gorm.Expr("COALESCE(excluded.metadata, metadata)"),
					"updated_at": time.Now(),
				}),
			}).
			Create(&row).Error
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"user_id": in.UserID,
				"code":    resolved.Code,
			}).Error("manual nutrient upsert failed")
			return nil, err
		}
	}

	if len(macros) > 0 {
		if err := addMacroTotals(in.UserID, in.Date, macros); err != nil {
			return nil, err
		}
	}
	return TodayMacroTotals(in.UserID, in.Date)
}

func resolveContribution(c *Contribution, code string) (*ResolvedNutrient, error) {
	if code != "" {
		return ResolveNutrientCode(code)
	}
	return ResolveNutrientID(c.NutrientID)
}

// addMacroTotals additively upserts the day's DailySummary row.
func addMacroTotals(userID uint, day time.Time, macros map[string]float64) error {
	row := models.DailySummary{
		UserID:        userID,
		Date:          day,
		TotalCalories: macros["calories"],
		TotalProtein:  macros["protein"],
		TotalFat:      macros["fat"],
		TotalCarbs:    macros["carbs"],
	}
	return config.DB.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total_calories": gorm.Expr("total_calories + excluded.total_calories"),
				"total_protein":  gorm.Expr("total_protein + excluded.total_protein"),
				"total_fat":      gorm.Expr("total_fat + excluded.total_fat"),
				"total_carbs":    gorm.Expr("total_carbs + excluded.total_carbs"),
				"updated_at":     time.Now(),
			}),
		}).
		Create(&row).Error
}

// TodayMacroTotals reads the current DailySummary row, defaulting to
// zeros when the user has logged nothing yet.
func TodayMacroTotals(userID uint, day time.Time) (*MacroTotals, error) {
	var summary models.DailySummary
	err := config.DB.
		Where("user_id = ? AND date = ?", userID, day).
		First(&summary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &MacroTotals{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &MacroTotals{
		TodayCalories: summary.TotalCalories,
		TodayProtein:  summary.TotalProtein,
		TodayFat:      summary.TotalFat,
		TodayCarbs:    summary.TotalCarbs,
	}, nil
}
