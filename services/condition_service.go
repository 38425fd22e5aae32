package services

import (
	"errors"
	"time"

	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/config"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RDAAdjustment is the summed percentage shift for one generic nutrient
// across all of a user's active conditions. Percentages from different
// conditions add up; they are applied once as a single multiplier.
type RDAAdjustment struct {
	NutrientID      uint    `json:"nutrient_id"`
	NutrientCode    string  `json:"nutrient_code"`
	NutrientName    string  `json:"nutrient_name"`
	Unit            string  `json:"unit"`
	TotalAdjustment float64 `json:"total_adjustment"`
}

func GetAdjustedRDA(userID uint) ([]RDAAdjustment, error) {
	var rows []RDAAdjustment
	err := config.DB.Table("user_health_conditions uhc").
		Select(`n.id AS nutrient_id, n.nutrient_code, n.name AS nutrient_name, n.unit,
			COALESCE(SUM(cne.adjustment_percent), 0) AS total_adjustment`).
		Joins("JOIN condition_nutrient_effects cne ON cne.condition_id = uhc.condition_id AND cne.deleted_at IS NULL").
		Joins("JOIN nutrients n ON n.id = cne.nutrient_id").
		Where("uhc.user_id = ? AND uhc.status = ? AND uhc.deleted_at IS NULL", userID, "active").
		Group("n.id, n.nutrient_code, n.name, n.unit").
		Scan(&rows).Error
	return rows, err
}

// adjustmentForEntity sums the active-condition percentages for every
// generic nutrient mapped to the given taxonomy entity.
func adjustmentForEntity(userID uint, tax *TaxonomyInfo, entityID uint) (float64, error) {
	var total float64
	err := config.DB.Table("user_health_conditions uhc").
		Select("COALESCE(SUM(cne.adjustment_percent), 0)").
		Joins("JOIN condition_nutrient_effects cne ON cne.condition_id = uhc.condition_id AND cne.deleted_at IS NULL").
		Joins("JOIN nutrient_mappings m ON m.nutrient_id = cne.nutrient_id AND m.deleted_at IS NULL").
		Where("uhc.user_id = ? AND uhc.status = ? AND uhc.deleted_at IS NULL", userID, "active").
		Where("m."+tax.MappingFK+" = ?", entityID).
		Scan(&total).Error
	return total, err
}

func ListHealthConditions() ([]models.HealthCondition, error) {
	var conditions []models.HealthCondition
	err := config.DB.Order("name").Find(&conditions).Error
	return conditions, err
}

// ActivateCondition records a condition as active for the user. Target
// multipliers change with it, so the requirement cache is invalidated.
func ActivateCondition(userID, conditionID uint) (*models.UserHealthCondition, error) {
	var condition models.HealthCondition
	if err := config.DB.First(&condition, conditionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("condition not found")
		}
		return nil, err
	}

	var uhc models.UserHealthCondition
	err := config.DB.
		Where("user_id = ? AND condition_id = ?", userID, conditionID).
		First(&uhc).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		uhc = models.UserHealthCondition{
			UserID:      userID,
			ConditionID: conditionID,
			Status:      "active",
			DiagnosedAt: time.Now(),
		}
		if err := config.DB.Create(&uhc).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		uhc.Status = "active"
		uhc.RecoveredAt = nil
		if err := config.DB.Save(&uhc).Error; err != nil {
			return nil, err
		}
	}

	if err := InvalidateUserRequirements(userID); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("requirement cache invalidation failed")
	}
	return &uhc, nil
}

// MarkRecovered flips the condition to recovered and invalidates the
// requirement cache so targets fall back to the unadjusted baseline.
func MarkRecovered(userID, userConditionID uint) error {
	var uhc models.UserHealthCondition
	if err := config.DB.
		Where("id = ? AND user_id = ?", userConditionID, userID).
		First(&uhc).Error; err != nil {
		return err
	}
	now := time.Now()
	uhc.Status = "recovered"
	uhc.RecoveredAt = &now
	if err := config.DB.Save(&uhc).Error; err != nil {
		return err
	}
	if err := InvalidateUserRequirements(userID); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("requirement cache invalidation failed")
	}
	return nil
}
