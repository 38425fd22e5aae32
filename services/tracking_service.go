package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/config"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/models"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm/clause"
)

// Deficiency thresholds as a fraction of the adjusted target.
const (
	severeThreshold  = 50.0
	warningThreshold = 80.0
)

// CheckAndNotifyDeficiencies scans the day's intake and persists one
// deficiency notification per under-target nutrient. Rows without a
// computable target are skipped; an unknown target is not a deficiency.
func CheckAndNotifyDeficiencies(userID uint, day time.Time) (int, error) {
	intake, err := CalculateDailyIntake(userID, day)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, row := range intake {
		if row.TargetAmount == nil || *row.TargetAmount <= 0 {
			continue
		}
		severity := ""
		switch {
		case row.Percentage < severeThreshold:
			severity = "severe"
		case row.Percentage < warningThreshold:
			severity = "warning"
		default:
			continue
		}

		// One notification per nutrient per service day, keyed on the
		// evaluated day itself so re-checking an earlier day is never
		// suppressed by a later day's alerts.
		var existing int64
		err := config.DB.Model(&models.UserNutrientNotification{}).
			Where("user_id = ? AND nutrient_type = ? AND nutrient_id = ? AND notification_type = ?",
				userID, row.NutrientType, row.NutrientID, "deficiency").
			Where("date = ?", day).
			Count(&existing).Error
		if err != nil {
			return created, err
		}
		if existing > 0 {
			continue
		}

		message := fmt.Sprintf("%s intake is at %.0f%% of your daily target (%.1f/%.1f %s)",
			row.NutrientName, row.Percentage, row.CurrentAmount, *row.TargetAmount, row.Unit)
		notification := &models.UserNutrientNotification{
			UserID:           userID,
			Date:             day,
			NutrientType:     row.NutrientType,
			NutrientID:       row.NutrientID,
			NotificationType: "deficiency",
			Message:          message,
			Severity:         severity,
		}
		if err := EmitNutrientAlert(notification); err != nil {
			return created, err
		}
		created++
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"date":    utils.FormatDay(day),
		"created": created,
	}).Info("deficiency check finished")
	return created, nil
}

// NotificationView adds the freshness bucket the home screen renders.
type NotificationView struct {
	models.UserNutrientNotification
	Freshness string `json:"freshness"`
}

func GetNutrientNotifications(userID uint, limit int) ([]NotificationView, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.UserNutrientNotification
	err := config.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]NotificationView, 0, len(rows))
	for _, n := range rows {
		freshness := "old"
		switch age := now.Sub(n.CreatedAt); {
		case age < time.Hour:
			freshness = "new"
		case age < 24*time.Hour:
			freshness = "recent"
		}
		out = append(out, NotificationView{UserNutrientNotification: n, Freshness: freshness})
	}
	return out, nil
}

func MarkNotificationRead(userID, notificationID uint) (int64, error) {
	result := config.DB.Model(&models.UserNutrientNotification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func MarkAllNotificationsRead(userID uint) (int64, error) {
	result := config.DB.Model(&models.UserNutrientNotification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func GetUnreadNotificationCount(userID uint) (int64, error) {
	var count int64
	err := config.DB.Model(&models.UserNutrientNotification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// TypeSummary backs the home-screen RDA cards.
type TypeSummary struct {
	Total             int                `json:"total"`
	Achieved          int                `json:"achieved"`
	AveragePercentage float64            `json:"average_percentage"`
	TopDeficient      []DeficientSummary `json:"top_deficient"`
}

type DeficientSummary struct {
	Name       string   `json:"name"`
	Percentage float64  `json:"percentage"`
	Current    float64  `json:"current"`
	Target     *float64 `json:"target"`
	Unit       string   `json:"unit"`
}

// GetNutrientSummary aggregates vitamins and minerals into card-level
// figures with the three worst deficits per type.
func GetNutrientSummary(userID uint, day time.Time) (map[string]*TypeSummary, error) {
	intake, err := CalculateDailyIntake(userID, day)
	if err != nil {
		return nil, err
	}

	summary := map[string]*TypeSummary{
		"vitamins": {TopDeficient: []DeficientSummary{}},
		"minerals": {TopDeficient: []DeficientSummary{}},
	}
	for _, row := range intake {
		category := summary[row.NutrientType+"s"]
		if category == nil {
			continue
		}
		category.Total++
		category.AveragePercentage += row.Percentage
		if row.Percentage >= 100 {
			category.Achieved++
			continue
		}
		category.TopDeficient = append(category.TopDeficient, DeficientSummary{
			Name:       row.NutrientName,
			Percentage: row.Percentage,
			Current:    row.CurrentAmount,
			Target:     row.TargetAmount,
			Unit:       row.Unit,
		})
	}

	for _, category := range summary {
		if category.Total > 0 {
			category.AveragePercentage /= float64(category.Total)
		}
		// keep the three lowest percentages
		sort.Slice(category.TopDeficient, func(i, j int) bool {
			return category.TopDeficient[i].Percentage < category.TopDeficient[j].Percentage
		})
		if len(category.TopDeficient) > 3 {
			category.TopDeficient = category.TopDeficient[:3]
		}
	}
	return summary, nil
}

// UpdateNutrientTracking refreshes the per-day snapshot rows after meal
// or manual-intake writes. Unlike the manual log, the snapshot is a
// replace-on-conflict: it mirrors the aggregator, it does not
// accumulate.
func UpdateNutrientTracking(userID uint, day time.Time) (int, error) {
	intake, err := CalculateDailyIntake(userID, day)
	if err != nil {
		return 0, err
	}
	for _, row := range intake {
		snapshot := models.UserNutrientTracking{
			UserID:        userID,
			Date:          day,
			NutrientType:  row.NutrientType,
			NutrientID:    row.NutrientID,
			TargetAmount:  row.TargetAmount,
			CurrentAmount: row.CurrentAmount,
			Unit:          row.Unit,
		}
		err := config.DB.
			Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "user_id"}, {Name: "date"},
					{Name: "nutrient_type"}, {Name: "nutrient_id"},
				},
				DoUpdates: clause.AssignmentColumns([]string{
					"target_amount", "current_amount", "unit", "updated_at",
				}),
			}).
			Create(&snapshot).Error
		if err != nil {
			return 0, err
		}
	}
	return len(intake), nil
}

// ComprehensiveReport bundles everything the detail screen needs into
// one payload.
type ComprehensiveReport struct {
	Date          string                  `json:"date"`
	Intake        []NutrientIntakeRow     `json:"intake"`
	Sources       []NutrientSourceRow     `json:"sources"`
	Notifications []NotificationView      `json:"notifications"`
	Summary       map[string]*TypeSummary `json:"summary"`
}

func GetComprehensiveReport(userID uint, day time.Time) (*ComprehensiveReport, error) {
	intake, err := CalculateDailyIntake(userID, day)
	if err != nil {
		return nil, err
	}
	sources, err := DailyIntakeBreakdown(userID, day)
	if err != nil {
		return nil, err
	}
	notifications, err := GetNutrientNotifications(userID, 10)
	if err != nil {
		return nil, err
	}
	summary, err := GetNutrientSummary(userID, day)
	if err != nil {
		return nil, err
	}
	return &ComprehensiveReport{
		Date:          utils.FormatDay(day),
		Intake:        intake,
		Sources:       sources,
		Notifications: notifications,
		Summary:       summary,
	}, nil
}
