package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/middlewares"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/services"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/utils"

	"github.com/gin-gonic/gin"
)

// GET /nutrients/tracking/daily?date=YYYY-MM-DD
func GetDailyTracking(c *gin.Context) {
	day, err := services.ResolveDay(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use YYYY-MM-DD"})
		return
	}

	intake, err := services.CalculateDailyIntake(middlewares.UserID(c), day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":      utils.FormatDay(day),
		"nutrients": intake,
	})
}

// GET /nutrients/tracking/breakdown?date=YYYY-MM-DD
func GetNutrientBreakdown(c *gin.Context) {
	day, err := services.ResolveDay(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use YYYY-MM-DD"})
		return
	}

	sources, err := services.DailyIntakeBreakdown(middlewares.UserID(c), day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":    utils.FormatDay(day),
		"sources": sources,
	})
}

// POST /nutrients/tracking/check-deficiencies
func CheckDeficiencies(c *gin.Context) {
	var req struct {
		Date string `json:"date"`
	}
	_ = c.ShouldBindJSON(&req)

	day, err := services.ResolveDay(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use YYYY-MM-DD"})
		return
	}

	count, err := services.CheckAndNotifyDeficiencies(middlewares.UserID(c), day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notification_count": count})
}

// GET /nutrients/tracking/notifications
func GetNutrientNotifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	userID := middlewares.UserID(c)

	notifications, err := services.GetNutrientNotifications(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	unread, err := services.GetUnreadNotificationCount(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

// PUT /nutrients/tracking/notifications/:id/read
func MarkNotificationRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	affected, err := services.MarkNotificationRead(middlewares.UserID(c), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// PUT /nutrients/tracking/notifications/read-all
func MarkAllNotificationsRead(c *gin.Context) {
	affected, err := services.MarkAllNotificationsRead(middlewares.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked_read": affected})
}

// GET /nutrients/tracking/summary?date=YYYY-MM-DD
func GetNutrientSummary(c *gin.Context) {
	day, err := services.ResolveDay(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use YYYY-MM-DD"})
		return
	}

	summary, err := services.GetNutrientSummary(middlewares.UserID(c), day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GET /nutrients/tracking/report?date=YYYY-MM-DD
func GetComprehensiveReport(c *gin.Context) {
	day, err := services.ResolveDay(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use YYYY-MM-DD"})
		return
	}

	report, err := services.GetComprehensiveReport(middlewares.UserID(c), day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// POST /nutrients/approve-scan
// The client approves an AI food-scan result; the analysed nutrient
// payload is recorded as manual intake under source "scan".
func ApproveScanNutrition(c *gin.Context) {
	var req struct {
		FoodName  string                  `json:"food_name"`
		Nutrients []services.Contribution `json:"nutrients"`
		Date      string                  `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	day, err := services.ResolveDay(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use YYYY-MM-DD"})
		return
	}

	userID := middlewares.UserID(c)
	totals, err := services.SaveManualIntake(services.ManualIntakeInput{
		UserID:    userID,
		Nutrients: req.Nutrients,
		FoodName:  req.FoodName,
		Source:    "scan",
		Date:      day,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if _, err := services.UpdateNutrientTracking(userID, day); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":  utils.FormatDay(day),
		"today": totals,
	})
}

// POST /nutrients/manual
// Direct manual entry, same recorder as approve-scan.
func RecordManualIntake(c *gin.Context) {
	var req struct {
		FoodName  string                  `json:"food_name"`
		Nutrients []services.Contribution `json:"nutrients"`
		Source    string                  `json:"source"`
		SourceRef string                  `json:"source_ref"`
		Date      string                  `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	day, err := services.ResolveDay(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use YYYY-MM-DD"})
		return
	}

	totals, err := services.SaveManualIntake(services.ManualIntakeInput{
		UserID:    middlewares.UserID(c),
		Nutrients: req.Nutrients,
		FoodName:  req.FoodName,
		Source:    req.Source,
		SourceRef: req.SourceRef,
		Date:      day,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":  utils.FormatDay(day),
		"today": totals,
	})
}

// POST /nutrients/requirements/refresh
func RefreshRequirements(c *gin.Context) {
	refreshed, err := services.RefreshUserRequirements(middlewares.UserID(c))
	if err != nil {
		if errors.Is(err, services.ErrInsufficientProfile) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"refreshed": refreshed})
}

// DELETE /nutrients/requirements
func InvalidateRequirements(c *gin.Context) {
	if err := services.InvalidateUserRequirements(middlewares.UserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
