package controllers

import (
	"net/http"
	"strconv"

	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/middlewares"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/services"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/utils"

	"github.com/gin-gonic/gin"
)

func LogMealEntry(c *gin.Context) {
	var req struct {
		FoodID   uint    `json:"food_id" binding:"required"`
		MealType string  `json:"meal_type" binding:"required"`
		WeightG  float64 `json:"weight_g" binding:"required"`
		Date     string  `json:"date"` // YYYY-MM-DD, default today
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
	entry, err := services.LogMealEntry(userID, req.FoodID, req.MealType, req.WeightG, day)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Refresh the day's snapshot so home-screen cards catch up.
	if _, err := services.UpdateNutrientTracking(userID, day); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func ListMealEntries(c *gin.Context) {
	day, err := services.ResolveDay(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use YYYY-MM-DD"})
		return
	}

	entries, err := services.ListMealEntriesByDate(middlewares.UserID(c), day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": utils.FormatDay(day), "entries": entries})
}

func DeleteMealEntry(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := services.DeleteMealEntry(middlewares.UserID(c), uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal entry not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
