package controllers

import (
	"net/http"
	"strconv"

	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/middlewares"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/services"

	"github.com/gin-gonic/gin"
)

func ListHealthConditions(c *gin.Context) {
	conditions, err := services.ListHealthConditions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, conditions)
}

func ActivateCondition(c *gin.Context) {
	var req struct {
		ConditionID uint `json:"condition_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uhc, err := services.ActivateCondition(middlewares.UserID(c), req.ConditionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, uhc)
}

func MarkConditionRecovered(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := services.MarkRecovered(middlewares.UserID(c), uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "condition record not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /user/conditions/adjustments
// Returns the summed RDA shifts currently in effect for the
// authenticated user.
func GetRDAAdjustments(c *gin.Context) {
	adjustments, err := services.GetAdjustedRDA(middlewares.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, adjustments)
}
