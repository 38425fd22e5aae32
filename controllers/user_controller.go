package controllers

import (
	"net/http"

	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/middlewares"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/services"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	profile, err := services.GetUserProfile(middlewares.UserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func UpdateProfile(c *gin.Context) {
	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.UpdateUserProfile(middlewares.UserID(c), input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
