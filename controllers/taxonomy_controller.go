package controllers

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/config"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/models"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Taxonomy endpoints are public; a valid bearer token upgrades the
// response with per-user recommended values. maybeUserID never fails
// the request, it just declines the enrichment.
func maybeUserID(c *gin.Context) (uint, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return 0, false
	}
	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		return 0, false
	}

	token, err := jwt.Parse(strings.TrimPrefix(authHeader, "Bearer "), func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	if v, ok := claims["userId"].(float64); ok {
		return uint(v), true
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return 0, false
	}
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return 0, false
	}
	return user.ID, true
}

type enrichedEntity struct {
	services.TaxonomyEntity
	RecommendedForUser *services.RecommendedValue `json:"recommended_for_user,omitempty"`
	Foods              []services.TopFoodSource   `json:"foods,omitempty"`
}

// ListTaxonomy handles GET /<taxonomy>?top=N for all five taxonomies.
func ListTaxonomy(taxonomyType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tax := services.TaxonomyByType(taxonomyType)
		if tax == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown taxonomy"})
			return
		}
		top, _ := strconv.Atoi(c.DefaultQuery("top", "0"))

		rows, err := services.ListTaxonomyEntities(tax, top)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch " + taxonomyType + " list"})
			return
		}

		userID, authenticated := maybeUserID(c)
		if !authenticated {
			c.JSON(http.StatusOK, rows)
			return
		}

		enriched := make([]enrichedEntity, 0, len(rows))
		for _, row := range rows {
			rec, err := services.RecommendedForUser(userID, tax, row.ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch " + taxonomyType + " list"})
				return
			}
			enriched = append(enriched, enrichedEntity{TaxonomyEntity: row, RecommendedForUser: rec})
		}
		c.JSON(http.StatusOK, enriched)
	}
}

// GetTaxonomyEntity handles GET /<taxonomy>/:id with food-source and
// per-user enrichment.
func GetTaxonomyEntity(taxonomyType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tax := services.TaxonomyByType(taxonomyType)
		if tax == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown taxonomy"})
			return
		}
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		entity, err := services.GetTaxonomyEntity(tax, uint(id))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch " + taxonomyType})
			return
		}
		if entity == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		out := enrichedEntity{TaxonomyEntity: *entity}
		if foods, err := services.TopFoodsForEntity(tax, entity.ID, 10); err == nil {
			out.Foods = foods
		}
		if userID, ok := maybeUserID(c); ok {
			if rec, err := services.RecommendedForUser(userID, tax, entity.ID); err == nil {
				out.RecommendedForUser = rec
			}
		}
		c.JSON(http.StatusOK, out)
	}
}
