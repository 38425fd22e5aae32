package routes

import (
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/controllers"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/middlewares"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter(hub *services.RealtimeHub, ps *services.PushService) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Taxonomy listings are public; a bearer token adds per-user
	// recommended values.
	r.GET("/vitamins", controllers.ListTaxonomy("vitamin"))
	r.GET("/vitamins/:id", controllers.GetTaxonomyEntity("vitamin"))
	r.GET("/minerals", controllers.ListTaxonomy("mineral"))
	r.GET("/minerals/:id", controllers.GetTaxonomyEntity("mineral"))
	r.GET("/amino_acids", controllers.ListTaxonomy("amino_acid"))
	r.GET("/amino_acids/:id", controllers.GetTaxonomyEntity("amino_acid"))
	r.GET("/fibers", controllers.ListTaxonomy("fiber"))
	r.GET("/fibers/:id", controllers.GetTaxonomyEntity("fiber"))
	r.GET("/fatty_acids", controllers.ListTaxonomy("fatty_acid"))
	r.GET("/fatty_acids/:id", controllers.GetTaxonomyEntity("fatty_acid"))

	r.GET("/health-conditions", controllers.ListHealthConditions)

	// Protected routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.POST("/conditions", controllers.ActivateCondition)
		user.PUT("/conditions/:id/recover", controllers.MarkConditionRecovered)
		user.GET("/conditions/adjustments", controllers.GetRDAAdjustments)
	}

	meals := r.Group("/meals")
	meals.Use(middlewares.AuthMiddleware())
	{
		meals.POST("", controllers.LogMealEntry)
		meals.GET("", controllers.ListMealEntries)
		meals.DELETE("/:id", controllers.DeleteMealEntry)
	}

	nutrients := r.Group("/nutrients")
	nutrients.Use(middlewares.AuthMiddleware())
	{
		nutrients.GET("/tracking/daily", controllers.GetDailyTracking)
		nutrients.GET("/tracking/breakdown", controllers.GetNutrientBreakdown)
		nutrients.POST("/tracking/check-deficiencies", controllers.CheckDeficiencies)
		nutrients.GET("/tracking/notifications", controllers.GetNutrientNotifications)
		nutrients.PUT("/tracking/notifications/:id/read", controllers.MarkNotificationRead)
		nutrients.PUT("/tracking/notifications/read-all", controllers.MarkAllNotificationsRead)
		nutrients.GET("/tracking/summary", controllers.GetNutrientSummary)
		nutrients.GET("/tracking/report", controllers.GetComprehensiveReport)
		nutrients.POST("/approve-scan", controllers.ApproveScanNutrition)
		nutrients.POST("/manual", controllers.RecordManualIntake)
		nutrients.POST("/requirements/refresh", controllers.RefreshRequirements)
		nutrients.DELETE("/requirements", controllers.InvalidateRequirements)
	}

	realtime := r.Group("/")
	realtime.Use(middlewares.AuthMiddleware())
	{
		realtime.GET("/ws", controllers.AlertSocket(hub))
		if ps != nil {
			realtime.POST("/devices", controllers.RegisterDevice(ps))
		}
	}

	return r
}
