package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/homegenie-services/homegenie-api/controllers"
)

// SetupRouter builds the API router. The auth middleware is injected so
// tests can substitute a stub for the Auth0 token check.
func SetupRouter(authMiddleware gin.HandlerFunc) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"https://admin.homegenie.in",
			"https://homegenie.in",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	v1 := r.Group("/api/v1")
	{
		// Storefront endpoints, no token required
		v1.GET("/categories", controllers.ListCategories)
		v1.GET("/services", controllers.ListServices)
		v1.GET("/time-slots", controllers.GetTimeSlots)
		v1.POST("/coupons/validate", controllers.ValidateCoupon)
		v1.POST("/orders", controllers.CreateOrder)
	}

	admin := r.Group("/api/v1")
	admin.Use(authMiddleware)
	{
		orders := admin.Group("/orders")
		{
			orders.GET("", controllers.ListOrders)
			orders.GET("/:id", controllers.GetOrder)
			orders.PUT("/:id", controllers.UpdateOrder)
			orders.PATCH("/:id/status", controllers.UpdateOrderStatus)
			orders.POST("/:id/auto-assign", controllers.AutoAssignOrder)
			orders.GET("/:id/notifications", controllers.ListNotificationLogs)
			orders.PATCH("/:id/items/:itemId", controllers.UpdateOrderItem)
			orders.POST("/:id/items/:itemId/assign", controllers.AssignEmployee)
			orders.GET("/:id/items/:itemId/candidates", controllers.GetAssignmentCandidates)
		}

		employees := admin.Group("/employees")
		{
			employees.POST("", controllers.CreateEmployee)
			employees.GET("", controllers.ListEmployees)
			employees.GET("/workload", controllers.GetEngineerWorkloadStats)
			employees.GET("/:id", controllers.GetEmployee)
			employees.PUT("/:id", controllers.UpdateEmployee)
			employees.DELETE("/:id", controllers.DeactivateEmployee)
		}

		categories := admin.Group("/categories")
		{
			categories.POST("", controllers.CreateCategory)
			categories.PUT("/:id", controllers.UpdateCategory)
			categories.POST("/:id/image", controllers.UploadCategoryImage)
		}

		services := admin.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.PUT("/:id", controllers.UpdateService)
			services.POST("/:id/image", controllers.UploadServiceImage)
			services.POST("/:id/variants", controllers.CreateServiceVariant)
		}

		coupons := admin.Group("/coupons")
		{
			coupons.POST("", controllers.CreateCoupon)
			coupons.GET("", controllers.ListCoupons)
			coupons.PUT("/:id", controllers.UpdateCoupon)
		}

		users := admin.Group("/users")
		{
			users.POST("/sync", controllers.SyncUser)
			users.GET("/me", controllers.GetMe)
		}

		settings := admin.Group("/settings")
		{
			settings.GET("/notifications", controllers.GetNotificationSettings)
			settings.PUT("/notifications/:channel", controllers.UpdateNotificationSettings)
		}
	}

	return r
}
