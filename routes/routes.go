package routes

import (
	"gorm.io/gorm"

	"github.com/gin-gonic/gin"

	"leave-management-api/controllers"
	"leave-management-api/middleware"
	"leave-management-api/models"
	"leave-management-api/services"
)

// SetupRoutes wires the workflow engine and its collaborators, then
// registers every endpoint on the router. The dispatcher is returned so main
// can drain it on shutdown.
func SetupRoutes(router *gin.Engine, db *gorm.DB, uploadPath string) *services.MailDispatcher {
	dispatcher := services.NewMailDispatcher(db)
	engine := services.NewWorkflowService(
		services.NewRequestStore(db),
		services.NewDirectory(db),
		dispatcher,
	)
	blobs := services.NewLocalBlobStore(uploadPath, "/uploads")
	leave := controllers.NewLeaveRequestController(engine, blobs)

	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", controllers.Login)

			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Leave Management API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/profile", controllers.GetProfile)

			// Leave requests
			requests := protected.Group("/leave-requests")
			{
				// Students submit and read their own history
				requests.POST("", middleware.RequireRole(models.RoleStudent), leave.Submit)
				requests.GET("/history", leave.History)

				// Approval queues per role
				requests.GET("/pending", middleware.RequireRole(
					models.RoleStaff, models.RoleHOD, models.RolePrincipal), leave.Pending)

				// Transitions; the engine validates the (status, role, action)
				// triple, the route only keeps students out
				requests.POST("/:id/forward", middleware.RequireRole(
					models.RoleStaff, models.RoleHOD), leave.Forward)
				requests.POST("/:id/approve", middleware.RequireRole(
					models.RoleHOD, models.RolePrincipal), leave.Approve)
				requests.POST("/:id/reject", middleware.RequireRole(
					models.RoleStaff, models.RoleHOD, models.RolePrincipal), leave.Reject)
			}

			// Circulars
			circulars := protected.Group("/circulars")
			{
				circulars.GET("", controllers.GetCirculars)
				circulars.POST("", middleware.RequireRole(models.RoleHOD), controllers.PublishCircular)
			}

			// In-app notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.GET("/unread-count", controllers.GetUnreadCount)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
			}

			// Admin reporting
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/leave-requests/report", leave.Report)
			}
		}
	}

	return dispatcher
}
