package routes

import (
	"iris-api/controllers"
	"iris-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "IRIS API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Common reference data (all authenticated users)
			protected.GET("/departments", controllers.GetDepartments)

			// Scientists
			scientists := protected.Group("/scientists")
			{
				scientists.GET("", controllers.GetScientists)
				scientists.GET("/:id", controllers.GetScientist)

				// Only admin can manage accounts
				scientists.POST("", middleware.RequireRole(3), controllers.CreateScientist) // 3 = admin
				scientists.PUT("/:id", middleware.RequireRole(3), controllers.UpdateScientist)
				scientists.DELETE("/:id", middleware.RequireRole(3), controllers.DeleteScientist)
			}

			// Research activities
			activities := protected.Group("/research-activities")
			{
				activities.GET("", controllers.GetResearchActivities)
				activities.GET("/:id", controllers.GetResearchActivity)
				activities.POST("", middleware.RequireRole(1, 3), controllers.CreateResearchActivity) // 1 = scientist
				activities.PUT("/:id", controllers.UpdateResearchActivity)
				activities.DELETE("/:id", controllers.DeleteResearchActivity)
			}

			// IRB applications
			applications := protected.Group("/irb-applications")
			{
				applications.GET("", controllers.GetIrbApplications)
				applications.GET("/:id", controllers.GetIrbApplication)

				// Only scientists create/edit/delete their drafts
				applications.POST("", middleware.RequireRole(1), controllers.CreateIrbApplication)
				applications.PATCH("/:id", middleware.RequireRole(1), controllers.UpdateIrbApplication)
				applications.DELETE("/:id", middleware.RequireRole(1), controllers.DeleteIrbApplication)

				// Submission wizard
				applications.GET("/:id/wizard", middleware.RequireRole(1), controllers.GetWizardState)
				applications.PUT("/:id/wizard/:step", middleware.RequireRole(1), controllers.SaveWizardStep)
				applications.POST("/:id/submit", middleware.RequireRole(1), controllers.SubmitIrbApplication)

				// Committee/admin workflow actions
				applications.POST("/:id/review", middleware.RequireRole(2, 3), controllers.StartIrbReview) // 2 = committee
				applications.POST("/:id/approve", middleware.RequireRole(2, 3), controllers.ApproveIrbApplication)
				applications.POST("/:id/reject", middleware.RequireRole(2, 3), controllers.RejectIrbApplication)
				applications.POST("/:id/request-revisions", middleware.RequireRole(2, 3), controllers.RequestIrbRevisions)

				// Documents
				applications.POST("/:id/documents", middleware.RequireRole(1), controllers.UploadIrbDocument)
				applications.GET("/:id/documents", controllers.GetIrbDocuments)
			}

			documents := protected.Group("/documents")
			{
				documents.GET("/download/:document_id", controllers.DownloadIrbDocument)
				documents.DELETE("/:document_id", middleware.RequireRole(1), controllers.DeleteIrbDocument)
			}

			// Certifications
			certifications := protected.Group("/certifications")
			{
				certifications.GET("/matrix", controllers.GetCertificationMatrix)
				certifications.GET("/expiring", middleware.RequireRole(3), controllers.GetExpiringCertifications)
				certifications.POST("", middleware.RequireRole(3), controllers.CreateCertificationRecord)
			}

			modules := protected.Group("/certification-modules")
			{
				modules.GET("", controllers.GetCertificationModules)
				modules.POST("", middleware.RequireRole(3), controllers.CreateCertificationModule)
				modules.PUT("/:id", middleware.RequireRole(3), controllers.UpdateCertificationModule)
				modules.DELETE("/:id", middleware.RequireRole(3), controllers.DeleteCertificationModule)
			}

			// Publications
			publications := protected.Group("/publications")
			{
				publications.GET("", controllers.GetPublications)
				publications.GET("/:id", controllers.GetPublication)
				publications.POST("", middleware.RequireRole(1), controllers.CreatePublication)
				publications.PUT("/:id", middleware.RequireRole(1), controllers.UpdatePublication)
				publications.DELETE("/:id", middleware.RequireRole(1), controllers.DeletePublication)
			}

			// Contracts
			contracts := protected.Group("/contracts")
			{
				contracts.GET("", controllers.GetContracts)
				contracts.GET("/:id", controllers.GetContract)
				contracts.POST("", middleware.RequireRole(3), controllers.CreateContract)
				contracts.PUT("/:id", middleware.RequireRole(3), controllers.UpdateContract)
				contracts.DELETE("/:id", middleware.RequireRole(3), controllers.DeleteContract)
			}

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
			}

			// Dashboard
			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/stats", controllers.GetDashboardStats)
			}
		}
	}
}
