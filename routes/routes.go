package routes

import (
	"net/http"

	"placement-portal/controllers"
	"placement-portal/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers groups the controllers mounted by SetupRoutes.
type Handlers struct {
	Auth         *controllers.AuthController
	Profiles     *controllers.ProfileController
	Applications *controllers.ApplicationController
	Jobs         *controllers.JobController
}

func SetupRoutes(router *gin.Engine, h Handlers, jwtSecret string) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.GET("/health", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{
					"status":  "ok",
					"message": "Placement Portal API is running",
				})
			})

			// Authentication
			public.POST("/auth/admin/login", h.Auth.AdminLogin)
			public.POST("/auth/student/login", h.Auth.StudentLogin)
			public.POST("/auth/student/signup", h.Auth.StudentSignup)
		}

		// Student routes
		student := v1.Group("")
		student.Use(middleware.AuthMiddleware(jwtSecret), middleware.RequireRole(middleware.RoleStudent))
		{
			me := student.Group("/me")
			{
				me.GET("/profile", h.Profiles.GetMine)
				me.PUT("/profile", h.Profiles.ReplaceMine)
				me.PATCH("/profile/basic", h.Profiles.UpdateBasic)
				me.PUT("/profile/grades", h.Profiles.UpdateGrades)
				me.PUT("/profile/internships", h.Profiles.UpdateInternships)
				me.PUT("/profile/resumes", h.Profiles.UpdateResumes)
				me.GET("/applications", h.Applications.ListMine)
			}

			student.GET("/jobs", h.Jobs.ListOpen)
			student.GET("/jobs/:id", h.Jobs.Get)
			student.POST("/jobs/:id/apply", h.Applications.Apply)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(jwtSecret), middleware.RequireRole(middleware.RoleAdmin))
		{
			applications := admin.Group("/applications")
			{
				applications.GET("", h.Applications.AdminList)
				applications.GET("/:id", h.Applications.AdminGet)
				applications.PATCH("/:id/status", h.Applications.UpdateStatus)
				applications.POST("/status/bulk", h.Applications.BulkUpdateStatus)
			}

			admin.GET("/students/:id", h.Profiles.AdminGetStudent)
			admin.PUT("/students/:id/grades", h.Profiles.AdminUpdateGrades)

			admin.GET("/companies", h.Jobs.ListCompanies)
			admin.POST("/companies", h.Jobs.CreateCompany)
			admin.GET("/jobs", h.Jobs.AdminList)
			admin.POST("/jobs", h.Jobs.Create)
			admin.POST("/jobs/:id/close", h.Jobs.Close)
		}
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Endpoint not found",
		})
	})
}
