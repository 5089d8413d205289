package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/elevatehq/elevate-backend/internal/app/controllers"
	"github.com/elevatehq/elevate-backend/internal/app/models"
	"github.com/elevatehq/elevate-backend/internal/app/models/dto"
	"github.com/elevatehq/elevate-backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	organizationController *controllers.OrganizationController,
	courseController *controllers.CourseController,
	projectController *controllers.ProjectController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	organizations := v1.Group("/organizations")
	{
		organizations.POST("", organizationController.CreateOrganization)
		organizations.POST("/validate-slug", organizationController.ValidateSlug)
		organizations.GET("/slug/:slug", organizationController.GetOrganizationBySlug)
		organizations.GET("/:id", organizationController.GetOrganization)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)

		authenticated.GET("/organizations",
			authMiddleware.RoleRequired(models.RoleAdmin),
			organizationController.ListOrganizations)

		courses := authenticated.Group("/courses")
		{
			courses.GET("", courseController.ListCourses)
			courses.GET("/:id", courseController.GetCourse)
			courses.GET("/:id/enrollments", courseController.ListEnrollments)
			courses.POST("/:id/enrollments", courseController.EnrollStudent)

			// Staff-only course management. Per-course authority is enforced
			// by the services against persisted instructor assignments.
			coursesStaff := courses.Group("")
			coursesStaff.Use(authMiddleware.RoleRequired(models.RoleInstructor, models.RoleAdmin))
			{
				coursesStaff.POST("", courseController.CreateCourse)
				coursesStaff.POST("/:id/instructors", courseController.AddInstructor)
				coursesStaff.POST("/:id/enrollments/bulk", courseController.BulkEnrollStudents)
			}
		}

		// Project routes nested under courses
		courseProjects := authenticated.Group("/courses/:id/projects")
		{
			courseProjects.GET("", projectController.ListProjectsByCourse)
			courseProjects.POST("",
				authMiddleware.RoleRequired(models.RoleInstructor, models.RoleAdmin),
				projectController.CreateProject)
		}

		enrollments := authenticated.Group("/enrollments")
		{
			enrollments.POST("/:id/drop", courseController.DropEnrollment)

			enrollmentsStaff := enrollments.Group("")
			enrollmentsStaff.Use(authMiddleware.RoleRequired(models.RoleInstructor, models.RoleAdmin))
			{
				enrollmentsStaff.GET("/pending", courseController.ListPendingEnrollments)
				enrollmentsStaff.POST("/:id/approve", courseController.ApproveEnrollment)
			}
		}

		projects := authenticated.Group("/projects")
		{
			projects.GET("/team-formation-open", projectController.ListTeamFormationOpen)
			projects.GET("/:id", projectController.GetProject)

			projectsStaff := projects.Group("")
			projectsStaff.Use(authMiddleware.RoleRequired(models.RoleInstructor, models.RoleAdmin))
			{
				projectsStaff.POST("/:id/publish", projectController.PublishProject)
				projectsStaff.PATCH("/:id/team-formation", projectController.UpdateTeamFormationSettings)
			}
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewSuccessResponse(gin.H{"status": "ok"}, ""))
	})
}
