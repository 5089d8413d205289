package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elevatehq/elevate-backend/internal/app/models/dto"
	"github.com/elevatehq/elevate-backend/internal/app/services"
	"github.com/elevatehq/elevate-backend/internal/middleware"
)

// ProjectController handles team-formation project operations
type ProjectController struct {
	projectService *services.ProjectService
}

// NewProjectController creates a new ProjectController
func NewProjectController(projectService *services.ProjectService) *ProjectController {
	return &ProjectController{
		projectService: projectService,
	}
}

// CreateProject handles project creation on a course
// @Summary Create a new project
// @Description Creates a team-formation project; the caller must be an active instructor on the course
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param request body dto.CreateProjectRequest true "Project information"
// @Success 201 {object} dto.APIResponse{data=models.Project} "Project created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid dates or team sizes"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not an instructor on the course"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/projects [post]
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	var req dto.CreateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid project data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	project, err := c.projectService.CreateProject(ctx, services.CreateProjectParams{
		CourseID:              ctx.Param("id"),
		Name:                  req.Name,
		StartDate:             req.StartDate,
		DueDate:               req.DueDate,
		TeamFormationDeadline: req.TeamFormationDeadline,
		TenantID:              middleware.GetTenantID(ctx),
		InstructorID:          middleware.GetUserID(ctx),
		Description:           req.Description,
		Instructions:          req.Instructions,
		MinTeamSize:           req.MinTeamSize,
		MaxTeamSize:           req.MaxTeamSize,
		AllowIndividualWork:   req.AllowIndividualWork,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      project,
		Timestamp: time.Now(),
	})
}

// GetProject retrieves a project within the caller's tenant
// @Summary Get project by ID
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} dto.APIResponse{data=models.Project} "Project retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects/{id} [get]
func (c *ProjectController) GetProject(ctx *gin.Context) {
	project, err := c.projectService.GetProject(ctx, ctx.Param("id"), middleware.GetTenantID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      project,
		Timestamp: time.Now(),
	})
}

// ListProjectsByCourse lists a course's projects
// @Summary List course projects
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param skip query int false "Items to skip"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.Project} "Projects retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/projects [get]
func (c *ProjectController) ListProjectsByCourse(ctx *gin.Context) {
	skip, limit := parsePagination(ctx)

	projects, err := c.projectService.ListProjectsByCourse(ctx, ctx.Param("id"), skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.PaginatedResponse{
			Items:      projects,
			Pagination: dto.PaginationInfo{Skip: skip, Limit: limit, Count: len(projects)},
		},
		Timestamp: time.Now(),
	})
}

// ListTeamFormationOpen lists projects whose team-formation window is open
// @Summary List open team-formation projects
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Items to skip"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.Project} "Projects retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects/team-formation-open [get]
func (c *ProjectController) ListTeamFormationOpen(ctx *gin.Context) {
	skip, limit := parsePagination(ctx)

	projects, err := c.projectService.ListTeamFormationOpen(ctx, middleware.GetTenantID(ctx), skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.PaginatedResponse{
			Items:      projects,
			Pagination: dto.PaginationInfo{Skip: skip, Limit: limit, Count: len(projects)},
		},
		Timestamp: time.Now(),
	})
}

// PublishProject makes a project visible to students
// @Summary Publish project
// @Description Publishes a project; repeat calls are no-ops
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} dto.APIResponse{data=models.Project} "Project published"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not an instructor on the course"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects/{id}/publish [post]
func (c *ProjectController) PublishProject(ctx *gin.Context) {
	project, err := c.projectService.PublishProject(ctx, ctx.Param("id"), middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      project,
		Timestamp: time.Now(),
	})
}

// UpdateTeamFormationSettings applies a partial update to team-formation settings
// @Summary Update team-formation settings
// @Description Partially updates team sizes, deadline and formation flags
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body dto.UpdateTeamFormationRequest true "Settings to change"
// @Success 200 {object} dto.APIResponse{data=models.Project} "Settings updated"
// @Failure 400 {object} dto.ErrorResponse "Resulting settings invalid"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not an instructor on the course"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects/{id}/team-formation [patch]
func (c *ProjectController) UpdateTeamFormationSettings(ctx *gin.Context) {
	var req dto.UpdateTeamFormationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid settings data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	project, err := c.projectService.UpdateTeamFormationSettings(ctx,
		ctx.Param("id"), middleware.GetUserID(ctx), services.UpdateTeamFormationParams{
			MinTeamSize:           req.MinTeamSize,
			MaxTeamSize:           req.MaxTeamSize,
			TeamFormationDeadline: req.TeamFormationDeadline,
			AllowIndividualWork:   req.AllowIndividualWork,
			AutoTeamFormation:     req.AutoTeamFormation,
		})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      project,
		Timestamp: time.Now(),
	})
}
