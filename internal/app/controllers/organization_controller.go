package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elevatehq/elevate-backend/internal/app/models/dto"
	"github.com/elevatehq/elevate-backend/internal/app/services"
	"github.com/elevatehq/elevate-backend/internal/middleware"
)

// OrganizationController handles tenant management operations
type OrganizationController struct {
	organizationService *services.OrganizationService
}

// NewOrganizationController creates a new OrganizationController
func NewOrganizationController(organizationService *services.OrganizationService) *OrganizationController {
	return &OrganizationController{
		organizationService: organizationService,
	}
}

// CreateOrganization handles tenant creation
// @Summary Create a new organization
// @Description Creates a new tenant organization with a globally unique slug
// @Tags organizations
// @Accept json
// @Produce json
// @Param request body dto.CreateOrganizationRequest true "Organization information"
// @Success 201 {object} dto.APIResponse{data=models.Organization} "Organization created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Slug or domain already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /organizations [post]
func (c *OrganizationController) CreateOrganization(ctx *gin.Context) {
	var req dto.CreateOrganizationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid organization data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	org, err := c.organizationService.CreateOrganization(ctx, services.CreateOrganizationParams{
		Name:   req.Name,
		Slug:   req.Slug,
		Email:  req.Email,
		Domain: req.Domain,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      org,
		Timestamp: time.Now(),
	})
}

// GetOrganization retrieves a tenant by ID
// @Summary Get organization by ID
// @Tags organizations
// @Produce json
// @Param id path string true "Organization ID"
// @Success 200 {object} dto.APIResponse{data=models.Organization} "Organization retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Organization not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /organizations/{id} [get]
func (c *OrganizationController) GetOrganization(ctx *gin.Context) {
	org, err := c.organizationService.GetOrganization(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      org,
		Timestamp: time.Now(),
	})
}

// GetOrganizationBySlug retrieves a tenant by its slug
// @Summary Get organization by slug
// @Tags organizations
// @Produce json
// @Param slug path string true "Organization slug"
// @Success 200 {object} dto.APIResponse{data=models.Organization} "Organization retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Organization not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /organizations/slug/{slug} [get]
func (c *OrganizationController) GetOrganizationBySlug(ctx *gin.Context) {
	org, err := c.organizationService.GetOrganizationBySlug(ctx, ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      org,
		Timestamp: time.Now(),
	})
}

// ValidateSlug checks slug availability
// @Summary Check slug availability
// @Tags organizations
// @Accept json
// @Produce json
// @Param request body dto.ValidateSlugRequest true "Slug to check"
// @Success 200 {object} dto.APIResponse{data=dto.SlugAvailabilityResponse} "Availability result"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /organizations/validate-slug [post]
func (c *OrganizationController) ValidateSlug(ctx *gin.Context) {
	var req dto.ValidateSlugRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid slug data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	available, err := c.organizationService.ValidateSlug(ctx, req.Slug, req.ExcludeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.SlugAvailabilityResponse{
			Slug:      req.Slug,
			Available: available,
		},
		Timestamp: time.Now(),
	})
}

// ListOrganizations lists all tenants
// @Summary List organizations
// @Tags organizations
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Items to skip"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.Organization} "Organizations retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /organizations [get]
func (c *OrganizationController) ListOrganizations(ctx *gin.Context) {
	skip, limit := parsePagination(ctx)

	orgs, err := c.organizationService.ListOrganizations(ctx, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.PaginatedResponse{
			Items:      orgs,
			Pagination: dto.PaginationInfo{Skip: skip, Limit: limit, Count: len(orgs)},
		},
		Timestamp: time.Now(),
	})
}
