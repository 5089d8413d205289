package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/elevatehq/elevate-backend/internal/app/models"
	"github.com/elevatehq/elevate-backend/internal/config"
	"github.com/elevatehq/elevate-backend/internal/pkg/apperrors"
)

// ProjectService orchestrates team-formation projects: creation, publication
// and team-formation-setting updates. Any active instructor assignment on the
// course grants permission; the assignment's role is never consulted.
type ProjectService struct {
	projectRepo    ProjectRepository
	instructorRepo CourseInstructorRepository
	cfg            *config.Config
}

// NewProjectService creates a new project service instance
func NewProjectService(projectRepo ProjectRepository, instructorRepo CourseInstructorRepository, cfg *config.Config) *ProjectService {
	return &ProjectService{
		projectRepo:    projectRepo,
		instructorRepo: instructorRepo,
		cfg:            cfg,
	}
}

// CreateProjectParams carries the input for CreateProject. Nil team-size
// bounds fall back to the configured defaults.
type CreateProjectParams struct {
	CourseID              string
	Name                  string
	StartDate             time.Time
	DueDate               time.Time
	TeamFormationDeadline time.Time
	TenantID              string
	InstructorID          string
	Description           *string
	Instructions          *string
	MinTeamSize           *int
	MaxTeamSize           *int
	AllowIndividualWork   bool
}

// CreateProject creates a new project on a course. The caller must hold an
// active instructor assignment on the course.
func (s *ProjectService) CreateProject(ctx context.Context, params CreateProjectParams) (*models.Project, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, apperrors.NewBadRequestError("project name cannot be empty")
	}

	hasPermission, err := s.instructorRepo.CheckInstructorPermission(ctx, params.CourseID, params.InstructorID)
	if err != nil {
		return nil, fmt.Errorf("error checking instructor permission: %w", err)
	}
	if !hasPermission {
		return nil, apperrors.ErrPermissionDenied
	}

	minSize := s.cfg.TeamFormation.DefaultMinTeamSize
	if params.MinTeamSize != nil {
		minSize = *params.MinTeamSize
	}
	maxSize := s.cfg.TeamFormation.DefaultMaxTeamSize
	if params.MaxTeamSize != nil {
		maxSize = *params.MaxTeamSize
	}

	if err := validateProjectSettings(params.StartDate, params.DueDate, params.TeamFormationDeadline, minSize, maxSize); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	project := &models.Project{
		ID:                    uuid.NewString(),
		TenantID:              params.TenantID,
		CourseID:              params.CourseID,
		Name:                  params.Name,
		Description:           params.Description,
		Instructions:          params.Instructions,
		StartDate:             params.StartDate,
		DueDate:               params.DueDate,
		TeamFormationDeadline: params.TeamFormationDeadline,
		MinTeamSize:           minSize,
		MaxTeamSize:           maxSize,
		AllowIndividualWork:   params.AllowIndividualWork,
		AutoTeamFormation:     true,
		ManualTeamCreation:    true,
		IsActive:              true,
		IsPublished:           false,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("error creating project: %w", err)
	}

	return project, nil
}

// PublishProject makes a project visible to students. Publishing an already
// published project is not an error and leaves state unchanged.
func (s *ProjectService) PublishProject(ctx context.Context, projectID, instructorID string) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving project: %w", err)
	}
	if project == nil {
		return nil, apperrors.ErrProjectNotFound
	}

	hasPermission, err := s.instructorRepo.CheckInstructorPermission(ctx, project.CourseID, instructorID)
	if err != nil {
		return nil, fmt.Errorf("error checking instructor permission: %w", err)
	}
	if !hasPermission {
		return nil, apperrors.ErrPermissionDenied
	}

	if project.IsPublished {
		return project, nil
	}

	project.IsPublished = true
	project.UpdatedAt = time.Now().UTC()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("error publishing project: %w", err)
	}

	return project, nil
}

// UpdateTeamFormationParams carries the partial update for
// UpdateTeamFormationSettings; only non-nil fields are applied.
type UpdateTeamFormationParams struct {
	MinTeamSize           *int
	MaxTeamSize           *int
	TeamFormationDeadline *time.Time
	AllowIndividualWork   *bool
	AutoTeamFormation     *bool
}

// UpdateTeamFormationSettings applies a partial update to a project's
// team-formation settings and re-validates the resulting state. No freeze is
// applied once the formation window has opened or passed.
func (s *ProjectService) UpdateTeamFormationSettings(ctx context.Context, projectID, instructorID string, params UpdateTeamFormationParams) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving project: %w", err)
	}
	if project == nil {
		return nil, apperrors.ErrProjectNotFound
	}

	hasPermission, err := s.instructorRepo.CheckInstructorPermission(ctx, project.CourseID, instructorID)
	if err != nil {
		return nil, fmt.Errorf("error checking instructor permission: %w", err)
	}
	if !hasPermission {
		return nil, apperrors.ErrPermissionDenied
	}

	if params.MinTeamSize != nil {
		project.MinTeamSize = *params.MinTeamSize
	}
	if params.MaxTeamSize != nil {
		project.MaxTeamSize = *params.MaxTeamSize
	}
	if params.TeamFormationDeadline != nil {
		project.TeamFormationDeadline = *params.TeamFormationDeadline
	}
	if params.AllowIndividualWork != nil {
		project.AllowIndividualWork = *params.AllowIndividualWork
	}
	if params.AutoTeamFormation != nil {
		project.AutoTeamFormation = *params.AutoTeamFormation
	}

	if project.MinTeamSize > project.MaxTeamSize {
		return nil, apperrors.ErrInvalidTeamSize
	}
	if project.TeamFormationDeadline.After(project.DueDate) {
		return nil, apperrors.ErrInvalidDeadline
	}

	project.UpdatedAt = time.Now().UTC()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("error updating project: %w", err)
	}

	return project, nil
}

// GetProject retrieves a project under the tenant
func (s *ProjectService) GetProject(ctx context.Context, projectID, tenantID string) (*models.Project, error) {
	project, err := s.projectRepo.GetByIDAndTenant(ctx, projectID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving project: %w", err)
	}
	if project == nil {
		return nil, apperrors.ErrProjectNotFound
	}
	return project, nil
}

// ListProjectsByCourse lists a course's projects
func (s *ProjectService) ListProjectsByCourse(ctx context.Context, courseID string, skip, limit int) ([]*models.Project, error) {
	projects, err := s.projectRepo.ListByCourse(ctx, courseID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing projects: %w", err)
	}
	return projects, nil
}

// ListTeamFormationOpen lists the tenant's projects whose team-formation
// window is currently open (active, published, deadline not passed).
func (s *ProjectService) ListTeamFormationOpen(ctx context.Context, tenantID string, skip, limit int) ([]*models.Project, error) {
	projects, err := s.projectRepo.ListTeamFormationOpen(ctx, tenantID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing team formation open projects: %w", err)
	}
	return projects, nil
}

// validateProjectSettings checks the date and team-size invariants shared by
// create and update paths.
func validateProjectSettings(startDate, dueDate, teamFormationDeadline time.Time, minTeamSize, maxTeamSize int) error {
	if !startDate.Before(dueDate) {
		return apperrors.ErrInvalidDateRange
	}
	if teamFormationDeadline.After(dueDate) {
		return apperrors.ErrInvalidDeadline
	}
	if minTeamSize > maxTeamSize {
		return apperrors.ErrInvalidTeamSize
	}
	if minTeamSize < 1 {
		return apperrors.NewBadRequestError("minimum team size must be at least 1")
	}
	return nil
}
