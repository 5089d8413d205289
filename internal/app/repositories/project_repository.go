package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/elevatehq/elevate-backend/internal/app/models"
	"github.com/elevatehq/elevate-backend/internal/db"
	"github.com/elevatehq/elevate-backend/internal/pkg/apperrors"
)

const projectColumns = `id, tenant_id, course_id, name, description, instructions,
	start_date, due_date, team_formation_deadline, min_team_size, max_team_size,
	allow_individual_work, auto_team_formation, manual_team_creation,
	is_active, is_published, requires_approval, created_at, updated_at`

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *db.PostgresDB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(database *db.PostgresDB) *ProjectRepository {
	return &ProjectRepository{db: database}
}

func scanProject(row pgx.Row) (*models.Project, error) {
	var project models.Project
	err := row.Scan(
		&project.ID,
		&project.TenantID,
		&project.CourseID,
		&project.Name,
		&project.Description,
		&project.Instructions,
		&project.StartDate,
		&project.DueDate,
		&project.TeamFormationDeadline,
		&project.MinTeamSize,
		&project.MaxTeamSize,
		&project.AllowIndividualWork,
		&project.AutoTeamFormation,
		&project.ManualTeamCreation,
		&project.IsActive,
		&project.IsPublished,
		&project.RequiresApproval,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning project: %w", err)
	}
	return &project, nil
}

func scanProjects(rows pgx.Rows) ([]*models.Project, error) {
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return scanProject(r.db.Pool.QueryRow(ctx, query, id))
}

// GetByIDAndTenant retrieves a project by ID scoped to a tenant
func (r *ProjectRepository) GetByIDAndTenant(ctx context.Context, id, tenantID string) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND tenant_id = $2`
	return scanProject(r.db.Pool.QueryRow(ctx, query, id, tenantID))
}

// Create inserts a new project
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (id, tenant_id, course_id, name, description, instructions,
			start_date, due_date, team_formation_deadline, min_team_size, max_team_size,
			allow_individual_work, auto_team_formation, manual_team_creation,
			is_active, is_published, requires_approval, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	_, err := r.db.Pool.Exec(ctx, query,
		project.ID, project.TenantID, project.CourseID, project.Name, project.Description,
		project.Instructions, project.StartDate, project.DueDate, project.TeamFormationDeadline,
		project.MinTeamSize, project.MaxTeamSize, project.AllowIndividualWork,
		project.AutoTeamFormation, project.ManualTeamCreation, project.IsActive,
		project.IsPublished, project.RequiresApproval, project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating project: %w", err)
	}
	return nil
}

// Update updates an existing project
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := `
		UPDATE projects
		SET name = $1, description = $2, instructions = $3, start_date = $4, due_date = $5,
			team_formation_deadline = $6, min_team_size = $7, max_team_size = $8,
			allow_individual_work = $9, auto_team_formation = $10, manual_team_creation = $11,
			is_active = $12, is_published = $13, requires_approval = $14, updated_at = NOW()
		WHERE id = $15
	`
	cmdTag, err := r.db.Pool.Exec(ctx, query,
		project.Name, project.Description, project.Instructions, project.StartDate,
		project.DueDate, project.TeamFormationDeadline, project.MinTeamSize,
		project.MaxTeamSize, project.AllowIndividualWork, project.AutoTeamFormation,
		project.ManualTeamCreation, project.IsActive, project.IsPublished,
		project.RequiresApproval, project.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating project: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProjectNotFound
	}
	return nil
}

// Delete removes a project
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting project: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProjectNotFound
	}
	return nil
}

// ListByCourse lists a course's projects
func (r *ProjectRepository) ListByCourse(ctx context.Context, courseID string, skip, limit int) ([]*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE course_id = $1 ORDER BY due_date OFFSET $2 LIMIT $3`
	rows, err := r.db.Pool.Query(ctx, query, courseID, skip, limit)
	if err != nil {
		return nil, err
	}
	return scanProjects(rows)
}

// ListActiveProjects lists a tenant's active projects
func (r *ProjectRepository) ListActiveProjects(ctx context.Context, tenantID string, skip, limit int) ([]*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE tenant_id = $1 AND is_active = TRUE ORDER BY due_date OFFSET $2 LIMIT $3`
	rows, err := r.db.Pool.Query(ctx, query, tenantID, skip, limit)
	if err != nil {
		return nil, err
	}
	return scanProjects(rows)
}

// ListPublishedProjects lists a course's published projects
func (r *ProjectRepository) ListPublishedProjects(ctx context.Context, courseID string, skip, limit int) ([]*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE course_id = $1 AND is_published = TRUE ORDER BY due_date OFFSET $2 LIMIT $3`
	rows, err := r.db.Pool.Query(ctx, query, courseID, skip, limit)
	if err != nil {
		return nil, err
	}
	return scanProjects(rows)
}

// ListTeamFormationOpen lists the tenant's projects whose team-formation
// window is open: active, published, deadline not yet passed.
func (r *ProjectRepository) ListTeamFormationOpen(ctx context.Context, tenantID string, skip, limit int) ([]*models.Project, error) {
	query := `
		SELECT ` + projectColumns + ` FROM projects
		WHERE tenant_id = $1 AND is_active = TRUE AND is_published = TRUE AND team_formation_deadline >= NOW()
		ORDER BY team_formation_deadline OFFSET $2 LIMIT $3
	`
	rows, err := r.db.Pool.Query(ctx, query, tenantID, skip, limit)
	if err != nil {
		return nil, err
	}
	return scanProjects(rows)
}
