package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/elevatehq/elevate-backend/internal/app/models"
	"github.com/elevatehq/elevate-backend/internal/db"
	"github.com/elevatehq/elevate-backend/internal/pkg/apperrors"
	"github.com/elevatehq/elevate-backend/internal/pkg/dberrors"
)

const courseInstructorColumns = `id, tenant_id, course_id, instructor_id, role, assigned_at, is_active, created_at, updated_at`

const insertCourseInstructorSQL = `
	INSERT INTO course_instructors (id, tenant_id, course_id, instructor_id, role, assigned_at, is_active, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

// CourseInstructorRepository handles database operations for course-instructor
// assignments
type CourseInstructorRepository struct {
	db *db.PostgresDB
}

// NewCourseInstructorRepository creates a new course instructor repository
func NewCourseInstructorRepository(database *db.PostgresDB) *CourseInstructorRepository {
	return &CourseInstructorRepository{db: database}
}

func scanCourseInstructor(row pgx.Row) (*models.CourseInstructor, error) {
	var assignment models.CourseInstructor
	err := row.Scan(
		&assignment.ID,
		&assignment.TenantID,
		&assignment.CourseID,
		&assignment.InstructorID,
		&assignment.Role,
		&assignment.AssignedAt,
		&assignment.IsActive,
		&assignment.CreatedAt,
		&assignment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning course instructor: %w", err)
	}
	return &assignment, nil
}

func scanCourseInstructors(rows pgx.Rows) ([]*models.CourseInstructor, error) {
	defer rows.Close()

	var assignments []*models.CourseInstructor
	for rows.Next() {
		assignment, err := scanCourseInstructor(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assignments, nil
}

// GetByID retrieves an assignment by ID
func (r *CourseInstructorRepository) GetByID(ctx context.Context, id string) (*models.CourseInstructor, error) {
	query := `SELECT ` + courseInstructorColumns + ` FROM course_instructors WHERE id = $1`
	return scanCourseInstructor(r.db.Pool.QueryRow(ctx, query, id))
}

// GetByCourseAndInstructor retrieves all assignments for a (course, instructor)
// pair; an instructor may hold several roles on the same course.
func (r *CourseInstructorRepository) GetByCourseAndInstructor(ctx context.Context, courseID, instructorID string) ([]*models.CourseInstructor, error) {
	query := `SELECT ` + courseInstructorColumns + ` FROM course_instructors WHERE course_id = $1 AND instructor_id = $2`
	rows, err := r.db.Pool.Query(ctx, query, courseID, instructorID)
	if err != nil {
		return nil, err
	}
	return scanCourseInstructors(rows)
}

// Create inserts a new assignment
func (r *CourseInstructorRepository) Create(ctx context.Context, assignment *models.CourseInstructor) error {
	_, err := r.db.Pool.Exec(ctx, insertCourseInstructorSQL,
		assignment.ID, assignment.TenantID, assignment.CourseID, assignment.InstructorID,
		assignment.Role, assignment.AssignedAt, assignment.IsActive,
		assignment.CreatedAt, assignment.UpdatedAt,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintCourseInstructorRole) {
			return apperrors.ErrDuplicateAssignment
		}
		return fmt.Errorf("error creating course instructor: %w", err)
	}
	return nil
}

// Update updates an existing assignment
func (r *CourseInstructorRepository) Update(ctx context.Context, assignment *models.CourseInstructor) error {
	query := `
		UPDATE course_instructors
		SET role = $1, is_active = $2, updated_at = NOW()
		WHERE id = $3
	`
	cmdTag, err := r.db.Pool.Exec(ctx, query, assignment.Role, assignment.IsActive, assignment.ID)
	if err != nil {
		return fmt.Errorf("error updating course instructor: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// Delete removes an assignment
func (r *CourseInstructorRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Pool.Exec(ctx, `DELETE FROM course_instructors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course instructor: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// ListByCourse lists all assignments on a course
func (r *CourseInstructorRepository) ListByCourse(ctx context.Context, courseID string) ([]*models.CourseInstructor, error) {
	query := `SELECT ` + courseInstructorColumns + ` FROM course_instructors WHERE course_id = $1 ORDER BY assigned_at`
	rows, err := r.db.Pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	return scanCourseInstructors(rows)
}

// ListByInstructor lists a user's assignments within a tenant
func (r *CourseInstructorRepository) ListByInstructor(ctx context.Context, instructorID, tenantID string) ([]*models.CourseInstructor, error) {
	query := `SELECT ` + courseInstructorColumns + ` FROM course_instructors WHERE instructor_id = $1 AND tenant_id = $2 ORDER BY assigned_at`
	rows, err := r.db.Pool.Query(ctx, query, instructorID, tenantID)
	if err != nil {
		return nil, err
	}
	return scanCourseInstructors(rows)
}

// CheckInstructorPermission reports whether any active assignment exists for
// the pair. The role column is deliberately not consulted.
func (r *CourseInstructorRepository) CheckInstructorPermission(ctx context.Context, courseID, instructorID string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM course_instructors
			WHERE course_id = $1 AND instructor_id = $2 AND is_active = TRUE
		)`,
		courseID, instructorID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking instructor permission: %w", err)
	}
	return exists, nil
}
