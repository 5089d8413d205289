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

const courseColumns = `id, tenant_id, name, code, description, semester, year, credits, department,
	max_students, enrollment_deadline, drop_deadline, is_active, auto_approval, created_at, updated_at`

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *db.PostgresDB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(database *db.PostgresDB) *CourseRepository {
	return &CourseRepository{db: database}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	err := row.Scan(
		&course.ID,
		&course.TenantID,
		&course.Name,
		&course.Code,
		&course.Description,
		&course.Semester,
		&course.Year,
		&course.Credits,
		&course.Department,
		&course.MaxStudents,
		&course.EnrollmentDeadline,
		&course.DropDeadline,
		&course.IsActive,
		&course.AutoApproval,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning course: %w", err)
	}
	return &course, nil
}

func scanCourses(rows pgx.Rows) ([]*models.Course, error) {
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return courses, nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	return scanCourse(r.db.Pool.QueryRow(ctx, query, id))
}

// GetByIDAndTenant retrieves a course by ID scoped to a tenant. A course under
// a different tenant is reported as not found.
func (r *CourseRepository) GetByIDAndTenant(ctx context.Context, id, tenantID string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1 AND tenant_id = $2`
	return scanCourse(r.db.Pool.QueryRow(ctx, query, id, tenantID))
}

// GetByCode retrieves a course by code within a tenant
func (r *CourseRepository) GetByCode(ctx context.Context, code, tenantID string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE code = $1 AND tenant_id = $2`
	return scanCourse(r.db.Pool.QueryRow(ctx, query, code, tenantID))
}

const insertCourseSQL = `
	INSERT INTO courses (id, tenant_id, name, code, description, semester, year, credits, department,
		max_students, enrollment_deadline, drop_deadline, is_active, auto_approval, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
`

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	_, err := r.db.Pool.Exec(ctx, insertCourseSQL,
		course.ID, course.TenantID, course.Name, course.Code, course.Description,
		course.Semester, course.Year, course.Credits, course.Department,
		course.MaxStudents, course.EnrollmentDeadline, course.DropDeadline,
		course.IsActive, course.AutoApproval, course.CreatedAt, course.UpdatedAt,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintCourseCodePerTenant) {
			return apperrors.ErrDuplicateCourseCode
		}
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// CreateWithPrimaryInstructor writes the course and its primary-instructor
// assignment inside one transaction; a failure on either write rolls back both.
func (r *CourseRepository) CreateWithPrimaryInstructor(ctx context.Context, course *models.Course, assignment *models.CourseInstructor) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insertCourseSQL,
			course.ID, course.TenantID, course.Name, course.Code, course.Description,
			course.Semester, course.Year, course.Credits, course.Department,
			course.MaxStudents, course.EnrollmentDeadline, course.DropDeadline,
			course.IsActive, course.AutoApproval, course.CreatedAt, course.UpdatedAt,
		); err != nil {
			if dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintCourseCodePerTenant) {
				return apperrors.ErrDuplicateCourseCode
			}
			return fmt.Errorf("error creating course: %w", err)
		}

		if _, err := tx.Exec(ctx, insertCourseInstructorSQL,
			assignment.ID, assignment.TenantID, assignment.CourseID, assignment.InstructorID,
			assignment.Role, assignment.AssignedAt, assignment.IsActive,
			assignment.CreatedAt, assignment.UpdatedAt,
		); err != nil {
			return fmt.Errorf("error creating primary instructor assignment: %w", err)
		}

		return nil
	})
}

// Update updates an existing course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET name = $1, code = $2, description = $3, semester = $4, year = $5, credits = $6,
			department = $7, max_students = $8, enrollment_deadline = $9, drop_deadline = $10,
			is_active = $11, auto_approval = $12, updated_at = NOW()
		WHERE id = $13
	`
	cmdTag, err := r.db.Pool.Exec(ctx, query,
		course.Name, course.Code, course.Description, course.Semester, course.Year,
		course.Credits, course.Department, course.MaxStudents, course.EnrollmentDeadline,
		course.DropDeadline, course.IsActive, course.AutoApproval, course.ID,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintCourseCodePerTenant) {
			return apperrors.ErrDuplicateCourseCode
		}
		return fmt.Errorf("error updating course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Delete deletes a course; instructor assignments, enrollments and projects
// cascade with it.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// ListByTenant lists courses of a tenant
func (r *CourseRepository) ListByTenant(ctx context.Context, tenantID string, skip, limit int) ([]*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE tenant_id = $1 ORDER BY created_at DESC OFFSET $2 LIMIT $3`
	rows, err := r.db.Pool.Query(ctx, query, tenantID, skip, limit)
	if err != nil {
		return nil, err
	}
	return scanCourses(rows)
}

// ListByInstructor lists courses a user holds an active assignment on
func (r *CourseRepository) ListByInstructor(ctx context.Context, instructorID, tenantID string, skip, limit int) ([]*models.Course, error) {
	query := `
		SELECT ` + courseColumns + ` FROM courses c
		WHERE c.tenant_id = $2 AND EXISTS (
			SELECT 1 FROM course_instructors ci
			WHERE ci.course_id = c.id AND ci.instructor_id = $1 AND ci.is_active = TRUE
		)
		ORDER BY c.created_at DESC OFFSET $3 LIMIT $4
	`
	rows, err := r.db.Pool.Query(ctx, query, instructorID, tenantID, skip, limit)
	if err != nil {
		return nil, err
	}
	return scanCourses(rows)
}

// ListByStudent lists courses a student holds an ACTIVE enrollment in
func (r *CourseRepository) ListByStudent(ctx context.Context, studentID, tenantID string, skip, limit int) ([]*models.Course, error) {
	query := `
		SELECT ` + courseColumns + ` FROM courses c
		WHERE c.tenant_id = $2 AND EXISTS (
			SELECT 1 FROM course_enrollments e
			WHERE e.course_id = c.id AND e.student_id = $1 AND e.status = 'active'
		)
		ORDER BY c.created_at DESC OFFSET $3 LIMIT $4
	`
	rows, err := r.db.Pool.Query(ctx, query, studentID, tenantID, skip, limit)
	if err != nil {
		return nil, err
	}
	return scanCourses(rows)
}

// ListByDepartment lists a tenant's courses in a department
func (r *CourseRepository) ListByDepartment(ctx context.Context, department, tenantID string, skip, limit int) ([]*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE department = $1 AND tenant_id = $2 ORDER BY created_at DESC OFFSET $3 LIMIT $4`
	rows, err := r.db.Pool.Query(ctx, query, department, tenantID, skip, limit)
	if err != nil {
		return nil, err
	}
	return scanCourses(rows)
}

// SearchCourses searches a tenant's courses by name or code
func (r *CourseRepository) SearchCourses(ctx context.Context, query, tenantID string, skip, limit int) ([]*models.Course, error) {
	sql := `
		SELECT ` + courseColumns + ` FROM courses
		WHERE tenant_id = $2 AND (name ILIKE '%' || $1 || '%' OR code ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC OFFSET $3 LIMIT $4
	`
	rows, err := r.db.Pool.Query(ctx, sql, query, tenantID, skip, limit)
	if err != nil {
		return nil, err
	}
	return scanCourses(rows)
}
