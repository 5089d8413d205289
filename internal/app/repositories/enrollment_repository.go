package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/elevatehq/elevate-backend/internal/app/models"
	"github.com/elevatehq/elevate-backend/internal/db"
	"github.com/elevatehq/elevate-backend/internal/pkg/apperrors"
	"github.com/elevatehq/elevate-backend/internal/pkg/dberrors"
)

const enrollmentColumns = `id, tenant_id, course_id, student_id, status, enrollment_method,
	enrolled_at, dropped_at, completion_date, grade, notes, created_at, updated_at`

// EnrollmentRepository handles database operations for course enrollments
type EnrollmentRepository struct {
	db *db.PostgresDB
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(database *db.PostgresDB) *EnrollmentRepository {
	return &EnrollmentRepository{db: database}
}

func scanEnrollment(row pgx.Row) (*models.CourseEnrollment, error) {
	var enrollment models.CourseEnrollment
	err := row.Scan(
		&enrollment.ID,
		&enrollment.TenantID,
		&enrollment.CourseID,
		&enrollment.StudentID,
		&enrollment.Status,
		&enrollment.EnrollmentMethod,
		&enrollment.EnrolledAt,
		&enrollment.DroppedAt,
		&enrollment.CompletionDate,
		&enrollment.Grade,
		&enrollment.Notes,
		&enrollment.CreatedAt,
		&enrollment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning enrollment: %w", err)
	}
	return &enrollment, nil
}

func scanEnrollments(rows pgx.Rows) ([]*models.CourseEnrollment, error) {
	defer rows.Close()

	var enrollments []*models.CourseEnrollment
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, enrollment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return enrollments, nil
}

// GetByID retrieves an enrollment by ID
func (r *EnrollmentRepository) GetByID(ctx context.Context, id string) (*models.CourseEnrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM course_enrollments WHERE id = $1`
	return scanEnrollment(r.db.Pool.QueryRow(ctx, query, id))
}

// GetByCourseAndStudent retrieves the unique enrollment row for a pair
func (r *EnrollmentRepository) GetByCourseAndStudent(ctx context.Context, courseID, studentID string) (*models.CourseEnrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM course_enrollments WHERE course_id = $1 AND student_id = $2`
	return scanEnrollment(r.db.Pool.QueryRow(ctx, query, courseID, studentID))
}

const insertEnrollmentSQL = `
	INSERT INTO course_enrollments (id, tenant_id, course_id, student_id, status, enrollment_method,
		enrolled_at, dropped_at, completion_date, grade, notes, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`

// Create inserts a new enrollment
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.CourseEnrollment) error {
	_, err := r.db.Pool.Exec(ctx, insertEnrollmentSQL,
		enrollment.ID, enrollment.TenantID, enrollment.CourseID, enrollment.StudentID,
		enrollment.Status, enrollment.EnrollmentMethod, enrollment.EnrolledAt,
		enrollment.DroppedAt, enrollment.CompletionDate, enrollment.Grade, enrollment.Notes,
		enrollment.CreatedAt, enrollment.UpdatedAt,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintCourseStudentPair) {
			return apperrors.ErrAlreadyEnrolled
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}
	return nil
}

const updateEnrollmentSQL = `
	UPDATE course_enrollments
	SET status = $1, enrollment_method = $2, enrolled_at = $3, dropped_at = $4,
		completion_date = $5, grade = $6, notes = $7, updated_at = NOW()
	WHERE id = $8
`

// Update updates an existing enrollment
func (r *EnrollmentRepository) Update(ctx context.Context, enrollment *models.CourseEnrollment) error {
	cmdTag, err := r.db.Pool.Exec(ctx, updateEnrollmentSQL,
		enrollment.Status, enrollment.EnrollmentMethod, enrollment.EnrolledAt,
		enrollment.DroppedAt, enrollment.CompletionDate, enrollment.Grade, enrollment.Notes,
		enrollment.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating enrollment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}

// Delete removes an enrollment
func (r *EnrollmentRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Pool.Exec(ctx, `DELETE FROM course_enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}

// ListByCourse lists a course's enrollments, optionally filtered by status
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID string, status *models.EnrollmentStatus, skip, limit int) ([]*models.CourseEnrollment, error) {
	var rows pgx.Rows
	var err error
	if status != nil {
		query := `SELECT ` + enrollmentColumns + ` FROM course_enrollments WHERE course_id = $1 AND status = $2 ORDER BY enrolled_at OFFSET $3 LIMIT $4`
		rows, err = r.db.Pool.Query(ctx, query, courseID, *status, skip, limit)
	} else {
		query := `SELECT ` + enrollmentColumns + ` FROM course_enrollments WHERE course_id = $1 ORDER BY enrolled_at OFFSET $2 LIMIT $3`
		rows, err = r.db.Pool.Query(ctx, query, courseID, skip, limit)
	}
	if err != nil {
		return nil, err
	}
	return scanEnrollments(rows)
}

// ListByStudent lists a student's enrollments within a tenant
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID, tenantID string, status *models.EnrollmentStatus, skip, limit int) ([]*models.CourseEnrollment, error) {
	var rows pgx.Rows
	var err error
	if status != nil {
		query := `SELECT ` + enrollmentColumns + ` FROM course_enrollments WHERE student_id = $1 AND tenant_id = $2 AND status = $3 ORDER BY enrolled_at OFFSET $4 LIMIT $5`
		rows, err = r.db.Pool.Query(ctx, query, studentID, tenantID, *status, skip, limit)
	} else {
		query := `SELECT ` + enrollmentColumns + ` FROM course_enrollments WHERE student_id = $1 AND tenant_id = $2 ORDER BY enrolled_at OFFSET $3 LIMIT $4`
		rows, err = r.db.Pool.Query(ctx, query, studentID, tenantID, skip, limit)
	}
	if err != nil {
		return nil, err
	}
	return scanEnrollments(rows)
}

// CountActiveEnrollments counts a course's ACTIVE enrollments
func (r *EnrollmentRepository) CountActiveEnrollments(ctx context.Context, courseID string) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM course_enrollments WHERE course_id = $1 AND status = 'active'`,
		courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting active enrollments: %w", err)
	}
	return count, nil
}

// ListPendingEnrollments lists a tenant's pending enrollments
func (r *EnrollmentRepository) ListPendingEnrollments(ctx context.Context, tenantID string, skip, limit int) ([]*models.CourseEnrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM course_enrollments WHERE tenant_id = $1 AND status = 'pending' ORDER BY enrolled_at OFFSET $2 LIMIT $3`
	rows, err := r.db.Pool.Query(ctx, query, tenantID, skip, limit)
	if err != nil {
		return nil, err
	}
	return scanEnrollments(rows)
}

// BulkEnroll writes the given enrollments (inserts and reactivations) inside
// one transaction. Capacity is deliberately not checked here.
func (r *EnrollmentRepository) BulkEnroll(ctx context.Context, enrollments []*models.CourseEnrollment) ([]*models.CourseEnrollment, error) {
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, enrollment := range enrollments {
			cmdTag, err := tx.Exec(ctx, updateEnrollmentSQL,
				enrollment.Status, enrollment.EnrollmentMethod, enrollment.EnrolledAt,
				enrollment.DroppedAt, enrollment.CompletionDate, enrollment.Grade,
				enrollment.Notes, enrollment.ID,
			)
			if err != nil {
				return fmt.Errorf("error upserting enrollment: %w", err)
			}
			if cmdTag.RowsAffected() > 0 {
				continue
			}
			if _, err := tx.Exec(ctx, insertEnrollmentSQL,
				enrollment.ID, enrollment.TenantID, enrollment.CourseID, enrollment.StudentID,
				enrollment.Status, enrollment.EnrollmentMethod, enrollment.EnrolledAt,
				enrollment.DroppedAt, enrollment.CompletionDate, enrollment.Grade,
				enrollment.Notes, enrollment.CreatedAt, enrollment.UpdatedAt,
			); err != nil {
				return fmt.Errorf("error inserting enrollment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}

// ApproveWithCapacityCheck re-counts the course's active enrollments and flips
// the enrollment to ACTIVE in one transaction, locking the course row so
// concurrent approvals cannot jointly overshoot max_students.
func (r *EnrollmentRepository) ApproveWithCapacityCheck(ctx context.Context, enrollment *models.CourseEnrollment, course *models.Course) (*models.CourseEnrollment, error) {
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var maxStudents *int
		if err := tx.QueryRow(ctx,
			`SELECT max_students FROM courses WHERE id = $1 FOR UPDATE`,
			course.ID).Scan(&maxStudents); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrCourseNotFound
			}
			return fmt.Errorf("error locking course row: %w", err)
		}

		if maxStudents != nil {
			var activeCount int
			if err := tx.QueryRow(ctx,
				`SELECT COUNT(*) FROM course_enrollments WHERE course_id = $1 AND status = 'active'`,
				course.ID).Scan(&activeCount); err != nil {
				return fmt.Errorf("error counting active enrollments: %w", err)
			}
			if activeCount >= *maxStudents {
				return apperrors.ErrCourseFull
			}
		}

		cmdTag, err := tx.Exec(ctx,
			`UPDATE course_enrollments SET status = 'active', updated_at = NOW() WHERE id = $1 AND status = 'pending'`,
			enrollment.ID)
		if err != nil {
			return fmt.Errorf("error activating enrollment: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrInvalidEnrollmentState
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	enrollment.Status = models.EnrollmentActive
	enrollment.UpdatedAt = time.Now().UTC()
	return enrollment, nil
}
