package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Unique constraint names from the schema (see migrations/001_init.sql)
const (
	ConstraintOrgSlug              = "uq_organization_slug"
	ConstraintOrgDomain            = "uq_organization_domain"
	ConstraintUserEmailPerTenant   = "uq_user_email_per_tenant"
	ConstraintCourseCodePerTenant  = "uq_course_code_per_tenant"
	ConstraintCourseInstructorRole = "uq_course_instructor_role"
	ConstraintCourseStudentPair    = "uq_course_student_enrollment"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique
// violation (23505) on the named constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraintName
}

// IsUniqueViolation checks for any unique violation regardless of constraint
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
