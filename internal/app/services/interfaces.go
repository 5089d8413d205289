package services

import (
	"context"

	"github.com/elevatehq/elevate-backend/internal/app/models"
)

// Repository contracts consumed by the services. Persistence is an external
// collaborator behind these interfaces; the pgx implementations live in
// internal/app/repositories. Lookups return (nil, nil) when the entity does
// not exist, including when it exists under a different tenant.

// OrganizationRepository persists tenants
type OrganizationRepository interface {
	GetByID(ctx context.Context, id string) (*models.Organization, error)
	GetBySlug(ctx context.Context, slug string) (*models.Organization, error)
	GetByDomain(ctx context.Context, domain string) (*models.Organization, error)
	Create(ctx context.Context, org *models.Organization) error
	Update(ctx context.Context, org *models.Organization) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context, skip, limit int) ([]*models.Organization, error)
}

// UserRepository persists tenant-scoped platform accounts
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmailAndTenant(ctx context.Context, email, tenantID string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	ListByTenant(ctx context.Context, tenantID string, skip, limit int) ([]*models.User, error)
}

// CourseRepository persists courses
type CourseRepository interface {
	GetByID(ctx context.Context, id string) (*models.Course, error)
	GetByIDAndTenant(ctx context.Context, id, tenantID string) (*models.Course, error)
	GetByCode(ctx context.Context, code, tenantID string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	// CreateWithPrimaryInstructor writes the course and its primary-instructor
	// assignment as one atomic unit; neither row survives if the other fails.
	CreateWithPrimaryInstructor(ctx context.Context, course *models.Course, assignment *models.CourseInstructor) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
	ListByTenant(ctx context.Context, tenantID string, skip, limit int) ([]*models.Course, error)
	ListByInstructor(ctx context.Context, instructorID, tenantID string, skip, limit int) ([]*models.Course, error)
	ListByStudent(ctx context.Context, studentID, tenantID string, skip, limit int) ([]*models.Course, error)
	ListByDepartment(ctx context.Context, department, tenantID string, skip, limit int) ([]*models.Course, error)
	SearchCourses(ctx context.Context, query, tenantID string, skip, limit int) ([]*models.Course, error)
}

// CourseInstructorRepository persists course-instructor assignments
type CourseInstructorRepository interface {
	GetByID(ctx context.Context, id string) (*models.CourseInstructor, error)
	GetByCourseAndInstructor(ctx context.Context, courseID, instructorID string) ([]*models.CourseInstructor, error)
	Create(ctx context.Context, assignment *models.CourseInstructor) error
	Update(ctx context.Context, assignment *models.CourseInstructor) error
	Delete(ctx context.Context, id string) error
	ListByCourse(ctx context.Context, courseID string) ([]*models.CourseInstructor, error)
	ListByInstructor(ctx context.Context, instructorID, tenantID string) ([]*models.CourseInstructor, error)
	// CheckInstructorPermission reports whether any active assignment exists
	// for the pair. Permission never depends on the assignment's role.
	CheckInstructorPermission(ctx context.Context, courseID, instructorID string) (bool, error)
}

// ProjectRepository persists team-formation projects
type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*models.Project, error)
	GetByIDAndTenant(ctx context.Context, id, tenantID string) (*models.Project, error)
	Create(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id string) error
	ListByCourse(ctx context.Context, courseID string, skip, limit int) ([]*models.Project, error)
	ListActiveProjects(ctx context.Context, tenantID string, skip, limit int) ([]*models.Project, error)
	ListPublishedProjects(ctx context.Context, courseID string, skip, limit int) ([]*models.Project, error)
	ListTeamFormationOpen(ctx context.Context, tenantID string, skip, limit int) ([]*models.Project, error)
}

// EnrollmentRepository persists course enrollments
type EnrollmentRepository interface {
	GetByID(ctx context.Context, id string) (*models.CourseEnrollment, error)
	GetByCourseAndStudent(ctx context.Context, courseID, studentID string) (*models.CourseEnrollment, error)
	Create(ctx context.Context, enrollment *models.CourseEnrollment) error
	Update(ctx context.Context, enrollment *models.CourseEnrollment) error
	Delete(ctx context.Context, id string) error
	ListByCourse(ctx context.Context, courseID string, status *models.EnrollmentStatus, skip, limit int) ([]*models.CourseEnrollment, error)
	ListByStudent(ctx context.Context, studentID, tenantID string, status *models.EnrollmentStatus, skip, limit int) ([]*models.CourseEnrollment, error)
	CountActiveEnrollments(ctx context.Context, courseID string) (int, error)
	ListPendingEnrollments(ctx context.Context, tenantID string, skip, limit int) ([]*models.CourseEnrollment, error)
	// BulkEnroll inserts (or reactivates) the given enrollments as one unit
	BulkEnroll(ctx context.Context, enrollments []*models.CourseEnrollment) ([]*models.CourseEnrollment, error)
	// ApproveWithCapacityCheck flips a PENDING enrollment to ACTIVE with the
	// capacity re-count and the status update executed atomically against the
	// course row. Returns apperrors.ErrCourseFull when the count is at the
	// course's max_students.
	ApproveWithCapacityCheck(ctx context.Context, enrollment *models.CourseEnrollment, course *models.Course) (*models.CourseEnrollment, error)
}
