package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/elevatehq/elevate-backend/internal/app/models"
	"github.com/elevatehq/elevate-backend/internal/pkg/apperrors"
	"github.com/elevatehq/elevate-backend/internal/pkg/events"
	"github.com/elevatehq/elevate-backend/internal/pkg/logger"
)

// CourseService orchestrates course creation, instructor assignment and the
// enrollment lifecycle. Every lookup is tenant-scoped; an entity under a
// different tenant is treated as not found, never as a permission error.
type CourseService struct {
	courseRepo     CourseRepository
	instructorRepo CourseInstructorRepository
	enrollmentRepo EnrollmentRepository
	publisher      events.Publisher
}

// NewCourseService creates a new course service instance
func NewCourseService(
	courseRepo CourseRepository,
	instructorRepo CourseInstructorRepository,
	enrollmentRepo EnrollmentRepository,
	publisher events.Publisher,
) *CourseService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &CourseService{
		courseRepo:     courseRepo,
		instructorRepo: instructorRepo,
		enrollmentRepo: enrollmentRepo,
		publisher:      publisher,
	}
}

// CreateCourseParams carries the input for CreateCourse
type CreateCourseParams struct {
	Name                string
	Code                string
	Department          string
	Semester            string
	Year                int
	TenantID            string
	PrimaryInstructorID string
	Description         *string
	MaxStudents         *int
	Credits             *int
}

func (p *CreateCourseParams) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return apperrors.NewBadRequestError("course name cannot be empty")
	}
	if strings.TrimSpace(p.Code) == "" {
		return apperrors.NewBadRequestError("course code cannot be empty")
	}
	if strings.TrimSpace(p.Department) == "" {
		return apperrors.NewBadRequestError("department cannot be empty")
	}
	if p.TenantID == "" || p.PrimaryInstructorID == "" {
		return apperrors.NewBadRequestError("tenant and primary instructor are required")
	}
	if p.MaxStudents != nil && *p.MaxStudents <= 0 {
		return apperrors.NewBadRequestError("max students must be positive")
	}
	return nil
}

// CreateCourse creates a course and its primary-instructor assignment as one
// atomic unit. Fails with ErrDuplicateCourseCode when the (tenant, code) pair
// already exists.
func (s *CourseService) CreateCourse(ctx context.Context, params CreateCourseParams) (*models.Course, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	existing, err := s.courseRepo.GetByCode(ctx, params.Code, params.TenantID)
	if err != nil {
		return nil, fmt.Errorf("error checking course code: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateCourseCode
	}

	now := time.Now().UTC()
	course := &models.Course{
		ID:          uuid.NewString(),
		TenantID:    params.TenantID,
		Name:        params.Name,
		Code:        params.Code,
		Description: params.Description,
		Semester:    params.Semester,
		Year:        params.Year,
		Credits:     params.Credits,
		Department:  params.Department,
		MaxStudents: params.MaxStudents,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	assignment := &models.CourseInstructor{
		ID:           uuid.NewString(),
		TenantID:     params.TenantID,
		CourseID:     course.ID,
		InstructorID: params.PrimaryInstructorID,
		Role:         models.RolePrimaryInstructor,
		AssignedAt:   now,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.courseRepo.CreateWithPrimaryInstructor(ctx, course, assignment); err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	s.publisher.Publish(ctx, events.NewCourseCreated(course.ID, params.PrimaryInstructorID, course.Name, course.TenantID))

	logger.Info().
		Str("courseId", course.ID).
		Str("tenantId", course.TenantID).
		Str("code", course.Code).
		Msg("Course created")

	return course, nil
}

// AddInstructor assigns an instructor to a course. Fails with
// ErrDuplicateAssignment when an active assignment with the same role exists.
// The role is descriptive only and grants no differential permission.
func (s *CourseService) AddInstructor(ctx context.Context, courseID, instructorID string, role models.InstructorRole, tenantID string) (*models.CourseInstructor, error) {
	if !role.Valid() {
		return nil, apperrors.NewBadRequestError("unknown instructor role")
	}

	course, err := s.courseRepo.GetByIDAndTenant(ctx, courseID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}

	assignments, err := s.instructorRepo.GetByCourseAndInstructor(ctx, courseID, instructorID)
	if err != nil {
		return nil, fmt.Errorf("error checking existing assignments: %w", err)
	}
	for _, assignment := range assignments {
		if assignment.Role == role && assignment.IsActive {
			return nil, apperrors.ErrDuplicateAssignment
		}
	}

	now := time.Now().UTC()
	assignment := &models.CourseInstructor{
		ID:           uuid.NewString(),
		TenantID:     tenantID,
		CourseID:     courseID,
		InstructorID: instructorID,
		Role:         role,
		AssignedAt:   now,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.instructorRepo.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("error creating instructor assignment: %w", err)
	}

	return assignment, nil
}

// EnrollStudent enrolls a student in a course. The resulting status is ACTIVE
// when autoApprove or the course's auto_approval flag is set, otherwise
// PENDING. A previously dropped enrollment is reactivated in place so the
// (course, student) pair stays unique.
func (s *CourseService) EnrollStudent(ctx context.Context, courseID, studentID, tenantID string, method models.EnrollmentMethod, autoApprove bool) (*models.CourseEnrollment, error) {
	if method == "" {
		method = models.MethodSelfEnrolled
	}

	existing, err := s.enrollmentRepo.GetByCourseAndStudent(ctx, courseID, studentID)
	if err != nil {
		return nil, fmt.Errorf("error checking existing enrollment: %w", err)
	}
	if existing != nil && existing.Status == models.EnrollmentActive {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	course, err := s.courseRepo.GetByIDAndTenant(ctx, courseID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}

	activeCount, err := s.enrollmentRepo.CountActiveEnrollments(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error counting active enrollments: %w", err)
	}
	if !course.EnrollmentOpen(activeCount, time.Now()) {
		return nil, apperrors.ErrEnrollmentClosed
	}

	status := models.EnrollmentPending
	if autoApprove || course.AutoApproval {
		status = models.EnrollmentActive
	}

	now := time.Now().UTC()

	if existing != nil {
		// Re-enrollment after a drop reuses the existing row
		existing.Status = status
		existing.EnrollmentMethod = method
		existing.EnrolledAt = now
		existing.DroppedAt = nil
		existing.CompletionDate = nil
		existing.UpdatedAt = now
		if err := s.enrollmentRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("error reactivating enrollment: %w", err)
		}
		return existing, nil
	}

	enrollment := &models.CourseEnrollment{
		ID:               uuid.NewString(),
		TenantID:         tenantID,
		CourseID:         courseID,
		StudentID:        studentID,
		Status:           status,
		EnrollmentMethod: method,
		EnrolledAt:       now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("error creating enrollment: %w", err)
	}

	return enrollment, nil
}

// ApproveEnrollment flips a pending enrollment to ACTIVE. Capacity is
// re-checked at approval time, atomically with the status transition.
func (s *CourseService) ApproveEnrollment(ctx context.Context, enrollmentID string) (*models.CourseEnrollment, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	if enrollment == nil {
		return nil, apperrors.ErrEnrollmentNotFound
	}

	if enrollment.Status != models.EnrollmentPending {
		return nil, apperrors.ErrInvalidEnrollmentState
	}

	course, err := s.courseRepo.GetByID(ctx, enrollment.CourseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}

	approved, err := s.enrollmentRepo.ApproveWithCapacityCheck(ctx, enrollment, course)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrCourseFull) {
			return nil, apperrors.ErrCourseFull
		}
		return nil, fmt.Errorf("error approving enrollment: %w", err)
	}

	return approved, nil
}

// DropStudent drops an ACTIVE or PENDING enrollment and stamps dropped_at
func (s *CourseService) DropStudent(ctx context.Context, enrollmentID string) (*models.CourseEnrollment, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	if enrollment == nil {
		return nil, apperrors.ErrEnrollmentNotFound
	}

	if !enrollment.Status.CanTransitionTo(models.EnrollmentDropped) {
		return nil, apperrors.ErrInvalidEnrollmentState
	}

	now := time.Now().UTC()
	enrollment.Status = models.EnrollmentDropped
	enrollment.DroppedAt = &now
	enrollment.UpdatedAt = now

	if err := s.enrollmentRepo.Update(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("error dropping enrollment: %w", err)
	}

	return enrollment, nil
}

// BulkEnrollStudents enrolls multiple students directly as ACTIVE. Students
// with an existing ACTIVE enrollment are skipped silently; capacity is
// deliberately not re-validated for bulk operations.
func (s *CourseService) BulkEnrollStudents(ctx context.Context, courseID string, studentIDs []string, tenantID string, method models.EnrollmentMethod) ([]*models.CourseEnrollment, error) {
	if method == "" {
		method = models.MethodInstructorAdded
	}

	course, err := s.courseRepo.GetByIDAndTenant(ctx, courseID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}

	now := time.Now().UTC()
	var toEnroll []*models.CourseEnrollment
	for _, studentID := range studentIDs {
		existing, err := s.enrollmentRepo.GetByCourseAndStudent(ctx, courseID, studentID)
		if err != nil {
			return nil, fmt.Errorf("error checking enrollment for student %s: %w", studentID, err)
		}
		if existing != nil && existing.Status == models.EnrollmentActive {
			continue
		}

		if existing != nil {
			existing.Status = models.EnrollmentActive
			existing.EnrollmentMethod = method
			existing.EnrolledAt = now
			existing.DroppedAt = nil
			existing.CompletionDate = nil
			existing.UpdatedAt = now
			toEnroll = append(toEnroll, existing)
			continue
		}

		toEnroll = append(toEnroll, &models.CourseEnrollment{
			ID:               uuid.NewString(),
			TenantID:         tenantID,
			CourseID:         courseID,
			StudentID:        studentID,
			Status:           models.EnrollmentActive,
			EnrollmentMethod: method,
			EnrolledAt:       now,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}

	if len(toEnroll) == 0 {
		return []*models.CourseEnrollment{}, nil
	}

	enrolled, err := s.enrollmentRepo.BulkEnroll(ctx, toEnroll)
	if err != nil {
		return nil, fmt.Errorf("error bulk enrolling students: %w", err)
	}

	logger.Info().
		Str("courseId", courseID).
		Int("requested", len(studentIDs)).
		Int("enrolled", len(enrolled)).
		Msg("Bulk enrollment completed")

	return enrolled, nil
}

// GetCourse retrieves a course under the tenant
func (s *CourseService) GetCourse(ctx context.Context, courseID, tenantID string) (*models.Course, error) {
	course, err := s.courseRepo.GetByIDAndTenant(ctx, courseID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

// ListCourses lists courses of a tenant
func (s *CourseService) ListCourses(ctx context.Context, tenantID string, skip, limit int) ([]*models.Course, error) {
	courses, err := s.courseRepo.ListByTenant(ctx, tenantID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	return courses, nil
}

// SearchCourses searches courses of a tenant by name or code
func (s *CourseService) SearchCourses(ctx context.Context, query, tenantID string, skip, limit int) ([]*models.Course, error) {
	courses, err := s.courseRepo.SearchCourses(ctx, query, tenantID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error searching courses: %w", err)
	}
	return courses, nil
}

// ListEnrollments lists a course's enrollments, optionally filtered by status
func (s *CourseService) ListEnrollments(ctx context.Context, courseID, tenantID string, status *models.EnrollmentStatus, skip, limit int) ([]*models.CourseEnrollment, error) {
	course, err := s.courseRepo.GetByIDAndTenant(ctx, courseID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}

	enrollments, err := s.enrollmentRepo.ListByCourse(ctx, courseID, status, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	return enrollments, nil
}

// ListPendingEnrollments lists all pending enrollments of a tenant
func (s *CourseService) ListPendingEnrollments(ctx context.Context, tenantID string, skip, limit int) ([]*models.CourseEnrollment, error) {
	enrollments, err := s.enrollmentRepo.ListPendingEnrollments(ctx, tenantID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing pending enrollments: %w", err)
	}
	return enrollments, nil
}
