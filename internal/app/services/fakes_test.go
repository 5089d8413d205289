package services

import (
	"context"
	"strings"
	"time"

	"github.com/elevatehq/elevate-backend/internal/app/models"
	"github.com/elevatehq/elevate-backend/internal/pkg/apperrors"
)

// In-memory repository fakes backed by one shared store, so cross-repository
// behavior (course creation writing an assignment, approval counting
// enrollments) works the same way it does against the database.

type fakeStore struct {
	organizations map[string]*models.Organization
	users         map[string]*models.User
	courses       map[string]*models.Course
	assignments   map[string]*models.CourseInstructor
	enrollments   map[string]*models.CourseEnrollment
	projects      map[string]*models.Project
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		organizations: make(map[string]*models.Organization),
		users:         make(map[string]*models.User),
		courses:       make(map[string]*models.Course),
		assignments:   make(map[string]*models.CourseInstructor),
		enrollments:   make(map[string]*models.CourseEnrollment),
		projects:      make(map[string]*models.Project),
	}
}

func (s *fakeStore) activeEnrollmentCount(courseID string) int {
	count := 0
	for _, e := range s.enrollments {
		if e.CourseID == courseID && e.Status == models.EnrollmentActive {
			count++
		}
	}
	return count
}

// --- organizations ---

type fakeOrganizationRepo struct{ store *fakeStore }

func (r *fakeOrganizationRepo) GetByID(_ context.Context, id string) (*models.Organization, error) {
	return r.store.organizations[id], nil
}

func (r *fakeOrganizationRepo) GetBySlug(_ context.Context, slug string) (*models.Organization, error) {
	for _, org := range r.store.organizations {
		if org.Slug == slug {
			return org, nil
		}
	}
	return nil, nil
}

func (r *fakeOrganizationRepo) GetByDomain(_ context.Context, domain string) (*models.Organization, error) {
	for _, org := range r.store.organizations {
		if org.Domain != nil && *org.Domain == domain {
			return org, nil
		}
	}
	return nil, nil
}

func (r *fakeOrganizationRepo) Create(_ context.Context, org *models.Organization) error {
	r.store.organizations[org.ID] = org
	return nil
}

func (r *fakeOrganizationRepo) Update(_ context.Context, org *models.Organization) error {
	if _, ok := r.store.organizations[org.ID]; !ok {
		return apperrors.ErrOrganizationNotFound
	}
	r.store.organizations[org.ID] = org
	return nil
}

func (r *fakeOrganizationRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.store.organizations[id]; !ok {
		return apperrors.ErrOrganizationNotFound
	}
	delete(r.store.organizations, id)
	return nil
}

func (r *fakeOrganizationRepo) ListAll(_ context.Context, _, _ int) ([]*models.Organization, error) {
	var orgs []*models.Organization
	for _, org := range r.store.organizations {
		orgs = append(orgs, org)
	}
	return orgs, nil
}

// --- users ---

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	return r.store.users[id], nil
}

func (r *fakeUserRepo) GetByEmailAndTenant(_ context.Context, email, tenantID string) (*models.User, error) {
	for _, user := range r.store.users {
		if user.Email == email && user.TenantID == tenantID {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.store.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) ListByTenant(_ context.Context, tenantID string, _, _ int) ([]*models.User, error) {
	var users []*models.User
	for _, user := range r.store.users {
		if user.TenantID == tenantID {
			users = append(users, user)
		}
	}
	return users, nil
}

// --- courses ---

type fakeCourseRepo struct{ store *fakeStore }

func (r *fakeCourseRepo) GetByID(_ context.Context, id string) (*models.Course, error) {
	return r.store.courses[id], nil
}

func (r *fakeCourseRepo) GetByIDAndTenant(_ context.Context, id, tenantID string) (*models.Course, error) {
	course := r.store.courses[id]
	if course == nil || course.TenantID != tenantID {
		return nil, nil
	}
	return course, nil
}

func (r *fakeCourseRepo) GetByCode(_ context.Context, code, tenantID string) (*models.Course, error) {
	for _, course := range r.store.courses {
		if course.Code == code && course.TenantID == tenantID {
			return course, nil
		}
	}
	return nil, nil
}

func (r *fakeCourseRepo) Create(_ context.Context, course *models.Course) error {
	r.store.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) CreateWithPrimaryInstructor(_ context.Context, course *models.Course, assignment *models.CourseInstructor) error {
	r.store.courses[course.ID] = course
	r.store.assignments[assignment.ID] = assignment
	return nil
}

func (r *fakeCourseRepo) Update(_ context.Context, course *models.Course) error {
	if _, ok := r.store.courses[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	r.store.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.store.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(r.store.courses, id)
	return nil
}

func (r *fakeCourseRepo) ListByTenant(_ context.Context, tenantID string, _, _ int) ([]*models.Course, error) {
	var courses []*models.Course
	for _, course := range r.store.courses {
		if course.TenantID == tenantID {
			courses = append(courses, course)
		}
	}
	return courses, nil
}

func (r *fakeCourseRepo) ListByInstructor(_ context.Context, instructorID, tenantID string, _, _ int) ([]*models.Course, error) {
	var courses []*models.Course
	for _, assignment := range r.store.assignments {
		if assignment.InstructorID != instructorID || !assignment.IsActive {
			continue
		}
		if course := r.store.courses[assignment.CourseID]; course != nil && course.TenantID == tenantID {
			courses = append(courses, course)
		}
	}
	return courses, nil
}

func (r *fakeCourseRepo) ListByStudent(_ context.Context, studentID, tenantID string, _, _ int) ([]*models.Course, error) {
	var courses []*models.Course
	for _, enrollment := range r.store.enrollments {
		if enrollment.StudentID != studentID || enrollment.Status != models.EnrollmentActive {
			continue
		}
		if course := r.store.courses[enrollment.CourseID]; course != nil && course.TenantID == tenantID {
			courses = append(courses, course)
		}
	}
	return courses, nil
}

func (r *fakeCourseRepo) ListByDepartment(_ context.Context, department, tenantID string, _, _ int) ([]*models.Course, error) {
	var courses []*models.Course
	for _, course := range r.store.courses {
		if course.TenantID == tenantID && course.Department == department {
			courses = append(courses, course)
		}
	}
	return courses, nil
}

func (r *fakeCourseRepo) SearchCourses(_ context.Context, query, tenantID string, _, _ int) ([]*models.Course, error) {
	needle := strings.ToLower(query)
	var courses []*models.Course
	for _, course := range r.store.courses {
		if course.TenantID != tenantID {
			continue
		}
		if strings.Contains(strings.ToLower(course.Name), needle) ||
			strings.Contains(strings.ToLower(course.Code), needle) {
			courses = append(courses, course)
		}
	}
	return courses, nil
}

// --- course instructors ---

type fakeInstructorRepo struct{ store *fakeStore }

func (r *fakeInstructorRepo) GetByID(_ context.Context, id string) (*models.CourseInstructor, error) {
	return r.store.assignments[id], nil
}

func (r *fakeInstructorRepo) GetByCourseAndInstructor(_ context.Context, courseID, instructorID string) ([]*models.CourseInstructor, error) {
	var assignments []*models.CourseInstructor
	for _, assignment := range r.store.assignments {
		if assignment.CourseID == courseID && assignment.InstructorID == instructorID {
			assignments = append(assignments, assignment)
		}
	}
	return assignments, nil
}

func (r *fakeInstructorRepo) Create(_ context.Context, assignment *models.CourseInstructor) error {
	for _, existing := range r.store.assignments {
		if existing.CourseID == assignment.CourseID &&
			existing.InstructorID == assignment.InstructorID &&
			existing.Role == assignment.Role {
			return apperrors.ErrDuplicateAssignment
		}
	}
	r.store.assignments[assignment.ID] = assignment
	return nil
}

func (r *fakeInstructorRepo) Update(_ context.Context, assignment *models.CourseInstructor) error {
	if _, ok := r.store.assignments[assignment.ID]; !ok {
		return apperrors.ErrResourceNotFound
	}
	r.store.assignments[assignment.ID] = assignment
	return nil
}

func (r *fakeInstructorRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.store.assignments[id]; !ok {
		return apperrors.ErrResourceNotFound
	}
	delete(r.store.assignments, id)
	return nil
}

func (r *fakeInstructorRepo) ListByCourse(_ context.Context, courseID string) ([]*models.CourseInstructor, error) {
	var assignments []*models.CourseInstructor
	for _, assignment := range r.store.assignments {
		if assignment.CourseID == courseID {
			assignments = append(assignments, assignment)
		}
	}
	return assignments, nil
}

func (r *fakeInstructorRepo) ListByInstructor(_ context.Context, instructorID, tenantID string) ([]*models.CourseInstructor, error) {
	var assignments []*models.CourseInstructor
	for _, assignment := range r.store.assignments {
		if assignment.InstructorID == instructorID && assignment.TenantID == tenantID {
			assignments = append(assignments, assignment)
		}
	}
	return assignments, nil
}

func (r *fakeInstructorRepo) CheckInstructorPermission(_ context.Context, courseID, instructorID string) (bool, error) {
	for _, assignment := range r.store.assignments {
		if assignment.CourseID == courseID && assignment.InstructorID == instructorID && assignment.IsActive {
			return true, nil
		}
	}
	return false, nil
}

// --- projects ---

type fakeProjectRepo struct{ store *fakeStore }

func (r *fakeProjectRepo) GetByID(_ context.Context, id string) (*models.Project, error) {
	return r.store.projects[id], nil
}

func (r *fakeProjectRepo) GetByIDAndTenant(_ context.Context, id, tenantID string) (*models.Project, error) {
	project := r.store.projects[id]
	if project == nil || project.TenantID != tenantID {
		return nil, nil
	}
	return project, nil
}

func (r *fakeProjectRepo) Create(_ context.Context, project *models.Project) error {
	r.store.projects[project.ID] = project
	return nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *models.Project) error {
	if _, ok := r.store.projects[project.ID]; !ok {
		return apperrors.ErrProjectNotFound
	}
	r.store.projects[project.ID] = project
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.store.projects[id]; !ok {
		return apperrors.ErrProjectNotFound
	}
	delete(r.store.projects, id)
	return nil
}

func (r *fakeProjectRepo) ListByCourse(_ context.Context, courseID string, _, _ int) ([]*models.Project, error) {
	var projects []*models.Project
	for _, project := range r.store.projects {
		if project.CourseID == courseID {
			projects = append(projects, project)
		}
	}
	return projects, nil
}

func (r *fakeProjectRepo) ListActiveProjects(_ context.Context, tenantID string, _, _ int) ([]*models.Project, error) {
	var projects []*models.Project
	for _, project := range r.store.projects {
		if project.TenantID == tenantID && project.IsActive {
			projects = append(projects, project)
		}
	}
	return projects, nil
}

func (r *fakeProjectRepo) ListPublishedProjects(_ context.Context, courseID string, _, _ int) ([]*models.Project, error) {
	var projects []*models.Project
	for _, project := range r.store.projects {
		if project.CourseID == courseID && project.IsPublished {
			projects = append(projects, project)
		}
	}
	return projects, nil
}

func (r *fakeProjectRepo) ListTeamFormationOpen(_ context.Context, tenantID string, _, _ int) ([]*models.Project, error) {
	now := time.Now()
	var projects []*models.Project
	for _, project := range r.store.projects {
		if project.TenantID == tenantID && project.IsTeamFormationOpen(now) {
			projects = append(projects, project)
		}
	}
	return projects, nil
}

// --- enrollments ---

type fakeEnrollmentRepo struct{ store *fakeStore }

func (r *fakeEnrollmentRepo) GetByID(_ context.Context, id string) (*models.CourseEnrollment, error) {
	return r.store.enrollments[id], nil
}

func (r *fakeEnrollmentRepo) GetByCourseAndStudent(_ context.Context, courseID, studentID string) (*models.CourseEnrollment, error) {
	for _, enrollment := range r.store.enrollments {
		if enrollment.CourseID == courseID && enrollment.StudentID == studentID {
			return enrollment, nil
		}
	}
	return nil, nil
}

func (r *fakeEnrollmentRepo) Create(_ context.Context, enrollment *models.CourseEnrollment) error {
	for _, existing := range r.store.enrollments {
		if existing.CourseID == enrollment.CourseID && existing.StudentID == enrollment.StudentID {
			return apperrors.ErrAlreadyEnrolled
		}
	}
	r.store.enrollments[enrollment.ID] = enrollment
	return nil
}

func (r *fakeEnrollmentRepo) Update(_ context.Context, enrollment *models.CourseEnrollment) error {
	if _, ok := r.store.enrollments[enrollment.ID]; !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	r.store.enrollments[enrollment.ID] = enrollment
	return nil
}

func (r *fakeEnrollmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.store.enrollments[id]; !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	delete(r.store.enrollments, id)
	return nil
}

func (r *fakeEnrollmentRepo) ListByCourse(_ context.Context, courseID string, status *models.EnrollmentStatus, _, _ int) ([]*models.CourseEnrollment, error) {
	var enrollments []*models.CourseEnrollment
	for _, enrollment := range r.store.enrollments {
		if enrollment.CourseID != courseID {
			continue
		}
		if status != nil && enrollment.Status != *status {
			continue
		}
		enrollments = append(enrollments, enrollment)
	}
	return enrollments, nil
}

func (r *fakeEnrollmentRepo) ListByStudent(_ context.Context, studentID, tenantID string, status *models.EnrollmentStatus, _, _ int) ([]*models.CourseEnrollment, error) {
	var enrollments []*models.CourseEnrollment
	for _, enrollment := range r.store.enrollments {
		if enrollment.StudentID != studentID || enrollment.TenantID != tenantID {
			continue
		}
		if status != nil && enrollment.Status != *status {
			continue
		}
		enrollments = append(enrollments, enrollment)
	}
	return enrollments, nil
}

func (r *fakeEnrollmentRepo) CountActiveEnrollments(_ context.Context, courseID string) (int, error) {
	return r.store.activeEnrollmentCount(courseID), nil
}

func (r *fakeEnrollmentRepo) ListPendingEnrollments(_ context.Context, tenantID string, _, _ int) ([]*models.CourseEnrollment, error) {
	var enrollments []*models.CourseEnrollment
	for _, enrollment := range r.store.enrollments {
		if enrollment.TenantID == tenantID && enrollment.Status == models.EnrollmentPending {
			enrollments = append(enrollments, enrollment)
		}
	}
	return enrollments, nil
}

func (r *fakeEnrollmentRepo) BulkEnroll(_ context.Context, enrollments []*models.CourseEnrollment) ([]*models.CourseEnrollment, error) {
	for _, enrollment := range enrollments {
		r.store.enrollments[enrollment.ID] = enrollment
	}
	return enrollments, nil
}

func (r *fakeEnrollmentRepo) ApproveWithCapacityCheck(_ context.Context, enrollment *models.CourseEnrollment, course *models.Course) (*models.CourseEnrollment, error) {
	stored, ok := r.store.enrollments[enrollment.ID]
	if !ok || stored.Status != models.EnrollmentPending {
		return nil, apperrors.ErrInvalidEnrollmentState
	}
	if course.MaxStudents != nil && r.store.activeEnrollmentCount(course.ID) >= *course.MaxStudents {
		return nil, apperrors.ErrCourseFull
	}
	stored.Status = models.EnrollmentActive
	stored.UpdatedAt = time.Now().UTC()
	return stored, nil
}
