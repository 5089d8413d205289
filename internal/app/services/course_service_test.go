package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/elevatehq/elevate-backend/internal/app/models"
	"github.com/elevatehq/elevate-backend/internal/pkg/apperrors"
)

const (
	tenantA = "tenant-a"
	tenantB = "tenant-b"
)

func newCourseService(store *fakeStore) *CourseService {
	return NewCourseService(
		&fakeCourseRepo{store: store},
		&fakeInstructorRepo{store: store},
		&fakeEnrollmentRepo{store: store},
		nil,
	)
}

func seedCourse(store *fakeStore, tenantID string, maxStudents *int) *models.Course {
	now := time.Now().UTC()
	course := &models.Course{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		Name:        "Distributed Systems",
		Code:        "CS425",
		Semester:    "Fall",
		Year:        2026,
		Department:  "CS",
		MaxStudents: maxStudents,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	store.courses[course.ID] = course
	return course
}

func seedEnrollment(store *fakeStore, course *models.Course, studentID string, status models.EnrollmentStatus) *models.CourseEnrollment {
	now := time.Now().UTC()
	enrollment := &models.CourseEnrollment{
		ID:               uuid.NewString(),
		TenantID:         course.TenantID,
		CourseID:         course.ID,
		StudentID:        studentID,
		Status:           status,
		EnrollmentMethod: models.MethodSelfEnrolled,
		EnrolledAt:       now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	store.enrollments[enrollment.ID] = enrollment
	return enrollment
}

func TestCreateCourseAssignsPrimaryInstructor(t *testing.T) {
	store := newFakeStore()
	svc := newCourseService(store)

	course, err := svc.CreateCourse(context.Background(), CreateCourseParams{
		Name:                "Algorithms",
		Code:                "CS300",
		Department:          "CS",
		Semester:            "Fall",
		Year:                2026,
		TenantID:            tenantA,
		PrimaryInstructorID: "instructor-1",
	})
	if err != nil {
		t.Fatalf("CreateCourse returned error: %v", err)
	}
	if !course.IsActive {
		t.Error("new course should be active")
	}

	var assignment *models.CourseInstructor
	for _, a := range store.assignments {
		if a.CourseID == course.ID {
			assignment = a
		}
	}
	if assignment == nil {
		t.Fatal("expected a primary instructor assignment to be created with the course")
	}
	if assignment.Role != models.RolePrimaryInstructor {
		t.Errorf("assignment role = %q, want %q", assignment.Role, models.RolePrimaryInstructor)
	}
	if assignment.InstructorID != "instructor-1" {
		t.Errorf("assignment instructor = %q, want instructor-1", assignment.InstructorID)
	}
	if !assignment.IsActive {
		t.Error("assignment should be active")
	}
}

func TestCreateCourseDuplicateCodePerTenant(t *testing.T) {
	store := newFakeStore()
	svc := newCourseService(store)
	seedCourse(store, tenantA, nil) // CS425

	params := CreateCourseParams{
		Name:                "Other",
		Code:                "CS425",
		Department:          "CS",
		Semester:            "Spring",
		Year:                2027,
		TenantID:            tenantA,
		PrimaryInstructorID: "instructor-1",
	}
	if _, err := svc.CreateCourse(context.Background(), params); !errors.Is(err, apperrors.ErrDuplicateCourseCode) {
		t.Fatalf("same code in same tenant: got %v, want ErrDuplicateCourseCode", err)
	}

	// Same code under a different tenant is fine
	params.TenantID = tenantB
	if _, err := svc.CreateCourse(context.Background(), params); err != nil {
		t.Fatalf("same code in different tenant: unexpected error %v", err)
	}
}

func TestEnrollStudentDefaultsToPending(t *testing.T) {
	store := newFakeStore()
	svc := newCourseService(store)
	course := seedCourse(store, tenantA, nil)

	enrollment, err := svc.EnrollStudent(context.Background(), course.ID, "student-1", tenantA, "", false)
	if err != nil {
		t.Fatalf("EnrollStudent returned error: %v", err)
	}
	if enrollment.Status != models.EnrollmentPending {
		t.Errorf("status = %q, want pending", enrollment.Status)
	}
	if enrollment.EnrollmentMethod != models.MethodSelfEnrolled {
		t.Errorf("method = %q, want self_enrolled", enrollment.EnrollmentMethod)
	}
}

func TestEnrollStudentAutoApproval(t *testing.T) {
	store := newFakeStore()
	svc := newCourseService(store)

	course := seedCourse(store, tenantA, nil)
	course.AutoApproval = true

	enrollment, err := svc.EnrollStudent(context.Background(), course.ID, "student-1", tenantA, "", false)
	if err != nil {
		t.Fatalf("EnrollStudent returned error: %v", err)
	}
	if enrollment.Status != models.EnrollmentActive {
		t.Errorf("status = %q, want active when course auto-approves", enrollment.Status)
	}
}

func TestEnrollStudentAlreadyActive(t *testing.T) {
	store := newFakeStore()
	svc := newCourseService(store)
	course := seedCourse(store, tenantA, nil)
	seedEnrollment(store, course, "student-1", models.EnrollmentActive)

	if _, err := svc.EnrollStudent(context.Background(), course.ID, "student-1", tenantA, "", false); !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Fatalf("got %v, want ErrAlreadyEnrolled", err)
	}
}

func TestEnrollStudentOtherTenantCourseNotFound(t *testing.T) {
	store := newFakeStore()
	svc := newCourseService(store)
	course := seedCourse(store, tenantA, nil)

	// A tenant-B caller must not learn the course exists
	if _, err := svc.EnrollStudent(context.Background(), course.ID, "student-1", tenantB, "", false); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("got %v, want ErrCourseNotFound for cross-tenant access", err)
	}
}

func TestEnrollStudentClosedAfterDeadline(t *testing.T) {
	store := newFakeStore()
	svc := newCourseService(store)

	course := seedCourse(store, tenantA, nil)
	past := time.Now().Add(-24 * time.Hour)
	course.EnrollmentDeadline = &past

	if _, err := svc.EnrollStudent(context.Background(), course.ID, "student-1", tenantA, "", false); !errors.Is(err, apperrors.ErrEnrollmentClosed) {
		t.Fatalf("got %v, want ErrEnrollmentClosed after deadline", err)
	}
}

func TestEnrollStudentClosedWhenFull(t *testing.T) {
	store := newFakeStore()
	svc := newCourseService(store)

	max := 1
	course := seedCourse(store, tenantA, &max)
	seedEnrollment(store, course, "student-1", models.EnrollmentActive)

	if _, err := svc.EnrollStudent(context.Background(), course.ID, "student-2", tenantA, "", false); !errors.Is(err, apperrors.ErrEnrollmentClosed) {
		t.Fatalf("got %v, want ErrEnrollmentClosed when course is full", err)
	}
}

func TestReEnrollAfterDropReusesRow(t *testing.T) {
	store := newFakeStore()
	svc := newCourseService(store)
	course := seedCourse(store, tenantA, nil)

	dropped := seedEnrollment(store, course, "student-1", models.EnrollmentDropped)
	now := time.Now().UTC()
	dropped.DroppedAt = &now

	enrollment, err := svc.EnrollStudent(context.Background(), course.ID, "student-1", tenantA, "", false)
	if err != nil {
		t.Fatalf("re-enroll returned error: %v", err)
	}
	if enrollment.ID != dropped.ID {
		t.Errorf("re-enrollment created a new row; want the dropped row reused")
	}
	if enrollment.Status != models.EnrollmentPending {
		t.Errorf("status = %q, want pending", enrollment.Status)
	}
	if enrollment.DroppedAt != nil {
		t.Error("droppedAt should be cleared on re-enrollment")
	}
	if len(store.enrollments) != 1 {
		t.Errorf("enrollment rows = %d, want 1", len(store.enrollments))
	}
}

func TestApproveEnrollmentCapacityAtApproval(t *testing.T) {
	store := newFakeStore()
	svc := newCourseService(store)

	// Capacity 2: two students already approved, a third waits
	max := 2
	course := seedCourse(store, tenantA, &max)
	seedEnrollment(store, course, "student-1", models.EnrollmentActive)
	seedEnrollment(store, course, "student-2", models.EnrollmentActive)
	third := seedEnrollment(store, course, "student-3", models.EnrollmentPending)

	if _, err := svc.ApproveEnrollment(context.Background(), third.ID); !errors.Is(err, apperrors.ErrCourseFull) {
		t.Fatalf("got %v, want ErrCourseFull", err)
	}
	if third.Status != models.EnrollmentPending {
		t.Errorf("failed approval must leave the enrollment pending, got %q", third.Status)
	}
}

func TestApproveEnrollmentSuccess(t *testing.T) {
	store := newFakeStore()
	svc := newCourseService(store)

	max := 2
	course := seedCourse(store, tenantA, &max)
	seedEnrollment(store, course, "student-1", models.EnrollmentActive)
	pending := seedEnrollment(store, course, "student-2", models.EnrollmentPending)

	approved, err := svc.ApproveEnrollment(context.Background(), pending.ID)
	if err != nil {
		t.Fatalf("ApproveEnrollment returned error: %v", err)
	}
	if approved.Status != models.EnrollmentActive {
		t.Errorf("status = %q, want active", approved.Status)
	}
}

func TestApproveEnrollmentRequiresPending(t *testing.T) {
	store := newFakeStore()
	svc := newCourseService(store)
	course := seedCourse(store, tenantA, nil)
	active := seedEnrollment(store, course, "student-1", models.EnrollmentActive)

	if _, err := svc.ApproveEnrollment(context.Background(), active.ID); !errors.Is(err, apperrors.ErrInvalidEnrollmentState) {
		t.Fatalf("got %v, want ErrInvalidEnrollmentState", err)
	}
}

func TestDropStudent(t *testing.T) {
	store := newFakeStore()
	svc := newCourseService(store)
	course := seedCourse(store, tenantA, nil)
	active := seedEnrollment(store, course, "student-1", models.EnrollmentActive)

	dropped, err := svc.DropStudent(context.Background(), active.ID)
	if err != nil {
		t.Fatalf("DropStudent returned error: %v", err)
	}
	if dropped.Status != models.EnrollmentDropped {
		t.Errorf("status = %q, want dropped", dropped.Status)
	}
	if dropped.DroppedAt == nil {
		t.Error("droppedAt should be stamped")
	}

	// Terminal state: dropping again is rejected
	if _, err := svc.DropStudent(context.Background(), active.ID); !errors.Is(err, apperrors.ErrInvalidEnrollmentState) {
		t.Fatalf("second drop: got %v, want ErrInvalidEnrollmentState", err)
	}
}

func TestBulkEnrollSkipsActiveAndIgnoresCapacity(t *testing.T) {
	store := newFakeStore()
	svc := newCourseService(store)

	max := 2
	course := seedCourse(store, tenantA, &max)
	seedEnrollment(store, course, "student-1", models.EnrollmentActive)
	dropped := seedEnrollment(store, course, "student-2", models.EnrollmentDropped)

	enrolled, err := svc.BulkEnrollStudents(context.Background(), course.ID,
		[]string{"student-1", "student-2", "student-3"}, tenantA, models.MethodCSVImport)
	if err != nil {
		t.Fatalf("BulkEnrollStudents returned error: %v", err)
	}

	// student-1 skipped, student-2 reactivated, student-3 inserted
	if len(enrolled) != 2 {
		t.Fatalf("enrolled = %d, want 2", len(enrolled))
	}
	for _, e := range enrolled {
		if e.Status != models.EnrollmentActive {
			t.Errorf("bulk enrollment for %s status = %q, want active", e.StudentID, e.Status)
		}
		if e.EnrollmentMethod != models.MethodCSVImport {
			t.Errorf("bulk enrollment for %s method = %q, want csv_import", e.StudentID, e.EnrollmentMethod)
		}
	}
	if store.enrollments[dropped.ID].Status != models.EnrollmentActive {
		t.Error("dropped enrollment should be reactivated in place")
	}

	// Capacity 2 exceeded on purpose: roster imports always land
	if count := store.activeEnrollmentCount(course.ID); count != 3 {
		t.Errorf("active enrollments = %d, want 3 (bulk bypasses capacity)", count)
	}
}

func TestAddInstructorDuplicateRole(t *testing.T) {
	store := newFakeStore()
	svc := newCourseService(store)
	course := seedCourse(store, tenantA, nil)

	if _, err := svc.AddInstructor(context.Background(), course.ID, "instructor-1", models.RoleCoInstructor, tenantA); err != nil {
		t.Fatalf("first assignment returned error: %v", err)
	}
	if _, err := svc.AddInstructor(context.Background(), course.ID, "instructor-1", models.RoleCoInstructor, tenantA); !errors.Is(err, apperrors.ErrDuplicateAssignment) {
		t.Fatalf("got %v, want ErrDuplicateAssignment", err)
	}

	// A different role for the same instructor is allowed
	if _, err := svc.AddInstructor(context.Background(), course.ID, "instructor-1", models.RoleTeachingAssistant, tenantA); err != nil {
		t.Fatalf("second role returned error: %v", err)
	}
}

func TestAddInstructorUnknownRole(t *testing.T) {
	store := newFakeStore()
	svc := newCourseService(store)
	course := seedCourse(store, tenantA, nil)

	if _, err := svc.AddInstructor(context.Background(), course.ID, "instructor-1", "dean", tenantA); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("got %v, want bad request for unknown role", err)
	}
}

func TestGetCourseCrossTenant(t *testing.T) {
	store := newFakeStore()
	svc := newCourseService(store)
	course := seedCourse(store, tenantA, nil)

	if _, err := svc.GetCourse(context.Background(), course.ID, tenantB); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("got %v, want ErrCourseNotFound", err)
	}
}
