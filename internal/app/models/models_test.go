package models

import (
	"testing"
	"time"
)

func TestEnrollmentStatusTransitions(t *testing.T) {
	cases := []struct {
		from    EnrollmentStatus
		to      EnrollmentStatus
		allowed bool
	}{
		{EnrollmentPending, EnrollmentActive, true},
		{EnrollmentPending, EnrollmentDropped, true},
		{EnrollmentPending, EnrollmentCompleted, false},
		{EnrollmentActive, EnrollmentDropped, true},
		{EnrollmentActive, EnrollmentCompleted, true},
		{EnrollmentActive, EnrollmentPending, false},
		{EnrollmentDropped, EnrollmentActive, false},
		{EnrollmentDropped, EnrollmentPending, false},
		{EnrollmentCompleted, EnrollmentActive, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestEnrollmentStatusIsTerminal(t *testing.T) {
	if EnrollmentPending.IsTerminal() || EnrollmentActive.IsTerminal() {
		t.Error("pending and active are not terminal")
	}
	if !EnrollmentDropped.IsTerminal() || !EnrollmentCompleted.IsTerminal() {
		t.Error("dropped and completed are terminal")
	}
}

func TestInstructorRoleValid(t *testing.T) {
	for _, role := range []InstructorRole{RolePrimaryInstructor, RoleCoInstructor, RoleTeachingAssistant} {
		if !role.Valid() {
			t.Errorf("%s should be valid", role)
		}
	}
	if InstructorRole("dean").Valid() {
		t.Error("unknown role should not be valid")
	}
}

func TestCourseIsFull(t *testing.T) {
	unlimited := &Course{}
	if unlimited.IsFull(10000) {
		t.Error("course without max_students is never full")
	}

	max := 30
	course := &Course{MaxStudents: &max}
	if course.IsFull(29) {
		t.Error("29 of 30 is not full")
	}
	if !course.IsFull(30) {
		t.Error("30 of 30 is full")
	}
	if !course.IsFull(31) {
		t.Error("over capacity counts as full")
	}
}

func TestCourseEnrollmentOpen(t *testing.T) {
	now := time.Now()
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)
	max := 2

	course := &Course{IsActive: true, MaxStudents: &max, EnrollmentDeadline: &future}
	if !course.EnrollmentOpen(1, now) {
		t.Error("active course below capacity before deadline should be open")
	}
	if course.EnrollmentOpen(2, now) {
		t.Error("full course should be closed")
	}

	course.EnrollmentDeadline = &past
	if course.EnrollmentOpen(0, now) {
		t.Error("course past deadline should be closed")
	}

	course.EnrollmentDeadline = nil
	course.IsActive = false
	if course.EnrollmentOpen(0, now) {
		t.Error("inactive course should be closed")
	}
}

func TestCurrentEnrollmentCount(t *testing.T) {
	enrollments := []*CourseEnrollment{
		{Status: EnrollmentActive},
		{Status: EnrollmentPending},
		{Status: EnrollmentActive},
		{Status: EnrollmentDropped},
		{Status: EnrollmentCompleted},
	}
	if got := CurrentEnrollmentCount(enrollments); got != 2 {
		t.Errorf("count = %d, want 2 (only active counts)", got)
	}
}

func TestProjectIsTeamFormationOpen(t *testing.T) {
	now := time.Now()
	deadline := now.Add(48 * time.Hour)

	project := &Project{IsActive: true, IsPublished: true, TeamFormationDeadline: deadline}
	if !project.IsTeamFormationOpen(now) {
		t.Error("published active project before deadline should be open")
	}
	if !project.IsTeamFormationOpen(deadline) {
		t.Error("the deadline instant itself is still open")
	}
	if project.IsTeamFormationOpen(deadline.Add(time.Second)) {
		t.Error("past the deadline should be closed")
	}

	project.IsPublished = false
	if project.IsTeamFormationOpen(now) {
		t.Error("unpublished project should be closed")
	}

	project.IsPublished = true
	project.IsActive = false
	if project.IsTeamFormationOpen(now) {
		t.Error("inactive project should be closed")
	}
}

func TestProjectDaysUntilDue(t *testing.T) {
	now := time.Now()
	project := &Project{DueDate: now.Add(72*time.Hour + time.Minute)}
	if got := project.DaysUntilDue(now); got != 3 {
		t.Errorf("days until due = %d, want 3", got)
	}

	overdue := &Project{DueDate: now.Add(-time.Hour)}
	if got := overdue.DaysUntilDue(now); got != 0 {
		t.Errorf("overdue project days = %d, want 0", got)
	}
}

func TestEnrollmentDurationDays(t *testing.T) {
	enrolled := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := enrolled.AddDate(0, 0, 30)

	active := &CourseEnrollment{Status: EnrollmentActive, EnrolledAt: enrolled}
	if got := active.DurationDays(now); got != 30 {
		t.Errorf("active duration = %d, want 30", got)
	}

	droppedAt := enrolled.AddDate(0, 0, 10)
	dropped := &CourseEnrollment{Status: EnrollmentDropped, EnrolledAt: enrolled, DroppedAt: &droppedAt}
	if got := dropped.DurationDays(now); got != 10 {
		t.Errorf("dropped duration = %d, want 10 (clock stops at drop)", got)
	}
}
