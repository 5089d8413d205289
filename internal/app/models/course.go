package models

import "time"

// Course represents an academic course offering. The (tenant_id, code) pair is
// unique; the same code may exist under a different tenant.
type Course struct {
	ID       string `json:"id" db:"id"`
	TenantID string `json:"tenantId" db:"tenant_id"`

	// Basic information
	Name        string  `json:"name" db:"name"`
	Code        string  `json:"code" db:"code"`
	Description *string `json:"description,omitempty" db:"description"`
	Semester    string  `json:"semester" db:"semester"` // Fall, Spring, Summer
	Year        int     `json:"year" db:"year"`
	Credits     *int    `json:"credits,omitempty" db:"credits"`
	Department  string  `json:"department" db:"department"`

	// Settings
	MaxStudents        *int       `json:"maxStudents,omitempty" db:"max_students"`
	EnrollmentDeadline *time.Time `json:"enrollmentDeadline,omitempty" db:"enrollment_deadline"`
	DropDeadline       *time.Time `json:"dropDeadline,omitempty" db:"drop_deadline"`
	IsActive           bool       `json:"isActive" db:"is_active"`
	AutoApproval       bool       `json:"autoApproval" db:"auto_approval"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Instructors []*CourseInstructor `json:"instructors,omitempty"`
	Enrollments []*CourseEnrollment `json:"enrollments,omitempty"`
}

// The capacity and window checks below are pure functions over an explicitly
// loaded snapshot (course + active-enrollment count + clock) so callers and
// tests never depend on lazy relation traversal.

// IsFull reports whether the course is at capacity given the current number of
// ACTIVE enrollments. Courses without max_students are never full.
func (c *Course) IsFull(activeCount int) bool {
	if c.MaxStudents == nil {
		return false
	}
	return activeCount >= *c.MaxStudents
}

// EnrollmentOpen reports whether the course accepts new enrollments at the
// given instant: it must be active, before the enrollment deadline (if any),
// and not at capacity.
func (c *Course) EnrollmentOpen(activeCount int, now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.EnrollmentDeadline != nil && now.After(*c.EnrollmentDeadline) {
		return false
	}
	return !c.IsFull(activeCount)
}

// CurrentEnrollmentCount counts ACTIVE enrollments in a loaded enrollment set
func CurrentEnrollmentCount(enrollments []*CourseEnrollment) int {
	count := 0
	for _, e := range enrollments {
		if e.Status == EnrollmentActive {
			count++
		}
	}
	return count
}
