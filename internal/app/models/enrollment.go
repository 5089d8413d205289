package models

import "time"

// CourseEnrollment tracks a student's relationship to a course through the
// enrollment state machine. The (course_id, student_id) pair is unique; a
// re-enrollment after a drop reuses the same row.
type CourseEnrollment struct {
	ID       string `json:"id" db:"id"`
	TenantID string `json:"tenantId" db:"tenant_id"`

	CourseID  string `json:"courseId" db:"course_id"`
	StudentID string `json:"studentId" db:"student_id"`

	Status           EnrollmentStatus `json:"status" db:"status"`
	EnrollmentMethod EnrollmentMethod `json:"enrollmentMethod" db:"enrollment_method"`
	EnrolledAt       time.Time        `json:"enrolledAt" db:"enrolled_at"`
	DroppedAt        *time.Time       `json:"droppedAt,omitempty" db:"dropped_at"`
	CompletionDate   *time.Time       `json:"completionDate,omitempty" db:"completion_date"`

	Grade *string `json:"grade,omitempty" db:"grade"`
	Notes *string `json:"notes,omitempty" db:"notes"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Course  *Course `json:"course,omitempty"`
	Student *User   `json:"student,omitempty"`
}

// IsActive reports whether the enrollment currently counts against capacity
func (e *CourseEnrollment) IsActive() bool {
	return e.Status == EnrollmentActive
}

// DurationDays returns how long the student has been (or was) enrolled
func (e *CourseEnrollment) DurationDays(now time.Time) int {
	end := now
	switch {
	case e.Status == EnrollmentDropped && e.DroppedAt != nil:
		end = *e.DroppedAt
	case e.Status == EnrollmentCompleted && e.CompletionDate != nil:
		end = *e.CompletionDate
	}
	return int(end.Sub(e.EnrolledAt).Hours() / 24)
}
