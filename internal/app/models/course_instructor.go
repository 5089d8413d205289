package models

import "time"

// CourseInstructor assigns a user as instructor on a course. The
// (course_id, instructor_id, role) triple is unique. Every active assignment
// grants the same management permission regardless of role.
type CourseInstructor struct {
	ID       string `json:"id" db:"id"`
	TenantID string `json:"tenantId" db:"tenant_id"`

	CourseID     string `json:"courseId" db:"course_id"`
	InstructorID string `json:"instructorId" db:"instructor_id"`

	Role       InstructorRole `json:"role" db:"role"`
	AssignedAt time.Time      `json:"assignedAt" db:"assigned_at"`
	IsActive   bool           `json:"isActive" db:"is_active"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Course     *Course `json:"course,omitempty"`
	Instructor *User   `json:"instructor,omitempty"`
}
