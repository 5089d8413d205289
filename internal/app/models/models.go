package models

// RoleType defines the platform-level user role
type RoleType string

const (
	RoleAdmin      RoleType = "admin"
	RoleInstructor RoleType = "instructor"
	RoleStudent    RoleType = "student"
)

// EnrollmentStatus represents the lifecycle state of a course enrollment
type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "pending"   // Awaiting approval
	EnrollmentActive    EnrollmentStatus = "active"    // Currently enrolled
	EnrollmentDropped   EnrollmentStatus = "dropped"   // Student dropped
	EnrollmentCompleted EnrollmentStatus = "completed" // Course finished
)

// IsTerminal reports whether no further transitions are allowed from this status
func (s EnrollmentStatus) IsTerminal() bool {
	return s == EnrollmentDropped || s == EnrollmentCompleted
}

// CanTransitionTo reports whether the enrollment state machine allows moving
// from s to target. Allowed transitions: pending->active, pending->dropped,
// active->dropped, active->completed.
func (s EnrollmentStatus) CanTransitionTo(target EnrollmentStatus) bool {
	switch s {
	case EnrollmentPending:
		return target == EnrollmentActive || target == EnrollmentDropped
	case EnrollmentActive:
		return target == EnrollmentDropped || target == EnrollmentCompleted
	default:
		return false
	}
}

// EnrollmentMethod records how a student ended up enrolled
type EnrollmentMethod string

const (
	MethodSelfEnrolled    EnrollmentMethod = "self_enrolled"
	MethodInstructorAdded EnrollmentMethod = "instructor_added"
	MethodCSVImport       EnrollmentMethod = "csv_import"
	MethodAdminAdded      EnrollmentMethod = "admin_added"
)

// InstructorRole tags a course-instructor assignment. All roles carry identical
// management permission; the role is descriptive metadata only and permission
// checks must never branch on it.
type InstructorRole string

const (
	RolePrimaryInstructor InstructorRole = "primary_instructor"
	RoleCoInstructor      InstructorRole = "co_instructor"
	RoleTeachingAssistant InstructorRole = "teaching_assistant"
)

// Valid reports whether the value is one of the known instructor roles
func (r InstructorRole) Valid() bool {
	switch r {
	case RolePrimaryInstructor, RoleCoInstructor, RoleTeachingAssistant:
		return true
	}
	return false
}
