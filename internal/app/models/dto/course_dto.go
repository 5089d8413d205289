package dto

// CreateCourseRequest represents course creation data. The creator becomes the
// course's primary instructor.
type CreateCourseRequest struct {
	Name        string  `json:"name" binding:"required"`
	Code        string  `json:"code" binding:"required"`
	Department  string  `json:"department" binding:"required"`
	Semester    string  `json:"semester" binding:"required,oneof=Fall Spring Summer"`
	Year        int     `json:"year" binding:"required,gte=2000"`
	Description *string `json:"description,omitempty"`
	MaxStudents *int    `json:"maxStudents,omitempty" binding:"omitempty,gt=0"`
	Credits     *int    `json:"credits,omitempty" binding:"omitempty,gt=0"`
}

// AddInstructorRequest assigns an instructor role on a course
type AddInstructorRequest struct {
	InstructorID string `json:"instructorId" binding:"required"`
	Role         string `json:"role" binding:"required,oneof=primary_instructor co_instructor teaching_assistant"`
}

// EnrollRequest enrolls a single student in a course. An omitted studentId
// means the caller enrolls themselves.
type EnrollRequest struct {
	StudentID   string `json:"studentId,omitempty"`
	AutoApprove bool   `json:"autoApprove"`
}

// BulkEnrollRequest enrolls a roster of students, bypassing capacity and the
// approval queue
type BulkEnrollRequest struct {
	StudentIDs []string `json:"studentIds" binding:"required,min=1"`
	Method     string   `json:"method" binding:"omitempty,oneof=instructor_added csv_import admin_added"`
}

// BulkEnrollResponse summarizes a roster import
type BulkEnrollResponse struct {
	Enrolled int `json:"enrolled"`
	Skipped  int `json:"skipped"`
}
