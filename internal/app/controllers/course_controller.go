package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elevatehq/elevate-backend/internal/app/models"
	"github.com/elevatehq/elevate-backend/internal/app/models/dto"
	"github.com/elevatehq/elevate-backend/internal/app/services"
	"github.com/elevatehq/elevate-backend/internal/middleware"
)

// CourseController handles course and enrollment operations
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// CreateCourse handles course creation. The caller becomes the primary
// instructor.
// @Summary Create a new course
// @Description Creates a course and assigns the caller as primary instructor
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.courseService.CreateCourse(ctx, services.CreateCourseParams{
		Name:                req.Name,
		Code:                req.Code,
		Department:          req.Department,
		Semester:            req.Semester,
		Year:                req.Year,
		TenantID:            middleware.GetTenantID(ctx),
		PrimaryInstructorID: middleware.GetUserID(ctx),
		Description:         req.Description,
		MaxStudents:         req.MaxStudents,
		Credits:             req.Credits,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      course,
		Timestamp: time.Now(),
	})
}

// GetCourse retrieves a course within the caller's tenant
// @Summary Get course by ID
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, err := c.courseService.GetCourse(ctx, ctx.Param("id"), middleware.GetTenantID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      course,
		Timestamp: time.Now(),
	})
}

// ListCourses lists or searches the tenant's courses
// @Summary List courses
// @Description Lists the tenant's courses, optionally filtered by a search query
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search in name and code"
// @Param skip query int false "Items to skip"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	skip, limit := parsePagination(ctx)
	tenantID := middleware.GetTenantID(ctx)

	var courses []*models.Course
	var err error
	if query := ctx.Query("q"); query != "" {
		courses, err = c.courseService.SearchCourses(ctx, query, tenantID, skip, limit)
	} else {
		courses, err = c.courseService.ListCourses(ctx, tenantID, skip, limit)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.PaginatedResponse{
			Items:      courses,
			Pagination: dto.PaginationInfo{Skip: skip, Limit: limit, Count: len(courses)},
		},
		Timestamp: time.Now(),
	})
}

// AddInstructor assigns an instructor role on a course
// @Summary Add course instructor
// @Description Assigns a user an instructor role on the course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param request body dto.AddInstructorRequest true "Assignment information"
// @Success 201 {object} dto.APIResponse{data=models.CourseInstructor} "Instructor assigned successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Assignment already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/instructors [post]
func (c *CourseController) AddInstructor(ctx *gin.Context) {
	var req dto.AddInstructorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid assignment data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	assignment, err := c.courseService.AddInstructor(ctx,
		ctx.Param("id"), req.InstructorID, models.InstructorRole(req.Role), middleware.GetTenantID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      assignment,
		Timestamp: time.Now(),
	})
}

// EnrollStudent enrolls a student in a course
// @Summary Enroll in a course
// @Description Enrolls a student; with no studentId the caller enrolls themselves
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param request body dto.EnrollRequest true "Enrollment information"
// @Success 201 {object} dto.APIResponse{data=models.CourseEnrollment} "Enrollment created"
// @Failure 400 {object} dto.ErrorResponse "Enrollment closed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/enrollments [post]
func (c *CourseController) EnrollStudent(ctx *gin.Context) {
	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enrollment data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	studentID := req.StudentID
	method := models.MethodInstructorAdded
	if studentID == "" || studentID == middleware.GetUserID(ctx) {
		studentID = middleware.GetUserID(ctx)
		method = models.MethodSelfEnrolled
	}

	enrollment, err := c.courseService.EnrollStudent(ctx,
		ctx.Param("id"), studentID, middleware.GetTenantID(ctx), method, req.AutoApprove)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      enrollment,
		Timestamp: time.Now(),
	})
}

// BulkEnrollStudents imports a roster of students
// @Summary Bulk enroll students
// @Description Enrolls a roster as ACTIVE, bypassing capacity and the approval queue
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param request body dto.BulkEnrollRequest true "Roster information"
// @Success 200 {object} dto.APIResponse{data=dto.BulkEnrollResponse} "Roster imported"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/enrollments/bulk [post]
func (c *CourseController) BulkEnrollStudents(ctx *gin.Context) {
	var req dto.BulkEnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid roster data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	method := models.MethodInstructorAdded
	if req.Method != "" {
		method = models.EnrollmentMethod(req.Method)
	}

	enrollments, err := c.courseService.BulkEnrollStudents(ctx,
		ctx.Param("id"), req.StudentIDs, middleware.GetTenantID(ctx), method)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.BulkEnrollResponse{
			Enrolled: len(enrollments),
			Skipped:  len(req.StudentIDs) - len(enrollments),
		},
		Timestamp: time.Now(),
	})
}

// ListEnrollments lists a course's enrollments
// @Summary List course enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param status query string false "Filter by status" Enums(pending, active, dropped, completed)
// @Param skip query int false "Items to skip"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.CourseEnrollment} "Enrollments retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/enrollments [get]
func (c *CourseController) ListEnrollments(ctx *gin.Context) {
	skip, limit := parsePagination(ctx)

	var status *models.EnrollmentStatus
	if s := ctx.Query("status"); s != "" {
		value := models.EnrollmentStatus(s)
		status = &value
	}

	enrollments, err := c.courseService.ListEnrollments(ctx,
		ctx.Param("id"), middleware.GetTenantID(ctx), status, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.PaginatedResponse{
			Items:      enrollments,
			Pagination: dto.PaginationInfo{Skip: skip, Limit: limit, Count: len(enrollments)},
		},
		Timestamp: time.Now(),
	})
}

// ListPendingEnrollments lists the tenant's approval queue
// @Summary List pending enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Items to skip"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.CourseEnrollment} "Pending enrollments retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/pending [get]
func (c *CourseController) ListPendingEnrollments(ctx *gin.Context) {
	skip, limit := parsePagination(ctx)

	enrollments, err := c.courseService.ListPendingEnrollments(ctx, middleware.GetTenantID(ctx), skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.PaginatedResponse{
			Items:      enrollments,
			Pagination: dto.PaginationInfo{Skip: skip, Limit: limit, Count: len(enrollments)},
		},
		Timestamp: time.Now(),
	})
}

// ApproveEnrollment approves a pending enrollment
// @Summary Approve enrollment
// @Description Activates a pending enrollment if the course has capacity
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=models.CourseEnrollment} "Enrollment approved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 409 {object} dto.ErrorResponse "Course full or enrollment not pending"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id}/approve [post]
func (c *CourseController) ApproveEnrollment(ctx *gin.Context) {
	enrollment, err := c.courseService.ApproveEnrollment(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      enrollment,
		Timestamp: time.Now(),
	})
}

// DropEnrollment drops a student from a course
// @Summary Drop enrollment
// @Description Transitions a pending or active enrollment to DROPPED
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=models.CourseEnrollment} "Enrollment dropped"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 409 {object} dto.ErrorResponse "Enrollment already terminal"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id}/drop [post]
func (c *CourseController) DropEnrollment(ctx *gin.Context) {
	enrollment, err := c.courseService.DropStudent(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      enrollment,
		Timestamp: time.Now(),
	})
}
