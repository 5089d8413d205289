package repositories

import (
	"github.com/elevatehq/elevate-backend/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	OrganizationRepository *OrganizationRepository
	UserRepository         *UserRepository
	CourseRepository       *CourseRepository
	InstructorRepository   *CourseInstructorRepository
	ProjectRepository      *ProjectRepository
	EnrollmentRepository   *EnrollmentRepository
}

// NewRepositories initializes all repositories against one database handle
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		OrganizationRepository: NewOrganizationRepository(database),
		UserRepository:         NewUserRepository(database),
		CourseRepository:       NewCourseRepository(database),
		InstructorRepository:   NewCourseInstructorRepository(database),
		ProjectRepository:      NewProjectRepository(database),
		EnrollmentRepository:   NewEnrollmentRepository(database),
	}
}
