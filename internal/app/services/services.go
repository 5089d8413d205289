package services

// Services defined in this package:
// - OrganizationService: tenant lifecycle and slug/domain uniqueness
// - UserService: tenant-scoped platform accounts
// - CourseService: course creation, instructor assignment, enrollment lifecycle
// - ProjectService: team-formation projects and their settings
//
// All services consume the repository contracts in interfaces.go and never
// reach the database directly.
