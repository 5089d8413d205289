package models

import "time"

// Project is a team-formation activity nested under a course, with its own
// timeline and team-size bounds. Students only see it once published.
type Project struct {
	ID       string `json:"id" db:"id"`
	TenantID string `json:"tenantId" db:"tenant_id"`
	CourseID string `json:"courseId" db:"course_id"`

	Name         string  `json:"name" db:"name"`
	Description  *string `json:"description,omitempty" db:"description"`
	Instructions *string `json:"instructions,omitempty" db:"instructions"`

	// Timeline: start_date < due_date, team_formation_deadline <= due_date
	StartDate             time.Time `json:"startDate" db:"start_date"`
	DueDate               time.Time `json:"dueDate" db:"due_date"`
	TeamFormationDeadline time.Time `json:"teamFormationDeadline" db:"team_formation_deadline"`

	// Team formation settings
	MinTeamSize         int  `json:"minTeamSize" db:"min_team_size"`
	MaxTeamSize         int  `json:"maxTeamSize" db:"max_team_size"`
	AllowIndividualWork bool `json:"allowIndividualWork" db:"allow_individual_work"`
	AutoTeamFormation   bool `json:"autoTeamFormation" db:"auto_team_formation"`
	ManualTeamCreation  bool `json:"manualTeamCreation" db:"manual_team_creation"`

	// Status and visibility
	IsActive         bool `json:"isActive" db:"is_active"`
	IsPublished      bool `json:"isPublished" db:"is_published"`
	RequiresApproval bool `json:"requiresApproval" db:"requires_approval"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Course *Course `json:"course,omitempty"`
}

// IsTeamFormationOpen reports whether the project accepts team organization at
// the given instant: active, published, and on or before the deadline.
func (p *Project) IsTeamFormationOpen(now time.Time) bool {
	if !p.IsActive || !p.IsPublished {
		return false
	}
	return !now.After(p.TeamFormationDeadline)
}

// DaysUntilDue returns whole days remaining until the due date, floored at zero
func (p *Project) DaysUntilDue(now time.Time) int {
	if now.After(p.DueDate) {
		return 0
	}
	return int(p.DueDate.Sub(now).Hours() / 24)
}
