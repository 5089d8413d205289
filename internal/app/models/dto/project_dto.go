package dto

import "time"

// CreateProjectRequest represents project creation data. Omitted team sizes
// fall back to the platform defaults.
type CreateProjectRequest struct {
	Name                  string    `json:"name" binding:"required"`
	StartDate             time.Time `json:"startDate" binding:"required"`
	DueDate               time.Time `json:"dueDate" binding:"required"`
	TeamFormationDeadline time.Time `json:"teamFormationDeadline" binding:"required"`
	Description           *string   `json:"description,omitempty"`
	Instructions          *string   `json:"instructions,omitempty"`
	MinTeamSize           *int      `json:"minTeamSize,omitempty" binding:"omitempty,gt=0"`
	MaxTeamSize           *int      `json:"maxTeamSize,omitempty" binding:"omitempty,gt=0"`
	AllowIndividualWork   bool      `json:"allowIndividualWork"`
}

// UpdateTeamFormationRequest partially updates team-formation settings
type UpdateTeamFormationRequest struct {
	MinTeamSize           *int       `json:"minTeamSize,omitempty" binding:"omitempty,gt=0"`
	MaxTeamSize           *int       `json:"maxTeamSize,omitempty" binding:"omitempty,gt=0"`
	TeamFormationDeadline *time.Time `json:"teamFormationDeadline,omitempty"`
	AllowIndividualWork   *bool      `json:"allowIndividualWork,omitempty"`
	AutoTeamFormation     *bool      `json:"autoTeamFormation,omitempty"`
}
