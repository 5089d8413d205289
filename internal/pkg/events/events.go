package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the platform
const (
	TypeCourseCreated          = "course.created"
	TypeTeamFormed             = "team.formed"
	TypeQuestionnaireCompleted = "questionnaire.completed"
)

// Event is a domain event delivered to the event bus. Delivery is
// fire-and-forget; no component in this core waits on consumers.
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data"`
	TenantID  string                 `json:"tenantId,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// New creates an event with a fresh id and the current timestamp
func New(eventType string, data map[string]interface{}, tenantID string) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Data:      data,
		TenantID:  tenantID,
		Timestamp: time.Now().UTC(),
	}
}

// NewCourseCreated builds the event emitted after a course is created
func NewCourseCreated(courseID, instructorID, courseName, tenantID string) Event {
	return New(TypeCourseCreated, map[string]interface{}{
		"course_id":     courseID,
		"instructor_id": instructorID,
		"course_name":   courseName,
	}, tenantID)
}

// NewTeamFormed builds the event emitted when a team is formed downstream
func NewTeamFormed(teamID, courseID, projectID string, memberIDs []string, tenantID string) Event {
	return New(TypeTeamFormed, map[string]interface{}{
		"team_id":    teamID,
		"course_id":  courseID,
		"project_id": projectID,
		"member_ids": memberIDs,
	}, tenantID)
}

// NewQuestionnaireCompleted builds the event emitted by the questionnaire collaborator
func NewQuestionnaireCompleted(questionnaireID, userID, courseID, tenantID string) Event {
	return New(TypeQuestionnaireCompleted, map[string]interface{}{
		"questionnaire_id": questionnaireID,
		"user_id":          userID,
		"course_id":        courseID,
	}, tenantID)
}
