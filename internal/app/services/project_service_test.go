package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/elevatehq/elevate-backend/internal/app/models"
	"github.com/elevatehq/elevate-backend/internal/config"
	"github.com/elevatehq/elevate-backend/internal/pkg/apperrors"
)

func newProjectService(store *fakeStore) *ProjectService {
	cfg := &config.Config{}
	cfg.TeamFormation.DefaultMinTeamSize = 3
	cfg.TeamFormation.DefaultMaxTeamSize = 6
	return NewProjectService(&fakeProjectRepo{store: store}, &fakeInstructorRepo{store: store}, cfg)
}

func seedAssignment(store *fakeStore, courseID, instructorID string, active bool) *models.CourseInstructor {
	now := time.Now().UTC()
	assignment := &models.CourseInstructor{
		ID:           uuid.NewString(),
		TenantID:     tenantA,
		CourseID:     courseID,
		InstructorID: instructorID,
		Role:         models.RoleTeachingAssistant,
		AssignedAt:   now,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	store.assignments[assignment.ID] = assignment
	return assignment
}

func validProjectParams(courseID, instructorID string) CreateProjectParams {
	start := time.Now().Add(24 * time.Hour)
	return CreateProjectParams{
		CourseID:              courseID,
		Name:                  "Capstone",
		StartDate:             start,
		DueDate:               start.AddDate(0, 2, 0),
		TeamFormationDeadline: start.AddDate(0, 0, 14),
		TenantID:              tenantA,
		InstructorID:          instructorID,
	}
}

func TestCreateProjectRequiresCourseInstructor(t *testing.T) {
	store := newFakeStore()
	svc := newProjectService(store)
	course := seedCourse(store, tenantA, nil)

	// Permission is checked before anything else, so even invalid dates
	// must come back as a permission failure for outsiders
	params := validProjectParams(course.ID, "stranger")
	params.DueDate = params.StartDate.Add(-time.Hour)

	if _, err := svc.CreateProject(context.Background(), params); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("got %v, want ErrPermissionDenied", err)
	}

	// An inactive assignment grants nothing either
	seedAssignment(store, course.ID, "former-ta", false)
	params.InstructorID = "former-ta"
	if _, err := svc.CreateProject(context.Background(), params); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("inactive assignment: got %v, want ErrPermissionDenied", err)
	}
}

func TestCreateProjectAppliesDefaults(t *testing.T) {
	store := newFakeStore()
	svc := newProjectService(store)
	course := seedCourse(store, tenantA, nil)
	seedAssignment(store, course.ID, "instructor-1", true)

	project, err := svc.CreateProject(context.Background(), validProjectParams(course.ID, "instructor-1"))
	if err != nil {
		t.Fatalf("CreateProject returned error: %v", err)
	}
	if project.MinTeamSize != 3 || project.MaxTeamSize != 6 {
		t.Errorf("team sizes = %d/%d, want defaults 3/6", project.MinTeamSize, project.MaxTeamSize)
	}
	if !project.AutoTeamFormation {
		t.Error("autoTeamFormation should default to true")
	}
	if !project.ManualTeamCreation {
		t.Error("manualTeamCreation should default to true")
	}
	if project.IsPublished {
		t.Error("new project must start unpublished")
	}
	if !project.IsActive {
		t.Error("new project should be active")
	}
}

func TestCreateProjectValidation(t *testing.T) {
	store := newFakeStore()
	svc := newProjectService(store)
	course := seedCourse(store, tenantA, nil)
	seedAssignment(store, course.ID, "instructor-1", true)

	cases := []struct {
		name    string
		mutate  func(*CreateProjectParams)
		wantErr error
	}{
		{
			name: "due date before start",
			mutate: func(p *CreateProjectParams) {
				p.DueDate = p.StartDate.Add(-time.Hour)
			},
			wantErr: apperrors.ErrInvalidDateRange,
		},
		{
			name: "formation deadline after due date",
			mutate: func(p *CreateProjectParams) {
				p.TeamFormationDeadline = p.DueDate.Add(time.Hour)
			},
			wantErr: apperrors.ErrInvalidDeadline,
		},
		{
			name: "min team size above max",
			mutate: func(p *CreateProjectParams) {
				minSize, maxSize := 5, 2
				p.MinTeamSize = &minSize
				p.MaxTeamSize = &maxSize
			},
			wantErr: apperrors.ErrInvalidTeamSize,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := validProjectParams(course.ID, "instructor-1")
			tc.mutate(&params)
			if _, err := svc.CreateProject(context.Background(), params); !errors.Is(err, tc.wantErr) {
				t.Errorf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCreateProjectFormationDeadlineMayEqualDueDate(t *testing.T) {
	store := newFakeStore()
	svc := newProjectService(store)
	course := seedCourse(store, tenantA, nil)
	seedAssignment(store, course.ID, "instructor-1", true)

	params := validProjectParams(course.ID, "instructor-1")
	params.TeamFormationDeadline = params.DueDate

	if _, err := svc.CreateProject(context.Background(), params); err != nil {
		t.Fatalf("deadline equal to due date should be accepted, got %v", err)
	}
}

func TestPublishProjectIdempotent(t *testing.T) {
	store := newFakeStore()
	svc := newProjectService(store)
	course := seedCourse(store, tenantA, nil)
	seedAssignment(store, course.ID, "instructor-1", true)

	project, err := svc.CreateProject(context.Background(), validProjectParams(course.ID, "instructor-1"))
	if err != nil {
		t.Fatalf("CreateProject returned error: %v", err)
	}

	published, err := svc.PublishProject(context.Background(), project.ID, "instructor-1")
	if err != nil {
		t.Fatalf("PublishProject returned error: %v", err)
	}
	if !published.IsPublished {
		t.Fatal("project should be published")
	}

	again, err := svc.PublishProject(context.Background(), project.ID, "instructor-1")
	if err != nil {
		t.Fatalf("second publish returned error: %v", err)
	}
	if !again.IsPublished {
		t.Error("second publish should leave the project published")
	}
}

func TestPublishProjectPermission(t *testing.T) {
	store := newFakeStore()
	svc := newProjectService(store)
	course := seedCourse(store, tenantA, nil)
	seedAssignment(store, course.ID, "instructor-1", true)

	project, err := svc.CreateProject(context.Background(), validProjectParams(course.ID, "instructor-1"))
	if err != nil {
		t.Fatalf("CreateProject returned error: %v", err)
	}

	if _, err := svc.PublishProject(context.Background(), project.ID, "stranger"); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("got %v, want ErrPermissionDenied", err)
	}
}

func TestUpdateTeamFormationSettingsPartial(t *testing.T) {
	store := newFakeStore()
	svc := newProjectService(store)
	course := seedCourse(store, tenantA, nil)
	seedAssignment(store, course.ID, "instructor-1", true)

	project, err := svc.CreateProject(context.Background(), validProjectParams(course.ID, "instructor-1"))
	if err != nil {
		t.Fatalf("CreateProject returned error: %v", err)
	}

	newMax := 8
	auto := false
	updated, err := svc.UpdateTeamFormationSettings(context.Background(), project.ID, "instructor-1", UpdateTeamFormationParams{
		MaxTeamSize:       &newMax,
		AutoTeamFormation: &auto,
	})
	if err != nil {
		t.Fatalf("UpdateTeamFormationSettings returned error: %v", err)
	}
	if updated.MaxTeamSize != 8 {
		t.Errorf("maxTeamSize = %d, want 8", updated.MaxTeamSize)
	}
	if updated.MinTeamSize != 3 {
		t.Errorf("minTeamSize = %d, want untouched default 3", updated.MinTeamSize)
	}
	if updated.AutoTeamFormation {
		t.Error("autoTeamFormation should be turned off")
	}
}

func TestUpdateTeamFormationSettingsRevalidates(t *testing.T) {
	store := newFakeStore()
	svc := newProjectService(store)
	course := seedCourse(store, tenantA, nil)
	seedAssignment(store, course.ID, "instructor-1", true)

	project, err := svc.CreateProject(context.Background(), validProjectParams(course.ID, "instructor-1"))
	if err != nil {
		t.Fatalf("CreateProject returned error: %v", err)
	}

	// Raising min above the existing max must fail even though max is untouched
	badMin := 10
	if _, err := svc.UpdateTeamFormationSettings(context.Background(), project.ID, "instructor-1", UpdateTeamFormationParams{
		MinTeamSize: &badMin,
	}); !errors.Is(err, apperrors.ErrInvalidTeamSize) {
		t.Fatalf("got %v, want ErrInvalidTeamSize", err)
	}

	lateDeadline := project.DueDate.Add(48 * time.Hour)
	if _, err := svc.UpdateTeamFormationSettings(context.Background(), project.ID, "instructor-1", UpdateTeamFormationParams{
		TeamFormationDeadline: &lateDeadline,
	}); !errors.Is(err, apperrors.ErrInvalidDeadline) {
		t.Fatalf("got %v, want ErrInvalidDeadline", err)
	}
}

func TestListTeamFormationOpen(t *testing.T) {
	store := newFakeStore()
	svc := newProjectService(store)
	course := seedCourse(store, tenantA, nil)
	seedAssignment(store, course.ID, "instructor-1", true)

	open, err := svc.CreateProject(context.Background(), validProjectParams(course.ID, "instructor-1"))
	if err != nil {
		t.Fatalf("CreateProject returned error: %v", err)
	}
	if _, err := svc.PublishProject(context.Background(), open.ID, "instructor-1"); err != nil {
		t.Fatalf("PublishProject returned error: %v", err)
	}

	// Published but with the formation window already closed
	closedParams := validProjectParams(course.ID, "instructor-1")
	closedParams.Name = "Closed Window"
	closedParams.StartDate = time.Now().AddDate(0, -1, 0)
	closedParams.TeamFormationDeadline = time.Now().Add(-time.Hour)
	closedParams.DueDate = time.Now().AddDate(0, 1, 0)
	closed, err := svc.CreateProject(context.Background(), closedParams)
	if err != nil {
		t.Fatalf("CreateProject returned error: %v", err)
	}
	if _, err := svc.PublishProject(context.Background(), closed.ID, "instructor-1"); err != nil {
		t.Fatalf("PublishProject returned error: %v", err)
	}

	// Open window but never published
	if _, err := svc.CreateProject(context.Background(), validProjectParams(course.ID, "instructor-1")); err != nil {
		t.Fatalf("CreateProject returned error: %v", err)
	}

	projects, err := svc.ListTeamFormationOpen(context.Background(), tenantA, 0, 50)
	if err != nil {
		t.Fatalf("ListTeamFormationOpen returned error: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("open projects = %d, want 1", len(projects))
	}
	if projects[0].ID != open.ID {
		t.Errorf("open project = %s, want %s", projects[0].ID, open.ID)
	}
}

func TestGetProjectCrossTenant(t *testing.T) {
	store := newFakeStore()
	svc := newProjectService(store)
	course := seedCourse(store, tenantA, nil)
	seedAssignment(store, course.ID, "instructor-1", true)

	project, err := svc.CreateProject(context.Background(), validProjectParams(course.ID, "instructor-1"))
	if err != nil {
		t.Fatalf("CreateProject returned error: %v", err)
	}

	if _, err := svc.GetProject(context.Background(), project.ID, tenantB); !errors.Is(err, apperrors.ErrProjectNotFound) {
		t.Fatalf("got %v, want ErrProjectNotFound", err)
	}
}
