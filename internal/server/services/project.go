package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/buildlog-app/buildlog/internal/common"
	"github.com/buildlog-app/buildlog/internal/server/models"
	"github.com/buildlog-app/buildlog/internal/server/repositories/repomanager"
)

// ProjectInput carries the fields of the project create/edit form. Optional
// fields arrive as raw strings and are normalized here: blanks become nil,
// technologies splits on commas.
type ProjectInput struct {
	Name                 string
	Description          string
	Goals                string
	TargetAudience       string
	ContentAngle         string
	Technologies         string
	TargetCompletionDate string
	Status               string
	ProgressPercentage   int
}

// ProjectService implements project CRUD on top of the repositories.
type ProjectService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewProjectService constructs a ProjectService.
func NewProjectService(db *sql.DB, m repomanager.RepositoryManager) *ProjectService {
	return &ProjectService{db: db, repomanager: m}
}

// Create validates the input and inserts a project for userID.
func (s *ProjectService) Create(ctx context.Context, userID string, in *ProjectInput) (*models.Project, error) {
	project, err := s.buildProject(userID, in)
	if err != nil {
		return nil, err
	}
	repo := s.repomanager.Projects(s.db)
	created, err := repo.Create(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("error creating project: %w", err)
	}
	return created, nil
}

// Get returns one project owned by userID.
func (s *ProjectService) Get(ctx context.Context, id, userID string) (*models.Project, error) {
	return s.repomanager.Projects(s.db).GetByID(ctx, id, userID)
}

// List returns the user's projects, newest first.
func (s *ProjectService) List(ctx context.Context, userID string) ([]*models.Project, error) {
	return s.repomanager.Projects(s.db).ListByUser(ctx, userID)
}

// ListActive returns only the user's active projects, for the check-in
// composer project picker.
func (s *ProjectService) ListActive(ctx context.Context, userID string) ([]*models.Project, error) {
	all, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	var active []*models.Project
	for _, p := range all {
		if p.Status == models.ProjectStatusActive {
			active = append(active, p)
		}
	}
	return active, nil
}

// Update validates the input and replaces every editable field of the
// project. Absent optional fields clear the stored values.
func (s *ProjectService) Update(ctx context.Context, id, userID string, in *ProjectInput) (*models.Project, error) {
	project, err := s.buildProject(userID, in)
	if err != nil {
		return nil, err
	}
	project.ID = id

	repo := s.repomanager.Projects(s.db)
	if err := repo.Update(ctx, project); err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, id, userID)
}

// Delete removes the project row. Past check-in updates keep their
// project_id and render as "Unknown project" afterwards.
func (s *ProjectService) Delete(ctx context.Context, id, userID string) error {
	return s.repomanager.Projects(s.db).Delete(ctx, id, userID)
}

func (s *ProjectService) buildProject(userID string, in *ProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", common.ErrorValidation)
	}

	status := in.Status
	if status == "" {
		status = models.ProjectStatusActive
	}
	if !models.ValidProjectStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", common.ErrorValidation, in.Status)
	}
	if in.ProgressPercentage < 0 || in.ProgressPercentage > 100 {
		return nil, fmt.Errorf("%w: progress must be between 0 and 100", common.ErrorValidation)
	}

	var completionDate *time.Time
	if d := strings.TrimSpace(in.TargetCompletionDate); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			return nil, fmt.Errorf("%w: target completion date must be YYYY-MM-DD", common.ErrorValidation)
		}
		completionDate = &parsed
	}

	return &models.Project{
		UserID:               userID,
		Name:                 name,
		Description:          optional(in.Description),
		Goals:                optional(in.Goals),
		TargetAudience:       optional(in.TargetAudience),
		ContentAngle:         optional(in.ContentAngle),
		Technologies:         common.SplitList(in.Technologies),
		TargetCompletionDate: completionDate,
		Status:               status,
		ProgressPercentage:   in.ProgressPercentage,
	}, nil
}

// optional trims s and returns nil for blanks, so empty form fields persist
// as NULL instead of empty strings.
func optional(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}
