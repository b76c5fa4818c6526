package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/savethecatapp/savethecat-server/internal/domain"
	domainerrors "github.com/savethecatapp/savethecat-server/internal/errors"
	"github.com/savethecatapp/savethecat-server/internal/id"
	"github.com/savethecatapp/savethecat-server/internal/normalize"
	"github.com/savethecatapp/savethecat-server/internal/store"
)

// ProjectService handles project lifecycle. Every project carries exactly
// one beat sheet, created and renamed in lockstep with the project.
type ProjectService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(store *store.Store, logger *slog.Logger) *ProjectService {
	return &ProjectService{store: store, logger: logger}
}

// CreateProjectRequest carries the new project's name.
type CreateProjectRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// RenameProjectRequest carries the replacement project name.
type RenameProjectRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// CreateProject creates a project together with its empty beat sheet in
// one transaction. The name is trimmed and upper-cased; the sheet starts
// titled after the project and dated today.
func (s *ProjectService) CreateProject(ctx context.Context, ownerID string, req CreateProjectRequest) (*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	name := normalize.EntityName(req.Name)
	if name == "" {
		return nil, domainerrors.Validation("name is required")
	}

	projectID, err := id.Generate("project")
	if err != nil {
		return nil, fmt.Errorf("generate project ID: %w", err)
	}
	sheetID, err := id.Generate("sheet")
	if err != nil {
		return nil, fmt.Errorf("generate sheet ID: %w", err)
	}

	project := &domain.Project{
		Model:   domain.Model{ID: projectID},
		OwnerID: ownerID,
		Name:    name,
	}
	project.InitTimestamps()

	sheet := &domain.BeatSheet{
		Model:     domain.Model{ID: sheetID},
		ProjectID: projectID,
		Title:     name,
		Date:      time.Now().Format("2006-01-02"),
	}
	sheet.InitTimestamps()

	if err := s.store.CreateProjectWithBeatSheet(ctx, project, sheet); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.logger.Info("Project created",
		"project_id", projectID,
		"owner_id", ownerID,
		"name", name,
	)

	return project, nil
}

// ListProjects returns the caller's projects ordered by name.
// A user with no projects gets an empty list, never an error.
func (s *ProjectService) ListProjects(ctx context.Context, ownerID string) ([]*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	projects, err := s.store.ListProjectsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// RenameProject renames an owned project and rewrites the beat sheet
// title with it. Renaming a missing or foreign project is a silent no-op.
func (s *ProjectService) RenameProject(ctx context.Context, ownerID, projectID string, req RenameProjectRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	name := normalize.EntityName(req.Name)
	if name == "" {
		return domainerrors.Validation("name is required")
	}

	err := s.store.RenameProject(ctx, ownerID, projectID, name)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Debug("Rename hit no project", "project_id", projectID, "owner_id", ownerID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("rename project: %w", err)
	}
	return nil
}

// DeleteProject removes an owned project and everything under it.
// Deleting a missing or foreign project is a silent no-op.
func (s *ProjectService) DeleteProject(ctx context.Context, ownerID, projectID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.store.DeleteProjectForOwner(ctx, ownerID, projectID)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Debug("Delete hit no project", "project_id", projectID, "owner_id", ownerID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	s.logger.Info("Project deleted", "project_id", projectID, "owner_id", ownerID)
	return nil
}
