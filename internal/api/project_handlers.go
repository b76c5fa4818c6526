package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/savethecatapp/savethecat-server/internal/domain"
	"github.com/savethecatapp/savethecat-server/internal/service"
)

func (s *Server) registerProjectRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listProjects",
		Method:      http.MethodGet,
		Path:        "/api/v1/projects",
		Summary:     "List projects",
		Description: "Returns the caller's projects ordered by name",
		Tags:        []string{"Projects"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListProjects)

	huma.Register(s.api, huma.Operation{
		OperationID: "createProject",
		Method:      http.MethodPost,
		Path:        "/api/v1/projects",
		Summary:     "Create project",
		Description: "Creates a project together with its empty beat sheet",
		Tags:        []string{"Projects"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateProject)

	huma.Register(s.api, huma.Operation{
		OperationID: "renameProject",
		Method:      http.MethodPut,
		Path:        "/api/v1/projects/{projectID}",
		Summary:     "Rename project",
		Description: "Renames a project and rewrites its beat sheet title",
		Tags:        []string{"Projects"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRenameProject)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteProject",
		Method:      http.MethodDelete,
		Path:        "/api/v1/projects/{projectID}",
		Summary:     "Delete project",
		Description: "Deletes a project and everything under it",
		Tags:        []string{"Projects"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteProject)
}

// === DTOs ===

// ProjectNameRequest is the request body for project create and rename.
type ProjectNameRequest struct {
	Name string `json:"name" validate:"required,max=200" doc:"Project name (stored upper-cased)"`
}

// ProjectResponse contains project data in API responses.
type ProjectResponse struct {
	ID        string    `json:"id" doc:"Project ID"`
	Name      string    `json:"name" doc:"Project name"`
	CreatedAt time.Time `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update timestamp"`
}

// ProjectOutput wraps a single project for Huma.
type ProjectOutput struct {
	Body ProjectResponse
}

// ProjectListOutput wraps a project list for Huma.
type ProjectListOutput struct {
	Body []ProjectResponse
}

// ListProjectsInput carries only the bearer token.
type ListProjectsInput struct {
	Authorization string `header:"Authorization"`
}

// CreateProjectInput wraps the create request for Huma.
type CreateProjectInput struct {
	Authorization string `header:"Authorization"`
	Body          ProjectNameRequest
}

// RenameProjectInput wraps the rename request for Huma.
type RenameProjectInput struct {
	Authorization string `header:"Authorization"`
	ProjectID     string `path:"projectID" doc:"Project ID"`
	Body          ProjectNameRequest
}

// DeleteProjectInput identifies the project to delete.
type DeleteProjectInput struct {
	Authorization string `header:"Authorization"`
	ProjectID     string `path:"projectID" doc:"Project ID"`
}

// === Handlers ===

func (s *Server) handleListProjects(ctx context.Context, input *ListProjectsInput) (*ProjectListOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	projects, err := s.services.Project.ListProjects(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, mapProjectResponse(p))
	}

	return &ProjectListOutput{Body: resp}, nil
}

func (s *Server) handleCreateProject(ctx context.Context, input *CreateProjectInput) (*ProjectOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	project, err := s.services.Project.CreateProject(ctx, userID, service.CreateProjectRequest{
		Name: input.Body.Name,
	})
	if err != nil {
		return nil, err
	}

	return &ProjectOutput{Body: mapProjectResponse(project)}, nil
}

func (s *Server) handleRenameProject(ctx context.Context, input *RenameProjectInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	err = s.services.Project.RenameProject(ctx, userID, input.ProjectID, service.RenameProjectRequest{
		Name: input.Body.Name,
	})
	if err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Project renamed"}}, nil
}

func (s *Server) handleDeleteProject(ctx context.Context, input *DeleteProjectInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Project.DeleteProject(ctx, userID, input.ProjectID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Project deleted"}}, nil
}

// === Helpers ===

func mapProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
