package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/savethecatapp/savethecat-server/internal/domain"
	"github.com/savethecatapp/savethecat-server/internal/service"
)

// registerEntityRoutes wires the characters and locations surfaces. The two
// are identical except for kind, path segment and operation naming.
func (s *Server) registerEntityRoutes() {
	s.registerEntityKind(domain.KindCharacter, "characters", "Character", "Characters")
	s.registerEntityKind(domain.KindLocation, "locations", "Location", "Locations")
}

func (s *Server) registerEntityKind(kind domain.EntityKind, segment, singular, tag string) {
	security := []map[string][]string{{"bearer": {}}}

	huma.Register(s.api, huma.Operation{
		OperationID: "list" + tag,
		Method:      http.MethodGet,
		Path:        "/api/v1/projects/{projectID}/" + segment,
		Summary:     "List " + segment,
		Description: "Returns the project's " + segment + " ordered by name",
		Tags:        []string{tag},
		Security:    security,
	}, s.entityListHandler(kind))

	huma.Register(s.api, huma.Operation{
		OperationID: "create" + singular,
		Method:      http.MethodPost,
		Path:        "/api/v1/projects/{projectID}/" + segment,
		Summary:     "Create " + segment[:len(segment)-1],
		Description: "Adds a " + segment[:len(segment)-1] + " to the project",
		Tags:        []string{tag},
		Security:    security,
	}, s.entityCreateHandler(kind))

	huma.Register(s.api, huma.Operation{
		OperationID: "rename" + singular,
		Method:      http.MethodPut,
		Path:        "/api/v1/projects/{projectID}/" + segment + "/{entityID}",
		Summary:     "Rename " + segment[:len(segment)-1],
		Description: "Renames a " + segment[:len(segment)-1],
		Tags:        []string{tag},
		Security:    security,
	}, s.entityRenameHandler(kind))

	huma.Register(s.api, huma.Operation{
		OperationID: "delete" + singular,
		Method:      http.MethodDelete,
		Path:        "/api/v1/projects/{projectID}/" + segment + "/{entityID}",
		Summary:     "Delete " + segment[:len(segment)-1],
		Description: "Removes a " + segment[:len(segment)-1],
		Tags:        []string{tag},
		Security:    security,
	}, s.entityDeleteHandler(kind))
}

// === DTOs ===

// EntityNameRequest is the request body for entity create and rename.
type EntityNameRequest struct {
	Name string `json:"name" validate:"required,max=200" doc:"Entity name (stored upper-cased)"`
}

// EntityResponse contains a character or location in API responses.
type EntityResponse struct {
	ID        string    `json:"id" doc:"Entity ID"`
	ProjectID string    `json:"project_id" doc:"Owning project ID"`
	Name      string    `json:"name" doc:"Entity name"`
	CreatedAt time.Time `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update timestamp"`
}

// EntityOutput wraps a single entity for Huma.
type EntityOutput struct {
	Body EntityResponse
}

// EntityListOutput wraps an entity list for Huma.
type EntityListOutput struct {
	Body []EntityResponse
}

// ListEntitiesInput identifies the project.
type ListEntitiesInput struct {
	Authorization string `header:"Authorization"`
	ProjectID     string `path:"projectID" doc:"Project ID"`
}

// CreateEntityInput wraps the create request for Huma.
type CreateEntityInput struct {
	Authorization string `header:"Authorization"`
	ProjectID     string `path:"projectID" doc:"Project ID"`
	Body          EntityNameRequest
}

// RenameEntityInput wraps the rename request for Huma.
type RenameEntityInput struct {
	Authorization string `header:"Authorization"`
	ProjectID     string `path:"projectID" doc:"Project ID"`
	EntityID      string `path:"entityID" doc:"Entity ID"`
	Body          EntityNameRequest
}

// DeleteEntityInput identifies the entity to delete.
type DeleteEntityInput struct {
	Authorization string `header:"Authorization"`
	ProjectID     string `path:"projectID" doc:"Project ID"`
	EntityID      string `path:"entityID" doc:"Entity ID"`
}

// === Handlers ===

func (s *Server) entityListHandler(kind domain.EntityKind) func(context.Context, *ListEntitiesInput) (*EntityListOutput, error) {
	return func(ctx context.Context, input *ListEntitiesInput) (*EntityListOutput, error) {
		userID, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}

		entities, err := s.services.Entity.ListEntities(ctx, kind, userID, input.ProjectID)
		if err != nil {
			return nil, err
		}

		resp := make([]EntityResponse, 0, len(entities))
		for _, e := range entities {
			resp = append(resp, mapEntityResponse(e))
		}

		return &EntityListOutput{Body: resp}, nil
	}
}

func (s *Server) entityCreateHandler(kind domain.EntityKind) func(context.Context, *CreateEntityInput) (*EntityOutput, error) {
	return func(ctx context.Context, input *CreateEntityInput) (*EntityOutput, error) {
		userID, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}

		entity, err := s.services.Entity.CreateEntity(ctx, kind, userID, input.ProjectID, service.EntityNameRequest{
			Name: input.Body.Name,
		})
		if err != nil {
			return nil, err
		}

		return &EntityOutput{Body: mapEntityResponse(entity)}, nil
	}
}

func (s *Server) entityRenameHandler(kind domain.EntityKind) func(context.Context, *RenameEntityInput) (*MessageOutput, error) {
	return func(ctx context.Context, input *RenameEntityInput) (*MessageOutput, error) {
		userID, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}

		err = s.services.Entity.RenameEntity(ctx, kind, userID, input.EntityID, service.EntityNameRequest{
			Name: input.Body.Name,
		})
		if err != nil {
			return nil, err
		}

		return &MessageOutput{Body: MessageResponse{Message: "Renamed"}}, nil
	}
}

func (s *Server) entityDeleteHandler(kind domain.EntityKind) func(context.Context, *DeleteEntityInput) (*MessageOutput, error) {
	return func(ctx context.Context, input *DeleteEntityInput) (*MessageOutput, error) {
		userID, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}

		if err := s.services.Entity.DeleteEntity(ctx, kind, userID, input.EntityID); err != nil {
			return nil, err
		}

		return &MessageOutput{Body: MessageResponse{Message: "Deleted"}}, nil
	}
}

// === Helpers ===

func mapEntityResponse(e *domain.NamedEntity) EntityResponse {
	return EntityResponse{
		ID:        e.ID,
		ProjectID: e.ProjectID,
		Name:      e.Name,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
