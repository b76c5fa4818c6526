package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/savethecatapp/savethecat-server/internal/domain"
	domainerrors "github.com/savethecatapp/savethecat-server/internal/errors"
	"github.com/savethecatapp/savethecat-server/internal/id"
	"github.com/savethecatapp/savethecat-server/internal/normalize"
	"github.com/savethecatapp/savethecat-server/internal/store"
)

// EntityService handles a project's characters and locations. The two
// collections behave identically, so one service covers both, keyed by
// domain.EntityKind.
type EntityService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewEntityService creates a new character/location service.
func NewEntityService(store *store.Store, logger *slog.Logger) *EntityService {
	return &EntityService{store: store, logger: logger}
}

// EntityNameRequest carries a character or location name.
type EntityNameRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// idPrefix returns the ID prefix for a kind.
func idPrefix(kind domain.EntityKind) string {
	if kind == domain.KindLocation {
		return "loc"
	}
	return "char"
}

// CreateEntity adds a character or location to an owned project.
// A missing project and a foreign project fail the same way.
func (s *EntityService) CreateEntity(ctx context.Context, kind domain.EntityKind, ownerID, projectID string, req EntityNameRequest) (*domain.NamedEntity, error) {
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

	entityID, err := id.Generate(idPrefix(kind))
	if err != nil {
		return nil, fmt.Errorf("generate %s ID: %w", kind, err)
	}

	entity := &domain.NamedEntity{
		Model:     domain.Model{ID: entityID},
		ProjectID: projectID,
		Name:      name,
	}
	entity.InitTimestamps()

	if err := s.store.CreateEntity(ctx, kind, ownerID, entity); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("project not found")
		}
		return nil, fmt.Errorf("create %s: %w", kind, err)
	}

	s.logger.Info("Entity created",
		"kind", string(kind),
		"entity_id", entityID,
		"project_id", projectID,
	)

	return entity, nil
}

// ListEntities returns the characters or locations of an owned project,
// ordered by name. A foreign or missing project yields an empty list.
func (s *EntityService) ListEntities(ctx context.Context, kind domain.EntityKind, ownerID, projectID string) ([]*domain.NamedEntity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entities, err := s.store.ListEntities(ctx, kind, ownerID, projectID)
	if err != nil {
		return nil, fmt.Errorf("list %ss: %w", kind, err)
	}
	return entities, nil
}

// RenameEntity renames an owned character or location.
// A miss of any flavor is a silent no-op.
func (s *EntityService) RenameEntity(ctx context.Context, kind domain.EntityKind, ownerID, entityID string, req EntityNameRequest) error {
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

	err := s.store.RenameEntity(ctx, kind, ownerID, entityID, name)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Debug("Rename hit no entity", "kind", string(kind), "entity_id", entityID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("rename %s: %w", kind, err)
	}
	return nil
}

// DeleteEntity removes an owned character or location.
// A miss of any flavor is a silent no-op.
func (s *EntityService) DeleteEntity(ctx context.Context, kind domain.EntityKind, ownerID, entityID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.store.DeleteEntity(ctx, kind, ownerID, entityID)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Debug("Delete hit no entity", "kind", string(kind), "entity_id", entityID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	return nil
}
