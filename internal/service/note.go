package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/savethecatapp/savethecat-server/internal/beat"
	"github.com/savethecatapp/savethecat-server/internal/domain"
	domainerrors "github.com/savethecatapp/savethecat-server/internal/errors"
	"github.com/savethecatapp/savethecat-server/internal/id"
	"github.com/savethecatapp/savethecat-server/internal/store"
)

// NoteService handles a project's sticky notes: the draggable scene cards
// on the corkboard.
type NoteService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewNoteService creates a new sticky note service.
func NewNoteService(store *store.Store, logger *slog.Logger) *NoteService {
	return &NoteService{store: store, logger: logger}
}

// NoteContentRequest carries a sticky note's full client-editable state,
// used for both create and full update.
type NoteContentRequest struct {
	X                    float64 `json:"x"`
	Y                    float64 `json:"y"`
	SceneHeading         string  `json:"sceneHeading" validate:"max=500"`
	Description          string  `json:"description"`
	EmotionalCharge      string  `json:"emotionalCharge" validate:"omitempty,oneof=+/- -/+ +/+ -/-"`
	EmotionalDescription string  `json:"emotionalDescription"`
	Conflict             string  `json:"conflict"`
	Color                string  `json:"color" validate:"omitempty,hexcolor"`
	BeatItem             string  `json:"beatItem"`
}

// resolveColor picks the note color. A note tied to a beat always wears
// that beat's color; an untied note keeps the client's color, falling
// back to the default yellow.
func resolveColor(beatItem, clientColor string) string {
	if beatItem != "" {
		return beat.ColorFor(beatItem)
	}
	if clientColor != "" {
		return clientColor
	}
	return beat.DefaultNoteColor
}

// CreateNote adds a sticky note to an owned project.
// A missing project and a foreign project fail the same way.
func (s *NoteService) CreateNote(ctx context.Context, ownerID, projectID string, req NoteContentRequest) (*domain.StickyNote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	noteID, err := id.Generate("note")
	if err != nil {
		return nil, fmt.Errorf("generate note ID: %w", err)
	}

	note := &domain.StickyNote{
		Model:                domain.Model{ID: noteID},
		ProjectID:            projectID,
		X:                    req.X,
		Y:                    req.Y,
		SceneHeading:         req.SceneHeading,
		Description:          req.Description,
		EmotionalCharge:      domain.EmotionalCharge(req.EmotionalCharge),
		EmotionalDescription: req.EmotionalDescription,
		Conflict:             req.Conflict,
		Color:                resolveColor(req.BeatItem, req.Color),
		BeatItem:             req.BeatItem,
	}
	note.InitTimestamps()

	if err := s.store.CreateNote(ctx, ownerID, note); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("project not found")
		}
		return nil, fmt.Errorf("create note: %w", err)
	}

	s.logger.Info("Note created", "note_id", noteID, "project_id", projectID)

	return note, nil
}

// ListNotes returns the sticky notes of an owned project in creation
// order. A foreign or missing project yields an empty list.
func (s *NoteService) ListNotes(ctx context.Context, ownerID, projectID string) ([]*domain.StickyNote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	notes, err := s.store.ListNotes(ctx, ownerID, projectID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// UpdateNote replaces the content of an owned note and returns the stored
// result. A missing note and a foreign note fail the same way.
func (s *NoteService) UpdateNote(ctx context.Context, ownerID, noteID string, req NoteContentRequest) (*domain.StickyNote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	note := &domain.StickyNote{
		Model:                domain.Model{ID: noteID},
		X:                    req.X,
		Y:                    req.Y,
		SceneHeading:         req.SceneHeading,
		Description:          req.Description,
		EmotionalCharge:      domain.EmotionalCharge(req.EmotionalCharge),
		EmotionalDescription: req.EmotionalDescription,
		Conflict:             req.Conflict,
		Color:                resolveColor(req.BeatItem, req.Color),
		BeatItem:             req.BeatItem,
	}

	if err := s.store.UpdateNote(ctx, ownerID, note); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("note not found")
		}
		return nil, fmt.Errorf("update note: %w", err)
	}

	updated, err := s.store.GetNoteForOwner(ctx, ownerID, noteID)
	if err != nil {
		return nil, fmt.Errorf("reload note: %w", err)
	}
	return updated, nil
}

// MoveNote updates a note's corkboard position without touching content.
// A miss of any flavor is a silent no-op.
func (s *NoteService) MoveNote(ctx context.Context, ownerID, noteID string, x, y float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.store.UpdateNotePosition(ctx, ownerID, noteID, x, y)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Debug("Move hit no note", "note_id", noteID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("move note: %w", err)
	}
	return nil
}

// RecolorNote changes a note's color only.
// A miss of any flavor is a silent no-op.
func (s *NoteService) RecolorNote(ctx context.Context, ownerID, noteID, color string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if color == "" {
		return domainerrors.Validation("color is required")
	}
	if err := validate.Var(color, "hexcolor"); err != nil {
		return domainerrors.Validation("color must be a hex color")
	}

	err := s.store.UpdateNoteColor(ctx, ownerID, noteID, color)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Debug("Recolor hit no note", "note_id", noteID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("recolor note: %w", err)
	}
	return nil
}

// DeleteNote removes an owned note.
// A miss of any flavor is a silent no-op.
func (s *NoteService) DeleteNote(ctx context.Context, ownerID, noteID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.store.DeleteNote(ctx, ownerID, noteID)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Debug("Delete hit no note", "note_id", noteID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}
