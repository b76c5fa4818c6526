package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/savethecatapp/savethecat-server/internal/domain"
)

func makeTestNote(id, projectID string) *domain.StickyNote {
	now := time.Now()
	return &domain.StickyNote{
		Model: domain.Model{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
		},
		ProjectID:            projectID,
		X:                    10,
		Y:                    20,
		SceneHeading:         "INT. VAULT - NIGHT",
		Description:          "The crew cracks the vault.",
		EmotionalCharge:      domain.ChargeMinusPlus,
		EmotionalDescription: "tension to triumph",
		Conflict:             "guards closing in",
		Color:                "#fff59d",
	}
}

func TestCreateAndGetNote(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedOwner(t, s, "user-1")
	seedProject(t, s, "user-1", "project-1", "HEIST")

	note := makeTestNote("note-1", "project-1")
	note.BeatItem = "midpoint"
	note.Color = "#90CAF9"
	if err := s.CreateNote(ctx, "user-1", note); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	got, err := s.GetNoteForOwner(ctx, "user-1", "note-1")
	if err != nil {
		t.Fatalf("GetNoteForOwner: %v", err)
	}
	if got.SceneHeading != note.SceneHeading {
		t.Errorf("SceneHeading: got %q", got.SceneHeading)
	}
	if got.EmotionalCharge != domain.ChargeMinusPlus {
		t.Errorf("EmotionalCharge: got %q", got.EmotionalCharge)
	}
	if got.X != 10 || got.Y != 20 {
		t.Errorf("position: got (%v, %v)", got.X, got.Y)
	}
	if got.BeatItem != "midpoint" || got.Color != "#90CAF9" {
		t.Errorf("beat item/color: got %q %q", got.BeatItem, got.Color)
	}

	// Ownership miss looks like absence.
	if _, err := s.GetNoteForOwner(ctx, "user-other", "note-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign get: got %v, want ErrNotFound", err)
	}
}

func TestCreateNoteRequiresOwnership(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedOwner(t, s, "user-1")
	seedOwner(t, s, "user-2")
	seedProject(t, s, "user-1", "project-1", "HEIST")

	err := s.CreateNote(ctx, "user-2", makeTestNote("note-1", "project-1"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign create: got %v, want ErrNotFound", err)
	}

	notes, err := s.ListNotes(ctx, "user-1", "project-1")
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("foreign create left %d notes behind", len(notes))
	}
}

func TestListNotesInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedOwner(t, s, "user-1")
	seedProject(t, s, "user-1", "project-1", "HEIST")

	base := time.Now()
	for i, id := range []string{"note-a", "note-b", "note-c"} {
		note := makeTestNote(id, "project-1")
		note.CreatedAt = base.Add(time.Duration(i) * time.Second)
		note.UpdatedAt = note.CreatedAt
		if err := s.CreateNote(ctx, "user-1", note); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	notes, err := s.ListNotes(ctx, "user-1", "project-1")
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	want := []string{"note-a", "note-b", "note-c"}
	if len(notes) != len(want) {
		t.Fatalf("got %d notes, want %d", len(notes), len(want))
	}
	for i, n := range notes {
		if n.ID != want[i] {
			t.Errorf("note[%d]: got %q, want %q", i, n.ID, want[i])
		}
	}
}

func TestUpdateNote(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedOwner(t, s, "user-1")
	seedProject(t, s, "user-1", "project-1", "HEIST")

	note := makeTestNote("note-1", "project-1")
	if err := s.CreateNote(ctx, "user-1", note); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	note.SceneHeading = "EXT. FOUNTAIN - NIGHT"
	note.EmotionalCharge = domain.ChargePlusPlus
	note.X = 300
	note.Y = 400
	note.BeatItem = "finale"
	note.Color = "#C5E1A5"
	if err := s.UpdateNote(ctx, "user-1", note); err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}

	got, err := s.GetNoteForOwner(ctx, "user-1", "note-1")
	if err != nil {
		t.Fatalf("GetNoteForOwner: %v", err)
	}
	if got.SceneHeading != "EXT. FOUNTAIN - NIGHT" || got.X != 300 || got.Color != "#C5E1A5" {
		t.Errorf("update not applied: %+v", got)
	}

	if err := s.UpdateNote(ctx, "user-other", note); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign update: got %v, want ErrNotFound", err)
	}
}

func TestUpdateNotePositionAndColor(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedOwner(t, s, "user-1")
	seedProject(t, s, "user-1", "project-1", "HEIST")

	note := makeTestNote("note-1", "project-1")
	if err := s.CreateNote(ctx, "user-1", note); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	if err := s.UpdateNotePosition(ctx, "user-1", "note-1", 55.5, 66.25); err != nil {
		t.Fatalf("UpdateNotePosition: %v", err)
	}
	if err := s.UpdateNoteColor(ctx, "user-1", "note-1", "#EF9A9A"); err != nil {
		t.Fatalf("UpdateNoteColor: %v", err)
	}

	got, err := s.GetNoteForOwner(ctx, "user-1", "note-1")
	if err != nil {
		t.Fatalf("GetNoteForOwner: %v", err)
	}
	if got.X != 55.5 || got.Y != 66.25 {
		t.Errorf("position: got (%v, %v)", got.X, got.Y)
	}
	if got.Color != "#EF9A9A" {
		t.Errorf("color: got %q", got.Color)
	}
	// The fast paths leave content alone.
	if got.SceneHeading != note.SceneHeading {
		t.Errorf("SceneHeading changed: %q", got.SceneHeading)
	}

	if err := s.UpdateNotePosition(ctx, "user-other", "note-1", 0, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign position: got %v, want ErrNotFound", err)
	}
	if err := s.UpdateNoteColor(ctx, "user-other", "note-1", "#000000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign color: got %v, want ErrNotFound", err)
	}
}

func TestDeleteNote(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedOwner(t, s, "user-1")
	seedProject(t, s, "user-1", "project-1", "HEIST")

	if err := s.CreateNote(ctx, "user-1", makeTestNote("note-1", "project-1")); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	if err := s.DeleteNote(ctx, "user-1", "note-1"); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	if err := s.DeleteNote(ctx, "user-1", "note-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}
