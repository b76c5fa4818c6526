package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/savethecatapp/savethecat-server/internal/domain"
)

func makeTestEntity(id, projectID, name string) *domain.NamedEntity {
	now := time.Now()
	return &domain.NamedEntity{
		Model: domain.Model{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
		},
		ProjectID: projectID,
		Name:      name,
	}
}

func seedProject(t *testing.T, s *Store, ownerID, projectID, name string) {
	t.Helper()
	project, sheet := makeTestProject(projectID, ownerID, name)
	if err := s.CreateProjectWithBeatSheet(context.Background(), project, sheet); err != nil {
		t.Fatalf("seed project %s: %v", projectID, err)
	}
}

func TestCreateEntityRequiresOwnership(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedOwner(t, s, "user-1")
	seedOwner(t, s, "user-2")
	seedProject(t, s, "user-1", "project-1", "HEIST")

	if err := s.CreateEntity(ctx, domain.KindCharacter, "user-1", makeTestEntity("char-1", "project-1", "DANNY")); err != nil {
		t.Fatalf("CreateEntity: %v", err)
	}

	// A non-owner's insert lands nowhere, indistinguishable from a
	// missing project.
	err := s.CreateEntity(ctx, domain.KindCharacter, "user-2", makeTestEntity("char-2", "project-1", "RUSTY"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign create: got %v, want ErrNotFound", err)
	}
	err = s.CreateEntity(ctx, domain.KindCharacter, "user-1", makeTestEntity("char-3", "project-nope", "LINUS"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("absent project create: got %v, want ErrNotFound", err)
	}
}

func TestListEntitiesOrderedByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedOwner(t, s, "user-1")
	seedOwner(t, s, "user-2")
	seedProject(t, s, "user-1", "project-1", "HEIST")

	for i, name := range []string{"RUSTY", "DANNY", "LINUS"} {
		e := makeTestEntity("char-"+name, "project-1", name)
		e.CreatedAt = e.CreatedAt.Add(time.Duration(i) * time.Second)
		if err := s.CreateEntity(ctx, domain.KindCharacter, "user-1", e); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	chars, err := s.ListEntities(ctx, domain.KindCharacter, "user-1", "project-1")
	if err != nil {
		t.Fatalf("ListEntities: %v", err)
	}
	want := []string{"DANNY", "LINUS", "RUSTY"}
	if len(chars) != len(want) {
		t.Fatalf("got %d characters, want %d", len(chars), len(want))
	}
	for i, c := range chars {
		if c.Name != want[i] {
			t.Errorf("character[%d]: got %q, want %q", i, c.Name, want[i])
		}
	}

	// Locations live in their own table.
	locs, err := s.ListEntities(ctx, domain.KindLocation, "user-1", "project-1")
	if err != nil {
		t.Fatalf("ListEntities locations: %v", err)
	}
	if len(locs) != 0 {
		t.Errorf("got %d locations, want 0", len(locs))
	}

	// A non-owner gets an empty list, not an error.
	foreign, err := s.ListEntities(ctx, domain.KindCharacter, "user-2", "project-1")
	if err != nil {
		t.Fatalf("foreign ListEntities: %v", err)
	}
	if len(foreign) != 0 {
		t.Errorf("foreign list: got %d, want 0", len(foreign))
	}
}

func TestRenameAndDeleteEntity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedOwner(t, s, "user-1")
	seedProject(t, s, "user-1", "project-1", "HEIST")

	if err := s.CreateEntity(ctx, domain.KindLocation, "user-1", makeTestEntity("loc-1", "project-1", "BELLAGIO")); err != nil {
		t.Fatalf("CreateEntity: %v", err)
	}

	if err := s.RenameEntity(ctx, domain.KindLocation, "user-1", "loc-1", "BELLAGIO VAULT"); err != nil {
		t.Fatalf("RenameEntity: %v", err)
	}
	locs, err := s.ListEntities(ctx, domain.KindLocation, "user-1", "project-1")
	if err != nil {
		t.Fatalf("ListEntities: %v", err)
	}
	if len(locs) != 1 || locs[0].Name != "BELLAGIO VAULT" {
		t.Fatalf("rename not applied: %+v", locs)
	}

	// Foreign rename and delete land nowhere.
	if err := s.RenameEntity(ctx, domain.KindLocation, "user-other", "loc-1", "X"); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign rename: got %v, want ErrNotFound", err)
	}
	if err := s.DeleteEntity(ctx, domain.KindLocation, "user-other", "loc-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign delete: got %v, want ErrNotFound", err)
	}

	if err := s.DeleteEntity(ctx, domain.KindLocation, "user-1", "loc-1"); err != nil {
		t.Fatalf("DeleteEntity: %v", err)
	}
	if err := s.DeleteEntity(ctx, domain.KindLocation, "user-1", "loc-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}
