package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/savethecatapp/savethecat-server/internal/domain"
)

// noteColumns is the ordered list of columns selected in sticky note
// queries. Must match the scan order in scanNote.
const noteColumns = `id, created_at, updated_at, project_id, x, y, scene_heading,
	description, emotional_charge, emotional_description, conflict, color, beat_item`

// scanNote scans a sql.Row (or sql.Rows via its Scan method) into a domain.StickyNote.
func scanNote(scanner interface{ Scan(dest ...any) error }) (*domain.StickyNote, error) {
	var n domain.StickyNote

	var (
		createdAt string
		updatedAt string
		charge    string
	)

	err := scanner.Scan(
		&n.ID,
		&createdAt,
		&updatedAt,
		&n.ProjectID,
		&n.X,
		&n.Y,
		&n.SceneHeading,
		&n.Description,
		&charge,
		&n.EmotionalDescription,
		&n.Conflict,
		&n.Color,
		&n.BeatItem,
	)
	if err != nil {
		return nil, err
	}

	n.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	n.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	n.EmotionalCharge = domain.EmotionalCharge(charge)

	return &n, nil
}

// CreateNote inserts a sticky note, but only when the target project
// belongs to the owner; the check and the insert are one statement.
// Returns ErrNotFound when the project is missing or owned by someone else.
func (s *Store) CreateNote(ctx context.Context, ownerID string, note *domain.StickyNote) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO sticky_notes (
			id, created_at, updated_at, project_id, x, y, scene_heading,
			description, emotional_charge, emotional_description, conflict, color, beat_item
		)
		SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		WHERE EXISTS (SELECT 1 FROM projects WHERE id = ? AND owner_id = ?)`,
		note.ID,
		formatTime(note.CreatedAt),
		formatTime(note.UpdatedAt),
		note.ProjectID,
		note.X,
		note.Y,
		note.SceneHeading,
		note.Description,
		string(note.EmotionalCharge),
		note.EmotionalDescription,
		note.Conflict,
		note.Color,
		note.BeatItem,
		note.ProjectID,
		ownerID,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetNoteForOwner retrieves a sticky note reachable through a project the
// owner holds. Returns ErrNotFound for absence and ownership miss alike.
func (s *Store) GetNoteForOwner(ctx context.Context, ownerID, noteID string) (*domain.StickyNote, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+prefixColumns("n", noteColumns)+`
		FROM sticky_notes n
		JOIN projects p ON p.id = n.project_id
		WHERE n.id = ? AND p.owner_id = ?`,
		noteID, ownerID)

	note, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return note, nil
}

// ListNotes returns the sticky notes of an owned project in insertion
// order. An ownership miss yields an empty list.
func (s *Store) ListNotes(ctx context.Context, ownerID, projectID string) ([]*domain.StickyNote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+prefixColumns("n", noteColumns)+`
		FROM sticky_notes n
		JOIN projects p ON p.id = n.project_id
		WHERE n.project_id = ? AND p.owner_id = ?
		ORDER BY n.created_at ASC`,
		projectID, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*domain.StickyNote
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

// UpdateNote replaces the content of an owned sticky note: position, scene
// fields, charge, color and beat item.
// Returns ErrNotFound when the note is missing or not owned.
func (s *Store) UpdateNote(ctx context.Context, ownerID string, note *domain.StickyNote) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE sticky_notes SET
			updated_at = ?,
			x = ?,
			y = ?,
			scene_heading = ?,
			description = ?,
			emotional_charge = ?,
			emotional_description = ?,
			conflict = ?,
			color = ?,
			beat_item = ?
		WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE owner_id = ?)`,
		formatTime(time.Now()),
		note.X,
		note.Y,
		note.SceneHeading,
		note.Description,
		string(note.EmotionalCharge),
		note.EmotionalDescription,
		note.Conflict,
		note.Color,
		note.BeatItem,
		note.ID,
		ownerID,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateNotePosition moves an owned sticky note without touching its content.
// Returns ErrNotFound when the note is missing or not owned.
func (s *Store) UpdateNotePosition(ctx context.Context, ownerID, noteID string, x, y float64) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE sticky_notes SET x = ?, y = ?, updated_at = ?
		WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE owner_id = ?)`,
		x, y, formatTime(time.Now()), noteID, ownerID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateNoteColor recolors an owned sticky note.
// Returns ErrNotFound when the note is missing or not owned.
func (s *Store) UpdateNoteColor(ctx context.Context, ownerID, noteID, color string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE sticky_notes SET color = ?, updated_at = ?
		WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE owner_id = ?)`,
		color, formatTime(time.Now()), noteID, ownerID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteNote removes an owned sticky note.
// Returns ErrNotFound when nothing was deleted.
func (s *Store) DeleteNote(ctx context.Context, ownerID, noteID string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM sticky_notes
		WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE owner_id = ?)`,
		noteID, ownerID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
