package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/savethecatapp/savethecat-server/internal/domain"
)

// projectColumns is the ordered list of columns selected in project queries.
// Must match the scan order in scanProject.
const projectColumns = `id, created_at, updated_at, owner_id, name`

// scanProject scans a sql.Row (or sql.Rows via its Scan method) into a domain.Project.
func scanProject(scanner interface{ Scan(dest ...any) error }) (*domain.Project, error) {
	var p domain.Project

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&p.ID,
		&createdAt,
		&updatedAt,
		&p.OwnerID,
		&p.Name,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	p.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// CreateProjectWithBeatSheet inserts a project and its beat sheet in a
// single transaction. A project row never exists without its sheet.
func (s *Store) CreateProjectWithBeatSheet(ctx context.Context, project *domain.Project, sheet *domain.BeatSheet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO projects (id, created_at, updated_at, owner_id, name)
		VALUES (?, ?, ?, ?, ?)`,
		project.ID,
		formatTime(project.CreatedAt),
		formatTime(project.UpdatedAt),
		project.OwnerID,
		project.Name,
	)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO beat_sheets (
			id, created_at, updated_at, project_id, title, date, logline, genre,
			opening_image, theme_stated, set_up, catalyst, debate, break_into_two,
			b_story, fun_and_games, midpoint, bad_guys_close_in, all_is_lost,
			dark_night_of_the_soul, break_into_three, finale, final_image
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sheet.ID,
		formatTime(sheet.CreatedAt),
		formatTime(sheet.UpdatedAt),
		sheet.ProjectID,
		sheet.Title,
		sheet.Date,
		sheet.Logline,
		sheet.Genre,
		sheet.OpeningImage,
		sheet.ThemeStated,
		sheet.SetUp,
		sheet.Catalyst,
		sheet.Debate,
		sheet.BreakIntoTwo,
		sheet.BStory,
		sheet.FunAndGames,
		sheet.Midpoint,
		sheet.BadGuysCloseIn,
		sheet.AllIsLost,
		sheet.DarkNightOfTheSoul,
		sheet.BreakIntoThree,
		sheet.Finale,
		sheet.FinalImage,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// GetProjectForOwner retrieves a project only when it belongs to the owner.
// Returns ErrNotFound for a missing project and an ownership miss alike.
func (s *Store) GetProjectForOwner(ctx context.Context, ownerID, projectID string) (*domain.Project, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ? AND owner_id = ?`,
		projectID, ownerID)

	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListProjectsByOwner returns the owner's projects ordered by name.
func (s *Store) ListProjectsByOwner(ctx context.Context, ownerID string) ([]*domain.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE owner_id = ? ORDER BY name ASC`,
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return projects, nil
}

// RenameProject updates a project's name and rewrites the beat sheet title
// in the same transaction, keeping the two in lockstep.
// Returns ErrNotFound when the project is missing or owned by someone else.
func (s *Store) RenameProject(ctx context.Context, ownerID, projectID, name string) error {
	now := formatTime(time.Now())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE projects SET name = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`,
		name, now, projectID, ownerID)
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

	_, err = tx.ExecContext(ctx, `
		UPDATE beat_sheets SET title = ?, updated_at = ?
		WHERE project_id = ?`,
		name, now, projectID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteProjectForOwner performs a hard delete of an owned project; the
// beat sheet, characters, locations and sticky notes go with it through
// the schema's cascade chain.
// Returns ErrNotFound when the project is missing or owned by someone else.
func (s *Store) DeleteProjectForOwner(ctx context.Context, ownerID, projectID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM projects WHERE id = ? AND owner_id = ?`,
		projectID, ownerID)
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
