package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/savethecatapp/savethecat-server/internal/domain"
)

// beatSheetColumns is the ordered list of columns selected in beat sheet
// queries. Must match the scan order in scanBeatSheet.
const beatSheetColumns = `id, created_at, updated_at, project_id, title, date, logline, genre,
	opening_image, theme_stated, set_up, catalyst, debate, break_into_two,
	b_story, fun_and_games, midpoint, bad_guys_close_in, all_is_lost,
	dark_night_of_the_soul, break_into_three, finale, final_image`

// scanBeatSheet scans a sql.Row (or sql.Rows via its Scan method) into a domain.BeatSheet.
func scanBeatSheet(scanner interface{ Scan(dest ...any) error }) (*domain.BeatSheet, error) {
	var b domain.BeatSheet

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
		&b.ProjectID,
		&b.Title,
		&b.Date,
		&b.Logline,
		&b.Genre,
		&b.OpeningImage,
		&b.ThemeStated,
		&b.SetUp,
		&b.Catalyst,
		&b.Debate,
		&b.BreakIntoTwo,
		&b.BStory,
		&b.FunAndGames,
		&b.Midpoint,
		&b.BadGuysCloseIn,
		&b.AllIsLost,
		&b.DarkNightOfTheSoul,
		&b.BreakIntoThree,
		&b.Finale,
		&b.FinalImage,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// GetBeatSheetForOwner retrieves the beat sheet of an owned project.
// Returns ErrNotFound for a missing project and an ownership miss alike.
func (s *Store) GetBeatSheetForOwner(ctx context.Context, ownerID, projectID string) (*domain.BeatSheet, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+prefixColumns("b", beatSheetColumns)+`
		FROM beat_sheets b
		JOIN projects p ON p.id = b.project_id
		WHERE b.project_id = ? AND p.owner_id = ?`,
		projectID, ownerID)

	b, err := scanBeatSheet(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBeatSheetForOwner replaces the mutable beat sheet fields (logline,
// genre and the fifteen beats). Title and date stay server-managed.
// Returns ErrNotFound when the project is missing or owned by someone else.
func (s *Store) UpdateBeatSheetForOwner(ctx context.Context, ownerID string, sheet *domain.BeatSheet) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE beat_sheets SET
			updated_at = ?,
			logline = ?,
			genre = ?,
			opening_image = ?,
			theme_stated = ?,
			set_up = ?,
			catalyst = ?,
			debate = ?,
			break_into_two = ?,
			b_story = ?,
			fun_and_games = ?,
			midpoint = ?,
			bad_guys_close_in = ?,
			all_is_lost = ?,
			dark_night_of_the_soul = ?,
			break_into_three = ?,
			finale = ?,
			final_image = ?
		WHERE project_id IN (SELECT id FROM projects WHERE id = ? AND owner_id = ?)`,
		formatTime(time.Now()),
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
		sheet.ProjectID,
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
