package store

import (
	"context"
	"fmt"
	"time"

	"github.com/savethecatapp/savethecat-server/internal/domain"
)

// entityColumns is the ordered list of columns selected in character and
// location queries. Must match the scan order in scanEntity.
const entityColumns = `id, created_at, updated_at, project_id, name`

// entityTable maps an entity kind to its table name. The map doubles as a
// whitelist: table names are interpolated into SQL and must never come
// from the caller directly.
func entityTable(kind domain.EntityKind) (string, error) {
	switch kind {
	case domain.KindCharacter:
		return "characters", nil
	case domain.KindLocation:
		return "locations", nil
	default:
		return "", fmt.Errorf("unknown entity kind %q", kind)
	}
}

// scanEntity scans a sql.Row (or sql.Rows via its Scan method) into a domain.NamedEntity.
func scanEntity(scanner interface{ Scan(dest ...any) error }) (*domain.NamedEntity, error) {
	var e domain.NamedEntity

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&e.ID,
		&createdAt,
		&updatedAt,
		&e.ProjectID,
		&e.Name,
	)
	if err != nil {
		return nil, err
	}

	e.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	e.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

// CreateEntity inserts a character or location, but only when the target
// project belongs to the owner. The ownership check and the insert are a
// single statement, so a miss cannot race a concurrent delete.
// Returns ErrNotFound when the project is missing or owned by someone else.
func (s *Store) CreateEntity(ctx context.Context, kind domain.EntityKind, ownerID string, entity *domain.NamedEntity) error {
	table, err := entityTable(kind)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO `+table+` (id, created_at, updated_at, project_id, name)
		SELECT ?, ?, ?, ?, ?
		WHERE EXISTS (SELECT 1 FROM projects WHERE id = ? AND owner_id = ?)`,
		entity.ID,
		formatTime(entity.CreatedAt),
		formatTime(entity.UpdatedAt),
		entity.ProjectID,
		entity.Name,
		entity.ProjectID,
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

// ListEntities returns the characters or locations of an owned project,
// ordered by name. An ownership miss yields an empty list, same as an
// empty project.
func (s *Store) ListEntities(ctx context.Context, kind domain.EntityKind, ownerID, projectID string) ([]*domain.NamedEntity, error) {
	table, err := entityTable(kind)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+prefixColumns("e", entityColumns)+`
		FROM `+table+` e
		JOIN projects p ON p.id = e.project_id
		WHERE e.project_id = ? AND p.owner_id = ?
		ORDER BY e.name ASC`,
		projectID, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []*domain.NamedEntity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entities, nil
}

// RenameEntity updates the name of an owned character or location.
// Returns ErrNotFound when the entity is missing or not reachable through
// a project the owner holds.
func (s *Store) RenameEntity(ctx context.Context, kind domain.EntityKind, ownerID, entityID, name string) error {
	table, err := entityTable(kind)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE `+table+` SET name = ?, updated_at = ?
		WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE owner_id = ?)`,
		name, formatTime(time.Now()), entityID, ownerID)
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

// DeleteEntity removes an owned character or location.
// Returns ErrNotFound when nothing was deleted.
func (s *Store) DeleteEntity(ctx context.Context, kind domain.EntityKind, ownerID, entityID string) error {
	table, err := entityTable(kind)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM `+table+`
		WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE owner_id = ?)`,
		entityID, ownerID)
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
