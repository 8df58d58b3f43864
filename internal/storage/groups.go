package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/meltforce/repshare/internal/models"
)

// GetGroupByName retrieves a group by its unique name, or nil when absent.
func (db *DB) GetGroupByName(ctx context.Context, name string) (*models.GroupRow, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, name FROM exercise_groups WHERE name = $1`, name)

	var g models.GroupRow
	if err := row.Scan(&g.ID, &g.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying group %q: %w", name, err)
	}
	return &g, nil
}

// GetGroupByID retrieves a group by id, or nil when absent.
func (db *DB) GetGroupByID(ctx context.Context, id int64) (*models.GroupRow, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, name FROM exercise_groups WHERE id = $1`, id)

	var g models.GroupRow
	if err := row.Scan(&g.ID, &g.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying group %d: %w", id, err)
	}
	return &g, nil
}

// InsertGroup creates a group and returns its id.
func (db *DB) InsertGroup(ctx context.Context, name string) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO exercise_groups (name) VALUES ($1) RETURNING id`, name,
	).Scan(&id)
	if err != nil {
		return 0, wrapInsertErr("inserting group", err)
	}
	return id, nil
}

// UpdateGroup renames a group.
func (db *DB) UpdateGroup(ctx context.Context, id int64, name string) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE exercise_groups SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		return fmt.Errorf("updating group %d: %w", id, err)
	}
	return nil
}

// DeleteGroup removes a group. Exercises referencing it keep no group
// (the foreign key is ON DELETE SET NULL).
func (db *DB) DeleteGroup(ctx context.Context, id int64) error {
	_, err := db.Pool.Exec(ctx,
		`DELETE FROM exercise_groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting group %d: %w", id, err)
	}
	return nil
}

// ListGroups returns all groups ordered by name.
func (db *DB) ListGroups(ctx context.Context) ([]models.GroupRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name FROM exercise_groups ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	defer rows.Close()

	var result []models.GroupRow
	for rows.Next() {
		var g models.GroupRow
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scanning group: %w", err)
		}
		result = append(result, g)
	}
	return result, rows.Err()
}
