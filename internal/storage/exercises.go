package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/meltforce/repshare/internal/models"
)

const exerciseColumns = `id, name, type, group_id, sort_order, laterality, is_favorite,
	 target_sets, target_value, rest_interval, rep_duration,
	 distance_tracking_enabled, weight_tracking_enabled, assistance_tracking_enabled, description`

// GetExerciseByKey retrieves an exercise by its unique (name, type)
// identity, or nil when absent.
func (db *DB) GetExerciseByKey(ctx context.Context, key models.ExerciseKey) (*models.ExerciseRow, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE name = $1 AND type = $2`,
		key.Name, string(key.Type))

	ex, err := scanExercise(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying exercise %s: %w", key, err)
	}
	return ex, nil
}

// GetExerciseByID retrieves an exercise by id, or nil when absent.
func (db *DB) GetExerciseByID(ctx context.Context, id int64) (*models.ExerciseRow, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE id = $1`, id)

	ex, err := scanExercise(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying exercise %d: %w", id, err)
	}
	return ex, nil
}

// InsertExercise creates an exercise and returns its id.
func (db *DB) InsertExercise(ctx context.Context, e models.ExerciseRow) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO exercises (name, type, group_id, sort_order, laterality, is_favorite,
		 target_sets, target_value, rest_interval, rep_duration,
		 distance_tracking_enabled, weight_tracking_enabled, assistance_tracking_enabled, description)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		 RETURNING id`,
		e.Name, string(e.Type), e.GroupID, e.SortOrder, string(e.Laterality), e.IsFavorite,
		e.TargetSets, e.TargetValue, e.RestInterval, e.RepDuration,
		e.DistanceTracking, e.WeightTracking, e.AssistanceTracking, e.Description,
	).Scan(&id)
	if err != nil {
		return 0, wrapInsertErr("inserting exercise", err)
	}
	return id, nil
}

// UpdateExercise rewrites all mutable attributes of an exercise.
func (db *DB) UpdateExercise(ctx context.Context, e models.ExerciseRow) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE exercises SET name = $2, type = $3, group_id = $4, sort_order = $5,
		 laterality = $6, is_favorite = $7, target_sets = $8, target_value = $9,
		 rest_interval = $10, rep_duration = $11, distance_tracking_enabled = $12,
		 weight_tracking_enabled = $13, assistance_tracking_enabled = $14, description = $15
		 WHERE id = $1`,
		e.ID, e.Name, string(e.Type), e.GroupID, e.SortOrder,
		string(e.Laterality), e.IsFavorite, e.TargetSets, e.TargetValue,
		e.RestInterval, e.RepDuration, e.DistanceTracking,
		e.WeightTracking, e.AssistanceTracking, e.Description)
	if err != nil {
		return fmt.Errorf("updating exercise %d: %w", e.ID, err)
	}
	return nil
}

// DeleteExercise removes an exercise and, through cascading foreign keys,
// its training records and program memberships.
func (db *DB) DeleteExercise(ctx context.Context, id int64) error {
	_, err := db.Pool.Exec(ctx,
		`DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting exercise %d: %w", id, err)
	}
	return nil
}

// ListExercises returns all exercises ordered by sort order, then name.
func (db *DB) ListExercises(ctx context.Context) ([]models.ExerciseRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+exerciseColumns+` FROM exercises ORDER BY sort_order, name, type`)
	if err != nil {
		return nil, fmt.Errorf("listing exercises: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseRow
	for rows.Next() {
		ex, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, *ex)
	}
	return result, rows.Err()
}

func scanExercise(row pgx.Row) (*models.ExerciseRow, error) {
	var e models.ExerciseRow
	var typ, laterality string
	err := row.Scan(&e.ID, &e.Name, &typ, &e.GroupID, &e.SortOrder, &laterality, &e.IsFavorite,
		&e.TargetSets, &e.TargetValue, &e.RestInterval, &e.RepDuration,
		&e.DistanceTracking, &e.WeightTracking, &e.AssistanceTracking, &e.Description)
	if err != nil {
		return nil, err
	}
	e.Type = models.ExerciseType(typ)
	e.Laterality = models.Laterality(laterality)
	return &e, nil
}
