package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/meltforce/repshare/internal/models"
)

// GetIntervalProgramByName retrieves an interval program by its unique
// name, or nil when absent.
func (db *DB) GetIntervalProgramByName(ctx context.Context, name string) (*models.IntervalProgramRow, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, name, work_seconds, rest_seconds, rounds, round_rest_seconds
		 FROM interval_programs WHERE name = $1`, name)

	var ip models.IntervalProgramRow
	err := row.Scan(&ip.ID, &ip.Name, &ip.WorkSeconds, &ip.RestSeconds, &ip.Rounds, &ip.RoundRestSeconds)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying interval program %q: %w", name, err)
	}
	return &ip, nil
}

// InsertIntervalProgram creates an interval program and returns its id.
func (db *DB) InsertIntervalProgram(ctx context.Context, ip models.IntervalProgramRow) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO interval_programs (name, work_seconds, rest_seconds, rounds, round_rest_seconds)
		 VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		ip.Name, ip.WorkSeconds, ip.RestSeconds, ip.Rounds, ip.RoundRestSeconds,
	).Scan(&id)
	if err != nil {
		return 0, wrapInsertErr("inserting interval program", err)
	}
	return id, nil
}

// InsertIntervalProgramExercise creates one exercise slot of an interval program.
func (db *DB) InsertIntervalProgramExercise(ctx context.Context, e models.IntervalProgramExerciseRow) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO interval_program_exercises (interval_program_id, exercise_id, sort_order)
		 VALUES ($1,$2,$3) RETURNING id`,
		e.IntervalProgramID, e.ExerciseID, e.SortOrder,
	).Scan(&id)
	if err != nil {
		return 0, wrapInsertErr("inserting interval program exercise", err)
	}
	return id, nil
}

// DeleteIntervalProgram removes an interval program with its exercise slots.
func (db *DB) DeleteIntervalProgram(ctx context.Context, id int64) error {
	_, err := db.Pool.Exec(ctx,
		`DELETE FROM interval_programs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting interval program %d: %w", id, err)
	}
	return nil
}

// ListIntervalPrograms returns all interval programs ordered by name.
func (db *DB) ListIntervalPrograms(ctx context.Context) ([]models.IntervalProgramRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, work_seconds, rest_seconds, rounds, round_rest_seconds
		 FROM interval_programs ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing interval programs: %w", err)
	}
	defer rows.Close()

	var result []models.IntervalProgramRow
	for rows.Next() {
		var ip models.IntervalProgramRow
		if err := rows.Scan(&ip.ID, &ip.Name, &ip.WorkSeconds, &ip.RestSeconds, &ip.Rounds, &ip.RoundRestSeconds); err != nil {
			return nil, fmt.Errorf("scanning interval program: %w", err)
		}
		result = append(result, ip)
	}
	return result, rows.Err()
}

// ListIntervalProgramExercises returns one interval program's exercise
// slots in sort order.
func (db *DB) ListIntervalProgramExercises(ctx context.Context, intervalProgramID int64) ([]models.IntervalProgramExerciseRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, interval_program_id, exercise_id, sort_order
		 FROM interval_program_exercises WHERE interval_program_id = $1 ORDER BY sort_order, id`,
		intervalProgramID)
	if err != nil {
		return nil, fmt.Errorf("listing exercises for interval program %d: %w", intervalProgramID, err)
	}
	defer rows.Close()

	var result []models.IntervalProgramExerciseRow
	for rows.Next() {
		var e models.IntervalProgramExerciseRow
		if err := rows.Scan(&e.ID, &e.IntervalProgramID, &e.ExerciseID, &e.SortOrder); err != nil {
			return nil, fmt.Errorf("scanning interval program exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
