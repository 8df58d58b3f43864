package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/meltforce/repshare/internal/models"
)

// GetProgramByName retrieves a program by its unique name, or nil when absent.
func (db *DB) GetProgramByName(ctx context.Context, name string) (*models.ProgramRow, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, name FROM programs WHERE name = $1`, name)

	var p models.ProgramRow
	if err := row.Scan(&p.ID, &p.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying program %q: %w", name, err)
	}
	return &p, nil
}

// InsertProgram creates a program and returns its id.
func (db *DB) InsertProgram(ctx context.Context, p models.ProgramRow) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO programs (name) VALUES ($1) RETURNING id`, p.Name,
	).Scan(&id)
	if err != nil {
		return 0, wrapInsertErr("inserting program", err)
	}
	return id, nil
}

// InsertProgramLoop creates one repeat block of a program.
func (db *DB) InsertProgramLoop(ctx context.Context, l models.ProgramLoopRow) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO program_loops (program_id, loop_number, sort_order, rounds, rest_between_rounds)
		 VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		l.ProgramID, l.LoopNumber, l.SortOrder, l.Rounds, l.RestBetweenRounds,
	).Scan(&id)
	if err != nil {
		return 0, wrapInsertErr("inserting program loop", err)
	}
	return id, nil
}

// InsertProgramExercise creates one exercise slot of a program.
func (db *DB) InsertProgramExercise(ctx context.Context, e models.ProgramExerciseRow) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO program_exercises (program_id, exercise_id, sort_order, sets, target_value, interval_seconds, loop_id)
		 VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		e.ProgramID, e.ExerciseID, e.SortOrder, e.Sets, e.TargetValue, e.IntervalSeconds, e.LoopID,
	).Scan(&id)
	if err != nil {
		return 0, wrapInsertErr("inserting program exercise", err)
	}
	return id, nil
}

// DeleteProgram removes a program with its loops and exercise slots.
func (db *DB) DeleteProgram(ctx context.Context, id int64) error {
	_, err := db.Pool.Exec(ctx,
		`DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting program %d: %w", id, err)
	}
	return nil
}

// ListPrograms returns all programs ordered by name.
func (db *DB) ListPrograms(ctx context.Context) ([]models.ProgramRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name FROM programs ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing programs: %w", err)
	}
	defer rows.Close()

	var result []models.ProgramRow
	for rows.Next() {
		var p models.ProgramRow
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scanning program: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// ListProgramLoops returns one program's loops in sort order.
func (db *DB) ListProgramLoops(ctx context.Context, programID int64) ([]models.ProgramLoopRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, program_id, loop_number, sort_order, rounds, rest_between_rounds
		 FROM program_loops WHERE program_id = $1 ORDER BY sort_order, loop_number`,
		programID)
	if err != nil {
		return nil, fmt.Errorf("listing loops for program %d: %w", programID, err)
	}
	defer rows.Close()

	var result []models.ProgramLoopRow
	for rows.Next() {
		var l models.ProgramLoopRow
		if err := rows.Scan(&l.ID, &l.ProgramID, &l.LoopNumber, &l.SortOrder, &l.Rounds, &l.RestBetweenRounds); err != nil {
			return nil, fmt.Errorf("scanning program loop: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

// ListProgramExercises returns one program's exercise slots in sort order.
func (db *DB) ListProgramExercises(ctx context.Context, programID int64) ([]models.ProgramExerciseRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, program_id, exercise_id, sort_order, sets, target_value, interval_seconds, loop_id
		 FROM program_exercises WHERE program_id = $1 ORDER BY sort_order, id`,
		programID)
	if err != nil {
		return nil, fmt.Errorf("listing exercises for program %d: %w", programID, err)
	}
	defer rows.Close()

	var result []models.ProgramExerciseRow
	for rows.Next() {
		var e models.ProgramExerciseRow
		if err := rows.Scan(&e.ID, &e.ProgramID, &e.ExerciseID, &e.SortOrder, &e.Sets, &e.TargetValue, &e.IntervalSeconds, &e.LoopID); err != nil {
			return nil, fmt.Errorf("scanning program exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
