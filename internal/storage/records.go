package storage

import (
	"context"
	"fmt"

	"github.com/meltforce/repshare/internal/models"
)

const recordColumns = `id, exercise_id, record_date, record_time, set_number, value_right, value_left, comment`

// TrainingRecordExists reports whether a record with the given duplicate
// key (exercise, date, time, set number) is stored.
func (db *DB) TrainingRecordExists(ctx context.Context, exerciseID int64, date, timeOfDay string, setNumber int) (bool, error) {
	var count int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM training_records
		 WHERE exercise_id = $1 AND record_date = $2 AND record_time = $3 AND set_number = $4`,
		exerciseID, date, timeOfDay, setNumber,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking record existence: %w", err)
	}
	return count > 0, nil
}

// InsertTrainingRecord creates a training record and returns its id.
func (db *DB) InsertTrainingRecord(ctx context.Context, r models.TrainingRecordRow) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO training_records (exercise_id, record_date, record_time, set_number, value_right, value_left, comment)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 RETURNING id`,
		r.ExerciseID, r.Date, r.Time, r.SetNumber, r.ValueRight, r.ValueLeft, r.Comment,
	).Scan(&id)
	if err != nil {
		return 0, wrapInsertErr("inserting training record", err)
	}
	return id, nil
}

// DeleteTrainingRecord removes a single record.
func (db *DB) DeleteTrainingRecord(ctx context.Context, id int64) error {
	_, err := db.Pool.Exec(ctx,
		`DELETE FROM training_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting training record %d: %w", id, err)
	}
	return nil
}

// ListTrainingRecords returns every stored record in session order.
func (db *DB) ListTrainingRecords(ctx context.Context) ([]models.TrainingRecordRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+recordColumns+` FROM training_records
		 ORDER BY record_date, record_time, exercise_id, set_number`)
	if err != nil {
		return nil, fmt.Errorf("listing training records: %w", err)
	}
	defer rows.Close()

	return scanTrainingRecords(rows)
}

// ListTrainingRecordsByExercise returns one exercise's records in session order.
func (db *DB) ListTrainingRecordsByExercise(ctx context.Context, exerciseID int64) ([]models.TrainingRecordRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+recordColumns+` FROM training_records
		 WHERE exercise_id = $1
		 ORDER BY record_date, record_time, set_number`,
		exerciseID)
	if err != nil {
		return nil, fmt.Errorf("listing records for exercise %d: %w", exerciseID, err)
	}
	defer rows.Close()

	return scanTrainingRecords(rows)
}

func scanTrainingRecords(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]models.TrainingRecordRow, error) {
	var result []models.TrainingRecordRow
	for rows.Next() {
		var r models.TrainingRecordRow
		if err := rows.Scan(&r.ID, &r.ExerciseID, &r.Date, &r.Time,
			&r.SetNumber, &r.ValueRight, &r.ValueLeft, &r.Comment); err != nil {
			return nil, fmt.Errorf("scanning training record: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
