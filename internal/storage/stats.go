package storage

import (
	"context"
	"fmt"
)

// DataStats holds aggregate statistics about all stored data.
type DataStats struct {
	TotalGroups           int64           `json:"total_groups"`
	TotalExercises        int64           `json:"total_exercises"`
	TotalRecords          int64           `json:"total_records"`
	TotalPrograms         int64           `json:"total_programs"`
	TotalIntervalPrograms int64           `json:"total_interval_programs"`
	EarliestRecordDate    *string         `json:"earliest_record_date"`
	LatestRecordDate      *string         `json:"latest_record_date"`
	RecordsByExercise     []ExerciseCount `json:"records_by_exercise"`
}

// ExerciseCount holds the record count for a single exercise.
type ExerciseCount struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// GetDataStats returns aggregate statistics for the stored data.
func (db *DB) GetDataStats(ctx context.Context) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT
		 (SELECT COUNT(*) FROM exercise_groups),
		 (SELECT COUNT(*) FROM exercises),
		 (SELECT COUNT(*) FROM training_records),
		 (SELECT COUNT(*) FROM programs),
		 (SELECT COUNT(*) FROM interval_programs)`,
	).Scan(&stats.TotalGroups, &stats.TotalExercises, &stats.TotalRecords,
		&stats.TotalPrograms, &stats.TotalIntervalPrograms)
	if err != nil {
		return nil, fmt.Errorf("counting entities: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT MIN(record_date), MAX(record_date) FROM training_records`,
	).Scan(&stats.EarliestRecordDate, &stats.LatestRecordDate)
	if err != nil {
		return nil, fmt.Errorf("querying record date range: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT e.name, e.type, COUNT(r.id)
		 FROM exercises e
		 JOIN training_records r ON r.exercise_id = e.id
		 GROUP BY e.name, e.type
		 ORDER BY COUNT(r.id) DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying records by exercise: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c ExerciseCount
		if err := rows.Scan(&c.Name, &c.Type, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning exercise count: %w", err)
		}
		stats.RecordsByExercise = append(stats.RecordsByExercise, c)
	}
	return stats, rows.Err()
}
