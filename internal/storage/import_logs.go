package storage

import (
	"context"
	"fmt"
	"time"
)

// ImportLog represents a single import operation's outcome.
type ImportLog struct {
	ID           int64     `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Source       string    `json:"source"` // "share", "csv:groups", "csv:exercises", "csv:records"
	Status       string    `json:"status"` // "success" or "error"
	Added        int       `json:"added"`
	Reused       int       `json:"reused"`
	Skipped      int       `json:"skipped"`
	Errors       int       `json:"errors"`
	DurationMs   *int      `json:"duration_ms,omitempty"`
	ErrorMessage *string   `json:"error_message,omitempty"`
}

// InsertImportLog creates a new import log entry and returns its id.
func (db *DB) InsertImportLog(ctx context.Context, log ImportLog) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO import_logs (source, status, added, reused, skipped, errors, duration_ms, error_message)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING id`,
		log.Source, log.Status, log.Added, log.Reused, log.Skipped, log.Errors,
		log.DurationMs, log.ErrorMessage,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting import log: %w", err)
	}
	return id, nil
}

// ListImportLogs returns the most recent import log entries, newest first.
func (db *DB) ListImportLogs(ctx context.Context, limit int) ([]ImportLog, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, created_at, source, status, added, reused, skipped, errors, duration_ms, error_message
		 FROM import_logs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing import logs: %w", err)
	}
	defer rows.Close()

	var result []ImportLog
	for rows.Next() {
		var l ImportLog
		if err := rows.Scan(&l.ID, &l.CreatedAt, &l.Source, &l.Status,
			&l.Added, &l.Reused, &l.Skipped, &l.Errors, &l.DurationMs, &l.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scanning import log: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}
