// Package csvio implements the merge-mode CSV import and export pipelines
// for exercise groups, exercises, and training records.
//
// All three import pipelines share the same shape: blank lines and
// #-comments are ignored anywhere in the file, the first remaining line is
// a header and is discarded, and every following line is one candidate
// entity. A malformed line never aborts the batch; it is recorded against
// its line number and processing continues. Duplicates against the store
// (or earlier in the same batch) are skips, not errors, so callers can
// tell bad data apart from data that was intentionally not re-imported.
package csvio

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/meltforce/repshare/internal/models"
	"github.com/meltforce/repshare/internal/storage"
)

// Store is the storage surface the CSV pipelines need. *storage.DB
// satisfies it. Lookups return (nil, nil) when no row matches.
type Store interface {
	GetGroupByName(ctx context.Context, name string) (*models.GroupRow, error)
	InsertGroup(ctx context.Context, name string) (int64, error)
	ListGroups(ctx context.Context) ([]models.GroupRow, error)

	GetExerciseByKey(ctx context.Context, key models.ExerciseKey) (*models.ExerciseRow, error)
	InsertExercise(ctx context.Context, row models.ExerciseRow) (int64, error)
	ListExercises(ctx context.Context) ([]models.ExerciseRow, error)

	TrainingRecordExists(ctx context.Context, exerciseID int64, date, timeOfDay string, setNumber int) (bool, error)
	InsertTrainingRecord(ctx context.Context, row models.TrainingRecordRow) (int64, error)
	ListTrainingRecords(ctx context.Context) ([]models.TrainingRecordRow, error)
}

// Compile-time check: *storage.DB satisfies Store.
var _ Store = (*storage.DB)(nil)

// Report summarizes one import pipeline run.
type Report struct {
	SuccessCount int      `json:"success_count"`
	SkippedCount int      `json:"skipped_count"`
	ErrorCount   int      `json:"error_count"`
	Skipped      []string `json:"skipped_items,omitempty"`
	Errors       []string `json:"errors,omitempty"`
}

func (r *Report) skip(msg string) {
	r.SkippedCount++
	r.Skipped = append(r.Skipped, msg)
}

func (r *Report) fail(msg string) {
	r.ErrorCount++
	r.Errors = append(r.Errors, msg)
}

// Engine runs the CSV pipelines against a store.
type Engine struct {
	store Store
	log   *slog.Logger
}

// NewEngine creates a CSV import/export engine.
func NewEngine(store Store, log *slog.Logger) *Engine {
	return &Engine{store: store, log: log}
}

// dataLines strips blank lines and #-comments, then drops the header line.
// The returned slice holds only candidate entity lines; index i corresponds
// to reported line number i+2 (the header occupies line 1 of the cleaned
// input, so the first data line reports as line 2).
func dataLines(text string) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil
	}
	return lines[1:] // drop header
}

// lineNumber maps a data-line index to its reported line number.
func lineNumber(i int) int {
	return i + 2
}

// splitFields splits a comma-delimited line and trims each field. The CSV
// dialect has no quoting; fields are assumed comma-free.
func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// parseIntOrDefault is the permissive numeric coercion used for
// non-critical columns: any parse failure yields the default.
func parseIntOrDefault(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// parseOptionalInt returns nil for an empty or unparseable value.
func parseOptionalInt(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// parseBoolOrFalse accepts the literal token "true" (any case) and treats
// everything else as false.
func parseBoolOrFalse(s string) bool {
	return strings.EqualFold(s, "true")
}
