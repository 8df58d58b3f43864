package csvio

import (
	"context"
	"log/slog"
	"strings"
	"testing"
)

// TestExportRoundTrip verifies exported CSV re-imports into an empty store
// without errors and reproduces the same rows.
func TestExportRoundTrip(t *testing.T) {
	store := &memStore{}
	engine := NewEngine(store, slog.Default())
	ctx := context.Background()

	if _, err := engine.ImportGroups(ctx, "name\nPush\n"); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.ImportExercises(ctx,
		exerciseHeader+"Push-up,Dynamic,Push,1,Bilateral,3,30,true\nRow,Dynamic,,0,Unilateral,,,false\n"); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.ImportRecords(ctx,
		recordHeader+"Push-up,Dynamic,2026-08-30,07:00,1,20,,felt good\nRow,Dynamic,2026-08-30,08:00,1,12,10,\n"); err != nil {
		t.Fatal(err)
	}

	groupsCSV, err := engine.ExportGroups(ctx)
	if err != nil {
		t.Fatal(err)
	}
	exercisesCSV, err := engine.ExportExercises(ctx)
	if err != nil {
		t.Fatal(err)
	}
	recordsCSV, err := engine.ExportRecords(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(exercisesCSV, "Push-up,Dynamic,Push,1,Bilateral,3,30,true") {
		t.Errorf("exercises export:\n%s", exercisesCSV)
	}
	if !strings.Contains(exercisesCSV, "Row,Dynamic,,0,Unilateral,,,false") {
		t.Errorf("absent optionals should render empty:\n%s", exercisesCSV)
	}
	if !strings.Contains(recordsCSV, "Push-up,Dynamic,2026-08-30,07:00,1,20,,felt good") {
		t.Errorf("records export:\n%s", recordsCSV)
	}
	if !strings.Contains(recordsCSV, "Row,Dynamic,2026-08-30,08:00,1,12,10,") {
		t.Errorf("unilateral record export:\n%s", recordsCSV)
	}

	// Re-import into a fresh store: everything inserts, nothing errors.
	fresh := &memStore{}
	freshEngine := NewEngine(fresh, slog.Default())
	if report, err := freshEngine.ImportGroups(ctx, groupsCSV); err != nil || report.ErrorCount != 0 {
		t.Fatalf("groups re-import: %v %+v", err, report)
	}
	if report, err := freshEngine.ImportExercises(ctx, exercisesCSV); err != nil || report.ErrorCount != 0 || report.SuccessCount != 2 {
		t.Fatalf("exercises re-import: %v %+v", err, report)
	}
	if report, err := freshEngine.ImportRecords(ctx, recordsCSV); err != nil || report.ErrorCount != 0 || report.SuccessCount != 2 {
		t.Fatalf("records re-import: %v %+v", err, report)
	}
}

// TestExportEmptyStore verifies headers are still written for empty data.
func TestExportEmptyStore(t *testing.T) {
	engine := NewEngine(&memStore{}, slog.Default())
	ctx := context.Background()

	got, err := engine.ExportGroups(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got != "name\n" {
		t.Errorf("groups export = %q", got)
	}

	got, err = engine.ExportRecords(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got != recordHeader {
		t.Errorf("records export = %q", got)
	}
}
