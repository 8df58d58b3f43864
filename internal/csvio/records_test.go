package csvio

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/meltforce/repshare/internal/models"
)

const recordHeader = "exerciseName,exerciseType,date,time,setNumber,valueRight,valueLeft,comment\n"

func storeWithExercise(t *testing.T) (*memStore, int64) {
	t.Helper()
	store := &memStore{}
	id, err := store.InsertExercise(context.Background(), models.ExerciseRow{
		Name: "Push-up", Type: models.ExerciseTypeDynamic, Laterality: models.LateralityBilateral,
	})
	if err != nil {
		t.Fatal(err)
	}
	return store, id
}

// TestImportRecords verifies well-formed rows insert against an existing
// exercise, with the optional left value and comment handled.
func TestImportRecords(t *testing.T) {
	store, id := storeWithExercise(t)
	engine := NewEngine(store, slog.Default())

	csv := recordHeader +
		"Push-up,Dynamic,2026-08-30,07:00,1,20,,warmed up\n" +
		"Push-up,Dynamic,2026-08-30,07:00,2,18,15,\n"
	report, err := engine.ImportRecords(context.Background(), csv)
	if err != nil {
		t.Fatal(err)
	}
	if report.SuccessCount != 2 || report.ErrorCount != 0 {
		t.Fatalf("report = %+v", report)
	}

	recs := store.records
	if len(recs) != 2 {
		t.Fatalf("store has %d records, want 2", len(recs))
	}
	if recs[0].ExerciseID != id || recs[0].ValueRight != 20 || recs[0].ValueLeft != nil {
		t.Errorf("record 0 = %+v", recs[0])
	}
	if recs[0].Comment != "warmed up" {
		t.Errorf("comment = %q", recs[0].Comment)
	}
	if recs[1].ValueLeft == nil || *recs[1].ValueLeft != 15 {
		t.Errorf("record 1 left = %v, want 15", recs[1].ValueLeft)
	}
}

// TestImportRecordsTrailingCommentOptional verifies a 7-column row (no
// comment) is accepted.
func TestImportRecordsTrailingCommentOptional(t *testing.T) {
	store, _ := storeWithExercise(t)
	engine := NewEngine(store, slog.Default())

	csv := recordHeader + "Push-up,Dynamic,2026-08-30,07:00,1,20,\n"
	report, err := engine.ImportRecords(context.Background(), csv)
	if err != nil {
		t.Fatal(err)
	}
	if report.SuccessCount != 1 {
		t.Fatalf("report = %+v", report)
	}
}

// TestImportRecordsErrors verifies the per-row error cases. Unlike
// non-critical exercise columns, numeric record values parse strictly.
func TestImportRecordsErrors(t *testing.T) {
	store, _ := storeWithExercise(t)
	engine := NewEngine(store, slog.Default())

	tests := []struct {
		name string
		row  string
		want string
	}{
		{"short row", "Push-up,Dynamic,2026-08-30,07:00,1", "Line 2: invalid format (expected 8 columns, got 5)"},
		{"missing date", "Push-up,Dynamic,,07:00,1,20,,", "Line 2: missing required field"},
		{"invalid type", "Push-up,Cardio,2026-08-30,07:00,1,20,,", `Line 2: invalid type "Cardio"`},
		{"unknown exercise", "Squat,Dynamic,2026-08-30,07:00,1,20,,", `Line 2: Exercise not found: "Squat" (Dynamic)`},
		{"bad set number", "Push-up,Dynamic,2026-08-30,07:00,x,20,,", `Line 2: invalid setNumber "x"`},
		{"bad right value", "Push-up,Dynamic,2026-08-30,07:00,1,x,,", `Line 2: invalid valueRight "x"`},
		{"bad left value", "Push-up,Dynamic,2026-08-30,07:00,1,20,x,", `Line 2: invalid valueLeft "x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := engine.ImportRecords(context.Background(), recordHeader+tt.row+"\n")
			if err != nil {
				t.Fatal(err)
			}
			if report.ErrorCount != 1 {
				t.Fatalf("report = %+v, want 1 error", report)
			}
			if !strings.Contains(report.Errors[0], tt.want) {
				t.Errorf("error = %q, want %q", report.Errors[0], tt.want)
			}
		})
	}
}

// TestImportRecordsDuplicates verifies duplicates against the store and
// within the same batch are skips.
func TestImportRecordsDuplicates(t *testing.T) {
	store, id := storeWithExercise(t)
	if _, err := store.InsertTrainingRecord(context.Background(), models.TrainingRecordRow{
		ExerciseID: id, Date: "2026-08-29", Time: "07:00", SetNumber: 1, ValueRight: 10,
	}); err != nil {
		t.Fatal(err)
	}
	engine := NewEngine(store, slog.Default())

	csv := recordHeader +
		"Push-up,Dynamic,2026-08-29,07:00,1,10,,\n" + // already stored
		"Push-up,Dynamic,2026-08-30,07:00,1,20,,\n" + // new
		"Push-up,Dynamic,2026-08-30,07:00,1,20,,\n" // duplicate within batch
	report, err := engine.ImportRecords(context.Background(), csv)
	if err != nil {
		t.Fatal(err)
	}
	if report.SuccessCount != 1 || report.SkippedCount != 2 || report.ErrorCount != 0 {
		t.Fatalf("report = %+v, want 1 success 2 skips", report)
	}
	if !strings.Contains(report.Skipped[0], "already exists") {
		t.Errorf("skip = %q", report.Skipped[0])
	}
	if len(store.records) != 2 {
		t.Errorf("store has %d records, want 2", len(store.records))
	}
}
