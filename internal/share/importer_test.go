package share

import (
	"context"
	"log/slog"
	"testing"

	"github.com/meltforce/repshare/internal/models"
)

// TestImportFresh verifies a bundle imports cleanly into an empty store,
// with group references and program loop ids resolved to stored rows.
func TestImportFresh(t *testing.T) {
	store := &memStore{}
	env := validEnvelope()

	report, err := NewImporter(store, slog.Default()).Import(context.Background(), &env.Data)
	if err != nil {
		t.Fatal(err)
	}

	if report.GroupsAdded != 1 || report.GroupsReused != 0 {
		t.Errorf("groups added=%d reused=%d, want 1/0", report.GroupsAdded, report.GroupsReused)
	}
	if report.ExercisesAdded != 2 || report.ExercisesSkipped != 0 {
		t.Errorf("exercises added=%d skipped=%d, want 2/0", report.ExercisesAdded, report.ExercisesSkipped)
	}
	if report.ProgramsAdded != 1 || report.IntervalProgramsAdded != 1 {
		t.Errorf("programs=%d intervals=%d, want 1/1", report.ProgramsAdded, report.IntervalProgramsAdded)
	}
	if len(report.Errors) != 0 {
		t.Errorf("unexpected errors: %v", report.Errors)
	}

	// The exercise's group reference resolved to the stored group id.
	ex, _ := store.GetExerciseByKey(context.Background(), models.ExerciseKey{Name: "Push-up", Type: models.ExerciseTypeDynamic})
	if ex == nil || ex.GroupID == nil {
		t.Fatal("imported exercise lost its group")
	}
	group, _ := store.GetGroupByID(context.Background(), *ex.GroupID)
	if group == nil || group.Name != "Push" {
		t.Errorf("group reference resolved to %+v, want Push", group)
	}

	// The program exercise's loop reference points at a stored loop row.
	program, _ := store.GetProgramByName(context.Background(), "Morning Routine")
	loops, _ := store.ListProgramLoops(context.Background(), program.ID)
	if len(loops) != 1 || loops[0].LoopNumber != 1 {
		t.Fatalf("loops = %+v, want one with loop_number 1", loops)
	}
	slots, _ := store.ListProgramExercises(context.Background(), program.ID)
	if len(slots) != 1 || slots[0].LoopID == nil || *slots[0].LoopID != loops[0].ID {
		t.Errorf("slot loop_id = %+v, want %d", slots[0].LoopID, loops[0].ID)
	}
}

// TestImportIdempotent verifies re-importing the same bundle adds nothing:
// groups are reused, everything else is skipped.
func TestImportIdempotent(t *testing.T) {
	store := &memStore{}
	imp := NewImporter(store, slog.Default())
	env := validEnvelope()

	if _, err := imp.Import(context.Background(), &env.Data); err != nil {
		t.Fatal(err)
	}
	report, err := imp.Import(context.Background(), &env.Data)
	if err != nil {
		t.Fatal(err)
	}

	if report.GroupsAdded != 0 || report.GroupsReused != 1 {
		t.Errorf("groups added=%d reused=%d, want 0/1", report.GroupsAdded, report.GroupsReused)
	}
	if report.ExercisesAdded != 0 || report.ExercisesSkipped != 2 {
		t.Errorf("exercises added=%d skipped=%d, want 0/2", report.ExercisesAdded, report.ExercisesSkipped)
	}
	if report.ProgramsAdded != 0 || report.ProgramsSkipped != 1 {
		t.Errorf("programs added=%d skipped=%d, want 0/1", report.ProgramsAdded, report.ProgramsSkipped)
	}
	if report.IntervalProgramsAdded != 0 || report.IntervalProgramsSkipped != 1 {
		t.Errorf("intervals added=%d skipped=%d, want 0/1", report.IntervalProgramsAdded, report.IntervalProgramsSkipped)
	}

	if len(store.exercises) != 2 {
		t.Errorf("store has %d exercises, want 2", len(store.exercises))
	}
}

// TestImportExistingExerciseKeepsAttributes verifies merge mode never
// overwrites a stored exercise's configuration.
func TestImportExistingExerciseKeepsAttributes(t *testing.T) {
	store := &memStore{}
	five := 5
	if _, err := store.InsertExercise(context.Background(), models.ExerciseRow{
		Name: "Push-up", Type: models.ExerciseTypeDynamic,
		Laterality: models.LateralityBilateral, TargetSets: &five,
	}); err != nil {
		t.Fatal(err)
	}

	env := validEnvelope()
	report, err := NewImporter(store, slog.Default()).Import(context.Background(), &env.Data)
	if err != nil {
		t.Fatal(err)
	}
	if report.ExercisesSkipped != 1 {
		t.Errorf("exercises skipped = %d, want 1", report.ExercisesSkipped)
	}

	ex, _ := store.GetExerciseByKey(context.Background(), models.ExerciseKey{Name: "Push-up", Type: models.ExerciseTypeDynamic})
	if ex.TargetSets == nil || *ex.TargetSets != 5 {
		t.Errorf("target_sets = %v, want the pre-existing 5", ex.TargetSets)
	}
}

// TestImportProgramReferencesExistingExercise verifies a program can
// reference an exercise that was skipped because it already exists.
func TestImportProgramReferencesExistingExercise(t *testing.T) {
	store := &memStore{}
	if _, err := store.InsertExercise(context.Background(), models.ExerciseRow{
		Name: "Push-up", Type: models.ExerciseTypeDynamic,
		Laterality: models.LateralityBilateral,
	}); err != nil {
		t.Fatal(err)
	}

	env := validEnvelope()
	report, err := NewImporter(store, slog.Default()).Import(context.Background(), &env.Data)
	if err != nil {
		t.Fatal(err)
	}
	if report.ProgramsAdded != 1 || len(report.Errors) != 0 {
		t.Errorf("programs=%d errors=%v, want 1 and none", report.ProgramsAdded, report.Errors)
	}
}

// TestImportCancelled verifies context cancellation stops the run and is
// the only condition reported through the error return.
func TestImportCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	env := validEnvelope()
	_, err := NewImporter(&memStore{}, slog.Default()).Import(ctx, &env.Data)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
