package share

import (
	"context"
	"log/slog"
	"testing"

	"github.com/meltforce/repshare/internal/models"
)

// TestExportRoundTrip verifies that importing a bundle and exporting the
// store reproduces the bundle's content, and that the export validates.
func TestExportRoundTrip(t *testing.T) {
	store := &memStore{}
	env := validEnvelope()

	if _, err := NewImporter(store, slog.Default()).Import(context.Background(), &env.Data); err != nil {
		t.Fatal(err)
	}

	out, err := Export(context.Background(), store, "1.2.3")
	if err != nil {
		t.Fatal(err)
	}

	if out.FormatVersion != models.ShareFormatVersion {
		t.Errorf("format version = %d, want %d", out.FormatVersion, models.ShareFormatVersion)
	}
	if out.ExportType != models.ShareExportType {
		t.Errorf("export type = %q, want %q", out.ExportType, models.ShareExportType)
	}
	if out.AppVersion != "1.2.3" {
		t.Errorf("app version = %q, want 1.2.3", out.AppVersion)
	}
	if out.ExportID == "" || out.ExportDate == "" {
		t.Error("export id and date must be stamped")
	}

	if errs := Validate(out); len(errs) != 0 {
		t.Errorf("exported bundle fails validation: %v", errs)
	}

	if len(out.Data.Groups) != 1 || out.Data.Groups[0].Name != "Push" {
		t.Errorf("groups = %+v", out.Data.Groups)
	}
	if len(out.Data.Exercises) != 2 {
		t.Fatalf("got %d exercises, want 2", len(out.Data.Exercises))
	}
	if out.Data.Exercises[0].Group != "Push" {
		t.Errorf("exercise group = %q, want Push", out.Data.Exercises[0].Group)
	}

	if len(out.Data.Programs) != 1 {
		t.Fatalf("got %d programs, want 1", len(out.Data.Programs))
	}
	p := out.Data.Programs[0]
	if len(p.Loops) != 1 || p.Loops[0].ID != 1 {
		t.Errorf("loops = %+v, want bundle-facing id 1", p.Loops)
	}
	if len(p.Exercises) != 1 || p.Exercises[0].LoopID == nil || *p.Exercises[0].LoopID != 1 {
		t.Errorf("program exercises = %+v, want loopId 1", p.Exercises)
	}

	if len(out.Data.IntervalPrograms) != 1 {
		t.Fatalf("got %d interval programs, want 1", len(out.Data.IntervalPrograms))
	}
	ip := out.Data.IntervalPrograms[0]
	if ip.WorkSeconds != 20 || ip.Rounds != 8 {
		t.Errorf("interval program = %+v", ip)
	}
	if len(ip.Exercises) != 1 || ip.Exercises[0].ExerciseName != "Plank" {
		t.Errorf("interval exercises = %+v", ip.Exercises)
	}
}

// TestExportEmptyStore verifies an empty store exports a valid empty bundle.
func TestExportEmptyStore(t *testing.T) {
	out, err := Export(context.Background(), &memStore{}, "dev")
	if err != nil {
		t.Fatal(err)
	}
	if errs := Validate(out); len(errs) != 0 {
		t.Errorf("empty export fails validation: %v", errs)
	}
	if len(out.Data.Groups) != 0 || len(out.Data.Exercises) != 0 {
		t.Errorf("empty store exported content: %+v", out.Data)
	}
}

// TestExportReimportNoOp verifies the export of a store re-imports into a
// copy as pure reuse/skip.
func TestExportReimportNoOp(t *testing.T) {
	store := &memStore{}
	env := validEnvelope()
	imp := NewImporter(store, slog.Default())
	if _, err := imp.Import(context.Background(), &env.Data); err != nil {
		t.Fatal(err)
	}

	out, err := Export(context.Background(), store, "dev")
	if err != nil {
		t.Fatal(err)
	}

	report, err := imp.Import(context.Background(), &out.Data)
	if err != nil {
		t.Fatal(err)
	}
	if report.GroupsAdded != 0 || report.ExercisesAdded != 0 ||
		report.ProgramsAdded != 0 || report.IntervalProgramsAdded != 0 {
		t.Errorf("re-import added entities: %+v", report)
	}
	if len(report.Errors) != 0 {
		t.Errorf("re-import errors: %v", report.Errors)
	}
}
