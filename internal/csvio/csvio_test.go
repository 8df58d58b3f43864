package csvio

import (
	"context"
	"fmt"
	"testing"

	"github.com/meltforce/repshare/internal/models"
)

// memStore is an in-memory Store for pipeline tests. Inserts enforce the
// schema's uniqueness rules and report violations as models.ErrAlreadyExists.
type memStore struct {
	nextID    int64
	groups    []models.GroupRow
	exercises []models.ExerciseRow
	records   []models.TrainingRecordRow
}

var _ Store = (*memStore)(nil)

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) GetGroupByName(ctx context.Context, name string) (*models.GroupRow, error) {
	for i := range m.groups {
		if m.groups[i].Name == name {
			return &m.groups[i], nil
		}
	}
	return nil, nil
}

func (m *memStore) InsertGroup(ctx context.Context, name string) (int64, error) {
	for _, g := range m.groups {
		if g.Name == name {
			return 0, fmt.Errorf("inserting group: %w", models.ErrAlreadyExists)
		}
	}
	id := m.id()
	m.groups = append(m.groups, models.GroupRow{ID: id, Name: name})
	return id, nil
}

func (m *memStore) ListGroups(ctx context.Context) ([]models.GroupRow, error) {
	return m.groups, nil
}

func (m *memStore) GetExerciseByKey(ctx context.Context, key models.ExerciseKey) (*models.ExerciseRow, error) {
	for i := range m.exercises {
		if m.exercises[i].Key() == key {
			return &m.exercises[i], nil
		}
	}
	return nil, nil
}

func (m *memStore) InsertExercise(ctx context.Context, row models.ExerciseRow) (int64, error) {
	for _, e := range m.exercises {
		if e.Key() == row.Key() {
			return 0, fmt.Errorf("inserting exercise: %w", models.ErrAlreadyExists)
		}
	}
	row.ID = m.id()
	m.exercises = append(m.exercises, row)
	return row.ID, nil
}

func (m *memStore) ListExercises(ctx context.Context) ([]models.ExerciseRow, error) {
	return m.exercises, nil
}

func (m *memStore) TrainingRecordExists(ctx context.Context, exerciseID int64, date, timeOfDay string, setNumber int) (bool, error) {
	for _, r := range m.records {
		if r.ExerciseID == exerciseID && r.Date == date && r.Time == timeOfDay && r.SetNumber == setNumber {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) InsertTrainingRecord(ctx context.Context, row models.TrainingRecordRow) (int64, error) {
	exists, _ := m.TrainingRecordExists(ctx, row.ExerciseID, row.Date, row.Time, row.SetNumber)
	if exists {
		return 0, fmt.Errorf("inserting training record: %w", models.ErrAlreadyExists)
	}
	row.ID = m.id()
	m.records = append(m.records, row)
	return row.ID, nil
}

func (m *memStore) ListTrainingRecords(ctx context.Context) ([]models.TrainingRecordRow, error) {
	return m.records, nil
}

// TestDataLines verifies comment and blank stripping and header removal.
func TestDataLines(t *testing.T) {
	text := "# exported 2026-09-01\r\n\r\nname\r\nPush\r\n# trailing comment\r\nPull\r\n"
	lines := dataLines(text)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %v", len(lines), lines)
	}
	if lines[0] != "Push" || lines[1] != "Pull" {
		t.Errorf("lines = %v", lines)
	}
}

// TestDataLinesEmpty verifies empty and header-only input yield no data lines.
func TestDataLinesEmpty(t *testing.T) {
	if got := dataLines(""); got != nil {
		t.Errorf("dataLines(\"\") = %v, want nil", got)
	}
	if got := dataLines("# only a comment\n\n"); got != nil {
		t.Errorf("comment-only input = %v, want nil", got)
	}
	if got := dataLines("name\n"); len(got) != 0 {
		t.Errorf("header-only input = %v, want empty", got)
	}
}

// TestLineNumber verifies the reported numbering: the first data line is
// line 2, the header being line 1 of the cleaned input.
func TestLineNumber(t *testing.T) {
	if got := lineNumber(0); got != 2 {
		t.Errorf("lineNumber(0) = %d, want 2", got)
	}
	if got := lineNumber(3); got != 5 {
		t.Errorf("lineNumber(3) = %d, want 5", got)
	}
}

// TestSplitFields verifies comma splitting with whitespace trimming.
func TestSplitFields(t *testing.T) {
	got := splitFields(" a , b ,, c ")
	want := []string{"a", "b", "", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestParseCoercions verifies the permissive numeric and boolean coercions.
func TestParseCoercions(t *testing.T) {
	if got := parseIntOrDefault("7", 0); got != 7 {
		t.Errorf("parseIntOrDefault(7) = %d", got)
	}
	if got := parseIntOrDefault("x", 3); got != 3 {
		t.Errorf("parseIntOrDefault(x) = %d, want default 3", got)
	}
	if got := parseOptionalInt(""); got != nil {
		t.Errorf("parseOptionalInt(\"\") = %v, want nil", got)
	}
	if got := parseOptionalInt("bad"); got != nil {
		t.Errorf("parseOptionalInt(bad) = %v, want nil", got)
	}
	if got := parseOptionalInt("12"); got == nil || *got != 12 {
		t.Errorf("parseOptionalInt(12) = %v", got)
	}
	if !parseBoolOrFalse("true") || !parseBoolOrFalse("TRUE") {
		t.Error("parseBoolOrFalse should accept true in any case")
	}
	if parseBoolOrFalse("1") || parseBoolOrFalse("yes") || parseBoolOrFalse("") {
		t.Error("parseBoolOrFalse should reject non-true tokens")
	}
}
