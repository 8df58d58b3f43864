package share

import (
	"context"
	"fmt"

	"github.com/meltforce/repshare/internal/models"
)

// memStore is an in-memory Store for importer and exporter tests. Inserts
// enforce the same uniqueness rules as the database schema and report
// violations as models.ErrAlreadyExists.
type memStore struct {
	nextID            int64
	groups            []models.GroupRow
	exercises         []models.ExerciseRow
	programs          []models.ProgramRow
	loops             []models.ProgramLoopRow
	programExercises  []models.ProgramExerciseRow
	intervalPrograms  []models.IntervalProgramRow
	intervalExercises []models.IntervalProgramExerciseRow
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

func (m *memStore) GetGroupByID(ctx context.Context, id int64) (*models.GroupRow, error) {
	for i := range m.groups {
		if m.groups[i].ID == id {
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

func (m *memStore) GetExerciseByID(ctx context.Context, id int64) (*models.ExerciseRow, error) {
	for i := range m.exercises {
		if m.exercises[i].ID == id {
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

func (m *memStore) GetProgramByName(ctx context.Context, name string) (*models.ProgramRow, error) {
	for i := range m.programs {
		if m.programs[i].Name == name {
			return &m.programs[i], nil
		}
	}
	return nil, nil
}

func (m *memStore) InsertProgram(ctx context.Context, row models.ProgramRow) (int64, error) {
	for _, p := range m.programs {
		if p.Name == row.Name {
			return 0, fmt.Errorf("inserting program: %w", models.ErrAlreadyExists)
		}
	}
	row.ID = m.id()
	m.programs = append(m.programs, row)
	return row.ID, nil
}

func (m *memStore) InsertProgramLoop(ctx context.Context, row models.ProgramLoopRow) (int64, error) {
	row.ID = m.id()
	m.loops = append(m.loops, row)
	return row.ID, nil
}

func (m *memStore) InsertProgramExercise(ctx context.Context, row models.ProgramExerciseRow) (int64, error) {
	row.ID = m.id()
	m.programExercises = append(m.programExercises, row)
	return row.ID, nil
}

func (m *memStore) ListPrograms(ctx context.Context) ([]models.ProgramRow, error) {
	return m.programs, nil
}

func (m *memStore) ListProgramLoops(ctx context.Context, programID int64) ([]models.ProgramLoopRow, error) {
	var out []models.ProgramLoopRow
	for _, l := range m.loops {
		if l.ProgramID == programID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memStore) ListProgramExercises(ctx context.Context, programID int64) ([]models.ProgramExerciseRow, error) {
	var out []models.ProgramExerciseRow
	for _, e := range m.programExercises {
		if e.ProgramID == programID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) GetIntervalProgramByName(ctx context.Context, name string) (*models.IntervalProgramRow, error) {
	for i := range m.intervalPrograms {
		if m.intervalPrograms[i].Name == name {
			return &m.intervalPrograms[i], nil
		}
	}
	return nil, nil
}

func (m *memStore) InsertIntervalProgram(ctx context.Context, row models.IntervalProgramRow) (int64, error) {
	for _, ip := range m.intervalPrograms {
		if ip.Name == row.Name {
			return 0, fmt.Errorf("inserting interval program: %w", models.ErrAlreadyExists)
		}
	}
	row.ID = m.id()
	m.intervalPrograms = append(m.intervalPrograms, row)
	return row.ID, nil
}

func (m *memStore) InsertIntervalProgramExercise(ctx context.Context, row models.IntervalProgramExerciseRow) (int64, error) {
	row.ID = m.id()
	m.intervalExercises = append(m.intervalExercises, row)
	return row.ID, nil
}

func (m *memStore) ListIntervalPrograms(ctx context.Context) ([]models.IntervalProgramRow, error) {
	return m.intervalPrograms, nil
}

func (m *memStore) ListIntervalProgramExercises(ctx context.Context, intervalProgramID int64) ([]models.IntervalProgramExerciseRow, error) {
	var out []models.IntervalProgramExerciseRow
	for _, e := range m.intervalExercises {
		if e.IntervalProgramID == intervalProgramID {
			out = append(out, e)
		}
	}
	return out, nil
}
