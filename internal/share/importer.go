package share

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/meltforce/repshare/internal/models"
	"github.com/meltforce/repshare/internal/storage"
)

// Store is the storage surface the share importer and exporter need.
// *storage.DB satisfies it; tests use an in-memory fake. Lookups return
// (nil, nil) when no row matches.
type Store interface {
	GetGroupByName(ctx context.Context, name string) (*models.GroupRow, error)
	InsertGroup(ctx context.Context, name string) (int64, error)
	ListGroups(ctx context.Context) ([]models.GroupRow, error)

	GetExerciseByKey(ctx context.Context, key models.ExerciseKey) (*models.ExerciseRow, error)
	InsertExercise(ctx context.Context, row models.ExerciseRow) (int64, error)
	ListExercises(ctx context.Context) ([]models.ExerciseRow, error)

	GetProgramByName(ctx context.Context, name string) (*models.ProgramRow, error)
	InsertProgram(ctx context.Context, row models.ProgramRow) (int64, error)
	InsertProgramLoop(ctx context.Context, row models.ProgramLoopRow) (int64, error)
	InsertProgramExercise(ctx context.Context, row models.ProgramExerciseRow) (int64, error)
	ListPrograms(ctx context.Context) ([]models.ProgramRow, error)
	ListProgramLoops(ctx context.Context, programID int64) ([]models.ProgramLoopRow, error)
	ListProgramExercises(ctx context.Context, programID int64) ([]models.ProgramExerciseRow, error)

	GetIntervalProgramByName(ctx context.Context, name string) (*models.IntervalProgramRow, error)
	InsertIntervalProgram(ctx context.Context, row models.IntervalProgramRow) (int64, error)
	InsertIntervalProgramExercise(ctx context.Context, row models.IntervalProgramExerciseRow) (int64, error)
	ListIntervalPrograms(ctx context.Context) ([]models.IntervalProgramRow, error)
	ListIntervalProgramExercises(ctx context.Context, intervalProgramID int64) ([]models.IntervalProgramExerciseRow, error)

	GetExerciseByID(ctx context.Context, id int64) (*models.ExerciseRow, error)
	GetGroupByID(ctx context.Context, id int64) (*models.GroupRow, error)
}

// Compile-time check: *storage.DB satisfies Store.
var _ Store = (*storage.DB)(nil)

// ImportReport summarizes one share import. Counts distinguish additions,
// reuse of groups that already existed, and skips of entities whose
// identity already exists (merge mode never overwrites user data).
type ImportReport struct {
	GroupsAdded             int      `json:"groups_added"`
	GroupsReused            int      `json:"groups_reused"`
	ExercisesAdded          int      `json:"exercises_added"`
	ExercisesSkipped        int      `json:"exercises_skipped"`
	ProgramsAdded           int      `json:"programs_added"`
	ProgramsSkipped         int      `json:"programs_skipped"`
	IntervalProgramsAdded   int      `json:"interval_programs_added"`
	IntervalProgramsSkipped int      `json:"interval_programs_skipped"`
	Errors                  []string `json:"errors,omitempty"`
}

// Importer reconciles validated share content into the store.
type Importer struct {
	store Store
	log   *slog.Logger
}

// NewImporter creates a share importer.
func NewImporter(store Store, log *slog.Logger) *Importer {
	return &Importer{store: store, log: log}
}

// Import merges the bundle into the store: groups are reused by name,
// exercises by (name, type) and programs/interval programs by name are
// skipped when they already exist, everything else is created. Entity
// kinds are processed in dependency order (groups, exercises, programs,
// interval programs). A failure on one item is recorded in the report and
// the rest of the bundle is still processed; already-written items are not
// rolled back. The returned error is non-nil only when the context is
// cancelled between items.
func (imp *Importer) Import(ctx context.Context, data *models.ShareContent) (*ImportReport, error) {
	report := &ImportReport{}

	// Group name -> stored id, for resolving exercise group references.
	groupIDs := make(map[string]int64, len(data.Groups))
	for _, g := range data.Groups {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		existing, err := imp.store.GetGroupByName(ctx, g.Name)
		if err != nil {
			report.fail(fmt.Sprintf("group %q: %v", g.Name, err))
			continue
		}
		if existing != nil {
			groupIDs[g.Name] = existing.ID
			report.GroupsReused++
			continue
		}
		id, err := imp.store.InsertGroup(ctx, g.Name)
		if errors.Is(err, models.ErrAlreadyExists) {
			// Lost a race with a concurrent writer; same outcome as reuse.
			report.GroupsReused++
			continue
		}
		if err != nil {
			report.fail(fmt.Sprintf("group %q: %v", g.Name, err))
			continue
		}
		groupIDs[g.Name] = id
		report.GroupsAdded++
	}

	// Exercise key -> stored id, for resolving program references.
	exerciseIDs := make(map[models.ExerciseKey]int64, len(data.Exercises))
	for _, ex := range data.Exercises {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		existing, err := imp.store.GetExerciseByKey(ctx, ex.Key())
		if err != nil {
			report.fail(fmt.Sprintf("exercise %s: %v", ex.Key(), err))
			continue
		}
		if existing != nil {
			// Existing exercises keep their user-configured attributes.
			exerciseIDs[ex.Key()] = existing.ID
			report.ExercisesSkipped++
			continue
		}
		row := models.ExerciseRow{
			Name:               ex.Name,
			Type:               ex.Type,
			SortOrder:          ex.SortOrder,
			Laterality:         ex.Laterality,
			TargetSets:         ex.TargetSets,
			TargetValue:        ex.TargetValue,
			RestInterval:       ex.RestInterval,
			RepDuration:        ex.RepDuration,
			DistanceTracking:   ex.DistanceTracking,
			WeightTracking:     ex.WeightTracking,
			AssistanceTracking: ex.AssistanceTracking,
			Description:        ex.Description,
		}
		if ex.Group != "" {
			gid, err := imp.resolveGroup(ctx, groupIDs, ex.Group)
			if err != nil {
				report.fail(fmt.Sprintf("exercise %s: %v", ex.Key(), err))
				continue
			}
			row.GroupID = &gid
		}
		id, err := imp.store.InsertExercise(ctx, row)
		if errors.Is(err, models.ErrAlreadyExists) {
			report.ExercisesSkipped++
			continue
		}
		if err != nil {
			report.fail(fmt.Sprintf("exercise %s: %v", ex.Key(), err))
			continue
		}
		exerciseIDs[ex.Key()] = id
		report.ExercisesAdded++
	}

	for _, p := range data.Programs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		existing, err := imp.store.GetProgramByName(ctx, p.Name)
		if err != nil {
			report.fail(fmt.Sprintf("program %q: %v", p.Name, err))
			continue
		}
		if existing != nil {
			report.ProgramsSkipped++
			continue
		}
		err = imp.importProgram(ctx, exerciseIDs, p)
		if errors.Is(err, models.ErrAlreadyExists) {
			report.ProgramsSkipped++
			continue
		}
		if err != nil {
			report.fail(fmt.Sprintf("program %q: %v", p.Name, err))
			continue
		}
		report.ProgramsAdded++
	}

	for _, ip := range data.IntervalPrograms {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		existing, err := imp.store.GetIntervalProgramByName(ctx, ip.Name)
		if err != nil {
			report.fail(fmt.Sprintf("interval program %q: %v", ip.Name, err))
			continue
		}
		if existing != nil {
			report.IntervalProgramsSkipped++
			continue
		}
		err = imp.importIntervalProgram(ctx, exerciseIDs, ip)
		if errors.Is(err, models.ErrAlreadyExists) {
			report.IntervalProgramsSkipped++
			continue
		}
		if err != nil {
			report.fail(fmt.Sprintf("interval program %q: %v", ip.Name, err))
			continue
		}
		report.IntervalProgramsAdded++
	}

	imp.log.Info("share import finished",
		"groups_added", report.GroupsAdded,
		"groups_reused", report.GroupsReused,
		"exercises_added", report.ExercisesAdded,
		"exercises_skipped", report.ExercisesSkipped,
		"programs_added", report.ProgramsAdded,
		"programs_skipped", report.ProgramsSkipped,
		"interval_programs_added", report.IntervalProgramsAdded,
		"interval_programs_skipped", report.IntervalProgramsSkipped,
		"errors", len(report.Errors),
	)
	return report, nil
}

// importProgram creates one program with its loops and exercise slots.
// Items written before a failure stay committed.
func (imp *Importer) importProgram(ctx context.Context, exerciseIDs map[models.ExerciseKey]int64, p models.ShareProgram) error {
	programID, err := imp.store.InsertProgram(ctx, models.ProgramRow{Name: p.Name})
	if err != nil {
		return err
	}

	// Bundle loop id -> stored row id.
	loopRowIDs := make(map[int]int64, len(p.Loops))
	for _, loop := range p.Loops {
		id, err := imp.store.InsertProgramLoop(ctx, models.ProgramLoopRow{
			ProgramID:         programID,
			LoopNumber:        loop.ID,
			SortOrder:         loop.SortOrder,
			Rounds:            loop.Rounds,
			RestBetweenRounds: loop.RestBetweenRounds,
		})
		if err != nil {
			return fmt.Errorf("loop %d: %w", loop.ID, err)
		}
		loopRowIDs[loop.ID] = id
	}

	for _, pe := range p.Exercises {
		exerciseID, err := imp.resolveExercise(ctx, exerciseIDs, pe.Key())
		if err != nil {
			return err
		}
		row := models.ProgramExerciseRow{
			ProgramID:       programID,
			ExerciseID:      exerciseID,
			SortOrder:       pe.SortOrder,
			Sets:            pe.Sets,
			TargetValue:     pe.TargetValue,
			IntervalSeconds: pe.IntervalSeconds,
		}
		if pe.LoopID != nil {
			loopRowID, ok := loopRowIDs[*pe.LoopID]
			if !ok {
				return fmt.Errorf("exercise %s references undefined loop %d", pe.Key(), *pe.LoopID)
			}
			row.LoopID = &loopRowID
		}
		if _, err := imp.store.InsertProgramExercise(ctx, row); err != nil {
			return fmt.Errorf("exercise %s: %w", pe.Key(), err)
		}
	}
	return nil
}

func (imp *Importer) importIntervalProgram(ctx context.Context, exerciseIDs map[models.ExerciseKey]int64, ip models.ShareIntervalProgram) error {
	id, err := imp.store.InsertIntervalProgram(ctx, models.IntervalProgramRow{
		Name:             ip.Name,
		WorkSeconds:      ip.WorkSeconds,
		RestSeconds:      ip.RestSeconds,
		Rounds:           ip.Rounds,
		RoundRestSeconds: ip.RoundRestSeconds,
	})
	if err != nil {
		return err
	}

	for _, ie := range ip.Exercises {
		exerciseID, err := imp.resolveExercise(ctx, exerciseIDs, ie.Key())
		if err != nil {
			return err
		}
		_, err = imp.store.InsertIntervalProgramExercise(ctx, models.IntervalProgramExerciseRow{
			IntervalProgramID: id,
			ExerciseID:        exerciseID,
			SortOrder:         ie.SortOrder,
		})
		if err != nil {
			return fmt.Errorf("exercise %s: %w", ie.Key(), err)
		}
	}
	return nil
}

// resolveGroup returns the stored id for a group name, preferring ids
// materialized earlier in this import.
func (imp *Importer) resolveGroup(ctx context.Context, groupIDs map[string]int64, name string) (int64, error) {
	if id, ok := groupIDs[name]; ok {
		return id, nil
	}
	row, err := imp.store.GetGroupByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if row == nil {
		return 0, fmt.Errorf("group %q not found", name)
	}
	groupIDs[name] = row.ID
	return row.ID, nil
}

func (imp *Importer) resolveExercise(ctx context.Context, exerciseIDs map[models.ExerciseKey]int64, key models.ExerciseKey) (int64, error) {
	if id, ok := exerciseIDs[key]; ok {
		return id, nil
	}
	row, err := imp.store.GetExerciseByKey(ctx, key)
	if err != nil {
		return 0, err
	}
	if row == nil {
		return 0, fmt.Errorf("exercise %s not found", key)
	}
	exerciseIDs[key] = row.ID
	return row.ID, nil
}

func (r *ImportReport) fail(msg string) {
	r.Errors = append(r.Errors, msg)
}
