// Package importer bulk-imports share bundles and CSV files from a
// directory layout:
//
//	dir/shares/*.json    share bundles
//	dir/groups/*.csv     group CSVs
//	dir/exercises/*.csv  exercise CSVs
//	dir/records/*.csv    training record CSVs
//
// Shares go first so CSV records can reference exercises they create.
// A SQLite ledger remembers imported files by path, size, and hash so
// re-running over the same directory is cheap.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/meltforce/repshare/internal/csvio"
	"github.com/meltforce/repshare/internal/models"
	"github.com/meltforce/repshare/internal/share"
	"github.com/meltforce/repshare/internal/storage"
)

// Store is the storage surface the bulk importer needs: everything the
// share importer and the CSV pipelines use.
type Store interface {
	share.Store
	csvio.Store
}

// Compile-time check: *storage.DB satisfies Store.
var _ Store = (*storage.DB)(nil)

// Stats tracks import progress across all files in a run.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	ItemsAdded   int
	ItemsReused  int
	ItemsSkipped int
	ItemErrors   int

	// FileErrors holds one message per file that failed outright
	// (unreadable, invalid JSON, failed validation).
	FileErrors []string
}

// Importer reads bundle and CSV files from a directory and inserts data
// through the merge-mode engines.
type Importer struct {
	store  Store
	csv    *csvio.Engine
	log    *slog.Logger
	state  *StateDB
	dryRun bool
	stats  Stats
}

// New creates a new Importer. state may be nil, in which case every file
// is processed on every run.
func New(store Store, state *StateDB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{
		store:  store,
		csv:    csvio.NewEngine(store, log),
		log:    log,
		state:  state,
		dryRun: dryRun,
	}
}

// Import processes all recognized files under dir.
func (imp *Importer) Import(ctx context.Context, dir string) (*Stats, error) {
	if err := imp.importDir(ctx, filepath.Join(dir, "shares"), "*.json", imp.importShareFile); err != nil {
		return &imp.stats, fmt.Errorf("importing shares: %w", err)
	}
	if err := imp.importDir(ctx, filepath.Join(dir, "groups"), "*.csv", imp.csvFile(imp.csv.ImportGroups)); err != nil {
		return &imp.stats, fmt.Errorf("importing groups: %w", err)
	}
	if err := imp.importDir(ctx, filepath.Join(dir, "exercises"), "*.csv", imp.csvFile(imp.csv.ImportExercises)); err != nil {
		return &imp.stats, fmt.Errorf("importing exercises: %w", err)
	}
	if err := imp.importDir(ctx, filepath.Join(dir, "records"), "*.csv", imp.csvFile(imp.csv.ImportRecords)); err != nil {
		return &imp.stats, fmt.Errorf("importing records: %w", err)
	}
	return &imp.stats, nil
}

// importDir runs one file handler over every matching file in dir,
// consulting the state ledger first. A per-file failure is recorded and
// the run continues; only infrastructure errors abort.
func (imp *Importer) importDir(ctx context.Context, dir, pattern string, handle func(ctx context.Context, path string) error) error {
	if _, err := os.Stat(dir); err != nil {
		return nil // directory absent, nothing to do
	}

	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		skip, size, hash, err := imp.alreadyImported(f)
		if err != nil {
			return err
		}
		if skip {
			imp.stats.FilesSkipped++
			continue
		}

		if imp.dryRun {
			imp.log.Info("would import", "file", f)
			imp.stats.FilesProcessed++
			continue
		}

		if err := handle(ctx, f); err != nil {
			imp.log.Warn("file import failed", "file", f, "error", err)
			imp.stats.FilesErrored++
			imp.stats.FileErrors = append(imp.stats.FileErrors, fmt.Sprintf("%s: %v", filepath.Base(f), err))
			continue
		}
		imp.stats.FilesProcessed++

		if imp.state != nil {
			if err := imp.state.MarkImported(filepath.Base(f), size, hash); err != nil {
				return fmt.Errorf("recording import state for %s: %w", f, err)
			}
		}
	}
	return nil
}

// alreadyImported consults the state ledger and returns the file's size
// and hash for later recording.
func (imp *Importer) alreadyImported(path string) (bool, int64, string, error) {
	if imp.state == nil {
		return false, 0, "", nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, 0, "", fmt.Errorf("stat %s: %w", path, err)
	}
	hash, err := HashFile(path)
	if err != nil {
		return false, 0, "", fmt.Errorf("hashing %s: %w", path, err)
	}
	done, err := imp.state.IsImported(filepath.Base(path), info.Size(), hash)
	if err != nil {
		return false, 0, "", fmt.Errorf("checking import state for %s: %w", path, err)
	}
	return done, info.Size(), hash, nil
}

// importShareFile validates and imports one share bundle file.
func (imp *Importer) importShareFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var env models.ShareEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("parsing bundle: %w", err)
	}

	if errs := share.Validate(&env); len(errs) > 0 {
		return fmt.Errorf("bundle failed validation: %d error(s), first: %s", len(errs), errs[0])
	}

	report, err := share.NewImporter(imp.store, imp.log).Import(ctx, &env.Data)
	if err != nil {
		return err
	}

	imp.stats.ItemsAdded += report.GroupsAdded + report.ExercisesAdded +
		report.ProgramsAdded + report.IntervalProgramsAdded
	imp.stats.ItemsReused += report.GroupsReused
	imp.stats.ItemsSkipped += report.ExercisesSkipped + report.ProgramsSkipped +
		report.IntervalProgramsSkipped
	imp.stats.ItemErrors += len(report.Errors)
	return nil
}

// csvFile adapts a CSV pipeline to the per-file handler shape.
func (imp *Importer) csvFile(run func(ctx context.Context, text string) (*csvio.Report, error)) func(ctx context.Context, path string) error {
	return func(ctx context.Context, path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		report, err := run(ctx, string(data))
		if err != nil {
			return err
		}
		imp.stats.ItemsAdded += report.SuccessCount
		imp.stats.ItemsSkipped += report.SkippedCount
		imp.stats.ItemErrors += report.ErrorCount
		return nil
	}
}
