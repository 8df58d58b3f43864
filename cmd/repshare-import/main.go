package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/meltforce/repshare/internal/config"
	"github.com/meltforce/repshare/internal/importer"
	"github.com/meltforce/repshare/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	dir := flag.String("dir", "", "path to import directory (required)")
	dryRun := flag.Bool("dry-run", false, "report counts without inserting into database")
	noState := flag.Bool("no-state", false, "process every file even if already imported")
	stateDir := flag.String("state", "", "state database directory (default ~/.repshare-import)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *dir == "" {
		fmt.Fprintf(os.Stderr, "Usage: repshare-import -config config.yaml -dir /path/to/data [-dry-run] [-no-state]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	info, err := os.Stat(*dir)
	if err != nil || !info.IsDir() {
		log.Error("import path does not exist or is not a directory", "path", *dir)
		os.Exit(1)
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()

	// Run migrations
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx := context.Background()

	if *dryRun {
		log.Info("DRY RUN mode — no data will be written to the database")
	}

	// Connect database
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	// Open the file ledger unless disabled
	var state *importer.StateDB
	if !*noState && !*dryRun {
		sd := *stateDir
		if sd == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				log.Error("failed to get home directory", "error", err)
				os.Exit(1)
			}
			sd = filepath.Join(home, ".repshare-import")
		}
		state, err = importer.OpenStateDB(sd)
		if err != nil {
			log.Error("failed to open state database", "error", err)
			os.Exit(1)
		}
		defer state.Close()
	}

	// Run import
	imp := importer.New(db, state, log, *dryRun)
	stats, err := imp.Import(ctx, *dir)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func printStats(log *slog.Logger, stats *importer.Stats) {
	log.Info("import stats",
		"files_processed", stats.FilesProcessed,
		"files_skipped", stats.FilesSkipped,
		"files_errored", stats.FilesErrored,
		"items_added", stats.ItemsAdded,
		"items_reused", stats.ItemsReused,
		"items_skipped", stats.ItemsSkipped,
		"item_errors", stats.ItemErrors,
	)
	for _, e := range stats.FileErrors {
		log.Warn("file failed", "error", e)
	}
}
