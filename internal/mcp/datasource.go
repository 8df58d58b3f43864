package mcp

import (
	"context"
	"log/slog"

	"github.com/meltforce/repshare/internal/models"
	"github.com/meltforce/repshare/internal/share"
	"github.com/meltforce/repshare/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both LocalSource
// (direct database access) and HTTPClient (remote via REST API) satisfy
// this interface. Lookups return (nil, nil) when no row matches.
type DataSource interface {
	ListGroups(ctx context.Context) ([]models.GroupRow, error)
	ListExercises(ctx context.Context) ([]models.ExerciseRow, error)
	GetExerciseByKey(ctx context.Context, key models.ExerciseKey) (*models.ExerciseRow, error)
	ListTrainingRecords(ctx context.Context) ([]models.TrainingRecordRow, error)
	ListTrainingRecordsByExercise(ctx context.Context, exerciseID int64) ([]models.TrainingRecordRow, error)
	GetDataStats(ctx context.Context) (*storage.DataStats, error)
	ImportShare(ctx context.Context, env *models.ShareEnvelope) (*share.ImportReport, error)
}

// LocalSource implements DataSource against the local database.
type LocalSource struct {
	*storage.DB
	log *slog.Logger
}

// Compile-time check: *LocalSource satisfies DataSource.
var _ DataSource = (*LocalSource)(nil)

// NewLocalSource wraps a database handle as a DataSource.
func NewLocalSource(db *storage.DB, log *slog.Logger) *LocalSource {
	return &LocalSource{DB: db, log: log}
}

// ImportShare imports a validated bundle directly into the database.
func (s *LocalSource) ImportShare(ctx context.Context, env *models.ShareEnvelope) (*share.ImportReport, error) {
	return share.NewImporter(s.DB, s.log).Import(ctx, &env.Data)
}
