package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/repshare/internal/csvio"
	"github.com/meltforce/repshare/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db      *storage.DB
	csv     *csvio.Engine
	log     *slog.Logger
	apiKey  string
	version string
	router  chi.Router
}

// New creates a new Server with all routes configured. version is stamped
// into exported share bundles.
func New(db *storage.DB, log *slog.Logger, apiKey, version string) *Server {
	s := &Server{
		db:      db,
		csv:     csvio.NewEngine(db, log),
		log:     log,
		apiKey:  apiKey,
		version: version,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Import endpoints mutate data, so they require the API key.
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/share/validate", s.handleShareValidate)
		r.Post("/api/v1/share/import", s.handleShareImport)
		r.Post("/api/v1/csv/groups/import", s.handleCSVImport("csv:groups", s.csv.ImportGroups))
		r.Post("/api/v1/csv/exercises/import", s.handleCSVImport("csv:exercises", s.csv.ImportExercises))
		r.Post("/api/v1/csv/records/import", s.handleCSVImport("csv:records", s.csv.ImportRecords))
	})

	// Read endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/share/export", s.handleShareExport)
	s.router.Get("/api/v1/csv/groups/export", s.handleCSVExport("groups.csv", s.csv.ExportGroups))
	s.router.Get("/api/v1/csv/exercises/export", s.handleCSVExport("exercises.csv", s.csv.ExportExercises))
	s.router.Get("/api/v1/csv/records/export", s.handleCSVExport("records.csv", s.csv.ExportRecords))
	s.router.Get("/api/v1/groups", s.handleListGroups)
	s.router.Get("/api/v1/exercises", s.handleListExercises)
	s.router.Get("/api/v1/exercises/{id}", s.handleGetExercise)
	s.router.Get("/api/v1/exercises/{id}/records", s.handleListExerciseRecords)
	s.router.Get("/api/v1/exercises/{id}/challenge", s.handleChallenge)
	s.router.Get("/api/v1/records", s.handleListRecords)
	s.router.Get("/api/v1/stats", s.handleStats)
	s.router.Get("/api/v1/import-logs", s.handleImportLogs)
}
