package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/repshare/internal/challenge"
	"github.com/meltforce/repshare/internal/csvio"
	"github.com/meltforce/repshare/internal/models"
	"github.com/meltforce/repshare/internal/share"
	"github.com/meltforce/repshare/internal/storage"
)

// validateResponse is the body of a share validation call. Errors is always
// present so clients can iterate it without a nil check.
type validateResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func (s *Server) handleShareValidate(w http.ResponseWriter, r *http.Request) {
	var env models.ShareEnvelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	errs := share.Validate(&env)
	if errs == nil {
		errs = []string{}
	}
	writeJSON(w, http.StatusOK, validateResponse{Valid: len(errs) == 0, Errors: errs})
}

func (s *Server) handleShareImport(w http.ResponseWriter, r *http.Request) {
	var env models.ShareEnvelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if errs := share.Validate(&env); len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, validateResponse{Valid: false, Errors: errs})
		return
	}

	start := time.Now()
	report, err := share.NewImporter(s.db, s.log).Import(r.Context(), &env.Data)
	if err != nil {
		s.log.Error("share import error", "error", err)
		s.recordImportLog(r.Context(), "share", "error", 0, 0, 0, 0, start, err.Error())
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	added := report.GroupsAdded + report.ExercisesAdded + report.ProgramsAdded + report.IntervalProgramsAdded
	skipped := report.ExercisesSkipped + report.ProgramsSkipped + report.IntervalProgramsSkipped
	s.recordImportLog(r.Context(), "share", "success", added, report.GroupsReused, skipped, len(report.Errors), start, "")

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleShareExport(w http.ResponseWriter, r *http.Request) {
	env, err := share.Export(r.Context(), s.db, s.version)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, env)
}

// handleCSVImport builds a handler around one of the CSV import pipelines.
// The request body is the raw CSV text.
func (s *Server) handleCSVImport(source string, run func(context.Context, string) (*csvio.Report, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reading body: " + err.Error()})
			return
		}

		start := time.Now()
		report, err := run(r.Context(), string(body))
		if err != nil {
			s.log.Error("csv import error", "source", source, "error", err)
			s.recordImportLog(r.Context(), source, "error", 0, 0, 0, 0, start, err.Error())
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		s.recordImportLog(r.Context(), source, "success",
			report.SuccessCount, 0, report.SkippedCount, report.ErrorCount, start, "")
		writeJSON(w, http.StatusOK, report)
	}
}

func (s *Server) handleCSVExport(filename string, run func(context.Context) (string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		text, err := run(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, text)
	}
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.db.ListGroups(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := s.db.ListExercises(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	ex, ok := s.exerciseFromPath(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

func (s *Server) handleListExerciseRecords(w http.ResponseWriter, r *http.Request) {
	ex, ok := s.exerciseFromPath(w, r)
	if !ok {
		return
	}
	records, err := s.db.ListTrainingRecordsByExercise(r.Context(), ex.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// challengeResponse wraps a challenge evaluation with the exercise it
// belongs to and the window it covered.
type challengeResponse struct {
	ExerciseID   int64  `json:"exercise_id"`
	ExerciseName string `json:"exercise_name"`
	PeriodDays   int    `json:"period_days"`
	challenge.Result
	ActualTotal int `json:"actual_total"`
}

func (s *Server) handleChallenge(w http.ResponseWriter, r *http.Request) {
	ex, ok := s.exerciseFromPath(w, r)
	if !ok {
		return
	}

	periodDays := 0
	if v := r.URL.Query().Get("period"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid period"})
			return
		}
		periodDays = p
	}

	records, err := s.db.ListTrainingRecordsByExercise(r.Context(), ex.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, challengeResponse{
		ExerciseID:   ex.ID,
		ExerciseName: ex.Name,
		PeriodDays:   periodDays,
		Result:       challenge.ComputeStatus(*ex, records, periodDays),
		ActualTotal:  challenge.ComputeActualTotal(*ex, records, periodDays),
	})
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.db.ListTrainingRecords(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetDataStats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleImportLogs(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	logs, err := s.db.ListImportLogs(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// exerciseFromPath resolves the {id} URL parameter to a stored exercise,
// writing the error response itself when resolution fails.
func (s *Server) exerciseFromPath(w http.ResponseWriter, r *http.Request) (*models.ExerciseRow, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return nil, false
	}
	ex, err := s.db.GetExerciseByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil, false
	}
	if ex == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "exercise not found"})
		return nil, false
	}
	return ex, true
}

func (s *Server) recordImportLog(ctx context.Context, source, status string, added, reused, skipped, errCount int, start time.Time, errMsg string) {
	durationMs := int(time.Since(start).Milliseconds())
	entry := storage.ImportLog{
		Source:     source,
		Status:     status,
		Added:      added,
		Reused:     reused,
		Skipped:    skipped,
		Errors:     errCount,
		DurationMs: &durationMs,
	}
	if errMsg != "" {
		entry.ErrorMessage = &errMsg
	}
	if _, err := s.db.InsertImportLog(ctx, entry); err != nil {
		s.log.Warn("failed to record import log", "source", source, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
