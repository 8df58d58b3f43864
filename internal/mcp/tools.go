package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/repshare/internal/challenge"
	"github.com/meltforce/repshare/internal/models"
	"github.com/meltforce/repshare/internal/share"
)

// --- Tool definitions ---

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List all exercises with their type, laterality, group, and challenge targets."),
	mcp.WithString("group", mcp.Description("Filter by group name (exact match)")),
)

var toolGetTrainingRecords = mcp.NewTool("get_training_records",
	mcp.WithDescription("Retrieve training records for one exercise, newest window first. Each record is one set: date, time, set number, right/left values, comment."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name")),
	mcp.WithString("type", mcp.Required(), mcp.Description("Exercise type"), mcp.Enum("Dynamic", "Isometric")),
	mcp.WithNumber("period", mcp.Description("Restrict to the trailing window of this many days. Defaults to all history.")),
)

var toolGetChallengeStatus = mcp.NewTool("get_challenge_status",
	mcp.WithDescription("Evaluate an exercise's challenge: achievement rate, status band (NoRecord/NeedWork/NearlyThere/Good/Perfect), and the date the target was last reached."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name")),
	mcp.WithString("type", mcp.Required(), mcp.Description("Exercise type"), mcp.Enum("Dynamic", "Isometric")),
	mcp.WithNumber("period", mcp.Description("Restrict to the trailing window of this many days. Defaults to all history.")),
)

var toolGetDataStats = mcp.NewTool("get_data_stats",
	mcp.WithDescription("Aggregate statistics: entity counts, record date range, and per-exercise record counts."),
)

var toolImportShare = mcp.NewTool("import_share",
	mcp.WithDescription("Validate and import a share bundle (JSON). Merge semantics: groups are reused by name, exercises/programs that already exist are skipped."),
	mcp.WithString("bundle", mcp.Required(), mcp.Description("The share bundle JSON text")),
	mcp.WithBoolean("validate_only", mcp.Description("Only validate, do not import. Defaults to false.")),
)

// --- Tool handlers ---

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercises, err := h.ds.ListExercises(ctx)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	if group := req.GetString("group", ""); group != "" {
		groups, err := h.ds.ListGroups(ctx)
		if err != nil {
			return mcp.NewToolResultError("query failed: " + err.Error()), nil
		}
		var groupID int64 = -1
		for _, g := range groups {
			if g.Name == group {
				groupID = g.ID
				break
			}
		}
		var filtered []models.ExerciseRow
		for _, ex := range exercises {
			if ex.GroupID != nil && *ex.GroupID == groupID {
				filtered = append(filtered, ex)
			}
		}
		exercises = filtered
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTrainingRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ex, errResult := h.resolveExercise(ctx, req)
	if errResult != nil {
		return errResult, nil
	}

	records, err := h.ds.ListTrainingRecordsByExercise(ctx, ex.ID)
	if err != nil {
		h.log.Error("mcp get_training_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	if period := req.GetInt("period", 0); period > 0 {
		records = lastNDays(records, period)
	}

	result, err := mcp.NewToolResultJSON(records)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getChallengeStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ex, errResult := h.resolveExercise(ctx, req)
	if errResult != nil {
		return errResult, nil
	}

	records, err := h.ds.ListTrainingRecordsByExercise(ctx, ex.ID)
	if err != nil {
		h.log.Error("mcp get_challenge_status", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	period := req.GetInt("period", 0)
	out := map[string]any{
		"exercise":     ex.Name,
		"type":         ex.Type,
		"period_days":  period,
		"result":       challenge.ComputeStatus(*ex, records, period),
		"actual_total": challenge.ComputeActualTotal(*ex, records, period),
	}

	result, err := mcp.NewToolResultJSON(out)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDataStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.GetDataStats(ctx)
	if err != nil {
		h.log.Error("mcp get_data_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) importShare(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bundle, err := req.RequireString("bundle")
	if err != nil {
		return mcp.NewToolResultError("bundle parameter is required"), nil
	}

	var env models.ShareEnvelope
	if err := json.Unmarshal([]byte(bundle), &env); err != nil {
		return mcp.NewToolResultError("invalid bundle JSON: " + err.Error()), nil
	}

	if errs := share.Validate(&env); len(errs) > 0 {
		out, err := mcp.NewToolResultJSON(map[string]any{"valid": false, "errors": errs})
		if err != nil {
			return mcp.NewToolResultError("serialization failed"), nil
		}
		return out, nil
	}

	if req.GetBool("validate_only", false) {
		out, err := mcp.NewToolResultJSON(map[string]any{"valid": true, "errors": []string{}})
		if err != nil {
			return mcp.NewToolResultError("serialization failed"), nil
		}
		return out, nil
	}

	report, err := h.ds.ImportShare(ctx, &env)
	if err != nil {
		h.log.Error("mcp import_share", "error", err)
		return mcp.NewToolResultError("import failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(report)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// resolveExercise reads the exercise/type parameters and looks the exercise
// up. The second return value is non-nil when resolution failed and holds
// the error result to return to the client.
func (h *handlers) resolveExercise(ctx context.Context, req mcp.CallToolRequest) (*models.ExerciseRow, *mcp.CallToolResult) {
	name, err := req.RequireString("exercise")
	if err != nil {
		return nil, mcp.NewToolResultError("exercise parameter is required")
	}
	typStr, err := req.RequireString("type")
	if err != nil {
		return nil, mcp.NewToolResultError("type parameter is required")
	}
	typ := models.ExerciseType(typStr)
	if !typ.Valid() {
		return nil, mcp.NewToolResultError("invalid type: " + typStr)
	}

	ex, err := h.ds.GetExerciseByKey(ctx, models.ExerciseKey{Name: name, Type: typ})
	if err != nil {
		h.log.Error("mcp exercise lookup", "error", err)
		return nil, mcp.NewToolResultError("query failed: " + err.Error())
	}
	if ex == nil {
		return nil, mcp.NewToolResultError("exercise not found: " + name + " (" + typStr + ")")
	}
	return ex, nil
}

// lastNDays keeps records whose date falls in the trailing window of n
// calendar days ending today. Dates are YYYY-MM-DD so a string compare
// against the cutoff is a date compare.
func lastNDays(records []models.TrainingRecordRow, n int) []models.TrainingRecordRow {
	cutoff := time.Now().UTC().AddDate(0, 0, -(n - 1)).Format("2006-01-02")
	var out []models.TrainingRecordRow
	for _, r := range records {
		if r.Date >= cutoff {
			out = append(out, r)
		}
	}
	return out
}
