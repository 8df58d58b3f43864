package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/repshare/internal/challenge"
)

// challengeSummaryPeriodDays is the evaluation window for the
// challenge_summary resource.
const challengeSummaryPeriodDays = 30

func (h *handlers) challengeSummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	exercises, err := h.ds.ListExercises(ctx)
	if err != nil {
		return nil, err
	}

	var entries []map[string]any
	for _, ex := range exercises {
		if !ex.HasChallenge() {
			continue
		}
		records, err := h.ds.ListTrainingRecordsByExercise(ctx, ex.ID)
		if err != nil {
			h.log.Warn("challenge_summary: records query failed", "exercise", ex.Name, "error", err)
			continue
		}
		entries = append(entries, map[string]any{
			"exercise":     ex.Name,
			"type":         ex.Type,
			"result":       challenge.ComputeStatus(ex, records, challengeSummaryPeriodDays),
			"actual_total": challenge.ComputeActualTotal(ex, records, challengeSummaryPeriodDays),
		})
	}

	summary := map[string]any{
		"date":        time.Now().UTC().Format("2006-01-02"),
		"period_days": challengeSummaryPeriodDays,
		"challenges":  entries,
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) recentRecords(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	records, err := h.ds.ListTrainingRecords(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(lastNDays(records, 14))
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
