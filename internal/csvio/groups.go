package csvio

import (
	"context"
	"errors"
	"fmt"

	"github.com/meltforce/repshare/internal/models"
)

// ImportGroups imports a one-column CSV of group names. Existing names are
// skipped; empty names are errors.
func (e *Engine) ImportGroups(ctx context.Context, text string) (*Report, error) {
	report := &Report{}

	for i, line := range dataLines(text) {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		name := splitFields(line)[0]
		if name == "" {
			report.fail(fmt.Sprintf("Line %d: group name is empty", lineNumber(i)))
			continue
		}

		existing, err := e.store.GetGroupByName(ctx, name)
		if err != nil {
			report.fail(fmt.Sprintf("Line %d: %v", lineNumber(i), err))
			continue
		}
		if existing != nil {
			report.skip(fmt.Sprintf("%q (already exists)", name))
			continue
		}

		_, err = e.store.InsertGroup(ctx, name)
		if errors.Is(err, models.ErrAlreadyExists) {
			report.skip(fmt.Sprintf("%q (already exists)", name))
			continue
		}
		if err != nil {
			report.fail(fmt.Sprintf("Line %d: %v", lineNumber(i), err))
			continue
		}
		report.SuccessCount++
	}

	e.log.Info("group csv import finished",
		"success", report.SuccessCount, "skipped", report.SkippedCount, "errors", report.ErrorCount)
	return report, nil
}
