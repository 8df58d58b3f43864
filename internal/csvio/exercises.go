package csvio

import (
	"context"
	"errors"
	"fmt"

	"github.com/meltforce/repshare/internal/models"
)

// exerciseColumns is the column layout of an exercise CSV:
// name,type,group,sortOrder,laterality,targetSets,targetValue,isFavorite.
const exerciseColumns = 8

// ImportExercises imports an 8-column exercise CSV. Rows whose (name, type)
// already exists in the store are skipped, with a distinct message when the
// stored laterality differs from the row's. Numeric columns parse
// permissively: sortOrder falls back to 0, targetSets/targetValue become
// absent, isFavorite is the literal token "true" or false.
func (e *Engine) ImportExercises(ctx context.Context, text string) (*Report, error) {
	report := &Report{}

	for i, line := range dataLines(text) {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		no := lineNumber(i)

		fields := splitFields(line)
		if len(fields) < exerciseColumns {
			report.fail(fmt.Sprintf("Line %d: invalid format (expected %d columns, got %d)", no, exerciseColumns, len(fields)))
			continue
		}

		name := fields[0]
		typ := models.ExerciseType(fields[1])
		groupName := fields[2]
		laterality := models.Laterality(fields[4])

		if name == "" {
			report.fail(fmt.Sprintf("Line %d: exercise name is empty", no))
			continue
		}
		if fields[1] == "" {
			report.fail(fmt.Sprintf("Line %d: exercise type is empty", no))
			continue
		}
		if !typ.Valid() {
			report.fail(fmt.Sprintf("Line %d: invalid type %q", no, fields[1]))
			continue
		}
		if fields[4] == "" {
			report.fail(fmt.Sprintf("Line %d: laterality is empty", no))
			continue
		}
		if !laterality.Valid() {
			report.fail(fmt.Sprintf("Line %d: invalid laterality %q", no, fields[4]))
			continue
		}

		row := models.ExerciseRow{
			Name:        name,
			Type:        typ,
			SortOrder:   parseIntOrDefault(fields[3], 0),
			Laterality:  laterality,
			TargetSets:  parseOptionalInt(fields[5]),
			TargetValue: parseOptionalInt(fields[6]),
			IsFavorite:  parseBoolOrFalse(fields[7]),
		}

		if groupName != "" {
			group, err := e.store.GetGroupByName(ctx, groupName)
			if err != nil {
				report.fail(fmt.Sprintf("Line %d: %v", no, err))
				continue
			}
			if group == nil {
				report.fail(fmt.Sprintf("Line %d: group %q not found", no, groupName))
				continue
			}
			row.GroupID = &group.ID
		}

		existing, err := e.store.GetExerciseByKey(ctx, row.Key())
		if err != nil {
			report.fail(fmt.Sprintf("Line %d: %v", no, err))
			continue
		}
		if existing != nil {
			if existing.Laterality != laterality {
				report.skip(fmt.Sprintf("%q (laterality mismatch: existing is %s)", name, existing.Laterality))
			} else {
				report.skip(fmt.Sprintf("%q (already exists)", name))
			}
			continue
		}

		_, err = e.store.InsertExercise(ctx, row)
		if errors.Is(err, models.ErrAlreadyExists) {
			report.skip(fmt.Sprintf("%q (already exists)", name))
			continue
		}
		if err != nil {
			report.fail(fmt.Sprintf("Line %d: %v", no, err))
			continue
		}
		report.SuccessCount++
	}

	e.log.Info("exercise csv import finished",
		"success", report.SuccessCount, "skipped", report.SkippedCount, "errors", report.ErrorCount)
	return report, nil
}
