package csvio

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/meltforce/repshare/internal/models"
)

// recordColumns is the column layout of a training record CSV:
// exerciseName,exerciseType,date,time,setNumber,valueRight,valueLeft,comment.
// The trailing comment column may be omitted.
const recordColumns = 8

// recordKey identifies a training record for duplicate detection.
type recordKey struct {
	exerciseID int64
	date       string
	timeOfDay  string
	setNumber  int
}

// ImportRecords imports a training record CSV. Rows must reference an
// exercise that already exists in the store. A record whose
// (exercise, date, time, set) is already stored, or appeared earlier in
// the same batch, is skipped.
func (e *Engine) ImportRecords(ctx context.Context, text string) (*Report, error) {
	report := &Report{}
	inserted := make(map[recordKey]bool)

	for i, line := range dataLines(text) {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		no := lineNumber(i)

		fields := splitFields(line)
		if len(fields) < recordColumns-1 {
			report.fail(fmt.Sprintf("Line %d: invalid format (expected %d columns, got %d)", no, recordColumns, len(fields)))
			continue
		}

		name, typStr, date, timeOfDay := fields[0], fields[1], fields[2], fields[3]
		if name == "" || typStr == "" || date == "" || timeOfDay == "" || fields[4] == "" || fields[5] == "" {
			report.fail(fmt.Sprintf("Line %d: missing required field", no))
			continue
		}

		typ := models.ExerciseType(typStr)
		if !typ.Valid() {
			report.fail(fmt.Sprintf("Line %d: invalid type %q", no, typStr))
			continue
		}

		exercise, err := e.store.GetExerciseByKey(ctx, models.ExerciseKey{Name: name, Type: typ})
		if err != nil {
			report.fail(fmt.Sprintf("Line %d: %v", no, err))
			continue
		}
		if exercise == nil {
			report.fail(fmt.Sprintf("Line %d: Exercise not found: %q (%s)", no, name, typ))
			continue
		}

		setNumber, err := strconv.Atoi(fields[4])
		if err != nil {
			report.fail(fmt.Sprintf("Line %d: invalid setNumber %q", no, fields[4]))
			continue
		}
		valueRight, err := strconv.Atoi(fields[5])
		if err != nil {
			report.fail(fmt.Sprintf("Line %d: invalid valueRight %q", no, fields[5]))
			continue
		}

		var valueLeft *int
		if fields[6] != "" {
			v, err := strconv.Atoi(fields[6])
			if err != nil {
				report.fail(fmt.Sprintf("Line %d: invalid valueLeft %q", no, fields[6]))
				continue
			}
			valueLeft = &v
		}

		comment := ""
		if len(fields) >= recordColumns {
			comment = fields[7]
		}

		key := recordKey{exerciseID: exercise.ID, date: date, timeOfDay: timeOfDay, setNumber: setNumber}
		dup := inserted[key]
		if !dup {
			dup, err = e.store.TrainingRecordExists(ctx, exercise.ID, date, timeOfDay, setNumber)
			if err != nil {
				report.fail(fmt.Sprintf("Line %d: %v", no, err))
				continue
			}
		}
		if dup {
			report.skip(fmt.Sprintf("%q %s %s set %d (already exists)", name, date, timeOfDay, setNumber))
			continue
		}

		_, err = e.store.InsertTrainingRecord(ctx, models.TrainingRecordRow{
			ExerciseID: exercise.ID,
			Date:       date,
			Time:       timeOfDay,
			SetNumber:  setNumber,
			ValueRight: valueRight,
			ValueLeft:  valueLeft,
			Comment:    comment,
		})
		if errors.Is(err, models.ErrAlreadyExists) {
			report.skip(fmt.Sprintf("%q %s %s set %d (already exists)", name, date, timeOfDay, setNumber))
			continue
		}
		if err != nil {
			report.fail(fmt.Sprintf("Line %d: %v", no, err))
			continue
		}
		inserted[key] = true
		report.SuccessCount++
	}

	e.log.Info("record csv import finished",
		"success", report.SuccessCount, "skipped", report.SkippedCount, "errors", report.ErrorCount)
	return report, nil
}
