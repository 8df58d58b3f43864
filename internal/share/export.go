package share

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/repshare/internal/models"
)

// Export builds a share envelope from everything in the store. The result
// passes Validate and can be re-imported elsewhere; re-importing it into
// the same store is a no-op apart from reuse/skip counts.
func Export(ctx context.Context, store Store, appVersion string) (*models.ShareEnvelope, error) {
	groups, err := store.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	groupNames := make(map[int64]string, len(groups))
	content := models.ShareContent{}
	for _, g := range groups {
		groupNames[g.ID] = g.Name
		content.Groups = append(content.Groups, models.ShareGroup{Name: g.Name})
	}

	exercises, err := store.ListExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing exercises: %w", err)
	}
	exerciseKeys := make(map[int64]models.ExerciseKey, len(exercises))
	for _, ex := range exercises {
		exerciseKeys[ex.ID] = ex.Key()
		se := models.ShareExercise{
			Name:               ex.Name,
			Type:               ex.Type,
			SortOrder:          ex.SortOrder,
			Laterality:         ex.Laterality,
			TargetSets:         ex.TargetSets,
			TargetValue:        ex.TargetValue,
			RestInterval:       ex.RestInterval,
			RepDuration:        ex.RepDuration,
			DistanceTracking:   ex.DistanceTracking,
			WeightTracking:     ex.WeightTracking,
			AssistanceTracking: ex.AssistanceTracking,
			Description:        ex.Description,
		}
		if ex.GroupID != nil {
			se.Group = groupNames[*ex.GroupID]
		}
		content.Exercises = append(content.Exercises, se)
	}

	programs, err := store.ListPrograms(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing programs: %w", err)
	}
	for _, p := range programs {
		sp, err := exportProgram(ctx, store, p, exerciseKeys)
		if err != nil {
			return nil, fmt.Errorf("program %q: %w", p.Name, err)
		}
		content.Programs = append(content.Programs, *sp)
	}

	intervals, err := store.ListIntervalPrograms(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing interval programs: %w", err)
	}
	for _, ip := range intervals {
		rows, err := store.ListIntervalProgramExercises(ctx, ip.ID)
		if err != nil {
			return nil, fmt.Errorf("interval program %q: %w", ip.Name, err)
		}
		sip := models.ShareIntervalProgram{
			Name:             ip.Name,
			WorkSeconds:      ip.WorkSeconds,
			RestSeconds:      ip.RestSeconds,
			Rounds:           ip.Rounds,
			RoundRestSeconds: ip.RoundRestSeconds,
		}
		for _, row := range rows {
			key, ok := exerciseKeys[row.ExerciseID]
			if !ok {
				return nil, fmt.Errorf("interval program %q: exercise id %d not found", ip.Name, row.ExerciseID)
			}
			sip.Exercises = append(sip.Exercises, models.ShareIntervalExercise{
				ExerciseName: key.Name,
				ExerciseType: key.Type,
				SortOrder:    row.SortOrder,
			})
		}
		content.IntervalPrograms = append(content.IntervalPrograms, sip)
	}

	return &models.ShareEnvelope{
		FormatVersion: models.ShareFormatVersion,
		ExportType:    models.ShareExportType,
		ExportDate:    time.Now().UTC().Format(time.RFC3339),
		ExportID:      uuid.NewString(),
		AppVersion:    appVersion,
		Data:          content,
	}, nil
}

func exportProgram(ctx context.Context, store Store, p models.ProgramRow, exerciseKeys map[int64]models.ExerciseKey) (*models.ShareProgram, error) {
	sp := &models.ShareProgram{Name: p.Name}

	loops, err := store.ListProgramLoops(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	// Stored row id -> bundle-facing loop number.
	loopNumbers := make(map[int64]int, len(loops))
	for _, loop := range loops {
		loopNumbers[loop.ID] = loop.LoopNumber
		sp.Loops = append(sp.Loops, models.ShareProgramLoop{
			ID:                loop.LoopNumber,
			SortOrder:         loop.SortOrder,
			Rounds:            loop.Rounds,
			RestBetweenRounds: loop.RestBetweenRounds,
		})
	}

	rows, err := store.ListProgramExercises(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		key, ok := exerciseKeys[row.ExerciseID]
		if !ok {
			return nil, fmt.Errorf("exercise id %d not found", row.ExerciseID)
		}
		pe := models.ShareProgramExercise{
			ExerciseName:    key.Name,
			ExerciseType:    key.Type,
			SortOrder:       row.SortOrder,
			Sets:            row.Sets,
			TargetValue:     row.TargetValue,
			IntervalSeconds: row.IntervalSeconds,
		}
		if row.LoopID != nil {
			if n, ok := loopNumbers[*row.LoopID]; ok {
				loopNumber := n
				pe.LoopID = &loopNumber
			}
		}
		sp.Exercises = append(sp.Exercises, pe)
	}
	return sp, nil
}
