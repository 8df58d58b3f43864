package csvio

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/meltforce/repshare/internal/models"
)

// ExportGroups serializes all stored groups in import column order.
func (e *Engine) ExportGroups(ctx context.Context) (string, error) {
	groups, err := e.store.ListGroups(ctx)
	if err != nil {
		return "", fmt.Errorf("listing groups: %w", err)
	}

	var b strings.Builder
	b.WriteString("name\n")
	for _, g := range groups {
		b.WriteString(g.Name)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// ExportExercises serializes all stored exercises in import column order.
// Absent optional numerics render empty; booleans render as true/false.
func (e *Engine) ExportExercises(ctx context.Context) (string, error) {
	groups, err := e.store.ListGroups(ctx)
	if err != nil {
		return "", fmt.Errorf("listing groups: %w", err)
	}
	groupNames := make(map[int64]string, len(groups))
	for _, g := range groups {
		groupNames[g.ID] = g.Name
	}

	exercises, err := e.store.ListExercises(ctx)
	if err != nil {
		return "", fmt.Errorf("listing exercises: %w", err)
	}

	var b strings.Builder
	b.WriteString("name,type,group,sortOrder,laterality,targetSets,targetValue,isFavorite\n")
	for _, ex := range exercises {
		group := ""
		if ex.GroupID != nil {
			group = groupNames[*ex.GroupID]
		}
		b.WriteString(strings.Join([]string{
			ex.Name,
			string(ex.Type),
			group,
			strconv.Itoa(ex.SortOrder),
			string(ex.Laterality),
			optionalIntField(ex.TargetSets),
			optionalIntField(ex.TargetValue),
			strconv.FormatBool(ex.IsFavorite),
		}, ","))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// ExportRecords serializes all stored training records in import column
// order, resolving each record's exercise back to its (name, type) pair.
func (e *Engine) ExportRecords(ctx context.Context) (string, error) {
	exercises, err := e.store.ListExercises(ctx)
	if err != nil {
		return "", fmt.Errorf("listing exercises: %w", err)
	}
	keys := make(map[int64]models.ExerciseKey, len(exercises))
	for _, ex := range exercises {
		keys[ex.ID] = ex.Key()
	}

	records, err := e.store.ListTrainingRecords(ctx)
	if err != nil {
		return "", fmt.Errorf("listing records: %w", err)
	}

	var b strings.Builder
	b.WriteString("exerciseName,exerciseType,date,time,setNumber,valueRight,valueLeft,comment\n")
	for _, r := range records {
		key, ok := keys[r.ExerciseID]
		if !ok {
			continue // orphaned record, nothing to name it by
		}
		b.WriteString(strings.Join([]string{
			key.Name,
			string(key.Type),
			r.Date,
			r.Time,
			strconv.Itoa(r.SetNumber),
			strconv.Itoa(r.ValueRight),
			optionalIntField(r.ValueLeft),
			r.Comment,
		}, ","))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func optionalIntField(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
