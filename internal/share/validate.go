package share

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/meltforce/repshare/internal/models"
)

// MaxNameLength is the longest accepted entity name, in runes.
const MaxNameLength = 100

// Validate checks a parsed share envelope against the structural and
// referential rules of the share format. It returns an ordered list of
// human-readable error messages; an empty list means the bundle is valid.
//
// Only the two envelope checks are fatal: an unsupported formatVersion or a
// wrong exportType yields a single error and no further checking. All other
// problems are accumulated, one message per finding, each prefixed with a
// locator like "exercises[2]" or "programs[0].loops[1]" pointing at the
// offending entry in declaration order.
func Validate(env *models.ShareEnvelope) []string {
	if env.FormatVersion > models.ShareFormatVersion {
		return []string{fmt.Sprintf(
			"unsupported format version %d (this version understands up to %d)",
			env.FormatVersion, models.ShareFormatVersion)}
	}
	if env.ExportType != models.ShareExportType {
		return []string{fmt.Sprintf("unexpected export type %q (want %q)",
			env.ExportType, models.ShareExportType)}
	}

	var errs []string
	data := &env.Data

	groupNames := make(map[string]bool, len(data.Groups))
	for i, g := range data.Groups {
		checkName(&errs, fmt.Sprintf("groups[%d]", i), g.Name)
		groupNames[g.Name] = true
	}

	// The key set is built from every exercise, valid or not, so that later
	// reference checks do not cascade errors onto entities that point at a
	// flawed but present exercise. First occurrence wins on duplicates.
	exerciseKeys := make(map[models.ExerciseKey]bool, len(data.Exercises))
	for i, ex := range data.Exercises {
		loc := fmt.Sprintf("exercises[%d]", i)
		checkName(&errs, loc, ex.Name)
		if !ex.Type.Valid() {
			errs = append(errs, fmt.Sprintf("%s: invalid type %q", loc, ex.Type))
		}
		if !ex.Laterality.Valid() {
			errs = append(errs, fmt.Sprintf("%s: invalid laterality %q", loc, ex.Laterality))
		}
		checkOptionalRange(&errs, loc, "targetSets", ex.TargetSets, 1, 999)
		checkOptionalRange(&errs, loc, "targetValue", ex.TargetValue, 1, 999)
		checkOptionalRange(&errs, loc, "restInterval", ex.RestInterval, 1, 999)
		checkOptionalRange(&errs, loc, "repDuration", ex.RepDuration, 1, 999)
		if ex.Group != "" && !groupNames[ex.Group] {
			errs = append(errs, fmt.Sprintf("%s: unknown group %q", loc, ex.Group))
		}
		if exerciseKeys[ex.Key()] {
			errs = append(errs, fmt.Sprintf("%s: duplicate exercise %s", loc, ex.Key()))
		} else {
			exerciseKeys[ex.Key()] = true
		}
	}

	programNames := make(map[string]bool, len(data.Programs))
	for i, p := range data.Programs {
		loc := fmt.Sprintf("programs[%d]", i)
		checkName(&errs, loc, p.Name)
		if programNames[p.Name] {
			errs = append(errs, fmt.Sprintf("%s: duplicate program name %q", loc, p.Name))
		} else {
			programNames[p.Name] = true
		}

		loopIDs := make(map[int]bool, len(p.Loops))
		for j, loop := range p.Loops {
			loopLoc := fmt.Sprintf("%s.loops[%d]", loc, j)
			if loopIDs[loop.ID] {
				errs = append(errs, fmt.Sprintf("%s: duplicate loop id %d", loopLoc, loop.ID))
			} else {
				loopIDs[loop.ID] = true
			}
			checkRange(&errs, loopLoc, "rounds", loop.Rounds, 1, 999)
			checkRange(&errs, loopLoc, "restBetweenRounds", loop.RestBetweenRounds, 0, 999)
		}

		for j, pe := range p.Exercises {
			exLoc := fmt.Sprintf("%s.exercises[%d]", loc, j)
			if !exerciseKeys[pe.Key()] {
				errs = append(errs, fmt.Sprintf("%s: unknown exercise %s", exLoc, pe.Key()))
			}
			checkRange(&errs, exLoc, "sets", pe.Sets, 1, 999)
			checkRange(&errs, exLoc, "targetValue", pe.TargetValue, 0, 999)
			checkRange(&errs, exLoc, "intervalSeconds", pe.IntervalSeconds, 0, 999)
			if pe.LoopID != nil && !loopIDs[*pe.LoopID] {
				errs = append(errs, fmt.Sprintf("%s: loopId %d is not defined in this program", exLoc, *pe.LoopID))
			}
		}
	}

	intervalNames := make(map[string]bool, len(data.IntervalPrograms))
	for i, ip := range data.IntervalPrograms {
		loc := fmt.Sprintf("intervalPrograms[%d]", i)
		checkName(&errs, loc, ip.Name)
		if intervalNames[ip.Name] {
			errs = append(errs, fmt.Sprintf("%s: duplicate interval program name %q", loc, ip.Name))
		} else {
			intervalNames[ip.Name] = true
		}
		checkRange(&errs, loc, "workSeconds", ip.WorkSeconds, 1, 999)
		checkRange(&errs, loc, "restSeconds", ip.RestSeconds, 0, 999)
		checkRange(&errs, loc, "rounds", ip.Rounds, 1, 999)
		checkRange(&errs, loc, "roundRestSeconds", ip.RoundRestSeconds, 0, 999)

		for j, ie := range ip.Exercises {
			exLoc := fmt.Sprintf("%s.exercises[%d]", loc, j)
			if !exerciseKeys[ie.Key()] {
				errs = append(errs, fmt.Sprintf("%s: unknown exercise %s", exLoc, ie.Key()))
			}
		}
	}

	return errs
}

func checkName(errs *[]string, loc, name string) {
	if strings.TrimSpace(name) == "" {
		*errs = append(*errs, loc+": name must not be blank")
		return
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		*errs = append(*errs, fmt.Sprintf("%s: name exceeds %d characters", loc, MaxNameLength))
	}
}

func checkRange(errs *[]string, loc, field string, v, lo, hi int) {
	if v < lo || v > hi {
		*errs = append(*errs, fmt.Sprintf("%s: %s must be between %d and %d", loc, field, lo, hi))
	}
}

func checkOptionalRange(errs *[]string, loc, field string, v *int, lo, hi int) {
	if v != nil {
		checkRange(errs, loc, field, *v, lo, hi)
	}
}
