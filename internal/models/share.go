package models

import "fmt"

// ShareFormatVersion is the highest share envelope version this build understands.
const ShareFormatVersion = 1

// ShareExportType is the only export_type accepted for community share bundles.
const ShareExportType = "share"

// ExerciseType distinguishes rep-counted from duration-held exercises.
type ExerciseType string

const (
	ExerciseTypeDynamic   ExerciseType = "Dynamic"
	ExerciseTypeIsometric ExerciseType = "Isometric"
)

// Valid reports whether t is a known exercise type.
func (t ExerciseType) Valid() bool {
	return t == ExerciseTypeDynamic || t == ExerciseTypeIsometric
}

// Laterality is whether an exercise is tracked as one combined value
// (Bilateral) or independently per side (Unilateral).
type Laterality string

const (
	LateralityBilateral  Laterality = "Bilateral"
	LateralityUnilateral Laterality = "Unilateral"
)

// Valid reports whether l is a known laterality.
func (l Laterality) Valid() bool {
	return l == LateralityBilateral || l == LateralityUnilateral
}

// ShareEnvelope is the top-level wire object of an exported share bundle.
type ShareEnvelope struct {
	FormatVersion int          `json:"formatVersion"`
	ExportType    string       `json:"exportType"`
	ExportDate    string       `json:"exportDate"`
	ExportID      string       `json:"exportId"`
	AppVersion    string       `json:"appVersion"`
	Data          ShareContent `json:"data"`
}

// ShareContent is the portable payload of a share bundle: groups, exercises,
// programs, and interval programs, in declaration order.
type ShareContent struct {
	Groups           []ShareGroup           `json:"groups"`
	Exercises        []ShareExercise        `json:"exercises"`
	Programs         []ShareProgram         `json:"programs"`
	IntervalPrograms []ShareIntervalProgram `json:"intervalPrograms"`
}

// ShareGroup is an exercise group inside a bundle.
type ShareGroup struct {
	Name string `json:"name"`
}

// ShareExercise is an exercise definition inside a bundle. Identity within
// the bundle (and against the store) is the (Name, Type) pair.
type ShareExercise struct {
	Name               string       `json:"name"`
	Type               ExerciseType `json:"type"`
	Group              string       `json:"group,omitempty"`
	SortOrder          int          `json:"sortOrder"`
	Laterality         Laterality   `json:"laterality"`
	TargetSets         *int         `json:"targetSets,omitempty"`
	TargetValue        *int         `json:"targetValue,omitempty"`
	RestInterval       *int         `json:"restInterval,omitempty"`
	RepDuration        *int         `json:"repDuration,omitempty"`
	DistanceTracking   bool         `json:"distanceTrackingEnabled"`
	WeightTracking     bool         `json:"weightTrackingEnabled"`
	AssistanceTracking bool         `json:"assistanceTrackingEnabled"`
	Description        string       `json:"description,omitempty"`
}

// Key returns the exercise's bundle identity.
func (e ShareExercise) Key() ExerciseKey {
	return ExerciseKey{Name: e.Name, Type: e.Type}
}

// ExerciseKey is the composite identity of an exercise.
type ExerciseKey struct {
	Name string
	Type ExerciseType
}

func (k ExerciseKey) String() string {
	return fmt.Sprintf("%q (%s)", k.Name, k.Type)
}

// ShareProgram is a workout program inside a bundle. Program names are
// unique within the bundle; loop ids are unique within the program.
type ShareProgram struct {
	Name      string                 `json:"name"`
	Exercises []ShareProgramExercise `json:"exercises"`
	Loops     []ShareProgramLoop     `json:"loops,omitempty"`
}

// ShareProgramExercise is one exercise slot of a program. It references an
// exercise by (name, type) and optionally a loop of the same program by id.
type ShareProgramExercise struct {
	ExerciseName    string       `json:"exerciseName"`
	ExerciseType    ExerciseType `json:"exerciseType"`
	SortOrder       int          `json:"sortOrder"`
	Sets            int          `json:"sets"`
	TargetValue     int          `json:"targetValue"`
	IntervalSeconds int          `json:"intervalSeconds"`
	LoopID          *int         `json:"loopId,omitempty"`
}

// Key returns the referenced exercise identity.
func (e ShareProgramExercise) Key() ExerciseKey {
	return ExerciseKey{Name: e.ExerciseName, Type: e.ExerciseType}
}

// ShareProgramLoop is a repeat block inside a program.
type ShareProgramLoop struct {
	ID                int `json:"id"`
	SortOrder         int `json:"sortOrder"`
	Rounds            int `json:"rounds"`
	RestBetweenRounds int `json:"restBetweenRounds"`
}

// ShareIntervalProgram is a timed interval program inside a bundle.
type ShareIntervalProgram struct {
	Name             string                  `json:"name"`
	WorkSeconds      int                     `json:"workSeconds"`
	RestSeconds      int                     `json:"restSeconds"`
	Rounds           int                     `json:"rounds"`
	RoundRestSeconds int                     `json:"roundRestSeconds"`
	Exercises        []ShareIntervalExercise `json:"exercises"`
}

// ShareIntervalExercise is one exercise slot of an interval program.
type ShareIntervalExercise struct {
	ExerciseName string       `json:"exerciseName"`
	ExerciseType ExerciseType `json:"exerciseType"`
	SortOrder    int          `json:"sortOrder"`
}

// Key returns the referenced exercise identity.
func (e ShareIntervalExercise) Key() ExerciseKey {
	return ExerciseKey{Name: e.ExerciseName, Type: e.ExerciseType}
}
