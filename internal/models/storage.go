package models

// GroupRow is a row of the exercise_groups table.
type GroupRow struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ExerciseRow is a row of the exercises table. (Name, Type) is unique.
type ExerciseRow struct {
	ID                 int64        `json:"id"`
	Name               string       `json:"name"`
	Type               ExerciseType `json:"type"`
	GroupID            *int64       `json:"group_id,omitempty"`
	SortOrder          int          `json:"sort_order"`
	Laterality         Laterality   `json:"laterality"`
	IsFavorite         bool         `json:"is_favorite"`
	TargetSets         *int         `json:"target_sets,omitempty"`
	TargetValue        *int         `json:"target_value,omitempty"`
	RestInterval       *int         `json:"rest_interval,omitempty"`
	RepDuration        *int         `json:"rep_duration,omitempty"`
	DistanceTracking   bool         `json:"distance_tracking_enabled"`
	WeightTracking     bool         `json:"weight_tracking_enabled"`
	AssistanceTracking bool         `json:"assistance_tracking_enabled"`
	Description        string       `json:"description,omitempty"`
}

// Key returns the exercise's (name, type) identity.
func (e ExerciseRow) Key() ExerciseKey {
	return ExerciseKey{Name: e.Name, Type: e.Type}
}

// HasChallenge reports whether a challenge target is configured.
func (e ExerciseRow) HasChallenge() bool {
	return e.TargetSets != nil && e.TargetValue != nil
}

// TrainingRecordRow is a row of the training_records table. Date is
// "YYYY-MM-DD" and Time is "HH:MM"; all records sharing
// (ExerciseID, Date, Time) form one session. ValueLeft is set only for
// unilateral exercises.
type TrainingRecordRow struct {
	ID         int64  `json:"id"`
	ExerciseID int64  `json:"exercise_id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	SetNumber  int    `json:"set_number"`
	ValueRight int    `json:"value_right"`
	ValueLeft  *int   `json:"value_left,omitempty"`
	Comment    string `json:"comment,omitempty"`
}

// SessionKey is the grouping key "date-time" used for session aggregation.
// It sorts chronologically because the date is ISO and the time is HH:MM.
func (r TrainingRecordRow) SessionKey() string {
	return r.Date + "-" + r.Time
}

// ProgramRow is a row of the programs table. Name is unique.
type ProgramRow struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProgramLoopRow is a row of the program_loops table. LoopNumber is the
// bundle-facing loop id, unique within the program.
type ProgramLoopRow struct {
	ID                int64 `json:"id"`
	ProgramID         int64 `json:"program_id"`
	LoopNumber        int   `json:"loop_number"`
	SortOrder         int   `json:"sort_order"`
	Rounds            int   `json:"rounds"`
	RestBetweenRounds int   `json:"rest_between_rounds"`
}

// ProgramExerciseRow is a row of the program_exercises table.
type ProgramExerciseRow struct {
	ID              int64  `json:"id"`
	ProgramID       int64  `json:"program_id"`
	ExerciseID      int64  `json:"exercise_id"`
	SortOrder       int    `json:"sort_order"`
	Sets            int    `json:"sets"`
	TargetValue     int    `json:"target_value"`
	IntervalSeconds int    `json:"interval_seconds"`
	LoopID          *int64 `json:"loop_id,omitempty"`
}

// IntervalProgramRow is a row of the interval_programs table. Name is unique.
type IntervalProgramRow struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	WorkSeconds      int    `json:"work_seconds"`
	RestSeconds      int    `json:"rest_seconds"`
	Rounds           int    `json:"rounds"`
	RoundRestSeconds int    `json:"round_rest_seconds"`
}

// IntervalProgramExerciseRow is a row of the interval_program_exercises table.
type IntervalProgramExerciseRow struct {
	ID                int64 `json:"id"`
	IntervalProgramID int64 `json:"interval_program_id"`
	ExerciseID        int64 `json:"exercise_id"`
	SortOrder         int   `json:"sort_order"`
}
