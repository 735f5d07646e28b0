package models

import (
	"time"

	"github.com/google/uuid"
)

// DropSet is an extra back-off mini-set performed immediately after the
// working set.
type DropSet struct {
	WeightKg *float64 `json:"weight_kg,omitempty"`
	Reps     int      `json:"reps"`
}

// RestPause is a short-rest continuation cluster after the working set.
type RestPause struct {
	Reps int `json:"reps"`
}

// LoggedSet is one set, either logged (completed) or planned. Optional
// fields are pointers; the engine substitutes documented defaults for
// missing values. Warmup sets are excluded from all fatigue accumulation.
type LoggedSet struct {
	WeightKg      *float64    `json:"weight_kg,omitempty"`
	CompletedReps *int        `json:"completed_reps,omitempty"`
	TargetReps    *int        `json:"target_reps,omitempty"`
	CompletedRPE  *float64    `json:"completed_rpe,omitempty"`
	TargetRPE     *float64    `json:"target_rpe,omitempty"`
	CompletedRIR  *float64    `json:"completed_rir,omitempty"`
	TargetRIR     *float64    `json:"target_rir,omitempty"`
	IsFailure     bool        `json:"is_failure,omitempty"`
	IsAmrap       bool        `json:"is_amrap,omitempty"`
	DropSets      []DropSet   `json:"drop_sets,omitempty"`
	RestPauses    []RestPause `json:"rest_pauses,omitempty"`
	PartialReps   int         `json:"partial_reps,omitempty"`
	IsWarmup      bool        `json:"is_warmup,omitempty"`
}

// LoggedExercise groups the ordered sets of one exercise in a session.
// ExerciseDBID is an optional reference into the exercise database;
// resolution falls back to name matching.
type LoggedExercise struct {
	ExerciseDBID string      `json:"exercise_db_id,omitempty"`
	Name         string      `json:"name"`
	RestSeconds  *int        `json:"rest_seconds,omitempty"`
	Sets         []LoggedSet `json:"sets"`
}

// Session is a workout being authored or predicted: an ordered sequence
// of exercises. Mutable while planned, immutable once logged.
type Session struct {
	Name      string           `json:"name,omitempty"`
	Exercises []LoggedExercise `json:"exercises"`
}

// WorkoutLog is a completed, immutable session record. MuscleBatteries
// carries optional self-reported per-muscle battery snapshots (0-100)
// taken around the session, used for the retroactive override blend.
type WorkoutLog struct {
	ID              uuid.UUID          `json:"id"`
	Name            string             `json:"name"`
	Date            time.Time          `json:"date"`
	DurationSec     float64            `json:"duration_sec,omitempty"`
	Exercises       []LoggedExercise   `json:"exercises"`
	Discomforts     []string           `json:"discomforts,omitempty"`
	MuscleBatteries map[string]float64 `json:"muscle_batteries,omitempty"`
}
