// ABOUTME: WorkoutRoutine model describing a weekly training split.
// ABOUTME: Routines hold ordered days, each with ordered exercises.
package models

// WorkoutRoutine is a user's named training split.
type WorkoutRoutine struct {
	ID          string       `json:"_id" yaml:"id"`
	User        string       `json:"user" yaml:"user"`
	RoutineName string       `json:"routineName" yaml:"routine_name"`
	Days        []RoutineDay `json:"days" yaml:"days"`
}

// RoutineDay is one training day within a routine.
type RoutineDay struct {
	Name      string            `json:"name" yaml:"name"`
	Exercises []RoutineExercise `json:"exercises" yaml:"exercises"`
}

// RoutineExercise is a planned exercise with a target set count.
// Reps, Weight and RIR hold optional per-set logged values.
type RoutineExercise struct {
	Name    string    `json:"name" yaml:"name"`
	Sets    int       `json:"sets" yaml:"sets"`
	Muscles []string  `json:"muscles" yaml:"muscles"`
	Reps    []int     `json:"reps,omitempty" yaml:"reps,omitempty"`
	Weight  []float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
	RIR     []int     `json:"rir,omitempty" yaml:"rir,omitempty"`
}
