// ABOUTME: Workout, Exercise and Set models for strength training sessions.
// ABOUTME: Sets are embedded in exercises and addressed by position only.
package models

import "time"

// Workout is a dated training session owned by a user.
type Workout struct {
	ID         string    `json:"_id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	User       string    `json:"user" yaml:"user"`
	Date       string    `json:"date" yaml:"date"`
	TemplateID *string   `json:"template,omitempty" yaml:"template,omitempty"`
	CreatedAt  time.Time `json:"createdAt" yaml:"created_at"`
}

// NewWorkout creates a Workout for the given user on the given date (YYYY-MM-DD).
func NewWorkout(userID, name, date string) *Workout {
	return &Workout{
		Name:      name,
		User:      userID,
		Date:      date,
		CreatedAt: time.Now(),
	}
}

// WithTemplate records the template the workout was scheduled from.
func (w *Workout) WithTemplate(templateID string) *Workout {
	w.TemplateID = &templateID
	return w
}

// Exercise is a named movement performed within a workout.
type Exercise struct {
	ID      string `json:"_id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Workout string `json:"workout" yaml:"workout"`
	Sets    []Set  `json:"sets" yaml:"sets"`
}

// NewExercise creates an Exercise in the given workout. The sets slice is copied.
func NewExercise(workoutID, name string, sets []Set) *Exercise {
	return &Exercise{
		Name:    name,
		Workout: workoutID,
		Sets:    CloneSets(sets),
	}
}

// Set is one round of an exercise.
type Set struct {
	Weight float64 `json:"weight" yaml:"weight"`
	Reps   int     `json:"reps" yaml:"reps"`
	RIR    int     `json:"rir" yaml:"rir"`
}

// CloneSets returns an independent copy of sets, never nil.
func CloneSets(sets []Set) []Set {
	out := make([]Set, len(sets))
	copy(out, sets)
	return out
}
