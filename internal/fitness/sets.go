// ABOUTME: Positional set operations on exercises.
// ABOUTME: Sets are addressed by index and saved by rewriting the parent exercise.
package fitness

import (
	"context"

	"github.com/harperreed/fittrack/internal/models"
)

// SetPatch lists editable set fields.
type SetPatch struct {
	Weight *float64
	Reps   *int
	RIR    *int
}

// IsEmpty reports whether no field is set.
func (p SetPatch) IsEmpty() bool {
	return p.Weight == nil && p.Reps == nil && p.RIR == nil
}

func (p SetPatch) validate() error {
	if p.IsEmpty() {
		return badInput("No fields provided to update.")
	}
	if p.Weight != nil {
		if err := requirePositive("Weight", *p.Weight); err != nil {
			return err
		}
	}
	if p.Reps != nil {
		if err := requirePositiveInt("Reps", *p.Reps); err != nil {
			return err
		}
	}
	if p.RIR != nil {
		if err := requireNonNegativeInt("RIR", *p.RIR); err != nil {
			return err
		}
	}
	return nil
}

func (p SetPatch) apply(set *models.Set) {
	if p.Weight != nil {
		set.Weight = *p.Weight
	}
	if p.Reps != nil {
		set.Reps = *p.Reps
	}
	if p.RIR != nil {
		set.RIR = *p.RIR
	}
}

// removeAt returns items without the element at i. The input slice is not modified.
func removeAt[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

// AddSet appends a set to the exercise.
func (s *Service) AddSet(ctx context.Context, rawExerciseID string, set models.Set) (*models.Exercise, error) {
	id, err := requireID(kindExercise, rawExerciseID)
	if err != nil {
		return nil, err
	}
	if err := validateSet(set); err != nil {
		return nil, err
	}

	e, err := load(ctx, s.exercises, kindExercise, id)
	if err != nil {
		return nil, err
	}
	e.Sets = append(e.Sets, set)
	return s.saveExercise(ctx, e)
}

// EditSet updates the set at index.
func (s *Service) EditSet(ctx context.Context, rawExerciseID string, index int, patch SetPatch) (*models.Exercise, error) {
	id, err := requireID(kindExercise, rawExerciseID)
	if err != nil {
		return nil, err
	}
	if err := patch.validate(); err != nil {
		return nil, err
	}

	e, err := load(ctx, s.exercises, kindExercise, id)
	if err != nil {
		return nil, err
	}
	if err := checkIndex("Set", index, len(e.Sets)); err != nil {
		return nil, err
	}
	patch.apply(&e.Sets[index])
	return s.saveExercise(ctx, e)
}

// RemoveSet deletes the set at index.
func (s *Service) RemoveSet(ctx context.Context, rawExerciseID string, index int) (*models.Exercise, error) {
	id, err := requireID(kindExercise, rawExerciseID)
	if err != nil {
		return nil, err
	}

	e, err := load(ctx, s.exercises, kindExercise, id)
	if err != nil {
		return nil, err
	}
	if err := checkIndex("Set", index, len(e.Sets)); err != nil {
		return nil, err
	}
	e.Sets = removeAt(e.Sets, index)
	return s.saveExercise(ctx, e)
}
