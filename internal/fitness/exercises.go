// ABOUTME: Exercise resolvers and the owning workout relationship.
// ABOUTME: Exercises hold their sets inline.
package fitness

import (
	"context"

	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/store"
)

const kindExercise = "Exercise"

// NewExerciseInput carries the fields for AddExercise.
type NewExerciseInput struct {
	WorkoutID string
	Name      string
	Sets      []models.Set
}

// ExercisePatch lists editable exercise fields. A nil Sets slice is absent.
type ExercisePatch struct {
	Name *string
	Sets []models.Set
}

// IsEmpty reports whether no field is set.
func (p ExercisePatch) IsEmpty() bool {
	return p.Name == nil && p.Sets == nil
}

// AddExercise creates an exercise in a workout.
func (s *Service) AddExercise(ctx context.Context, in NewExerciseInput) (*models.Exercise, error) {
	workoutID, err := requireID(kindWorkout, in.WorkoutID)
	if err != nil {
		return nil, err
	}
	name, err := requireText("Name", in.Name)
	if err != nil {
		return nil, err
	}
	if err := validateSets(in.Sets); err != nil {
		return nil, err
	}

	e := models.NewExercise(workoutID, name, in.Sets)
	if _, err := s.exercises.Insert(ctx, e); err != nil {
		return nil, internal("add exercise", err)
	}
	s.cacheSet(ctx, exerciseKey(e.ID), e)
	s.cacheDel(ctx, workoutExercisesKey(workoutID))
	return e, nil
}

// EditExercise applies patch to the exercise. Supplied sets replace the whole list.
func (s *Service) EditExercise(ctx context.Context, rawID string, patch ExercisePatch) (*models.Exercise, error) {
	id, err := requireID(kindExercise, rawID)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, badInput("No fields provided to update.")
	}

	var name string
	if patch.Name != nil {
		if name, err = requireText("Name", *patch.Name); err != nil {
			return nil, err
		}
	}
	if patch.Sets != nil {
		if err := validateSets(patch.Sets); err != nil {
			return nil, err
		}
	}

	e, err := load(ctx, s.exercises, kindExercise, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		e.Name = name
	}
	if patch.Sets != nil {
		e.Sets = models.CloneSets(patch.Sets)
	}
	return s.saveExercise(ctx, e)
}

// saveExercise replaces the stored exercise and invalidates its workout list.
func (s *Service) saveExercise(ctx context.Context, e *models.Exercise) (*models.Exercise, error) {
	updated, err := replace(ctx, s, s.exercises, kindExercise, e.ID, e, exerciseKey(e.ID))
	if err != nil {
		return nil, err
	}
	s.cacheDel(ctx, workoutExercisesKey(e.Workout))
	return updated, nil
}

// RemoveExercise deletes an exercise.
func (s *Service) RemoveExercise(ctx context.Context, rawID string) (*models.Exercise, error) {
	id, err := requireID(kindExercise, rawID)
	if err != nil {
		return nil, err
	}
	e, err := remove(ctx, s.exercises, kindExercise, id)
	if err != nil {
		return nil, err
	}
	s.cacheDel(ctx, exerciseKey(id), workoutExercisesKey(e.Workout))
	return e, nil
}

// ListExercises returns the exercises of a workout in creation order.
func (s *Service) ListExercises(ctx context.Context, rawWorkoutID string) ([]*models.Exercise, error) {
	workoutID, err := requireID(kindWorkout, rawWorkoutID)
	if err != nil {
		return nil, err
	}
	return listCached(ctx, s, s.exercises, workoutExercisesKey(workoutID), store.Filter{"workout": workoutID}, nil)
}

// GetExercise returns one exercise.
func (s *Service) GetExercise(ctx context.Context, rawID string) (*models.Exercise, error) {
	return getCached(ctx, s, s.exercises, kindExercise, rawID, exerciseKey)
}

// ExerciseWorkout resolves the workout an exercise belongs to.
func (s *Service) ExerciseWorkout(ctx context.Context, e *models.Exercise) (*models.Workout, error) {
	return s.GetWorkout(ctx, e.Workout)
}
