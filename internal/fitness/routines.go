// ABOUTME: Workout routine resolvers.
// ABOUTME: Updates replace the routine name and/or the whole day list.
package fitness

import (
	"context"
	"sort"
	"strings"

	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/store"
)

const kindRoutine = "Workout routine"

// NewRoutineInput carries the fields for CreateWorkoutRoutine.
type NewRoutineInput struct {
	UserID      string
	RoutineName string
	Days        []models.RoutineDay
}

// RoutinePatch lists editable routine fields. A nil Days slice is absent.
type RoutinePatch struct {
	RoutineName *string
	Days        []models.RoutineDay
}

// IsEmpty reports whether no field is set.
func (p RoutinePatch) IsEmpty() bool {
	return p.RoutineName == nil && p.Days == nil
}

// CreateWorkoutRoutine stores a new routine.
func (s *Service) CreateWorkoutRoutine(ctx context.Context, in NewRoutineInput) (*models.WorkoutRoutine, error) {
	userID, err := requireID(kindUser, in.UserID)
	if err != nil {
		return nil, err
	}
	name, err := requireText("Routine name", in.RoutineName)
	if err != nil {
		return nil, err
	}
	days := cloneDays(in.Days)
	if err := validateDays(days); err != nil {
		return nil, err
	}

	r := &models.WorkoutRoutine{User: userID, RoutineName: name, Days: days}
	if _, err := s.routines.Insert(ctx, r); err != nil {
		return nil, internal("create workout routine", err)
	}
	s.cacheSet(ctx, routineKey(r.ID), r)
	s.cacheDel(ctx, userRoutinesKey(userID))
	return r, nil
}

// UpdateWorkoutRoutine applies patch to the routine.
func (s *Service) UpdateWorkoutRoutine(ctx context.Context, rawID string, patch RoutinePatch) (*models.WorkoutRoutine, error) {
	id, err := requireID(kindRoutine, rawID)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, badInput("No fields provided to update.")
	}
	var name string
	if patch.RoutineName != nil {
		if name, err = requireText("Routine name", *patch.RoutineName); err != nil {
			return nil, err
		}
	}
	var days []models.RoutineDay
	if patch.Days != nil {
		days = cloneDays(patch.Days)
		if err := validateDays(days); err != nil {
			return nil, err
		}
	}

	r, err := load(ctx, s.routines, kindRoutine, id)
	if err != nil {
		return nil, err
	}
	if patch.RoutineName != nil {
		r.RoutineName = name
	}
	if patch.Days != nil {
		r.Days = days
	}

	updated, err := replace(ctx, s, s.routines, kindRoutine, id, r, routineKey(id))
	if err != nil {
		return nil, err
	}
	s.cacheDel(ctx, userRoutinesKey(r.User))
	return updated, nil
}

// RemoveWorkoutRoutine deletes a routine.
func (s *Service) RemoveWorkoutRoutine(ctx context.Context, rawID string) (*models.WorkoutRoutine, error) {
	id, err := requireID(kindRoutine, rawID)
	if err != nil {
		return nil, err
	}
	r, err := remove(ctx, s.routines, kindRoutine, id)
	if err != nil {
		return nil, err
	}
	s.cacheDel(ctx, routineKey(id), userRoutinesKey(r.User))
	return r, nil
}

// GetWorkoutRoutine returns one routine.
func (s *Service) GetWorkoutRoutine(ctx context.Context, rawID string) (*models.WorkoutRoutine, error) {
	return getCached(ctx, s, s.routines, kindRoutine, rawID, routineKey)
}

// ListWorkoutRoutines returns the user's routines ordered by name.
func (s *Service) ListWorkoutRoutines(ctx context.Context, rawUserID string) ([]*models.WorkoutRoutine, error) {
	userID, err := requireID(kindUser, rawUserID)
	if err != nil {
		return nil, err
	}
	return listCached(ctx, s, s.routines, userRoutinesKey(userID), store.Filter{"user": userID},
		func(rs []*models.WorkoutRoutine) {
			sort.SliceStable(rs, func(i, j int) bool {
				return strings.ToLower(rs[i].RoutineName) < strings.ToLower(rs[j].RoutineName)
			})
		})
}

func cloneDays(days []models.RoutineDay) []models.RoutineDay {
	if days == nil {
		return nil
	}
	out := make([]models.RoutineDay, len(days))
	for i, d := range days {
		exercises := make([]models.RoutineExercise, len(d.Exercises))
		for j, e := range d.Exercises {
			exercises[j] = models.RoutineExercise{
				Name:    e.Name,
				Sets:    e.Sets,
				Muscles: append([]string{}, e.Muscles...),
				Reps:    append([]int(nil), e.Reps...),
				Weight:  append([]float64(nil), e.Weight...),
				RIR:     append([]int(nil), e.RIR...),
			}
		}
		out[i] = models.RoutineDay{Name: d.Name, Exercises: exercises}
	}
	return out
}
