// ABOUTME: Workout resolvers and the owning user relationship.
// ABOUTME: Removing a workout cascades to its exercises.
package fitness

import (
	"context"
	"sort"

	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/store"
)

const kindWorkout = "Workout"

// NewWorkoutInput carries the fields for AddWorkout. An empty Date means today.
type NewWorkoutInput struct {
	UserID string
	Name   string
	Date   string
}

// WorkoutPatch lists editable workout fields.
type WorkoutPatch struct {
	Name *string
	Date *string
}

// IsEmpty reports whether no field is set.
func (p WorkoutPatch) IsEmpty() bool {
	return p.Name == nil && p.Date == nil
}

// LogWorkoutInput records a complete session with its exercises in one call.
type LogWorkoutInput struct {
	UserID    string
	Name      string
	Date      string
	Exercises []models.TemplateExercise
}

// AddWorkout creates a workout for a user.
func (s *Service) AddWorkout(ctx context.Context, in NewWorkoutInput) (*models.Workout, error) {
	userID, err := requireID(kindUser, in.UserID)
	if err != nil {
		return nil, err
	}
	name, err := requireText("Name", in.Name)
	if err != nil {
		return nil, err
	}
	date := s.today()
	if in.Date != "" {
		if date, err = requireDate("Date", in.Date); err != nil {
			return nil, err
		}
	}

	return s.insertWorkout(ctx, models.NewWorkout(userID, name, date))
}

// LogWorkout creates a workout and its exercises after validating all of them.
func (s *Service) LogWorkout(ctx context.Context, in LogWorkoutInput) (*models.Workout, error) {
	userID, err := requireID(kindUser, in.UserID)
	if err != nil {
		return nil, err
	}
	name, err := requireText("Name", in.Name)
	if err != nil {
		return nil, err
	}
	date := s.today()
	if in.Date != "" {
		if date, err = requireDate("Date", in.Date); err != nil {
			return nil, err
		}
	}
	exercises := models.CloneTemplateExercises(in.Exercises)
	if err := validateTemplateExercises(exercises); err != nil {
		return nil, err
	}

	w, err := s.insertWorkout(ctx, models.NewWorkout(userID, name, date))
	if err != nil {
		return nil, err
	}
	if err := s.insertExercises(ctx, w.ID, exercises); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) insertWorkout(ctx context.Context, w *models.Workout) (*models.Workout, error) {
	if _, err := s.workouts.Insert(ctx, w); err != nil {
		return nil, internal("add workout", err)
	}
	s.cacheSet(ctx, workoutKey(w.ID), w)
	s.cacheDel(ctx, userWorkoutsKey(w.User), scheduledKey(w.User, w.Date))
	return w, nil
}

// insertExercises creates one exercise per entry. Earlier inserts are kept if a later one fails.
func (s *Service) insertExercises(ctx context.Context, workoutID string, exercises []models.TemplateExercise) error {
	defer s.cacheDel(ctx, workoutExercisesKey(workoutID))
	for _, te := range exercises {
		e := models.NewExercise(workoutID, te.Name, te.Sets)
		if _, err := s.exercises.Insert(ctx, e); err != nil {
			return internal("add exercise", err)
		}
		s.cacheSet(ctx, exerciseKey(e.ID), e)
	}
	return nil
}

// EditWorkout applies patch to the workout.
func (s *Service) EditWorkout(ctx context.Context, rawID string, patch WorkoutPatch) (*models.Workout, error) {
	id, err := requireID(kindWorkout, rawID)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, badInput("No fields provided to update.")
	}

	var name, date string
	if patch.Name != nil {
		if name, err = requireText("Name", *patch.Name); err != nil {
			return nil, err
		}
	}
	if patch.Date != nil {
		if date, err = requireDate("Date", *patch.Date); err != nil {
			return nil, err
		}
	}

	w, err := load(ctx, s.workouts, kindWorkout, id)
	if err != nil {
		return nil, err
	}
	oldDate := w.Date
	if patch.Name != nil {
		w.Name = name
	}
	if patch.Date != nil {
		w.Date = date
	}

	updated, err := replace(ctx, s, s.workouts, kindWorkout, id, w, workoutKey(id))
	if err != nil {
		return nil, err
	}
	s.cacheDel(ctx,
		userWorkoutsKey(w.User),
		scheduledKey(w.User, oldDate),
		scheduledKey(w.User, updated.Date),
	)
	return updated, nil
}

// RemoveWorkout deletes the workout and all of its exercises.
func (s *Service) RemoveWorkout(ctx context.Context, rawID string) (*models.Workout, error) {
	id, err := requireID(kindWorkout, rawID)
	if err != nil {
		return nil, err
	}

	w, err := remove(ctx, s.workouts, kindWorkout, id)
	if err != nil {
		return nil, err
	}

	keys := []string{
		workoutKey(id),
		userWorkoutsKey(w.User),
		scheduledKey(w.User, w.Date),
		workoutExercisesKey(id),
	}
	defer func() { s.cacheDel(ctx, keys...) }()

	exerciseIDs, err := s.exercises.DeleteMany(ctx, store.Filter{"workout": id})
	for _, eid := range exerciseIDs {
		keys = append(keys, exerciseKey(eid))
	}
	if err != nil {
		return nil, internal("remove workout exercises", err)
	}
	return w, nil
}

// ListWorkouts returns the user's workouts, newest date first.
func (s *Service) ListWorkouts(ctx context.Context, rawUserID string) ([]*models.Workout, error) {
	userID, err := requireID(kindUser, rawUserID)
	if err != nil {
		return nil, err
	}
	return listCached(ctx, s, s.workouts, userWorkoutsKey(userID), store.Filter{"user": userID}, sortWorkouts)
}

// GetWorkout returns one workout.
func (s *Service) GetWorkout(ctx context.Context, rawID string) (*models.Workout, error) {
	return getCached(ctx, s, s.workouts, kindWorkout, rawID, workoutKey)
}

// ScheduledWorkouts returns the user's workouts on the given date.
func (s *Service) ScheduledWorkouts(ctx context.Context, rawUserID, rawDate string) ([]*models.Workout, error) {
	userID, err := requireID(kindUser, rawUserID)
	if err != nil {
		return nil, err
	}
	date, err := requireDate("Date", rawDate)
	if err != nil {
		return nil, err
	}
	return listCached(ctx, s, s.workouts, scheduledKey(userID, date),
		store.Filter{"user": userID, "date": date}, sortWorkouts)
}

// WorkoutUser resolves the owner of a workout.
func (s *Service) WorkoutUser(ctx context.Context, w *models.Workout) (*models.User, error) {
	return s.GetUser(ctx, w.User)
}

func sortWorkouts(ws []*models.Workout) {
	sort.SliceStable(ws, func(i, j int) bool {
		return ws[i].Date > ws[j].Date
	})
}
