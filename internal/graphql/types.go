// ABOUTME: Object resolvers for every schema type.
// ABOUTME: Reference fields resolve lazily through the fitness service.
package graphql

import (
	"context"
	"time"

	"github.com/harperreed/fittrack/internal/fitness"
	"github.com/harperreed/fittrack/internal/models"
)

type userResolver struct {
	svc *fitness.Service
	u   *models.User
}

func (r *Resolver) user(u *models.User) *userResolver { return &userResolver{svc: r.svc, u: u} }

func (r *userResolver) ID() string          { return r.u.ID }
func (r *userResolver) Name() string        { return r.u.Name }
func (r *userResolver) BodyWeight() float64 { return r.u.BodyWeight }
func (r *userResolver) Photo() *string      { return r.u.Photo }
func (r *userResolver) CreatedAt() string   { return r.u.CreatedAt.UTC().Format(time.RFC3339) }

func (r *userResolver) FirebaseUID() *string {
	if r.u.FirebaseUID == "" {
		return nil
	}
	return &r.u.FirebaseUID
}

func (r *userResolver) Friends(ctx context.Context) ([]*userResolver, error) {
	friends, err := r.svc.Friends(ctx, r.u)
	if err != nil {
		return nil, apiErr(err)
	}
	return wrap(friends, func(u *models.User) *userResolver { return &userResolver{svc: r.svc, u: u} }), nil
}

func (r *userResolver) Workouts(ctx context.Context) ([]*workoutResolver, error) {
	workouts, err := r.svc.ListWorkouts(ctx, r.u.ID)
	if err != nil {
		return nil, apiErr(err)
	}
	return wrapWorkouts(r.svc, workouts), nil
}

func (r *userResolver) CalorieEntries(ctx context.Context) ([]*calorieEntryResolver, error) {
	entries, err := r.svc.ListCalorieEntries(ctx, r.u.ID)
	if err != nil {
		return nil, apiErr(err)
	}
	return wrapCalories(r.svc, entries), nil
}

func (r *userResolver) BodyWeightEntries(ctx context.Context) ([]*bodyWeightEntryResolver, error) {
	entries, err := r.svc.ListBodyWeightEntries(ctx, r.u.ID)
	if err != nil {
		return nil, apiErr(err)
	}
	return wrapWeights(r.svc, entries), nil
}

func (r *userResolver) Goals(ctx context.Context) (*goalsResolver, error) {
	g, err := r.svc.GetUserGoals(ctx, r.u.ID)
	if err != nil {
		return nil, apiErr(err)
	}
	if g == nil {
		return nil, nil
	}
	return &goalsResolver{svc: r.svc, g: g}, nil
}

func (r *userResolver) Templates(ctx context.Context) ([]*templateResolver, error) {
	templates, err := r.svc.ListWorkoutTemplates(ctx, r.u.ID)
	if err != nil {
		return nil, apiErr(err)
	}
	return wrapTemplates(r.svc, templates), nil
}

func (r *userResolver) Routines(ctx context.Context) ([]*routineResolver, error) {
	routines, err := r.svc.ListWorkoutRoutines(ctx, r.u.ID)
	if err != nil {
		return nil, apiErr(err)
	}
	return wrapRoutines(r.svc, routines), nil
}

type workoutResolver struct {
	svc *fitness.Service
	w   *models.Workout
}

func wrapWorkouts(svc *fitness.Service, ws []*models.Workout) []*workoutResolver {
	return wrap(ws, func(w *models.Workout) *workoutResolver { return &workoutResolver{svc: svc, w: w} })
}

func (r *workoutResolver) ID() string        { return r.w.ID }
func (r *workoutResolver) Name() string      { return r.w.Name }
func (r *workoutResolver) Date() string      { return r.w.Date }
func (r *workoutResolver) Template() *string { return r.w.TemplateID }

func (r *workoutResolver) User(ctx context.Context) (*userResolver, error) {
	u, err := r.svc.WorkoutUser(ctx, r.w)
	if err != nil {
		return nil, apiErr(err)
	}
	return &userResolver{svc: r.svc, u: u}, nil
}

func (r *workoutResolver) Exercises(ctx context.Context) ([]*exerciseResolver, error) {
	exercises, err := r.svc.ListExercises(ctx, r.w.ID)
	if err != nil {
		return nil, apiErr(err)
	}
	return wrapExercises(r.svc, exercises), nil
}

type exerciseResolver struct {
	svc *fitness.Service
	e   *models.Exercise
}

func wrapExercises(svc *fitness.Service, es []*models.Exercise) []*exerciseResolver {
	return wrap(es, func(e *models.Exercise) *exerciseResolver { return &exerciseResolver{svc: svc, e: e} })
}

func (r *exerciseResolver) ID() string           { return r.e.ID }
func (r *exerciseResolver) Name() string         { return r.e.Name }
func (r *exerciseResolver) Sets() []*setResolver { return wrapSets(r.e.Sets) }

func (r *exerciseResolver) Workout(ctx context.Context) (*workoutResolver, error) {
	w, err := r.svc.ExerciseWorkout(ctx, r.e)
	if err != nil {
		return nil, apiErr(err)
	}
	return &workoutResolver{svc: r.svc, w: w}, nil
}

type setResolver struct {
	s models.Set
}

func wrapSets(sets []models.Set) []*setResolver {
	return wrap(sets, func(s models.Set) *setResolver { return &setResolver{s: s} })
}

func (r *setResolver) Weight() float64 { return r.s.Weight }
func (r *setResolver) Reps() int32     { return int32(r.s.Reps) }
func (r *setResolver) RIR() int32      { return int32(r.s.RIR) }

type calorieEntryResolver struct {
	svc *fitness.Service
	e   *models.CalorieEntry
}

func wrapCalories(svc *fitness.Service, es []*models.CalorieEntry) []*calorieEntryResolver {
	return wrap(es, func(e *models.CalorieEntry) *calorieEntryResolver { return &calorieEntryResolver{svc: svc, e: e} })
}

func (r *calorieEntryResolver) ID() string       { return r.e.ID }
func (r *calorieEntryResolver) Food() string     { return r.e.Food }
func (r *calorieEntryResolver) Calories() int32  { return int32(r.e.Calories) }
func (r *calorieEntryResolver) Protein() float64 { return r.e.Protein }
func (r *calorieEntryResolver) Carbs() float64   { return r.e.Carbs }
func (r *calorieEntryResolver) Fats() float64    { return r.e.Fats }
func (r *calorieEntryResolver) Date() string     { return r.e.Date }

func (r *calorieEntryResolver) User(ctx context.Context) (*userResolver, error) {
	u, err := r.svc.CalorieEntryUser(ctx, r.e)
	if err != nil {
		return nil, apiErr(err)
	}
	return &userResolver{svc: r.svc, u: u}, nil
}

type bodyWeightEntryResolver struct {
	svc *fitness.Service
	e   *models.BodyWeightEntry
}

func wrapWeights(svc *fitness.Service, es []*models.BodyWeightEntry) []*bodyWeightEntryResolver {
	return wrap(es, func(e *models.BodyWeightEntry) *bodyWeightEntryResolver {
		return &bodyWeightEntryResolver{svc: svc, e: e}
	})
}

func (r *bodyWeightEntryResolver) ID() string      { return r.e.ID }
func (r *bodyWeightEntryResolver) Weight() float64 { return r.e.Weight }
func (r *bodyWeightEntryResolver) Date() string    { return r.e.Date }

func (r *bodyWeightEntryResolver) User(ctx context.Context) (*userResolver, error) {
	u, err := r.svc.BodyWeightEntryUser(ctx, r.e)
	if err != nil {
		return nil, apiErr(err)
	}
	return &userResolver{svc: r.svc, u: u}, nil
}

type goalsResolver struct {
	svc *fitness.Service
	g   *models.UserGoals
}

func (r *goalsResolver) ID() string                 { return r.g.ID }
func (r *goalsResolver) DailyCalorieTarget() *int32 { return int32Ptr(r.g.DailyCalorieTarget) }
func (r *goalsResolver) ProteinTarget() *float64    { return r.g.ProteinTarget }
func (r *goalsResolver) CarbTarget() *float64       { return r.g.CarbTarget }
func (r *goalsResolver) FatTarget() *float64        { return r.g.FatTarget }
func (r *goalsResolver) WeightGoal() *float64       { return r.g.WeightGoal }
func (r *goalsResolver) GoalType() *string          { return r.g.GoalType }

func (r *goalsResolver) User(ctx context.Context) (*userResolver, error) {
	u, err := r.svc.GetUser(ctx, r.g.User)
	if err != nil {
		return nil, apiErr(err)
	}
	return &userResolver{svc: r.svc, u: u}, nil
}

type templateResolver struct {
	svc *fitness.Service
	t   *models.WorkoutTemplate
}

func wrapTemplates(svc *fitness.Service, ts []*models.WorkoutTemplate) []*templateResolver {
	return wrap(ts, func(t *models.WorkoutTemplate) *templateResolver { return &templateResolver{svc: svc, t: t} })
}

func (r *templateResolver) ID() string   { return r.t.ID }
func (r *templateResolver) Name() string { return r.t.Name }

func (r *templateResolver) Exercises() []*templateExerciseResolver {
	return wrap(r.t.Exercises, func(e models.TemplateExercise) *templateExerciseResolver {
		return &templateExerciseResolver{e: e}
	})
}

func (r *templateResolver) User(ctx context.Context) (*userResolver, error) {
	u, err := r.svc.GetUser(ctx, r.t.User)
	if err != nil {
		return nil, apiErr(err)
	}
	return &userResolver{svc: r.svc, u: u}, nil
}

type templateExerciseResolver struct {
	e models.TemplateExercise
}

func (r *templateExerciseResolver) Name() string         { return r.e.Name }
func (r *templateExerciseResolver) Sets() []*setResolver { return wrapSets(r.e.Sets) }

type routineResolver struct {
	svc *fitness.Service
	r   *models.WorkoutRoutine
}

func wrapRoutines(svc *fitness.Service, rs []*models.WorkoutRoutine) []*routineResolver {
	return wrap(rs, func(r *models.WorkoutRoutine) *routineResolver { return &routineResolver{svc: svc, r: r} })
}

func (r *routineResolver) ID() string          { return r.r.ID }
func (r *routineResolver) RoutineName() string { return r.r.RoutineName }

func (r *routineResolver) Days() []*routineDayResolver {
	return wrap(r.r.Days, func(d models.RoutineDay) *routineDayResolver { return &routineDayResolver{d: d} })
}

func (r *routineResolver) User(ctx context.Context) (*userResolver, error) {
	u, err := r.svc.GetUser(ctx, r.r.User)
	if err != nil {
		return nil, apiErr(err)
	}
	return &userResolver{svc: r.svc, u: u}, nil
}

type routineDayResolver struct {
	d models.RoutineDay
}

func (r *routineDayResolver) Name() string { return r.d.Name }

func (r *routineDayResolver) Exercises() []*routineExerciseResolver {
	return wrap(r.d.Exercises, func(e models.RoutineExercise) *routineExerciseResolver {
		return &routineExerciseResolver{e: e}
	})
}

type routineExerciseResolver struct {
	e models.RoutineExercise
}

func (r *routineExerciseResolver) Name() string      { return r.e.Name }
func (r *routineExerciseResolver) Sets() int32       { return int32(r.e.Sets) }
func (r *routineExerciseResolver) Muscles() []string { return append([]string{}, r.e.Muscles...) }
func (r *routineExerciseResolver) Reps() []int32     { return toInt32s(r.e.Reps) }
func (r *routineExerciseResolver) Weight() []float64 { return append([]float64{}, r.e.Weight...) }
func (r *routineExerciseResolver) RIR() []int32      { return toInt32s(r.e.RIR) }

type weightPointResolver struct {
	p fitness.WeightPoint
}

func (r *weightPointResolver) Date() string    { return r.p.Date }
func (r *weightPointResolver) Weight() float64 { return r.p.Weight }

type caloriePointResolver struct {
	p fitness.CaloriePoint
}

func (r *caloriePointResolver) Date() string     { return r.p.Date }
func (r *caloriePointResolver) Calories() int32  { return int32(r.p.Calories) }
func (r *caloriePointResolver) Protein() float64 { return r.p.Protein }
func (r *caloriePointResolver) Carbs() float64   { return r.p.Carbs }
func (r *caloriePointResolver) Fats() float64    { return r.p.Fats }

type personalRecordResolver struct {
	p fitness.PersonalRecord
}

func (r *personalRecordResolver) ExerciseName() string { return r.p.ExerciseName }
func (r *personalRecordResolver) MaxWeight() float64   { return r.p.MaxWeight }
func (r *personalRecordResolver) MaxReps() int32       { return int32(r.p.MaxReps) }
func (r *personalRecordResolver) DateAchieved() string { return r.p.DateAchieved }
