// ABOUTME: Root query resolvers.
// ABOUTME: Each field delegates to one fitness service read.
package graphql

import (
	"context"

	"github.com/harperreed/fittrack/internal/fitness"
)

type idArgs struct {
	ID string
}

type userArgs struct {
	UserID string
}

type rangeArgs struct {
	UserID    string
	StartDate string
	EndDate   string
}

func (r *Resolver) Users(ctx context.Context) ([]*userResolver, error) {
	users, err := r.svc.ListUsers(ctx)
	if err != nil {
		return nil, apiErr(err)
	}
	return wrap(users, r.user), nil
}

func (r *Resolver) GetUserByID(ctx context.Context, args idArgs) (*userResolver, error) {
	u, err := r.svc.GetUser(ctx, args.ID)
	if err != nil {
		return nil, apiErr(err)
	}
	return r.user(u), nil
}

func (r *Resolver) GetUserByFirebaseUID(ctx context.Context, args struct{ FirebaseUID string }) (*userResolver, error) {
	u, err := r.svc.GetUserByFirebaseUID(ctx, args.FirebaseUID)
	if err != nil {
		return nil, apiErr(err)
	}
	return r.user(u), nil
}

func (r *Resolver) Workouts(ctx context.Context, args userArgs) ([]*workoutResolver, error) {
	workouts, err := r.svc.ListWorkouts(ctx, args.UserID)
	if err != nil {
		return nil, apiErr(err)
	}
	return wrapWorkouts(r.svc, workouts), nil
}

func (r *Resolver) GetWorkoutByID(ctx context.Context, args idArgs) (*workoutResolver, error) {
	w, err := r.svc.GetWorkout(ctx, args.ID)
	if err != nil {
		return nil, apiErr(err)
	}
	return &workoutResolver{svc: r.svc, w: w}, nil
}

func (r *Resolver) GetScheduledWorkouts(ctx context.Context, args struct {
	UserID string
	Date   string
}) ([]*workoutResolver, error) {
	workouts, err := r.svc.ScheduledWorkouts(ctx, args.UserID, args.Date)
	if err != nil {
		return nil, apiErr(err)
	}
	return wrapWorkouts(r.svc, workouts), nil
}

func (r *Resolver) Exercises(ctx context.Context, args struct{ WorkoutID string }) ([]*exerciseResolver, error) {
	exercises, err := r.svc.ListExercises(ctx, args.WorkoutID)
	if err != nil {
		return nil, apiErr(err)
	}
	return wrapExercises(r.svc, exercises), nil
}

func (r *Resolver) GetExerciseByID(ctx context.Context, args idArgs) (*exerciseResolver, error) {
	e, err := r.svc.GetExercise(ctx, args.ID)
	if err != nil {
		return nil, apiErr(err)
	}
	return &exerciseResolver{svc: r.svc, e: e}, nil
}

func (r *Resolver) CalorieEntries(ctx context.Context, args userArgs) ([]*calorieEntryResolver, error) {
	entries, err := r.svc.ListCalorieEntries(ctx, args.UserID)
	if err != nil {
		return nil, apiErr(err)
	}
	return wrapCalories(r.svc, entries), nil
}

func (r *Resolver) GetCalorieEntryByID(ctx context.Context, args idArgs) (*calorieEntryResolver, error) {
	e, err := r.svc.GetCalorieEntry(ctx, args.ID)
	if err != nil {
		return nil, apiErr(err)
	}
	return &calorieEntryResolver{svc: r.svc, e: e}, nil
}

func (r *Resolver) BodyWeightEntries(ctx context.Context, args userArgs) ([]*bodyWeightEntryResolver, error) {
	entries, err := r.svc.ListBodyWeightEntries(ctx, args.UserID)
	if err != nil {
		return nil, apiErr(err)
	}
	return wrapWeights(r.svc, entries), nil
}

func (r *Resolver) GetBodyWeightEntryByID(ctx context.Context, args idArgs) (*bodyWeightEntryResolver, error) {
	e, err := r.svc.GetBodyWeightEntry(ctx, args.ID)
	if err != nil {
		return nil, apiErr(err)
	}
	return &bodyWeightEntryResolver{svc: r.svc, e: e}, nil
}

func (r *Resolver) GetUserGoals(ctx context.Context, args userArgs) (*goalsResolver, error) {
	g, err := r.svc.GetUserGoals(ctx, args.UserID)
	if err != nil {
		return nil, apiErr(err)
	}
	if g == nil {
		return nil, nil
	}
	return &goalsResolver{svc: r.svc, g: g}, nil
}

func (r *Resolver) GetWorkoutTemplates(ctx context.Context, args userArgs) ([]*templateResolver, error) {
	templates, err := r.svc.ListWorkoutTemplates(ctx, args.UserID)
	if err != nil {
		return nil, apiErr(err)
	}
	return wrapTemplates(r.svc, templates), nil
}

func (r *Resolver) GetWorkoutTemplateByID(ctx context.Context, args idArgs) (*templateResolver, error) {
	t, err := r.svc.GetWorkoutTemplate(ctx, args.ID)
	if err != nil {
		return nil, apiErr(err)
	}
	return &templateResolver{svc: r.svc, t: t}, nil
}

func (r *Resolver) GetWorkoutRoutines(ctx context.Context, args userArgs) ([]*routineResolver, error) {
	routines, err := r.svc.ListWorkoutRoutines(ctx, args.UserID)
	if err != nil {
		return nil, apiErr(err)
	}
	return wrapRoutines(r.svc, routines), nil
}

func (r *Resolver) GetWorkoutRoutineByID(ctx context.Context, args idArgs) (*routineResolver, error) {
	rt, err := r.svc.GetWorkoutRoutine(ctx, args.ID)
	if err != nil {
		return nil, apiErr(err)
	}
	return &routineResolver{svc: r.svc, r: rt}, nil
}

func (r *Resolver) GetWeightGraphData(ctx context.Context, args rangeArgs) ([]*weightPointResolver, error) {
	points, err := r.svc.WeightGraph(ctx, args.UserID, args.StartDate, args.EndDate)
	if err != nil {
		return nil, apiErr(err)
	}
	return wrap(points, func(p fitness.WeightPoint) *weightPointResolver { return &weightPointResolver{p: p} }), nil
}

func (r *Resolver) GetCalorieGraphData(ctx context.Context, args rangeArgs) ([]*caloriePointResolver, error) {
	points, err := r.svc.CalorieGraph(ctx, args.UserID, args.StartDate, args.EndDate)
	if err != nil {
		return nil, apiErr(err)
	}
	return wrap(points, func(p fitness.CaloriePoint) *caloriePointResolver { return &caloriePointResolver{p: p} }), nil
}

func (r *Resolver) GetPersonalRecords(ctx context.Context, args userArgs) ([]*personalRecordResolver, error) {
	records, err := r.svc.PersonalRecords(ctx, args.UserID)
	if err != nil {
		return nil, apiErr(err)
	}
	return wrap(records, func(p fitness.PersonalRecord) *personalRecordResolver {
		return &personalRecordResolver{p: p}
	}), nil
}
