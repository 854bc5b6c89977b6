// ABOUTME: Root mutation resolvers.
// ABOUTME: Optional arguments become service patches with present-or-absent fields.
package graphql

import (
	"context"

	"github.com/harperreed/fittrack/internal/fitness"
	"github.com/harperreed/fittrack/internal/models"
)

func (r *Resolver) userResult(u *models.User, err error) (*userResolver, error) {
	if err != nil {
		return nil, apiErr(err)
	}
	return r.user(u), nil
}

func (r *Resolver) workoutResult(w *models.Workout, err error) (*workoutResolver, error) {
	if err != nil {
		return nil, apiErr(err)
	}
	return &workoutResolver{svc: r.svc, w: w}, nil
}

func (r *Resolver) exerciseResult(e *models.Exercise, err error) (*exerciseResolver, error) {
	if err != nil {
		return nil, apiErr(err)
	}
	return &exerciseResolver{svc: r.svc, e: e}, nil
}

func (r *Resolver) calorieResult(e *models.CalorieEntry, err error) (*calorieEntryResolver, error) {
	if err != nil {
		return nil, apiErr(err)
	}
	return &calorieEntryResolver{svc: r.svc, e: e}, nil
}

func (r *Resolver) weightResult(e *models.BodyWeightEntry, err error) (*bodyWeightEntryResolver, error) {
	if err != nil {
		return nil, apiErr(err)
	}
	return &bodyWeightEntryResolver{svc: r.svc, e: e}, nil
}

func (r *Resolver) templateResult(t *models.WorkoutTemplate, err error) (*templateResolver, error) {
	if err != nil {
		return nil, apiErr(err)
	}
	return &templateResolver{svc: r.svc, t: t}, nil
}

func (r *Resolver) routineResult(rt *models.WorkoutRoutine, err error) (*routineResolver, error) {
	if err != nil {
		return nil, apiErr(err)
	}
	return &routineResolver{svc: r.svc, r: rt}, nil
}

// Users

func (r *Resolver) AddUser(ctx context.Context, args struct {
	Name        string
	BodyWeight  float64
	FirebaseUID *string
}) (*userResolver, error) {
	return r.userResult(r.svc.AddUser(ctx, fitness.NewUserInput{
		Name:        args.Name,
		BodyWeight:  args.BodyWeight,
		FirebaseUID: strOrEmpty(args.FirebaseUID),
	}))
}

func (r *Resolver) EditUser(ctx context.Context, args struct {
	ID         string
	Name       *string
	BodyWeight *float64
	Photo      *string
}) (*userResolver, error) {
	return r.userResult(r.svc.EditUser(ctx, args.ID, fitness.UserPatch{
		Name:       args.Name,
		BodyWeight: args.BodyWeight,
		Photo:      args.Photo,
	}))
}

func (r *Resolver) RemoveUser(ctx context.Context, args idArgs) (*userResolver, error) {
	return r.userResult(r.svc.RemoveUser(ctx, args.ID))
}

type friendArgs struct {
	UserID   string
	FriendID string
}

func (r *Resolver) AddFriend(ctx context.Context, args friendArgs) (*userResolver, error) {
	return r.userResult(r.svc.AddFriend(ctx, args.UserID, args.FriendID))
}

func (r *Resolver) RemoveFriend(ctx context.Context, args friendArgs) (*userResolver, error) {
	return r.userResult(r.svc.RemoveFriend(ctx, args.UserID, args.FriendID))
}

// Workouts and exercises

func (r *Resolver) AddWorkout(ctx context.Context, args struct {
	UserID string
	Name   string
	Date   *string
}) (*workoutResolver, error) {
	return r.workoutResult(r.svc.AddWorkout(ctx, fitness.NewWorkoutInput{
		UserID: args.UserID,
		Name:   args.Name,
		Date:   strOrEmpty(args.Date),
	}))
}

func (r *Resolver) LogWorkout(ctx context.Context, args struct {
	UserID    string
	Name      string
	Date      *string
	Exercises *[]exerciseInput
}) (*workoutResolver, error) {
	in := fitness.LogWorkoutInput{UserID: args.UserID, Name: args.Name, Date: strOrEmpty(args.Date)}
	if args.Exercises == nil || len(*args.Exercises) == 0 {
		return r.workoutResult(r.svc.AddWorkout(ctx, fitness.NewWorkoutInput{
			UserID: in.UserID, Name: in.Name, Date: in.Date,
		}))
	}
	in.Exercises = toTemplateExercises(*args.Exercises)
	return r.workoutResult(r.svc.LogWorkout(ctx, in))
}

func (r *Resolver) EditWorkout(ctx context.Context, args struct {
	ID   string
	Name *string
	Date *string
}) (*workoutResolver, error) {
	return r.workoutResult(r.svc.EditWorkout(ctx, args.ID, fitness.WorkoutPatch{Name: args.Name, Date: args.Date}))
}

func (r *Resolver) RemoveWorkout(ctx context.Context, args idArgs) (*workoutResolver, error) {
	return r.workoutResult(r.svc.RemoveWorkout(ctx, args.ID))
}

func (r *Resolver) AddExercise(ctx context.Context, args struct {
	WorkoutID string
	Name      string
	Sets      []setInput
}) (*exerciseResolver, error) {
	return r.exerciseResult(r.svc.AddExercise(ctx, fitness.NewExerciseInput{
		WorkoutID: args.WorkoutID,
		Name:      args.Name,
		Sets:      toSets(args.Sets),
	}))
}

func (r *Resolver) EditExercise(ctx context.Context, args struct {
	ID   string
	Name *string
	Sets *[]setInput
}) (*exerciseResolver, error) {
	patch := fitness.ExercisePatch{Name: args.Name}
	if args.Sets != nil {
		patch.Sets = toSets(*args.Sets)
	}
	return r.exerciseResult(r.svc.EditExercise(ctx, args.ID, patch))
}

func (r *Resolver) RemoveExercise(ctx context.Context, args idArgs) (*exerciseResolver, error) {
	return r.exerciseResult(r.svc.RemoveExercise(ctx, args.ID))
}

func (r *Resolver) AddSet(ctx context.Context, args struct {
	ExerciseID string
	Weight     float64
	Reps       int32
	RIR        int32
}) (*exerciseResolver, error) {
	set := setInput{Weight: args.Weight, Reps: args.Reps, RIR: args.RIR}
	return r.exerciseResult(r.svc.AddSet(ctx, args.ExerciseID, set.model()))
}

func (r *Resolver) EditSet(ctx context.Context, args struct {
	ExerciseID string
	SetIndex   int32
	Weight     *float64
	Reps       *int32
	RIR        *int32
}) (*exerciseResolver, error) {
	patch := setPatchInput{Weight: args.Weight, Reps: args.Reps, RIR: args.RIR}
	return r.exerciseResult(r.svc.EditSet(ctx, args.ExerciseID, int(args.SetIndex), patch.patch()))
}

func (r *Resolver) RemoveSet(ctx context.Context, args struct {
	ExerciseID string
	SetIndex   int32
}) (*exerciseResolver, error) {
	return r.exerciseResult(r.svc.RemoveSet(ctx, args.ExerciseID, int(args.SetIndex)))
}

// Nutrition

func (r *Resolver) AddCalorieEntry(ctx context.Context, args struct {
	UserID   string
	Food     string
	Calories int32
	Protein  float64
	Carbs    float64
	Fats     float64
	Date     *string
}) (*calorieEntryResolver, error) {
	return r.calorieResult(r.svc.AddCalorieEntry(ctx, fitness.NewCalorieEntryInput{
		UserID:   args.UserID,
		Food:     args.Food,
		Calories: int(args.Calories),
		Protein:  args.Protein,
		Carbs:    args.Carbs,
		Fats:     args.Fats,
		Date:     strOrEmpty(args.Date),
	}))
}

func (r *Resolver) EditCalorieEntry(ctx context.Context, args struct {
	ID       string
	Food     *string
	Calories *int32
	Protein  *float64
	Carbs    *float64
	Fats     *float64
	Date     *string
}) (*calorieEntryResolver, error) {
	return r.calorieResult(r.svc.EditCalorieEntry(ctx, args.ID, fitness.CalorieEntryPatch{
		Food:     args.Food,
		Calories: intPtr(args.Calories),
		Protein:  args.Protein,
		Carbs:    args.Carbs,
		Fats:     args.Fats,
		Date:     args.Date,
	}))
}

func (r *Resolver) RemoveCalorieEntry(ctx context.Context, args idArgs) (*calorieEntryResolver, error) {
	return r.calorieResult(r.svc.RemoveCalorieEntry(ctx, args.ID))
}

func (r *Resolver) AddBodyWeightEntry(ctx context.Context, args struct {
	UserID string
	Weight float64
	Date   *string
}) (*bodyWeightEntryResolver, error) {
	return r.weightResult(r.svc.AddBodyWeightEntry(ctx, fitness.NewBodyWeightEntryInput{
		UserID: args.UserID,
		Weight: args.Weight,
		Date:   strOrEmpty(args.Date),
	}))
}

func (r *Resolver) EditBodyWeightEntry(ctx context.Context, args struct {
	ID     string
	Weight *float64
	Date   *string
}) (*bodyWeightEntryResolver, error) {
	return r.weightResult(r.svc.EditBodyWeightEntry(ctx, args.ID, fitness.BodyWeightEntryPatch{
		Weight: args.Weight,
		Date:   args.Date,
	}))
}

func (r *Resolver) RemoveBodyWeightEntry(ctx context.Context, args idArgs) (*bodyWeightEntryResolver, error) {
	return r.weightResult(r.svc.RemoveBodyWeightEntry(ctx, args.ID))
}

func (r *Resolver) SetUserGoals(ctx context.Context, args struct {
	UserID             string
	DailyCalorieTarget *int32
	ProteinTarget      *float64
	CarbTarget         *float64
	FatTarget          *float64
	WeightGoal         *float64
	GoalType           *string
}) (*goalsResolver, error) {
	g, err := r.svc.SetUserGoals(ctx, args.UserID, fitness.GoalsPatch{
		DailyCalorieTarget: intPtr(args.DailyCalorieTarget),
		ProteinTarget:      args.ProteinTarget,
		CarbTarget:         args.CarbTarget,
		FatTarget:          args.FatTarget,
		WeightGoal:         args.WeightGoal,
		GoalType:           args.GoalType,
	})
	if err != nil {
		return nil, apiErr(err)
	}
	return &goalsResolver{svc: r.svc, g: g}, nil
}

// Templates

func (r *Resolver) CreateWorkoutTemplate(ctx context.Context, args struct {
	UserID    string
	Name      string
	Exercises []exerciseInput
}) (*templateResolver, error) {
	return r.templateResult(r.svc.CreateWorkoutTemplate(ctx, fitness.NewTemplateInput{
		UserID:    args.UserID,
		Name:      args.Name,
		Exercises: toTemplateExercises(args.Exercises),
	}))
}

func (r *Resolver) EditWorkoutTemplate(ctx context.Context, args struct {
	ID   string
	Name *string
}) (*templateResolver, error) {
	return r.templateResult(r.svc.EditWorkoutTemplate(ctx, args.ID, args.Name))
}

func (r *Resolver) RemoveWorkoutTemplate(ctx context.Context, args idArgs) (*templateResolver, error) {
	return r.templateResult(r.svc.RemoveWorkoutTemplate(ctx, args.ID))
}

func (r *Resolver) AddTemplateExercise(ctx context.Context, args struct {
	TemplateID string
	Exercise   exerciseInput
}) (*templateResolver, error) {
	return r.templateResult(r.svc.AddTemplateExercise(ctx, args.TemplateID, args.Exercise.model()))
}

func (r *Resolver) EditTemplateExercise(ctx context.Context, args struct {
	TemplateID    string
	ExerciseIndex int32
	Name          *string
	Sets          *[]setInput
}) (*templateResolver, error) {
	patch := fitness.TemplateExercisePatch{Name: args.Name}
	if args.Sets != nil {
		patch.Sets = toSets(*args.Sets)
	}
	return r.templateResult(r.svc.EditTemplateExercise(ctx, args.TemplateID, int(args.ExerciseIndex), patch))
}

func (r *Resolver) RemoveTemplateExercise(ctx context.Context, args struct {
	TemplateID    string
	ExerciseIndex int32
}) (*templateResolver, error) {
	return r.templateResult(r.svc.RemoveTemplateExercise(ctx, args.TemplateID, int(args.ExerciseIndex)))
}

func (r *Resolver) AddTemplateSet(ctx context.Context, args struct {
	TemplateID    string
	ExerciseIndex int32
	Set           setInput
}) (*templateResolver, error) {
	return r.templateResult(r.svc.AddTemplateSet(ctx, args.TemplateID, int(args.ExerciseIndex), args.Set.model()))
}

func (r *Resolver) EditTemplateSet(ctx context.Context, args struct {
	TemplateID    string
	ExerciseIndex int32
	SetIndex      int32
	Set           setPatchInput
}) (*templateResolver, error) {
	return r.templateResult(r.svc.EditTemplateSet(ctx, args.TemplateID,
		int(args.ExerciseIndex), int(args.SetIndex), args.Set.patch()))
}

func (r *Resolver) RemoveTemplateSet(ctx context.Context, args struct {
	TemplateID    string
	ExerciseIndex int32
	SetIndex      int32
}) (*templateResolver, error) {
	return r.templateResult(r.svc.RemoveTemplateSet(ctx, args.TemplateID, int(args.ExerciseIndex), int(args.SetIndex)))
}

func (r *Resolver) ScheduleWorkout(ctx context.Context, args struct {
	UserID     string
	Date       string
	TemplateID string
}) (*workoutResolver, error) {
	return r.workoutResult(r.svc.ScheduleWorkout(ctx, args.UserID, args.Date, args.TemplateID))
}

// Routines

func (r *Resolver) CreateWorkoutRoutine(ctx context.Context, args struct {
	UserID      string
	RoutineName string
	Days        []routineDayInput
}) (*routineResolver, error) {
	return r.routineResult(r.svc.CreateWorkoutRoutine(ctx, fitness.NewRoutineInput{
		UserID:      args.UserID,
		RoutineName: args.RoutineName,
		Days:        toDays(args.Days),
	}))
}

func (r *Resolver) UpdateWorkoutRoutine(ctx context.Context, args struct {
	ID          string
	RoutineName *string
	Days        *[]routineDayInput
}) (*routineResolver, error) {
	patch := fitness.RoutinePatch{RoutineName: args.RoutineName}
	if args.Days != nil {
		patch.Days = toDays(*args.Days)
	}
	return r.routineResult(r.svc.UpdateWorkoutRoutine(ctx, args.ID, patch))
}

func (r *Resolver) RemoveWorkoutRoutine(ctx context.Context, args idArgs) (*routineResolver, error) {
	return r.routineResult(r.svc.RemoveWorkoutRoutine(ctx, args.ID))
}
