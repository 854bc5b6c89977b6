// ABOUTME: Tests for workout, exercise, positional set and scheduling resolvers.
// ABOUTME: Checks validation ordering, cascades and template immutability.
package fitness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/store"
)

func addTestExercise(t *testing.T, svc *Service, workoutID string, sets ...models.Set) *models.Exercise {
	t.Helper()
	e, err := svc.AddExercise(context.Background(), NewExerciseInput{WorkoutID: workoutID, Name: "Squat", Sets: sets})
	require.NoError(t, err)
	return e
}

func TestAddWorkout(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	u := addTestUser(t, svc, "Ada")

	w, err := svc.AddWorkout(ctx, NewWorkoutInput{UserID: u.ID, Name: " Push "})
	require.NoError(t, err)
	assert.Equal(t, "Push", w.Name)
	assert.Equal(t, "2024-06-15", w.Date, "empty date defaults to today")

	future, err := svc.AddWorkout(ctx, NewWorkoutInput{UserID: u.ID, Name: "Plan", Date: "2030-01-01T08:00:00Z"})
	require.NoError(t, err, "workouts may be dated in the future")
	assert.Equal(t, "2030-01-01", future.Date)

	_, err = svc.AddWorkout(ctx, NewWorkoutInput{UserID: u.ID, Name: "Bad", Date: "June 1"})
	requireCode(t, err, CodeBadUserInput)
	_, err = svc.AddWorkout(ctx, NewWorkoutInput{UserID: "not-an-id", Name: "Bad"})
	requireCode(t, err, CodeNotFound)

	list, err := svc.ListWorkouts(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2030-01-01", list[0].Date, "newest first")

	owner, err := svc.WorkoutUser(ctx, w)
	require.NoError(t, err)
	assert.Equal(t, u.ID, owner.ID)
}

func TestEditWorkoutInvalidatesScheduled(t *testing.T) {
	svc, c := setupTestService(t)
	ctx := context.Background()
	u := addTestUser(t, svc, "Ada")
	w, err := svc.AddWorkout(ctx, NewWorkoutInput{UserID: u.ID, Name: "Push", Date: "2024-06-10"})
	require.NoError(t, err)

	day, err := svc.ScheduledWorkouts(ctx, u.ID, "2024-06-10")
	require.NoError(t, err)
	require.Len(t, day, 1)
	require.True(t, cached(t, c, scheduledKey(u.ID, "2024-06-10")))

	_, err = svc.EditWorkout(ctx, w.ID, WorkoutPatch{})
	requireCode(t, err, CodeBadUserInput)

	_, err = svc.EditWorkout(ctx, w.ID, WorkoutPatch{Date: ptr("2024-06-11")})
	require.NoError(t, err)

	day, err = svc.ScheduledWorkouts(ctx, u.ID, "2024-06-10")
	require.NoError(t, err)
	assert.Empty(t, day)
	day, err = svc.ScheduledWorkouts(ctx, u.ID, "2024-06-11")
	require.NoError(t, err)
	assert.Len(t, day, 1)
}

func TestLogWorkout(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	u := addTestUser(t, svc, "Ada")

	_, err := svc.LogWorkout(ctx, LogWorkoutInput{UserID: u.ID, Name: "Legs", Exercises: []models.TemplateExercise{
		{Name: "Squat", Sets: []models.Set{{Weight: 100, Reps: 5}}},
		{Name: "Lunge", Sets: []models.Set{{Weight: -1, Reps: 5}}},
	}})
	requireCode(t, err, CodeBadUserInput)
	list, err := svc.ListWorkouts(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, list, "validation runs before any write")

	w, err := svc.LogWorkout(ctx, LogWorkoutInput{UserID: u.ID, Name: "Legs", Exercises: []models.TemplateExercise{
		{Name: " Squat ", Sets: []models.Set{{Weight: 100, Reps: 5}}},
		{Name: "Lunge", Sets: []models.Set{{Weight: 20, Reps: 10, RIR: 1}}},
	}})
	require.NoError(t, err)

	exercises, err := svc.ListExercises(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, exercises, 2)
	assert.Equal(t, "Squat", exercises[0].Name)
}

func TestRemoveWorkoutCascadesExercises(t *testing.T) {
	svc, c := setupTestService(t)
	ctx := context.Background()
	u := addTestUser(t, svc, "Ada")
	w, err := svc.AddWorkout(ctx, NewWorkoutInput{UserID: u.ID, Name: "Push"})
	require.NoError(t, err)
	e1 := addTestExercise(t, svc, w.ID, models.Set{Weight: 50, Reps: 8})
	e2 := addTestExercise(t, svc, w.ID, models.Set{Weight: 60, Reps: 6})

	_, err = svc.RemoveWorkout(ctx, w.ID)
	require.NoError(t, err)

	left, err := svc.exercises.Find(ctx, store.Filter{"workout": w.ID})
	require.NoError(t, err)
	assert.Empty(t, left)
	for _, id := range []string{e1.ID, e2.ID} {
		assert.False(t, cached(t, c, exerciseKey(id)))
		_, err := svc.GetExercise(ctx, id)
		requireCode(t, err, CodeNotFound)
	}

	_, err = svc.RemoveWorkout(ctx, w.ID)
	requireCode(t, err, CodeNotFound)
}

func TestExerciseValidation(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	u := addTestUser(t, svc, "Ada")
	w, err := svc.AddWorkout(ctx, NewWorkoutInput{UserID: u.ID, Name: "Push"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input NewExerciseInput
	}{
		{"no sets", NewExerciseInput{WorkoutID: w.ID, Name: "Bench"}},
		{"blank name", NewExerciseInput{WorkoutID: w.ID, Name: " ", Sets: []models.Set{{Weight: 1, Reps: 1}}}},
		{"zero reps", NewExerciseInput{WorkoutID: w.ID, Name: "Bench", Sets: []models.Set{{Weight: 1, Reps: 0}}}},
		{"negative rir", NewExerciseInput{WorkoutID: w.ID, Name: "Bench", Sets: []models.Set{{Weight: 1, Reps: 1, RIR: -1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddExercise(ctx, tt.input)
			requireCode(t, err, CodeBadUserInput)
		})
	}

	e := addTestExercise(t, svc, w.ID, models.Set{Weight: 50, Reps: 8})
	_, err = svc.EditExercise(ctx, e.ID, ExercisePatch{})
	requireCode(t, err, CodeBadUserInput)
	_, err = svc.EditExercise(ctx, e.ID, ExercisePatch{Sets: []models.Set{}})
	requireCode(t, err, CodeBadUserInput)

	updated, err := svc.EditExercise(ctx, e.ID, ExercisePatch{Name: ptr("Front Squat")})
	require.NoError(t, err)
	assert.Equal(t, "Front Squat", updated.Name)
	assert.Len(t, updated.Sets, 1)

	parent, err := svc.ExerciseWorkout(ctx, updated)
	require.NoError(t, err)
	assert.Equal(t, w.ID, parent.ID)
}

func TestPositionalSets(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	u := addTestUser(t, svc, "Ada")
	w, err := svc.AddWorkout(ctx, NewWorkoutInput{UserID: u.ID, Name: "Push"})
	require.NoError(t, err)
	e := addTestExercise(t, svc, w.ID, models.Set{Weight: 50, Reps: 8}, models.Set{Weight: 55, Reps: 6})

	e, err = svc.AddSet(ctx, e.ID, models.Set{Weight: 60, Reps: 4, RIR: 1})
	require.NoError(t, err)
	require.Len(t, e.Sets, 3)

	e, err = svc.EditSet(ctx, e.ID, 1, SetPatch{Reps: ptr(7)})
	require.NoError(t, err)
	assert.Equal(t, models.Set{Weight: 55, Reps: 7}, e.Sets[1])

	indexTests := []struct {
		name  string
		index int
	}{
		{"negative", -1},
		{"length", 3},
		{"beyond", 10},
	}
	for _, tt := range indexTests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.EditSet(ctx, e.ID, tt.index, SetPatch{Reps: ptr(1)})
			requireCode(t, err, CodeBadUserInput)
			_, err = svc.RemoveSet(ctx, e.ID, tt.index)
			requireCode(t, err, CodeBadUserInput)
		})
	}

	_, err = svc.EditSet(ctx, e.ID, 0, SetPatch{})
	requireCode(t, err, CodeBadUserInput)
	_, err = svc.EditSet(ctx, e.ID, 0, SetPatch{Weight: ptr(-5.0)})
	requireCode(t, err, CodeBadUserInput)

	e, err = svc.RemoveSet(ctx, e.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, []models.Set{{Weight: 55, Reps: 7}, {Weight: 60, Reps: 4, RIR: 1}}, e.Sets)

	stored, err := svc.GetExercise(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.Sets, stored.Sets)
}

func TestWorkoutTemplates(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	u := addTestUser(t, svc, "Ada")

	_, err := svc.CreateWorkoutTemplate(ctx, NewTemplateInput{UserID: u.ID, Name: "Empty"})
	requireCode(t, err, CodeBadUserInput)

	tmpl, err := svc.CreateWorkoutTemplate(ctx, NewTemplateInput{UserID: u.ID, Name: "Upper", Exercises: []models.TemplateExercise{
		{Name: "Bench", Sets: []models.Set{{Weight: 60, Reps: 5}}},
	}})
	require.NoError(t, err)

	tmpl, err = svc.AddTemplateExercise(ctx, tmpl.ID, models.TemplateExercise{Name: " Row ", Sets: []models.Set{{Weight: 50, Reps: 8}}})
	require.NoError(t, err)
	require.Len(t, tmpl.Exercises, 2)
	assert.Equal(t, "Row", tmpl.Exercises[1].Name)

	tmpl, err = svc.AddTemplateSet(ctx, tmpl.ID, 1, models.Set{Weight: 55, Reps: 6})
	require.NoError(t, err)
	assert.Len(t, tmpl.Exercises[1].Sets, 2)

	tmpl, err = svc.EditTemplateSet(ctx, tmpl.ID, 1, 1, SetPatch{RIR: ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, tmpl.Exercises[1].Sets[1].RIR)

	_, err = svc.EditTemplateSet(ctx, tmpl.ID, 2, 0, SetPatch{RIR: ptr(2)})
	requireCode(t, err, CodeBadUserInput)
	_, err = svc.RemoveTemplateSet(ctx, tmpl.ID, 1, 5)
	requireCode(t, err, CodeBadUserInput)

	tmpl, err = svc.RemoveTemplateSet(ctx, tmpl.ID, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []models.Set{{Weight: 55, Reps: 6, RIR: 2}}, tmpl.Exercises[1].Sets)

	tmpl, err = svc.EditTemplateExercise(ctx, tmpl.ID, 0, TemplateExercisePatch{Name: ptr("Incline")})
	require.NoError(t, err)
	assert.Equal(t, "Incline", tmpl.Exercises[0].Name)
	_, err = svc.EditTemplateExercise(ctx, tmpl.ID, 0, TemplateExercisePatch{})
	requireCode(t, err, CodeBadUserInput)

	tmpl, err = svc.RemoveTemplateExercise(ctx, tmpl.ID, 0)
	require.NoError(t, err)
	require.Len(t, tmpl.Exercises, 1)
	assert.Equal(t, "Row", tmpl.Exercises[0].Name)

	_, err = svc.EditWorkoutTemplate(ctx, tmpl.ID, nil)
	requireCode(t, err, CodeBadUserInput)
	tmpl, err = svc.EditWorkoutTemplate(ctx, tmpl.ID, ptr("Pull"))
	require.NoError(t, err)

	list, err := svc.ListWorkoutTemplates(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Pull", list[0].Name)

	_, err = svc.RemoveWorkoutTemplate(ctx, tmpl.ID)
	require.NoError(t, err)
	_, err = svc.RemoveWorkoutTemplate(ctx, tmpl.ID)
	requireCode(t, err, CodeNotFound)
}

func TestScheduleWorkout(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	u := addTestUser(t, svc, "Ada")

	tmpl, err := svc.CreateWorkoutTemplate(ctx, NewTemplateInput{UserID: u.ID, Name: "Full Body", Exercises: []models.TemplateExercise{
		{Name: "Squat", Sets: []models.Set{{Weight: 100, Reps: 5}, {Weight: 100, Reps: 5}}},
		{Name: "Press", Sets: []models.Set{{Weight: 40, Reps: 8, RIR: 2}}},
	}})
	require.NoError(t, err)
	before, err := svc.GetWorkoutTemplate(ctx, tmpl.ID)
	require.NoError(t, err)

	_, err = svc.ScheduleWorkout(ctx, u.ID, "2024-07-01", store.NewID())
	requireCode(t, err, CodeNotFound)
	_, err = svc.ScheduleWorkout(ctx, u.ID, "someday", tmpl.ID)
	requireCode(t, err, CodeBadUserInput)

	w, err := svc.ScheduleWorkout(ctx, u.ID, "2024-07-01", tmpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "Full Body", w.Name)
	assert.Equal(t, "2024-07-01", w.Date, "scheduling accepts future dates")
	require.NotNil(t, w.TemplateID)
	assert.Equal(t, tmpl.ID, *w.TemplateID)

	workouts, err := svc.workouts.Find(ctx, store.Filter{"user": u.ID})
	require.NoError(t, err)
	assert.Len(t, workouts, 1)

	exercises, err := svc.ListExercises(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, exercises, 2)
	assert.Equal(t, "Squat", exercises[0].Name)
	assert.Equal(t, before.Exercises[0].Sets, exercises[0].Sets)
	assert.Equal(t, "Press", exercises[1].Name)

	_, err = svc.EditSet(ctx, exercises[0].ID, 0, SetPatch{Weight: ptr(120.0)})
	require.NoError(t, err)

	after, err := svc.templates.Get(ctx, tmpl.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after, "template must not change")

	day, err := svc.ScheduledWorkouts(ctx, u.ID, "2024-07-01")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, w.ID, day[0].ID)
}
