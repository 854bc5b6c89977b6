// ABOUTME: Shared fixtures and user resolver tests for the fitness service.
// ABOUTME: Runs against an in-memory badger store and the memory cache.
package fitness

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/harperreed/fittrack/internal/cache"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/store"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func setupTestService(t *testing.T) (*Service, *cache.Memory) {
	t.Helper()

	b, err := store.OpenBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	c := cache.NewMemory(time.Minute)
	t.Cleanup(func() { _ = c.Close() })

	svc := NewService(b, c, zaptest.NewLogger(t).Sugar(), WithClock(func() time.Time { return fixedNow }))
	return svc, c
}

func requireCode(t *testing.T, err error, want Code) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, CodeOf(err), "error: %v", err)
}

func cached(t *testing.T, c cache.Cache, key string) bool {
	t.Helper()
	var raw any
	found, err := c.Get(context.Background(), key, &raw)
	require.NoError(t, err)
	return found
}

func addTestUser(t *testing.T, svc *Service, name string) *models.User {
	t.Helper()
	u, err := svc.AddUser(context.Background(), NewUserInput{Name: name, BodyWeight: 80})
	require.NoError(t, err)
	return u
}

func ptr[T any](v T) *T { return &v }

func TestAddUser(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input NewUserInput
		code  Code
	}{
		{"trims name", NewUserInput{Name: "  Alice  ", BodyWeight: 60}, ""},
		{"blank name", NewUserInput{Name: "   ", BodyWeight: 60}, CodeBadUserInput},
		{"zero weight", NewUserInput{Name: "Bob", BodyWeight: 0}, CodeBadUserInput},
		{"negative weight", NewUserInput{Name: "Bob", BodyWeight: -1}, CodeBadUserInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := svc.AddUser(ctx, tt.input)
			if tt.code != "" {
				requireCode(t, err, tt.code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Alice", u.Name)
			assert.NotEmpty(t, u.ID)

			got, err := svc.GetUser(ctx, u.ID)
			require.NoError(t, err)
			assert.Equal(t, "Alice", got.Name)
		})
	}
}

func TestGetUserByFirebaseUID(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	u, err := svc.AddUser(ctx, NewUserInput{Name: "Ada", BodyWeight: 55, FirebaseUID: "fb-123"})
	require.NoError(t, err)

	got, err := svc.GetUserByFirebaseUID(ctx, "fb-123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.GetUserByFirebaseUID(ctx, "fb-missing")
	requireCode(t, err, CodeNotFound)
	_, err = svc.GetUserByFirebaseUID(ctx, " ")
	requireCode(t, err, CodeNotFound)
}

func TestEditUser(t *testing.T) {
	svc, c := setupTestService(t)
	ctx := context.Background()
	u := addTestUser(t, svc, "Ada")

	_, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.True(t, cached(t, c, usersKey))

	_, err = svc.EditUser(ctx, u.ID, UserPatch{})
	requireCode(t, err, CodeBadUserInput)

	_, err = svc.EditUser(ctx, u.ID, UserPatch{BodyWeight: ptr(-5.0)})
	requireCode(t, err, CodeBadUserInput)

	updated, err := svc.EditUser(ctx, u.ID, UserPatch{Name: ptr(" Grace "), Photo: ptr("/uploads/processed-a.png")})
	require.NoError(t, err)
	assert.Equal(t, "Grace", updated.Name)
	assert.Equal(t, 80.0, updated.BodyWeight)
	require.NotNil(t, updated.Photo)

	assert.False(t, cached(t, c, usersKey), "users aggregate should be invalidated")
	got, err := svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grace", got.Name)

	_, err = svc.EditUser(ctx, store.NewID(), UserPatch{Name: ptr("X")})
	requireCode(t, err, CodeNotFound)
}

func TestListUsersSorted(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	addTestUser(t, svc, "carol")
	addTestUser(t, svc, "Alice")
	addTestUser(t, svc, "bob")

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, []string{"Alice", "bob", "carol"}, []string{users[0].Name, users[1].Name, users[2].Name})
}

func TestMalformedIDsAreNotFound(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	for _, id := range []string{"", "nope", "123", "   "} {
		t.Run(id, func(t *testing.T) {
			_, err := svc.GetUser(ctx, id)
			requireCode(t, err, CodeNotFound)
			_, err = svc.GetWorkout(ctx, id)
			requireCode(t, err, CodeNotFound)
			_, err = svc.RemoveCalorieEntry(ctx, id)
			requireCode(t, err, CodeNotFound)
			_, err = svc.EditBodyWeightEntry(ctx, id, BodyWeightEntryPatch{Weight: ptr(70.0)})
			requireCode(t, err, CodeNotFound)
		})
	}
}

func TestRemoveUserTwice(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	u := addTestUser(t, svc, "Ada")

	removed, err := svc.RemoveUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, removed.ID)

	_, err = svc.RemoveUser(ctx, u.ID)
	requireCode(t, err, CodeNotFound)
}

func TestRemoveUserCascade(t *testing.T) {
	svc, c := setupTestService(t)
	ctx := context.Background()
	u := addTestUser(t, svc, "Ada")
	other := addTestUser(t, svc, "Grace")

	w1, err := svc.AddWorkout(ctx, NewWorkoutInput{UserID: u.ID, Name: "Push", Date: "2024-06-01"})
	require.NoError(t, err)
	_, err = svc.AddWorkout(ctx, NewWorkoutInput{UserID: u.ID, Name: "Pull"})
	require.NoError(t, err)
	keep, err := svc.AddWorkout(ctx, NewWorkoutInput{UserID: other.ID, Name: "Legs"})
	require.NoError(t, err)
	ex, err := svc.AddExercise(ctx, NewExerciseInput{WorkoutID: w1.ID, Name: "Bench", Sets: []models.Set{{Weight: 60, Reps: 5, RIR: 2}}})
	require.NoError(t, err)
	for _, food := range []string{"Oats", "Eggs"} {
		_, err := svc.AddCalorieEntry(ctx, NewCalorieEntryInput{UserID: u.ID, Food: food, Calories: 300, Protein: 10, Carbs: 20, Fats: 5})
		require.NoError(t, err)
	}
	weight, err := svc.AddBodyWeightEntry(ctx, NewBodyWeightEntryInput{UserID: u.ID, Weight: 79.5})
	require.NoError(t, err)

	_, err = svc.ListWorkouts(ctx, u.ID)
	require.NoError(t, err)
	_, err = svc.ListCalorieEntries(ctx, u.ID)
	require.NoError(t, err)
	_, err = svc.ScheduledWorkouts(ctx, u.ID, "2024-06-01")
	require.NoError(t, err)

	_, err = svc.RemoveUser(ctx, u.ID)
	require.NoError(t, err)

	owned := store.Filter{"user": u.ID}
	workouts, err := svc.workouts.Find(ctx, owned)
	require.NoError(t, err)
	assert.Empty(t, workouts)
	calories, err := svc.calories.Find(ctx, owned)
	require.NoError(t, err)
	assert.Empty(t, calories)
	weights, err := svc.weights.Find(ctx, owned)
	require.NoError(t, err)
	assert.Empty(t, weights)

	// Exercises of removed workouts stay in the store.
	_, err = svc.exercises.Get(ctx, ex.ID)
	require.NoError(t, err)

	// Other users are untouched.
	_, err = svc.GetWorkout(ctx, keep.ID)
	require.NoError(t, err)

	for _, key := range []string{
		usersKey, userKey(u.ID), userWorkoutsKey(u.ID), userCaloriesKey(u.ID), userWeightsKey(u.ID),
		workoutKey(w1.ID), weightKey(weight.ID), scheduledKey(u.ID, "2024-06-01"),
	} {
		assert.False(t, cached(t, c, key), "key %s should be invalidated", key)
	}

	_, err = svc.GetWorkout(ctx, w1.ID)
	requireCode(t, err, CodeNotFound)
	_, err = svc.GetBodyWeightEntry(ctx, weight.ID)
	requireCode(t, err, CodeNotFound)
}

func TestFriends(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	ada := addTestUser(t, svc, "Ada")
	grace := addTestUser(t, svc, "Grace")

	_, err := svc.AddFriend(ctx, ada.ID, ada.ID)
	requireCode(t, err, CodeBadUserInput)

	_, err = svc.AddFriend(ctx, ada.ID, store.NewID())
	requireCode(t, err, CodeNotFound)

	u, err := svc.AddFriend(ctx, ada.ID, grace.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{grace.ID}, u.Friends)

	_, err = svc.AddFriend(ctx, ada.ID, grace.ID)
	requireCode(t, err, CodeBadUserInput)

	friends, err := svc.Friends(ctx, u)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, "Grace", friends[0].Name)

	u, err = svc.RemoveFriend(ctx, ada.ID, grace.ID)
	require.NoError(t, err)
	assert.Empty(t, u.Friends)

	_, err = svc.RemoveFriend(ctx, ada.ID, grace.ID)
	requireCode(t, err, CodeNotFound)
}

func TestDanglingFriendIsNotFound(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	ada := addTestUser(t, svc, "Ada")
	grace := addTestUser(t, svc, "Grace")

	u, err := svc.AddFriend(ctx, ada.ID, grace.ID)
	require.NoError(t, err)
	_, err = svc.RemoveUser(ctx, grace.ID)
	require.NoError(t, err)

	_, err = svc.Friends(ctx, u)
	requireCode(t, err, CodeNotFound)
}

func TestCacheFailuresAreMisses(t *testing.T) {
	b, err := store.OpenBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	svc := NewService(b, failingCache{}, zaptest.NewLogger(t).Sugar())
	ctx := context.Background()

	u, err := svc.AddUser(ctx, NewUserInput{Name: "Ada", BodyWeight: 60})
	require.NoError(t, err)
	got, err := svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

type failingCache struct{}

func (failingCache) Get(context.Context, string, any) (bool, error) { return false, assert.AnError }
func (failingCache) Set(context.Context, string, any) error         { return assert.AnError }
func (failingCache) Delete(context.Context, ...string) error        { return assert.AnError }
func (failingCache) Close() error                                   { return nil }
