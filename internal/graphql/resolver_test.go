// ABOUTME: Executes queries and mutations against the schema with a sqlite store.
// ABOUTME: Checks result shapes and error extension codes.
package graphql

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/harperreed/fittrack/internal/cache"
	"github.com/harperreed/fittrack/internal/fitness"
	"github.com/harperreed/fittrack/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("github.com/patrickmn/go-cache.(*janitor).Run"),
		goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"),
		goleak.IgnoreTopFunction("github.com/golang/glog.(*fileSink).flushDaemon"),
	)
}

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func setupTestService(t *testing.T) *fitness.Service {
	t.Helper()

	db, err := store.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	c := cache.NewMemory(0)
	t.Cleanup(func() { _ = c.Close() })

	return fitness.NewService(db, c, zaptest.NewLogger(t).Sugar(),
		fitness.WithClock(func() time.Time { return fixedNow }))
}

type gqlError struct {
	Message    string                 `json:"message"`
	Extensions map[string]interface{} `json:"extensions"`
}

type gqlResult struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []gqlError                 `json:"errors"`
}

func execQuery(t *testing.T, svc *fitness.Service, query string, vars map[string]interface{}) gqlResult {
	t.Helper()

	schema, err := NewSchema(svc)
	require.NoError(t, err)

	resp := schema.Exec(context.Background(), query, "", vars)
	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var out gqlResult
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func decodeField(t *testing.T, res gqlResult, field string, out interface{}) {
	t.Helper()
	require.Empty(t, res.Errors)
	require.Contains(t, res.Data, field)
	require.NoError(t, json.Unmarshal(res.Data[field], out))
}

func errorCode(t *testing.T, res gqlResult) string {
	t.Helper()
	require.NotEmpty(t, res.Errors)
	code, _ := res.Errors[0].Extensions["code"].(string)
	return code
}

type userJSON struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	BodyWeight  float64 `json:"bodyWeight"`
	FirebaseUID *string `json:"firebaseUid"`
	Friends     []struct {
		ID string `json:"_id"`
	} `json:"friends"`
}

func addUser(t *testing.T, svc *fitness.Service, name string) userJSON {
	t.Helper()
	res := execQuery(t, svc, `mutation($name: String!) {
		addUser(name: $name, bodyWeight: 80, firebaseUid: "fb-1") { _id name bodyWeight firebaseUid }
	}`, map[string]interface{}{"name": name})

	var u userJSON
	decodeField(t, res, "addUser", &u)
	return u
}

func TestSchemaParses(t *testing.T) {
	svc := setupTestService(t)
	_, err := NewSchema(svc)
	require.NoError(t, err)
}

func TestAddAndGetUser(t *testing.T) {
	svc := setupTestService(t)
	u := addUser(t, svc, "Alice")

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, 80.0, u.BodyWeight)
	require.NotNil(t, u.FirebaseUID)
	assert.Equal(t, "fb-1", *u.FirebaseUID)

	res := execQuery(t, svc, `query($id: String!) { getUserById(_id: $id) { _id name friends { _id } } }`,
		map[string]interface{}{"id": u.ID})
	var got userJSON
	decodeField(t, res, "getUserById", &got)
	assert.Equal(t, u.ID, got.ID)
	assert.Empty(t, got.Friends)

	res = execQuery(t, svc, `{ getUserByFirebaseUid(firebaseUid: "fb-1") { _id } }`, nil)
	decodeField(t, res, "getUserByFirebaseUid", &got)
	assert.Equal(t, u.ID, got.ID)
}

func TestErrorCodes(t *testing.T) {
	svc := setupTestService(t)
	u := addUser(t, svc, "Alice")

	tests := []struct {
		name  string
		query string
		code  string
	}{
		{
			name:  "unknown user",
			query: `{ getUserById(_id: "0190a0b0-0000-7000-8000-000000000000") { _id } }`,
			code:  "NOT_FOUND",
		},
		{
			name:  "malformed id",
			query: `{ getUserById(_id: "not-an-id") { _id } }`,
			code:  "NOT_FOUND",
		},
		{
			name:  "blank name",
			query: `mutation { addUser(name: "  ", bodyWeight: 80) { _id } }`,
			code:  "BAD_USER_INPUT",
		},
		{
			name:  "future calorie entry",
			query: `mutation { addCalorieEntry(userId: "` + u.ID + `", food: "x", calories: 1, protein: 1, carbs: 1, fats: 1, date: "2099-01-01") { _id } }`,
			code:  "BAD_USER_INPUT",
		},
		{
			name:  "empty edit",
			query: `mutation { editUser(_id: "` + u.ID + `") { _id } }`,
			code:  "BAD_USER_INPUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execQuery(t, svc, tt.query, nil)
			assert.Equal(t, tt.code, errorCode(t, res))
		})
	}
}

func TestValidationErrorHasNoCode(t *testing.T) {
	svc := setupTestService(t)

	res := execQuery(t, svc, `{ users { noSuchField } }`, nil)
	require.NotEmpty(t, res.Errors)
	assert.NotContains(t, res.Errors[0].Extensions, "code")
}

func TestFriends(t *testing.T) {
	svc := setupTestService(t)
	alice := addUser(t, svc, "Alice")
	bob := addUser(t, svc, "Bob")

	vars := map[string]interface{}{"u": alice.ID, "f": bob.ID}
	res := execQuery(t, svc, `mutation($u: String!, $f: String!) {
		addFriend(userId: $u, friendId: $f) { _id friends { _id } }
	}`, vars)
	var got userJSON
	decodeField(t, res, "addFriend", &got)
	require.Len(t, got.Friends, 1)
	assert.Equal(t, bob.ID, got.Friends[0].ID)

	res = execQuery(t, svc, `mutation($u: String!, $f: String!) {
		removeFriend(userId: $u, friendId: $f) { _id friends { _id } }
	}`, vars)
	decodeField(t, res, "removeFriend", &got)
	assert.Empty(t, got.Friends)
}

func TestWorkoutFlow(t *testing.T) {
	svc := setupTestService(t)
	u := addUser(t, svc, "Alice")

	res := execQuery(t, svc, `mutation($u: String!) {
		addWorkout(userId: $u, name: "Push", date: "2024-06-14") { _id name date }
	}`, map[string]interface{}{"u": u.ID})
	var w struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
		Date string `json:"date"`
	}
	decodeField(t, res, "addWorkout", &w)
	assert.Equal(t, "2024-06-14", w.Date)

	res = execQuery(t, svc, `mutation($w: String!) {
		addExercise(workoutId: $w, name: "Bench", sets: [{weight: 100, reps: 5, rir: 2}]) { _id name sets { weight reps rir } }
	}`, map[string]interface{}{"w": w.ID})
	var ex struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
		Sets []struct {
			Weight float64 `json:"weight"`
			Reps   int     `json:"reps"`
			Rir    int     `json:"rir"`
		} `json:"sets"`
	}
	decodeField(t, res, "addExercise", &ex)
	require.Len(t, ex.Sets, 1)
	assert.Equal(t, 100.0, ex.Sets[0].Weight)

	res = execQuery(t, svc, `mutation($e: String!) {
		addSet(exerciseId: $e, weight: 105, reps: 3, rir: 1) { sets { weight } }
	}`, map[string]interface{}{"e": ex.ID})
	decodeField(t, res, "addSet", &ex)
	require.Len(t, ex.Sets, 2)
	assert.Equal(t, 105.0, ex.Sets[1].Weight)

	res = execQuery(t, svc, `mutation($e: String!) { removeSet(exerciseId: $e, setIndex: 5) { _id } }`,
		map[string]interface{}{"e": ex.ID})
	assert.Equal(t, "BAD_USER_INPUT", errorCode(t, res))

	res = execQuery(t, svc, `query($w: String!) { getWorkoutById(_id: $w) { exercises { name } } }`,
		map[string]interface{}{"w": w.ID})
	var full struct {
		Exercises []struct {
			Name string `json:"name"`
		} `json:"exercises"`
	}
	decodeField(t, res, "getWorkoutById", &full)
	require.Len(t, full.Exercises, 1)
	assert.Equal(t, "Bench", full.Exercises[0].Name)

	res = execQuery(t, svc, `{ getPersonalRecords(userId: "`+u.ID+`") { exerciseName maxWeight maxReps dateAchieved } }`, nil)
	var prs []struct {
		ExerciseName string  `json:"exerciseName"`
		MaxWeight    float64 `json:"maxWeight"`
		MaxReps      int     `json:"maxReps"`
		DateAchieved string  `json:"dateAchieved"`
	}
	decodeField(t, res, "getPersonalRecords", &prs)
	require.Len(t, prs, 1)
	assert.Equal(t, 105.0, prs[0].MaxWeight)
	assert.Equal(t, 5, prs[0].MaxReps)
}

func TestCalorieGraph(t *testing.T) {
	svc := setupTestService(t)
	u := addUser(t, svc, "Alice")

	for _, date := range []string{"2024-06-10", "2024-06-10", "2024-06-12"} {
		res := execQuery(t, svc, `mutation($u: String!, $d: String!) {
			addCalorieEntry(userId: $u, food: "Oats", calories: 300, protein: 10, carbs: 50, fats: 5, date: $d) { _id }
		}`, map[string]interface{}{"u": u.ID, "d": date})
		require.Empty(t, res.Errors)
	}

	res := execQuery(t, svc, `query($u: String!) {
		getCalorieGraphData(userId: $u, startDate: "2024-06-01", endDate: "2024-06-30") { date calories protein }
	}`, map[string]interface{}{"u": u.ID})
	var points []struct {
		Date     string  `json:"date"`
		Calories int     `json:"calories"`
		Protein  float64 `json:"protein"`
	}
	decodeField(t, res, "getCalorieGraphData", &points)
	require.Len(t, points, 2)
	assert.Equal(t, "2024-06-10", points[0].Date)
	assert.Equal(t, 600, points[0].Calories)
	assert.Equal(t, 20.0, points[0].Protein)

	res = execQuery(t, svc, `query($u: String!) {
		getCalorieGraphData(userId: $u, startDate: "2024-06-30", endDate: "2024-06-01") { date }
	}`, map[string]interface{}{"u": u.ID})
	assert.Equal(t, "BAD_USER_INPUT", errorCode(t, res))
}

func TestRemoveUserCascades(t *testing.T) {
	svc := setupTestService(t)
	u := addUser(t, svc, "Alice")

	res := execQuery(t, svc, `mutation($u: String!) {
		addBodyWeightEntry(userId: $u, weight: 79.5, date: "2024-06-01") { _id }
	}`, map[string]interface{}{"u": u.ID})
	require.Empty(t, res.Errors)

	res = execQuery(t, svc, `mutation($u: String!) { removeUser(_id: $u) { _id } }`, map[string]interface{}{"u": u.ID})
	require.Empty(t, res.Errors)

	res = execQuery(t, svc, `query($u: String!) { users { _id } bodyWeightEntries(userId: $u) { _id } }`,
		map[string]interface{}{"u": u.ID})
	var users, weights []userJSON
	decodeField(t, res, "users", &users)
	decodeField(t, res, "bodyWeightEntries", &weights)
	assert.Empty(t, users)
	assert.Empty(t, weights)
}
