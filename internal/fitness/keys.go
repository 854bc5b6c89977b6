// ABOUTME: Cache key layout for entity snapshots and aggregate lists.
// ABOUTME: Aggregate keys are deleted on write and rebuilt on the next read.
package fitness

const usersKey = "users"

func userKey(id string) string              { return "users/" + id }
func workoutKey(id string) string           { return "workouts/" + id }
func userWorkoutsKey(uid string) string     { return "workouts/user/" + uid }
func scheduledKey(uid, date string) string  { return "scheduled/" + uid + "/" + date }
func exerciseKey(id string) string          { return "exercises/" + id }
func workoutExercisesKey(wid string) string { return "exercises/workout/" + wid }
func calorieKey(id string) string           { return "calories/" + id }
func userCaloriesKey(uid string) string     { return "calories/user/" + uid }
func weightKey(id string) string            { return "weights/" + id }
func userWeightsKey(uid string) string      { return "weights/user/" + uid }
func templateKey(id string) string          { return "templates/" + id }
func userTemplatesKey(uid string) string    { return "templates/user/" + uid }
func userGoalsKey(uid string) string        { return "goals/user/" + uid }
func routineKey(id string) string           { return "routines/" + id }
func userRoutinesKey(uid string) string     { return "routines/user/" + uid }
