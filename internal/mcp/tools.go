// ABOUTME: MCP tool implementations for the fitness tracker.
// ABOUTME: Users, workouts, nutrition logging and progress analytics.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/fittrack/internal/fitness"
	"github.com/harperreed/fittrack/internal/models"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_user",
		Description: "Create a user with a starting body weight",
	}, s.handleAddUser)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_users",
		Description: "List all users sorted by name",
	}, s.handleListUsers)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_workout",
		Description: "Record a workout with its exercises and sets in one step",
	}, s.handleLogWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List a user's workouts, newest first",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a workout with all its exercises",
	}, s.handleGetWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_calories",
		Description: "Record a food with its calories and macros",
	}, s.handleLogCalories)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_body_weight",
		Description: "Record a body weight measurement",
	}, s.handleLogBodyWeight)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "calorie_summary",
		Description: "Daily calorie and macro totals over a date range",
	}, s.handleCalorieSummary)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "personal_records",
		Description: "Best weight and reps per exercise for a user",
	}, s.handlePersonalRecords)
}

// Tool input/output types

type addUserInput struct {
	Name        string  `json:"name" jsonschema:"Display name"`
	BodyWeight  float64 `json:"body_weight" jsonschema:"Current body weight"`
	FirebaseUID string  `json:"firebase_uid,omitempty" jsonschema:"External identity provider id"`
}

type userOutput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type emptyInput struct{}

type setInput struct {
	Weight float64 `json:"weight" jsonschema:"Load lifted"`
	Reps   int     `json:"reps" jsonschema:"Repetitions performed"`
	RIR    int     `json:"rir" jsonschema:"Reps in reserve"`
}

type exerciseInput struct {
	Name string     `json:"name" jsonschema:"Exercise name"`
	Sets []setInput `json:"sets" jsonschema:"Sets in order"`
}

type logWorkoutInput struct {
	UserID    string          `json:"user_id" jsonschema:"Owner user id"`
	Name      string          `json:"name" jsonschema:"Workout name"`
	Date      string          `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
	Exercises []exerciseInput `json:"exercises,omitempty" jsonschema:"Exercises performed"`
}

type workoutOutput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

type userIDInput struct {
	UserID string `json:"user_id" jsonschema:"User id"`
}

type getWorkoutInput struct {
	ID string `json:"id" jsonschema:"Workout id"`
}

type logCaloriesInput struct {
	UserID   string  `json:"user_id" jsonschema:"Owner user id"`
	Food     string  `json:"food" jsonschema:"Food description"`
	Calories int     `json:"calories" jsonschema:"Energy in kcal"`
	Protein  float64 `json:"protein" jsonschema:"Protein grams"`
	Carbs    float64 `json:"carbs" jsonschema:"Carbohydrate grams"`
	Fats     float64 `json:"fats" jsonschema:"Fat grams"`
	Date     string  `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
}

type logBodyWeightInput struct {
	UserID string  `json:"user_id" jsonschema:"Owner user id"`
	Weight float64 `json:"weight" jsonschema:"Body weight"`
	Date   string  `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
}

type entryOutput struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

type rangeInput struct {
	UserID    string `json:"user_id" jsonschema:"User id"`
	StartDate string `json:"start_date" jsonschema:"First date (YYYY-MM-DD), inclusive"`
	EndDate   string `json:"end_date" jsonschema:"Last date (YYYY-MM-DD), inclusive"`
}

type calorieSummaryOutput struct {
	Days []fitness.CaloriePoint `json:"days"`
}

type recordsOutput struct {
	Records []fitness.PersonalRecord `json:"records"`
}

// Tool handlers

func (s *Server) handleAddUser(ctx context.Context, req *mcp.CallToolRequest, input addUserInput) (*mcp.CallToolResult, userOutput, error) {
	u, err := s.svc.AddUser(ctx, fitness.NewUserInput{
		Name:        input.Name,
		BodyWeight:  input.BodyWeight,
		FirebaseUID: input.FirebaseUID,
	})
	if err != nil {
		return nil, userOutput{}, fmt.Errorf("failed to add user: %w", err)
	}

	return nil, userOutput{
		ID:      u.ID,
		Name:    u.Name,
		Message: fmt.Sprintf("Added user %s (ID: %s)", u.Name, u.ID),
	}, nil
}

func (s *Server) handleListUsers(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
	users, err := s.svc.ListUsers(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list users: %w", err)
	}

	if len(users) == 0 {
		return nil, map[string]interface{}{"message": "No users found."}, nil
	}

	return nil, map[string]interface{}{"users": users}, nil
}

func (s *Server) handleLogWorkout(ctx context.Context, req *mcp.CallToolRequest, input logWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	exercises := make([]models.TemplateExercise, 0, len(input.Exercises))
	for _, e := range input.Exercises {
		sets := make([]models.Set, 0, len(e.Sets))
		for _, set := range e.Sets {
			sets = append(sets, models.Set{Weight: set.Weight, Reps: set.Reps, RIR: set.RIR})
		}
		exercises = append(exercises, models.TemplateExercise{Name: e.Name, Sets: sets})
	}

	var (
		w   *models.Workout
		err error
	)
	if len(exercises) == 0 {
		w, err = s.svc.AddWorkout(ctx, fitness.NewWorkoutInput{UserID: input.UserID, Name: input.Name, Date: input.Date})
	} else {
		w, err = s.svc.LogWorkout(ctx, fitness.LogWorkoutInput{
			UserID:    input.UserID,
			Name:      input.Name,
			Date:      input.Date,
			Exercises: exercises,
		})
	}
	if err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to log workout: %w", err)
	}

	return nil, workoutOutput{
		ID:      w.ID,
		Name:    w.Name,
		Date:    w.Date,
		Message: fmt.Sprintf("Logged %s on %s with %d exercises (ID: %s)", w.Name, w.Date, len(exercises), w.ID),
	}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input userIDInput) (*mcp.CallToolResult, any, error) {
	workouts, err := s.svc.ListWorkouts(ctx, input.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	if len(workouts) == 0 {
		return nil, map[string]interface{}{"message": "No workouts found."}, nil
	}

	return nil, map[string]interface{}{"workouts": workouts}, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input getWorkoutInput) (*mcp.CallToolResult, any, error) {
	w, err := s.svc.GetWorkout(ctx, input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("workout not found: %s", input.ID)
	}
	exercises, err := s.svc.ListExercises(ctx, w.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list exercises: %w", err)
	}

	return nil, map[string]interface{}{"workout": w, "exercises": exercises}, nil
}

func (s *Server) handleLogCalories(ctx context.Context, req *mcp.CallToolRequest, input logCaloriesInput) (*mcp.CallToolResult, entryOutput, error) {
	e, err := s.svc.AddCalorieEntry(ctx, fitness.NewCalorieEntryInput{
		UserID:   input.UserID,
		Food:     input.Food,
		Calories: input.Calories,
		Protein:  input.Protein,
		Carbs:    input.Carbs,
		Fats:     input.Fats,
		Date:     input.Date,
	})
	if err != nil {
		return nil, entryOutput{}, fmt.Errorf("failed to log calories: %w", err)
	}

	return nil, entryOutput{
		ID:      e.ID,
		Date:    e.Date,
		Message: fmt.Sprintf("Logged %s: %d kcal on %s", e.Food, e.Calories, e.Date),
	}, nil
}

func (s *Server) handleLogBodyWeight(ctx context.Context, req *mcp.CallToolRequest, input logBodyWeightInput) (*mcp.CallToolResult, entryOutput, error) {
	e, err := s.svc.AddBodyWeightEntry(ctx, fitness.NewBodyWeightEntryInput{
		UserID: input.UserID,
		Weight: input.Weight,
		Date:   input.Date,
	})
	if err != nil {
		return nil, entryOutput{}, fmt.Errorf("failed to log body weight: %w", err)
	}

	return nil, entryOutput{
		ID:      e.ID,
		Date:    e.Date,
		Message: fmt.Sprintf("Logged body weight %.1f on %s", e.Weight, e.Date),
	}, nil
}

func (s *Server) handleCalorieSummary(ctx context.Context, req *mcp.CallToolRequest, input rangeInput) (*mcp.CallToolResult, calorieSummaryOutput, error) {
	days, err := s.svc.CalorieGraph(ctx, input.UserID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, calorieSummaryOutput{}, fmt.Errorf("failed to summarize calories: %w", err)
	}
	return nil, calorieSummaryOutput{Days: days}, nil
}

func (s *Server) handlePersonalRecords(ctx context.Context, req *mcp.CallToolRequest, input userIDInput) (*mcp.CallToolResult, recordsOutput, error) {
	records, err := s.svc.PersonalRecords(ctx, input.UserID)
	if err != nil {
		return nil, recordsOutput{}, fmt.Errorf("failed to compute personal records: %w", err)
	}
	return nil, recordsOutput{Records: records}, nil
}
