// ABOUTME: MCP resource implementations for the fitness tracker.
// ABOUTME: Provides fitness://users and fitness://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	usersURI   = "fitness://users"
	summaryURI = "fitness://summary"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         usersURI,
		Name:        "Users",
		Description: "Every user with id, name and body weight",
		MIMEType:    "application/json",
	}, s.handleUsersResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Fitness Summary Dashboard",
		Description: "Latest workout, body weight and calorie entry per user plus goals",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

type userSummary struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	BodyWeight    float64     `json:"body_weight"`
	WorkoutCount  int         `json:"workout_count"`
	LatestWorkout interface{} `json:"latest_workout,omitempty"`
	LatestWeight  interface{} `json:"latest_weight,omitempty"`
	LatestMeal    interface{} `json:"latest_meal,omitempty"`
	Goals         interface{} `json:"goals,omitempty"`
}

func jsonContents(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleUsersResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	users, err := s.svc.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return jsonContents(usersURI, map[string]interface{}{"users": users})
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	users, err := s.svc.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	summaries := make([]userSummary, 0, len(users))
	for _, u := range users {
		sum := userSummary{ID: u.ID, Name: u.Name, BodyWeight: u.BodyWeight}

		workouts, err := s.svc.ListWorkouts(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list workouts: %w", err)
		}
		sum.WorkoutCount = len(workouts)
		if len(workouts) > 0 {
			sum.LatestWorkout = workouts[0]
		}

		weights, err := s.svc.ListBodyWeightEntries(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list body weight entries: %w", err)
		}
		if len(weights) > 0 {
			sum.LatestWeight = weights[0]
		}

		meals, err := s.svc.ListCalorieEntries(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list calorie entries: %w", err)
		}
		if len(meals) > 0 {
			sum.LatestMeal = meals[0]
		}

		goals, err := s.svc.GetUserGoals(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get goals: %w", err)
		}
		if goals != nil {
			sum.Goals = goals
		}

		summaries = append(summaries, sum)
	}

	return jsonContents(summaryURI, map[string]interface{}{"users": summaries})
}
