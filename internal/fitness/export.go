// ABOUTME: Per-user export of everything a user owns.
// ABOUTME: Supports JSON, YAML and Markdown output formats.
package fitness

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/fittrack/internal/models"
)

// ExportVersion identifies the export document layout.
const ExportVersion = "1.0"

// ExportData is the full export of one user.
type ExportData struct {
	Version           string                    `json:"version" yaml:"version"`
	ExportedAt        time.Time                 `json:"exported_at" yaml:"exported_at"`
	Tool              string                    `json:"tool" yaml:"tool"`
	User              *models.User              `json:"user" yaml:"user"`
	Workouts          []ExportWorkout           `json:"workouts" yaml:"workouts"`
	CalorieEntries    []*models.CalorieEntry    `json:"calorie_entries" yaml:"calorie_entries"`
	BodyWeightEntries []*models.BodyWeightEntry `json:"body_weight_entries" yaml:"body_weight_entries"`
	Templates         []*models.WorkoutTemplate `json:"templates" yaml:"templates"`
	Routines          []*models.WorkoutRoutine  `json:"routines" yaml:"routines"`
	Goals             *models.UserGoals         `json:"goals,omitempty" yaml:"goals,omitempty"`
}

// ExportWorkout is a workout with its exercises inlined.
type ExportWorkout struct {
	models.Workout `yaml:",inline"`
	Exercises      []*models.Exercise `json:"exercises" yaml:"exercises"`
}

// ExportUser gathers the user and everything the user owns.
func (s *Service) ExportUser(ctx context.Context, rawUserID string) (*ExportData, error) {
	u, err := s.GetUser(ctx, rawUserID)
	if err != nil {
		return nil, err
	}

	workouts, err := s.ListWorkouts(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	exported := make([]ExportWorkout, 0, len(workouts))
	for _, w := range workouts {
		exercises, err := s.ListExercises(ctx, w.ID)
		if err != nil {
			return nil, err
		}
		exported = append(exported, ExportWorkout{Workout: *w, Exercises: exercises})
	}

	calories, err := s.ListCalorieEntries(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	weights, err := s.ListBodyWeightEntries(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	templates, err := s.ListWorkoutTemplates(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	routines, err := s.ListWorkoutRoutines(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	goals, err := s.GetUserGoals(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	return &ExportData{
		Version:           ExportVersion,
		ExportedAt:        s.now().UTC(),
		Tool:              "fittrack",
		User:              u,
		Workouts:          exported,
		CalorieEntries:    calories,
		BodyWeightEntries: weights,
		Templates:         templates,
		Routines:          routines,
		Goals:             goals,
	}, nil
}

// JSON renders the export as indented JSON.
func (d *ExportData) JSON() ([]byte, error) {
	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return out, nil
}

// YAML renders the export as YAML.
func (d *ExportData) YAML() ([]byte, error) {
	out, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal YAML: %w", err)
	}
	return out, nil
}

// Markdown renders a human readable summary of the export.
func (d *ExportData) Markdown() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Fitness Export: %s\n\n", d.User.Name))
	sb.WriteString(fmt.Sprintf("Exported: %s\n\n", d.ExportedAt.Format("2006-01-02 15:04")))
	sb.WriteString(fmt.Sprintf("Body weight: %.1f\n\n", d.User.BodyWeight))

	if len(d.Workouts) > 0 {
		sb.WriteString("## Workouts\n\n")
		sb.WriteString("| Date | Name | Exercises | Sets |\n")
		sb.WriteString("|------|------|-----------|------|\n")
		for _, w := range d.Workouts {
			sets := 0
			for _, e := range w.Exercises {
				sets += len(e.Sets)
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d |\n", w.Date, w.Name, len(w.Exercises), sets))
		}
		sb.WriteString("\n")
	}

	if len(d.CalorieEntries) > 0 {
		sb.WriteString("## Calories\n\n")
		sb.WriteString("| Date | Food | Calories | P | C | F |\n")
		sb.WriteString("|------|------|----------|---|---|---|\n")
		for _, e := range d.CalorieEntries {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %.1f | %.1f | %.1f |\n",
				e.Date, e.Food, e.Calories, e.Protein, e.Carbs, e.Fats))
		}
		sb.WriteString("\n")
	}

	if len(d.BodyWeightEntries) > 0 {
		sb.WriteString("## Body Weight\n\n")
		sb.WriteString("| Date | Weight |\n")
		sb.WriteString("|------|--------|\n")
		for _, e := range d.BodyWeightEntries {
			sb.WriteString(fmt.Sprintf("| %s | %.1f |\n", e.Date, e.Weight))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
