// ABOUTME: CLI commands for inspecting and scheduling workouts.
// ABOUTME: Supports list, show, and schedule subcommands.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/fittrack/internal/models"
)

var workoutDate string

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Inspect and schedule workouts",
	Long: `Inspect logged workouts and schedule new ones from templates.

COMMANDS:

  list       List a user's workouts, newest first
  show       View a workout with all its exercises and sets
  schedule   Create a workout from a template on a date`,
}

var workoutListCmd = &cobra.Command{
	Use:     "list <user-id>",
	Aliases: []string{"ls"},
	Short:   "List a user's workouts",
	Long: `List a user's workouts, newest first.

Use --date to show only workouts on one day:
  fittrack workout list <user-id> --date 2024-07-01`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var (
			workouts []*models.Workout
			err      error
		)
		if workoutDate != "" {
			workouts, err = svc.ScheduledWorkouts(ctx, args[0], workoutDate)
		} else {
			workouts, err = svc.ListWorkouts(ctx, args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(workouts) == 0 {
			fmt.Fprintln(out, "No workouts found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, w := range workouts {
			fmt.Fprintf(out, "%s %s %s\n", faint.Sprint(w.ID), w.Date, w.Name)
		}
		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <workout-id>",
	Short: "Show a workout with its exercises",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		w, err := svc.GetWorkout(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get workout: %w", err)
		}
		exercises, err := svc.ListExercises(ctx, w.ID)
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}

		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		bold.Fprintf(out, "%s", w.Name)
		fmt.Fprintf(out, " %s\n", w.Date)
		faint.Fprintf(out, "ID: %s\n", w.ID)
		if w.TemplateID != nil {
			faint.Fprintf(out, "Template: %s\n", *w.TemplateID)
		}

		if len(exercises) == 0 {
			fmt.Fprintln(out, "\nNo exercises logged.")
			return nil
		}
		for _, e := range exercises {
			fmt.Fprintln(out)
			bold.Fprintln(out, e.Name)
			for i, s := range e.Sets {
				fmt.Fprintf(out, "  %d. %.1f x %d (RIR %d)\n", i+1, s.Weight, s.Reps, s.RIR)
			}
		}
		return nil
	},
}

var workoutScheduleCmd = &cobra.Command{
	Use:   "schedule <user-id> <date> <template-id>",
	Short: "Schedule a workout from a template",
	Long: `Create a workout on the given date with one exercise per template exercise.

Example:
  fittrack workout schedule <user-id> 2024-07-01 <template-id>`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := svc.ScheduleWorkout(cmd.Context(), args[0], args[1], args[2])
		if err != nil {
			return fmt.Errorf("failed to schedule workout: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Scheduled %s on %s (ID: %s)\n", w.Name, w.Date, w.ID)
		return nil
	},
}

func init() {
	workoutListCmd.Flags().StringVar(&workoutDate, "date", "", "only workouts on this date (YYYY-MM-DD)")
	workoutCmd.AddCommand(workoutListCmd, workoutShowCmd, workoutScheduleCmd)
	rootCmd.AddCommand(workoutCmd)
}
