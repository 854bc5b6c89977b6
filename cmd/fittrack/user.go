// ABOUTME: CLI commands for managing users.
// ABOUTME: Supports add, list, show, and rm subcommands.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/fittrack/internal/fitness"
)

var userFirebaseUID string

var userCmd = &cobra.Command{
	Use:     "user",
	Aliases: []string{"u"},
	Short:   "Manage users",
	Long: `Create, inspect and remove users.

Removing a user also removes their workouts, calorie entries, body weight
entries, templates, routines and goals.`,
}

var userAddCmd = &cobra.Command{
	Use:   "add <name> <body-weight>",
	Short: "Add a user",
	Long: `Add a user with a starting body weight.

Examples:
  fittrack user add "Alice" 72.5
  fittrack user add Bob 90 --firebase-uid abc123`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		weight, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid body weight: %s", args[1])
		}

		u, err := svc.AddUser(cmd.Context(), fitness.NewUserInput{
			Name:        args[0],
			BodyWeight:  weight,
			FirebaseUID: userFirebaseUID,
		})
		if err != nil {
			return fmt.Errorf("failed to add user: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Added user %s (ID: %s)\n", u.Name, u.ID)
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := svc.ListUsers(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(users) == 0 {
			fmt.Fprintln(out, "No users found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, u := range users {
			fmt.Fprintf(out, "%s %s %.1f\n", faint.Sprint(u.ID), padRight(u.Name, 24), u.BodyWeight)
		}
		return nil
	},
}

var userShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a user with recent activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		u, err := svc.GetUser(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}

		workouts, err := svc.ListWorkouts(ctx, u.ID)
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}
		weights, err := svc.ListBodyWeightEntries(ctx, u.ID)
		if err != nil {
			return fmt.Errorf("failed to list body weight entries: %w", err)
		}
		friends, err := svc.Friends(ctx, u)
		if err != nil {
			return fmt.Errorf("failed to list friends: %w", err)
		}

		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		bold.Fprintf(out, "%s\n", u.Name)
		fmt.Fprintf(out, "ID:          %s\n", u.ID)
		fmt.Fprintf(out, "Body weight: %.1f\n", u.BodyWeight)
		fmt.Fprintf(out, "Created:     %s\n", u.CreatedAt.Format("2006-01-02 15:04"))
		if u.FirebaseUID != "" {
			fmt.Fprintf(out, "Firebase:    %s\n", u.FirebaseUID)
		}
		if len(friends) > 0 {
			names := make([]string, 0, len(friends))
			for _, f := range friends {
				names = append(names, f.Name)
			}
			fmt.Fprintf(out, "Friends:     %s\n", strings.Join(names, ", "))
		}

		fmt.Fprintln(out)
		bold.Fprintf(out, "Workouts (%d)\n", len(workouts))
		for i, w := range workouts {
			if i == 5 {
				faint.Fprintf(out, "  ... %d more\n", len(workouts)-i)
				break
			}
			fmt.Fprintf(out, "  %s %s %s\n", w.Date, padRight(w.Name, 20), faint.Sprint(w.ID))
		}
		if len(weights) > 0 {
			fmt.Fprintln(out)
			bold.Fprintln(out, "Latest body weight")
			fmt.Fprintf(out, "  %s %.1f\n", weights[0].Date, weights[0].Weight)
		}
		return nil
	},
}

var userRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove a user and everything they own",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := svc.RemoveUser(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to remove user: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Removed user %s\n", u.Name)
		return nil
	},
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	userAddCmd.Flags().StringVar(&userFirebaseUID, "firebase-uid", "", "external identity provider id")
	userCmd.AddCommand(userAddCmd, userListCmd, userShowCmd, userRemoveCmd)
	rootCmd.AddCommand(userCmd)
}
