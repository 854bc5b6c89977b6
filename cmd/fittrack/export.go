// ABOUTME: CLI command for exporting a user's data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <format> <user-id>",
	Short: "Export a user's data",
	Long: `Export a user and everything they own.

FORMATS:

  json       Full JSON export (suitable for backup)
  yaml       YAML export (human-readable)
  markdown   Markdown tables (for documentation/sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout

EXAMPLES:

  fittrack export json <user-id>               # Print JSON
  fittrack export json <user-id> -o me.json    # Save to file
  fittrack export markdown <user-id>           # Markdown tables`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		data, err := svc.ExportUser(cmd.Context(), args[1])
		if err != nil {
			return fmt.Errorf("failed to export user: %w", err)
		}

		var out []byte
		switch format {
		case "json":
			out, err = data.JSON()
		case "yaml":
			out, err = data.YAML()
		case "markdown", "md":
			out = []byte(data.Markdown())
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", format, err)
		}

		if exportOutput == "" {
			_, err = cmd.OutOrStdout().Write(out)
			return err
		}

		if err := os.WriteFile(exportOutput, out, 0600); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Exported to %s\n", exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}
