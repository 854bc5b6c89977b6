// ABOUTME: CLI command for copying data between store backends.
// ABOUTME: Preserves document ids so references survive the move.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/fittrack/internal/store"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateToDir  string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data between store backends",
	Long: `Copy every collection from one store backend to another.

Backends are sqlite, badger and surreal. Both sides use the configured data
directory and SurrealDB settings unless --to-dir is given.

IMPORTANT:

  - Documents already in the destination with the same id are overwritten
  - Run with --dry-run first to see what would be copied
  - The source is never modified

USAGE:

  fittrack migrate --from sqlite --to badger --dry-run
  fittrack migrate --from sqlite --to badger
  fittrack migrate --from badger --to sqlite --to-dir /mnt/backup`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == "" || migrateTo == "" {
			return fmt.Errorf("--from and --to are required")
		}

		base, err := loadConfig()
		if err != nil {
			return err
		}

		srcCfg := *base
		srcCfg.Store.Backend = migrateFrom
		dstCfg := *base
		dstCfg.Store.Backend = migrateTo
		if migrateToDir != "" {
			dstCfg.Store.DataDir = migrateToDir
		}
		if migrateFrom == migrateTo && srcCfg.GetDataDir() == dstCfg.GetDataDir() {
			return fmt.Errorf("source and destination are the same store")
		}

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		src, err := srcCfg.OpenStore(ctx)
		if err != nil {
			return fmt.Errorf("failed to open source: %w", err)
		}
		defer src.Close()

		if migrateDryRun {
			color.New(color.FgYellow).Fprintln(out, "Dry run mode - no changes will be made")
			total := 0
			for _, collection := range store.AllCollections {
				docs, err := src.Find(ctx, collection, nil)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", collection, err)
				}
				fmt.Fprintf(out, "  %s %d\n", padRight(collection, 20), len(docs))
				total += len(docs)
			}
			fmt.Fprintf(out, "Would copy %d documents from %s to %s\n", total, migrateFrom, migrateTo)
			return nil
		}

		dst, err := dstCfg.OpenStore(ctx)
		if err != nil {
			return fmt.Errorf("failed to open destination: %w", err)
		}
		defer dst.Close()

		summary, err := store.Migrate(ctx, src, dst, store.AllCollections)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		for _, collection := range store.AllCollections {
			fmt.Fprintf(out, "  %s %d\n", padRight(collection, 20), summary.Counts[collection])
		}
		color.New(color.FgGreen).Fprintf(out, "✓ Copied %d documents from %s to %s\n", summary.Total(), migrateFrom, migrateTo)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source backend (sqlite, badger, surreal)")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend (sqlite, badger, surreal)")
	migrateCmd.Flags().StringVar(&migrateToDir, "to-dir", "", "destination data directory")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
