// ABOUTME: CLI command printing the build version.
// ABOUTME: The version is set at link time with -ldflags.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "fittrack %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
