package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "authcard-demo",
	Short: "Demo host for the embeddable authentication card",
	Long: `authcard-demo runs a small echo application that embeds the
authentication card with an in-memory backend.

Available commands:
  serve    Start the demo server

Use "authcard-demo [command] --help" for more information about a command.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
