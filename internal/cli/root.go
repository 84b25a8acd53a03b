// Package cli implements the StudyFlow command-line interface using Cobra.
// Each subcommand maps to one surface of the tracker (log, stats, habits,
// goals, finance, pomodoro, export, serve).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "studyflow",
	Short: "StudyFlow — Track study sessions, habits, and progress",
	Long: `StudyFlow is a local-first study tracker.
Log study sessions, keep streaks alive, earn XP and achievements,
track habits, goals, and personal finances. All data stays on your machine.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var userFlag string

func init() {
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "local", "User ID to operate on")
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
