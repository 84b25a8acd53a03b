package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/studyflow-app/studyflow/internal/daemon"
)

func init() {
	logCmd.Flags().StringVar(&logNotes, "notes", "", "Optional notes for the session")
	logCmd.Flags().StringVar(&logDate, "date", "", "Session date as YYYY-MM-DD (default today)")
	rootCmd.AddCommand(logCmd)
}

var (
	logNotes string
	logDate  string
)

var logCmd = &cobra.Command{
	Use:   "log <subject> <minutes>",
	Short: "Log a study session",
	Long: `Log a study session and update your streak, XP, and achievements.

Examples:
  studyflow log Math 45
  studyflow log Physics 30 --notes "kinematics review"
  studyflow log History 60 --date 2026-08-27`,
	Args: cobra.ExactArgs(2),
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	minutes, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("minutes must be a number, got %q", args[1])
	}

	date := time.Now()
	if logDate != "" {
		date, err = time.Parse("2006-01-02", logDate)
		if err != nil {
			return fmt.Errorf("date must be YYYY-MM-DD, got %q", logDate)
		}
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	result, err := d.Engagement.LogSession(userFlag, args[0], minutes, logNotes, date)
	if err != nil {
		return err
	}

	fmt.Printf("Logged %d min of %s (+%d XP)\n",
		result.Session.DurationMinutes, result.Session.Subject, result.Session.XPEarned)
	fmt.Printf("Streak: %d day(s) (best %d)  Level %d, %d XP to next\n",
		result.Streak.CurrentDays, result.Streak.LongestDays,
		result.Level.Level, result.Level.XPToNext)
	for _, a := range result.NewlyUnlocked {
		fmt.Printf("Achievement unlocked: %s %s — %s\n", a.Icon, a.Name, a.Description)
	}
	return nil
}
