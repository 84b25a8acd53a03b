package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/studyflow-app/studyflow/internal/daemon"
)

func init() {
	pomodoroCmd.Flags().StringVar(&pomoTask, "task", "", "What you worked on")
	pomodoroCmd.Flags().StringVar(&pomoSubject, "subject", "", "Credit focus time as a study session for this subject")
	pomodoroCmd.Flags().IntVar(&pomoBreak, "break", 5, "Break length in minutes")
	rootCmd.AddCommand(pomodoroCmd)
}

var (
	pomoTask    string
	pomoSubject string
	pomoBreak   int
)

var pomodoroCmd = &cobra.Command{
	Use:   "pomodoro <focus-minutes> <cycles>",
	Short: "Record completed pomodoro cycles",
	Long: `Record completed pomodoro cycles. With --subject, the focus time is
also logged as a study session and counts toward streaks and XP.

Examples:
  studyflow pomodoro 25 4
  studyflow pomodoro 25 2 --subject Math --task "integrals"`,
	Args: cobra.ExactArgs(2),
	RunE: runPomodoro,
}

func runPomodoro(cmd *cobra.Command, args []string) error {
	focus, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("focus-minutes must be a number, got %q", args[0])
	}
	cycles, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("cycles must be a number, got %q", args[1])
	}

	task := pomoTask
	if task == "" {
		task = "Focus session"
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	session, result, err := d.Pomodoro.Complete(userFlag, task, pomoSubject, focus, pomoBreak, cycles)
	if err != nil {
		return err
	}

	fmt.Printf("Recorded %d cycle(s) of %d min focus\n", session.Cycles, session.FocusMinutes)
	if result != nil {
		fmt.Printf("Credited %d min of %s (+%d XP), streak %d day(s)\n",
			result.Session.DurationMinutes, result.Session.Subject,
			result.Session.XPEarned, result.Streak.CurrentDays)
		for _, a := range result.NewlyUnlocked {
			fmt.Printf("Achievement unlocked: %s %s — %s\n", a.Icon, a.Name, a.Description)
		}
	}
	return nil
}
