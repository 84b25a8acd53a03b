package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/studyflow-app/studyflow/internal/daemon"
	"github.com/studyflow-app/studyflow/internal/domain"
)

func init() {
	goalsCmd.AddCommand(goalsAddCmd)
	goalsCmd.AddCommand(goalsProgressCmd)
	rootCmd.AddCommand(goalsCmd)
}

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Track long-running goals",
	RunE:  runGoalsList,
}

var goalsAddCmd = &cobra.Command{
	Use:   "add <title> <target>",
	Short: "Create a goal with a numeric target",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalsAdd,
}

var goalsProgressCmd = &cobra.Command{
	Use:   "progress <id> <delta>",
	Short: "Add progress toward a goal",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalsProgress,
}

func runGoalsList(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	goals, err := d.Habits.Goals(userFlag)
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		fmt.Println("No goals yet. Run 'studyflow goals add <title> <target>' to create one.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPROGRESS\tSTATUS")
	for _, g := range goals {
		fmt.Fprintf(w, "%s\t%s\t%d/%d (%.0f%%)\t%s\n",
			shortID(g.ID), g.Title, g.CurrentValue, g.TargetValue, g.ProgressPct(), g.Status)
	}
	return w.Flush()
}

func runGoalsAdd(cmd *cobra.Command, args []string) error {
	target, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("target must be a number, got %q", args[1])
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	goal, err := d.Habits.CreateGoal(userFlag, args[0], target)
	if err != nil {
		return err
	}
	fmt.Printf("Goal created: %s (%s)\n", goal.Title, shortID(goal.ID))
	return nil
}

func runGoalsProgress(cmd *cobra.Command, args []string) error {
	delta, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("delta must be a number, got %q", args[1])
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	id, err := resolveGoalID(d, userFlag, args[0])
	if err != nil {
		return err
	}
	goal, err := d.Habits.Progress(userFlag, id, delta)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d/%d (%.0f%%)", goal.Title, goal.CurrentValue, goal.TargetValue, goal.ProgressPct())
	if goal.Status == domain.GoalCompleted {
		fmt.Print("  🎉 completed")
	}
	fmt.Println()
	return nil
}
