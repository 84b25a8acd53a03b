package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/studyflow-app/studyflow/internal/daemon"
)

func init() {
	habitsAddCmd.Flags().StringVar(&habitCategory, "category", "", "Habit category (health, study, ...)")
	habitsCmd.AddCommand(habitsAddCmd)
	habitsCmd.AddCommand(habitsCheckinCmd)
	habitsCmd.AddCommand(habitsRmCmd)
	rootCmd.AddCommand(habitsCmd)
}

var habitCategory string

var habitsCmd = &cobra.Command{
	Use:   "habits",
	Short: "Track daily habits and their streaks",
	RunE:  runHabitsList,
}

var habitsAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a habit",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitsAdd,
}

var habitsCheckinCmd = &cobra.Command{
	Use:   "checkin <id>",
	Short: "Mark a habit done for today",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitsCheckin,
}

var habitsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a habit",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitsRm,
}

func runHabitsList(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	habits, err := d.Habits.Habits(userFlag)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits yet. Run 'studyflow habits add <title>' to create one.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tSTREAK\tBEST")
	for _, h := range habits {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			shortID(h.ID), h.Title, h.Category, h.Streak.CurrentDays, h.Streak.LongestDays)
	}
	return w.Flush()
}

func runHabitsAdd(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	habit, err := d.Habits.CreateHabit(userFlag, args[0], habitCategory)
	if err != nil {
		return err
	}
	fmt.Printf("Habit created: %s (%s)\n", habit.Title, shortID(habit.ID))
	return nil
}

func runHabitsCheckin(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	id, err := resolveHabitID(d, userFlag, args[0])
	if err != nil {
		return err
	}
	habit, err := d.Habits.CheckIn(userFlag, id, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d day(s) in a row (best %d)\n",
		habit.Title, habit.Streak.CurrentDays, habit.Streak.LongestDays)
	return nil
}

func runHabitsRm(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	id, err := resolveHabitID(d, userFlag, args[0])
	if err != nil {
		return err
	}
	if err := d.Habits.DeleteHabit(userFlag, id); err != nil {
		return err
	}
	fmt.Println("Habit deleted.")
	return nil
}
