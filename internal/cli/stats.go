package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/studyflow-app/studyflow/internal/daemon"
	"github.com/studyflow-app/studyflow/internal/domain"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study stats: streak, level, XP, and per-area counts",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	stats, err := d.Engagement.Stats(userFlag)
	if err != nil {
		return err
	}

	fmt.Printf("Level %d (%d XP, %d to next)\n", stats.Level, stats.TotalXP, stats.XPToNext)
	fmt.Printf("Streak: %d day(s), best %d\n", stats.CurrentStreak, stats.LongestStreak)
	fmt.Printf("Total study time: %dh%02dm\n", stats.TotalMinutes/60, stats.TotalMinutes%60)
	fmt.Printf("Sessions this week: %d\n", stats.SessionsThisWeek)

	if len(stats.SessionsByArea) > 0 {
		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "AREA\tSESSIONS")
		order := make([]domain.Area, 0, len(domain.CoreAreas)+2)
		order = append(order, domain.CoreAreas...)
		order = append(order, domain.AreaWriting, domain.AreaOther)
		for _, area := range order {
			if n, ok := stats.SessionsByArea[area]; ok {
				fmt.Fprintf(w, "%s\t%d\n", area, n)
			}
		}
		return w.Flush()
	}
	return nil
}
