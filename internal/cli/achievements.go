package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/studyflow-app/studyflow/internal/daemon"
)

func init() {
	rootCmd.AddCommand(achievementsCmd)
}

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements and which ones you have unlocked",
	RunE:  runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	defs, err := d.Engagement.Catalog()
	if err != nil {
		return err
	}
	unlocked, err := d.DB.UnlockedIDs(userFlag)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tNAME\tDESCRIPTION\tXP")
	for _, def := range defs {
		mark := " "
		if unlocked[def.ID] {
			mark = "✓"
		}
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%d\n", mark, def.Icon, def.Name, def.Description, def.RewardXP)
	}
	return w.Flush()
}
