package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyflow-app/studyflow/internal/daemon"
)

func init() {
	rootCmd.AddCommand(motivateCmd)
}

var motivateCmd = &cobra.Command{
	Use:   "motivate",
	Short: "Get a motivational message based on your progress",
	RunE:  runMotivate,
}

func runMotivate(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	stats, err := d.Engagement.Stats(userFlag)
	if err != nil {
		return err
	}
	fmt.Println(d.Insight.Motivation(cmd.Context(), stats))
	return nil
}
