package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/studyflow-app/studyflow/internal/daemon"
)

func init() {
	sessionsCmd.AddCommand(sessionsRmCmd)
	rootCmd.AddCommand(sessionsCmd)
}

var sessionsCmd = &cobra.Command{
	Use:     "sessions",
	Aliases: []string{"ls"},
	Short:   "List logged study sessions",
	RunE:    runSessions,
}

var sessionsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a study session and rebuild the streak",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsRm,
}

func runSessions(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	sessions, err := d.Engagement.Sessions(userFlag)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions logged yet. Run 'studyflow log <subject> <minutes>' to get started.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tSUBJECT\tAREA\tMINUTES\tXP")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			shortID(s.ID),
			s.Date.Format("2006-01-02"),
			s.Subject,
			s.Area,
			s.DurationMinutes,
			s.XPEarned,
		)
	}
	return w.Flush()
}

func runSessionsRm(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	id, err := resolveSessionID(d, userFlag, args[0])
	if err != nil {
		return err
	}
	if err := d.Engagement.DeleteSession(userFlag, id); err != nil {
		return err
	}
	fmt.Println("Session deleted. Streak rebuilt from the remaining log.")
	return nil
}
