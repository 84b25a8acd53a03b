package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyflow-app/studyflow/internal/daemon"
	"github.com/studyflow-app/studyflow/internal/infra/export"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Export sessions and transactions to an XLSX workbook",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := export.Workbook(d.DB, userFlag, args[0]); err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", args[0])
	return nil
}
