package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/formwiz/internal/report"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show wizard progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, _ := cmd.Flags().GetBool("answers")

		db, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		st, err := openProgress(cmd.Context(), db)
		if err != nil {
			return fmt.Errorf("restore progress: %w", err)
		}
		return report.Render(os.Stdout, report.FromStore(st), report.Options{Answers: answers})
	},
}

func init() {
	statusCmd.Flags().BoolP("answers", "a", false, "Also list the collected answers")
}
