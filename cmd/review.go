package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/formwiz/internal/review"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Ask the configured LLM to review the collected answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		ctx := cmd.Context()

		db, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		st, err := openProgress(ctx, db)
		if err != nil {
			return fmt.Errorf("restore progress: %w", err)
		}

		svc, err := newReviewer(ctx, db.EventRepo())
		if err != nil {
			return err
		}

		res, err := svc.Review(ctx, st.Catalog(), st.Data())
		if errors.Is(err, review.ErrNoAnswers) {
			fmt.Println("Nothing to review yet. Fill in a form first.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("review answers: %w", err)
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		fmt.Printf("Review by %s\n", res.Model)
		fmt.Println(strings.Repeat("─", 60))
		fmt.Println(res.Summary)
		if len(res.Issues) == 0 {
			fmt.Println("\nNo issues found.")
			return nil
		}
		fmt.Println()
		for _, is := range res.Issues {
			fmt.Printf("%-8s %-24s %s\n", strings.ToUpper(string(is.Severity)), is.Label, is.Message)
		}
		return nil
	},
}

func init() {
	reviewCmd.Flags().Bool("json", false, "Print the result as JSON")
}
