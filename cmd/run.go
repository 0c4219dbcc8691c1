package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/formwiz/internal/app"
	"github.com/abhisek/formwiz/internal/catalog"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the wizard (the default command)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome screen")
	runCmd.Flags().Bool("no-splash", false, "Skip the welcome screen")
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	db, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	opts := app.Options{
		Catalog:       catalog.Default(),
		Storage:       db.SnapshotRepo(),
		Events:        db.EventRepo(),
		Logger:        env.log,
		Splash:        env.cfg.UI.Splash && !noSplash,
		ToastDuration: env.cfg.UI.ToastDuration,
	}

	// The wizard works without a model; only the review action needs one.
	svc, err := newReviewer(ctx, db.EventRepo())
	if err != nil {
		env.log.Info("answer review unavailable", zap.Error(err))
	} else {
		opts.Reviewer = svc
	}

	return app.Run(ctx, opts)
}
