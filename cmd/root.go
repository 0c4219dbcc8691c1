package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/formwiz/internal/catalog"
	"github.com/abhisek/formwiz/internal/config"
	"github.com/abhisek/formwiz/internal/forms"
	"github.com/abhisek/formwiz/internal/llm"
	"github.com/abhisek/formwiz/internal/logging"
	"github.com/abhisek/formwiz/internal/progression"
	"github.com/abhisek/formwiz/internal/review"
	"github.com/abhisek/formwiz/internal/store"
)

// env is what PersistentPreRunE loads for every command.
var env struct {
	cfg config.Config
	log *zap.Logger
}

var rootCmd = &cobra.Command{
	Use:   "formwiz",
	Short: "Multi-step form wizard for the terminal",
	Long:  "formwiz walks you through a series of short forms, one category at a time, and remembers where you left off.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		log, err := logging.New(cfg.Log.Path, cfg.Log.Level, verbose)
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		env.cfg, env.log = cfg, log
		log.Debug("command started", zap.String("command", cmd.CommandPath()), zap.String("config", cfg.File))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if env.log != nil {
			_ = env.log.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FORMWIZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/formwiz/config.toml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(formsCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using the --db flag (highest
// priority), then FORMWIZ_DB or the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if p := env.cfg.Database.Path; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openDB(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	env.log.Debug("database opened", zap.String("path", dbPath))
	return db, nil
}

// openProgress restores the wizard state from db without a UI attached.
func openProgress(ctx context.Context, db *store.Store) (*progression.Store, error) {
	return progression.New(ctx, progression.Options{
		Catalog:      catalog.Default(),
		Storage:      db.SnapshotRepo(),
		Events:       db.EventRepo(),
		Logger:       env.log,
		SavedMessage: forms.SavedMessage,
	})
}

var errNoProvider = errors.New("no LLM provider configured: set one of GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY or configure [llm] in the config file")

// newReviewer builds the review service from the LLM settings.
func newReviewer(ctx context.Context, events store.EventRepo) (*review.Service, error) {
	settings, ok := env.cfg.ProviderSettings()
	if !ok {
		return nil, errNoProvider
	}
	provider, err := llm.NewProvider(ctx, settings, events, env.log)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}
	rc := review.DefaultConfig()
	if settings.Timeout > 0 {
		rc.Timeout = settings.Timeout
	}
	return review.NewService(provider, rc, env.log), nil
}
