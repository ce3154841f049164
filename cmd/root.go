package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/recollect-cli/recollect/internal/app"
	"github.com/recollect-cli/recollect/internal/assist"
	"github.com/recollect-cli/recollect/internal/config"
	"github.com/recollect-cli/recollect/internal/scheduler"
	"github.com/recollect-cli/recollect/internal/screens/home"
	"github.com/recollect-cli/recollect/internal/session"
	"github.com/recollect-cli/recollect/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "recollect",
	Short: "Spaced repetition knowledge manager",
	Long:  "Recollect is a terminal knowledge base that schedules reviews with spaced repetition.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides RECOLLECT_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to settings file (overrides RECOLLECT_CONFIG env var)")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then RECOLLECT_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadSettings loads settings using --config flag, then RECOLLECT_CONFIG,
// then the default XDG path. A missing file yields defaults.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Settings{}, err
		}
	}
	return config.Load(path)
}

// openStore opens the SQLite store for a command invocation.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	settings, err := loadSettings(cmd)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	repo := st.Repo()
	deps := home.Deps{
		Scheduler:  scheduler.New(repo, settings.MasteryConfig()),
		Repo:       repo,
		Writer:     repo,
		Aggregator: session.NewAggregator(repo),
	}

	provider, err := assist.NewProviderFromEnv(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Memory hooks will be unavailable.")
	} else {
		deps.Provider = provider
	}

	return app.Run(deps)
}
