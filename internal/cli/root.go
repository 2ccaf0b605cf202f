package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/battleship-go/internal/config"
	"github.com/mcoot/battleship-go/internal/factory"
)

var cfg *Config

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	loaded, loadErr := DefaultConfig()
	if loadErr != nil {
		loaded = configFrom(config.Default())
	}
	cfg = loaded

	rootCmd := &cobra.Command{
		Use:   "battleship",
		Short: "Play battleship against the computer",
		Long: `battleship is a terminal game of battleship against a computer opponent.

Matches and statistics are saved between runs, so an unfinished match
picks up where it left off. With --server the game is played against a
running battleship server instead of the built-in engine.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadErr
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Play against a battleship server at this URL")
	rootCmd.PersistentFlags().StringVar(&cfg.StorageType, "store", cfg.StorageType, "Storage backend: memory, file, redis, postgres (env: STORAGE_TYPE)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL (env: REDIS_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "Postgres URL (env: DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory for the file store (env: DATA_DIR)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Log diagnostics to stderr")

	// Add subcommands
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newOutput(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	return slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel()}))
}

// openSession connects to the configured server or builds a local engine
func openSession(cmd *cobra.Command) (Session, error) {
	if cfg.Remote() {
		return &remoteSession{client: NewClient(cfg.ServerURL)}, nil
	}

	app, err := factory.New(cmd.Context(), cfg.FactoryConfig(newLogger(cmd)))
	if err != nil {
		return nil, err
	}
	return &localSession{app: app}, nil
}
