// Package cmd implements the recon command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agenthands/recon/internal/config"
	"github.com/agenthands/recon/internal/core"
	"github.com/agenthands/recon/internal/llm"
	"github.com/agenthands/recon/internal/logging"
)

// app is the state shared by every subcommand once the config is loaded.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	engine *core.Engine
	logger zerolog.Logger
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "recon",
		Short: "Reconcile two record sets",
		Long: `recon matches every record of a source dataset to its best counterpart in a
target dataset, comparing configured fields with string, numeric and phonetic
similarity algorithms.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default is $CONFIG_PATH or config/config.toml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newRunCommand(a))
	root.AddCommand(newSimilarityCommand(a))
	root.AddCommand(newAlgorithmsCommand(a))

	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	path := a.configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config/config.toml"
	}

	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	a.cfg = cfg

	a.logger = logging.NewFromConfig(cfg.Logging)
	logging.SetDefault(a.logger)
	ctx := logging.WithLogger(cmd.Context(), &a.logger)
	cmd.SetContext(ctx)

	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	a.engine = core.NewEngine(nil, cfg.Concurrency.Workers)
	if err := core.Configure(a.engine, cfg, llmClient); err != nil {
		return fmt.Errorf("failed to configure engine: %w", err)
	}

	return nil
}
