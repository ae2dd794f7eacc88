// Package main provides the entry point for the scorerank CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/scorerank/internal/config"
	"github.com/jonathan/scorerank/internal/logging"
)

var (
	configPath string
	logLevel   string
	logFormat  string

	// cfg is the merged configuration: built-in defaults, config file, then environment.
	// Command flags are applied on top inside each command.
	cfg    = config.Defaults()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "scorerank",
	Short: "Rank Rosetta scorefiles and submit relax jobs",
	Long: `scorerank collects the best-scoring structures from batch relax runs.

The rank command walks every subfolder of a root directory, merges the score*.sc
scorefiles in it and writes top_5_scores.txt with the lowest total_score entries.
The submit command submits one SLURM array job per input PDB.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")
}

// setup resolves configuration and builds the logger before any subcommand runs.
func setup(_ *cobra.Command, _ []string) error {
	loaded := &config.Config{}
	if configPath != "" {
		var err error
		loaded, err = config.LoadConfig(configPath)
		if err != nil {
			return err
		}
	}
	if err := loaded.ApplyEnv(os.Getenv); err != nil {
		return err
	}
	if logLevel != "" {
		loaded.LogLevel = logLevel
	}
	if logFormat != "" {
		loaded.LogFormat = logFormat
	}

	merged := loaded.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return err
	}
	cfg = merged

	l, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
