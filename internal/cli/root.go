// Package cli wires the cobra commands: a long-running API server and a
// one-shot analyzer for local use.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"finplan/internal/config"
	"finplan/internal/log"
)

var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "finplan",
	Short: "Personal finance planning toolkit",
	Long:  "Aggregate monthly cash flow, forecast expenses, and plan savings toward upcoming goals.",
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// loadConfig resolves the effective configuration for a command run.
func loadConfig() (*config.Config, error) {
	if flagConfig != "" {
		if err := os.Setenv("FINPLAN_CONFIG", flagConfig); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger() *log.Logger {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	return log.New(log.Config{Level: level, Component: log.ComponentApp})
}
