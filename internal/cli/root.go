// Package cli provides the command-line interface for the analyzer.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"stock-analyzer/internal/analysis"
	"stock-analyzer/internal/config"
	"stock-analyzer/internal/logging"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Analyzer *analysis.Analyzer
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config:   cfg,
		Logger:   logger,
		Analyzer: analysis.NewAnalyzerWithOptions(logger, cfg.AnalyzerOptions()),
	}

	rootCmd := &cobra.Command{
		Use:   "analyzer",
		Short: "Deterministic technical analysis for OHLCV price series",
		Long: `Stock Analyzer computes technical indicators, support/resistance
levels, trend and volatility classification, a synthesized price target
with confidence, and a discrete recommendation from a daily OHLCV
series.

The engine is a pure function of its input: it performs no network
calls and keeps no state between runs. Bars are supplied as a CSV file
with columns date,open,high,low,close,volume.`,
		Example: `  analyzer analyze AAPL --file bars.csv
  analyzer analyze MSFT --file bars.csv --price 430.25 --json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
				app.Analyzer = analysis.NewAnalyzerWithOptions(app.Logger, cfg.AnalyzerOptions())
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newAnalyzeCmd(app))

	return rootCmd
}

// Execute loads configuration, builds the root command and runs it.
func Execute() error {
	cfg, err := config.Load("")
	if err != nil {
		cfg = config.Default()
	}

	logger := logging.NewLoggerWithConfig(logging.LogConfig{
		Level:      cfg.Logging.Level,
		Console:    cfg.Logging.Console,
		File:       cfg.Logging.File,
		FilePath:   cfg.Logging.FilePath,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
	})

	return NewRootCmd(cfg, logger).Execute()
}
