// Package cli provides the command-line interface for the crisis assistant.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/raphaelgruber/crisis-assistant/internal/assistant"
	"github.com/raphaelgruber/crisis-assistant/internal/catalog"
	"github.com/raphaelgruber/crisis-assistant/internal/config"
	"github.com/raphaelgruber/crisis-assistant/internal/metrics"
	"github.com/raphaelgruber/crisis-assistant/internal/render"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose     bool
	catalogFile string
	threshold   float64
	noColor     bool

	// Per-invocation state, built in PersistentPreRunE
	cfg        config.Config
	logger     *slog.Logger
	logCleanup func() error
	asst       *assistant.Assistant
	rend       *render.Renderer
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "crisis",
	Short: "Offline first-aid lookup assistant",
	Long: `Crisis is an offline first-aid assistant. Describe an emergency in plain
words and it returns the matching step-by-step procedure from its built-in
catalog, or general guidance when the description is too vague.

Run without a subcommand to start an interactive session.
No network connection is used at any point.`,
	Args:          cobra.NoArgs,
	RunE:          runInteractive,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()
		if cmd.Flags().Changed("catalog") {
			cfg.CatalogFile = catalogFile
		}
		if cmd.Flags().Changed("threshold") {
			if !config.ValidThreshold(threshold) {
				return fmt.Errorf("threshold must be between 0 and 1, got %v", threshold)
			}
			cfg.Threshold = threshold
		}
		if noColor {
			cfg.NoColor = true
		}
		if verbose && cfg.LogLevel > slog.LevelInfo {
			cfg.LogLevel = slog.LevelInfo
		}

		logger, logCleanup = config.SetupLogger(cfg.LogFile, cfg.LogLevel)
		logger = logger.With("session", uuid.New().String()[:8])

		collector := metrics.NewCollector()
		start := time.Now()
		cat, err := catalog.Load(cfg.CatalogFile)
		if err != nil {
			logger.Error("failed to load catalog", "file", cfg.CatalogFile, "error", err)
			return fmt.Errorf("load catalog: %w", err)
		}
		collector.RecordTiming(metrics.OpCatalogLoad, time.Since(start))
		logger.Info("catalog loaded", "source", cat.Source(), "procedures", cat.Len())

		asst = assistant.New(cat, cfg.Threshold, collector, logger)
		rend = render.New(cfg.NoColor || !isTerminal(os.Stdout))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			if err := logCleanup(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
			logCleanup = nil
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "load the catalog from a YAML file instead of the built-in one")
	rootCmd.PersistentFlags().Float64Var(&threshold, "threshold", config.DefaultThreshold, "minimum confidence for a specific procedure")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Add subcommands
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(keywordsCmd)
	rootCmd.AddCommand(guideCmd)
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
