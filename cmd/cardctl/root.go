package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/joshuapare/cardkit/internal/config"
	"github.com/joshuapare/cardkit/internal/logger"
	"github.com/joshuapare/cardkit/internal/report"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	debug      bool
	configPath string

	// cfg is loaded before any subcommand runs.
	cfg = config.DefaultConfig()
)

// errHadErrors makes the process exit 1 after diagnostics were printed.
var errHadErrors = errors.New("input had errors")

var rootCmd = &cobra.Command{
	Use:   "cardctl",
	Short: "Format values and resolve control-card fields",
	Long: `cardctl exercises the control-card runtime: it renders numbers into
fixed-width fields, converts option codes to flag words and back, resolves
keywords, and scans whole control decks reporting every problem found.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", "", "Config file (default ~/.cardkit/config.yaml)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errHadErrors) {
			printError("%v\n", err)
		}
		os.Exit(1)
	}
}

// setup loads the configuration and initializes logging.
func setup() error {
	path := configPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".cardkit", "config.yaml")
		}
	}

	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	opts, err := cfg.Logging.Options()
	if err != nil {
		return err
	}
	if debug {
		opts.Enabled, opts.Console, opts.Level = true, true, zapcore.DebugLevel
	}
	if err := logger.Init(opts); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.L.Debug("config loaded", zap.String("path", path))
	return nil
}

// newReport returns a diagnostics log wired to the global logger.
func newReport() *report.Log {
	return report.New(logger.L)
}

// printDiagnostics writes every report entry to stderr.
func printDiagnostics(l *report.Log) {
	if !quiet {
		_, _ = l.WriteTo(os.Stderr)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
