// Package cli implements the anonsum command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/anonsum/anonsum/internal/config"
	"github.com/anonsum/anonsum/internal/logger"
	"github.com/anonsum/anonsum/internal/mask"
	"github.com/anonsum/anonsum/internal/registry"
)

// Version info injected via ldflags at build time
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Global flags
var (
	cfgFile   string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "anonsum",
	Short: "Mask sensitive names, summarize with an LLM, restore the names",
	Long: `anonsum processes accomplishment documents for sharing with a
third-party language-model API without leaking employer, project, or
colleague names.

Configured names are replaced with stable placeholder tokens such as
[ORG_1] or [PERSON_2] before the document leaves the machine; the tokens
are restored in the returned summary. The mapping is recomputed from the
configuration on every run, so anonymize and deanonymize invocations agree
without sharing state.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and maps any failure to exit code 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		// Credentials commonly live in a local .env; absence is fine.
		_ = godotenv.Load()
	})

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to configuration file (default: ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "override log format (json, console)")
}

// loadConfig loads and validates configuration, applying CLI overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	return cfg, nil
}

// newLogger builds the zap-backed logger from configuration.
func newLogger(cfg *config.Config) (*logger.Logger, error) {
	loggerConfig := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}
	if cfg.Logging.File.Enabled {
		loggerConfig.File = &logger.FileConfig{
			Enabled: true,
			Path:    cfg.Logging.File.Path,
		}
	}
	return logger.New(loggerConfig)
}

// newEngine builds the registry and masking engine for one invocation.
func newEngine(cfg *config.Config, log *logger.Logger) (*mask.Engine, error) {
	reg, err := registry.Build(cfg.Anonymize)
	if err != nil {
		return nil, fmt.Errorf("building name registry: %w", err)
	}
	if reg.Len() == 0 {
		log.Warn("configuration contains no names to anonymize")
	}
	return mask.NewEngine(reg, log.WithComponent("mask")), nil
}

// readInput reads the input document for a subcommand.
func readInput(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading input file: %w", err)
	}
	return string(data), nil
}
