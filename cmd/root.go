package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vybdev/modelcat/config"
	"github.com/vybdev/modelcat/engine"
	"github.com/vybdev/modelcat/logging"
)

var (
	logLevel    string
	logFormat   string
	configDir   string
	catalogPath string

	// cfg is populated by the root command before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:          "modelcat",
	Short:        "modelcat loads, validates and resolves AI model catalogs",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = loaded

		if logLevel == "" {
			logLevel = cfg.Logging.Level
		}
		if logFormat == "" {
			logFormat = cfg.Logging.Format
		}
		return logging.Init(logLevel, logFormat)
	},
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print usage.
		fmt.Println(cmd.UsageString())
	},
}

// loadConfig reads the configuration from --config-dir, or from the nearest
// directory holding .modelcat when the flag is not set. --catalog overrides
// the configured catalog path.
func loadConfig() (*config.Config, error) {
	root := configDir
	if root == "" {
		found, err := config.FindRoot(".")
		switch {
		case err == nil:
			root = found
		case errors.Is(err, config.ErrNoRoot):
			root = "."
		default:
			return nil, err
		}
	}

	loaded, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	if catalogPath != "" {
		loaded.Catalog.Path = catalogPath
	}
	return loaded, nil
}

// openEngine returns the process-wide engine, loading the catalog on first
// use. Its metrics go to the default Prometheus registry.
func openEngine(cmd *cobra.Command) (*engine.Engine, error) {
	return engine.Shared(cmd.Context(), cfg, engine.WithRegisterer(prometheus.DefaultRegisterer))
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (e.g. debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text or json)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory holding .modelcat/config.yaml (default: nearest ancestor with .modelcat)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog document to load, overriding the configured path")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(fallbacksCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(embedCmd)
	rootCmd.AddCommand(versionCmd)
}
