package cmd

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bundleup/bundleup/application"
	"github.com/bundleup/bundleup/config"
	"github.com/bundleup/bundleup/infrastructure/gemfile"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var (
	configPath    string
	dryRun        bool
	verbose       bool
	stalenessDays int
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var rootCmd = &cobra.Command{
	Use:   "bundleup [gemfile]",
	Short: "Gemfile dependency upgrader for the RubyGems registry",
	Long: `A CLI tool that rewrites gem declaration lines in a Gemfile, upgrading
each pinned version constraint toward the latest stable release on RubyGems.

New major versions are adopted only once their first stable release has
aged past a staleness threshold (default 180 days), so freshly cut majors
do not land in your Gemfile on day one.

Gems sourced from a git repository, a local path, or an explicit source
override are left untouched, as are commented-out declarations. Every
other byte of the file — indentation, quote style, trailing options,
comments — is preserved.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpdate,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to config file (default: auto-detect)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false,
		"Show what would be done without rewriting the Gemfile")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")
	rootCmd.PersistentFlags().IntVar(&stalenessDays, "staleness-days", 0,
		"Minimum age in days of a new major line before it is adopted (overrides config)")
}

func runUpdate(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if stalenessDays > 0 {
		cfg.Policy.StalenessDays = stalenessDays
	}

	path := gemfile.DefaultFilename
	if len(args) == 1 {
		path = args[0]
	}

	svc, err := injectUpdateService(cfg)
	if err != nil {
		return fmt.Errorf("failed to wire service: %w", err)
	}

	return svc.Run(ctx, path, application.RunOptions{
		DryRun:  dryRun,
		Verbose: verbose,
	})
}

// loadConfig resolves the configuration: an explicit --config path must
// exist, an auto-detected file is used when present, and built-in defaults
// apply otherwise.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		logger.Infof("Using config file: %s", configPath)
		return cfg, nil
	}

	found, err := config.FindConfigFile()
	if err != nil {
		logger.Debug("No config file found, using defaults")
		return config.Default(), nil
	}

	cfg, loadErr := config.Load(found)
	if loadErr != nil {
		return nil, fmt.Errorf("failed to load config: %w", loadErr)
	}
	logger.Infof("Using config file: %s", found)
	return cfg, nil
}
