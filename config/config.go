package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bundleup/bundleup/domain"
	"github.com/bundleup/bundleup/infrastructure/registry/rubygems"
)

const defaultTimeoutSeconds = 15

// Config is the top-level configuration for bundleup.
type Config struct {
	Registry RegistryConfig `yaml:"registry"`
	Policy   PolicyConfig   `yaml:"policy"`
}

// RegistryConfig describes the package registry endpoint.
type RegistryConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// PolicyConfig holds the upgrade policy settings.
type PolicyConfig struct {
	StalenessDays int `yaml:"staleness_days"`
}

// Default returns the built-in configuration. A config file is optional;
// the tool runs bare against the public registry.
func Default() *Config {
	return &Config{
		Registry: RegistryConfig{
			URL:            rubygems.DefaultBaseURL,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Policy: PolicyConfig{
			StalenessDays: domain.DefaultStalenessDays,
		},
	}
}

// Load reads and parses a configuration file. Fields left empty in the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := Default()
	if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}
	applyDefaults(cfg)

	if validateErr := validate(cfg); validateErr != nil {
		return nil, validateErr
	}

	return cfg, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".bundleup.yaml",
		".bundleup.yml",
		"bundleup.yaml",
		"bundleup.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// applyDefaults fills fields an explicit file left empty or zeroed.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Registry.URL == "" {
		cfg.Registry.URL = def.Registry.URL
	}
	if cfg.Registry.TimeoutSeconds == 0 {
		cfg.Registry.TimeoutSeconds = def.Registry.TimeoutSeconds
	}
	if cfg.Policy.StalenessDays == 0 {
		cfg.Policy.StalenessDays = def.Policy.StalenessDays
	}
}

// validate checks for usable configuration values.
func validate(cfg *Config) error {
	parsed, err := url.Parse(cfg.Registry.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("registry.url %q is not a valid URL", cfg.Registry.URL)
	}
	if cfg.Registry.TimeoutSeconds < 0 {
		return fmt.Errorf(
			"registry.timeout_seconds must be positive, got %d",
			cfg.Registry.TimeoutSeconds,
		)
	}
	if cfg.Policy.StalenessDays < 0 {
		return fmt.Errorf(
			"policy.staleness_days must be positive, got %d",
			cfg.Policy.StalenessDays,
		)
	}
	return nil
}
