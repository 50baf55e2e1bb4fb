// Package config provides configuration management for ontocheck.
//
// Config file locations (priority order):
//  1. $ONTOCHECK_CONFIG
//  2. ./ontocheck.yaml
//  3. $XDG_CONFIG_HOME/ontocheck/config.yaml
//  4. ~/.config/ontocheck/config.yaml
//  5. /etc/ontocheck/config.yaml
//
// Missing files and missing keys fall back to DefaultConfig.
package config

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"ontocheck/internal/entailment"
	"ontocheck/internal/reasoner"
)

const (
	defaultDatabasePath = "./ontocheck.db"
	defaultLogLevel     = "info"
	defaultDebounce     = 500 * time.Millisecond
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	// Keys absent from the file keep their defaults; an explicit zero is kept.
	cfg := *DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		Database: DatabaseConfig{Path: defaultDatabasePath},
		Reasoner: reasoner.DefaultConfig(),
		Checker:  entailment.DefaultConfig(),
		Logging:  LoggingConfig{Level: defaultLogLevel},
		Watch:    WatchConfig{Debounce: Duration(defaultDebounce)},
	}
}

// applyDefaults replaces empty values that have no meaning of their own
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Database.Path == "" {
		c.Database.Path = defaultDatabasePath
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = Duration(defaultDebounce)
	}
}

// Validate rejects values no component can run with
func (c *Config) Validate() error {
	if c.Reasoner.FactLimit < 0 {
		return fmt.Errorf("reasoner.fact_limit must not be negative: %d", c.Reasoner.FactLimit)
	}
	if c.Checker.MaxDepth < 0 {
		return fmt.Errorf("checker.max_depth must not be negative: %d", c.Checker.MaxDepth)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative: %s", c.Watch.Debounce.Duration())
	}
	return nil
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	return fmt.Sprintf("Database: %s, Fact limit: %d, Max depth: %d, Log level: %s",
		c.Database.Path, c.Reasoner.FactLimit, c.Checker.MaxDepth, c.Logging.Level)
}
