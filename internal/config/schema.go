package config

import (
	"time"

	"ontocheck/internal/entailment"
	"ontocheck/internal/reasoner"
)

// Config is the root configuration structure
type Config struct {
	Version  int               `yaml:"version"`
	Database DatabaseConfig    `yaml:"database"`
	Reasoner reasoner.Config   `yaml:"reasoner"`
	Checker  entailment.Config `yaml:"checker"`
	Logging  LoggingConfig     `yaml:"logging"`
	Watch    WatchConfig       `yaml:"watch"`
}

// DatabaseConfig locates the axiom store
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig selects the zap logger
type LoggingConfig struct {
	Level       string `yaml:"level"`       // debug, info, warn, error
	Development bool   `yaml:"development"` // console encoder, stack traces on warn
}

// WatchConfig tunes the ontology file watcher
type WatchConfig struct {
	Debounce Duration `yaml:"debounce"`
}

// Duration wraps time.Duration for YAML marshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
