// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load(ctx) layers .env, YAML file and environment over the defaults.
// - Validation errors wrap ErrInvalidConfig, loading errors wrap ErrLoadConfig.
package config

import (
	"fmt"
	"runtime"
	"strings"
)

// Scoreboard variants.
const (
	VariantEvent    = "event"
	VariantSnapshot = "snapshot"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Variant selects the scoreboard flavour: event or snapshot.
	Variant string `koanf:"variant"`

	// StrictMatchLookup rejects operations that reference unknown matches.
	StrictMatchLookup bool `koanf:"strict_match_lookup"`

	// StoreCapacity pre-sizes the entity stores.
	StoreCapacity int `koanf:"store_capacity"`

	// MetricsNamespace prefixes every exported metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`

	// SimulationMatches is the number of matches the simulator plays.
	SimulationMatches int `koanf:"simulation_matches"`

	// SimulationWorkers bounds the simulator's concurrent goroutines.
	SimulationWorkers int `koanf:"simulation_workers"`

	// SimulationMaxGoals caps the goals scored per simulated match.
	SimulationMaxGoals int `koanf:"simulation_max_goals"`

	// SimulationFinishRatio is the share of simulated matches that finish.
	SimulationFinishRatio float64 `koanf:"simulation_finish_ratio"`

	// PruneFinished deletes finished matches from the store after a simulation.
	PruneFinished bool `koanf:"prune_finished"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		LogFormat:             "text",
		Variant:               VariantEvent,
		StrictMatchLookup:     false,
		StoreCapacity:         64,
		MetricsNamespace:      "livescore",
		SimulationMatches:     100,
		SimulationWorkers:     runtime.NumCPU() * 4,
		SimulationMaxGoals:    8,
		SimulationFinishRatio: 0.25,
		PruneFinished:         false,
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	switch c.Variant {
	case VariantEvent, VariantSnapshot:
	default:
		return fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, c.Variant)
	}
	if c.StoreCapacity < 0 {
		return fmt.Errorf("%w: store_capacity must not be negative", ErrInvalidConfig)
	}
	if c.MetricsNamespace == "" {
		return fmt.Errorf("%w: metrics_namespace must not be empty", ErrInvalidConfig)
	}
	if c.SimulationMatches < 0 {
		return fmt.Errorf("%w: simulation_matches must not be negative", ErrInvalidConfig)
	}
	if c.SimulationWorkers < 1 {
		return fmt.Errorf("%w: simulation_workers must be at least 1", ErrInvalidConfig)
	}
	if c.SimulationMaxGoals < 0 {
		return fmt.Errorf("%w: simulation_max_goals must not be negative", ErrInvalidConfig)
	}
	if c.SimulationFinishRatio < 0 || c.SimulationFinishRatio > 1 {
		return fmt.Errorf("%w: simulation_finish_ratio must be within [0, 1]", ErrInvalidConfig)
	}
	return nil
}
