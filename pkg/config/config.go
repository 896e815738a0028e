// Package config provides the configuration system for stockpile.
//
// The configuration is organized into sections:
//   - Logging: zap logger settings
//   - Metrics: Prometheus collection
//   - Tracing: OpenTelemetry span export
//   - Workload: the simulated demand driven by the CLI
//   - Pools: one entry per pool (name, initial size, base size, growth)
//
// Example usage:
//
//	cfg := config.Default()
//	cfg.Pools[0].Growth = "lean"
//
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config

import (
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/ajitpratap0/stockpile/pkg/errors"
	"github.com/ajitpratap0/stockpile/pkg/logger"
	"github.com/ajitpratap0/stockpile/pkg/observability"
	"github.com/ajitpratap0/stockpile/pkg/pool"
)

// Config is the top-level configuration document.
type Config struct {
	// Logging configures the global zap logger
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
	// Metrics controls Prometheus collection
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
	// Tracing controls OpenTelemetry span export
	Tracing observability.Config `yaml:"tracing" mapstructure:"tracing"`
	// Workload describes simulated demand
	Workload WorkloadConfig `yaml:"workload" mapstructure:"workload"`
	// Pools declares the pools to build
	Pools []PoolConfig `yaml:"pools" mapstructure:"pools"`
}

// MetricsConfig controls metrics collection.
type MetricsConfig struct {
	// Enabled registers pool collectors and prints them after a run
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// WorkloadConfig describes the demand a simulation puts on each pool.
type WorkloadConfig struct {
	// Rounds is the number of checkout bursts
	Rounds int `yaml:"rounds" mapstructure:"rounds"`
	// Burst is the number of instances checked out per round before all are returned
	Burst int `yaml:"burst" mapstructure:"burst"`
	// Workers is the number of goroutines sharing each pool
	Workers int `yaml:"workers" mapstructure:"workers"`
	// Timeout bounds a whole run (0 = none)
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// PoolConfig declares one pool.
type PoolConfig struct {
	// Name labels the pool in logs, metrics and reports
	Name string `yaml:"name" mapstructure:"name"`
	// InitialSize instances are created up front
	InitialSize int `yaml:"initial_size" mapstructure:"initial_size"`
	// BaseSize is the double-growth step; 0 means InitialSize
	BaseSize int `yaml:"base_size" mapstructure:"base_size"`
	// Growth is "lean" or "double" (default)
	Growth string `yaml:"growth" mapstructure:"growth"`
}

// GrowthMode parses the Growth field.
func (p PoolConfig) GrowthMode() (pool.GrowthMode, error) {
	return pool.ParseGrowthMode(p.Growth)
}

// Validate checks a single pool declaration.
func (p PoolConfig) Validate() error {
	if p.Name == "" {
		return errors.New(errors.ErrorTypeConfig, "pool name is required")
	}
	if p.InitialSize < 0 {
		return errors.New(errors.ErrorTypeConfig, "initial_size cannot be negative").
			WithDetail("pool", p.Name)
	}
	if p.BaseSize < 0 {
		return errors.New(errors.ErrorTypeConfig, "base_size cannot be negative").
			WithDetail("pool", p.Name)
	}
	if _, err := p.GrowthMode(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "invalid growth").
			WithDetail("pool", p.Name)
	}
	return nil
}

// Default returns a configuration with sensible defaults: one "widgets"
// pool growing in steps of three.
func Default() *Config {
	return &Config{
		Logging: logger.DefaultConfig(),
		Metrics: MetricsConfig{Enabled: false},
		Tracing: observability.DefaultConfig(),
		Workload: WorkloadConfig{
			Rounds:  100,
			Burst:   8,
			Workers: 1,
		},
		Pools: DefaultPools(),
	}
}

// DefaultPools is the pool list used when none is configured.
func DefaultPools() []PoolConfig {
	return []PoolConfig{
		{Name: "widgets", BaseSize: 3, Growth: pool.GrowthDouble.String()},
	}
}

// Validate validates the configuration for correctness.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "invalid logging.level")
	}
	if c.Tracing.SamplingRate < 0 || c.Tracing.SamplingRate > 1 {
		return errors.New(errors.ErrorTypeConfig, "tracing.sampling_rate must be between 0 and 1").
			WithDetail("value", c.Tracing.SamplingRate)
	}
	if c.Workload.Rounds < 0 {
		return errors.New(errors.ErrorTypeConfig, "workload.rounds cannot be negative")
	}
	if c.Workload.Burst < 0 {
		return errors.New(errors.ErrorTypeConfig, "workload.burst cannot be negative")
	}
	if c.Workload.Workers <= 0 {
		return errors.New(errors.ErrorTypeConfig, "workload.workers must be positive")
	}
	if c.Workload.Timeout < 0 {
		return errors.New(errors.ErrorTypeConfig, "workload.timeout cannot be negative")
	}

	seen := make(map[string]struct{}, len(c.Pools))
	for _, p := range c.Pools {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := seen[p.Name]; dup {
			return errors.Newf(errors.ErrorTypeConfig, "pool %q declared twice", p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}

// Pool returns the declaration named name.
func (c *Config) Pool(name string) (PoolConfig, bool) {
	for _, p := range c.Pools {
		if p.Name == name {
			return p, true
		}
	}
	return PoolConfig{}, false
}
