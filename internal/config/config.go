// Package config defines the configuration structures for bgc-scaffold.  No
// I/O lives in this file, only plain data types and validation.
package config

import (
	"fmt"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level       string   `mapstructure:"level"`
	Format      string   `mapstructure:"format"` // "json" | "console"
	OutputPaths []string `mapstructure:"output_paths"`
}

// LimitsConfig holds the deterministic enumeration caps of the assembly
// engine.  MaxScaffolds ≤ 0 disables scaffold execution entirely.
type LimitsConfig struct {
	Window          int `mapstructure:"window"`
	MaxPermutations int `mapstructure:"max_permutations"`
	MaxCyclizations int `mapstructure:"max_cyclizations"`
	MaxPlans        int `mapstructure:"max_plans"`
	MaxScaffolds    int `mapstructure:"max_scaffolds"`
}

// WorkerConfig controls the analysis worker pool.
type WorkerConfig struct {
	Concurrency int           `mapstructure:"concurrency"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds Redis result-cache parameters.
type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// EventsConfig holds Kafka event-publishing parameters.
type EventsConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	RequiredAcks int           `mapstructure:"required_acks"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
	Compression  string        `mapstructure:"compression"`
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Path      string `mapstructure:"path"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root configuration
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration object.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Limits  LimitsConfig  `mapstructure:"limits"`
	Worker  WorkerConfig  `mapstructure:"worker"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Events  EventsConfig  `mapstructure:"events"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// Validate checks the configuration for internal consistency.  It is called by
// the loader after defaults have been applied.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	if err := c.Limits.Validate(); err != nil {
		return err
	}

	if c.Worker.Concurrency < 1 {
		return fmt.Errorf("config: worker.concurrency must be >= 1, got %d", c.Worker.Concurrency)
	}

	if c.Cache.Enabled {
		if c.Cache.Addr == "" {
			return fmt.Errorf("config: cache.addr is required when the cache is enabled")
		}
		if c.Cache.DB < 0 {
			return fmt.Errorf("config: cache.db must be >= 0, got %d", c.Cache.DB)
		}
	}

	if c.Events.Enabled {
		if len(c.Events.Brokers) == 0 {
			return fmt.Errorf("config: events.brokers must contain at least one broker address")
		}
		if c.Events.Topic == "" {
			return fmt.Errorf("config: events.topic is required when events are enabled")
		}
	}

	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("config: metrics.namespace is required when metrics are enabled")
	}
	return nil
}

// Validate checks that every enumeration cap is usable.
func (l LimitsConfig) Validate() error {
	if l.Window < 1 {
		return fmt.Errorf("config: limits.window must be >= 1 bp, got %d", l.Window)
	}
	if l.MaxPermutations < 1 {
		return fmt.Errorf("config: limits.max_permutations must be >= 1, got %d", l.MaxPermutations)
	}
	if l.MaxCyclizations < 1 {
		return fmt.Errorf("config: limits.max_cyclizations must be >= 1, got %d", l.MaxCyclizations)
	}
	if l.MaxPlans < 1 {
		return fmt.Errorf("config: limits.max_plans must be >= 1, got %d", l.MaxPlans)
	}
	return nil
}

//Personal.AI order the ending
