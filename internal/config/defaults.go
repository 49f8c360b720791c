package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerHost            = "0.0.0.0"
	DefaultServerPort            = 8080
	DefaultServerMode            = "release"
	DefaultServerReadTimeout     = 30 * time.Second
	DefaultServerWriteTimeout    = 120 * time.Second
	DefaultServerShutdownTimeout = 30 * time.Second
	DefaultServerMaxBodySize     = 8 << 20

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultWindow          = 20000
	DefaultMaxPermutations = 500
	DefaultMaxCyclizations = 100
	DefaultMaxPlans        = 1000
	DefaultMaxScaffolds    = 50

	DefaultWorkerConcurrency = 4
	DefaultWorkerTimeout     = 5 * time.Minute

	DefaultCacheAddr   = "localhost:6379"
	DefaultCachePrefix = "bgcs:"
	DefaultCacheTTL    = 24 * time.Hour

	DefaultEventsTopic        = "bgcs.analysis.completed"
	DefaultEventsRequiredAcks = -1
	DefaultEventsBatchTimeout = 10 * time.Millisecond
	DefaultEventsCompression  = "snappy"

	DefaultMetricsNamespace = "bgcs"
	DefaultMetricsPath      = "/metrics"
)

// Default returns a fully populated configuration with every default applied.
func Default() *Config {
	cfg := &Config{Limits: LimitsConfig{MaxScaffolds: DefaultMaxScaffolds}}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every zero-value field in cfg with its default.  Fields
// already set are left unchanged so explicit configuration always wins.
// Limits.MaxScaffolds is never defaulted here because zero is meaningful; the
// loader seeds it through viper instead.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultServerMaxBodySize
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Limits ────────────────────────────────────────────────────────────────
	if cfg.Limits.Window == 0 {
		cfg.Limits.Window = DefaultWindow
	}
	if cfg.Limits.MaxPermutations == 0 {
		cfg.Limits.MaxPermutations = DefaultMaxPermutations
	}
	if cfg.Limits.MaxCyclizations == 0 {
		cfg.Limits.MaxCyclizations = DefaultMaxCyclizations
	}
	if cfg.Limits.MaxPlans == 0 {
		cfg.Limits.MaxPlans = DefaultMaxPlans
	}

	// ── Worker ────────────────────────────────────────────────────────────────
	if cfg.Worker.Concurrency == 0 {
		cfg.Worker.Concurrency = DefaultWorkerConcurrency
	}
	if cfg.Worker.Timeout == 0 {
		cfg.Worker.Timeout = DefaultWorkerTimeout
	}

	// ── Cache ─────────────────────────────────────────────────────────────────
	if cfg.Cache.Addr == "" {
		cfg.Cache.Addr = DefaultCacheAddr
	}
	if cfg.Cache.Prefix == "" {
		cfg.Cache.Prefix = DefaultCachePrefix
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = DefaultCacheTTL
	}

	// ── Events ────────────────────────────────────────────────────────────────
	if cfg.Events.Topic == "" {
		cfg.Events.Topic = DefaultEventsTopic
	}
	if cfg.Events.RequiredAcks == 0 {
		cfg.Events.RequiredAcks = DefaultEventsRequiredAcks
	}
	if cfg.Events.BatchTimeout == 0 {
		cfg.Events.BatchTimeout = DefaultEventsBatchTimeout
	}
	if cfg.Events.Compression == "" {
		cfg.Events.Compression = DefaultEventsCompression
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
}

// defaultKeys lists the viper keys seeded before unmarshalling.  Seeding makes
// every key known to viper so that AutomaticEnv overrides apply even when the
// key is absent from the file.
func defaultKeys() map[string]interface{} {
	return map[string]interface{}{
		"server.host":             DefaultServerHost,
		"server.port":             DefaultServerPort,
		"server.mode":             DefaultServerMode,
		"server.read_timeout":     DefaultServerReadTimeout,
		"server.write_timeout":    DefaultServerWriteTimeout,
		"server.shutdown_timeout": DefaultServerShutdownTimeout,
		"server.max_body_size":    DefaultServerMaxBodySize,
		"log.level":               DefaultLogLevel,
		"log.format":              DefaultLogFormat,
		"limits.window":           DefaultWindow,
		"limits.max_permutations": DefaultMaxPermutations,
		"limits.max_cyclizations": DefaultMaxCyclizations,
		"limits.max_plans":        DefaultMaxPlans,
		"limits.max_scaffolds":    DefaultMaxScaffolds,
		"worker.concurrency":      DefaultWorkerConcurrency,
		"worker.timeout":          DefaultWorkerTimeout,
		"cache.enabled":           false,
		"cache.addr":              DefaultCacheAddr,
		"cache.password":          "",
		"cache.db":                0,
		"cache.prefix":            DefaultCachePrefix,
		"cache.ttl":               DefaultCacheTTL,
		"events.enabled":          false,
		"events.brokers":          []string{},
		"events.topic":            DefaultEventsTopic,
		"events.required_acks":    DefaultEventsRequiredAcks,
		"events.batch_timeout":    DefaultEventsBatchTimeout,
		"events.compression":      DefaultEventsCompression,
		"metrics.enabled":         false,
		"metrics.namespace":       DefaultMetricsNamespace,
		"metrics.path":            DefaultMetricsPath,
	}
}

//Personal.AI order the ending
