package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultMaxScaffolds, cfg.Limits.MaxScaffolds)
	assert.Equal(t, DefaultWindow, cfg.Limits.Window)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{Limits: LimitsConfig{Window: 10, MaxPlans: 3}}
	ApplyDefaults(cfg)

	assert.Equal(t, 10, cfg.Limits.Window)
	assert.Equal(t, 3, cfg.Limits.MaxPlans)
	assert.Equal(t, DefaultMaxPermutations, cfg.Limits.MaxPermutations)
	assert.Equal(t, 0, cfg.Limits.MaxScaffolds)
}

func TestApplyDefaults_Nil(t *testing.T) {
	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"bad mode", func(c *Config) { c.Server.Mode = "prod" }, "server.mode"},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"bad window", func(c *Config) { c.Limits.Window = 0 }, "limits.window"},
		{"bad permutations", func(c *Config) { c.Limits.MaxPermutations = -1 }, "limits.max_permutations"},
		{"bad cyclizations", func(c *Config) { c.Limits.MaxCyclizations = 0 }, "limits.max_cyclizations"},
		{"bad plans", func(c *Config) { c.Limits.MaxPlans = 0 }, "limits.max_plans"},
		{"negative scaffolds allowed", func(c *Config) { c.Limits.MaxScaffolds = -1 }, ""},
		{"bad concurrency", func(c *Config) { c.Worker.Concurrency = 0 }, "worker.concurrency"},
		{"cache without addr", func(c *Config) { c.Cache.Enabled = true; c.Cache.Addr = "" }, "cache.addr"},
		{"events without brokers", func(c *Config) { c.Events.Enabled = true }, "events.brokers"},
		{"events without topic", func(c *Config) {
			c.Events.Enabled = true
			c.Events.Brokers = []string{"b:9092"}
			c.Events.Topic = ""
		}, "events.topic"},
		{"metrics without namespace", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Namespace = "" }, "metrics.namespace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

//Personal.AI order the ending
