package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetflow/internal/flow"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Settings.Threads)
	assert.Equal(t, 3, cfg.Settings.Attempts)
	assert.Equal(t, [2]int{0, 0}, cfg.Settings.AccountsRange)
	assert.NoError(t, cfg.Validate())
}

func TestLoadParsesTaskAlternatives(t *testing.T) {
	path := writeConfig(t, `
settings:
  threads: 5
  attempts: 2
  accounts_range: [3, 9]
  pause_between_attempts: [1, 4]
flow:
  tasks:
    - probe
    - [sweep, stats]
    - stats
  sweep_amount: [2, 8]
service:
  base_url: https://svc.example.com
  timeout: 45s
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Settings.Threads)
	assert.Equal(t, [2]int{3, 9}, cfg.Settings.AccountsRange)
	require.Len(t, cfg.Flow.Tasks, 3)
	assert.Equal(t, flow.Spec{"probe"}, cfg.Flow.Tasks[0])
	assert.Equal(t, flow.Spec{"sweep", "stats"}, cfg.Flow.Tasks[1])
	assert.Equal(t, "https://svc.example.com", cfg.Service.BaseURL)
	assert.Equal(t, 45.0, cfg.ServiceTimeout().Seconds())

	policy := cfg.RetryPolicy()
	assert.Equal(t, 2, policy.MaxAttempts)
	assert.Equal(t, 1, policy.Pause.Min)
	assert.Equal(t, 4, policy.Pause.Max)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FLEETFLOW_SERVICE_URL", "http://override.local")
	t.Setenv("FLEETFLOW_THREADS", "9")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://override.local", cfg.Service.BaseURL)
	assert.Equal(t, 9, cfg.Settings.Threads)
}

func TestEnvOverridesIgnoreInvalidThreads(t *testing.T) {
	t.Setenv("FLEETFLOW_THREADS", "not-a-number")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Settings.Threads)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero threads", func(c *Config) { c.Settings.Threads = 0 }},
		{"zero attempts", func(c *Config) { c.Settings.Attempts = 0 }},
		{"inverted pause range", func(c *Config) { c.Settings.InitPause = Seconds{9, 2} }},
		{"negative pause", func(c *Config) { c.Settings.PauseBetweenTasks = Seconds{-1, 3} }},
		{"inverted accounts range", func(c *Config) { c.Settings.AccountsRange = [2]int{5, 2} }},
		{"no tasks", func(c *Config) { c.Flow.Tasks = nil }},
		{"empty task slot", func(c *Config) { c.Flow.Tasks = []flow.Spec{{}} }},
		{"missing base url", func(c *Config) { c.Service.BaseURL = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, DefaultConfig().Validate())
	})
}

func TestServiceTimeoutFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Service.Timeout = "garbage"
	assert.Equal(t, 30.0, cfg.ServiceTimeout().Seconds())
}
