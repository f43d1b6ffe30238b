// Package config loads the run configuration from YAML, applies defaults
// and environment overrides, and converts the schema into the value types
// the batch engine consumes.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"fleetflow/internal/batch"
	"fleetflow/internal/flow"
)

// Seconds is an inclusive [min, max] pause interval, in whole seconds,
// written in YAML as a two-element list.
type Seconds [2]int

// Range converts the interval into the batch engine's pause type.
func (s Seconds) Range() batch.Range {
	return batch.Range{Min: s[0], Max: s[1]}
}

// Config holds all fleetflow configuration.
type Config struct {
	Settings SettingsConfig `yaml:"settings"`
	Flow     FlowConfig     `yaml:"flow"`
	Service  ServiceConfig  `yaml:"service"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SettingsConfig tunes concurrency, retries, selection and pacing.
type SettingsConfig struct {
	// Threads caps how many account pipelines run at once.
	Threads int `yaml:"threads"`
	// Attempts is the retry budget for the initialize and flow phases.
	Attempts int `yaml:"attempts"`
	// AccountsRange selects the inclusive 1-based slice [start, end];
	// (0,0) is degenerate and defers to ExactAccounts or selects all.
	AccountsRange [2]int `yaml:"accounts_range"`
	// ExactAccounts lists explicit 1-based indices to process.
	ExactAccounts []int `yaml:"exact_accounts"`

	PauseBetweenAttempts Seconds `yaml:"pause_between_attempts"`
	InitPause            Seconds `yaml:"init_pause"`
	PauseBetweenAccounts Seconds `yaml:"pause_between_accounts"`
	PauseBetweenTasks    Seconds `yaml:"pause_between_tasks"`
}

// FlowConfig describes the task plan every pipeline executes.
type FlowConfig struct {
	// Tasks is the ordered plan. Each slot is a task name or a list of
	// alternatives from which one is drawn per pipeline.
	Tasks []flow.Spec `yaml:"tasks"`
	// SweepAmount bounds the randomized amount the sweep task posts.
	SweepAmount [2]int `yaml:"sweep_amount"`
}

// ServiceConfig locates the remote service.
type ServiceConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			Threads:              1,
			Attempts:             3,
			AccountsRange:        [2]int{0, 0},
			PauseBetweenAttempts: Seconds{5, 10},
			InitPause:            Seconds{5, 10},
			PauseBetweenAccounts: Seconds{5, 15},
			PauseBetweenTasks:    Seconds{1, 3},
		},
		Flow: FlowConfig{
			Tasks:       []flow.Spec{{"probe"}, {"stats"}},
			SweepAmount: [2]int{1, 5},
		},
		Service: ServiceConfig{
			BaseURL: "http://localhost:8080",
			Timeout: "30s",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "logs/fleetflow.log",
		},
	}
}

// Load reads configuration from a YAML file, falling back to defaults
// when the file does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("FLEETFLOW_SERVICE_URL"); url != "" {
		c.Service.BaseURL = url
	}
	if file := os.Getenv("FLEETFLOW_LOG_FILE"); file != "" {
		c.Logging.File = file
	}
	if threads := os.Getenv("FLEETFLOW_THREADS"); threads != "" {
		if n, err := strconv.Atoi(threads); err == nil && n > 0 {
			c.Settings.Threads = n
		}
	}
}

// Validate checks invariants that would otherwise surface mid-run.
func (c *Config) Validate() error {
	if c.Settings.Threads < 1 {
		return fmt.Errorf("settings.threads must be >= 1, got %d", c.Settings.Threads)
	}
	if c.Settings.Attempts < 1 {
		return fmt.Errorf("settings.attempts must be >= 1, got %d", c.Settings.Attempts)
	}
	for name, s := range map[string]Seconds{
		"pause_between_attempts": c.Settings.PauseBetweenAttempts,
		"init_pause":             c.Settings.InitPause,
		"pause_between_accounts": c.Settings.PauseBetweenAccounts,
		"pause_between_tasks":    c.Settings.PauseBetweenTasks,
	} {
		if s[0] < 0 || s[1] < s[0] {
			return fmt.Errorf("settings.%s must satisfy 0 <= min <= max, got %v", name, s)
		}
	}
	if lo, hi := c.Settings.AccountsRange[0], c.Settings.AccountsRange[1]; lo < 0 || hi < 0 || (lo > hi && hi != 0) {
		return fmt.Errorf("settings.accounts_range is invalid: %v", c.Settings.AccountsRange)
	}
	if len(c.Flow.Tasks) == 0 {
		return fmt.Errorf("flow.tasks must not be empty")
	}
	for i, spec := range c.Flow.Tasks {
		if len(spec) == 0 {
			return fmt.Errorf("flow.tasks slot %d is empty", i+1)
		}
	}
	if c.Service.BaseURL == "" {
		return fmt.Errorf("service.base_url is required")
	}
	return nil
}

// RetryPolicy converts the settings into the engine's retry policy.
func (c *Config) RetryPolicy() batch.Policy {
	return batch.Policy{
		MaxAttempts: c.Settings.Attempts,
		Pause:       c.Settings.PauseBetweenAttempts.Range(),
	}
}

// Pacing converts the settings into the engine's pacing config.
func (c *Config) Pacing() batch.Pacing {
	return batch.Pacing{
		InitPause:       c.Settings.InitPause.Range(),
		BetweenAccounts: c.Settings.PauseBetweenAccounts.Range(),
		BetweenTasks:    c.Settings.PauseBetweenTasks.Range(),
	}
}

// SelectOptions converts the settings into the engine's selection options.
func (c *Config) SelectOptions() batch.SelectOptions {
	return batch.SelectOptions{
		Range: c.Settings.AccountsRange,
		Exact: c.Settings.ExactAccounts,
	}
}

// SweepAmount converts the sweep bounds into the engine's range type.
func (c *Config) SweepAmount() batch.Range {
	return batch.Range{Min: c.Flow.SweepAmount[0], Max: c.Flow.SweepAmount[1]}
}

// ServiceTimeout returns the service timeout as a duration.
func (c *Config) ServiceTimeout() time.Duration {
	d, err := time.ParseDuration(c.Service.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}
