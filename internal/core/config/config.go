// Package config handles configuration loading and validation for drift.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Timing  Timing    `yaml:"timing"`
	TUI     TUIConfig `yaml:"tui"`
	DataDir string    `yaml:"-"` // set by caller, not from config file
}

// Timing holds the simulated latency knobs. Values are milliseconds.
type Timing struct {
	// DeliveryStepMS is the delay between each delivery status
	// transition (sending -> sent -> delivered -> read).
	DeliveryStepMS int `yaml:"delivery_step_ms"`
	// ReplyDelayMS is the delay before the demo conversation injects a
	// reply to an outgoing message.
	ReplyDelayMS int `yaml:"reply_delay_ms"`
	// LoginLatencyMS is the simulated credential-check delay.
	LoginLatencyMS int `yaml:"login_latency_ms"`
}

// DeliveryStep returns the per-transition delivery delay.
func (t Timing) DeliveryStep() time.Duration {
	return time.Duration(t.DeliveryStepMS) * time.Millisecond
}

// ReplyDelay returns the reply injection delay.
func (t Timing) ReplyDelay() time.Duration {
	return time.Duration(t.ReplyDelayMS) * time.Millisecond
}

// LoginLatency returns the simulated login delay.
func (t Timing) LoginLatency() time.Duration {
	return time.Duration(t.LoginLatencyMS) * time.Millisecond
}

// TUIConfig holds presentation layer settings.
type TUIConfig struct {
	// PollIntervalMS is how often the TUI re-reads store snapshots so
	// timer-driven status changes render. Milliseconds.
	PollIntervalMS int `yaml:"poll_interval_ms"`
}

// PollInterval returns the snapshot poll interval.
func (t TUIConfig) PollInterval() time.Duration {
	return time.Duration(t.PollIntervalMS) * time.Millisecond
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timing: Timing{
			DeliveryStepMS: 1000,
			ReplyDelayMS:   5000,
			LoginLatencyMS: 800,
		},
		TUI: TUIConfig{
			PollIntervalMS: 250,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Timing.DeliveryStepMS == 0 {
		c.Timing.DeliveryStepMS = defaults.Timing.DeliveryStepMS
	}
	if c.Timing.ReplyDelayMS == 0 {
		c.Timing.ReplyDelayMS = defaults.Timing.ReplyDelayMS
	}
	if c.Timing.LoginLatencyMS == 0 {
		c.Timing.LoginLatencyMS = defaults.Timing.LoginLatencyMS
	}
	if c.TUI.PollIntervalMS == 0 {
		c.TUI.PollIntervalMS = defaults.TUI.PollIntervalMS
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.DataDir == "" {
		errs = errs.Append("data_dir", fmt.Errorf("cannot be empty"))
	}
	if c.Timing.DeliveryStepMS < 0 {
		errs = errs.Append("timing.delivery_step_ms", fmt.Errorf("must not be negative"))
	}
	if c.Timing.ReplyDelayMS < 0 {
		errs = errs.Append("timing.reply_delay_ms", fmt.Errorf("must not be negative"))
	}
	if c.Timing.LoginLatencyMS < 0 {
		errs = errs.Append("timing.login_latency_ms", fmt.Errorf("must not be negative"))
	}
	if c.TUI.PollIntervalMS < 50 {
		errs = errs.Append("tui.poll_interval_ms", fmt.Errorf("must be at least 50"))
	}

	return errs.ToError()
}

// UserFile returns the path to the session user JSON file.
func (c *Config) UserFile() string {
	return filepath.Join(c.DataDir, "user.json")
}
