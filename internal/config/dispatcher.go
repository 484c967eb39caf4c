package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// EnvDispatcherEnabled overrides the dispatcher enabled flag.
	EnvDispatcherEnabled = "DISPATCHER_ENABLED"

	// EnvDispatcherPollInterval overrides the dispatcher poll interval.
	EnvDispatcherPollInterval = "DISPATCHER_POLL_INTERVAL"

	// EnvDispatcherBatchSize overrides the number of tasks claimed per poll.
	EnvDispatcherBatchSize = "DISPATCHER_BATCH_SIZE"

	// EnvDispatcherTaskTimeout overrides the per-task execution timeout.
	EnvDispatcherTaskTimeout = "DISPATCHER_TASK_TIMEOUT"
)

// DispatcherConfig contains task dispatcher configuration.
type DispatcherConfig struct {
	Enabled      bool   `toml:"enabled"`
	PollInterval string `toml:"poll_interval"`
	BatchSize    int    `toml:"batch_size"`
	TaskTimeout  string `toml:"task_timeout"`
}

// PollIntervalDuration parses and returns the poll interval as a time.Duration.
func (c *DispatcherConfig) PollIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.PollInterval)
	return d
}

// TaskTimeoutDuration parses and returns the task timeout as a time.Duration.
func (c *DispatcherConfig) TaskTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.TaskTimeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the dispatcher configuration.
func (c *DispatcherConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *DispatcherConfig) Merge(overlay *DispatcherConfig) {
	c.Enabled = overlay.Enabled

	if overlay.PollInterval != "" {
		c.PollInterval = overlay.PollInterval
	}
	if overlay.BatchSize != 0 {
		c.BatchSize = overlay.BatchSize
	}
	if overlay.TaskTimeout != "" {
		c.TaskTimeout = overlay.TaskTimeout
	}
}

func (c *DispatcherConfig) loadDefaults() {
	if c.PollInterval == "" {
		c.PollInterval = "5s"
	}
	if c.BatchSize == 0 {
		c.BatchSize = 10
	}
	if c.TaskTimeout == "" {
		c.TaskTimeout = "5m"
	}
}

func (c *DispatcherConfig) loadEnv() {
	if v := os.Getenv(EnvDispatcherEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Enabled = enabled
		}
	}
	if v := os.Getenv(EnvDispatcherPollInterval); v != "" {
		c.PollInterval = v
	}
	if v := os.Getenv(EnvDispatcherBatchSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BatchSize = n
		}
	}
	if v := os.Getenv(EnvDispatcherTaskTimeout); v != "" {
		c.TaskTimeout = v
	}
}

func (c *DispatcherConfig) validate() error {
	if _, err := time.ParseDuration(c.PollInterval); err != nil {
		return fmt.Errorf("invalid poll_interval: %w", err)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch_size must be positive")
	}
	if _, err := time.ParseDuration(c.TaskTimeout); err != nil {
		return fmt.Errorf("invalid task_timeout: %w", err)
	}
	return nil
}
