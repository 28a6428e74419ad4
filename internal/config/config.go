// Package config loads and validates the laralog configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/laralog/laralog/internal/constants"
	"github.com/laralog/laralog/internal/domain"
	"github.com/laralog/laralog/internal/watch"
)

// Config represents the top-level laralog configuration
type Config struct {
	// LogPath is the default file to watch when none is given on the
	// command line
	LogPath string `yaml:"log_path"`
	// PollInterval is how often the file is probed (e.g. "500ms")
	PollInterval string `yaml:"poll_interval"`
	// StartAtEnd skips content already in the file; nil means true
	StartAtEnd *bool `yaml:"start_at_end,omitempty"`
	// Notify enables fsnotify wake hints between polls; nil means true
	Notify *bool `yaml:"notify,omitempty"`
	// BufferSize is the session history ring buffer capacity
	BufferSize int `yaml:"buffer_size"`
	// SubscriptionBuffer is the per-subscriber channel capacity
	SubscriptionBuffer int `yaml:"subscription_buffer"`
	// EnvFile is an optional .env file applied as overrides
	EnvFile string `yaml:"env_file"`

	// pollInterval is the parsed form of PollInterval
	pollInterval time.Duration
}

// Default returns a configuration with every field at its default
func Default() *Config {
	return &Config{
		PollInterval:       constants.DefaultPollInterval.String(),
		BufferSize:         constants.DefaultBufferSize,
		SubscriptionBuffer: constants.DefaultSubscriptionBuffer,
		pollInterval:       constants.DefaultPollInterval,
	}
}

// Load reads and parses a configuration file
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("checking config file: %w", err)
	}

	if err := CheckFilePermissions(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse parses configuration from YAML bytes and applies defaults
func Parse(data []byte) (*Config, error) {
	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	// Apply defaults
	if config.PollInterval == "" {
		config.PollInterval = constants.DefaultPollInterval.String()
	}
	if config.BufferSize == 0 {
		config.BufferSize = constants.DefaultBufferSize
	}
	if config.SubscriptionBuffer == 0 {
		config.SubscriptionBuffer = constants.DefaultSubscriptionBuffer
	}

	interval, err := time.ParseDuration(config.PollInterval)
	if err != nil {
		return nil, fmt.Errorf("%w: poll_interval: %v", domain.ErrInvalidConfig, err)
	}
	config.pollInterval = interval

	if err := Validate(config); err != nil {
		return nil, err
	}

	if err := ApplyEnvOverrides(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration for errors
func Validate(config *Config) error {
	var errs []string

	if config.pollInterval < constants.MinPollInterval || config.pollInterval > constants.MaxPollInterval {
		errs = append(errs, fmt.Sprintf("poll_interval: must be between %s and %s, got %s",
			constants.MinPollInterval, constants.MaxPollInterval, config.pollInterval))
	}
	if config.BufferSize < 0 {
		errs = append(errs, "buffer_size: must be non-negative")
	}
	if config.SubscriptionBuffer < 0 {
		errs = append(errs, "subscription_buffer: must be non-negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, joinErrs(errs))
	}
	return nil
}

func joinErrs(errs []string) string {
	out := errs[0]
	for _, e := range errs[1:] {
		out += "; " + e
	}
	return out
}

// StartAtEndEnabled resolves the start_at_end setting (default true)
func (c *Config) StartAtEndEnabled() bool {
	return c.StartAtEnd == nil || *c.StartAtEnd
}

// NotifyEnabled resolves the notify setting (default true)
func (c *Config) NotifyEnabled() bool {
	return c.Notify == nil || *c.Notify
}

// Interval returns the parsed poll interval
func (c *Config) Interval() time.Duration {
	if c.pollInterval <= 0 {
		return constants.DefaultPollInterval
	}
	return c.pollInterval
}

// ToWatchConfig converts the configuration to watcher settings
func (c *Config) ToWatchConfig() watch.Config {
	return watch.Config{
		PollInterval: c.Interval(),
		StartAtEnd:   c.StartAtEndEnabled(),
		Notify:       c.NotifyEnabled(),
	}
}
