// Package constants provides shared configuration values used across the laralog application.
package constants

import "time"

// Configuration file defaults
const (
	// DefaultConfigFile is the default configuration filename
	DefaultConfigFile = "laralog.yaml"

	// DefaultPrefsPath is the default user preferences location
	DefaultPrefsPath = "~/.config/laralog/prefs.toml"
)

// Polling defaults
const (
	// DefaultPollInterval is how often the watched file is probed for changes
	DefaultPollInterval = 500 * time.Millisecond

	// MinPollInterval is the fastest allowed poll interval
	MinPollInterval = 200 * time.Millisecond

	// MaxPollInterval is the slowest allowed poll interval
	MaxPollInterval = time.Second
)

// Buffer sizes
const (
	// DefaultBufferSize is the default size of the session history ring buffer
	DefaultBufferSize = 2000

	// DefaultSubscriptionBuffer is the default size for subscription channels
	DefaultSubscriptionBuffer = 100

	// DefaultNoticeBuffer is the size of the watcher notice channel
	DefaultNoticeBuffer = 16
)

// Recent files
const (
	// MaxRecentFiles is the maximum number of recently watched files to remember
	MaxRecentFiles = 10
)

// ANSI color codes for terminal output
var (
	// ColorReset resets the terminal color
	ColorReset = "\033[0m"

	// SeverityColors maps severity tokens to ANSI colors for the tail command
	SeverityColors = map[string]string{
		"emergency": "\033[91m", // bright red
		"alert":     "\033[91m",
		"critical":  "\033[91m",
		"error":     "\033[31m", // red
		"warning":   "\033[33m", // yellow
		"notice":    "\033[36m", // cyan
		"info":      "\033[32m", // green
		"debug":     "\033[90m", // gray
	}
)
