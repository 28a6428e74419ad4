package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/laralog/laralog/internal/constants"
	"github.com/laralog/laralog/internal/domain"
)

// Environment variable overrides, applied after the YAML file
const (
	envLogPath      = "LARALOG_LOG_PATH"
	envPollInterval = "LARALOG_POLL_INTERVAL"
	envStartAtEnd   = "LARALOG_START_AT_END"
)

// ApplyEnvOverrides merges the configured env file (if any) with the
// process environment and applies LARALOG_* overrides. Process
// environment wins over the env file.
func ApplyEnvOverrides(config *Config) error {
	env := map[string]string{}

	if config.EnvFile != "" {
		if _, err := os.Stat(config.EnvFile); os.IsNotExist(err) {
			return fmt.Errorf("env file not found: %s", config.EnvFile)
		}
		fileEnv, err := godotenv.Read(config.EnvFile)
		if err != nil {
			return fmt.Errorf("reading env file %s: %w", config.EnvFile, err)
		}
		for k, v := range fileEnv {
			env[k] = v
		}
	}

	for _, key := range []string{envLogPath, envPollInterval, envStartAtEnd} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}

	if v := env[envLogPath]; v != "" {
		config.LogPath = v
	}
	if v := env[envPollInterval]; v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidConfig, envPollInterval, err)
		}
		config.PollInterval = v
		config.pollInterval = interval
		if err := Validate(config); err != nil {
			return err
		}
	}
	if v := env[envStartAtEnd]; v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidConfig, envStartAtEnd, err)
		}
		config.StartAtEnd = &enabled
	}

	return nil
}

// FindConfigFile searches for a config file in standard locations
func FindConfigFile() (string, error) {
	candidates := []string{
		constants.DefaultConfigFile,
		"laralog.yml",
		".laralog.yaml",
		".laralog.yml",
	}

	for _, name := range candidates {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}

	return "", fmt.Errorf("no config file found (tried: %v)", candidates)
}

// CheckFilePermissions checks if a file has secure permissions.
// On Unix-like systems, it verifies the file is not world-writable.
func CheckFilePermissions(path string) error {
	// Skip permission check on Windows
	if runtime.GOOS == "windows" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("checking file permissions: %w", err)
	}

	if info.Mode().Perm()&0o002 != 0 {
		return fmt.Errorf("config file %s has insecure permissions: world-writable files can be modified by any user. Please run: chmod o-w %s", path, path)
	}

	return nil
}
