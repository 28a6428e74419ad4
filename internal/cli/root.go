// Package cli wires the command line surface: the interactive viewer,
// a stdout streaming mode, and recent-file management.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/laralog/laralog/internal/config"
	"github.com/laralog/laralog/internal/constants"
	"github.com/laralog/laralog/internal/domain"
	"github.com/laralog/laralog/internal/logs"
	"github.com/laralog/laralog/internal/prefs"
	"github.com/laralog/laralog/internal/tui"
	"github.com/laralog/laralog/internal/watch"
)

// Version is set during build
var Version = "dev"

// Global flags
var (
	configPath string
	prefsPath  string
	verbose    bool
	pollFlag   time.Duration
	fromStart  bool
	noNotify   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "laralog [file]",
	Short: "A live viewer for Laravel log files",
	Long: `laralog tails a Laravel log file and reconstructs multi-line
entries as they are written. It supports:
  - Incremental tailing with truncation and rotation recovery
  - Multi-line entry reconstruction (stack traces, JSON payloads)
  - Live severity filtering
  - An interactive TUI and a plain stdout streaming mode`,
	Version:       Version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runWatch,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("laralog version %s\n", Version)
	},
}

func init() {
	// Persistent flags available to all subcommands
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", constants.DefaultConfigFile, "Config file")
	rootCmd.PersistentFlags().StringVar(&prefsPath, "prefs", constants.DefaultPrefsPath, "Preferences file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().DurationVar(&pollFlag, "poll", 0, "Poll interval override (e.g. 250ms)")
	rootCmd.PersistentFlags().BoolVar(&fromStart, "from-start", false, "Read existing content instead of starting at the end")
	rootCmd.PersistentFlags().BoolVar(&noNotify, "no-notify", false, "Disable filesystem wake hints; rely on polling alone")

	// Set version template
	rootCmd.SetVersionTemplate("laralog version {{.Version}}\n")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tailCmd)
	rootCmd.AddCommand(recentCmd)
}

// runWatch runs the interactive viewer
func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	userPrefs, _ := prefs.Load(prefsPath)

	path, err := resolveLogPath(args, cfg, userPrefs)
	if err != nil {
		return err
	}

	userPrefs.AddRecentFile(path)
	if err := prefs.Save(prefsPath, userPrefs); err != nil && verbose {
		fmt.Fprintf(os.Stderr, "Warning: failed to save preferences: %v\n", err)
	}

	wc, err := watchConfig(cfg)
	if err != nil {
		return err
	}

	return tui.Run(path, wc, managerConfig(cfg), userPrefs, prefsPath)
}

// loadConfig loads the config file. An explicit --config must exist;
// otherwise a config file found in standard locations is used, and
// defaults (plus environment overrides) apply when none is found.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if cmd.Flags().Changed("config") {
		return config.Load(configPath)
	}

	path, err := config.FindConfigFile()
	if err != nil {
		return config.Parse(nil)
	}
	return config.Load(path)
}

// resolveLogPath picks the file to watch: the positional argument, then
// the configured log_path, then the most recently watched file.
func resolveLogPath(args []string, cfg *config.Config, userPrefs prefs.Prefs) (string, error) {
	var path string
	switch {
	case len(args) > 0 && args[0] != "":
		path = args[0]
	case cfg.LogPath != "":
		path = cfg.LogPath
	default:
		recent, ok := userPrefs.MostRecentFile()
		if !ok {
			return "", fmt.Errorf("no log file given: pass a path, set log_path in %s, or watch a file once so it is remembered", constants.DefaultConfigFile)
		}
		path = recent
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}

	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", domain.ErrFileNotFound, abs)
		}
		return "", fmt.Errorf("checking %s: %w", abs, err)
	}

	return abs, nil
}

// watchConfig builds watcher settings from the config file and flags.
// Flags win over the file.
func watchConfig(cfg *config.Config) (watch.Config, error) {
	wc := cfg.ToWatchConfig()

	if pollFlag != 0 {
		if pollFlag < constants.MinPollInterval || pollFlag > constants.MaxPollInterval {
			return watch.Config{}, fmt.Errorf("%w: --poll must be between %s and %s",
				domain.ErrInvalidConfig, constants.MinPollInterval, constants.MaxPollInterval)
		}
		wc.PollInterval = pollFlag
	}
	if fromStart {
		wc.StartAtEnd = false
	}
	if noNotify {
		wc.Notify = false
	}

	return wc, nil
}

// managerConfig builds sink settings from the config file
func managerConfig(cfg *config.Config) logs.ManagerConfig {
	return logs.ManagerConfig{
		BufferSize:         cfg.BufferSize,
		SubscriptionBuffer: cfg.SubscriptionBuffer,
	}
}
