// Package prefs handles laralog user preferences persistence.
// Preferences are stored in ~/.config/laralog/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/laralog/laralog/internal/constants"
	"github.com/laralog/laralog/internal/domain"
)

// Prefs holds user preferences for laralog.
type Prefs struct {
	// RecentFiles lists recently watched files, most recent first
	RecentFiles []string `toml:"recent_files"`
	// DisabledLevels lists severities the user switched off; levels
	// not listed are enabled
	DisabledLevels []string `toml:"disabled_levels"`
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return constants.DefaultPrefsPath
}

// Load reads preferences from the given path, falling back to empty
// preferences if the file is missing or unreadable. Preferences are a
// convenience; failing to read them must never stop the application.
func Load(path string) (Prefs, error) {
	var prefs Prefs

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs, nil
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		// Missing or unreadable prefs degrade to defaults
		return prefs, nil
	}

	if err := toml.Unmarshal(data, &prefs); err != nil {
		// Corrupt prefs degrade to defaults
		return Prefs{}, nil
	}

	prefs.RecentFiles = dedupeAndTrim(prefs.RecentFiles)
	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	p.RecentFiles = dedupeAndTrim(p.RecentFiles)
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// AddRecentFile records path as the most recently watched file,
// removing any earlier occurrence of the same path.
func (p *Prefs) AddRecentFile(path string) {
	p.RemoveRecentFile(path)
	p.RecentFiles = append([]string{path}, p.RecentFiles...)
	p.RecentFiles = dedupeAndTrim(p.RecentFiles)
}

// RemoveRecentFile drops every occurrence of path from the list,
// e.g. after the file turned out not to exist.
func (p *Prefs) RemoveRecentFile(path string) {
	key := normalizePath(path)
	kept := p.RecentFiles[:0]
	for _, f := range p.RecentFiles {
		if normalizePath(f) != key {
			kept = append(kept, f)
		}
	}
	p.RecentFiles = kept
}

// MostRecentFile returns the most recently watched file, if any
func (p *Prefs) MostRecentFile() (string, bool) {
	if len(p.RecentFiles) == 0 {
		return "", false
	}
	return p.RecentFiles[0], true
}

// LevelEnabled reports whether a severity is enabled in the saved
// preferences
func (p *Prefs) LevelEnabled(sev domain.Severity) bool {
	for _, l := range p.DisabledLevels {
		if domain.ParseSeverity(l) == sev {
			return false
		}
	}
	return true
}

// SetLevelEnabled records a severity toggle in the preferences
func (p *Prefs) SetLevelEnabled(sev domain.Severity, enabled bool) {
	kept := p.DisabledLevels[:0]
	for _, l := range p.DisabledLevels {
		if domain.ParseSeverity(l) != sev {
			kept = append(kept, l)
		}
	}
	p.DisabledLevels = kept
	if !enabled {
		p.DisabledLevels = append(p.DisabledLevels, sev.String())
	}
}

// dedupeAndTrim removes duplicate paths while preserving order and
// enforces the recent-files cap.
func dedupeAndTrim(files []string) []string {
	seen := make(map[string]bool, len(files))
	unique := make([]string, 0, len(files))
	for _, f := range files {
		if f == "" {
			continue
		}
		key := normalizePath(f)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, f)
	}
	if len(unique) > constants.MaxRecentFiles {
		unique = unique[:constants.MaxRecentFiles]
	}
	return unique
}

// normalizePath cleans a path for duplicate comparison so the same
// file written with redundant separators is not listed twice.
func normalizePath(path string) string {
	return filepath.Clean(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = constants.DefaultPrefsPath
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
