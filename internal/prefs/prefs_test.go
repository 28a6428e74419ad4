package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/laralog/laralog/internal/constants"
	"github.com/laralog/laralog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsEmpty(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "prefs.toml"))
	require.NoError(t, err)
	assert.Empty(t, p.RecentFiles)
	assert.Empty(t, p.DisabledLevels)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")

	p := Prefs{
		RecentFiles:    []string{"/var/log/a.log", "/var/log/b.log"},
		DisabledLevels: []string{"debug", "info"},
	}
	require.NoError(t, Save(path, p))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, p.RecentFiles, loaded.RecentFiles)
	assert.Equal(t, p.DisabledLevels, loaded.DisabledLevels)
}

func TestLoad_CorruptFileDegrades(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, p.RecentFiles)
}

func TestAddRecentFile_MovesToFront(t *testing.T) {
	p := Prefs{RecentFiles: []string{"/a.log", "/b.log"}}

	p.AddRecentFile("/b.log")
	assert.Equal(t, []string{"/b.log", "/a.log"}, p.RecentFiles)
}

func TestAddRecentFile_DedupesNormalizedPaths(t *testing.T) {
	p := Prefs{RecentFiles: []string{"/var/log/app.log"}}

	p.AddRecentFile("/var/log//app.log")
	assert.Len(t, p.RecentFiles, 1)
}

func TestAddRecentFile_Capped(t *testing.T) {
	var p Prefs
	for i := 0; i < constants.MaxRecentFiles+5; i++ {
		p.AddRecentFile(filepath.Join("/logs", string(rune('a'+i))+".log"))
	}
	assert.Len(t, p.RecentFiles, constants.MaxRecentFiles)
}

func TestRemoveRecentFile(t *testing.T) {
	p := Prefs{RecentFiles: []string{"/a.log", "/gone.log", "/b.log"}}

	p.RemoveRecentFile("/gone.log")
	assert.Equal(t, []string{"/a.log", "/b.log"}, p.RecentFiles)
}

func TestMostRecentFile(t *testing.T) {
	var p Prefs
	_, ok := p.MostRecentFile()
	assert.False(t, ok)

	p.AddRecentFile("/latest.log")
	got, ok := p.MostRecentFile()
	require.True(t, ok)
	assert.Equal(t, "/latest.log", got)
}

func TestLevelToggles(t *testing.T) {
	var p Prefs

	assert.True(t, p.LevelEnabled(domain.SeverityDebug))

	p.SetLevelEnabled(domain.SeverityDebug, false)
	assert.False(t, p.LevelEnabled(domain.SeverityDebug))
	assert.True(t, p.LevelEnabled(domain.SeverityError))

	p.SetLevelEnabled(domain.SeverityDebug, true)
	assert.True(t, p.LevelEnabled(domain.SeverityDebug))
	assert.Empty(t, p.DisabledLevels)
}

func TestSetLevelEnabled_NoDuplicates(t *testing.T) {
	var p Prefs
	p.SetLevelEnabled(domain.SeverityInfo, false)
	p.SetLevelEnabled(domain.SeverityInfo, false)
	assert.Len(t, p.DisabledLevels, 1)
}
