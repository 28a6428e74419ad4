package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/laralog/laralog/internal/constants"
	"github.com/laralog/laralog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("log_path: storage/logs/laravel.log\n"))
	require.NoError(t, err)

	assert.Equal(t, "storage/logs/laravel.log", cfg.LogPath)
	assert.Equal(t, constants.DefaultPollInterval, cfg.Interval())
	assert.Equal(t, constants.DefaultBufferSize, cfg.BufferSize)
	assert.Equal(t, constants.DefaultSubscriptionBuffer, cfg.SubscriptionBuffer)
	assert.True(t, cfg.StartAtEndEnabled())
	assert.True(t, cfg.NotifyEnabled())
}

func TestParse_FullConfig(t *testing.T) {
	data := []byte(`
log_path: /var/log/app/laravel.log
poll_interval: 250ms
start_at_end: false
notify: false
buffer_size: 500
subscription_buffer: 50
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Interval())
	assert.False(t, cfg.StartAtEndEnabled())
	assert.False(t, cfg.NotifyEnabled())
	assert.Equal(t, 500, cfg.BufferSize)
	assert.Equal(t, 50, cfg.SubscriptionBuffer)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("log_path: [unclosed"))
	assert.Error(t, err)
}

func TestParse_InvalidPollInterval(t *testing.T) {
	_, err := Parse([]byte("poll_interval: sometimes\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestParse_PollIntervalOutOfRange(t *testing.T) {
	_, err := Parse([]byte("poll_interval: 10ms\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	_, err = Parse([]byte("poll_interval: 10s\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestParse_ToWatchConfig(t *testing.T) {
	cfg, err := Parse([]byte("poll_interval: 300ms\nstart_at_end: false\n"))
	require.NoError(t, err)

	wc := cfg.ToWatchConfig()
	assert.Equal(t, 300*time.Millisecond, wc.PollInterval)
	assert.False(t, wc.StartAtEnd)
	assert.True(t, wc.Notify)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "laralog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_path: app.log\npoll_interval: 200ms\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "app.log", cfg.LogPath)
	assert.Equal(t, 200*time.Millisecond, cfg.Interval())
}

func TestLoad_WorldWritableRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "laralog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_path: app.log\n"), 0o644))
	// Chmod explicitly: WriteFile permissions are subject to the umask.
	require.NoError(t, os.Chmod(path, 0o666))

	_, err := Load(path)
	assert.ErrorContains(t, err, "insecure permissions")
}

func TestApplyEnvOverrides_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("LARALOG_LOG_PATH=/tmp/override.log\n"), 0o644))

	cfg := Default()
	cfg.EnvFile = envPath
	require.NoError(t, ApplyEnvOverrides(cfg))
	assert.Equal(t, "/tmp/override.log", cfg.LogPath)
}

func TestApplyEnvOverrides_ProcessEnvWins(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("LARALOG_POLL_INTERVAL=400ms\n"), 0o644))

	t.Setenv("LARALOG_POLL_INTERVAL", "900ms")

	cfg := Default()
	cfg.EnvFile = envPath
	require.NoError(t, ApplyEnvOverrides(cfg))
	assert.Equal(t, 900*time.Millisecond, cfg.Interval())
}

func TestApplyEnvOverrides_InvalidBool(t *testing.T) {
	t.Setenv("LARALOG_START_AT_END", "maybe")

	cfg := Default()
	err := ApplyEnvOverrides(cfg)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestApplyEnvOverrides_MissingEnvFile(t *testing.T) {
	cfg := Default()
	cfg.EnvFile = filepath.Join(t.TempDir(), "absent.env")
	assert.Error(t, ApplyEnvOverrides(cfg))
}
