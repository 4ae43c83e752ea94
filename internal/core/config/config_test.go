package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)


func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)

	assert.True(t, cfg.AutoDeleteCompleted)
	assert.Equal(t, 1500, cfg.AutoDeleteDelayMs)
	assert.Equal(t, 750, cfg.AutoDeleteFadeMs)
	assert.True(t, cfg.ConfirmDestructive)
	assert.Equal(t, StorageJSONFile, cfg.Storage)
	assert.Equal(t, 1500*time.Millisecond, cfg.AutoDeleteDelay())
	assert.Equal(t, 750*time.Millisecond, cfg.AutoDeleteFade())
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
auto_delete_completed: false
auto_delete_delay_ms: 3000
confirm_destructive: false
storage: sqlite
ignore_folders:
  - "**/node_modules"
`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.False(t, cfg.AutoDeleteCompleted)
	assert.Equal(t, 3000, cfg.AutoDeleteDelayMs)
	// Unset keys keep defaults.
	assert.Equal(t, 750, cfg.AutoDeleteFadeMs)
	assert.False(t, cfg.ConfirmDestructive)
	assert.Equal(t, StorageSQLite, cfg.Storage)
}

func TestLoad_InvalidDurationsFallBack(t *testing.T) {
	path := writeConfig(t, `
auto_delete_delay_ms: -100
auto_delete_fade_ms: 0
`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 1500, cfg.AutoDeleteDelayMs)
	assert.Equal(t, 750, cfg.AutoDeleteFadeMs)
}

func TestLoad_UnknownStorage(t *testing.T) {
	path := writeConfig(t, `storage: redis`)

	_, err := Load(path, t.TempDir())
	require.Error(t, err)
}

func TestLoad_BadIgnoreGlob(t *testing.T) {
	path := writeConfig(t, "ignore_folders:\n  - \"[\"\n")

	_, err := Load(path, t.TempDir())
	require.Error(t, err)
}

func TestConfig_IsIgnoredFolder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IgnoreFolders = []string{"**/node_modules", "/tmp/scratch*"}

	assert.True(t, cfg.IsIgnoredFolder("/src/app/node_modules"))
	assert.True(t, cfg.IsIgnoredFolder("/tmp/scratch-1"))
	assert.False(t, cfg.IsIgnoredFolder("/src/app"))
}

func TestWatcher_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auto_delete_delay_ms: 1000\n"), 0o644))

	var delay atomic.Int64
	w, err := Watch(path, t.TempDir(), zerolog.Nop(), func(cfg *Config) {
		delay.Store(int64(cfg.AutoDeleteDelayMs))
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(path, []byte("auto_delete_delay_ms: 2000\n"), 0o644))

	require.Eventually(t, func() bool {
		return delay.Load() == 2000
	}, 2*time.Second, 20*time.Millisecond)
}
