package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "title", cfg.UI.DefaultSort)
	assert.Equal(t, "asc", cfg.UI.DefaultOrder)
	assert.True(t, cfg.UI.ShowInspector)
	assert.Equal(t, AppName, cfg.Export.AppName)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Storage.Dir)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
storage:
  dir: /tmp/chronicle-data
ui:
  default_sort: rating
  default_order: desc
export:
  app_name: my-list
logging:
  level: DEBUG
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/chronicle-data", cfg.Storage.Dir)
	assert.Equal(t, "rating", cfg.UI.DefaultSort)
	assert.Equal(t, "desc", cfg.UI.DefaultOrder)
	assert.True(t, cfg.UI.ShowInspector, "unset keys keep defaults")
	assert.Equal(t, "my-list", cfg.Export.AppName)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  default_sort: status\n"), 0644))

	t.Setenv("CHRONICLE_UI_DEFAULT_SORT", "rating")
	t.Setenv("CHRONICLE_STORAGE_DIR", filepath.Join(dir, "data"))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "rating", cfg.UI.DefaultSort)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.Storage.Dir)
}

func TestLoadConfig_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui: [unclosed"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.UI.DefaultSort = "status"
	cfg.Export.Dir = "/tmp/exports"

	require.NoError(t, SaveConfig(cfg, dir))

	loaded, err := LoadConfig(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "status", loaded.UI.DefaultSort)
	assert.Equal(t, "/tmp/exports", loaded.Export.Dir)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandHome("~/data")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data"), got)

	got, err = ExpandHome("/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", got)
}
