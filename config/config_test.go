package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
history_limit = 100
cell_width = 10

[export]
scale = 2.0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.HistoryLimit)
	assert.Equal(t, 10.0, cfg.CellWidth)
	assert.Equal(t, 2.0, cfg.Export.Scale)
	// Untouched keys keep their defaults.
	assert.Equal(t, Default().CellHeight, cfg.CellHeight)
	assert.Equal(t, Default().DoubleClickMs, cfg.DoubleClickMs)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("history_limit = [broken"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSanitizeClampsNonsense(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("history_limit = -4\ncell_width = 0.0"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().HistoryLimit, cfg.HistoryLimit)
	assert.Equal(t, Default().CellWidth, cfg.CellWidth)
}
