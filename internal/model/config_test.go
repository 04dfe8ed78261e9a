package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.TimeoutSec)
	assert.Equal(t, AllProjectsBoard, cfg.Display.DefaultBoard)
	assert.NotEmpty(t, cfg.Cache.Path)
}

func TestLoadConfig_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `api:
  base_url: https://pm.corp.example.com/api
  timeout_sec: 5
user:
  name: Ann
display:
  default_board: Alpha
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://pm.corp.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.API.TimeoutSec)
	assert.Equal(t, "Ann", cfg.User.Name)
	assert.Equal(t, "Alpha", cfg.Display.DefaultBoard)
}

func TestLoadConfig_EnvOverridesBaseURL(t *testing.T) {
	t.Setenv("GENIUSBOARD_API_BASE", "https://override.example.com/api")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "https://override.example.com/api", cfg.API.BaseURL)
}

func TestLoadConfig_InvalidTimeoutFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  timeout_sec: -1\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.API.TimeoutSec)
}

func TestSaveConfig_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := defaultAppConfig()
	want.User.Name = "Ben"
	want.Display.DefaultBoard = "Beta"

	require.NoError(t, SaveConfig(path, want))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Ben", got.User.Name)
	assert.Equal(t, "Beta", got.Display.DefaultBoard)
}
