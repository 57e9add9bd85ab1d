package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  rest_port: 9000
  frame_rate: 30
terrain:
  seed: 777
  generation_type: PerlinNoise
  grid_size: 25
  grid_resolution: 12
  threshold: 0.4
  smooth_terrain: true
  view_margin: 2
  cache_trigger: 64
  enabled_generators:
    - OctaveNoise
    - PerlinNoise
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9000, cfg.Server.GetRESTPort())
	assert.Equal(t, 30, cfg.Server.GetFrameRate())
	assert.Equal(t, int64(777), cfg.Terrain.Seed)
	assert.Equal(t, "PerlinNoise", cfg.Terrain.GenerationType)
	assert.Equal(t, 25.0, cfg.Terrain.GridSize)
	assert.Equal(t, 12, cfg.Terrain.GridResolution)
	assert.True(t, cfg.Terrain.SmoothTerrain)
	assert.Equal(t, []string{"OctaveNoise", "PerlinNoise"}, cfg.Terrain.EnabledGenerators)
}

func TestLoadConfigClampsValues(t *testing.T) {
	path := writeConfig(t, `
terrain:
  grid_size: -5
  grid_resolution: 1
  threshold: 3.5
  view_margin: -2
  cache_trigger: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	// Неверные значения молча заменяются допустимыми
	assert.Equal(t, 20.0, cfg.Terrain.GridSize)
	assert.Equal(t, 4, cfg.Terrain.GridResolution)
	assert.Equal(t, 1.0, cfg.Terrain.Threshold)
	assert.Equal(t, 0, cfg.Terrain.ViewMargin)
	assert.Equal(t, 50, cfg.Terrain.CacheTrigger)
	// RigidCellSize по умолчанию — размер грида
	assert.Equal(t, 80.0, cfg.Terrain.RigidCellSize)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yml")
	assert.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfig(t, "terrain: [не yaml-мапа")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	os.Unsetenv("TERRAIN_CONFIG")

	cfg, err := Load("")
	assert.NoError(t, err)
	assert.Nil(t, cfg, "без конфига используются дефолты")
}

func TestLoadConfigEnvFallback(t *testing.T) {
	path := writeConfig(t, "terrain:\n  seed: 42\n")
	t.Setenv("TERRAIN_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, int64(42), cfg.Terrain.Seed)
}

func TestRESTPortEnvFallback(t *testing.T) {
	s := ServerConfig{}

	t.Setenv("TERRAIN_REST_PORT", "9999")
	assert.Equal(t, 9999, s.GetRESTPort())

	t.Setenv("TERRAIN_REST_PORT", "мусор")
	assert.Equal(t, 8090, s.GetRESTPort())

	s.RESTPort = 7000
	assert.Equal(t, 7000, s.GetRESTPort(), "явный порт важнее ENV")
}

func TestFrameRateDefault(t *testing.T) {
	s := ServerConfig{}
	assert.Equal(t, 60, s.GetFrameRate())

	s.FrameRate = 144
	assert.Equal(t, 144, s.GetFrameRate())
}
