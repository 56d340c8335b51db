package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[loop]
tick_rate = 120
max_frame_time = "100ms"

[physics]
gravity = 980.0

[logging]
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Loop.TickRate)
	assert.Equal(t, 100*time.Millisecond, cfg.Loop.MaxFrameTime)
	assert.Equal(t, float32(980), cfg.Physics.Gravity)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// untouched sections keep their defaults
	assert.Equal(t, Defaults().Window, cfg.Window)
	assert.Equal(t, 32, cfg.Physics.BulletResolution)
	assert.Equal(t, time.Second/120, cfg.Loop.TickDuration())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	_, err := Load(writeConfig(t, "[physics]\nbullet_resolution = 0\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[loop\n"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestPathFromEnvironment(t *testing.T) {
	t.Setenv(EnvPath, "")
	assert.Equal(t, DefaultPath, Path())

	t.Setenv(EnvPath, "/tmp/other.toml")
	assert.Equal(t, "/tmp/other.toml", Path())
}

func TestRepositoryConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", DefaultPath))
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Game.StartLevel)
}
