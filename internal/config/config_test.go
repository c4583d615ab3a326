package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/actorstage/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("empty path gives defaults", func(t *testing.T) {
		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
		assert.Equal(t, 50*time.Millisecond, cfg.Frame.MaxDeltaTime)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "actorstage.toml")
		data := `
[window]
title = "demo"

[frame]
max_delta_time = "100ms"
tps = 30

[render]
wireframe = true

[logging]
level = "debug"
format = "json"
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		cfg, err := config.Load(path)
		require.NoError(t, err)

		assert.Equal(t, "demo", cfg.Window.Title)
		assert.Equal(t, 1024, cfg.Window.Width)
		assert.Equal(t, 100*time.Millisecond, cfg.Frame.MaxDeltaTime)
		assert.Equal(t, 16*time.Millisecond, cfg.Frame.Delay)
		assert.Equal(t, 30, cfg.Frame.TPS)
		assert.True(t, cfg.Render.Wireframe)
		assert.Equal(t, float32(70), cfg.Render.FovY)
		assert.Equal(t, "json", cfg.Logging.Format)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("[window\n"), 0o644))
		_, err := config.Load(path)
		assert.Error(t, err)
	})
}

func TestPath(t *testing.T) {
	t.Setenv(config.EnvPath, "/etc/actorstage.toml")

	assert.Equal(t, "flag.toml", config.Path("flag.toml"))
	assert.Equal(t, "/etc/actorstage.toml", config.Path(""))
}
