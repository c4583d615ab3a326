package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rotisserie/eris"
)

// EnvPath names the environment variable consulted for the config path when
// no -config flag is given.
const EnvPath = "ACTORSTAGE_CONFIG"

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Frame   FrameConfig   `toml:"frame"`
	Render  RenderConfig  `toml:"render"`
	Assets  AssetsConfig  `toml:"assets"`
	Logging LoggingConfig `toml:"logging"`
	Debug   DebugConfig   `toml:"debug"`
}

type WindowConfig struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Resizable bool   `toml:"resizable"`
}

type FrameConfig struct {
	MaxDeltaTime time.Duration `toml:"max_delta_time"`
	Delay        time.Duration `toml:"delay"` // pacing for headless runs
	TPS          int           `toml:"tps"`   // ebiten ticks per second
}

type RenderConfig struct {
	FovY      float32 `toml:"fov_y"` // degrees
	Near      float32 `toml:"near"`
	Far       float32 `toml:"far"`
	Ambient   float32 `toml:"ambient"`
	Wireframe bool    `toml:"wireframe"`
}

type AssetsConfig struct {
	Root  string `toml:"root"`
	Scene string `toml:"scene"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type DebugConfig struct {
	Overlay bool `toml:"overlay"`
}

// Load reads the TOML file at path over the defaults. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, eris.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// Path returns flagPath if set, otherwise the value of EnvPath.
func Path(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	return os.Getenv(EnvPath)
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "actorstage",
			Width:     1024,
			Height:    768,
			Resizable: true,
		},
		Frame: FrameConfig{
			MaxDeltaTime: 50 * time.Millisecond,
			Delay:        16 * time.Millisecond,
			TPS:          60,
		},
		Render: RenderConfig{
			FovY:    70,
			Near:    10,
			Far:     10000,
			Ambient: 0.2,
		},
		Assets: AssetsConfig{
			Root:  "assets",
			Scene: "scene.yaml",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
