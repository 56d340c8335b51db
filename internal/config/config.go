package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "ENGINE2D_CONFIG"

// DefaultPath is used when EnvPath is unset.
const DefaultPath = "config/engine.toml"

// Config is the engine configuration file.
type Config struct {
	Window  WindowConfig  `toml:"window"`
	Loop    LoopConfig    `toml:"loop"`
	Physics PhysicsConfig `toml:"physics"`
	Logging LoggingConfig `toml:"logging"`
	Game    GameConfig    `toml:"game"`
}

type WindowConfig struct {
	Width     int32  `toml:"width"`
	Height    int32  `toml:"height"`
	Title     string `toml:"title"`
	TargetFPS int32  `toml:"target_fps"`
}

type LoopConfig struct {
	TickRate         int           `toml:"tick_rate"`           // fixed updates per second
	MaxFrameTime     time.Duration `toml:"max_frame_time"`      // longest frame fed to the accumulator
	MaxTicksPerFrame int           `toml:"max_ticks_per_frame"` // spiral-of-death guard
}

type PhysicsConfig struct {
	BulletResolution int     `toml:"bullet_resolution"` // sub-steps per frame for bullet colliders
	Gravity          float32 `toml:"gravity"`           // world units per second squared, +y is down
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type GameConfig struct {
	LevelsDir   string  `toml:"levels_dir"`
	StartLevel  string  `toml:"start_level"`
	AssetsDir   string  `toml:"assets_dir"`
	SaveFile    string  `toml:"save_file"`
	SplashTitle string  `toml:"splash_title"`
	SplashTime  float32 `toml:"splash_time"`
}

// TickDuration is the length of one fixed update.
func (c LoopConfig) TickDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the config path from the environment, or DefaultPath.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Loop.TickRate <= 0 {
		return fmt.Errorf("tick_rate %d", c.Loop.TickRate)
	}
	if c.Loop.MaxTicksPerFrame <= 0 {
		return fmt.Errorf("max_ticks_per_frame %d", c.Loop.MaxTicksPerFrame)
	}
	if c.Physics.BulletResolution <= 0 {
		return fmt.Errorf("bullet_resolution %d", c.Physics.BulletResolution)
	}
	return nil
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     960,
			Height:    540,
			Title:     "engine2d",
			TargetFPS: 60,
		},
		Loop: LoopConfig{
			TickRate:         60,
			MaxFrameTime:     250 * time.Millisecond,
			MaxTicksPerFrame: 5,
		},
		Physics: PhysicsConfig{
			BulletResolution: 32,
			Gravity:          1400,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Game: GameConfig{
			LevelsDir:   "assets/levels",
			StartLevel:  "level1",
			AssetsDir:   "assets",
			SaveFile:    "save.yaml",
			SplashTitle: "engine2d",
			SplashTime:  2.5,
		},
	}
}
