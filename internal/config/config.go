// Package config loads the shell's TOML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"pickshell/internal/engine"
	"pickshell/internal/logx"
)

type Config struct {
	Window WindowConfig `toml:"window"`
	Engine EngineConfig `toml:"engine"`
	Camera CameraConfig `toml:"camera"`
	Log    LogConfig    `toml:"log"`
}

type WindowConfig struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	TargetFPS int    `toml:"target_fps"`
}

type EngineConfig struct {
	TickDelayMs int  `toml:"tick_delay_ms"`
	DebugRay    bool `toml:"debug_ray"`
}

type CameraConfig struct {
	FovY     float64 `toml:"fov"`
	Near     float64 `toml:"near"`
	Far      float64 `toml:"far"`
	Distance float64 `toml:"distance"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "pickshell",
			Width:     1280,
			Height:    720,
			TargetFPS: 120,
		},
		Engine: EngineConfig{
			TickDelayMs: int(engine.DefaultTickDelay / time.Millisecond),
			DebugRay:    true,
		},
		Camera: CameraConfig{
			FovY:     45,
			Near:     0.01,
			Far:      1000,
			Distance: 18,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as TOML.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.TargetFPS < 0 {
		errs = append(errs, fmt.Errorf("target_fps must not be negative, got %d", c.Window.TargetFPS))
	}
	if c.Engine.TickDelayMs < 0 {
		errs = append(errs, fmt.Errorf("tick_delay_ms must not be negative, got %d", c.Engine.TickDelayMs))
	}
	if c.Camera.FovY <= 0 || c.Camera.FovY >= 180 {
		errs = append(errs, fmt.Errorf("camera fov must be in (0, 180), got %g", c.Camera.FovY))
	}
	if c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far {
		errs = append(errs, fmt.Errorf("camera planes must satisfy 0 < near < far, got near=%g far=%g", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.Distance <= 0 {
		errs = append(errs, fmt.Errorf("camera distance must be positive, got %g", c.Camera.Distance))
	}
	if _, err := logx.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LogLevel returns the configured level, falling back to info.
func (c Config) LogLevel() slog.Level {
	level, _ := logx.ParseLevel(c.Log.Level)
	return level
}

// EngineOptions maps the configuration onto engine options.
func (c Config) EngineOptions(logger *slog.Logger) engine.Options {
	return engine.Options{
		Logger:    logger,
		TickDelay: time.Duration(c.Engine.TickDelayMs) * time.Millisecond,
		DebugRay:  c.Engine.DebugRay,
		Window: engine.WindowConfig{
			Title:     c.Window.Title,
			Width:     c.Window.Width,
			Height:    c.Window.Height,
			TargetFPS: c.Window.TargetFPS,
		},
	}
}
