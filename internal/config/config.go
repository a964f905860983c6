// Package config loads the gallery's TOML settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"linux-visualgallery/internal/effects"
	"linux-visualgallery/internal/utils"
)

type Gallery struct {
	Columns       int `toml:"columns"`
	PreviewWidth  int `toml:"preview_width"`
	PreviewHeight int `toml:"preview_height"`
	Gap           int `toml:"gap"`
	ThrottleMS    int `toml:"throttle_ms"`
	// Supersample renders previews this many times larger and scales
	// them down. 1 renders directly.
	Supersample int `toml:"supersample"`
}

type Display struct {
	Width        int     `toml:"width"`
	Height       int     `toml:"height"`
	TargetFPS    int     `toml:"target_fps"`
	Fullscreen   bool    `toml:"fullscreen"`
	InhibitSleep bool    `toml:"inhibit_sleep"`
	RenderScale  float64 `toml:"render_scale"`
	StartEffect  string  `toml:"start_effect"`
}

type Log struct {
	Level string `toml:"level"`
}

type Config struct {
	Gallery Gallery `toml:"gallery"`
	Display Display `toml:"display"`
	Log     Log     `toml:"log"`
}

func Default() Config {
	return Config{
		Gallery: Gallery{
			Columns:       4,
			PreviewWidth:  effects.ReferenceWidth,
			PreviewHeight: effects.ReferenceHeight,
			Gap:           16,
			ThrottleMS:    16,
			Supersample:   1,
		},
		Display: Display{
			Width:        1280,
			Height:       720,
			TargetFPS:    60,
			InhibitSleep: true,
			RenderScale:  1,
		},
		Log: Log{Level: "warn"},
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		utils.Debug("Config: %s not found, using defaults", path)
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	utils.Info("Config: loaded %s", path)
	return cfg, nil
}

// Parse decodes TOML on top of the defaults and validates the result.
// Unknown keys are reported and ignored.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if !errors.As(err, &strict) {
			return Default(), err
		}
		utils.Warn("Config: ignoring unknown keys:\n%s", strict.String())
		cfg = Default()
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Default(), err
		}
	}
	for _, fix := range cfg.Validate() {
		utils.Warn("Config: %s", fix)
	}
	return cfg, nil
}

// Validate clamps out of range values and returns a note per change.
func (c *Config) Validate() []string {
	var fixes []string
	clampInt := func(name string, v *int, lo, hi int) {
		if *v < lo || *v > hi {
			n := min(max(*v, lo), hi)
			fixes = append(fixes, fmt.Sprintf("%s=%d out of range, using %d", name, *v, n))
			*v = n
		}
	}

	clampInt("gallery.columns", &c.Gallery.Columns, 1, 8)
	clampInt("gallery.preview_width", &c.Gallery.PreviewWidth, 32, 1920)
	clampInt("gallery.preview_height", &c.Gallery.PreviewHeight, 32, 1080)
	clampInt("gallery.gap", &c.Gallery.Gap, 0, 200)
	clampInt("gallery.throttle_ms", &c.Gallery.ThrottleMS, 0, 1000)
	clampInt("gallery.supersample", &c.Gallery.Supersample, 1, 4)
	clampInt("display.width", &c.Display.Width, 160, 16384)
	clampInt("display.height", &c.Display.Height, 120, 16384)
	clampInt("display.target_fps", &c.Display.TargetFPS, 1, 480)

	if c.Display.RenderScale <= 0 || c.Display.RenderScale > 1 {
		fixes = append(fixes, fmt.Sprintf("display.render_scale=%g out of range, using 1", c.Display.RenderScale))
		c.Display.RenderScale = 1
	}
	if c.Display.StartEffect != "" {
		id := effects.Parse(c.Display.StartEffect)
		if !strings.EqualFold(string(id), strings.TrimSpace(c.Display.StartEffect)) {
			fixes = append(fixes, fmt.Sprintf("display.start_effect=%q unknown, using %q", c.Display.StartEffect, id))
		}
		c.Display.StartEffect = string(id)
	}
	if _, err := utils.ParseLevel(c.Log.Level); err != nil {
		fixes = append(fixes, fmt.Sprintf("log.level: %v, using warn", err))
		c.Log.Level = "warn"
	}
	return fixes
}

// Throttle is the minimum spacing between preview frames.
func (c Config) Throttle() time.Duration {
	return time.Duration(c.Gallery.ThrottleMS) * time.Millisecond
}

// Save writes c as TOML, creating the parent directory.
func Save(path string, c Config) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Path resolves the -config flag, or the default location when it is empty.
func Path(flagValue string) (string, error) {
	if flagValue != "" {
		return utils.ExpandPath(flagValue)
	}
	return utils.DefaultConfigPath()
}
