// Package config loads and saves the Tapstorm configuration file.
//
// The file is JSON. A missing file is not an error: Load returns the
// defaults, and the app writes them to disk so the user has a file to
// edit.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/tapstorm/internal/macro"
)

// Config holds the user-tunable settings.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LoopPlayback restarts the macro after each full pass.
	LoopPlayback bool

	// ClickInterval is the auto-click cycle length.
	ClickInterval time.Duration

	// ClickTargets are the auto-click points, clicked round-robin.
	ClickTargets []macro.Point
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogLevel:      "info",
		LoopPlayback:  false,
		ClickInterval: 100 * time.Millisecond,
	}
}

// Load reads the configuration at path. A missing file yields the
// defaults with a nil error; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return cfg, fmt.Errorf("parse config %s: invalid JSON", path)
	}

	root := gjson.ParseBytes(data)

	if v := root.Get("logLevel"); v.Exists() {
		cfg.LogLevel = v.String()
	}
	if v := root.Get("loopPlayback"); v.Exists() {
		cfg.LoopPlayback = v.Bool()
	}
	if v := root.Get("clickIntervalMs"); v.Exists() {
		ms := v.Int()
		if ms <= 0 {
			return cfg, fmt.Errorf("parse config %s: clickIntervalMs must be positive, got %d", path, ms)
		}
		cfg.ClickInterval = time.Duration(ms) * time.Millisecond
	}
	if v := root.Get("clickTargets"); v.Exists() {
		var targets []macro.Point
		for _, t := range v.Array() {
			targets = append(targets, macro.Point{
				X: t.Get("x").Float(),
				Y: t.Get("y").Float(),
			})
		}
		cfg.ClickTargets = targets
	}

	return cfg, nil
}

// Save writes cfg as JSON at path, creating parent directories.
func Save(path string, cfg Config) error {
	out := "{}"
	var err error

	if out, err = sjson.Set(out, "logLevel", cfg.LogLevel); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if out, err = sjson.Set(out, "loopPlayback", cfg.LoopPlayback); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if out, err = sjson.Set(out, "clickIntervalMs", cfg.ClickInterval.Milliseconds()); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	for i, t := range cfg.ClickTargets {
		if out, err = sjson.Set(out, fmt.Sprintf("clickTargets.%d.x", i), t.X); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		if out, err = sjson.Set(out, fmt.Sprintf("clickTargets.%d.y", i), t.Y); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(out+"\n"), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "tapstorm.json"
	}
	return filepath.Join(dir, "tapstorm", "config.json")
}
