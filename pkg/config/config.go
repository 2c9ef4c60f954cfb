// Package config loads Mindloom configuration from a TOML file.
//
// The config file is optional; a missing file yields the defaults. A
// file that exists but fails to parse is an error - silently ignoring a
// user's config is worse than refusing to start.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mindloom/mindloom/pkg/mindmap/layout"
)

// Default values.
const (
	// DefaultDebounce is how long the engine coalesces mutations before
	// persisting.
	DefaultDebounce = 500 * time.Millisecond

	// DefaultTemplate is the template key used when none is given.
	DefaultTemplate = "brainstorm"
)

// Config is the application configuration.
type Config struct {
	Layout  LayoutConfig  `toml:"layout"`
	Persist PersistConfig `toml:"persist"`

	// Template is the default template key for `mindloom new`.
	Template string `toml:"template"`
}

// LayoutConfig holds the geometric constants for the layout engine.
type LayoutConfig struct {
	Radius        float64 `toml:"radius"`
	Growth        float64 `toml:"growth"`
	ColumnSpacing float64 `toml:"column_spacing"`
	RowSpacing    float64 `toml:"row_spacing"`
}

// PersistConfig configures the debounced persistence collaborator.
type PersistConfig struct {
	// Dir is the document directory. Empty means the platform default.
	Dir string `toml:"dir"`
	// DebounceMillis is the persistence debounce window in milliseconds.
	DebounceMillis int `toml:"debounce_millis"`
}

// Default returns the built-in configuration.
func Default() Config {
	opts := layout.DefaultOptions()
	return Config{
		Layout: LayoutConfig{
			Radius:        opts.Radius,
			Growth:        opts.Growth,
			ColumnSpacing: opts.ColumnSpacing,
			RowSpacing:    opts.RowSpacing,
		},
		Persist: PersistConfig{
			DebounceMillis: int(DefaultDebounce / time.Millisecond),
		},
		Template: DefaultTemplate,
	}
}

// Load reads configuration from a TOML file, merging it over the
// defaults. A missing file returns the defaults without error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LayoutOptions converts the config into layout engine options. Zero or
// negative values fall back to the layout defaults.
func (c Config) LayoutOptions() layout.Options {
	return layout.Options{
		Radius:        c.Layout.Radius,
		Growth:        c.Layout.Growth,
		ColumnSpacing: c.Layout.ColumnSpacing,
		RowSpacing:    c.Layout.RowSpacing,
	}
}

// Debounce returns the persistence debounce window.
func (c Config) Debounce() time.Duration {
	if c.Persist.DebounceMillis <= 0 {
		return DefaultDebounce
	}
	return time.Duration(c.Persist.DebounceMillis) * time.Millisecond
}
