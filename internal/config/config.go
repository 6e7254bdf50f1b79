// Package config loads the interpreter options file (TOML) and the
// JSON mapping files that seed the remap tables.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Defaults for option values the file leaves unset or invalid.
const (
	DefaultRemapDepth = 100
	DefaultStartMode  = "normal"
)

// Config is the decoded options file.
type Config struct {
	Input InputConfig `toml:"input"`
	Remap RemapConfig `toml:"remap"`
}

// InputConfig holds interpreter-wide options.
type InputConfig struct {
	// StartMode is the mode active when an interpreter starts.
	StartMode string `toml:"start_mode"`

	// SystemClipboard routes the + and * registers through the
	// system clipboard.
	SystemClipboard bool `toml:"system_clipboard"`

	// KeymapDir is a directory of JSON mapping files loaded at
	// startup.
	KeymapDir string `toml:"keymap_dir"`

	// InitScript is a Lua file run against the mapping tables at
	// startup.
	InitScript string `toml:"init_script"`

	// MacroFile persists recorded macros across sessions when set.
	MacroFile string `toml:"macro_file"`
}

// RemapConfig bounds the remapping engine.
type RemapConfig struct {
	// MaxDepth bounds recursive mapping expansion.
	MaxDepth int `toml:"max_depth"`
}

// Default returns a Config with every option at its default.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			StartMode: DefaultStartMode,
		},
		Remap: RemapConfig{
			MaxDepth: DefaultRemapDepth,
		},
	}
}

// Load reads the options file at path. A missing file yields the
// defaults; a present file is decoded over them, and out-of-range
// values are reset to their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadOptionsFile, path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: %s: unknown keys %v", ErrBadOptionsFile, path, undecoded)
	}

	cfg.validate()
	return cfg, nil
}

func (c *Config) validate() {
	if c.Remap.MaxDepth < 1 {
		c.Remap.MaxDepth = DefaultRemapDepth
	}
	if c.Input.StartMode == "" {
		c.Input.StartMode = DefaultStartMode
	}
}
