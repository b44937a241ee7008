// Package config loads the optional wmctl config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds user defaults applied before flag parsing.
type Config struct {
	Format  string `toml:"format"`  // default output format: yaml or json
	Display string `toml:"display"` // X display, e.g. ":0"; empty uses $DISPLAY
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{Format: "", Display: ""}
}

// Path returns the config file location under the user config dir
// (~/.config/wmctl/config.toml on Linux).
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "wmctl", "config.toml"), nil
}

// Load reads the config file if present. A missing file is not an error and
// yields the defaults.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads a specific config file, applying defaults for keys the file
// does not set.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("load config %s: %w", path, err)
	}
	if meta.IsDefined("format") {
		cfg.Format = strings.TrimSpace(cfg.Format)
		if cfg.Format != "yaml" && cfg.Format != "json" {
			return Default(), fmt.Errorf("config %s: format must be yaml or json, got %q", path, cfg.Format)
		}
	}
	cfg.Display = strings.TrimSpace(cfg.Display)
	return cfg, nil
}
