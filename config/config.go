// Package config holds the tool configuration for the scene validation
// commands and the watch pipeline.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the on-disk tool configuration. Zero values fall back to
// Default(); a missing file is not an error.
type Config struct {
	// Directory watched for exported scene files.
	ScenesDir string `toml:"scenes_dir"`
	// Abort validation at the first broken node instead of reporting all.
	Strict bool `toml:"strict"`
	// Optional physics material library to check physics_material against.
	MaterialLibrary string `toml:"material_library"`
	// debug, info, warn, error.
	LogLevel string `toml:"log_level"`
}

func Default() Config {
	return Config{
		ScenesDir: "scenes",
		LogLevel:  "info",
	}
}

// Load reads the config file at path, layered over the defaults. A missing
// file yields the defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.ScenesDir == "" {
		cfg.ScenesDir = Default().ScenesDir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = Default().LogLevel
	}
	return cfg, nil
}
