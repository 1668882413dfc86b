package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads gameflix.yaml and sokoban.yaml.
// Search order per file: customDir -> ~/.gameflix/configs -> ./configs ->
// embedded default -> hardcoded default.
func Load(customDir string) (Config, error) {
	cfg, err := load("gameflix", customDir, DefaultConfig)
	if err != nil {
		return cfg, err
	}
	levels, err := load("sokoban", customDir, DefaultSokobanConfig)
	if err != nil {
		return cfg, err
	}
	cfg.Sokoban = levels
	cfg.normalize()
	return cfg, nil
}

// load decodes <name>.yaml over the hardcoded default so files may set only
// the fields they change. Only a custom directory that exists but holds an
// unreadable or invalid file is an error; every other source falls through.
func load[T any](name, customDir string, fallback func() T) (T, error) {
	filename := name + ".yaml"

	if customDir != "" {
		path := filepath.Join(customDir, filename)
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			cfg := fallback()
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return fallback(), fmt.Errorf("config: failed to parse %s: %w", path, err)
			}
			return cfg, nil
		case !os.IsNotExist(err):
			return fallback(), fmt.Errorf("config: failed to read %s: %w", path, err)
		}
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if cfg, ok := decodeFile(userCfgPath, fallback); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := decodeFile(filepath.Join("configs", filename), fallback); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := fallback()
	if err := yaml.Unmarshal(GetDefaultYAML(name), &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func decodeFile[T any](path string, fallback func() T) (T, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fallback(), false
	}
	cfg := fallback()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fallback(), false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gameflix", "configs", filename)
}
