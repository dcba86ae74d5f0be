package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "t2048.yaml"

// LoadT2048 loads the 2048 configuration.
// Search order: customPath -> ~/.t2048/configs/t2048.yaml -> ./configs/t2048.yaml -> embedded default
//
// Values missing from a file keep their defaults. Only an explicit
// customPath that cannot be read or parsed is an error.
func LoadT2048(customPath string) (T2048Config, error) {
	cfg := DefaultT2048Config()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(ConfigFile), filepath.Join("configs", ConfigFile)} {
		if path == "" {
			continue
		}
		if loaded, ok := tryLoad(path, cfg); ok {
			return loaded, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultT2048YAML, &cfg); err != nil {
		return DefaultT2048Config(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad overlays the file at path onto base. Unreadable or malformed
// files are skipped.
func tryLoad(path string, base T2048Config) (T2048Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, false
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".t2048", "configs", filename)
}

// Marshal renders cfg as YAML.
func Marshal(cfg T2048Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}
