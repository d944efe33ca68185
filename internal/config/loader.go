package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "seawar.yaml"

// LoadSeaWar loads the patrol configuration.
// Search order: customPath -> ~/.seawar/configs/seawar.yaml ->
// ./configs/seawar.yaml -> embedded default -> DefaultSeaWarConfig.
//
// Files are decoded over the defaults, so a file only needs the keys it
// changes. An unreadable or invalid custom path is an error; the other
// locations are skipped when they cannot be used.
func LoadSeaWar(customPath string) (SeaWarConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SeaWarConfig{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := decode(data)
		if err != nil {
			return SeaWarConfig{}, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return SeaWarConfig{}, fmt.Errorf("%s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := decode(data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	if cfg, err := decode(defaultSeaWarYAML); err == nil {
		return cfg, nil
	}
	return DefaultSeaWarConfig(), nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (SeaWarConfig, error) {
	cfg, err := decode(data)
	if err != nil {
		return SeaWarConfig{}, fmt.Errorf("config: cannot parse: %w", err)
	}
	return cfg, cfg.Validate()
}

func decode(data []byte) (SeaWarConfig, error) {
	cfg := DefaultSeaWarConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SeaWarConfig{}, err
	}
	return cfg, nil
}

func searchPaths() []string {
	var paths []string
	if p := userConfigPath(configFile); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", configFile))
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".seawar", "configs", filename)
}
