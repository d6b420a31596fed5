package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the search directories.
const FileName = "ecosim.yaml"

// Load loads the simulation configuration.
// Search order: customPath -> ~/.ecosim/configs/ecosim.yaml -> ./configs/ecosim.yaml -> embedded default
//
// Files overlay the defaults, so a file only needs the keys it changes.
func Load(customPath string) (Config, error) {
	cfg := base()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserConfigPath(); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			overlay := cfg
			if err := yaml.Unmarshal(data, &overlay); err == nil {
				return overlay, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		overlay := cfg
		if err := yaml.Unmarshal(data, &overlay); err == nil {
			return overlay, nil
		}
	}

	return cfg, nil
}

// base returns the embedded default, or the hardcoded one if the embed is unusable.
func base() Config {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig()
	}
	return cfg
}

// UserConfigPath returns the path to the user config file, or empty if home is unavailable.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ecosim", "configs", FileName)
}
