package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSmashout loads the smashout configuration.
// Search order: customPath -> ~/.smashout/configs/smashout.yaml ->
// ./configs/smashout.yaml -> embedded default
func LoadSmashout(customPath string) (SmashoutConfig, error) {
	var cfg SmashoutConfig

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
	if userCfgPath := userConfigPath("smashout.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/smashout.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSmashoutYAML, &cfg); err != nil {
		return DefaultSmashoutConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".smashout", "configs", filename)
}

// ApplySmashoutPreset modifies the config based on a difficulty preset.
// Easier presets add starting lives and soften the brick substitutions.
func ApplySmashoutPreset(cfg *SmashoutConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Hardness = 0
		cfg.Gameplay.Lives = 5
	case DifficultyNormal:
		cfg.Gameplay.Hardness = 1
		cfg.Gameplay.Lives = 4
	case DifficultyHard:
		cfg.Gameplay.Hardness = 2
		cfg.Gameplay.Lives = 3
	}
}
