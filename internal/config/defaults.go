package config

import (
	_ "embed"
)

//go:embed defaults/smashout.yaml
var defaultSmashoutYAML []byte

// DefaultSmashoutConfig returns the default smashout configuration.
func DefaultSmashoutConfig() SmashoutConfig {
	return SmashoutConfig{
		Physics: SmashoutPhysics{
			SpeedScale:    1.0,
			MaxSpeedScale: 1.0,
			KickRatio:     1.25,
			AngleFloor:    0.35,
			IntroDamping:  0.999,
			BounceDamping: 0.7,
		},
		Bat: SmashoutBat{
			WidthFrac:     0.125,
			SpeedFrac:     0.0125,
			ExtraBats:     2,
			ExpirySeconds: 10,
		},
		Gameplay: SmashoutGameplay{
			Lives:    4,
			Hardness: 1,
		},
		Timers: SmashoutTimers{
			LaserSeconds:     6,
			InversionSeconds: 6,
			BlackoutSeconds:  4,
			BoringSeconds:    10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 2000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "smashout", "smashout_endless":
		return defaultSmashoutYAML
	default:
		return nil
	}
}
