// Package config provides YAML-based game configuration loading and
// difficulty management for the smashout game.
package config

// SmashoutConfig contains all configuration for the smashout game.
type SmashoutConfig struct {
	Physics    SmashoutPhysics  `yaml:"physics"`
	Bat        SmashoutBat      `yaml:"bat"`
	Gameplay   SmashoutGameplay `yaml:"gameplay"`
	Timers     SmashoutTimers   `yaml:"timers"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SmashoutPhysics defines ball physics parameters. Scales multiply the
// window-derived base values so the feel survives terminal resizes.
type SmashoutPhysics struct {
	SpeedScale    float64 `yaml:"speed_scale"`
	MaxSpeedScale float64 `yaml:"max_speed_scale"`
	KickRatio     float64 `yaml:"kick_ratio"`
	AngleFloor    float64 `yaml:"angle_floor"`
	IntroDamping  float64 `yaml:"intro_damping"`
	BounceDamping float64 `yaml:"bounce_damping"`
}

// SmashoutBat defines bat geometry and movement.
type SmashoutBat struct {
	WidthFrac     float64 `yaml:"width_frac"` // Fraction of the screen width
	SpeedFrac     float64 `yaml:"speed_frac"` // Movement per tick as a width fraction
	ExtraBats     int     `yaml:"extra_bats"` // Pool size for extra-bat bricks
	ExpirySeconds float64 `yaml:"expiry_seconds"`
}

// SmashoutGameplay defines lives and hardness.
type SmashoutGameplay struct {
	Lives    int `yaml:"lives"`
	Hardness int `yaml:"hardness"` // 0=easy, 1=normal, 2=hard; drives brick substitution
}

// SmashoutTimers defines the timed-mode durations in seconds.
type SmashoutTimers struct {
	LaserSeconds     float64 `yaml:"laser_seconds"`
	InversionSeconds float64 `yaml:"inversion_seconds"`
	BlackoutSeconds  float64 `yaml:"blackout_seconds"`
	BoringSeconds    float64 `yaml:"boring_seconds"` // Inactivity window before a free bonus ball
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
