package smashout

// Params holds the engine tunables for one session.
// All lengths are in screen cells, all speeds in cells per tick.
// Values derived from screen height are pre-scaled so the game feels
// the same on a 24-row terminal and a 50-row one.
type Params struct {
	Width, Height float64 // Playfield size
	Top           float64 // Playfield top row (below the HUD)
	FPS           int     // Ticks per second, for duration-to-frame conversion
	Difficulty    int     // 0=easy, 1=normal, 2=hard

	// Ball
	BallRadius    float64
	SpeedUnit     float64 // Base speed quantum, window-scaled
	MaxSpeed      float64 // Hard cap on ball speed
	AngleFloor    float64 // Minimum |vy|/|vx| before the near-horizontal nudge
	IntroDamping  float64 // Per-frame velocity decay in intro mode
	BounceDamping float64 // Intro bottom bounce and ball-ball transfer damping

	// Bat
	BatWidth, BatHeight float64
	BatY                float64 // Fixed bat row
	BatSpeed            float64 // Movement per tick under key input
	ExtraBats           int     // Pool size for extra-bat bricks
	BatExpiryFrames     int     // Lifetime of a pool-spawned bat

	// Bricks
	BrickH     float64
	BrickTop   float64 // Top row of the brick area
	AnimFrames int     // Destruction animation length

	// Lasers and timed modes
	LaserSpeed     float64 // Bolt climb per tick
	LaserFrames    int     // Laser-mode duration added per laser brick
	InvertFrames   int     // Inversion duration added per invert brick
	BlackoutFrames int     // Blackout overlay duration
	BoringFrames   int     // Inactivity window before a free bonus ball

	KickRatio float64 // Speed multiplier for the kick action

	VolumeCap float64 // Impact speed mapped to full audio volume
}

// DefaultParams derives tunables from the screen size and tick rate.
// The 24-row terminal is the reference geometry.
func DefaultParams(screenW, screenH, fps, difficulty int) Params {
	// Difficulty comes from user config; it feeds divisors and brick
	// substitution, so out-of-range values collapse to the nearest
	// supported level.
	if difficulty < 0 {
		difficulty = 0
	}
	if difficulty > 2 {
		difficulty = 2
	}

	w := float64(screenW)
	h := float64(screenH)
	unit := h / 240

	return Params{
		Width:      w,
		Height:     h,
		Top:        2,
		FPS:        fps,
		Difficulty: difficulty,

		BallRadius:    0.5,
		SpeedUnit:     unit,
		MaxSpeed:      unit * 10,
		AngleFloor:    0.35,
		IntroDamping:  0.999,
		BounceDamping: 0.7,

		BatWidth:        w / 8,
		BatHeight:       1,
		BatY:            h - 3,
		BatSpeed:        w / 80,
		ExtraBats:       2,
		BatExpiryFrames: 10 * fps,

		BrickH: 1,
		// One clear row below Top: balls respawn at Top + radius and
		// must not chip a brick on re-entry.
		BrickTop:   3,
		AnimFrames: 20,

		LaserSpeed:     h / 60,
		LaserFrames:    6 * fps,
		InvertFrames:   6 * fps,
		BlackoutFrames: 4 * fps,
		BoringFrames:   10 * fps,

		KickRatio: 1.25,

		VolumeCap: unit * 10,
	}
}

// MinSpeed returns the speed floor for a ball in game mode at the
// given level. Monotonically increasing in level.
func (p *Params) MinSpeed(level int) float64 {
	return (float64(level) + 1.5) * p.SpeedUnit
}

// LaunchSpeed returns the hero ball's initial downward speed for a level.
// Easier difficulties launch faster to compensate for the extra lives.
func (p *Params) LaunchSpeed(level int) float64 {
	return (2*float64(level+1) + float64(2-p.Difficulty)) * p.SpeedUnit
}
