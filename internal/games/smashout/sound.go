package smashout

// SoundKind identifies the impact class of an audio event.
type SoundKind int

const (
	SoundBatHit     SoundKind = iota // Ball struck a bat
	SoundBrickHit                    // Ball or bolt chipped a brick
	SoundBrickBreak                  // Brick destroyed
	SoundBallHit                     // Ball-ball contact
	SoundDrop                        // Ball fell off the bottom
	SoundLaserFire                   // Bat emitted a bolt
	SoundBonus                       // Bonus ball entered play
	SoundInvertTick                  // Per-second warning while controls are inverted
)

// String returns the name of the sound kind.
func (k SoundKind) String() string {
	switch k {
	case SoundBatHit:
		return "bat"
	case SoundBrickHit:
		return "brick"
	case SoundBrickBreak:
		return "break"
	case SoundBallHit:
		return "ball"
	case SoundDrop:
		return "drop"
	case SoundLaserFire:
		return "laser"
	case SoundBonus:
		return "bonus"
	case SoundInvertTick:
		return "tick"
	default:
		return "?"
	}
}

// SoundEvent is one positional audio cue computed by the engine.
// The engine never plays audio itself; a sink collaborator renders these.
type SoundEvent struct {
	Kind   SoundKind
	Pan    float64 // 0 = hard left, 1 = hard right (impact x / playfield width)
	Volume float64 // 0..1, scaled from impact speed
}

// SoundSink receives audio events from the game. Implementations must not
// block; the engine calls Play from the simulation tick.
type SoundSink interface {
	Play(e SoundEvent)
}
