package smashout

import "github.com/mkovalev/tui-smashout/internal/core"

// Bat is a horizontal paddle. Only x moves; y is fixed per session.
// Velocity is derived from the frame-to-frame position delta so end-cap
// hits inherit the bat's motion.
type Bat struct {
	X, Y float64 // Top-left corner
	W, H float64
	VX   float64 // Position delta from the last MoveTo

	// Inverted is a visual flag set while controls are mirrored.
	// The collision shape is unaffected.
	Inverted bool

	// Expiry is the remaining lifetime in frames for pool-spawned extra
	// bats. Negative means permanent (the primary bat). Removal at zero
	// is unconditional.
	Expiry int
}

// Bounds returns the bat's bounding box.
func (bt *Bat) Bounds() core.RectF {
	return core.NewRectF(bt.X, bt.Y, bt.W, bt.H)
}

// CenterX returns the bat's horizontal center.
func (bt *Bat) CenterX() float64 {
	return bt.X + bt.W/2
}

// MoveTo positions the bat's left edge at x, clamped to [minX, maxX],
// and records the resulting velocity.
func (bt *Bat) MoveTo(x, minX, maxX float64) {
	x = core.ClampF(x, minX, maxX)
	bt.VX = x - bt.X
	bt.X = x
}

// Tick advances the expiry countdown. Returns true the frame the bat
// expires; permanent bats never do.
func (bt *Bat) Tick() bool {
	if bt.Expiry < 0 {
		return false
	}
	bt.Expiry--
	return bt.Expiry <= 0
}
