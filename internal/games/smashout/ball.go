package smashout

import (
	"math"

	"github.com/mkovalev/tui-smashout/internal/core"
)

// BallRole distinguishes the player-tracked ball from temporary extras.
type BallRole int

const (
	// RoleHero is the player's ball. It is never removed from play;
	// losing it costs a shared player life instead.
	RoleHero BallRole = iota
	// RoleBonus balls carry their own life count and are culled at zero.
	RoleBonus
)

// Mode selects intro (attract) or game physics.
type Mode int

const (
	ModeIntro Mode = iota
	ModeGame
)

// Ball is a moving circular body in continuous playfield coordinates.
type Ball struct {
	Pos   core.Vec2
	Vel   core.Vec2
	R     float64
	Lives int
	Role  BallRole

	lost bool // Set when a bonus ball runs out of lives; culled by the field
}

// Speed returns the velocity magnitude.
func (b *Ball) Speed() float64 {
	return b.Vel.Len()
}

// Bounds returns the ball's axis-aligned bounding box.
func (b *Ball) Bounds() core.RectF {
	return core.NewRectF(b.Pos.X-b.R, b.Pos.Y-b.R, 2*b.R, 2*b.R)
}

// Advance integrates one fixed frame step and resolves wall contact.
// Returns true when the ball crossed the bottom boundary in game mode
// (a drop, handled by the field); intro mode bounces off the bottom.
func (b *Ball) Advance(p *Params, level int, mode Mode) bool {
	b.Pos = b.Pos.Add(b.Vel)

	if mode == ModeGame {
		b.enforceMinSpeed(p, level)
		b.nudgeAngle(p)
	}

	// Side walls: flip vx, clamp position to the boundary.
	if b.Pos.X-b.R < 0 {
		b.Pos.X = b.R
		b.Vel.X = math.Abs(b.Vel.X)
		b.unstickVertical(p)
	} else if b.Pos.X+b.R > p.Width {
		b.Pos.X = p.Width - b.R
		b.Vel.X = -math.Abs(b.Vel.X)
		b.unstickVertical(p)
	}

	// Top wall.
	if b.Pos.Y-b.R < p.Top {
		b.Pos.Y = p.Top + b.R
		b.Vel.Y = math.Abs(b.Vel.Y)
	}

	// Bottom: intro bounces with damping, game mode is a drop.
	if b.Pos.Y+b.R > p.Height {
		if mode == ModeGame {
			return true
		}
		b.Pos.Y = p.Height - b.R
		b.Vel.Y = -math.Abs(b.Vel.Y) * p.BounceDamping
	}

	if mode == ModeIntro {
		b.Vel = b.Vel.Scale(p.IntroDamping)
	}

	return false
}

// enforceMinSpeed rescales the velocity up to the level floor without
// changing direction. A fully stopped ball gets a horizontal shove.
func (b *Ball) enforceMinSpeed(p *Params, level int) {
	minSpeed := p.MinSpeed(level)
	sp := b.Speed()
	if sp < core.Epsilon {
		b.Vel = core.Vec2{X: 2 * p.SpeedUnit}
		return
	}
	if sp < minSpeed {
		b.Vel = b.Vel.Scale(minSpeed / sp)
	}
}

// nudgeAngle keeps the ball from skimming rows nearly horizontally:
// when |vy/vx| falls below the floor, vy is pulled up to the floor
// magnitude with both signs preserved.
func (b *Ball) nudgeAngle(p *Params) {
	if b.Vel.X == 0 {
		return
	}
	if math.Abs(b.Vel.Y) >= p.AngleFloor*math.Abs(b.Vel.X) {
		return
	}
	sign := 1.0
	if b.Vel.Y < 0 {
		sign = -1.0
	}
	b.Vel.Y = sign * p.AngleFloor * math.Abs(b.Vel.X)
}

// unstickVertical stops a dead-horizontal bounce loop along a side wall.
func (b *Ball) unstickVertical(p *Params) {
	if b.Vel.Y == 0 {
		b.Vel.Y = p.SpeedUnit
	}
}

// ResolveBat resolves contact against a bat. End caps act as circles
// redirecting the ball along the contact normal; the flat top snaps the
// ball above the surface and forces vy upward. The flat top wins exact
// boundary ties. After any hit the velocity gets a small random vx
// perturbation and a difficulty-scaled upward boost, capped at MaxSpeed.
func (b *Ball) ResolveBat(bat *Bat, p *Params, rng *SimpleRNG) bool {
	if !b.Bounds().Overlaps(bat.Bounds()) {
		return false
	}

	capR := bat.H / 2
	hit := false
	switch {
	case b.Pos.X < bat.X+capR:
		hit = b.resolveCap(core.Vec2{X: bat.X + capR, Y: bat.Y + capR}, capR)
	case b.Pos.X > bat.X+bat.W-capR:
		hit = b.resolveCap(core.Vec2{X: bat.X + bat.W - capR, Y: bat.Y + capR}, capR)
	default:
		// Flat top: rest exactly on the surface, send the ball up.
		b.Pos.Y = bat.Y - b.R
		b.Vel.Y = -math.Abs(b.Vel.Y)
		hit = true
	}
	if !hit {
		return false
	}

	// Keep rallies lively: jitter vx, add an upward kick that grows
	// with difficulty, and clamp so speed never diverges.
	b.Vel.X += (rng.Float64() - 0.5) * p.SpeedUnit
	b.Vel.Y -= rng.Float64() * p.SpeedUnit / float64(4-p.Difficulty)
	if sp := b.Speed(); sp > p.MaxSpeed {
		b.Vel = b.Vel.Scale(p.MaxSpeed / sp)
	}
	return true
}

// resolveCap treats a bat end as a circle: push the ball out along the
// center-to-center normal and redirect the full speed along it.
// Coincident centers are a degenerate overlap resolved as a no-op.
func (b *Ball) resolveCap(center core.Vec2, capR float64) bool {
	overlap, d := core.CirclesOverlap(center, capR, b.Pos, b.R)
	if !overlap {
		return false
	}
	if d < core.Epsilon {
		return true
	}
	n := b.Pos.Sub(center).Normalize()
	b.Pos = center.Add(n.Scale(capR + b.R))
	b.Vel = n.Scale(b.Speed())
	return true
}

// ResolveBrick resolves contact against a live brick and applies the hit.
// Face contact (center within the brick's span on one axis) snaps the
// ball outside the face and flips the velocity component on that axis.
// Corner contact resolves the nearest corner as a zero-radius circle:
// push out along the center-to-corner vector and reflect about it.
// Returns whether a hit landed and whether it destroyed the brick.
func (b *Ball) ResolveBrick(br *Brick) (hit, destroyed bool) {
	box := br.Box
	if !b.Bounds().Overlaps(box) {
		return false, false
	}
	c := box.Center()

	switch {
	case b.Pos.X >= box.X && b.Pos.X <= box.Right():
		// Top or bottom face.
		if b.Pos.Y < c.Y {
			b.Pos.Y = box.Y - b.R
			b.Vel.Y = -math.Abs(b.Vel.Y)
		} else {
			b.Pos.Y = box.Bottom() + b.R
			b.Vel.Y = math.Abs(b.Vel.Y)
		}
	case b.Pos.Y >= box.Y && b.Pos.Y <= box.Bottom():
		// Left or right face.
		if b.Pos.X < c.X {
			b.Pos.X = box.X - b.R
			b.Vel.X = -math.Abs(b.Vel.X)
		} else {
			b.Pos.X = box.Right() + b.R
			b.Vel.X = math.Abs(b.Vel.X)
		}
	default:
		// Corner region: center is outside the span on both axes.
		corner := core.Vec2{X: box.X, Y: box.Y}
		if b.Pos.X > c.X {
			corner.X = box.Right()
		}
		if b.Pos.Y > c.Y {
			corner.Y = box.Bottom()
		}
		delta := b.Pos.Sub(corner)
		d := delta.Len()
		if d >= b.R {
			return false, false
		}
		// Center exactly on the corner leaves no usable normal; count
		// the hit but skip push-out and reflection this frame.
		if d >= core.Epsilon {
			n := delta.Scale(1 / d)
			b.Pos = corner.Add(n.Scale(b.R))
			b.Vel = core.Reflect(b.Vel, n)
		}
	}

	return true, br.Hit()
}

// ResolvePair resolves an equal-mass elastic collision between two balls:
// separate each by half the overlap and exchange the velocity components
// along the contact normal, leaving tangential components untouched.
// Coincident centers are a defensive no-op. Intro mode damps the
// exchanged momentum for an inelastic feel. Returns whether contact
// occurred and the relative normal speed (for audio volume).
func ResolvePair(a, b *Ball, mode Mode, p *Params) (bool, float64) {
	sum := a.R + b.R
	delta := b.Pos.Sub(a.Pos)
	d := delta.Len()
	if d >= sum {
		return false, 0
	}
	if d < core.Epsilon {
		return false, 0
	}

	n := delta.Scale(1 / d)
	half := (sum - d) / 2
	a.Pos = a.Pos.Sub(n.Scale(half))
	b.Pos = b.Pos.Add(n.Scale(half))

	va := a.Vel.Dot(n)
	vb := b.Vel.Dot(n)
	damp := 1.0
	if mode == ModeIntro {
		damp = p.BounceDamping
	}
	a.Vel = a.Vel.Add(n.Scale((vb - va) * damp))
	b.Vel = b.Vel.Add(n.Scale((va - vb) * damp))

	return true, math.Abs(vb - va)
}
