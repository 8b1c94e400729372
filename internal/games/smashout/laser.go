package smashout

import "github.com/mkovalev/tui-smashout/internal/core"

// Bolt is a straight-line upward projectile emitted by a bat during
// laser mode. All bolts share one climb speed.
type Bolt struct {
	Pos  core.Vec2 // Center
	W, H float64
	PanX float64 // Firing bat's center x, kept only for stereo pan
}

// Advance moves the bolt up by the shared speed.
func (bo *Bolt) Advance(speed float64) {
	bo.Pos.Y -= speed
}

// OffTop reports whether the bolt's full extent has left the playfield.
func (bo *Bolt) OffTop(top float64) bool {
	return bo.Pos.Y+bo.H/2 < top
}

// Slice returns the thin collision rectangle for this frame: a narrow
// band centered on the bolt's x, extended downward to cover the frame's
// travel so fast bolts cannot skip a brick row.
func (bo *Bolt) Slice(speed float64) core.RectF {
	w := bo.W / 2
	return core.NewRectF(bo.Pos.X-w/2, bo.Pos.Y-bo.H/2, w, bo.H+speed)
}

// ResolveBricks returns the first brick the bolt's slice intersects,
// nearest-first along the travel direction (largest y wins; row-major
// iteration keeps equal-y ties stable). A bolt affects at most one
// brick; the caller applies the hit and removes the bolt.
func (bo *Bolt) ResolveBricks(bricks []*Brick, speed float64) *Brick {
	slice := bo.Slice(speed)
	var nearest *Brick
	for _, br := range bricks {
		if !br.Alive() {
			continue
		}
		if !slice.Overlaps(br.Box) {
			continue
		}
		if nearest == nil || br.Box.Y > nearest.Box.Y {
			nearest = br
		}
	}
	return nearest
}
