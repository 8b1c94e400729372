package smashout

import "github.com/mkovalev/tui-smashout/internal/core"

// BrickType tags a brick with its destruction effect.
type BrickType int

const (
	BrickPlain     BrickType = iota // No effect
	BrickBonusBall                  // Spawns a 2-life bonus ball
	BrickExtraBat                   // Deploys an extra bat from the pool
	BrickExtraLife                  // Player lives +1
	BrickBlackout                   // Dims the playfield for a few seconds
	BrickInvert                     // Mirrors bat controls (additive timer)
	BrickFire                       // Cascades destruction to neighbors
	BrickSolid                      // Indestructible
	BrickLaser                      // Extends laser mode (additive timer)
)

// SolidLives is the sentinel life count for indestructible bricks.
const SolidLives = 99

// InitialLives returns the hit count a fresh brick of this type takes.
func (t BrickType) InitialLives() int {
	switch t {
	case BrickPlain:
		return 1
	case BrickBonusBall:
		return 3
	case BrickExtraBat:
		return 2
	case BrickExtraLife:
		return 2
	case BrickBlackout:
		return 4
	case BrickInvert:
		return 3
	case BrickFire:
		return 2
	case BrickSolid:
		return SolidLives
	case BrickLaser:
		return 3
	default:
		return 1
	}
}

// Points returns the score for destroying a brick of this type.
func (t BrickType) Points() int {
	if t == BrickSolid {
		return 0
	}
	return 10 * t.InitialLives()
}

// Glyph returns the display character for this brick type.
func (t BrickType) Glyph() rune {
	switch t {
	case BrickBonusBall:
		return '◎'
	case BrickExtraBat:
		return '═'
	case BrickExtraLife:
		return '♥'
	case BrickBlackout:
		return '▚'
	case BrickInvert:
		return '↔'
	case BrickFire:
		return '≋'
	case BrickSolid:
		return '█'
	case BrickLaser:
		return '¤'
	default:
		return '▒'
	}
}

// Brick is a static obstacle. States: alive (lives > 0), destroyed
// (lives == 0, animation running), gone (animation finished). Destroyed
// bricks have no collision shape regardless of animation progress.
type Brick struct {
	Row, Col int
	Box      core.RectF
	Type     BrickType
	Lives    int
	Anim     int // Destruction animation frames elapsed
}

// Alive reports whether the brick still participates in collision.
func (br *Brick) Alive() bool {
	return br.Lives > 0
}

// Destroyed reports whether the brick has transitioned out of alive.
func (br *Brick) Destroyed() bool {
	return br.Lives <= 0
}

// Gone reports whether the destruction animation has finished.
func (br *Brick) Gone(animFrames int) bool {
	return br.Destroyed() && br.Anim >= animFrames
}

// Hit applies one hit. Destroyed bricks and indestructible bricks are
// no-ops (the impact sound still plays; the caller owns audio).
// Returns true exactly once: on the transition to destroyed.
func (br *Brick) Hit() bool {
	if br.Destroyed() || br.Type == BrickSolid {
		return false
	}
	br.Lives--
	return br.Lives == 0
}

// Kill forces an immediate transition to destroyed, used by fire
// cascades. Same no-op and exactly-once rules as Hit.
func (br *Brick) Kill() bool {
	if br.Destroyed() || br.Type == BrickSolid {
		return false
	}
	br.Lives = 0
	return true
}

// TickAnim advances the destruction animation up to its terminal frame.
func (br *Brick) TickAnim(animFrames int) {
	if br.Destroyed() && br.Anim < animFrames {
		br.Anim++
	}
}
