package smashout

import (
	"math"
	"testing"

	"github.com/mkovalev/tui-smashout/internal/core"
)

func testParams() Params {
	return DefaultParams(80, 24, 60, 1)
}

func TestWallReflectionPreservesSpeed(t *testing.T) {
	p := testParams()
	b := &Ball{
		Pos: core.Vec2{X: 0.6, Y: 10},
		Vel: core.Vec2{X: -0.8, Y: 0.5},
		R:   p.BallRadius,
	}
	before := b.Speed()

	b.Advance(&p, 0, ModeGame)

	if b.Vel.X <= 0 {
		t.Errorf("Ball should move right after left wall bounce, VX=%f", b.Vel.X)
	}
	if b.Pos.X < b.R {
		t.Errorf("Ball should be clamped inside the playfield, X=%f", b.Pos.X)
	}
	after := b.Speed()
	if math.Abs(after-before) > 1e-9 {
		t.Errorf("Wall bounce should preserve speed, before=%f after=%f", before, after)
	}
}

func TestTopWallReflection(t *testing.T) {
	p := testParams()
	b := &Ball{
		Pos: core.Vec2{X: 40, Y: p.Top + 0.6},
		Vel: core.Vec2{X: 0.5, Y: -0.8},
		R:   p.BallRadius,
	}

	b.Advance(&p, 0, ModeGame)

	if b.Vel.Y <= 0 {
		t.Errorf("Ball should move down after top wall bounce, VY=%f", b.Vel.Y)
	}
	if b.Pos.Y < p.Top+b.R {
		t.Errorf("Ball should be clamped below the top, Y=%f", b.Pos.Y)
	}
}

func TestMinSpeedFloor(t *testing.T) {
	p := testParams()
	level := 3
	b := &Ball{
		Pos: core.Vec2{X: 40, Y: 10},
		Vel: core.Vec2{X: 0.01, Y: 0.01},
		R:   p.BallRadius,
	}

	b.Advance(&p, level, ModeGame)

	if b.Speed() < p.MinSpeed(level)-1e-9 {
		t.Errorf("Ball speed should be rescaled to the level floor, got %f, want >= %f",
			b.Speed(), p.MinSpeed(level))
	}
	// Direction should survive the rescale.
	if b.Vel.X <= 0 || b.Vel.Y <= 0 {
		t.Errorf("Rescale should not change direction, got (%f, %f)", b.Vel.X, b.Vel.Y)
	}
}

func TestStoppedBallGetsShoved(t *testing.T) {
	p := testParams()
	b := &Ball{
		Pos: core.Vec2{X: 40, Y: 10},
		R:   p.BallRadius,
	}

	b.Advance(&p, 0, ModeGame)

	if b.Speed() < core.Epsilon {
		t.Error("A fully stopped ball should be given a velocity in game mode")
	}
	if b.Vel.X <= 0 {
		t.Errorf("Stopped-ball shove should be horizontal-positive, VX=%f", b.Vel.X)
	}
}

func TestAngleNudge(t *testing.T) {
	p := testParams()
	b := &Ball{
		Pos: core.Vec2{X: 40, Y: 10},
		Vel: core.Vec2{X: 1.0, Y: 0.05},
		R:   p.BallRadius,
	}

	b.Advance(&p, 5, ModeGame)

	ratio := math.Abs(b.Vel.Y) / math.Abs(b.Vel.X)
	if ratio < p.AngleFloor-1e-9 {
		t.Errorf("Near-horizontal ball should be nudged to the angle floor, |vy/vx|=%f, want >= %f",
			ratio, p.AngleFloor)
	}
	if b.Vel.Y < 0 {
		t.Errorf("Nudge should preserve the vy sign, VY=%f", b.Vel.Y)
	}
}

func TestAngleNudgePreservesNegativeSign(t *testing.T) {
	p := testParams()
	b := &Ball{
		Pos: core.Vec2{X: 40, Y: 10},
		Vel: core.Vec2{X: 1.0, Y: -0.05},
		R:   p.BallRadius,
	}

	b.Advance(&p, 5, ModeGame)

	if b.Vel.Y >= 0 {
		t.Errorf("Upward ball should stay upward after the nudge, VY=%f", b.Vel.Y)
	}
}

func TestIntroBottomBounceDamps(t *testing.T) {
	p := testParams()
	b := &Ball{
		Pos: core.Vec2{X: 40, Y: p.Height - 0.6},
		Vel: core.Vec2{X: 0, Y: 1.0},
		R:   p.BallRadius,
	}

	dropped := b.Advance(&p, 0, ModeIntro)

	if dropped {
		t.Error("Intro mode should bounce off the bottom, not drop")
	}
	if b.Vel.Y >= 0 {
		t.Errorf("Ball should move up after a bottom bounce, VY=%f", b.Vel.Y)
	}
	want := -1.0 * p.BounceDamping * p.IntroDamping
	if math.Abs(b.Vel.Y-want) > 1e-9 {
		t.Errorf("Bottom bounce should damp vy, got %f, want %f", b.Vel.Y, want)
	}
}

func TestGameModeBottomIsDrop(t *testing.T) {
	p := testParams()
	b := &Ball{
		Pos: core.Vec2{X: 40, Y: p.Height - 0.6},
		Vel: core.Vec2{X: 0, Y: 1.0},
		R:   p.BallRadius,
	}

	if !b.Advance(&p, 0, ModeGame) {
		t.Error("Crossing the bottom in game mode should report a drop")
	}
}

func TestBatFlatTopBounce(t *testing.T) {
	p := testParams()
	rng := NewSimpleRNG(1)
	bat := &Bat{X: 35, Y: p.BatY, W: p.BatWidth, H: p.BatHeight, Expiry: -1}
	b := &Ball{
		Pos: core.Vec2{X: bat.CenterX(), Y: p.BatY + 0.2},
		Vel: core.Vec2{X: 0, Y: 0.5},
		R:   p.BallRadius,
	}

	if !b.ResolveBat(bat, &p, rng) {
		t.Fatal("Ball overlapping the bat top should register a hit")
	}
	if b.Vel.Y >= 0 {
		t.Errorf("Ball should move up after a flat-top hit, VY=%f", b.Vel.Y)
	}
	if b.Pos.Y > bat.Y-b.R {
		t.Errorf("Ball should be snapped above the bat surface, Y=%f", b.Pos.Y)
	}
	if b.Speed() > p.MaxSpeed+1e-9 {
		t.Errorf("Post-hit speed should be capped, got %f, cap %f", b.Speed(), p.MaxSpeed)
	}
}

func TestBatEndCapRedirects(t *testing.T) {
	p := testParams()
	rng := NewSimpleRNG(1)
	bat := &Bat{X: 35, Y: p.BatY, W: p.BatWidth, H: p.BatHeight, Expiry: -1}

	// Approach the left cap from the upper left, moving straight down.
	b := &Ball{
		Pos: core.Vec2{X: bat.X - 0.2, Y: bat.Y + 0.3},
		Vel: core.Vec2{X: 0, Y: 1.0},
		R:   p.BallRadius,
	}

	if !b.ResolveBat(bat, &p, rng) {
		t.Fatal("Ball overlapping the left end cap should register a hit")
	}
	if b.Vel.X >= 0 {
		t.Errorf("Left cap should redirect the ball leftward, VX=%f", b.Vel.X)
	}
}

func TestBatMissWhenClear(t *testing.T) {
	p := testParams()
	rng := NewSimpleRNG(1)
	bat := &Bat{X: 35, Y: p.BatY, W: p.BatWidth, H: p.BatHeight, Expiry: -1}
	b := &Ball{
		Pos: core.Vec2{X: 10, Y: 5},
		Vel: core.Vec2{X: 0, Y: 1.0},
		R:   p.BallRadius,
	}

	if b.ResolveBat(bat, &p, rng) {
		t.Error("Ball far from the bat should not register a hit")
	}
}

func TestParamsClampOutOfRangeDifficulty(t *testing.T) {
	if p := DefaultParams(80, 24, 60, 4); p.Difficulty != 2 {
		t.Errorf("Difficulty above 2 should clamp to 2, got %d", p.Difficulty)
	}
	if p := DefaultParams(80, 24, 60, -3); p.Difficulty != 0 {
		t.Errorf("Negative difficulty should clamp to 0, got %d", p.Difficulty)
	}
}

func TestBatHitVelocityStaysFinite(t *testing.T) {
	// Hardness in the config is user input; an unclamped value of 4
	// would make the bat lift divisor zero and poison the velocity
	// with NaN, freezing the ball for the rest of the session.
	p := DefaultParams(80, 24, 60, 4)
	rng := NewSimpleRNG(1)
	bat := &Bat{X: 35, Y: p.BatY, W: p.BatWidth, H: p.BatHeight, Expiry: -1}
	b := &Ball{
		Pos: core.Vec2{X: bat.CenterX(), Y: p.BatY + 0.2},
		Vel: core.Vec2{X: 0, Y: 0.5},
		R:   p.BallRadius,
	}

	if !b.ResolveBat(bat, &p, rng) {
		t.Fatal("Ball overlapping the bat top should register a hit")
	}
	if math.IsNaN(b.Vel.X) || math.IsNaN(b.Vel.Y) ||
		math.IsInf(b.Vel.X, 0) || math.IsInf(b.Vel.Y, 0) {
		t.Errorf("Bat hit must keep the velocity finite, got (%f,%f)", b.Vel.X, b.Vel.Y)
	}
	if b.Speed() > p.MaxSpeed+1e-9 {
		t.Errorf("Post-hit speed should be capped, got %f, cap %f", b.Speed(), p.MaxSpeed)
	}
}

func TestBrickTopFaceBounce(t *testing.T) {
	br := &Brick{
		Type:  BrickPlain,
		Lives: 1,
		Box:   core.NewRectF(10, 5, 4, 1),
	}
	b := &Ball{
		Pos: core.Vec2{X: 12, Y: 4.8},
		Vel: core.Vec2{X: 0.2, Y: 0.5},
		R:   0.5,
	}

	hit, destroyed := b.ResolveBrick(br)
	if !hit {
		t.Fatal("Ball overlapping the brick top face should register a hit")
	}
	if !destroyed {
		t.Error("A one-life brick should be destroyed by a single hit")
	}
	if b.Vel.Y >= 0 {
		t.Errorf("Ball should move up after a top face hit, VY=%f", b.Vel.Y)
	}
	if b.Pos.Y > br.Box.Y-b.R {
		t.Errorf("Ball should be snapped above the brick, Y=%f", b.Pos.Y)
	}
	if b.Vel.X != 0.2 {
		t.Errorf("Face hit should leave vx untouched, VX=%f", b.Vel.X)
	}
}

func TestBrickSideFaceBounce(t *testing.T) {
	br := &Brick{
		Type:  BrickPlain,
		Lives: 1,
		Box:   core.NewRectF(10, 5, 4, 1),
	}
	b := &Ball{
		Pos: core.Vec2{X: 9.8, Y: 5.5},
		Vel: core.Vec2{X: 0.5, Y: 0.1},
		R:   0.5,
	}

	hit, _ := b.ResolveBrick(br)
	if !hit {
		t.Fatal("Ball overlapping the brick left face should register a hit")
	}
	if b.Vel.X >= 0 {
		t.Errorf("Ball should move left after a left face hit, VX=%f", b.Vel.X)
	}
	if b.Vel.Y != 0.1 {
		t.Errorf("Face hit should leave vy untouched, VY=%f", b.Vel.Y)
	}
}

func TestBrickCornerMiss(t *testing.T) {
	// AABBs overlap but the corner is farther than the radius: no hit.
	br := &Brick{
		Type:  BrickPlain,
		Lives: 1,
		Box:   core.NewRectF(10, 5, 4, 1),
	}
	b := &Ball{
		Pos: core.Vec2{X: 9.6, Y: 4.6},
		Vel: core.Vec2{X: 1, Y: 1},
		R:   0.5,
	}

	hit, _ := b.ResolveBrick(br)
	if hit {
		t.Error("Corner farther than the radius should not count as contact")
	}
	if br.Lives != 1 {
		t.Errorf("A missed brick should keep its lives, got %d", br.Lives)
	}
}

func TestBrickCornerReflection(t *testing.T) {
	br := &Brick{
		Type:  BrickPlain,
		Lives: 1,
		Box:   core.NewRectF(10, 5, 4, 1),
	}
	b := &Ball{
		Pos: core.Vec2{X: 9.8, Y: 4.8},
		Vel: core.Vec2{X: 1, Y: 1},
		R:   0.5,
	}
	before := b.Speed()

	hit, _ := b.ResolveBrick(br)
	if !hit {
		t.Fatal("Ball within radius of the corner should register a hit")
	}
	if b.Vel.X >= 0 || b.Vel.Y >= 0 {
		t.Errorf("Diagonal corner hit should reverse both components, got (%f, %f)",
			b.Vel.X, b.Vel.Y)
	}
	if math.Abs(b.Speed()-before) > 1e-9 {
		t.Errorf("Corner reflection should preserve speed, before=%f after=%f",
			before, b.Speed())
	}
	// The ball must end up outside the corner circle.
	d := b.Pos.Sub(core.Vec2{X: 10, Y: 5}).Len()
	if d < b.R-1e-9 {
		t.Errorf("Ball should be pushed out to the radius, distance=%f", d)
	}
}

func TestBrickCornerDiagonalNeverTunnels(t *testing.T) {
	// A ball aimed dead at a corner along the diagonal must register
	// contact at every speed up to the cap; discrete steps may sample
	// on either side of the corner circle, but the face bands behind
	// it have to catch the ball before it crosses the brick.
	p := testParams()

	for step := 1; step <= 10; step++ {
		sp := p.MaxSpeed * float64(step) / 10

		br := &Brick{
			Type:  BrickPlain,
			Lives: 1,
			Box:   core.NewRectF(10, 5, 4, 1),
		}
		b := &Ball{
			Pos: core.Vec2{X: 7.5, Y: 2.5},
			Vel: core.Vec2{X: 1, Y: 1}.Normalize().Scale(sp),
			R:   p.BallRadius,
		}

		hit := false
		for frame := 0; frame < 60; frame++ {
			b.Advance(&p, 0, ModeGame)
			if h, _ := b.ResolveBrick(br); h {
				hit = true
				break
			}
			if b.Pos.Y > br.Box.Bottom()+b.R {
				break
			}
		}
		if !hit {
			t.Errorf("Diagonal corner approach at speed %f tunneled through the brick", sp)
		}
	}
}

func TestPairSeparationAndExchange(t *testing.T) {
	p := testParams()
	a := &Ball{Pos: core.Vec2{X: 0, Y: 0}, Vel: core.Vec2{X: 3, Y: 0}, R: 6}
	b := &Ball{Pos: core.Vec2{X: 10, Y: 0}, Vel: core.Vec2{X: -2, Y: 0}, R: 6}

	hit, rel := ResolvePair(a, b, ModeGame, &p)
	if !hit {
		t.Fatal("Overlapping balls should register contact")
	}
	if math.Abs(rel-5) > 1e-9 {
		t.Errorf("Relative normal speed should be 5, got %f", rel)
	}

	// Separated to exactly touching.
	d := b.Pos.Sub(a.Pos).Len()
	if math.Abs(d-12) > 1e-9 {
		t.Errorf("Balls should be separated to the radius sum, distance=%f", d)
	}

	// Head-on equal-mass contact swaps the normal components.
	if math.Abs(a.Vel.X-(-2)) > 1e-9 || math.Abs(b.Vel.X-3) > 1e-9 {
		t.Errorf("Velocities should be exchanged, got a=%f b=%f", a.Vel.X, b.Vel.X)
	}
}

func TestPairTangentialUntouched(t *testing.T) {
	p := testParams()
	a := &Ball{Pos: core.Vec2{X: 0, Y: 0}, Vel: core.Vec2{X: 3, Y: 2}, R: 6}
	b := &Ball{Pos: core.Vec2{X: 10, Y: 0}, Vel: core.Vec2{X: -2, Y: -1}, R: 6}

	ResolvePair(a, b, ModeGame, &p)

	// Contact normal is x-axis; y components are tangential.
	if a.Vel.Y != 2 || b.Vel.Y != -1 {
		t.Errorf("Tangential components should be untouched, got a=%f b=%f",
			a.Vel.Y, b.Vel.Y)
	}
}

func TestPairMomentumConserved(t *testing.T) {
	p := testParams()
	a := &Ball{Pos: core.Vec2{X: 0, Y: 0}, Vel: core.Vec2{X: 3, Y: 1}, R: 6}
	b := &Ball{Pos: core.Vec2{X: 8, Y: 3}, Vel: core.Vec2{X: -2, Y: -4}, R: 6}
	before := a.Vel.Add(b.Vel)

	ResolvePair(a, b, ModeGame, &p)

	after := a.Vel.Add(b.Vel)
	if math.Abs(after.X-before.X) > 1e-9 || math.Abs(after.Y-before.Y) > 1e-9 {
		t.Errorf("Total momentum should be conserved, before=(%f,%f) after=(%f,%f)",
			before.X, before.Y, after.X, after.Y)
	}
}

func TestPairCoincidentCentersNoOp(t *testing.T) {
	p := testParams()
	a := &Ball{Pos: core.Vec2{X: 5, Y: 5}, Vel: core.Vec2{X: 1, Y: 0}, R: 1}
	b := &Ball{Pos: core.Vec2{X: 5, Y: 5}, Vel: core.Vec2{X: -1, Y: 0}, R: 1}

	hit, _ := ResolvePair(a, b, ModeGame, &p)
	if hit {
		t.Error("Coincident centers should resolve as a no-op")
	}
	if a.Vel.X != 1 || b.Vel.X != -1 {
		t.Error("Degenerate contact should leave velocities untouched")
	}
}

func TestPairNonOverlappingNoContact(t *testing.T) {
	p := testParams()
	a := &Ball{Pos: core.Vec2{X: 0, Y: 0}, Vel: core.Vec2{X: 1, Y: 0}, R: 1}
	b := &Ball{Pos: core.Vec2{X: 5, Y: 0}, Vel: core.Vec2{X: -1, Y: 0}, R: 1}

	if hit, _ := ResolvePair(a, b, ModeGame, &p); hit {
		t.Error("Separated balls should not register contact")
	}
}

func TestKickRespectsMaxSpeed(t *testing.T) {
	p := testParams()
	f := NewField(p, 7)
	f.Balls = append(f.Balls, &Ball{
		Vel: core.Vec2{X: p.MaxSpeed * 0.9, Y: 0},
		R:   p.BallRadius,
	})

	f.KickAll()

	if sp := f.Balls[0].Speed(); sp > p.MaxSpeed+1e-9 {
		t.Errorf("Kick should cap speed at the maximum, got %f, cap %f", sp, p.MaxSpeed)
	}
	f.KickAll()
	if sp := f.Balls[0].Speed(); sp > p.MaxSpeed+1e-9 {
		t.Errorf("Repeated kicks should stay capped, got %f, cap %f", sp, p.MaxSpeed)
	}
}
