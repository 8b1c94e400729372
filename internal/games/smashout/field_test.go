package smashout

import (
	"testing"

	"github.com/mkovalev/tui-smashout/internal/core"
)

func newTestField(rows []string, difficulty int) *Field {
	p := DefaultParams(80, 24, 60, difficulty)
	f := NewField(p, 42)
	f.Lives = 4
	f.LoadLayout(Layout{ID: "test", Name: "Test", Rows: rows}, 0)
	return f
}

func brickAt(f *Field, row, col int) *Brick {
	for _, br := range f.Bricks {
		if br.Row == row && br.Col == col {
			return br
		}
	}
	return nil
}

func TestFireCascadeDestroysNeighbors(t *testing.T) {
	f := newTestField([]string{"FFF"}, 1)

	origin := brickAt(f, 0, 1)
	if origin == nil || origin.Type != BrickFire {
		t.Fatal("Expected a fire brick in the middle cell")
	}

	origin.Kill()
	f.destroyBrick(origin)

	for _, br := range f.Bricks {
		if br.Alive() {
			t.Errorf("Cascade should destroy all connected fire bricks, (%d,%d) survived",
				br.Row, br.Col)
		}
	}
	// Three fire bricks at level 0.
	want := 3 * BrickFire.Points()
	if f.Score != want {
		t.Errorf("Cascade should score every destroyed brick, got %d, want %d", f.Score, want)
	}
}

func TestFireCascadeStopsAtGaps(t *testing.T) {
	f := newTestField([]string{"F.F"}, 1)

	origin := brickAt(f, 0, 0)
	origin.Kill()
	f.destroyBrick(origin)

	if other := brickAt(f, 0, 2); !other.Alive() {
		t.Error("Cascade should not jump over gaps")
	}
}

func TestFireCascadeSparesSolidBricks(t *testing.T) {
	f := newTestField([]string{"FFX"}, 2)

	origin := brickAt(f, 0, 0)
	origin.Kill()
	f.destroyBrick(origin)

	if mid := brickAt(f, 0, 1); mid.Alive() {
		t.Error("Adjacent fire brick should be consumed by the cascade")
	}
	if solid := brickAt(f, 0, 2); !solid.Alive() {
		t.Error("Solid bricks should survive fire cascades")
	}
}

func TestInvertTimerIsAdditive(t *testing.T) {
	f := newTestField([]string{"II"}, 2)

	first := brickAt(f, 0, 0)
	first.Kill()
	f.destroyBrick(first)

	if f.InvertLeft != f.P.InvertFrames {
		t.Errorf("First invert brick should set the timer, got %d, want %d",
			f.InvertLeft, f.P.InvertFrames)
	}
	if !f.Bats[0].Inverted {
		t.Error("Bats should be flagged inverted while the timer runs")
	}

	second := brickAt(f, 0, 1)
	second.Kill()
	f.destroyBrick(second)

	if f.InvertLeft != 2*f.P.InvertFrames {
		t.Errorf("Second invert brick should extend the timer, got %d, want %d",
			f.InvertLeft, 2*f.P.InvertFrames)
	}
}

func TestLaserTimerIsAdditive(t *testing.T) {
	f := newTestField([]string{"ZZ"}, 1)

	first := brickAt(f, 0, 0)
	first.Kill()
	f.destroyBrick(first)
	second := brickAt(f, 0, 1)
	second.Kill()
	f.destroyBrick(second)

	if f.LaserLeft != 2*f.P.LaserFrames {
		t.Errorf("Laser bricks should stack duration, got %d, want %d",
			f.LaserLeft, 2*f.P.LaserFrames)
	}
}

func TestBlackoutTimerResets(t *testing.T) {
	f := newTestField([]string{"KK"}, 2)

	first := brickAt(f, 0, 0)
	first.Kill()
	f.destroyBrick(first)

	if f.BlackoutLeft != f.P.BlackoutFrames {
		t.Errorf("Blackout brick should set the timer, got %d, want %d",
			f.BlackoutLeft, f.P.BlackoutFrames)
	}

	// A second blackout restarts the window rather than stacking it.
	f.BlackoutLeft = 10
	second := brickAt(f, 0, 1)
	second.Kill()
	f.destroyBrick(second)

	if f.BlackoutLeft != f.P.BlackoutFrames {
		t.Errorf("Blackout timer should reset, not stack, got %d, want %d",
			f.BlackoutLeft, f.P.BlackoutFrames)
	}
}

func TestExtraLifeBrick(t *testing.T) {
	f := newTestField([]string{"L"}, 1)
	before := f.Lives

	br := brickAt(f, 0, 0)
	br.Kill()
	f.destroyBrick(br)

	if f.Lives != before+1 {
		t.Errorf("Extra-life brick should grant a life, got %d, want %d", f.Lives, before+1)
	}
}

func TestBonusBallBrickSpawnsBall(t *testing.T) {
	f := newTestField([]string{"B"}, 1)

	br := brickAt(f, 0, 0)
	br.Kill()
	f.destroyBrick(br)

	if len(f.Balls) != 1 {
		t.Fatalf("Bonus brick should spawn one ball, got %d", len(f.Balls))
	}
	ball := f.Balls[0]
	if ball.Role != RoleBonus {
		t.Error("Spawned ball should carry the bonus role")
	}
	if ball.Lives != 2 {
		t.Errorf("Brick-spawned bonus ball should have 2 lives, got %d", ball.Lives)
	}
	if ball.Vel.Y >= 0 {
		t.Errorf("Bonus ball should enter moving upward, VY=%f", ball.Vel.Y)
	}
	if ball.Speed() <= 0 {
		t.Error("Bonus ball should enter with nonzero speed")
	}
}

func TestExtraBatPoolIsBounded(t *testing.T) {
	f := newTestField([]string{"TTT"}, 1)

	for col := 0; col < 3; col++ {
		br := brickAt(f, 0, col)
		br.Kill()
		f.destroyBrick(br)
	}

	// Pool holds two extras; the third brick finds it empty.
	if len(f.Bats) != 1+f.P.ExtraBats {
		t.Errorf("Extra bats should be pool-limited, got %d bats, want %d",
			len(f.Bats), 1+f.P.ExtraBats)
	}
}

func TestExtraBatExpiryRecyclesPool(t *testing.T) {
	f := newTestField([]string{"...."}, 1)
	f.deployExtraBat()

	if len(f.Bats) != 2 || f.batPool != f.P.ExtraBats-1 {
		t.Fatalf("Deploy should take a bat from the pool, bats=%d pool=%d",
			len(f.Bats), f.batPool)
	}

	f.Bats[1].Expiry = 1
	f.Advance()

	if len(f.Bats) != 1 {
		t.Errorf("Expired extra bat should be removed, got %d bats", len(f.Bats))
	}
	if f.batPool != f.P.ExtraBats {
		t.Errorf("Expired bat should return to the pool, pool=%d", f.batPool)
	}
}

func TestHeroDropCostsSharedLife(t *testing.T) {
	f := newTestField([]string{"####"}, 1)
	f.Mode = ModeGame
	f.Balls = append(f.Balls, &Ball{
		Pos:   core.Vec2{X: 40, Y: f.P.Height - 0.6},
		Vel:   core.Vec2{X: 0, Y: 1},
		R:     f.P.BallRadius,
		Lives: 1,
		Role:  RoleHero,
	})
	before := f.Lives

	f.Advance()

	if f.Lives != before-1 {
		t.Errorf("Hero drop should cost a shared life, got %d, want %d", f.Lives, before-1)
	}
	if len(f.Balls) != 1 {
		t.Fatalf("Hero ball must never be removed, got %d balls", len(f.Balls))
	}
	hero := f.Balls[0]
	if hero.Role != RoleHero {
		t.Error("Respawned ball should keep the hero role")
	}
	if hero.Pos.Y > f.P.Height/2 {
		t.Errorf("Hero should respawn near the top, Y=%f", hero.Pos.Y)
	}
	if hero.Vel.Y <= 0 {
		t.Errorf("Respawned hero should move downward, VY=%f", hero.Vel.Y)
	}
}

func TestRespawnRowClearOfBricks(t *testing.T) {
	// Balls re-enter at Top + radius; that row sits above the brick
	// band, so a respawn under a fully occupied top row must not chip
	// a brick on the same frame.
	f := newTestField([]string{"####"}, 1)
	f.Mode = ModeGame
	f.Balls = append(f.Balls, &Ball{
		Pos:   core.Vec2{X: 40, Y: f.P.Height - 0.6},
		Vel:   core.Vec2{X: 0, Y: 1},
		R:     f.P.BallRadius,
		Lives: 1,
		Role:  RoleHero,
	})

	f.Advance()

	if f.Score != 0 {
		t.Errorf("Respawn must not score a brick hit, score=%d", f.Score)
	}
	hero := f.Balls[0]
	for _, br := range f.Bricks {
		if !br.Alive() {
			t.Fatalf("Respawn chipped brick (%d,%d)", br.Row, br.Col)
		}
		if hero.Bounds().Overlaps(br.Box) {
			t.Errorf("Respawned ball at Y=%f overlaps brick row %d", hero.Pos.Y, br.Row)
		}
	}
}

func TestBonusBallCulledAtZeroLives(t *testing.T) {
	f := newTestField([]string{"####"}, 1)
	f.Mode = ModeGame
	f.Balls = append(f.Balls, &Ball{
		Pos:   core.Vec2{X: 40, Y: f.P.Height - 0.6},
		Vel:   core.Vec2{X: 0, Y: 1},
		R:     f.P.BallRadius,
		Lives: 1,
		Role:  RoleBonus,
	})
	before := f.Lives

	f.Advance()

	if len(f.Balls) != 0 {
		t.Errorf("Bonus ball at zero lives should be culled, got %d balls", len(f.Balls))
	}
	if f.Lives != before {
		t.Error("A bonus ball drop should never cost a shared life")
	}
}

func TestBonusBallRespawnsWithLivesLeft(t *testing.T) {
	f := newTestField([]string{"####"}, 1)
	f.Mode = ModeGame
	f.Balls = append(f.Balls, &Ball{
		Pos:   core.Vec2{X: 40, Y: f.P.Height - 0.6},
		Vel:   core.Vec2{X: 0, Y: 1},
		R:     f.P.BallRadius,
		Lives: 2,
		Role:  RoleBonus,
	})

	f.Advance()

	if len(f.Balls) != 1 {
		t.Fatalf("Bonus ball with lives left should respawn, got %d balls", len(f.Balls))
	}
	if f.Balls[0].Lives != 1 {
		t.Errorf("Respawn should consume one ball life, got %d", f.Balls[0].Lives)
	}
}

func TestSteerInvertsWhileTimerRuns(t *testing.T) {
	f := newTestField([]string{"####"}, 1)
	start := f.Bats[0].X

	f.Steer(1)
	if f.Bats[0].X <= start {
		t.Fatal("Steer right should move the bat right")
	}

	f.Bats[0].X = start
	f.InvertLeft = 10
	f.Steer(1)
	if f.Bats[0].X >= start {
		t.Error("Steer right should move the bat left while inverted")
	}
}

func TestSteerClampsToPlayfield(t *testing.T) {
	f := newTestField([]string{"####"}, 1)

	for i := 0; i < 10000; i++ {
		f.Steer(-1)
	}
	if f.Bats[0].X != 0 {
		t.Errorf("Bat should clamp at the left edge, X=%f", f.Bats[0].X)
	}

	for i := 0; i < 10000; i++ {
		f.Steer(1)
	}
	if f.Bats[0].X != f.P.Width-f.Bats[0].W {
		t.Errorf("Bat should clamp at the right edge, X=%f", f.Bats[0].X)
	}
}

func TestBoringTimeoutSpawnsBonusBall(t *testing.T) {
	f := newTestField([]string{"####"}, 1)
	f.Mode = ModeGame
	f.boringLeft = 1

	f.Advance()

	if len(f.Balls) != 1 {
		t.Fatalf("Inactivity timeout should spawn a bonus ball, got %d balls", len(f.Balls))
	}
	if f.Balls[0].Lives != 3 {
		t.Errorf("Timeout bonus ball should have 3 lives, got %d", f.Balls[0].Lives)
	}
	if f.boringLeft != f.P.BoringFrames {
		t.Errorf("Timeout should rearm, got %d, want %d", f.boringLeft, f.P.BoringFrames)
	}
}

func TestLaserFiringCadence(t *testing.T) {
	f := newTestField([]string{"...."}, 1)
	f.LaserLeft = 100
	f.Frame = f.P.FPS - 1

	f.Advance()

	if len(f.Bolts) != 1 {
		t.Fatalf("Primary bat should fire on its cadence frame, got %d bolts", len(f.Bolts))
	}
	if f.LaserLeft != 99 {
		t.Errorf("Laser mode should tick down each frame, got %d", f.LaserLeft)
	}
	if f.Bolts[0].Pos.X != f.Bats[0].CenterX() {
		t.Errorf("Bolt should fire from the bat center, X=%f", f.Bolts[0].Pos.X)
	}
}

func TestOneBrickPerBallPerFrame(t *testing.T) {
	f := newTestField([]string{"##"}, 1)
	f.Mode = ModeGame

	// Straddle both bricks at the shared boundary; only one may be hit
	// this frame.
	f.Balls = append(f.Balls, &Ball{
		Pos:   core.Vec2{X: f.BrickW, Y: 3.2},
		Vel:   core.Vec2{X: 0, Y: -0.2},
		R:     f.P.BallRadius,
		Lives: 1,
		Role:  RoleHero,
	})

	f.Advance()

	destroyed := 0
	for _, br := range f.Bricks {
		if br.Destroyed() {
			destroyed++
		}
	}
	if destroyed != 1 {
		t.Errorf("At most one brick per ball per frame, got %d destroyed", destroyed)
	}
}

func TestIntroBallsIgnoreBricks(t *testing.T) {
	f := newTestField([]string{"####"}, 1)
	f.Mode = ModeIntro
	f.Balls = append(f.Balls, &Ball{
		Pos:   core.Vec2{X: 10, Y: 3.0},
		Vel:   core.Vec2{X: 0.2, Y: 0.2},
		R:     f.P.BallRadius,
		Lives: 1,
		Role:  RoleBonus,
	})

	f.Advance()

	for _, br := range f.Bricks {
		if !br.Alive() {
			t.Fatal("Attract balls must not damage bricks")
		}
	}
}

func TestLoadLayoutResetsTransients(t *testing.T) {
	f := newTestField([]string{"####"}, 1)
	f.LaserLeft = 100
	f.InvertLeft = 100
	f.BlackoutLeft = 100
	f.Bolts = append(f.Bolts, &Bolt{Pos: core.Vec2{X: 10, Y: 10}, W: 1, H: 1})
	f.Bats[0].Inverted = true
	f.Score = 500

	f.LoadLayout(GetLayout(1), 1)

	if f.LaserLeft != 0 || f.InvertLeft != 0 || f.BlackoutLeft != 0 {
		t.Error("Level load should clear timed modes")
	}
	if len(f.Bolts) != 0 {
		t.Error("Level load should clear in-flight bolts")
	}
	if f.Bats[0].Inverted {
		t.Error("Level load should clear the inverted flag")
	}
	if f.Score != 500 {
		t.Error("Score should survive level transitions")
	}
}

func TestDestructibleRemainingIgnoresSolid(t *testing.T) {
	f := newTestField([]string{"X#"}, 2)

	if f.DestructibleRemaining() != 1 {
		t.Fatalf("Only non-solid bricks count toward level clear, got %d",
			f.DestructibleRemaining())
	}

	br := brickAt(f, 0, 1)
	br.Kill()
	if f.DestructibleRemaining() != 0 {
		t.Error("Level should read clear with only solid bricks left")
	}
}

func TestSoundEventsDrainOnce(t *testing.T) {
	f := newTestField([]string{"L"}, 1)

	br := brickAt(f, 0, 0)
	br.Kill()
	f.destroyBrick(br)
	f.emit(SoundBrickBreak, 40, f.P.VolumeCap)

	ev := f.DrainEvents()
	if len(ev) == 0 {
		t.Fatal("Queued events should drain")
	}
	for _, e := range ev {
		if e.Pan < 0 || e.Pan > 1 {
			t.Errorf("Pan should be normalized to [0,1], got %f", e.Pan)
		}
		if e.Volume < 0 || e.Volume > 1 {
			t.Errorf("Volume should be normalized to [0,1], got %f", e.Volume)
		}
	}
	if len(f.DrainEvents()) != 0 {
		t.Error("A second drain should return nothing")
	}
}
