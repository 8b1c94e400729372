package smashout

import (
	"math"

	"github.com/mkovalev/tui-smashout/internal/core"
)

// Field owns every active entity and advances the simulation one frame
// at a time. It is the only writer of the ball/bat/brick/bolt
// collections; entities never mutate each other's collections.
//
// The per-frame ordering inside Advance is a contract: bat positions
// settle first (via Steer, called before Advance), then ball motion and
// wall/bat contact, then brick contact for balls above the lowest brick
// row, then pairwise ball-ball contact on the settled positions, then
// lasers and timers.
type Field struct {
	P    Params
	RNG  *SimpleRNG
	Mode Mode

	Level int
	Lives int // Shared player lives; the hero's drops decrement this
	Score int

	Balls []*Ball // Balls[0] is always the hero
	Bats  []*Bat  // Bats[0] is the permanent primary bat
	Bolts []*Bolt

	Bricks     []*Brick // Row-major
	Rows, Cols int
	BrickW     float64

	// Timed modes, uniform remaining-frame counters.
	LaserLeft    int
	InvertLeft   int
	BlackoutLeft int

	Frame       int
	batPool     int     // Extra bats not yet deployed
	boringLeft  int     // Frames until the inactivity bonus ball
	lowestBrick float64 // Brick contact cutoff row

	events []SoundEvent
}

// NewField creates a field with the given tunables and RNG seed.
func NewField(p Params, seed int64) *Field {
	f := &Field{
		P:    p,
		RNG:  NewSimpleRNG(seed),
		Mode: ModeGame,
	}
	f.Bats = []*Bat{{
		X:      (p.Width - p.BatWidth) / 2,
		Y:      p.BatY,
		W:      p.BatWidth,
		H:      p.BatHeight,
		Expiry: -1,
	}}
	f.batPool = p.ExtraBats
	return f
}

// LoadLayout builds the brick grid for a layout and resets per-level
// transient state (bolts, timed modes, inactivity timer). The hero ball
// and score survive across levels.
func (f *Field) LoadLayout(lay Layout, level int) {
	f.Level = level

	cols := 0
	for _, row := range lay.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	f.Rows = len(lay.Rows)
	f.Cols = cols
	f.BrickW = f.P.Width / float64(cols)

	f.Bricks = f.Bricks[:0]
	for r, row := range lay.Rows {
		for c := range cols {
			var ch byte = '.'
			if c < len(row) {
				ch = row[c]
			}
			t, ok := parseBrickType(ch, f.P.Difficulty, f.RNG)
			if !ok {
				continue
			}
			f.Bricks = append(f.Bricks, &Brick{
				Row:  r,
				Col:  c,
				Type: t,
				Box: core.NewRectF(
					float64(c)*f.BrickW,
					f.P.BrickTop+float64(r)*f.P.BrickH,
					f.BrickW,
					f.P.BrickH,
				),
				Lives: t.InitialLives(),
			})
		}
	}

	// Balls only test bricks above this row; below it the grid cannot
	// be reached, so the whole pass is skipped.
	f.lowestBrick = f.P.BrickTop + float64(f.Rows)*f.P.BrickH + 2*f.P.BallRadius

	f.Bolts = f.Bolts[:0]
	f.LaserLeft = 0
	f.InvertLeft = 0
	f.BlackoutLeft = 0
	f.boringLeft = f.P.BoringFrames
	for _, bt := range f.Bats {
		bt.Inverted = false
	}
}

// LaunchHero places the hero ball on the primary bat and launches it
// with the level's downward-scaled speed mirrored upward.
func (f *Field) LaunchHero() {
	speed := f.P.LaunchSpeed(f.Level)
	hero := &Ball{
		Pos:   core.Vec2{X: f.Bats[0].CenterX(), Y: f.P.BatY - 1 - f.P.BallRadius},
		Vel:   core.Vec2{X: float64(f.RNG.Intn(3)-1) * f.P.SpeedUnit, Y: -speed},
		R:     f.P.BallRadius,
		Lives: 1,
		Role:  RoleHero,
	}
	if len(f.Balls) == 0 {
		f.Balls = append(f.Balls, hero)
		return
	}
	f.Balls[0] = hero
}

// Steer moves every bat by dir (-1, 0, +1) bat-speed steps, mirrored
// while controls are inverted.
func (f *Field) Steer(dir int) {
	if f.InvertLeft > 0 {
		dir = -dir
	}
	for _, bt := range f.Bats {
		bt.MoveTo(bt.X+float64(dir)*f.P.BatSpeed, 0, f.P.Width-bt.W)
	}
}

// KickAll scales every ball's speed by the kick ratio, capped at the
// session maximum. An escape hatch for stuck rallies.
func (f *Field) KickAll() {
	for _, b := range f.Balls {
		b.Vel = b.Vel.Scale(f.P.KickRatio)
		if sp := b.Speed(); sp > f.P.MaxSpeed {
			b.Vel = b.Vel.Scale(f.P.MaxSpeed / sp)
		}
	}
}

// Advance runs one simulation frame in the contract order.
func (f *Field) Advance() {
	f.Frame++

	// Ball motion, wall and bat contact.
	for _, b := range f.Balls {
		if b.lost {
			continue
		}
		if dropped := b.Advance(&f.P, f.Level, f.Mode); dropped {
			f.handleDrop(b)
			continue
		}
		for _, bt := range f.Bats {
			if b.ResolveBat(bt, &f.P, f.RNG) {
				f.emit(SoundBatHit, b.Pos.X, b.Speed())
				break
			}
		}
	}

	// Brick contact, only in game mode and only for balls above the
	// cutoff; at most one brick per ball per frame (a second
	// overlapping brick waits a frame).
	for _, b := range f.Balls {
		if f.Mode != ModeGame || b.lost || b.Pos.Y >= f.lowestBrick {
			continue
		}
		for _, br := range f.Bricks {
			if !br.Alive() {
				continue
			}
			hit, destroyed := b.ResolveBrick(br)
			if !hit {
				continue
			}
			f.onBrickHit(br, destroyed, b.Pos.X, b.Speed())
			break
		}
	}

	f.cullLostBalls()

	// Pairwise ball-ball contact, on settled positions.
	for i := 0; i < len(f.Balls); i++ {
		for j := i + 1; j < len(f.Balls); j++ {
			if hit, relSpeed := ResolvePair(f.Balls[i], f.Balls[j], f.Mode, &f.P); hit {
				f.emit(SoundBallHit, f.Balls[i].Pos.X, relSpeed)
			}
		}
	}

	f.advanceLasers()
	f.tickTimers()
}

// handleDrop processes a ball crossing the bottom in game mode.
func (f *Field) handleDrop(b *Ball) {
	f.emit(SoundDrop, b.Pos.X, b.Speed())
	b.Lives--

	if b.Role == RoleHero {
		// The hero is never removed; its loss costs a shared life.
		f.Lives--
		if b.Lives < 1 {
			b.Lives = 1
		}
		f.respawnTop(b)
		return
	}
	if b.Lives > 0 {
		f.respawnTop(b)
		return
	}
	b.lost = true
}

// respawnTop re-enters a ball at a random point along the top with a
// small velocity biased downward and toward the center.
func (f *Field) respawnTop(b *Ball) {
	x := b.R + f.RNG.Float64()*(f.P.Width-2*b.R)
	vx := (0.5 + 1.5*f.RNG.Float64()) * f.P.SpeedUnit
	if x > f.P.Width/2 {
		vx = -vx
	}
	b.Pos = core.Vec2{X: x, Y: f.P.Top + b.R}
	b.Vel = core.Vec2{X: vx, Y: (1 + 2*f.RNG.Float64()) * f.P.SpeedUnit}
}

// cullLostBalls removes bonus balls whose lives ran out.
func (f *Field) cullLostBalls() {
	kept := f.Balls[:0]
	for _, b := range f.Balls {
		if !b.lost {
			kept = append(kept, b)
		}
	}
	f.Balls = kept
}

// onBrickHit scores a landed hit and runs the destruction path when the
// hit finished the brick. Destruction sounds play at full volume.
func (f *Field) onBrickHit(br *Brick, destroyed bool, impactX, impactSpeed float64) {
	if destroyed {
		f.emit(SoundBrickBreak, impactX, f.P.VolumeCap)
		f.destroyBrick(br)
		return
	}
	f.Score++
	f.emit(SoundBrickHit, impactX, impactSpeed)
}

// destroyBrick applies the typed effect of a destroyed brick and runs
// fire cascades as a bounded worklist with a visited set, so cyclic
// adjacency can never recurse forever or revisit a brick.
func (f *Field) destroyBrick(origin *Brick) {
	f.boringLeft = f.P.BoringFrames

	work := []*Brick{origin}
	visited := map[*Brick]bool{origin: true}

	for len(work) > 0 {
		br := work[0]
		work = work[1:]
		f.Score += br.Type.Points() * (f.Level + 1)

		switch br.Type {
		case BrickBonusBall:
			f.spawnBonusBall(2)
		case BrickExtraBat:
			f.deployExtraBat()
		case BrickExtraLife:
			f.Lives++
		case BrickBlackout:
			f.BlackoutLeft = f.P.BlackoutFrames
		case BrickInvert:
			f.InvertLeft += f.P.InvertFrames
			for _, bt := range f.Bats {
				bt.Inverted = true
			}
		case BrickLaser:
			f.LaserLeft += f.P.LaserFrames
		case BrickFire:
			for _, nb := range f.neighbors(br) {
				if visited[nb] || !nb.Alive() {
					continue
				}
				visited[nb] = true
				if nb.Kill() {
					f.emit(SoundBrickBreak, nb.Box.Center().X, f.P.VolumeCap)
					work = append(work, nb)
				}
			}
		}
	}
}

// neighbors returns the live grid 8-neighborhood of a brick.
func (f *Field) neighbors(br *Brick) []*Brick {
	byCell := func(r, c int) *Brick {
		if r < 0 || c < 0 || r >= f.Rows || c >= f.Cols {
			return nil
		}
		for _, other := range f.Bricks {
			if other.Row == r && other.Col == c {
				return other
			}
		}
		return nil
	}

	var out []*Brick
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if nb := byCell(br.Row+dr, br.Col+dc); nb != nil {
				out = append(out, nb)
			}
		}
	}
	return out
}

// spawnBonusBall enters a bonus ball from a random side at a random
// upward angle, at 50-100% of the hero's speed.
func (f *Field) spawnBonusBall(lives int) {
	heroSpeed := f.P.MinSpeed(f.Level)
	if len(f.Balls) > 0 {
		if sp := f.Balls[0].Speed(); sp > heroSpeed {
			heroSpeed = sp
		}
	}
	speed := heroSpeed * (0.5 + 0.5*f.RNG.Float64())
	angle := (5 + 80*f.RNG.Float64()) * math.Pi / 180

	x := f.P.BallRadius
	vx := speed * math.Cos(angle)
	if f.RNG.Intn(2) == 1 {
		x = f.P.Width - f.P.BallRadius
		vx = -vx
	}

	f.Balls = append(f.Balls, &Ball{
		Pos:   core.Vec2{X: x, Y: f.P.Height * 0.8},
		Vel:   core.Vec2{X: vx, Y: -speed * math.Sin(angle)},
		R:     f.P.BallRadius,
		Lives: lives,
		Role:  RoleBonus,
	})
	f.emit(SoundBonus, x, speed)
}

// deployExtraBat takes a bat from the pool and centers it under the
// primary bat's position with the standard expiry.
func (f *Field) deployExtraBat() {
	if f.batPool <= 0 {
		return
	}
	f.batPool--
	f.Bats = append(f.Bats, &Bat{
		X:        core.ClampF(f.Bats[0].CenterX()-f.P.BatWidth/2, 0, f.P.Width-f.P.BatWidth),
		Y:        f.P.BatY,
		W:        f.P.BatWidth,
		H:        f.P.BatHeight,
		Inverted: f.InvertLeft > 0,
		Expiry:   f.P.BatExpiryFrames,
	})
}

// advanceLasers moves bolts, applies at most one brick hit per bolt,
// culls spent bolts and fires new ones on a staggered per-bat cadence
// while laser mode is active.
func (f *Field) advanceLasers() {
	kept := f.Bolts[:0]
	for _, bo := range f.Bolts {
		bo.Advance(f.P.LaserSpeed)
		if bo.OffTop(f.P.Top) {
			continue
		}
		if br := bo.ResolveBricks(f.Bricks, f.P.LaserSpeed); br != nil {
			destroyed := br.Hit()
			f.onBrickHit(br, destroyed, bo.Pos.X, f.P.LaserSpeed)
			continue // A bolt is spent on its first brick contact.
		}
		kept = append(kept, bo)
	}
	f.Bolts = kept

	if f.LaserLeft <= 0 {
		return
	}
	stride := f.P.FPS / 8
	if stride == 0 {
		stride = 1
	}
	for i, bt := range f.Bats {
		if f.Frame%f.P.FPS != (i*stride)%f.P.FPS {
			continue
		}
		f.Bolts = append(f.Bolts, &Bolt{
			Pos:  core.Vec2{X: bt.CenterX(), Y: bt.Y - 0.5},
			W:    1,
			H:    1,
			PanX: bt.CenterX(),
		})
		f.emit(SoundLaserFire, bt.CenterX(), f.P.VolumeCap/2)
	}
	f.LaserLeft--
}

// tickTimers decrements the uniform frame counters: inversion (with a
// per-second warning tick), blackout, extra-bat expiry, destruction
// animations and the inactivity bonus.
func (f *Field) tickTimers() {
	if f.InvertLeft > 0 {
		if f.InvertLeft%f.P.FPS == 0 {
			f.emit(SoundInvertTick, f.P.Width/2, f.P.VolumeCap/2)
		}
		f.InvertLeft--
		if f.InvertLeft == 0 {
			for _, bt := range f.Bats {
				bt.Inverted = false
			}
		}
	}

	if f.BlackoutLeft > 0 {
		f.BlackoutLeft--
	}

	// Expired extra bats go back to the pool. The primary bat at index
	// 0 is permanent and never recycled.
	keptBats := f.Bats[:0]
	for _, bt := range f.Bats {
		if bt.Tick() {
			f.batPool++
			continue
		}
		keptBats = append(keptBats, bt)
	}
	f.Bats = keptBats

	for _, br := range f.Bricks {
		br.TickAnim(f.P.AnimFrames)
	}

	if f.Mode == ModeGame && f.DestructibleRemaining() > 0 {
		f.boringLeft--
		if f.boringLeft <= 0 {
			f.spawnBonusBall(3)
			f.boringLeft = f.P.BoringFrames
		}
	}
}

// DestructibleRemaining counts live bricks that can still be destroyed.
// Zero means the level is clear.
func (f *Field) DestructibleRemaining() int {
	n := 0
	for _, br := range f.Bricks {
		if br.Alive() && br.Type != BrickSolid {
			n++
		}
	}
	return n
}

// emit queues a positional audio event. Pan is the impact x normalized
// to the playfield width; volume is the impact speed against the cap.
func (f *Field) emit(kind SoundKind, x, speed float64) {
	f.events = append(f.events, SoundEvent{
		Kind:   kind,
		Pan:    core.ClampF(x/f.P.Width, 0, 1),
		Volume: core.ClampF(speed/f.P.VolumeCap, 0, 1),
	})
}

// DrainEvents returns and clears the audio events queued this frame.
func (f *Field) DrainEvents() []SoundEvent {
	ev := f.events
	f.events = nil
	return ev
}
