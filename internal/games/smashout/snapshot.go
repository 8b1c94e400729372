package smashout

import (
	"math"

	"github.com/mkovalev/tui-smashout/internal/core"
)

// Snapshot contains the complete game state for replay/save/determinism
// checks. Uses primitive types only for stable serialization; float
// state is hashed through its IEEE bit pattern so identical runs hash
// identically.
type Snapshot struct {
	Tick       uint64
	Score      int
	Lives      int
	LevelIndex int
	State      string
	ServeDelay int

	// Game mode and endless tracking
	Mode         int // 0=Campaign, 1=Endless
	EndlessCycle int

	// Timed modes (remaining frames)
	LaserLeft    int
	InvertLeft   int
	BlackoutLeft int
	BoringLeft   int
	BatPool      int

	// Ball state (each ball is 4 floats: X, Y, VX, VY, plus 2 ints: Lives, Role)
	BallCount int
	BallData  []float64
	BallMeta  []int

	// Bat state (each bat is 2 floats: X, VX, plus 2 ints: Inverted, Expiry)
	BatCount int
	BatData  []float64
	BatMeta  []int

	// Bolt state (each bolt is 3 floats: X, Y, PanX)
	BoltCount int
	BoltData  []float64

	// Brick states (row-major; each brick is 2 ints: Lives, Anim)
	BrickData []int

	// RNG state
	RNGState uint64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	f := g.field

	ballData := make([]float64, 0, len(f.Balls)*4)
	ballMeta := make([]int, 0, len(f.Balls)*2)
	for _, b := range f.Balls {
		ballData = append(ballData, b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y)
		ballMeta = append(ballMeta, b.Lives, int(b.Role))
	}

	batData := make([]float64, 0, len(f.Bats)*2)
	batMeta := make([]int, 0, len(f.Bats)*2)
	for _, bt := range f.Bats {
		batData = append(batData, bt.X, bt.VX)
		inv := 0
		if bt.Inverted {
			inv = 1
		}
		batMeta = append(batMeta, inv, bt.Expiry)
	}

	boltData := make([]float64, 0, len(f.Bolts)*3)
	for _, bo := range f.Bolts {
		boltData = append(boltData, bo.Pos.X, bo.Pos.Y, bo.PanX)
	}

	brickData := make([]int, 0, len(f.Bricks)*2)
	for _, br := range f.Bricks {
		brickData = append(brickData, br.Lives, br.Anim)
	}

	return Snapshot{
		Tick:       uint64(g.tickCount), //#nosec G115 -- tick count is always positive
		Score:      f.Score,
		Lives:      f.Lives,
		LevelIndex: g.levelIndex,
		State:      g.state,
		ServeDelay: g.serveDelay,

		Mode:         int(g.mode),
		EndlessCycle: g.endlessCycle,

		LaserLeft:    f.LaserLeft,
		InvertLeft:   f.InvertLeft,
		BlackoutLeft: f.BlackoutLeft,
		BoringLeft:   f.boringLeft,
		BatPool:      f.batPool,

		BallCount: len(f.Balls),
		BallData:  ballData,
		BallMeta:  ballMeta,
		BatCount:  len(f.Bats),
		BatData:   batData,
		BatMeta:   batMeta,
		BoltCount: len(f.Bolts),
		BoltData:  boltData,
		BrickData: brickData,

		RNGState: f.RNG.state,
	}
}

// ApplySnapshot restores game state from a snapshot. The field must
// already hold the matching level layout (same brick count).
func (g *Game) ApplySnapshot(snap Snapshot) {
	f := g.field

	g.tickCount = int(snap.Tick) //#nosec G115 -- tick count fits in int
	f.Score = snap.Score
	f.Lives = snap.Lives
	g.levelIndex = snap.LevelIndex
	g.state = snap.State
	g.serveDelay = snap.ServeDelay

	g.mode = GameMode(snap.Mode)
	g.endlessCycle = snap.EndlessCycle

	f.LaserLeft = snap.LaserLeft
	f.InvertLeft = snap.InvertLeft
	f.BlackoutLeft = snap.BlackoutLeft
	f.boringLeft = snap.BoringLeft
	f.batPool = snap.BatPool

	f.Balls = make([]*Ball, 0, snap.BallCount)
	for i := range snap.BallCount {
		di := i * 4
		mi := i * 2
		if di+3 >= len(snap.BallData) || mi+1 >= len(snap.BallMeta) {
			break
		}
		b := &Ball{
			R:     f.P.BallRadius,
			Lives: snap.BallMeta[mi],
			Role:  BallRole(snap.BallMeta[mi+1]),
		}
		b.Pos.X, b.Pos.Y = snap.BallData[di], snap.BallData[di+1]
		b.Vel.X, b.Vel.Y = snap.BallData[di+2], snap.BallData[di+3]
		f.Balls = append(f.Balls, b)
	}

	f.Bats = make([]*Bat, 0, snap.BatCount)
	for i := range snap.BatCount {
		di := i * 2
		mi := i * 2
		if di+1 >= len(snap.BatData) || mi+1 >= len(snap.BatMeta) {
			break
		}
		f.Bats = append(f.Bats, &Bat{
			X:        snap.BatData[di],
			Y:        f.P.BatY,
			W:        f.P.BatWidth,
			H:        f.P.BatHeight,
			VX:       snap.BatData[di+1],
			Inverted: snap.BatMeta[mi] == 1,
			Expiry:   snap.BatMeta[mi+1],
		})
	}

	f.Bolts = make([]*Bolt, 0, snap.BoltCount)
	for i := range snap.BoltCount {
		di := i * 3
		if di+2 >= len(snap.BoltData) {
			break
		}
		f.Bolts = append(f.Bolts, &Bolt{
			Pos:  core.Vec2{X: snap.BoltData[di], Y: snap.BoltData[di+1]},
			W:    1,
			H:    1,
			PanX: snap.BoltData[di+2],
		})
	}

	if len(snap.BrickData) == len(f.Bricks)*2 {
		for i, br := range f.Bricks {
			br.Lives = snap.BrickData[i*2]
			br.Anim = snap.BrickData[i*2+1]
		}
	}

	f.RNG.state = snap.RNGState
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.LevelIndex)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Mode)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.EndlessCycle) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.LaserLeft)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.InvertLeft)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BlackoutLeft) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BoringLeft)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BatPool)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BallCount)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BatCount)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BoltCount)    //#nosec G115 -- hash computation

	for _, v := range snap.BallData {
		h = h*31 + math.Float64bits(v)
	}
	for _, v := range snap.BallMeta {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.BatData {
		h = h*31 + math.Float64bits(v)
	}
	for _, v := range snap.BatMeta {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.BoltData {
		h = h*31 + math.Float64bits(v)
	}
	for _, v := range snap.BrickData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	h = h*31 + snap.RNGState
	return h
}
