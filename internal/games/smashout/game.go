package smashout

import (
	"fmt"

	"github.com/mkovalev/tui-smashout/internal/config"
	"github.com/mkovalev/tui-smashout/internal/core"
	"github.com/mkovalev/tui-smashout/internal/registry"
)

// Visual characters for rendering
const (
	BatChar         = '='
	BatInvertedChar = '~'
	BallChar        = '●'
	BoltChar        = '|'
	SeparatorChar   = '─'
)

// GameState constants
const (
	StateServe    = "serve"    // Hero on the bat, attract balls bouncing
	StatePlaying  = "playing"  // Ball in play
	StateGameOver = "gameover" // No lives left
	StateWin      = "win"      // All levels completed (campaign only)
	StatePaused   = "paused"   // Game paused
)

// GameMode represents the game mode.
type GameMode int

const (
	ModeCampaign GameMode = iota // Play through levels, win at end
	ModeEndless                  // Play forever, score until game over
)

// introBallCount is the number of decorative balls bouncing behind the
// serve screen.
const introBallCount = 3

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// startLevel stores the 1-based start level set via CLI (0 = first)
var startLevel int

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = ""
	}
}

// SetStartLevel sets the 1-based level to start from.
func SetStartLevel(level int) {
	startLevel = level
}

// Game implements the smashout game logic on top of the Field engine.
type Game struct {
	// Game mode
	mode GameMode

	// The physics and collision engine
	field *Field

	// Game state
	state        string
	levelIndex   int
	tickCount    int
	serveDelay   int // Countdown before allowing serve after level clear
	endlessCycle int

	// Configuration
	runtime    core.RuntimeConfig
	cfg        config.SmashoutConfig
	difficulty *config.DifficultyManager
	baseUnit   float64 // Speed unit before difficulty scaling

	// Audio collaborator; nil when the session is silent
	sink SoundSink

	// Layout
	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a new smashout game instance (campaign mode).
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new smashout game instance in endless mode.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "smashout_endless"
	}
	return "smashout"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Smashout (Endless)"
	}
	return "Smashout"
}

// SetSoundSink attaches an audio sink. Pass nil to silence the game.
func (g *Game) SetSoundSink(sink SoundSink) {
	g.sink = sink
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadSmashout(configPath)
	if err != nil {
		cfg = config.DefaultSmashoutConfig()
	}
	if difficultyPreset != "" {
		config.ApplySmashoutPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.minScreenW = 40
	g.minScreenH = 16
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	params := g.buildParams()
	g.baseUnit = params.SpeedUnit

	g.field = NewField(params, runtime.Seed)
	g.field.Lives = cfg.Gameplay.Lives

	g.tickCount = 0
	g.serveDelay = 0
	g.endlessCycle = 0
	g.levelIndex = 0
	if startLevel > 0 {
		g.levelIndex = startLevel - 1
	}

	g.loadLevel(g.levelIndex)
	g.enterServe()
}

// buildParams derives the engine tunables from the runtime and config.
func (g *Game) buildParams() Params {
	fps := g.runtime.TickRate
	if fps <= 0 {
		fps = 60
	}
	p := DefaultParams(g.runtime.ScreenW, g.runtime.ScreenH, fps, g.cfg.Gameplay.Hardness)

	p.SpeedUnit *= g.cfg.Physics.SpeedScale
	p.MaxSpeed *= g.cfg.Physics.MaxSpeedScale
	p.KickRatio = g.cfg.Physics.KickRatio
	p.AngleFloor = g.cfg.Physics.AngleFloor
	p.IntroDamping = g.cfg.Physics.IntroDamping
	p.BounceDamping = g.cfg.Physics.BounceDamping

	p.BatWidth = p.Width * g.cfg.Bat.WidthFrac
	p.BatSpeed = p.Width * g.cfg.Bat.SpeedFrac
	p.ExtraBats = g.cfg.Bat.ExtraBats
	p.BatExpiryFrames = int(g.cfg.Bat.ExpirySeconds * float64(fps))

	p.LaserFrames = int(g.cfg.Timers.LaserSeconds * float64(fps))
	p.InvertFrames = int(g.cfg.Timers.InversionSeconds * float64(fps))
	p.BlackoutFrames = int(g.cfg.Timers.BlackoutSeconds * float64(fps))
	p.BoringFrames = int(g.cfg.Timers.BoringSeconds * float64(fps))

	return p
}

// loadLevel builds the brick grid for a level index and applies the
// difficulty progression to the base speed.
func (g *Game) loadLevel(index int) {
	level := g.endlessCycle*LayoutCount() + index
	g.field.P.SpeedUnit = g.difficulty.Speed(g.baseUnit, g.field.Score, g.tickCount)
	g.field.LoadLayout(GetLayout(index), level)
}

// enterServe parks the game in the serve state with decorative attract
// balls bouncing under intro physics.
func (g *Game) enterServe() {
	g.state = StateServe
	f := g.field
	f.Mode = ModeIntro
	f.Balls = f.Balls[:0]
	for range introBallCount {
		f.Balls = append(f.Balls, &Ball{
			Pos: core.Vec2{
				X: f.P.BallRadius + f.RNG.Float64()*(f.P.Width-2*f.P.BallRadius),
				Y: f.P.Top + f.P.BallRadius + f.RNG.Float64()*f.P.Height/3,
			},
			Vel: core.Vec2{
				X: (f.RNG.Float64() - 0.5) * 8 * f.P.SpeedUnit,
				Y: (f.RNG.Float64() - 0.5) * 8 * f.P.SpeedUnit,
			},
			R:     f.P.BallRadius,
			Lives: 1,
			Role:  RoleBonus,
		})
	}
}

// launch clears the attract balls and puts the hero in play.
func (g *Game) launch() {
	f := g.field
	f.Balls = f.Balls[:0]
	f.Mode = ModeGame
	f.LaunchHero()
	g.state = StatePlaying
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && (g.state == StateGameOver || g.state == StateWin) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		if g.state == StatePaused {
			g.state = StatePlaying
		} else if g.state == StatePlaying {
			g.state = StatePaused
		}
	}

	if g.state == StatePaused || g.state == StateGameOver || g.state == StateWin {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++

	if g.serveDelay > 0 {
		g.serveDelay--
		return core.StepResult{State: g.State()}
	}

	// Bats settle before anything else moves.
	dir := 0
	if in.Has(core.ActionLeft) {
		dir--
	}
	if in.Has(core.ActionRight) {
		dir++
	}
	g.field.Steer(dir)

	if g.state == StateServe {
		if in.Has(core.ActionLaunch) {
			g.launch()
		} else {
			g.field.Advance()
			g.playSounds()
			return core.StepResult{State: g.State()}
		}
	}

	if in.Has(core.ActionKick) {
		g.field.KickAll()
	}

	g.field.Advance()
	g.playSounds()

	if g.field.Lives <= 0 {
		g.state = StateGameOver
		return core.StepResult{State: g.State()}
	}

	if g.field.DestructibleRemaining() == 0 {
		g.handleLevelClear()
	}

	return core.StepResult{State: g.State()}
}

// playSounds forwards the frame's audio events to the sink, if any.
func (g *Game) playSounds() {
	events := g.field.DrainEvents()
	if g.sink == nil {
		return
	}
	for _, e := range events {
		g.sink.Play(e)
	}
}

// handleLevelClear advances to the next level, or wins the campaign.
func (g *Game) handleLevelClear() {
	g.levelIndex++

	if g.mode == ModeCampaign {
		if g.levelIndex >= LayoutCount() {
			g.state = StateWin
			return
		}
	} else if g.levelIndex >= LayoutCount() {
		g.levelIndex = 0
		g.endlessCycle++
	}

	g.loadLevel(g.levelIndex)
	g.enterServe()
	g.serveDelay = g.field.P.FPS // Breathe for a second between levels
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	g.renderHUD(dst)
	g.renderBricks(dst)
	g.renderBats(dst)
	g.renderBalls(dst)
	g.renderBolts(dst)
	g.renderOverlay(dst)
}

// renderHUD draws score, lives, level and active mode indicators.
func (g *Game) renderHUD(dst *core.Screen) {
	f := g.field

	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", f.Score))
	dst.DrawTextCentered(0, fmt.Sprintf("Lives: %d", f.Lives))

	var levelText string
	if g.mode == ModeEndless {
		levelText = fmt.Sprintf("Level: %d", f.Level+1)
	} else {
		levelText = fmt.Sprintf("Level: %d/%d", g.levelIndex+1, LayoutCount())
	}
	dst.DrawText(dst.Width()-len(levelText)-1, 0, levelText)

	modes := g.buildModesString()
	if modes != "" {
		dst.DrawText(1, 1, modes)
	} else {
		for x := range dst.Width() {
			dst.Set(x, 1, SeparatorChar)
		}
	}
}

// buildModesString creates a compact active-modes display.
func (g *Game) buildModesString() string {
	f := g.field
	fps := f.P.FPS

	result := ""
	add := func(label string, frames int) {
		if frames <= 0 {
			return
		}
		if result != "" {
			result += " "
		}
		result += fmt.Sprintf("%s(%d)", label, (frames+fps-1)/fps)
	}
	add("LASER", f.LaserLeft)
	add("INVERT", f.InvertLeft)
	add("DARK", f.BlackoutLeft)
	if len(f.Bats) > 1 {
		if result != "" {
			result += " "
		}
		result += fmt.Sprintf("BATS(%d)", len(f.Bats))
	}
	return result
}

// renderBricks draws live bricks and shrinking destruction markers.
// During a blackout the brick area goes dark.
func (g *Game) renderBricks(dst *core.Screen) {
	f := g.field
	if f.BlackoutLeft > 0 {
		return
	}

	for _, br := range f.Bricks {
		y := int(br.Box.Y)
		left := int(br.Box.X)
		right := int(br.Box.Right())

		switch {
		case br.Alive():
			glyph := br.Type.Glyph()
			for x := left; x < right && x < dst.Width(); x++ {
				if y < dst.Height() {
					dst.Set(x, y, glyph)
				}
			}
		case !br.Gone(f.P.AnimFrames):
			// Shrinking marker at the brick center.
			progress := float64(br.Anim) / float64(f.P.AnimFrames)
			glyph := '▓'
			if progress > 0.66 {
				glyph = '·'
			} else if progress > 0.33 {
				glyph = '░'
			}
			cx := int(br.Box.Center().X)
			if cx < dst.Width() && y < dst.Height() {
				dst.Set(cx, y, glyph)
			}
		}
	}
}

// renderBats draws all bats, flagging inverted controls visually.
func (g *Game) renderBats(dst *core.Screen) {
	for _, bt := range g.field.Bats {
		ch := BatChar
		if bt.Inverted {
			ch = BatInvertedChar
		}
		y := int(bt.Y)
		for x := int(bt.X); x < int(bt.X+bt.W) && x < dst.Width(); x++ {
			if x >= 0 && y < dst.Height() {
				dst.Set(x, y, rune(ch))
			}
		}
	}
}

// renderBalls draws all balls.
func (g *Game) renderBalls(dst *core.Screen) {
	for _, b := range g.field.Balls {
		x, y := int(b.Pos.X), int(b.Pos.Y)
		if x >= 0 && x < dst.Width() && y >= 0 && y < dst.Height() {
			dst.Set(x, y, BallChar)
		}
	}
}

// renderBolts draws laser bolts.
func (g *Game) renderBolts(dst *core.Screen) {
	for _, bo := range g.field.Bolts {
		x, y := int(bo.Pos.X), int(bo.Pos.Y)
		if x >= 0 && x < dst.Width() && y >= 0 && y < dst.Height() {
			dst.Set(x, y, BoltChar)
		}
	}
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.state {
	case StateServe:
		if g.serveDelay <= 0 {
			dst.DrawTextCentered(dst.Height()-1, "Press SPACE to launch")
		} else {
			dst.DrawTextCentered(dst.Height()-1, "Get ready...")
		}

	case StatePaused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case StateGameOver:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", g.field.Score)
		g.drawCenteredBox(dst, "GAME OVER", subtitle)

	case StateWin:
		subtitle := fmt.Sprintf("Final Score: %d  |  Press R to restart", g.field.Score)
		g.drawCenteredBox(dst, "YOU WIN!", subtitle)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.field != nil {
		score = g.field.Score
	}
	return core.GameState{
		Score:    score,
		GameOver: g.state == StateGameOver || g.state == StateWin,
		Paused:   g.state == StatePaused,
	}
}

// Register the games with the registry
func init() {
	registry.Register("smashout", func() registry.Game {
		return New()
	})
	registry.Register("smashout_endless", func() registry.Game {
		return NewEndless()
	})
}
