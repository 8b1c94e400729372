package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mkovalev/tui-smashout/internal/audio"
	"github.com/mkovalev/tui-smashout/internal/core"
	"github.com/mkovalev/tui-smashout/internal/games/smashout"
	"github.com/mkovalev/tui-smashout/internal/platform/tui"
	"github.com/mkovalev/tui-smashout/internal/registry"
	"github.com/mkovalev/tui-smashout/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
	flagMute       bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode directly (default: campaign).

Controls:
  A/D or Left/Right - Steer the bat
  Space             - Launch the ball
  K                 - Kick (speed burst for stuck rallies)
  P                 - Pause
  R                 - Restart (after game over)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Special bricks softened, slower balls
  normal - Default balance
  hard   - Full special brick set, faster balls
  fixed  - No speed progression across levels

Examples:
  smashout play
  smashout play smashout_endless
  smashout play --difficulty hard
  smashout play --level 3
  smashout play --config ./my-smashout.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start level (1-based, 0 = first)")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "smashout"
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if mode exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'smashout list' to see available modes.")
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Apply flags before creation
	smashout.SetConfigPath(flagConfig)
	smashout.SetDifficultyPreset(flagDifficulty)
	if flagLevel > 0 {
		smashout.SetStartLevel(flagLevel)
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Attach audio unless muted
	speaker := setupAudio(game)
	if speaker != nil {
		defer speaker.Cleanup()
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// Run the game
	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// setupAudio initializes the speaker and wires it to the game.
// Returns nil if muted or the audio device is unavailable.
func setupAudio(game registry.Game) *audio.Speaker {
	if flagMute {
		return nil
	}

	sg, ok := game.(*smashout.Game)
	if !ok {
		return nil
	}

	speaker := audio.NewSpeaker()
	if err := speaker.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: audio unavailable: %v\n", err)
		return nil
	}

	sg.SetSoundSink(speaker)
	return speaker
}
