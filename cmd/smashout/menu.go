package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mkovalev/tui-smashout/internal/core"
	"github.com/mkovalev/tui-smashout/internal/games/smashout"
	"github.com/mkovalev/tui-smashout/internal/platform/tui"
	"github.com/mkovalev/tui-smashout/internal/registry"
	"github.com/mkovalev/tui-smashout/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive mode picker",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - Scoreboard
  Q            - Quit

Examples:
  smashout menu
  smashout menu --fps 30
  smashout menu --db ./scores.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	menuCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runMenu(_ *cobra.Command, _ []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
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

	smashout.SetConfigPath(flagConfig)
	smashout.SetDifficultyPreset(flagDifficulty)

	// Menu loop
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		// Check if user quit
		if menuResult.Quit {
			break
		}

		// Check if user wants scoreboard
		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		gameID := menuResult.GameID
		if gameID == "" {
			break
		}

		// Campaign entry shows the mode/level/difficulty selector
		if gameID == "smashout" {
			selection, updatedCfg, selErr := tui.RunSmashoutModeSelector(cfg)
			if selErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
				continue
			}
			cfg = updatedCfg

			// User pressed back or quit
			if selection == nil {
				continue
			}

			// Apply selection
			if selection.Mode == tui.SmashoutModeEndless {
				gameID = "smashout_endless"
			}
			if selection.Level > 0 {
				smashout.SetStartLevel(selection.Level)
			}
			if selection.Difficulty != "" {
				smashout.SetDifficultyPreset(selection.Difficulty)
			}
		}

		// Create game instance
		game, err := registry.Create(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		speaker := setupAudio(game)

		// Update seed for each game
		cfg.Seed = time.Now().UnixNano()

		// Run the game
		if err := tui.Run(game, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		if speaker != nil {
			speaker.Cleanup()
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
