// smashout is a terminal brick-breaker with campaign and endless modes.
//
// Usage:
//
//	smashout play [mode]     - Play directly (default: campaign)
//	smashout menu            - Start the interactive mode picker
//	smashout list            - List available modes
//	smashout serve           - Start SSH server for remote play
//	smashout scores <mode>   - Show high scores for a mode
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.smashout/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import to register the game modes
	_ "github.com/mkovalev/tui-smashout/internal/games/smashout"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "smashout",
	Short: "Smashout - Terminal brick-breaker",
	Long: `Smashout is a terminal brick-breaker where you steer a bat,
keep balls in play and clear brick layouts with fire chains, lasers
and other special bricks.

Available commands:
  list     - Show available modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  smashout play
  smashout play smashout_endless
  smashout menu
  smashout serve --ssh :2222
  smashout scores smashout`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.smashout/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
