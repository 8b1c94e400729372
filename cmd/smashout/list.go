package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkovalev/tui-smashout/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Long:  `Shows a list of all registered game modes.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	// Print modes
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'smashout play <id>' to play a mode.")
}
