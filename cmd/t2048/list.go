package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available boards",
	Long:  `Shows every registered board with its size and goal tile.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No boards available.")
		return
	}

	fmt.Println("Available boards:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %-5s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Size", "Goal")
	fmt.Printf("  %-*s  %-*s  %-5s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "----", "----")

	for _, g := range games {
		size, goal := boardShape(g.ID)
		fmt.Printf("  %-*s  %-*s  %-5s  %d\n", maxIDLen, g.ID, maxTitleLen, g.Title,
			fmt.Sprintf("%dx%d", size, size), goal)
	}

	fmt.Println()
	fmt.Println("Run 't2048 play <id>' to play a board.")
}

// boardShape resolves a board's size and goal tile, falling back to the
// loaded configuration for the classic board.
func boardShape(id string) (size, goal int) {
	size, goal = appConfig.Board.Size, appConfig.Board.WinTile
	if v, ok := t2048.VariantByID(id); ok {
		if v.Size > 0 {
			size = v.Size
		}
		if v.WinTile > 0 {
			goal = v.WinTile
		}
	}
	return size, goal
}
