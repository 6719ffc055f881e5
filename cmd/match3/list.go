package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/match3/internal/config"
	"github.com/vovakirdan/match3/internal/games/gems"
	"github.com/vovakirdan/match3/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List games and board levels",
	Long:  `Shows the registered games and the board size of every level.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-18s  %s\n", maxIDLen, "ID", "Title", "Levels")
	fmt.Printf("  %-*s  %-18s  %s\n", maxIDLen, "--", "-----", "------")

	vp := config.DefaultMatch3Config().Board
	for _, g := range games {
		shape := gems.ShapeFor(g.ID)
		sizes := ""
		for i, lvl := range gems.Levels {
			rows, cols := lvl.Dimensions(shape, vp.ViewportW, vp.ViewportH)
			if i > 0 {
				sizes += ", "
			}
			sizes += fmt.Sprintf("%d:%dx%d", lvl.ID, rows, cols)
		}
		fmt.Printf("  %-*s  %-18s  %s\n", maxIDLen, g.ID, g.Title, sizes)
	}

	fmt.Println()
	fmt.Println("Run 'match3 play <id> --level <n>' to play a game.")
}
