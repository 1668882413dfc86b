package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gameflix/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every registered game by category, with its controls.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	loadConfig()
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	category := ""
	for _, g := range games {
		if g.Category != category {
			category = g.Category
			fmt.Printf("\n%s\n\n", category)
			fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Controls")
			fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "--------")
		}
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, g.Controls)
	}

	fmt.Println()
	fmt.Println("Run 'gameflix play <id>' to play a game.")
}
