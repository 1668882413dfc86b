package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gameflix/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show saved data such as best scores",
	Long: `Display every value games have saved. Today that is the 2048 best
score, stored under 2048_bestScore.

Examples:
  gameflix scores
  gameflix scores clear 2048_bestScore
  gameflix scores clear --all`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

var flagClearAll bool

var scoresClearCmd = &cobra.Command{
	Use:   "clear [key]",
	Short: "Delete a saved value, or all of them with --all",
	Args:  cobra.MaximumNArgs(1),
	Run:   runScoresClear,
}

func init() {
	scoresClearCmd.Flags().BoolVar(&flagClearAll, "all", false, "Delete every saved value")
	scoresCmd.AddCommand(scoresClearCmd)
}

func openStoreOrExit() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail(err)
	}
	return store
}

func runScores(_ *cobra.Command, _ []string) {
	store := openStoreOrExit()
	defer store.Close()

	entries, err := store.List()
	if err != nil {
		store.Close()
		fail(err)
	}

	fmt.Println("Saved data")
	fmt.Println()
	if len(entries) == 0 {
		fmt.Println("Nothing saved yet.")
		fmt.Println()
		fmt.Println("Play 'gameflix play 2048' to set a best score!")
		return
	}

	maxKeyLen := 3 // "Key" header
	for _, e := range entries {
		maxKeyLen = max(maxKeyLen, len(e.Key))
	}
	fmt.Printf("  %-*s  %-10s  %s\n", maxKeyLen, "Key", "Value", "Updated")
	fmt.Printf("  %-*s  %-10s  %s\n", maxKeyLen, "---", "-----", "-------")
	for _, e := range entries {
		fmt.Printf("  %-*s  %-10s  %s\n", maxKeyLen, e.Key, e.Value, e.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func runScoresClear(_ *cobra.Command, args []string) {
	if len(args) == 0 && !flagClearAll {
		fmt.Fprintln(os.Stderr, "Error: name a key or pass --all")
		os.Exit(1)
	}

	store := openStoreOrExit()
	defer store.Close()

	keys := args
	if flagClearAll {
		entries, err := store.List()
		if err != nil {
			store.Close()
			fail(err)
		}
		keys = keys[:0]
		for _, e := range entries {
			keys = append(keys, e.Key)
		}
	}

	for _, k := range keys {
		if err := store.Delete(k); err != nil {
			store.Close()
			fail(err)
		}
		fmt.Printf("Deleted %s\n", k)
	}
}
