package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gameflix/internal/platform/tui"
	"github.com/vovakirdan/gameflix/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game directly.

Host keys:
  Esc        - Leave the game
  Ctrl+S     - Save a text screenshot to ~/.gameflix/screenshots
  Ctrl+Y     - Copy the current frame to the clipboard
  Ctrl+C     - Quit

Each game lists its own controls in 'gameflix list'.

Examples:
  gameflix play tetris
  gameflix play minesweeper --seed 7
  gameflix play sokoban --config ./my-levels`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the game catalog",
	Long: `Browse the catalog and play any game. Esc returns from a game to the
catalog, and a game left mid-play resumes where it was when reopened.
Tab shows saved data.`,
	Run: runMenu,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]
	cfg := loadConfig()

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'gameflix list' to see available games.")
		os.Exit(1)
	}

	runSession(tui.Options{Config: cfg, Game: gameID, Solo: true})
}

func runMenu(_ *cobra.Command, _ []string) {
	runSession(tui.Options{Config: loadConfig()})
}

func runSession(opts tui.Options) {
	logger, closeLog := newLogger(true)
	defer closeLog()
	store := openStore(logger)

	opts.Width, opts.Height = terminalSize()
	opts.Seed = flagSeed
	opts.Store = store
	opts.Logger = logger

	runErr := tui.Run(opts)
	if err := store.Close(); err != nil {
		logger.Error("closing saved data", "error", err)
	}
	if runErr != nil {
		closeLog()
		fail(runErr)
	}
}
