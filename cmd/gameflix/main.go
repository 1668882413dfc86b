// gameflix is a terminal arcade of fifteen classic games running on a small
// fixed-timestep engine.
//
// Usage:
//
//	gameflix                 - Open the game catalog (same as "menu")
//	gameflix list            - List available games
//	gameflix play <game>     - Play a game
//	gameflix scores          - Show saved data such as best scores
//	gameflix serve           - Serve the catalog over SSH
//	gameflix sim [script]    - Run games headless and print frame digests
//
// Global flags:
//
//	--seed <value>  - RNG seed for reproducible games (0 = time based)
//	--db <path>     - Saved data database (default: ~/.gameflix/gameflix.db)
//	--config <dir>  - Directory holding gameflix.yaml and sokoban.yaml
//	--debug         - Log at debug level
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gameflix/internal/config"
	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/registry"
	"github.com/vovakirdan/gameflix/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/gameflix/internal/games/asteroids"
	_ "github.com/vovakirdan/gameflix/internal/games/breakout"
	_ "github.com/vovakirdan/gameflix/internal/games/fighting"
	_ "github.com/vovakirdan/gameflix/internal/games/invaders"
	_ "github.com/vovakirdan/gameflix/internal/games/match3"
	_ "github.com/vovakirdan/gameflix/internal/games/minesweeper"
	_ "github.com/vovakirdan/gameflix/internal/games/pacman"
	_ "github.com/vovakirdan/gameflix/internal/games/platformer"
	_ "github.com/vovakirdan/gameflix/internal/games/racing"
	_ "github.com/vovakirdan/gameflix/internal/games/shooter"
	_ "github.com/vovakirdan/gameflix/internal/games/snake"
	_ "github.com/vovakirdan/gameflix/internal/games/sokoban"
	_ "github.com/vovakirdan/gameflix/internal/games/sudoku"
	_ "github.com/vovakirdan/gameflix/internal/games/t2048"
	_ "github.com/vovakirdan/gameflix/internal/games/tetris"
)

var (
	// Global flags
	flagSeed   int64
	flagDBPath string
	flagConfig string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gameflix",
	Short: "gameflix - fifteen classic games in your terminal",
	Long: `gameflix is a terminal arcade: Tetris, Snake, Pac-Man, Breakout,
Asteroids, Space Invaders, 2048, Minesweeper, Sokoban, Match-3, Sudoku,
a platformer, a top-down shooter, a racer and a fighting game.

Examples:
  gameflix
  gameflix play tetris
  gameflix play 2048 --seed 42
  gameflix serve --ssh :2222
  gameflix sim --all --ticks 600`,
	Run: runMenu,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gameflix/gameflix.db", "Path to saved data database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Directory with custom gameflix.yaml / sokoban.yaml")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}

// fail reports err and exits.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// loadConfig reads the configuration and applies the catalog order.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail(err)
	}
	registry.SetCategoryOrder(cfg.Catalog.Categories)
	return cfg
}

// newLogger builds the logger. Interactive commands own the terminal, so
// they log to ~/.gameflix/gameflix.log; the returned closer releases it.
func newLogger(interactive bool) (*log.Logger, func()) {
	var w io.Writer = os.Stderr
	closer := func() {}
	if interactive {
		w = io.Discard
		if home, err := os.UserHomeDir(); err == nil {
			dir := filepath.Join(home, ".gameflix")
			if err := os.MkdirAll(dir, 0o755); err == nil {
				f, err := os.OpenFile(filepath.Join(dir, "gameflix.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
				if err == nil {
					w = f
					closer = func() { f.Close() }
				}
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "gameflix",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer
}

// openStore opens the saved data database, falling back to memory so games
// still run without it.
func openStore(logger *log.Logger) storage.KV {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open saved data, best scores will not persist", "error", err)
		return storage.NewMemory()
	}
	return store
}

// terminalSize returns the terminal size, or the default 80x24.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		return w, h
	}
	return core.DefaultScreenW, core.DefaultScreenH
}
