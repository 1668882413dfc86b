package sokoban

import (
	"slices"

	"github.com/vovakirdan/gameflix/internal/pattern/grid"
)

// Snapshot is the externally visible state of a Sokoban game.
type Snapshot struct {
	Level   int
	Title   string
	Player  grid.Point
	Boxes   []grid.Point
	Moves   int
	Pushes  int
	GameWon bool
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Level:   g.current,
		Title:   g.puzzle.Level.Title,
		Player:  g.puzzle.Player,
		Boxes:   slices.Clone(g.puzzle.Boxes),
		Moves:   g.puzzle.Moves,
		Pushes:  g.puzzle.Pushes,
		GameWon: g.gameWon,
	}
}
