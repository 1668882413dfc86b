package sudoku

import "github.com/vovakirdan/gameflix/internal/pattern/grid"

// Snapshot is the externally visible state of a Sudoku game.
type Snapshot struct {
	Difficulty string
	Board      Digits
	Empty      int
	Selected   grid.Point
	Picked     bool
	Notes      bool
	Errors     int
	GameOver   bool
	GameWon    bool
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	d := g.digits()
	return Snapshot{
		Difficulty: g.preset.Name,
		Board:      d,
		Empty:      d.Empty(),
		Selected:   g.cursor.P,
		Picked:     g.picked,
		Notes:      g.notes,
		Errors:     g.errors,
		GameOver:   g.gameOver,
		GameWon:    g.gameWon,
	}
}
