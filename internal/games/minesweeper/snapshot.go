package minesweeper

// Snapshot is the externally visible state of a Minesweeper game.
type Snapshot struct {
	Difficulty string
	Cols, Rows int
	Mines      int
	Remaining  int
	Revealed   int
	Seconds    int
	GameOver   bool
	GameWon    bool
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Difficulty: g.preset.Name,
		Cols:       g.field.Cols,
		Rows:       g.field.Rows,
		Mines:      g.field.Mines,
		Remaining:  g.field.Remaining(),
		Revealed:   g.field.cells.Count(func(c Cell) bool { return c.Revealed }),
		Seconds:    int(g.elapsed),
		GameOver:   g.gameOver,
		GameWon:    g.gameWon,
	}
}
