package match3

import "github.com/vovakirdan/gameflix/internal/pattern/grid"

// Snapshot is the externally visible state of a Match-3 game.
type Snapshot struct {
	Board    [Size][Size]Tile
	Score    int
	TimeLeft int
	Phase    string
	Selected grid.Point
	Picked   bool
	Cursor   grid.Point
	GameOver bool
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Score:    g.score,
		TimeLeft: int(g.timeLeft + 0.999),
		Phase:    g.phase.String(),
		Selected: g.selected,
		Picked:   g.picked,
		Cursor:   g.cursor.P,
		GameOver: g.gameOver,
	}
	g.board.Each(func(x, y int, t Tile) { s.Board[y][x] = t })
	return s
}
