package snake

import "github.com/vovakirdan/gameflix/internal/pattern/grid"

// Snapshot captures the game state for determinism checks.
type Snapshot struct {
	Score    int
	Length   int
	Head     grid.Point
	Dir      grid.Point
	Food     grid.Point
	Interval float64
	GameOver bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Score:    g.score,
		Length:   len(g.snake),
		Head:     g.snake[0],
		Dir:      g.dir,
		Food:     g.food,
		Interval: g.interval,
		GameOver: g.gameOver,
	}
}
