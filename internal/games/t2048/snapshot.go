package t2048

// Snapshot captures the game state for determinism checks.
type Snapshot struct {
	Score    int
	Best     int
	Board    [Size][Size]int
	GameOver bool
	GameWon  bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{Score: g.score, Best: g.best, GameOver: g.gameOver, GameWon: g.gameWon}
	g.board.Each(func(x, y, v int) { s.Board[y][x] = v })
	return s
}
