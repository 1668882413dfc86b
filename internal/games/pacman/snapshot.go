package pacman

import "github.com/vovakirdan/gameflix/internal/pattern/grid"

// Snapshot is the externally visible state of a Pac-Man game.
type Snapshot struct {
	Score    int
	Lives    int
	Dots     int
	Pacman   grid.Point
	Ghosts   [4]grid.Point
	Power    bool
	GameOver bool
	GameWon  bool
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Score:    g.score,
		Lives:    g.lives,
		Dots:     g.maze.Dots(),
		Pacman:   g.pac.tile,
		Power:    g.powerMode(),
		GameOver: g.gameOver,
		GameWon:  g.gameWon,
	}
	for i, gh := range g.ghosts {
		s.Ghosts[i] = grid.Point{X: int(gh.at.X) / TileSize, Y: int(gh.at.Y) / TileSize}
	}
	return s
}
