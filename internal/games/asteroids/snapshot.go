package asteroids

import "github.com/vovakirdan/gameflix/internal/core"

// Snapshot is the externally visible state of an Asteroids game.
type Snapshot struct {
	Score    int
	Lives    int
	Level    int
	Rocks    int
	Bullets  int
	Ship     core.Vec
	Paused   bool
	GameOver bool
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Score:    g.score,
		Lives:    g.lives,
		Level:    g.level,
		Rocks:    len(g.rocks),
		Bullets:  len(g.bullets),
		Ship:     g.ship.Pos,
		Paused:   g.paused,
		GameOver: g.gameOver,
	}
}
