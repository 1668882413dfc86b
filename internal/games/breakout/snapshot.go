package breakout

import "github.com/vovakirdan/gameflix/internal/core"

// Snapshot captures the game state for determinism checks.
type Snapshot struct {
	Score    int
	Lives    int
	Bricks   int
	Paddle   float64
	Ball     core.Vec
	BallVel  core.Vec
	Started  bool
	GameOver bool
	GameWon  bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Score:    g.score,
		Lives:    g.lives,
		Bricks:   g.remaining(),
		Paddle:   g.paddleX,
		Ball:     g.ball.Pos,
		BallVel:  g.ball.Vel,
		Started:  g.started,
		GameOver: g.gameOver,
		GameWon:  g.gameWon,
	}
}
