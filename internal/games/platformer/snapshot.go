package platformer

import "github.com/vovakirdan/gameflix/internal/core"

// Snapshot is the externally visible state of a Platformer game.
type Snapshot struct {
	Score         int
	Player        core.Vec
	OnGround      bool
	Coins         int
	Enemies       int
	Camera        float64
	GameOver      bool
	LevelComplete bool
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Score:         g.score,
		Player:        g.player.Pos,
		OnGround:      g.onGround,
		Coins:         g.coinsLeft(),
		Enemies:       len(g.enemies),
		Camera:        g.camera,
		GameOver:      g.gameOver,
		LevelComplete: g.levelComplete,
	}
}
