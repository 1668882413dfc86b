package shooter

import "github.com/vovakirdan/gameflix/internal/core"

// Snapshot is the externally visible state of a Shooter game.
type Snapshot struct {
	Score     int
	Health    int
	Wave      int
	Remaining int
	Enemies   int
	Bullets   int
	Powerups  int
	Player    core.Vec
	WaveDone  bool
	GameOver  bool
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Score:     g.score,
		Health:    g.health,
		Wave:      g.wave,
		Remaining: g.remaining,
		Enemies:   len(g.enemies),
		Bullets:   len(g.bullets),
		Powerups:  len(g.powerups),
		Player:    g.player.Pos,
		WaveDone:  g.waveDone,
		GameOver:  g.gameOver,
	}
}
