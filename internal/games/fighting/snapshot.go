package fighting

import "github.com/vovakirdan/gameflix/internal/core"

// Snapshot is the externally visible state of a round.
type Snapshot struct {
	Player       core.Vec
	Enemy        core.Vec
	PlayerHealth int
	EnemyHealth  int
	PlayerMove   string
	EnemyMove    string
	Mood         string
	Combo        int
	TimeLeft     int
	Winner       string
	GameOver     bool
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Player:       g.player.Pos,
		Enemy:        g.enemy.Pos,
		PlayerHealth: g.player.health,
		EnemyHealth:  g.enemy.health,
		PlayerMove:   g.player.move.String(),
		EnemyMove:    g.enemy.move.String(),
		Mood:         g.ai.machine.State().String(),
		Combo:        g.combo,
		TimeLeft:     int(g.timeLeft + 0.999),
		Winner:       g.winner,
		GameOver:     g.gameOver,
	}
}
