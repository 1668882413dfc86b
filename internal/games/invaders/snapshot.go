package invaders

// Snapshot is the externally visible state of a Space Invaders game.
type Snapshot struct {
	Score    int
	Lives    int
	Level    int
	Alive    int
	PlayerX  float64
	FleetX   float64 // left edge of the first living invader
	FleetY   float64
	Missiles int
	Bombs    int
	GameOver bool
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Score:    g.score,
		Lives:    g.lives,
		Level:    g.level,
		Alive:    g.formation.Alive(),
		PlayerX:  g.playerX,
		Missiles: len(g.missiles),
		Bombs:    len(g.bombs),
		GameOver: g.gameOver,
	}
	for _, e := range g.formation.Enemies {
		if e.Alive {
			s.FleetX, s.FleetY = e.Box.X, e.Box.Y
			break
		}
	}
	return s
}
