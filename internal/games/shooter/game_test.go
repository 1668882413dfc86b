package shooter

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/engine"
	"github.com/vovakirdan/gameflix/internal/games/gametest"
)

func newGame(seed int64) (*Game, *engine.Input) {
	in := engine.NewInput()
	g := New(in, seed)
	g.Enter()
	return g, in
}

// alone empties the arena and stops the wave from spawning more.
func alone(g *Game) {
	g.enemies = nil
	g.remaining = 0
}

func TestStartState(t *testing.T) {
	g, _ := newGame(1)
	s := g.Snapshot()
	if s.Wave != 1 || s.Remaining != 7 || s.Health != 100 || s.Player != core.V(400, 300) {
		t.Errorf("unexpected start %+v", s)
	}
}

func TestSpawnCap(t *testing.T) {
	g, in := newGame(1)
	gametest.Tick(g, in, 10)
	s := g.Snapshot()
	if s.Enemies != 3 || s.Remaining != 4 {
		t.Errorf("wave 1 holds 3 enemies at once, got %d with %d to come", s.Enemies, s.Remaining)
	}
	for _, e := range g.enemies {
		if e.Kind != Basic {
			t.Error("wave 1 only has basic enemies")
		}
	}
}

func TestMovementIsNormalizedAndClamped(t *testing.T) {
	g, in := newGame(1)
	alone(g)
	in.HandleKeyDown("KeyW")
	in.HandleKeyDown("KeyD")
	gametest.Tick(g, in, 6)
	in.HandleKeyUp("KeyW")
	in.HandleKeyUp("KeyD")
	if d := g.player.Pos.Dist(core.V(400, 300)); math.Abs(d-25) > 1e-6 {
		t.Errorf("diagonal moved %v, expected 25", d)
	}

	gametest.Hold(g, in, core.KeyArrowLeft, 300)
	if g.player.Pos.X != playerRadius {
		t.Errorf("x = %v, expected clamped at %d", g.player.Pos.X, playerRadius)
	}
}

func TestFireCooldown(t *testing.T) {
	g, in := newGame(1)
	alone(g)
	in.HandleMouseMove(700, 300)
	in.HandleKeyDown(core.KeySpace)
	gametest.Tick(g, in, 10)
	if len(g.bullets) != 1 {
		t.Fatalf("bullets = %d, expected 1 inside the cooldown", len(g.bullets))
	}
	b := g.bullets[0]
	if math.Abs(b.Vel.X-bulletSpeed) > 1e-6 || math.Abs(b.Vel.Y) > 1e-6 {
		t.Errorf("bullet velocity %v should point at the mouse", b.Vel)
	}
	gametest.Tick(g, in, 10)
	in.HandleKeyUp(core.KeySpace)
	if len(g.bullets) != 2 {
		t.Errorf("bullets = %d, expected a second shot after 0.2s", len(g.bullets))
	}
}

func TestBulletsExpire(t *testing.T) {
	g, in := newGame(1)
	alone(g)
	in.HandleMouseMove(700, 300)
	gametest.Press(g, in, core.KeySpace)
	gametest.Tick(g, in, 30)
	if len(g.bullets) != 0 {
		t.Error("bullets leaving the arena are removed")
	}
}

func TestKillEndsWave(t *testing.T) {
	g, in := newGame(1)
	alone(g)
	g.enemies = []Enemy{newEnemy(Basic, core.V(600, 300))}
	in.HandleMouseMove(700, 300)
	gametest.Press(g, in, core.KeySpace)
	gametest.Tick(g, in, 30)

	s := g.Snapshot()
	if s.Score != 10 || s.Enemies != 0 || !s.WaveDone {
		t.Fatalf("expected the kill to end the wave, got %+v", s)
	}
	gametest.Tick(g, in, 3*60+1)
	s = g.Snapshot()
	if s.Wave != 2 || s.WaveDone || s.Remaining+s.Enemies != 9 {
		t.Errorf("wave 2 should start with 9 enemies, got %+v", s)
	}
}

func TestEliteTakesThreeHits(t *testing.T) {
	g, _ := newGame(1)
	alone(g)
	g.enemies = []Enemy{newEnemy(Elite, core.V(100, 100)), newEnemy(Basic, core.V(700, 100))}
	g.hit(0, core.V(100, 100))
	g.hit(0, core.V(100, 100))
	if g.enemies[0].Health != 1 || g.score != 0 {
		t.Fatalf("elite health = %d after two hits", g.enemies[0].Health)
	}
	g.hit(0, core.V(100, 100))
	if len(g.enemies) != 1 || g.score != 25 || g.waveDone {
		t.Errorf("elite should die for 25 points, enemies=%d score=%d", len(g.enemies), g.score)
	}
}

func TestContactDamageAndKnockback(t *testing.T) {
	g, in := newGame(1)
	alone(g)
	g.enemies = []Enemy{newEnemy(Basic, core.V(450, 300))}
	gametest.Tick(g, in, 1)
	if g.health != 90 {
		t.Fatalf("health = %d, expected 90", g.health)
	}
	if d := g.enemies[0].Pos.Dist(g.player.Pos); d < 140 {
		t.Errorf("enemy should be knocked back, distance %v", d)
	}
	if label, _ := engine.Find[*engine.Text](g.healthLabel); label.Text != "Health: 90" || label.Color != core.ColorGreen {
		t.Errorf("health label = %q", label.Text)
	}
}

func TestDeathAndRestart(t *testing.T) {
	g, in := newGame(1)
	alone(g)
	g.health = 10
	g.enemies = []Enemy{newEnemy(Basic, core.V(450, 300))}
	gametest.Tick(g, in, 1)
	if !g.gameOver || g.health != 0 {
		t.Fatal("the last hit ends the game")
	}
	if label, _ := engine.Find[*engine.Text](g.healthLabel); label.Color != core.ColorRed {
		t.Error("low health shows in red")
	}
	gametest.Press(g, in, core.KeyEnter)
	if s := g.Snapshot(); s.GameOver || s.Health != 100 || s.Wave != 1 {
		t.Errorf("Enter restarts, got %+v", s)
	}
}

func TestPowerups(t *testing.T) {
	g, in := newGame(1)
	alone(g)
	g.health = 50
	g.powerups = []powerup{{pos: g.player.Pos, boost: BoostHealth, life: powerupLife}}
	gametest.Tick(g, in, 1)
	if g.health != 75 || len(g.powerups) != 0 {
		t.Errorf("health = %d powerups = %d", g.health, len(g.powerups))
	}
	g.apply(BoostHealth)
	g.apply(BoostHealth)
	if g.health != maxHealth {
		t.Error("health is capped")
	}

	g.apply(BoostSpeed)
	g.apply(BoostFireRate)
	if g.speed() != boostedSpeed || g.delay() != boostedDelay {
		t.Error("boosts apply immediately")
	}
	gametest.Tick(g, in, 601)
	if g.speed() != playerSpeed || g.delay() != fireDelay {
		t.Error("boosts wear off after ten seconds")
	}

	g.powerups = []powerup{{pos: core.V(50, 50), life: 0.5}}
	gametest.Tick(g, in, 31)
	if len(g.powerups) != 0 {
		t.Error("uncollected powerups despawn")
	}
}

func TestRollKind(t *testing.T) {
	tests := []struct {
		wave int
		roll float64
		want Kind
	}{
		{1, 0.99, Basic},
		{3, 0.75, Fast},
		{3, 0.99, Fast},
		{5, 0.75, Fast},
		{5, 0.85, Elite},
		{5, 0.5, Basic},
	}
	for _, tt := range tests {
		if got := rollKind(tt.wave, tt.roll); got != tt.want {
			t.Errorf("rollKind(%d, %v) = %v, expected %v", tt.wave, tt.roll, got, tt.want)
		}
	}
}

func TestSpawnPointsOutsideArena(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for range 200 {
		p := spawnPoint(rng, arenaW, arenaH)
		inside := p.X >= 0 && p.X <= arenaW && p.Y >= 0 && p.Y <= arenaH
		if inside {
			t.Fatalf("spawn point %v is inside the arena", p)
		}
	}
}

func TestEnterResetsFinishedGame(t *testing.T) {
	g, _ := newGame(1)
	g.score = 40
	g.Exit()
	g.Enter()
	if g.score != 40 {
		t.Error("Enter keeps a running game")
	}
	g.gameOver = true
	g.Exit()
	g.Enter()
	if g.gameOver || g.score != 0 {
		t.Error("Enter restarts after death")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g, in := newGame(8)
		in.HandleKeyDown(core.KeySpace)
		gametest.Hold(g, in, "KeyD", 300)
		return g.Snapshot()
	}
	if run() != run() {
		t.Error("same seed and input should give the same game")
	}
}

func TestRender(t *testing.T) {
	g, in := newGame(1)
	gametest.Tick(g, in, 30)
	if gametest.Render(g) == nil {
		t.Fatal("nil screen")
	}
}
