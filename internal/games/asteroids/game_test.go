package asteroids

import (
	"math"
	"testing"

	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/engine"
	"github.com/vovakirdan/gameflix/internal/games/gametest"
)

// still places a rock that does not drift.
func still(g *Game, p core.Vec, size int) Rock {
	radius := float64(largeRadius)
	for range size {
		radius /= splitFactor
	}
	r := newRock(g.rng, p, radius, size)
	r.Vel = core.Vec{}
	r.Spin = 0
	return r
}

func TestLevelSpawnsAwayFromShip(t *testing.T) {
	g := New(engine.NewInput(), 1)
	snap := g.Snapshot()
	if snap.Level != 1 || snap.Rocks != 4 || snap.Lives != startLives {
		t.Fatalf("unexpected start: %+v", snap)
	}
	for i, r := range g.rocks {
		if r.Size != Large || r.Radius != largeRadius {
			t.Errorf("rock %d: size=%d radius=%v", i, r.Size, r.Radius)
		}
		if d := r.Pos.Dist(g.ship.Pos); d < safeSpawn {
			t.Errorf("rock %d spawned %.0f from the ship", i, d)
		}
		if math.Abs(r.Vel.Len()-rockSpeeds[Large]) > 1e-9 {
			t.Errorf("rock %d speed %v", i, r.Vel.Len())
		}
	}
}

func TestRocksSplitDownToSmall(t *testing.T) {
	g := New(engine.NewInput(), 3)
	g.rocks = []Rock{still(g, core.V(100, 100), Large)}

	g.destroy(0)
	if len(g.rocks) != 2 || g.score != 20 {
		t.Fatalf("large rock: %d fragments, score %d", len(g.rocks), g.score)
	}
	for _, r := range g.rocks {
		if r.Size != Medium || math.Abs(r.Radius-largeRadius/splitFactor) > 1e-9 {
			t.Errorf("fragment size=%d radius=%v", r.Size, r.Radius)
		}
		if math.Abs(r.Vel.Len()-rockSpeeds[Medium]) > 1e-9 {
			t.Errorf("fragment speed %v", r.Vel.Len())
		}
		if d := r.Pos.Dist(core.V(100, 100)); math.Abs(d-largeRadius/2) > 1e-9 {
			t.Errorf("fragment %.1f from the parent center", d)
		}
	}

	g.destroy(0)
	if len(g.rocks) != 3 || g.score != 70 {
		t.Fatalf("medium rock: %d rocks, score %d", len(g.rocks), g.score)
	}
	small := -1
	for i, r := range g.rocks {
		if r.Size == Small {
			small = i
		}
	}
	g.destroy(small)
	if len(g.rocks) != 2 || g.score != 170 {
		t.Errorf("small rock should vanish: %d rocks, score %d", len(g.rocks), g.score)
	}
}

func TestBulletBreaksRock(t *testing.T) {
	in := engine.NewInput()
	g := New(in, 1)
	g.rocks = []Rock{still(g, core.V(areaW/2, 150), Large)}

	gametest.Press(g, in, core.KeySpace)
	if len(g.bullets) != 1 {
		t.Fatalf("expected one bullet, got %d", len(g.bullets))
	}
	gametest.Tick(g, in, 18)

	snap := g.Snapshot()
	if snap.Score != 20 || snap.Rocks != 2 || snap.Bullets != 0 {
		t.Errorf("bullet should split the rock: %+v", snap)
	}
}

func TestFireCooldown(t *testing.T) {
	in := engine.NewInput()
	g := New(in, 1)
	g.rocks = nil

	gametest.Press(g, in, core.KeySpace)
	gametest.Press(g, in, core.KeySpace)
	if len(g.bullets) != 1 {
		t.Fatalf("second shot inside the cooldown fired: %d bullets", len(g.bullets))
	}
	gametest.Tick(g, in, 10)
	gametest.Press(g, in, core.KeySpace)
	if len(g.bullets) != 2 {
		t.Errorf("expected a second bullet after the cooldown, got %d", len(g.bullets))
	}

	gametest.Tick(g, in, 100)
	if len(g.bullets) != 0 {
		t.Errorf("bullets should expire, %d left", len(g.bullets))
	}
}

func TestRockCostsLifeThenShield(t *testing.T) {
	in := engine.NewInput()
	g := New(in, 1)
	g.shield = 0
	g.ship.Pos = core.V(200, 200)
	g.rocks = []Rock{still(g, core.V(areaW/2, areaH/2), Large)}
	g.rocks = append(g.rocks, still(g, core.V(200, 200), Small))

	gametest.Tick(g, in, 1)
	snap := g.Snapshot()
	if snap.Lives != startLives-1 || snap.Ship != core.V(areaW/2, areaH/2) {
		t.Fatalf("expected a lost life and a recentered ship: %+v", snap)
	}
	// the ship respawned inside a rock but is shielded
	gametest.Tick(g, in, 60)
	if g.lives != startLives-1 {
		t.Errorf("shielded ship lost a life: %d", g.lives)
	}

	g.lives = 1
	g.shield = 0
	gametest.Tick(g, in, 1)
	if !g.gameOver {
		t.Fatal("last life should end the game")
	}
	gametest.Press(g, in, core.KeySpace)
	if g.gameOver || g.lives != startLives || g.level != 1 {
		t.Error("Space should restart")
	}
}

func TestShipSpeedCappedAndWrapped(t *testing.T) {
	in := engine.NewInput()
	g := New(in, 1)
	g.rocks = nil

	in.HandleKeyDown(core.KeyArrowUp)
	for i := range 600 {
		gametest.Tick(g, in, 1)
		if v := g.ship.Vel.Len(); v > maxSpeed+1e-9 {
			t.Fatalf("tick %d: speed %v", i, v)
		}
		if p := g.ship.Pos; p.X < 0 || p.X > areaW || p.Y < 0 || p.Y > areaH {
			t.Fatalf("tick %d: ship left the field at %v", i, p)
		}
	}
	in.HandleKeyUp(core.KeyArrowUp)

	gametest.Tick(g, in, 600)
	if v := g.ship.Vel.Len(); v > 1 {
		t.Errorf("friction should stop the ship, speed %v", v)
	}
}

func TestPauseFreezes(t *testing.T) {
	in := engine.NewInput()
	g := New(in, 1)

	gametest.Press(g, in, "KeyP")
	snap := g.Snapshot()
	rock := g.rocks[0].Pos
	if !snap.Paused {
		t.Fatal("P should pause")
	}
	gametest.Tick(g, in, 60)
	if g.Snapshot() != snap || g.rocks[0].Pos != rock {
		t.Error("paused game changed")
	}

	gametest.Press(g, in, "KeyP")
	gametest.Tick(g, in, 10)
	if g.paused || g.rocks[0].Pos == rock {
		t.Error("game should resume after a second P")
	}
}

func TestClearingFieldStartsNextLevel(t *testing.T) {
	g := New(engine.NewInput(), 1)
	g.rocks = []Rock{still(g, core.V(100, 100), Small)}
	g.fire()

	g.destroy(0)
	snap := g.Snapshot()
	if snap.Level != 2 || snap.Rocks != 5 || snap.Bullets != 0 || snap.Score != 100 {
		t.Errorf("unexpected level 2 start: %+v", snap)
	}
}

func TestEnterResetsOnlyAfterGameOver(t *testing.T) {
	in := engine.NewInput()
	g := New(in, 1)
	g.score = 120

	g.Exit()
	g.Enter()
	if g.score != 120 {
		t.Error("re-entering a running game should keep it")
	}

	g.gameOver = true
	g.Exit()
	g.Enter()
	if g.gameOver || g.score != 0 {
		t.Error("re-entering after game over should start over")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		in := engine.NewInput()
		g := New(in, 9)
		gametest.Hold(g, in, core.KeyArrowLeft, 20)
		gametest.Hold(g, in, core.KeyArrowUp, 40)
		for range 10 {
			gametest.Press(g, in, core.KeySpace)
			gametest.Tick(g, in, 15)
		}
		gametest.Tick(g, in, 300)
		return g.Snapshot()
	}
	if a, b := run(), run(); a != b {
		t.Errorf("same seed and input diverged:\n%+v\n%+v", a, b)
	}
}
