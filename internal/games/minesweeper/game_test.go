package minesweeper

import (
	"testing"

	"github.com/vovakirdan/gameflix/internal/config"
	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/engine"
	"github.com/vovakirdan/gameflix/internal/games/gametest"
	"github.com/vovakirdan/gameflix/internal/pattern/grid"
)

func newGame(seed int64) (*Game, *engine.Input) {
	in := engine.NewInput()
	return New(in, config.DefaultConfig().Minesweeper, seed), in
}

// center returns the canvas position of the middle of cell p.
func center(g *Game, p grid.Point) (float64, float64) {
	return g.offsetX + (float64(p.X)+0.5)*g.cellSize, g.offsetY + (float64(p.Y)+0.5)*g.cellSize
}

func TestStartsAtDefaultDifficulty(t *testing.T) {
	g, _ := newGame(1)
	snap := g.Snapshot()
	if snap.Difficulty != "beginner" || snap.Cols != 9 || snap.Rows != 9 || snap.Mines != 10 {
		t.Errorf("unexpected start: %+v", snap)
	}
	if g.field.Placed() {
		t.Error("mines must wait for the first click")
	}
}

func TestClickRevealsAndStartsClock(t *testing.T) {
	g, in := newGame(2)
	x, y := center(g, grid.Point{X: 4, Y: 4})

	gametest.Click(g, in, x, y, core.MouseLeft)
	snap := g.Snapshot()
	if snap.Revealed < 4 || snap.GameOver {
		t.Fatalf("first click should open a safe area: %+v", snap)
	}
	if g.cursor.P != (grid.Point{X: 4, Y: 4}) {
		t.Errorf("click should move the cursor, got %v", g.cursor.P)
	}

	gametest.Tick(g, in, 60)
	if label, _ := engine.Find[*engine.Text](g.timeLabel); label.Text != "Time: 1" {
		t.Errorf("time label = %q", label.Text)
	}
}

func TestRightClickFlags(t *testing.T) {
	g, in := newGame(1)
	x, y := center(g, grid.Point{X: 0, Y: 0})

	gametest.Click(g, in, x, y, core.MouseRight)
	if !g.field.At(grid.Point{}).Flagged || g.Snapshot().Remaining != 9 {
		t.Error("right click should flag")
	}
	if label, _ := engine.Find[*engine.Text](g.minesLabel); label.Text != "Mines: 9" {
		t.Errorf("mines label = %q", label.Text)
	}
	gametest.Click(g, in, x, y, core.MouseLeft)
	if g.field.Placed() {
		t.Error("clicking a flag must not open it")
	}
}

func TestKeyboardCursor(t *testing.T) {
	g, in := newGame(1)

	gametest.Press(g, in, core.KeyArrowLeft)
	gametest.Press(g, in, "KeyF")
	if !g.field.At(grid.Point{X: 3, Y: 4}).Flagged {
		t.Fatalf("F should flag under the cursor at %v", g.cursor.P)
	}
	gametest.Press(g, in, core.KeySpace)
	if g.field.Placed() {
		t.Fatal("Space on a flag must do nothing")
	}

	gametest.Press(g, in, core.KeyArrowRight)
	gametest.Press(g, in, core.KeySpace)
	if !g.field.At(grid.Point{X: 4, Y: 4}).Revealed {
		t.Error("Space should reveal under the cursor")
	}

	for range 20 {
		gametest.Press(g, in, core.KeyArrowUp)
	}
	if g.cursor.P.Y != 0 {
		t.Errorf("cursor left the board: %v", g.cursor.P)
	}
}

func TestMineEndsGame(t *testing.T) {
	g, in := newGame(1)
	g.field.lay([]grid.Point{{X: 0, Y: 0}})

	x, y := center(g, grid.Point{X: 0, Y: 0})
	gametest.Click(g, in, x, y, core.MouseLeft)
	if !g.Snapshot().GameOver {
		t.Fatal("clicking a mine should end the game")
	}

	clock := g.elapsed
	gametest.Tick(g, in, 30)
	if g.elapsed != clock {
		t.Error("clock should stop after the game ends")
	}

	gametest.Press(g, in, core.KeySpace)
	if g.gameOver || g.field.Placed() {
		t.Error("Space should start a new field")
	}
}

func TestClearingFieldWins(t *testing.T) {
	g, in := newGame(1)
	g.field.lay([]grid.Point{{X: 0, Y: 0}})

	x, y := center(g, grid.Point{X: 8, Y: 8})
	gametest.Click(g, in, x, y, core.MouseLeft)
	snap := g.Snapshot()
	if !snap.GameWon || snap.Remaining != 0 {
		t.Errorf("opening every safe cell should win: %+v", snap)
	}
	if !g.field.At(grid.Point{}).Flagged {
		t.Error("a win flags the remaining mines")
	}
}

func TestDifficultyCycles(t *testing.T) {
	g, in := newGame(1)
	want := []struct {
		name              string
		cols, rows, mines int
	}{
		{"intermediate", 16, 16, 40},
		{"expert", 30, 16, 99},
		{"beginner", 9, 9, 10},
	}
	for _, w := range want {
		gametest.Press(g, in, "KeyD")
		snap := g.Snapshot()
		if snap.Difficulty != w.name || snap.Cols != w.cols || snap.Rows != w.rows || snap.Mines != w.mines {
			t.Errorf("after D: %+v, expected %s", snap, w.name)
		}
	}
	if label, _ := engine.Find[*engine.Text](g.levelLabel); label.Text != "Difficulty: Beginner" {
		t.Errorf("difficulty label = %q", label.Text)
	}
}

func TestRestartKeys(t *testing.T) {
	g, in := newGame(3)
	gametest.Press(g, in, core.KeySpace)
	if !g.field.Placed() {
		t.Fatal("Space should open the first cell")
	}
	gametest.Press(g, in, "KeyR")
	if g.field.Placed() || g.Snapshot().Revealed != 0 {
		t.Error("R should start a new field")
	}

	gametest.Press(g, in, core.KeySpace)
	g.Exit()
	g.Enter()
	if !g.field.Placed() {
		t.Error("re-entering a running game should keep it")
	}
	g.gameWon = true
	g.Exit()
	g.Enter()
	if g.gameWon || g.field.Placed() {
		t.Error("re-entering a finished game should start over")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g, in := newGame(11)
		gametest.Press(g, in, core.KeySpace)
		for _, p := range []grid.Point{{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 0, Y: 8}, {X: 8, Y: 8}} {
			x, y := center(g, p)
			gametest.Click(g, in, x, y, core.MouseLeft)
		}
		return g.Snapshot()
	}
	if a, b := run(), run(); a != b {
		t.Errorf("same seed and input diverged:\n%+v\n%+v", a, b)
	}
}
