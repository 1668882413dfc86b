package sudoku

import (
	"strconv"
	"testing"

	"github.com/vovakirdan/gameflix/internal/config"
	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/engine"
	"github.com/vovakirdan/gameflix/internal/games/gametest"
	"github.com/vovakirdan/gameflix/internal/pattern/grid"
)

func newGame(seed int64) (*Game, *engine.Input) {
	in := engine.NewInput()
	g := New(in, config.DefaultConfig().Sudoku, seed)
	g.Enter()
	return g, in
}

func empties(g *Game) []grid.Point {
	var out []grid.Point
	g.board.Each(func(x, y int, c Cell) {
		if !c.Given {
			out = append(out, grid.Point{X: x, Y: y})
		}
	})
	return out
}

func selectCell(g *Game, p grid.Point) {
	g.cursor.P = p
	g.picked = true
}

func digitKey(n uint8) string { return "Digit" + strconv.Itoa(int(n)) }

func (g *Game) answer(p grid.Point) uint8 { return g.solution[p.Y][p.X] }

func wrong(n uint8) uint8 { return n%Size + 1 }

func TestNewPuzzle(t *testing.T) {
	g, _ := newGame(1)
	s := g.Snapshot()
	if s.Difficulty != "medium" || s.Empty != 50 || s.Errors != 0 {
		t.Errorf("unexpected start %+v", s)
	}
	if len(empties(g)) != s.Empty {
		t.Error("every empty cell should be editable")
	}
	if !g.solution.Solved() {
		t.Error("stored solution is not a valid grid")
	}
}

func TestPlaceCorrectDigit(t *testing.T) {
	g, in := newGame(1)
	p := empties(g)[0]
	selectCell(g, p)
	gametest.Press(g, in, digitKey(g.answer(p)))

	if got := g.board.AtP(p).Value; got != g.answer(p) {
		t.Errorf("cell = %d, expected %d", got, g.answer(p))
	}
	if g.errors != 0 {
		t.Error("a correct digit costs nothing")
	}
}

func TestWrongDigitsEndGame(t *testing.T) {
	g, in := newGame(1)
	cells := empties(g)
	for i := range maxErrors {
		p := cells[i]
		selectCell(g, p)
		gametest.Press(g, in, digitKey(wrong(g.answer(p))))
		if g.board.AtP(p).Value != wrong(g.answer(p)) {
			t.Fatal("a wrong digit is still written")
		}
	}
	s := g.Snapshot()
	if s.Errors != maxErrors || !s.GameOver {
		t.Fatalf("expected game over after %d errors, got %+v", maxErrors, s)
	}

	gametest.Press(g, in, core.KeyEnter)
	if s := g.Snapshot(); s.GameOver || s.Errors != 0 {
		t.Error("Enter starts a new puzzle")
	}
}

func TestGivenCellsAreLocked(t *testing.T) {
	g, in := newGame(1)
	var given grid.Point
	g.board.Each(func(x, y int, c Cell) {
		if c.Given {
			given = grid.Point{X: x, Y: y}
		}
	})
	before := g.board.AtP(given)
	selectCell(g, given)
	gametest.Press(g, in, digitKey(wrong(before.Value)))
	gametest.Press(g, in, core.KeyBackspace)
	if g.board.AtP(given) != before || len(g.history) != 0 {
		t.Error("clues cannot be changed")
	}
}

func TestNoteMode(t *testing.T) {
	g, in := newGame(1)
	p := empties(g)[0]
	selectCell(g, p)

	gametest.Press(g, in, digitKey(wrong(g.answer(p))))
	gametest.Press(g, in, "KeyN")
	if !g.notes {
		t.Fatal("N toggles note mode")
	}
	gametest.Press(g, in, "Digit3")
	gametest.Press(g, in, "Digit7")
	cell := g.board.AtP(p)
	if cell.Value != 0 || cell.Notes != 1<<3|1<<7 {
		t.Errorf("cell = %+v, expected notes 3 and 7 and no value", cell)
	}
	gametest.Press(g, in, "Digit3")
	if g.board.AtP(p).Notes != 1<<7 {
		t.Error("a second press removes the mark")
	}
	if g.errors != 1 {
		t.Error("notes never count as errors")
	}

	gametest.Press(g, in, "KeyN")
	gametest.Press(g, in, digitKey(g.answer(p)))
	if cell := g.board.AtP(p); cell.Value != g.answer(p) || cell.Notes != 0 {
		t.Error("placing a digit clears the notes")
	}
}

func TestUndoAndErase(t *testing.T) {
	g, in := newGame(1)
	p := empties(g)[0]
	selectCell(g, p)

	gametest.Press(g, in, digitKey(wrong(g.answer(p))))
	gametest.Press(g, in, core.KeyDelete)
	if g.board.AtP(p).Value != 0 {
		t.Fatal("Delete clears the cell")
	}
	gametest.Press(g, in, "KeyU")
	if g.board.AtP(p).Value != wrong(g.answer(p)) || g.errors != 1 {
		t.Error("undo restores the erased digit")
	}
	gametest.Press(g, in, "KeyU")
	if g.board.AtP(p).Value != 0 || g.errors != 0 {
		t.Error("undo also gives back the error")
	}
	gametest.Press(g, in, "KeyU")
	if len(g.history) != 0 {
		t.Error("undo with no history is a no-op")
	}
}

func TestConflictFlashFades(t *testing.T) {
	g, in := newGame(1)
	p := empties(g)[0]
	selectCell(g, p)
	gametest.Press(g, in, digitKey(wrong(g.answer(p))))
	if len(g.flashes) != 1 {
		t.Fatal("a wrong digit flashes its cell")
	}
	gametest.Tick(g, in, 61)
	if len(g.flashes) != 0 {
		t.Error("the flash should be gone after a second")
	}
}

func TestSolvingWins(t *testing.T) {
	g, in := newGame(2)
	cells := empties(g)
	for i, p := range cells {
		selectCell(g, p)
		gametest.Press(g, in, digitKey(g.answer(p)))
		if g.gameWon != (i == len(cells)-1) {
			t.Fatalf("won=%v after %d of %d cells", g.gameWon, i+1, len(cells))
		}
	}
	if g.errors != 0 {
		t.Error("no errors expected")
	}
}

func TestMouseSelects(t *testing.T) {
	g, in := newGame(1)
	x := g.offsetX + 2.5*g.cellSize
	y := g.offsetY + 6.5*g.cellSize
	gametest.Click(g, in, x, y, core.MouseLeft)
	if !g.picked || g.cursor.P != (grid.Point{X: 2, Y: 6}) {
		t.Errorf("picked=%v cursor=%v", g.picked, g.cursor.P)
	}
	gametest.Click(g, in, 5, 5, core.MouseLeft)
	if g.picked {
		t.Error("clicking outside the grid deselects")
	}
}

func TestArrowsSelectThenMove(t *testing.T) {
	g, in := newGame(1)
	gametest.Press(g, in, core.KeyArrowRight)
	if !g.picked || g.cursor.P != (grid.Point{X: 4, Y: 4}) {
		t.Fatal("the first arrow selects the cursor cell")
	}
	gametest.Press(g, in, core.KeyArrowRight)
	if g.cursor.P != (grid.Point{X: 5, Y: 4}) {
		t.Errorf("cursor = %v", g.cursor.P)
	}
}

func TestCycleDifficulty(t *testing.T) {
	g, in := newGame(1)
	gametest.Press(g, in, "KeyD")
	s := g.Snapshot()
	if s.Difficulty != "hard" || s.Empty > 60 {
		t.Errorf("difficulty=%s empty=%d", s.Difficulty, s.Empty)
	}
	gametest.Press(g, in, "KeyD")
	if s := g.Snapshot(); s.Difficulty != "easy" || s.Empty != 40 {
		t.Errorf("difficulty=%s empty=%d", s.Difficulty, s.Empty)
	}
}

func TestEnterResetsFinishedGame(t *testing.T) {
	g, _ := newGame(1)
	p := empties(g)[0]
	selectCell(g, p)
	g.enter(g.answer(p))
	g.Exit()
	g.Enter()
	if g.board.AtP(p).Value == 0 {
		t.Error("Enter keeps a puzzle in progress")
	}
	g.gameWon = true
	g.Exit()
	g.Enter()
	if g.gameWon || len(g.history) != 0 {
		t.Error("Enter replaces a solved puzzle")
	}
}

func TestDeterminism(t *testing.T) {
	a, _ := newGame(5)
	b, _ := newGame(5)
	if a.Snapshot() != b.Snapshot() || a.solution != b.solution {
		t.Error("same seed should give the same puzzle")
	}
}

func TestRender(t *testing.T) {
	g, _ := newGame(1)
	selectCell(g, empties(g)[0])
	g.notes = true
	g.enter(4)
	if gametest.Render(g) == nil {
		t.Fatal("nil screen")
	}
}
