package minesweeper

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/gameflix/internal/pattern/grid"
)

func revealed(f *Field) int {
	return f.cells.Count(func(c Cell) bool { return c.Revealed })
}

func TestFirstRevealIsSafe(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		f := NewField(9, 9, 10)
		first := grid.Point{X: rng.Intn(9), Y: rng.Intn(9)}

		f.Place(rng, first)
		if n := f.cells.Count(func(c Cell) bool { return c.Mine }); n != 10 {
			t.Fatalf("seed %d: %d mines laid", seed, n)
		}
		for _, n := range append(f.cells.Neighbors8(first), first) {
			if f.At(n).Mine {
				t.Fatalf("seed %d: mine at %v next to the first click %v", seed, n, first)
			}
		}
		if f.Reveal(first) {
			t.Fatalf("seed %d: first reveal exploded", seed)
		}
		if f.At(first).Adjacent != 0 || revealed(f) < 4 {
			t.Errorf("seed %d: first reveal should open an area, opened %d", seed, revealed(f))
		}
	}
}

func TestPlaceOnCrowdedBoard(t *testing.T) {
	f := NewField(3, 3, 8)
	f.Place(rand.New(rand.NewSource(1)), grid.Point{X: 1, Y: 1})
	if f.At(grid.Point{X: 1, Y: 1}).Mine || f.Mines != 8 {
		t.Errorf("crowded board should still keep the first cell clear, mines=%d", f.Mines)
	}
}

func TestFloodOpensRegion(t *testing.T) {
	f := NewField(5, 5, 1)
	f.lay([]grid.Point{{X: 4, Y: 4}})

	if f.Reveal(grid.Point{}) {
		t.Fatal("no mine under (0,0)")
	}
	if n := revealed(f); n != 24 {
		t.Errorf("revealed %d cells, expected 24", n)
	}
	if !f.Cleared() {
		t.Error("only the mine is left covered")
	}
}

func TestFloodStopsAtNumbersAndFlags(t *testing.T) {
	f := NewField(5, 5, 5)
	var wall []grid.Point
	for y := range 5 {
		wall = append(wall, grid.Point{X: 2, Y: y})
	}
	f.lay(wall)
	f.ToggleFlag(grid.Point{X: 0, Y: 4})

	f.Reveal(grid.Point{})
	if n := revealed(f); n != 9 {
		t.Errorf("revealed %d cells, expected the two left columns minus the flag", n)
	}
	if f.At(grid.Point{X: 0, Y: 4}).Revealed {
		t.Error("flood opened a flagged cell")
	}
	if f.At(grid.Point{X: 3, Y: 0}).Revealed {
		t.Error("flood crossed the numbers")
	}
}

func TestFlagToggle(t *testing.T) {
	f := NewField(9, 9, 10)
	p := grid.Point{X: 2, Y: 3}
	if !f.ToggleFlag(p) || f.Remaining() != 9 {
		t.Fatalf("flag failed, remaining %d", f.Remaining())
	}
	f.lay([]grid.Point{{X: 8, Y: 8}})
	if f.Reveal(p); f.At(p).Revealed {
		t.Error("flagged cell was revealed")
	}
	f.ToggleFlag(p)
	if f.Remaining() != f.Mines {
		t.Error("unflagging should restore the counter")
	}
	f.Reveal(p)
	if f.ToggleFlag(grid.Point{X: 0, Y: 0}) {
		t.Error("revealed cells cannot be flagged")
	}
}

func TestChord(t *testing.T) {
	f := NewField(3, 3, 1)
	f.lay([]grid.Point{{X: 0, Y: 0}})
	center := grid.Point{X: 1, Y: 1}

	f.Reveal(center)
	if revealed(f) != 1 || f.At(center).Adjacent != 1 {
		t.Fatalf("a number should open alone, got %d", revealed(f))
	}
	if f.Chord(center) || revealed(f) != 1 {
		t.Fatal("chord without matching flags must do nothing")
	}
	f.ToggleFlag(grid.Point{X: 0, Y: 0})
	if f.Chord(center) {
		t.Fatal("chord with the right flag exploded")
	}
	if !f.Cleared() {
		t.Errorf("chord should open the rest, revealed %d", revealed(f))
	}

	wrong := NewField(3, 3, 1)
	wrong.lay([]grid.Point{{X: 0, Y: 0}})
	wrong.Reveal(center)
	wrong.ToggleFlag(grid.Point{X: 2, Y: 2})
	if !wrong.Chord(center) {
		t.Error("chord with a misplaced flag should hit the mine")
	}
}

func TestFlagAllAndShowMines(t *testing.T) {
	f := NewField(3, 3, 1)
	f.lay([]grid.Point{{X: 2, Y: 0}})
	f.Reveal(grid.Point{X: 0, Y: 2})
	f.FlagAll()
	if f.Remaining() != 0 || !f.At(grid.Point{X: 2, Y: 0}).Flagged {
		t.Errorf("FlagAll left %d", f.Remaining())
	}

	lost := NewField(3, 3, 1)
	lost.lay([]grid.Point{{X: 2, Y: 0}})
	lost.ShowMines()
	if c := lost.At(grid.Point{X: 2, Y: 0}); !c.Revealed {
		t.Error("ShowMines should uncover mines")
	}
}
