package sudoku

import (
	"math/rand"
	"testing"
)

func TestGenerateUniquePuzzle(t *testing.T) {
	tests := []struct {
		removals int
		exact    bool
	}{
		{40, true},
		{50, true},
		{60, false},
	}
	for _, tt := range tests {
		for seed := range int64(3) {
			puzzle, solution := Generate(rand.New(rand.NewSource(seed)), tt.removals)
			if !solution.Solved() {
				t.Fatalf("seed %d: solution is not a valid grid:\n%v", seed, solution)
			}
			if n := Solutions(puzzle, 2); n != 1 {
				t.Fatalf("seed %d removals %d: puzzle has %d solutions", seed, tt.removals, n)
			}
			empty := puzzle.Empty()
			if empty > tt.removals || (tt.exact && empty != tt.removals) {
				t.Errorf("seed %d: %d empty cells for %d removals", seed, empty, tt.removals)
			}
			for r := range Size {
				for c := range Size {
					if v := puzzle[r][c]; v != 0 && v != solution[r][c] {
						t.Fatalf("clue at %d,%d disagrees with the solution", r, c)
					}
				}
			}
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	p1, s1 := Generate(rand.New(rand.NewSource(9)), 45)
	p2, s2 := Generate(rand.New(rand.NewSource(9)), 45)
	if p1 != p2 || s1 != s2 {
		t.Error("same seed should give the same puzzle")
	}
}

func TestSolutionsStopsAtLimit(t *testing.T) {
	if n := Solutions(Digits{}, 2); n != 2 {
		t.Errorf("empty grid: %d solutions counted, expected the limit 2", n)
	}
	_, solution := Generate(rand.New(rand.NewSource(1)), 0)
	if n := Solutions(solution, 2); n != 1 {
		t.Errorf("a full grid has exactly one completion, got %d", n)
	}
	broken := solution
	broken[0][0], broken[0][1] = broken[0][1], broken[0][0]
	if broken.Solved() {
		t.Error("swapping two cells in a row breaks the columns")
	}
}

func TestCandidatesAndFits(t *testing.T) {
	var d Digits
	d[0][0] = 5
	d[4][1] = 7
	d[1][8] = 3
	got := d.Candidates(1, 1)
	for n := uint8(1); n <= Size; n++ {
		want := n != 5 && n != 7 && n != 3
		if (got&(1<<n) != 0) != want {
			t.Errorf("digit %d candidate = %v, expected %v", n, !want, want)
		}
	}
	if d.Fits(2, 2, 5) {
		t.Error("5 repeats in the top-left box")
	}
	if !d.Fits(0, 0, 5) {
		t.Error("a cell does not conflict with itself")
	}
}
