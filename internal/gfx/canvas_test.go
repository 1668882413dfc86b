package gfx

import (
	"math"
	"testing"

	"github.com/vovakirdan/gameflix/internal/core"
)

func newTestCanvas() *Canvas {
	return New(core.NewScreen(80, 24), DefaultWidth, DefaultHeight)
}

func countPainted(s *core.Screen, r rune) int {
	n := 0
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) == r {
				n++
			}
		}
	}
	return n
}

func TestFillRectCoversCells(t *testing.T) {
	c := newTestCanvas()
	c.FillRect(0, 0, DefaultWidth, DefaultHeight, Glyph('#', core.ColorRed))

	if got := countPainted(c.Screen(), '#'); got != 80*24 {
		t.Errorf("full-surface FillRect painted %d cells, expected %d", got, 80*24)
	}

	c.Clear()
	// 100x100 logical units = 10 columns x 4 rows
	c.FillRect(200, 200, 100, 100, Solid(core.ColorBlue))
	if got := countPainted(c.Screen(), Block); got != 40 {
		t.Errorf("FillRect painted %d cells, expected 40", got)
	}
	if c.Screen().GetCell(20, 8).Color != core.ColorBlue {
		t.Error("FillRect should paint with the given color")
	}
}

func TestTinyShapesStillVisible(t *testing.T) {
	c := newTestCanvas()
	c.FillRect(102, 102, 2, 2, Glyph('*', core.ColorWhite))
	c.FillCircle(405, 305, 1, Glyph('o', core.ColorWhite))

	if c.Screen().Get(10, 4) != '*' {
		t.Errorf("tiny rect should paint the cell under it, row 4 = %q", c.Screen().Row(4))
	}
	if c.Screen().Get(40, 12) != 'o' {
		t.Errorf("tiny circle should paint the cell under it, row 12 = %q", c.Screen().Row(12))
	}
}

func TestSaveRestoreTransform(t *testing.T) {
	c := newTestCanvas()

	c.Save()
	c.Translate(100, 50)
	c.Rotate(math.Pi / 2)
	c.Scale(2, 2)
	if c.Depth() != 1 {
		t.Fatalf("Depth() = %d, expected 1", c.Depth())
	}
	c.Restore()

	if c.Depth() != 0 || c.Transform() != Identity {
		t.Errorf("Restore() should return to identity, got %+v depth %d", c.Transform(), c.Depth())
	}

	// Unbalanced restore is tolerated
	c.Restore()
	if c.Transform() != Identity {
		t.Error("unbalanced Restore() should leave identity")
	}
}

func TestTranslateMovesDrawing(t *testing.T) {
	c := newTestCanvas()
	c.Save()
	c.Translate(400, 300)
	c.FillRect(-5, -5, 10, 10, Glyph('x', core.ColorWhite))
	c.Restore()

	if c.Screen().Get(40, 12) != 'x' {
		t.Errorf("translated rect should land at screen center, row 12 = %q", c.Screen().Row(12))
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Translation(10, -4).Mul(Rotation(0.7)).Mul(Scaling(2, 3))
	p := core.V(12.5, -3)
	back := m.Invert().Apply(m.Apply(p))
	if !back.Eq(p, 1e-9) {
		t.Errorf("Invert(Apply(p)) = %v, expected %v", back, p)
	}
}

func TestToWorld(t *testing.T) {
	c := newTestCanvas()
	got := c.ToWorld(0, 0)
	if !got.Eq(core.V(5, 12.5), 1e-9) {
		t.Errorf("ToWorld(0, 0) = %v, expected (5, 12.5)", got)
	}

	c.Resize(160, 48)
	got = c.ToWorld(159, 47)
	if !got.Eq(core.V(797.5, 593.75), 1e-9) {
		t.Errorf("ToWorld after resize = %v, expected (797.5, 593.75)", got)
	}
}

func TestTextAlignment(t *testing.T) {
	c := newTestCanvas()
	c.Text(400, 10, "ABCD", core.ColorWhite, AlignCenter)
	c.Text(0, 100, "left", core.ColorWhite, AlignLeft)
	c.Text(800, 200, "right", core.ColorWhite, AlignRight)

	if got := c.Screen().Row(0)[38:42]; got != "ABCD" {
		t.Errorf("centered text = %q", got)
	}
	if got := c.Screen().Row(4)[0:4]; got != "left" {
		t.Errorf("left text = %q", got)
	}
	if got := c.Screen().Row(8)[75:80]; got != "right" {
		t.Errorf("right text = %q", got)
	}
}

func TestLineEndpoints(t *testing.T) {
	c := newTestCanvas()
	c.Line(5, 12, 795, 12, Glyph('-', core.ColorGray))
	if got := countPainted(c.Screen(), '-'); got != 80 {
		t.Errorf("horizontal line painted %d cells, expected 80", got)
	}
}
