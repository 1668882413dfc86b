package engine

import (
	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/gfx"
)

// Capability tags what a component contributes. An entity holds at most one
// component per capability.
type Capability int

const (
	CapText Capability = iota + 1
	CapShape
	CapSprite
	CapAnimation
	CapCustom
)

// String returns the capability name used in log lines.
func (c Capability) String() string {
	switch c {
	case CapText:
		return "text"
	case CapShape:
		return "shape"
	case CapSprite:
		return "sprite"
	case CapAnimation:
		return "animation"
	case CapCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Component contributes update and render behaviour to an Entity.
// Implementations embed ComponentBase.
type Component interface {
	Updatable
	Renderable
	Capability() Capability
	Owner() *Entity
	IsActive() bool
	IsVisible() bool
	attach(e *Entity)
}

// ComponentBase carries the owner back-reference and the active/visible
// flags. Its Update and Render do nothing.
type ComponentBase struct {
	owner  *Entity
	hidden bool
	paused bool
}

func (b *ComponentBase) attach(e *Entity) { b.owner = e }

// Owner returns the entity the component is attached to, or nil.
func (b *ComponentBase) Owner() *Entity { return b.owner }

// IsActive reports whether Update runs.
func (b *ComponentBase) IsActive() bool { return !b.paused }

// IsVisible reports whether Render runs.
func (b *ComponentBase) IsVisible() bool { return !b.hidden }

// SetActive toggles updates.
func (b *ComponentBase) SetActive(v bool) { b.paused = !v }

// SetVisible toggles rendering.
func (b *ComponentBase) SetVisible(v bool) { b.hidden = !v }

func (b *ComponentBase) Update(dt float64)    {}
func (b *ComponentBase) Render(c *gfx.Canvas) {}

// Text draws a line of text at the owner's origin plus an offset.
type Text struct {
	ComponentBase
	Text    string
	Color   core.Color
	Align   gfx.Align
	OffsetX float64
	OffsetY float64
}

// NewText creates a centered text component.
func NewText(text string, color core.Color) *Text {
	return &Text{Text: text, Color: color, Align: gfx.AlignCenter}
}

func (t *Text) Capability() Capability { return CapText }

func (t *Text) Render(c *gfx.Canvas) {
	c.Text(t.OffsetX, t.OffsetY, t.Text, t.Color, t.Align)
}

// ShapeKind selects the primitive a Shape draws.
type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	ShapeCircle
)

// Shape fills a rectangle centered on the owner, or a circle around it.
type Shape struct {
	ComponentBase
	Kind   ShapeKind
	Width  float64
	Height float64
	Radius float64
	Paint  gfx.Paint
}

func (s *Shape) Capability() Capability { return CapShape }

func (s *Shape) Render(c *gfx.Canvas) {
	switch s.Kind {
	case ShapeCircle:
		c.FillCircle(0, 0, s.Radius, s.Paint)
	default:
		c.FillRect(-s.Width/2, -s.Height/2, s.Width, s.Height, s.Paint)
	}
}

// Sprite draws rune art: each frame is a block of text rows centered on the
// owner.
type Sprite struct {
	ComponentBase
	Frames [][]string
	Frame  int
	Color  core.Color
	// RowHeight is the logical height of one art row.
	RowHeight float64
}

// NewSprite creates a sprite from one or more frames.
func NewSprite(color core.Color, frames ...[]string) *Sprite {
	return &Sprite{Frames: frames, Color: color, RowHeight: 25}
}

func (s *Sprite) Capability() Capability { return CapSprite }

func (s *Sprite) Render(c *gfx.Canvas) {
	if s.Frame < 0 || s.Frame >= len(s.Frames) {
		return
	}
	rows := s.Frames[s.Frame]
	top := -float64(len(rows)-1) * s.RowHeight / 2
	for i, row := range rows {
		c.Text(0, top+float64(i)*s.RowHeight, row, s.Color, gfx.AlignCenter)
	}
}

// Clip is a named frame sequence.
type Clip struct {
	Frames    []int
	FrameRate float64
	Loop      bool
}

// Animation steps a sibling Sprite through named clips.
type Animation struct {
	ComponentBase
	clips    map[string]Clip
	current  string
	index    int
	timer    float64
	finished bool
}

// NewAnimation creates an animation with no clips.
func NewAnimation() *Animation {
	return &Animation{clips: make(map[string]Clip)}
}

func (a *Animation) Capability() Capability { return CapAnimation }

// Add registers a clip.
func (a *Animation) Add(name string, clip Clip) {
	if clip.FrameRate <= 0 {
		clip.FrameRate = 10
	}
	a.clips[name] = clip
}

// Play switches to a clip. Unknown names are ignored and reported false.
// Playing the running clip again only restarts it when restart is set.
func (a *Animation) Play(name string, restart bool) bool {
	if _, ok := a.clips[name]; !ok {
		return false
	}
	if a.current == name && !restart {
		return true
	}
	a.current = name
	a.finished = false
	a.index = 0
	a.timer = 0
	a.sync()
	return true
}

// Current returns the playing clip name and the position inside it.
func (a *Animation) Current() (string, int) { return a.current, a.index }

// Finished reports whether a one-shot clip reached its last frame.
func (a *Animation) Finished() bool { return a.finished }

func (a *Animation) Update(dt float64) {
	clip, ok := a.clips[a.current]
	if !ok || a.finished || len(clip.Frames) == 0 {
		return
	}
	a.timer += dt
	step := 1 / clip.FrameRate
	for a.timer >= step && !a.finished {
		a.timer -= step
		a.index++
		if a.index >= len(clip.Frames) {
			if clip.Loop {
				a.index = 0
			} else {
				a.index = len(clip.Frames) - 1
				a.finished = true
			}
		}
	}
	a.sync()
}

func (a *Animation) sync() {
	if a.owner == nil {
		return
	}
	sprite, ok := Find[*Sprite](a.owner)
	if !ok {
		return
	}
	clip := a.clips[a.current]
	if a.index < len(clip.Frames) {
		sprite.Frame = clip.Frames[a.index]
	}
}
