package engine

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gameflix/internal/gfx"
)

// Updatable advances by one fixed step of dt seconds.
type Updatable interface {
	Update(dt float64)
}

// Renderable draws itself through the canvas.
type Renderable interface {
	Render(c *gfx.Canvas)
}

// Entity is a positioned object owning an ordered list of components.
type Entity struct {
	X, Y          float64
	VX, VY        float64
	AX, AY        float64
	Rotation      float64
	Scale         float64
	Width, Height float64
	Active        bool
	Visible       bool

	// Draw paints the entity's own visual inside its transform. Nil draws
	// nothing.
	Draw func(c *gfx.Canvas)

	components []Component
	logger     *log.Logger
}

// NewEntity creates an active, visible entity at (x, y).
func NewEntity(x, y float64) *Entity {
	return &Entity{
		X:       x,
		Y:       y,
		Scale:   1,
		Width:   32,
		Height:  32,
		Active:  true,
		Visible: true,
	}
}

// SetLogger routes configuration errors (duplicate capabilities) to l.
// Without one they go to the default logger.
func (e *Entity) SetLogger(l *log.Logger) { e.logger = l }

func (e *Entity) errorLog() *log.Logger {
	if e.logger != nil {
		return e.logger
	}
	return log.Default()
}

// AddComponent attaches c and returns it. If a component with the same
// capability is already attached, c is rejected and the existing one is
// returned. A component owned by another entity is detached from it first.
func (e *Entity) AddComponent(c Component) Component {
	if existing, ok := e.Component(c.Capability()); ok {
		if existing != c {
			e.errorLog().Error("duplicate component capability", "capability", c.Capability())
		}
		return existing
	}
	if prev := c.Owner(); prev != nil && prev != e {
		prev.RemoveComponent(c)
	}
	c.attach(e)
	e.components = append(e.components, c)
	return c
}

// Component returns the first component with the given capability.
func (e *Entity) Component(capability Capability) (Component, bool) {
	for _, c := range e.components {
		if c.Capability() == capability {
			return c, true
		}
	}
	return nil, false
}

// Find returns the first component of type T attached to e.
func Find[T Component](e *Entity) (T, bool) {
	for _, c := range e.components {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// RemoveComponent detaches c. It reports whether c was attached.
func (e *Entity) RemoveComponent(c Component) bool {
	for i, have := range e.components {
		if have == c {
			e.components = append(e.components[:i], e.components[i+1:]...)
			c.attach(nil)
			return true
		}
	}
	return false
}

// Components returns the attached components in order.
func (e *Entity) Components() []Component { return e.components }

// Update integrates acceleration and velocity, then updates active
// components in order.
func (e *Entity) Update(dt float64) {
	e.VX += e.AX * dt
	e.VY += e.AY * dt
	e.X += e.VX * dt
	e.Y += e.VY * dt

	for _, c := range e.components {
		if c.IsActive() {
			c.Update(dt)
		}
	}
}

// Render draws the entity inside its own transform. The transform is popped
// even if a component panics.
func (e *Entity) Render(c *gfx.Canvas) {
	c.Save()
	defer c.Restore()

	c.Translate(e.X, e.Y)
	c.Rotate(e.Rotation)
	c.Scale(e.Scale, e.Scale)

	if e.Draw != nil {
		e.Draw(c)
	}
	for _, comp := range e.components {
		if comp.IsVisible() {
			comp.Render(c)
		}
	}
}

// CollidesWith tests center-anchored bounding boxes for overlap.
func (e *Entity) CollidesWith(o *Entity) bool {
	return math.Abs(e.X-o.X) < (e.Width+o.Width)/2 &&
		math.Abs(e.Y-o.Y) < (e.Height+o.Height)/2
}

// Label creates an entity carrying a single Text component.
func Label(x, y float64, text *Text) *Entity {
	e := NewEntity(x, y)
	e.AddComponent(text)
	return e
}

// SetText overwrites the text of the entity's Text component, if it has one.
func SetText(e *Entity, s string) bool {
	t, ok := Find[*Text](e)
	if !ok {
		return false
	}
	t.Text = s
	return true
}
