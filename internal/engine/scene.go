package engine

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gameflix/internal/gfx"
)

// Scene is one screen of the arcade, usually a whole game. Enter runs every
// time the scene becomes current and is the place a finished game resets
// itself; Exit runs when another scene replaces it.
type Scene interface {
	Updatable
	Renderable
	Enter()
	Exit()
}

// SceneBase is an embeddable entity container. Concrete scenes embed it and
// call its Update and Render from their own.
type SceneBase struct {
	entities []*Entity
	logger   *log.Logger
	Active   bool
}

// SetLogger routes configuration errors of the owned entities, present and
// future, to l. Engine.AddScene calls it with the engine logger.
func (s *SceneBase) SetLogger(l *log.Logger) {
	s.logger = l
	for _, e := range s.entities {
		e.SetLogger(l)
	}
}

// AddEntity appends e; insertion order is update and render order.
func (s *SceneBase) AddEntity(e *Entity) *Entity {
	if s.logger != nil {
		e.SetLogger(s.logger)
	}
	s.entities = append(s.entities, e)
	return e
}

// RemoveEntity drops e, reporting whether it was present.
func (s *SceneBase) RemoveEntity(e *Entity) bool {
	i := slices.Index(s.entities, e)
	if i < 0 {
		return false
	}
	s.entities = slices.Delete(s.entities, i, i+1)
	return true
}

// Entities returns the owned entities in order.
func (s *SceneBase) Entities() []*Entity { return s.entities }

// ClearEntities drops every owned entity.
func (s *SceneBase) ClearEntities() { s.entities = nil }

func (s *SceneBase) Enter() { s.Active = true }
func (s *SceneBase) Exit()  { s.Active = false }

// Update advances every active entity.
func (s *SceneBase) Update(dt float64) {
	for _, e := range s.entities {
		if e.Active {
			e.Update(dt)
		}
	}
}

// Render draws every visible entity.
func (s *SceneBase) Render(c *gfx.Canvas) {
	for _, e := range s.entities {
		if e.Visible {
			e.Render(c)
		}
	}
}
