package engine

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gameflix/internal/gfx"
)

const (
	// DefaultFPS is the fixed simulation rate.
	DefaultFPS = 60
	// DefaultMaxFrame caps the time a single frame may feed the accumulator.
	DefaultMaxFrame = 100 * time.Millisecond
)

// TickHook runs at the start of every fixed tick, before the scene reads
// input. Headless drivers use it to inject scripted events.
type TickHook func(tick uint64, in *Input)

// Option configures an Engine.
type Option func(*Engine)

// WithScheduler sets the frame scheduler. A scheduler that also implements
// Clock becomes the engine's clock.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		e.sched = s
		if c, ok := s.(Clock); ok {
			e.clock = c
		}
	}
}

// WithClock overrides the clock used by Start.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger routes engine logging to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithFPS sets the fixed simulation rate. Values <= 0 are ignored.
func WithFPS(fps int) Option {
	return func(e *Engine) {
		if fps > 0 {
			e.step = time.Second / time.Duration(fps)
		}
	}
}

// WithMaxFrame sets the per-frame clamp. Values <= 0 are ignored.
func WithMaxFrame(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.maxFrame = d
		}
	}
}

// WithTickHook adds a hook run at the start of every tick.
func WithTickHook(h TickHook) Option {
	return func(e *Engine) { e.hooks = append(e.hooks, h) }
}

// Engine drives one canvas: a fixed-timestep accumulator, a scene registry
// with a single current scene, and top-level entities. All methods must be
// called from the goroutine that delivers frame callbacks.
type Engine struct {
	canvas *gfx.Canvas
	input  *Input
	sched  Scheduler
	clock  Clock
	logger *log.Logger

	step     time.Duration
	maxFrame time.Duration
	hooks    []TickHook

	running bool
	frame   FrameID
	last    time.Time
	acc     time.Duration
	ticks   uint64
	err     error

	scenes   map[string]Scene
	current  Scene
	name     string
	entities []*Entity
}

// New creates a stopped engine drawing into canvas.
func New(canvas *gfx.Canvas, opts ...Option) *Engine {
	e := &Engine{
		canvas:   canvas,
		input:    NewInput(),
		clock:    wallClock{},
		logger:   log.New(io.Discard),
		step:     time.Second / DefaultFPS,
		maxFrame: DefaultMaxFrame,
		scenes:   make(map[string]Scene),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.sched == nil {
		ms := NewManualScheduler(time.Time{})
		e.sched = ms
		if _, ok := e.clock.(wallClock); ok {
			e.clock = ms
		}
	}
	return e
}

// Canvas returns the drawing surface.
func (e *Engine) Canvas() *gfx.Canvas { return e.canvas }

// Input returns the input poller hosts feed events into.
func (e *Engine) Input() *Input { return e.input }

// Logger returns the engine logger.
func (e *Engine) Logger() *log.Logger { return e.logger }

// Step returns the fixed timestep.
func (e *Engine) Step() time.Duration { return e.step }

// Ticks returns the number of fixed ticks run so far.
func (e *Engine) Ticks() uint64 { return e.ticks }

// Running reports whether frames are being scheduled.
func (e *Engine) Running() bool { return e.running }

// Err returns the panic that stopped the engine, if any.
func (e *Engine) Err() error { return e.err }

// Start begins scheduling frames. It is a no-op while running.
func (e *Engine) Start() {
	if e.running {
		return
	}
	e.running = true
	e.err = nil
	e.acc = 0
	e.last = e.clock.Now()
	e.frame = e.sched.RequestFrame(e.loop)
}

// Stop halts the loop and cancels the pending frame request.
func (e *Engine) Stop() {
	if !e.running {
		return
	}
	e.running = false
	e.sched.CancelFrame(e.frame)
	e.frame = 0
}

func (e *Engine) loop(now time.Time) {
	e.frame = 0
	if !e.running {
		return
	}

	delta := now.Sub(e.last)
	e.last = now
	if delta < 0 {
		delta = 0
	}
	if delta > e.maxFrame {
		delta = e.maxFrame
	}
	e.acc += delta

	for e.acc >= e.step {
		if !e.Tick() {
			return
		}
		e.acc -= e.step
	}
	if !e.Render() {
		return
	}

	if e.running {
		e.frame = e.sched.RequestFrame(e.loop)
	}
}

// Tick runs one fixed update. It reports false if the update panicked, in
// which case the engine has been stopped.
func (e *Engine) Tick() bool {
	return e.guard("update", func() { e.update(e.step.Seconds()) })
}

// Render draws one frame. It reports false if rendering panicked.
func (e *Engine) Render() bool {
	return e.guard("render", e.render)
}

func (e *Engine) update(dt float64) {
	e.ticks++
	for _, h := range e.hooks {
		h(e.ticks, e.input)
	}
	if e.current != nil {
		e.current.Update(dt)
	}
	for _, ent := range e.entities {
		if ent.Active {
			ent.Update(dt)
		}
	}
	e.input.Update()
}

func (e *Engine) render() {
	e.canvas.Clear()
	if e.current != nil {
		e.current.Render(e.canvas)
	}
	for _, ent := range e.entities {
		if ent.Visible {
			ent.Render(e.canvas)
		}
	}
}

func (e *Engine) guard(phase string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.err = fmt.Errorf("engine: %s %s: %v", e.name, phase, r)
			e.logger.Error("scene panicked", "scene", e.name, "phase", phase, "err", r)
			e.canvas.ResetTransform()
			e.Stop()
			ok = false
		}
	}()
	fn()
	return true
}

// AddScene registers s under name. An existing registration is replaced.
func (e *Engine) AddScene(name string, s Scene) {
	if ls, ok := s.(interface{ SetLogger(*log.Logger) }); ok {
		ls.SetLogger(e.logger)
	}
	e.scenes[name] = s
}

// HasScene reports whether name is registered.
func (e *Engine) HasScene(name string) bool {
	_, ok := e.scenes[name]
	return ok
}

// Scene returns the scene registered under name.
func (e *Engine) Scene(name string) (Scene, bool) {
	s, ok := e.scenes[name]
	return s, ok
}

// SetScene makes the named scene current. Unknown names are logged and
// ignored. The outgoing scene's Exit runs before the incoming scene's Enter.
func (e *Engine) SetScene(name string) bool {
	next, ok := e.scenes[name]
	if !ok {
		e.logger.Error("scene not found", "scene", name)
		return false
	}
	if e.current != nil {
		e.current.Exit()
	}
	e.current = next
	e.name = name
	e.input.Reset()
	next.Enter()
	return true
}

// ClearScene leaves no scene current, exiting the old one.
func (e *Engine) ClearScene() {
	if e.current != nil {
		e.current.Exit()
	}
	e.current = nil
	e.name = ""
}

// CurrentScene returns the current scene and its name, or nil.
func (e *Engine) CurrentScene() (Scene, string) { return e.current, e.name }

// AddEntity adds a top-level entity updated after the current scene.
func (e *Engine) AddEntity(ent *Entity) *Entity {
	ent.SetLogger(e.logger)
	e.entities = append(e.entities, ent)
	return ent
}

// RemoveEntity drops a top-level entity.
func (e *Engine) RemoveEntity(ent *Entity) bool {
	i := slices.Index(e.entities, ent)
	if i < 0 {
		return false
	}
	e.entities = slices.Delete(e.entities, i, i+1)
	return true
}

// ClearEntities drops every top-level entity.
func (e *Engine) ClearEntities() { e.entities = nil }

// Entities returns the top-level entities.
func (e *Engine) Entities() []*Entity { return e.entities }
