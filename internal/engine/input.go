package engine

import (
	"github.com/vovakirdan/gameflix/internal/core"
)

// Touch is one active touch point in canvas coordinates.
type Touch struct {
	ID   int
	X, Y float64
}

// Mouse is a snapshot of the pointer.
type Mouse struct {
	X, Y float64
}

// Input polls keyboard, mouse and touch state. Hosts feed it events through
// the Handle* methods; scenes query it during update. Edge flags (pressed and
// released) live until Update runs at the end of the fixed tick.
type Input struct {
	down     map[string]bool
	pressed  map[string]bool
	released map[string]bool

	mouse         Mouse
	buttons       [3]bool
	buttonPressed [3]bool
	buttonUp      [3]bool

	touches []Touch
}

// NewInput creates an input poller with nothing held.
func NewInput() *Input {
	return &Input{
		down:     make(map[string]bool),
		pressed:  make(map[string]bool),
		released: make(map[string]bool),
	}
}

// HandleKeyDown records a key-down event. Repeats while held do not create a
// new pressed edge.
func (in *Input) HandleKeyDown(code string) {
	if !in.down[code] {
		in.pressed[code] = true
	}
	in.down[code] = true
}

// HandleKeyUp records a key-up event.
func (in *Input) HandleKeyUp(code string) {
	in.down[code] = false
	in.released[code] = true
}

// IsKeyDown reports whether the key is currently held.
func (in *Input) IsKeyDown(code string) bool { return in.down[code] }

// IsKeyPressed reports whether the key went down during this tick.
func (in *Input) IsKeyPressed(code string) bool { return in.pressed[code] }

// IsKeyReleased reports whether the key went up during this tick.
func (in *Input) IsKeyReleased(code string) bool { return in.released[code] }

// AnyPressed reports whether any of the given keys went down this tick.
func (in *Input) AnyPressed(codes ...string) bool {
	for _, c := range codes {
		if in.pressed[c] {
			return true
		}
	}
	return false
}

// AnyDown reports whether any of the given keys is held.
func (in *Input) AnyDown(codes ...string) bool {
	for _, c := range codes {
		if in.down[c] {
			return true
		}
	}
	return false
}

// HeldKeys returns the number of keys currently held.
func (in *Input) HeldKeys() int {
	n := 0
	for _, d := range in.down {
		if d {
			n++
		}
	}
	return n
}

// HandleMouseMove records the pointer position in canvas coordinates.
func (in *Input) HandleMouseMove(x, y float64) {
	in.mouse = Mouse{X: x, Y: y}
}

// HandleMouseDown records a button press.
func (in *Input) HandleMouseDown(b core.MouseButton) {
	if int(b) >= len(in.buttons) {
		return
	}
	if !in.buttons[b] {
		in.buttonPressed[b] = true
	}
	in.buttons[b] = true
}

// HandleMouseUp records a button release.
func (in *Input) HandleMouseUp(b core.MouseButton) {
	if int(b) >= len(in.buttons) {
		return
	}
	in.buttons[b] = false
	in.buttonUp[b] = true
}

// Mouse returns the last pointer position.
func (in *Input) Mouse() Mouse { return in.mouse }

// IsMouseDown reports whether the button is held.
func (in *Input) IsMouseDown(b core.MouseButton) bool {
	return int(b) < len(in.buttons) && in.buttons[b]
}

// IsMousePressed reports whether the button went down this tick.
func (in *Input) IsMousePressed(b core.MouseButton) bool {
	return int(b) < len(in.buttons) && in.buttonPressed[b]
}

// IsMouseReleased reports whether the button went up this tick.
func (in *Input) IsMouseReleased(b core.MouseButton) bool {
	return int(b) < len(in.buttons) && in.buttonUp[b]
}

// HandleTouches replaces the active touch list. The first touch drives the
// mouse position; a touch list appearing presses the left button.
func (in *Input) HandleTouches(touches []Touch) {
	started := len(in.touches) == 0 && len(touches) > 0
	in.touches = append(in.touches[:0], touches...)
	if len(in.touches) > 0 {
		in.HandleMouseMove(in.touches[0].X, in.touches[0].Y)
	}
	if started {
		in.HandleMouseDown(core.MouseLeft)
	}
}

// HandleTouchEnd clears all touches and releases the left button.
func (in *Input) HandleTouchEnd() {
	in.touches = in.touches[:0]
	in.HandleMouseUp(core.MouseLeft)
}

// Touches returns the active touch points.
func (in *Input) Touches() []Touch { return in.touches }

// Update clears the one-tick edge flags. The engine calls it exactly once per
// fixed tick, after the scene has read them.
func (in *Input) Update() {
	clear(in.pressed)
	clear(in.released)
	in.buttonPressed = [3]bool{}
	in.buttonUp = [3]bool{}
}

// Reset releases everything, as if the window lost focus.
func (in *Input) Reset() {
	clear(in.down)
	clear(in.pressed)
	clear(in.released)
	in.buttons = [3]bool{}
	in.buttonPressed = [3]bool{}
	in.buttonUp = [3]bool{}
	in.touches = in.touches[:0]
}
