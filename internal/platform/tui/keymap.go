package tui

import (
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/engine"
)

// KeyCodes translates a terminal key event into the key codes it holds.
// Uppercase letters and shifted arrows add ShiftLeft, since terminals have no
// separate event for the modifier. Keys without a game meaning return nil.
func KeyCodes(msg tea.KeyMsg) []string {
	switch msg.Type {
	case tea.KeyUp:
		return []string{core.KeyArrowUp}
	case tea.KeyDown:
		return []string{core.KeyArrowDown}
	case tea.KeyLeft:
		return []string{core.KeyArrowLeft}
	case tea.KeyRight:
		return []string{core.KeyArrowRight}
	case tea.KeyShiftUp:
		return []string{core.KeyArrowUp, core.KeyShiftLeft}
	case tea.KeyShiftDown:
		return []string{core.KeyArrowDown, core.KeyShiftLeft}
	case tea.KeyShiftLeft:
		return []string{core.KeyArrowLeft, core.KeyShiftLeft}
	case tea.KeyShiftRight:
		return []string{core.KeyArrowRight, core.KeyShiftLeft}
	case tea.KeySpace:
		return []string{core.KeySpace}
	case tea.KeyEnter:
		return []string{core.KeyEnter}
	case tea.KeyTab:
		return []string{core.KeyTab}
	case tea.KeyBackspace:
		return []string{core.KeyBackspace}
	case tea.KeyDelete:
		return []string{core.KeyDelete}
	case tea.KeyRunes:
	default:
		return nil
	}

	var codes []string
	for _, r := range msg.Runes {
		if r == ' ' {
			codes = append(codes, core.KeySpace)
			continue
		}
		if code, ok := core.Letter(r); ok {
			codes = append(codes, code)
			if unicode.IsUpper(r) {
				codes = append(codes, core.KeyShiftLeft)
			}
			continue
		}
		if code, ok := core.Digit(r); ok {
			codes = append(codes, code)
		}
	}
	return codes
}

// keyHolder turns press-only terminal events into held keys. A key is held
// from its first event for first and extended by repeat on every auto-repeat;
// it is released once no event has arrived within that window.
type keyHolder struct {
	first  time.Duration
	repeat time.Duration
	until  map[string]time.Time
}

func newKeyHolder(first, repeat time.Duration) *keyHolder {
	return &keyHolder{first: first, repeat: repeat, until: make(map[string]time.Time)}
}

// Press records an event for code at now.
func (h *keyHolder) Press(in *engine.Input, code string, now time.Time) {
	if _, held := h.until[code]; held {
		h.until[code] = now.Add(h.repeat)
		return
	}
	h.until[code] = now.Add(h.first)
	in.HandleKeyDown(code)
}

// Expire releases every key whose window closed before now.
func (h *keyHolder) Expire(in *engine.Input, now time.Time) {
	for code, t := range h.until {
		if !now.Before(t) {
			delete(h.until, code)
			in.HandleKeyUp(code)
		}
	}
}

// Release lets go of everything.
func (h *keyHolder) Release(in *engine.Input) {
	for code := range h.until {
		in.HandleKeyUp(code)
	}
	clear(h.until)
}

// Held reports how many keys are currently held.
func (h *keyHolder) Held() int { return len(h.until) }

// mouseButton maps a terminal button to the engine's numbering.
func mouseButton(b tea.MouseButton) (core.MouseButton, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return core.MouseLeft, true
	case tea.MouseButtonMiddle:
		return core.MouseMiddle, true
	case tea.MouseButtonRight:
		return core.MouseRight, true
	}
	return 0, false
}

// KeyMap defines the host's own bindings.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Play       key.Binding
	Saved      key.Binding
	Back       key.Binding
	Quit       key.Binding
	Screenshot key.Binding
	Copy       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Play, k.Saved, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Play},
		{k.Saved, k.Back, k.Quit},
		{k.Screenshot, k.Copy},
	}
}

// DefaultKeyMap returns the default host bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		Play: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Saved: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "saved data"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "catalog"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy frame"),
		),
	}
}
