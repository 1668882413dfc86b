// Package sim runs games headless from scripted input and fingerprints the
// final frame, so runs can be compared across machines and frame rates.
package sim

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/engine"
)

// Script is one headless run.
type Script struct {
	Game    string  `yaml:"game"`
	Seed    int64   `yaml:"seed"`
	Ticks   uint64  `yaml:"ticks"`
	FrameMS float64 `yaml:"frame_ms"` // host frame length; 0 means one tick per frame
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Events  []Event `yaml:"events"`
}

// Event is input applied at the start of a tick, before the scene updates.
// Press holds a key for exactly one tick.
type Event struct {
	Tick      uint64 `yaml:"tick"`
	KeyDown   string `yaml:"key_down,omitempty"`
	KeyUp     string `yaml:"key_up,omitempty"`
	Press     string `yaml:"press,omitempty"`
	Mouse     *Point `yaml:"mouse,omitempty"`
	MouseDown string `yaml:"mouse_down,omitempty"`
	MouseUp   string `yaml:"mouse_up,omitempty"`
}

// Point is a world position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

var (
	ErrNoGame   = errors.New("sim: script has no game")
	ErrNoTicks  = errors.New("sim: script has no ticks")
	ErrBadEvent = errors.New("sim: invalid event")
)

// Validate checks the script and fills in defaults.
func (s *Script) Validate() error {
	if s.Game == "" {
		return ErrNoGame
	}
	if s.Ticks == 0 {
		return ErrNoTicks
	}
	if s.FrameMS < 0 {
		return fmt.Errorf("sim: %s: negative frame_ms %v", s.Game, s.FrameMS)
	}
	if s.Width <= 0 || s.Height <= 0 {
		s.Width, s.Height = core.DefaultScreenW, core.DefaultScreenH
	}
	for i, ev := range s.Events {
		if ev.Tick == 0 {
			return fmt.Errorf("%w: %s event %d: ticks start at 1", ErrBadEvent, s.Game, i)
		}
		for _, b := range []string{ev.MouseDown, ev.MouseUp} {
			if _, err := parseButton(b); b != "" && err != nil {
				return fmt.Errorf("%w: %s event %d: %v", ErrBadEvent, s.Game, i, err)
			}
		}
	}
	return nil
}

// frame returns the host frame duration, defaulting to step.
func (s *Script) frame(step time.Duration) time.Duration {
	if s.FrameMS <= 0 {
		return step
	}
	return time.Duration(s.FrameMS * float64(time.Millisecond))
}

// ParseScripts decodes every YAML document in r.
func ParseScripts(r io.Reader) ([]Script, error) {
	dec := yaml.NewDecoder(r)
	var out []Script
	for {
		var s Script
		err := dec.Decode(&s)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("sim: parse script %d: %w", len(out)+1, err)
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// LoadScripts reads scripts from a YAML file. Documents are separated by
// "---".
func LoadScripts(path string) ([]Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	defer f.Close()
	return ParseScripts(f)
}

// DefaultScript pokes a game with the keys most games start or act on, so
// every game can be run headless without a hand-written script.
func DefaultScript(game string, seed int64, ticks uint64) Script {
	return Script{
		Game:  game,
		Seed:  seed,
		Ticks: ticks,
		Events: []Event{
			{Tick: 2, Press: core.KeyEnter},
			{Tick: 10, Press: core.KeySpace},
			{Tick: 20, KeyDown: core.KeyArrowRight},
			{Tick: 50, KeyUp: core.KeyArrowRight},
			{Tick: 60, Mouse: &Point{X: 400, Y: 300}, MouseDown: "left"},
			{Tick: 61, MouseUp: "left"},
			{Tick: 70, KeyDown: core.KeyArrowUp},
			{Tick: 100, KeyUp: core.KeyArrowUp},
		},
	}
}

func parseButton(name string) (core.MouseButton, error) {
	switch strings.ToLower(name) {
	case "left":
		return core.MouseLeft, nil
	case "middle":
		return core.MouseMiddle, nil
	case "right":
		return core.MouseRight, nil
	}
	return 0, fmt.Errorf("unknown mouse button %q", name)
}

// apply feeds ev into in. Buttons were checked by Validate.
func (ev Event) apply(in *engine.Input) {
	if ev.Mouse != nil {
		in.HandleMouseMove(ev.Mouse.X, ev.Mouse.Y)
	}
	if ev.KeyDown != "" {
		in.HandleKeyDown(ev.KeyDown)
	}
	if ev.KeyUp != "" {
		in.HandleKeyUp(ev.KeyUp)
	}
	if ev.Press != "" {
		in.HandleKeyDown(ev.Press)
	}
	if b, err := parseButton(ev.MouseDown); err == nil {
		in.HandleMouseDown(b)
	}
	if b, err := parseButton(ev.MouseUp); err == nil {
		in.HandleMouseUp(b)
	}
}
