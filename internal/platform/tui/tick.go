// Package tui hosts engines inside Bubble Tea programs: a game catalog, the
// play view, terminal key and mouse translation and an SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gameflix/internal/engine"
)

// FrameMsg delivers a scheduled engine frame.
type FrameMsg struct {
	ID   engine.FrameID
	Time time.Time
}

// teaScheduler implements engine.Scheduler on top of tea.Tick. Requests are
// recorded when the engine makes them and turned into commands by the model
// after each update, since only the model can return a tea.Cmd.
type teaScheduler struct {
	interval time.Duration
	next     engine.FrameID
	pending  engine.FrameID
	fn       engine.FrameFunc
	sent     bool
}

func newTeaScheduler(frameRate int) *teaScheduler {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &teaScheduler{interval: time.Second / time.Duration(frameRate)}
}

// RequestFrame implements engine.Scheduler.
func (s *teaScheduler) RequestFrame(fn engine.FrameFunc) engine.FrameID {
	s.next++
	s.pending = s.next
	s.fn = fn
	s.sent = false
	return s.pending
}

// CancelFrame implements engine.Scheduler.
func (s *teaScheduler) CancelFrame(id engine.FrameID) {
	if id != 0 && id == s.pending {
		s.pending = 0
		s.fn = nil
	}
}

// Cmd returns the tick command for an outstanding request that has not been
// sent yet, or nil.
func (s *teaScheduler) Cmd() tea.Cmd {
	if s.fn == nil || s.sent {
		return nil
	}
	s.sent = true
	id := s.pending
	return tea.Tick(s.interval, func(t time.Time) tea.Msg {
		return FrameMsg{ID: id, Time: t}
	})
}

// Fire runs the callback msg was scheduled for. Stale and cancelled frames
// are dropped and reported as false.
func (s *teaScheduler) Fire(msg FrameMsg) bool {
	if msg.ID == 0 || msg.ID != s.pending || s.fn == nil {
		return false
	}
	fn := s.fn
	s.fn = nil
	s.pending = 0
	fn(msg.Time)
	return true
}
