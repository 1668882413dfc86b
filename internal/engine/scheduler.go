package engine

import (
	"time"
)

// FrameID identifies one requested frame callback. Zero is never issued.
type FrameID uint64

// FrameFunc receives the timestamp of the frame it was scheduled for.
type FrameFunc func(now time.Time)

// Scheduler delivers frame callbacks, one per request, in the manner of a
// browser's requestAnimationFrame. The engine keeps at most one request
// outstanding.
type Scheduler interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

// Clock supplies the time the engine starts measuring frames from.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// ManualScheduler is a Scheduler driven explicitly by the caller. It doubles
// as the engine's clock, so tests and headless runs control time completely.
type ManualScheduler struct {
	now     time.Time
	next    FrameID
	pending FrameID
	fn      FrameFunc
}

// NewManualScheduler creates a scheduler whose clock starts at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// RequestFrame records fn as the pending callback.
func (s *ManualScheduler) RequestFrame(fn FrameFunc) FrameID {
	s.next++
	s.pending = s.next
	s.fn = fn
	return s.pending
}

// CancelFrame drops the pending callback if id still names it.
func (s *ManualScheduler) CancelFrame(id FrameID) {
	if id != 0 && id == s.pending {
		s.pending = 0
		s.fn = nil
	}
}

// Now returns the scheduler's virtual time.
func (s *ManualScheduler) Now() time.Time { return s.now }

// Pending reports whether a frame callback is waiting.
func (s *ManualScheduler) Pending() bool { return s.fn != nil }

// Advance moves virtual time forward by d and fires the pending callback, if
// any. It reports whether a callback ran.
func (s *ManualScheduler) Advance(d time.Duration) bool {
	s.now = s.now.Add(d)
	if s.fn == nil {
		return false
	}
	fn := s.fn
	s.fn = nil
	s.pending = 0
	fn(s.now)
	return true
}

// Run advances through each frame duration in turn.
func (s *ManualScheduler) Run(frames ...time.Duration) {
	for _, d := range frames {
		s.Advance(d)
	}
}
