package clock

import "time"

// Token identifies one scheduling of a Slot. The zero Token is never issued.
type Token uint64

// Slot holds at most one pending timer. Scheduling stops the pending timer
// (if any) before arming a new one, and each scheduling is identified by a
// Token so that a callback which raced with Cancel or a newer Schedule can
// detect that it is stale.
//
// Slot is not safe for concurrent use. The owner serializes access, and the
// callback passed to Schedule must take the owner's lock and call Claim
// before acting.
type Slot struct {
	clock   Clock
	timer   Timer
	current Token
	next    Token
}

// NewSlot creates an empty slot that schedules on c.
func NewSlot(c Clock) *Slot {
	return &Slot{clock: c}
}

// Schedule cancels any pending timer and arms fn to run after d. Negative
// durations are treated as zero. fn receives the token it was armed with.
func (s *Slot) Schedule(d time.Duration, fn func(Token)) Token {
	s.Cancel()

	if d < 0 {
		d = 0
	}

	s.next++
	tok := s.next
	s.current = tok
	s.timer = s.clock.AfterFunc(d, func() { fn(tok) })
	return tok
}

// Cancel stops the pending timer. It returns true if a timer was pending.
func (s *Slot) Cancel() bool {
	if s.current == 0 {
		return false
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = nil
	s.current = 0
	return true
}

// Claim reports whether tok is the pending scheduling and, if so, marks the
// slot empty. Callbacks use it to discard stale firings.
func (s *Slot) Claim(tok Token) bool {
	if tok == 0 || tok != s.current {
		return false
	}
	s.timer = nil
	s.current = 0
	return true
}

// Pending reports whether a timer is armed.
func (s *Slot) Pending() bool {
	return s.current != 0
}
