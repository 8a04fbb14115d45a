// Package clocktest provides a manually advanced clock.Clock for tests.
package clocktest

import (
	"sync"
	"time"

	"github.com/colonyops/hirewatch/internal/core/clock"
)

// Clock is a clock.Clock whose time only moves when Advance is called.
// Timer callbacks run synchronously inside Advance, on the caller's
// goroutine, with no internal lock held.
type Clock struct {
	mu        sync.Mutex
	now       time.Time
	timers    []*timer
	seq       int
	active    int
	peak      int
	scheduled int
}

type timer struct {
	c    *Clock
	at   time.Time
	seq  int
	fn   func()
	done bool
}

// New returns a manual clock starting at start.
func New(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current manual time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc registers fn to run once the clock has advanced by d.
func (c *Clock) AfterFunc(d time.Duration, fn func()) clock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d < 0 {
		d = 0
	}

	c.seq++
	t := &timer{c: c, at: c.now.Add(d), seq: c.seq, fn: fn}
	c.timers = append(c.timers, t)
	c.scheduled++
	c.active++
	c.peak = max(c.peak, c.active)
	return t
}

func (t *timer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	t.c.active--
	return true
}

// Advance moves the clock forward by d, firing every timer whose deadline
// falls inside the window in deadline order. The clock reads the timer's
// deadline while its callback runs. Timers armed by callbacks fire too if
// their deadline is still inside the window.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.nextDue(target)
		if next == nil {
			c.now = target
			c.compact()
			c.mu.Unlock()
			return
		}
		next.done = true
		c.active--
		if next.at.After(c.now) {
			c.now = next.at
		}
		c.mu.Unlock()

		next.fn()
	}
}

func (c *Clock) nextDue(target time.Time) *timer {
	var next *timer
	for _, t := range c.timers {
		if t.done || t.at.After(target) {
			continue
		}
		if next == nil || t.at.Before(next.at) || (t.at.Equal(next.at) && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (c *Clock) compact() {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.done {
			live = append(live, t)
		}
	}
	c.timers = live
}

// Active returns the number of armed timers that have neither fired nor
// been stopped.
func (c *Clock) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Peak returns the highest number of simultaneously armed timers seen.
func (c *Clock) Peak() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.peak
}

// Scheduled returns the total number of AfterFunc calls.
func (c *Clock) Scheduled() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scheduled
}
