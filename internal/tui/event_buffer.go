package tui

import (
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/hirewatch/internal/core/notify"
)

// eventsMsg wakes the Update loop after the buffer was signalled.
type eventsMsg struct{}

// EventBuffer carries work produced off the Update loop into it: toast
// requests from background producers and "state changed" marks from timer
// callbacks. Any number of pushes between two drains collapse into a single
// wake-up.
type EventBuffer struct {
	mu      sync.Mutex
	pending []notify.Notification
	dirty   bool
	signal  chan struct{}
}

// NewEventBuffer constructs an empty buffer.
func NewEventBuffer() *EventBuffer {
	return &EventBuffer{signal: make(chan struct{}, 1)}
}

// Push queues a notification for display.
func (b *EventBuffer) Push(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	b.mu.Lock()
	b.pending = append(b.pending, n)
	b.mu.Unlock()

	b.wake()
}

// MarkChanged records that component state changed and a redraw is due.
func (b *EventBuffer) MarkChanged() {
	b.mu.Lock()
	b.dirty = true
	b.mu.Unlock()

	b.wake()
}

func (b *EventBuffer) wake() {
	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// Drain returns the queued notifications and whether a change was marked,
// then resets both.
func (b *EventBuffer) Drain() ([]notify.Notification, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := b.pending
	changed := b.dirty
	b.pending = nil
	b.dirty = false
	return out, changed
}

// WaitForSignal blocks until the buffer has been signalled.
func (b *EventBuffer) WaitForSignal() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return eventsMsg{}
	}
}
