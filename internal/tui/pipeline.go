package tui

import (
	"fmt"
	"sync"
	"time"

	"github.com/colonyops/hirewatch/internal/core/clock"
	"github.com/colonyops/hirewatch/internal/core/notify"
)

// PipelineSimulator emits demo recruitment events on a fixed interval from
// a timer goroutine. Events go through an EventBuffer so they reach the
// toast manager on the Update loop.
type PipelineSimulator struct {
	interval time.Duration
	rows     []Candidate
	out      *EventBuffer

	mu      sync.Mutex
	slot    *clock.Slot
	seq     int
	stopped bool
}

// NewPipelineSimulator creates a stopped simulator. A non-positive interval
// disables it.
func NewPipelineSimulator(c clock.Clock, interval time.Duration, rows []Candidate, out *EventBuffer) *PipelineSimulator {
	if c == nil {
		c = clock.Real()
	}
	return &PipelineSimulator{
		interval: interval,
		rows:     rows,
		out:      out,
		slot:     clock.NewSlot(c),
	}
}

// Start arms the first event.
func (p *PipelineSimulator) Start() {
	if p == nil || p.interval <= 0 || len(p.rows) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped || p.slot.Pending() {
		return
	}
	p.slot.Schedule(p.interval, p.fire)
}

// Stop cancels the pending event. The simulator cannot be restarted.
func (p *PipelineSimulator) Stop() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
	p.slot.Cancel()
}

func (p *PipelineSimulator) fire(tok clock.Token) {
	p.mu.Lock()
	if !p.slot.Claim(tok) {
		p.mu.Unlock()
		return
	}
	n := pipelineEvent(p.rows[p.seq%len(p.rows)], p.seq)
	p.seq++
	p.slot.Schedule(p.interval, p.fire)
	p.mu.Unlock()

	p.out.Push(n)
}

// pipelineEvent maps a candidate to a plausible event. Kinds rotate so a
// demo session shows every style.
func pipelineEvent(c Candidate, seq int) notify.Notification {
	switch seq % 4 {
	case 0:
		return notify.Notification{
			Kind:   notify.KindSuccess,
			Title:  fmt.Sprintf("%s accepted the offer", c.Name),
			Detail: c.Role,
		}
	case 1:
		return notify.Notification{
			Kind:   notify.KindInfo,
			Title:  fmt.Sprintf("New match: %s (%d%%)", c.Name, c.Score),
			Detail: c.Role,
		}
	case 2:
		return notify.Notification{
			Kind:   notify.KindWarning,
			Title:  fmt.Sprintf("%s has waited 5 days in %s", c.Name, c.Status),
			Detail: "Follow up before the candidate goes cold",
		}
	default:
		return notify.Notification{
			Kind:   notify.KindError,
			Title:  fmt.Sprintf("Calendar sync failed for %s", c.Name),
			Detail: "Interview slot could not be booked",
		}
	}
}
