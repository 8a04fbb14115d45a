package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// frameMsg is one tick of the progress bar redraw loop.
type frameMsg struct {
	gen uint64
	at  time.Time
}

// frameLoop drives redraws while at least one toast is counting down. Each
// start bumps the generation, so ticks from a loop that was stopped and
// restarted in between are dropped instead of doubling the frame rate.
type frameLoop struct {
	interval time.Duration
	gen      uint64
	running  bool
}

func newFrameLoop(interval time.Duration) frameLoop {
	return frameLoop{interval: interval}
}

// Ensure starts the loop if it is not running. It returns nil when the loop
// was already running.
func (f *frameLoop) Ensure() tea.Cmd {
	if f.running {
		return nil
	}
	f.running = true
	f.gen++
	return f.tick()
}

// Next schedules the tick following msg, or returns nil if msg belongs to a
// stopped or superseded loop.
func (f *frameLoop) Next(msg frameMsg) tea.Cmd {
	if !f.Current(msg) {
		return nil
	}
	return f.tick()
}

// Current reports whether msg belongs to the running loop.
func (f *frameLoop) Current(msg frameMsg) bool {
	return f.running && msg.gen == f.gen
}

// Stop suspends the loop; its in-flight tick becomes stale.
func (f *frameLoop) Stop() {
	if !f.running {
		return
	}
	f.running = false
	f.gen++
}

// Running reports whether the loop is active.
func (f *frameLoop) Running() bool {
	return f.running
}

func (f *frameLoop) tick() tea.Cmd {
	gen := f.gen
	return tea.Tick(f.interval, func(t time.Time) tea.Msg {
		return frameMsg{gen: gen, at: t}
	})
}
