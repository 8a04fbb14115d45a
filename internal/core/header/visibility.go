// Package header derives whether a page header should be shown from scroll
// position, scroll direction and pointer proximity to the top edge. Showing
// is immediate; hiding waits for a debounce so small scroll jitters do not
// make the header flicker.
package header

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/hirewatch/internal/core/clock"
	"github.com/colonyops/hirewatch/internal/core/logging"
)

// State is a position in the visibility state machine.
type State int

const (
	StateVisible State = iota
	StatePendingHide
	StateHidden
	StateHoveringRevealed
)

func (s State) String() string {
	switch s {
	case StateVisible:
		return "visible"
	case StatePendingHide:
		return "pending_hide"
	case StateHidden:
		return "hidden"
	case StateHoveringRevealed:
		return "hovering_revealed"
	default:
		return "unknown"
	}
}

// Visible reports whether the header is on screen in this state. A pending
// hide keeps the header showing until the debounce elapses.
func (s State) Visible() bool {
	return s != StateHidden
}

// Config holds the tuning knobs. Units are whatever the caller scrolls in
// (rows for the terminal UI).
type Config struct {
	// ScrollTopThreshold is the offset at or above which the header is
	// always shown.
	ScrollTopThreshold int `yaml:"scroll_top_threshold"`
	// HideDelay is the quiet period before a downward scroll hides the
	// header.
	HideDelay time.Duration `yaml:"hide_delay"`
	// HoverZoneHeight is the distance from the top edge that counts as
	// "near the top" for reveal-by-hover.
	HoverZoneHeight int `yaml:"hover_zone_height"`
}

// DefaultConfig returns defaults sized for a terminal measured in rows.
func DefaultConfig() Config {
	return Config{
		ScrollTopThreshold: 3,
		HideDelay:          80 * time.Millisecond,
		HoverZoneHeight:    2,
	}
}

// Clamped returns c with negative values raised to zero.
func (c Config) Clamped() Config {
	c.ScrollTopThreshold = max(c.ScrollTopThreshold, 0)
	c.HideDelay = max(c.HideDelay, 0)
	c.HoverZoneHeight = max(c.HoverZoneHeight, 0)
	return c
}

// Recorder receives state transitions. *metrics.Metrics implements it.
type Recorder interface {
	HeaderTransition(state string)
}

// Options wires a Visibility to its collaborators.
type Options struct {
	Clock    clock.Clock // defaults to clock.Real()
	Logger   *zerolog.Logger
	Recorder Recorder

	// OnChange runs after every state transition, without any lock held.
	// It may run on a timer goroutine when the hide debounce fires.
	OnChange func(State)
}

// Visibility is the header state machine. It is safe for concurrent use.
type Visibility struct {
	cfg      Config
	log      zerolog.Logger
	rec      Recorder
	onChange func(State)

	mu            sync.Mutex
	slot          *clock.Slot
	state         State
	lastScrollY   int
	pointerInZone bool
	closed        bool
}

// New creates a Visibility in StateVisible with scroll offset zero.
func New(cfg Config, opts Options) *Visibility {
	c := opts.Clock
	if c == nil {
		c = clock.Real()
	}

	v := &Visibility{
		cfg:      cfg.Clamped(),
		rec:      opts.Recorder,
		onChange: opts.OnChange,
		slot:     clock.NewSlot(c),
		state:    StateVisible,
	}
	if opts.Logger != nil {
		v.log = *opts.Logger
	} else {
		v.log = logging.Component("header")
	}
	return v
}

// Config returns the effective (clamped) configuration.
func (v *Visibility) Config() Config {
	return v.cfg
}

// Scroll records a new vertical scroll offset.
func (v *Visibility) Scroll(y int) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}

	prev := v.state
	last := v.lastScrollY
	v.lastScrollY = y

	switch {
	case y <= v.cfg.ScrollTopThreshold:
		v.slot.Cancel()
		v.state = StateVisible
	case y < last:
		v.slot.Cancel()
		v.state = StateVisible
	case y > last:
		switch {
		case v.pointerInZone:
			v.slot.Cancel()
			v.state = StateHoveringRevealed
		case v.state == StateVisible || v.state == StatePendingHide:
			v.armHideLocked()
		}
	}

	next := v.state
	v.mu.Unlock()

	v.transitioned(prev, next, "scroll")
}

// PointerMove records the pointer's vertical distance from the top edge.
func (v *Visibility) PointerMove(y int) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}

	prev := v.state
	v.pointerInZone = y >= 0 && y <= v.cfg.HoverZoneHeight
	v.applyPointerLocked()
	next := v.state
	v.mu.Unlock()

	v.transitioned(prev, next, "pointer")
}

// PointerLeave records that the pointer left the window.
func (v *Visibility) PointerLeave() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}

	prev := v.state
	v.pointerInZone = false
	v.applyPointerLocked()
	next := v.state
	v.mu.Unlock()

	v.transitioned(prev, next, "pointer")
}

func (v *Visibility) applyPointerLocked() {
	if v.lastScrollY <= v.cfg.ScrollTopThreshold {
		return
	}

	switch {
	case v.pointerInZone && (v.state == StateHidden || v.state == StatePendingHide):
		v.slot.Cancel()
		v.state = StateHoveringRevealed
	case !v.pointerInZone && v.state == StateHoveringRevealed:
		v.armHideLocked()
	}
}

// armHideLocked moves to StatePendingHide and (re)starts the debounce.
func (v *Visibility) armHideLocked() {
	v.state = StatePendingHide
	v.slot.Schedule(v.cfg.HideDelay, v.hide)
}

func (v *Visibility) hide(tok clock.Token) {
	v.mu.Lock()
	if !v.slot.Claim(tok) || v.state != StatePendingHide {
		v.mu.Unlock()
		return
	}
	v.state = StateHidden
	v.mu.Unlock()

	v.transitioned(StatePendingHide, StateHidden, "debounce")
}

func (v *Visibility) transitioned(prev, next State, cause string) {
	if prev == next {
		return
	}

	v.log.Debug().
		Str("from", prev.String()).
		Str("to", next.String()).
		Str("cause", cause).
		Msg("header state changed")

	if v.rec != nil {
		v.rec.HeaderTransition(next.String())
	}
	if v.onChange != nil {
		v.onChange(next)
	}
}

// State returns the current state.
func (v *Visibility) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Visible reports whether the header should be shown.
func (v *Visibility) Visible() bool {
	return v.State().Visible()
}

// Hovering reports whether the header is shown only because the pointer is
// near the top.
func (v *Visibility) Hovering() bool {
	return v.State() == StateHoveringRevealed
}

// PendingHide reports whether a hide debounce is armed.
func (v *Visibility) PendingHide() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.slot.Pending()
}

// Close cancels the pending hide timer. Later events are ignored.
func (v *Visibility) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closed = true
	v.slot.Cancel()
}
