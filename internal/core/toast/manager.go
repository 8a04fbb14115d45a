// Package toast manages transient notifications, each with an independent
// countdown that can be paused while hovered and resumed afterwards.
package toast

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/hirewatch/internal/core/clock"
	"github.com/colonyops/hirewatch/internal/core/logging"
	"github.com/colonyops/hirewatch/internal/core/notify"
)

// DefaultMaxVisible is the number of toasts kept before the oldest is
// evicted.
const DefaultMaxVisible = 5

// Reason describes why a toast left the active collection.
type Reason string

const (
	ReasonExpired   Reason = "expired"
	ReasonDismissed Reason = "dismissed"
	ReasonEvicted   Reason = "evicted"
	ReasonClosed    Reason = "closed"
)

// Recorder receives lifecycle counts. *metrics.Metrics implements it.
type Recorder interface {
	ToastShown(kind notify.Kind)
	ToastRemoved(kind notify.Kind, reason string)
	ToastPaused(kind notify.Kind)
}

// Options configures a Manager.
type Options struct {
	Clock     clock.Clock      // defaults to clock.Real()
	Durations notify.Durations // zero value uses notify.DefaultDurations()

	// MaxVisible caps the active collection; the oldest toast is evicted
	// when it is exceeded. Zero uses DefaultMaxVisible, negative disables
	// the cap.
	MaxVisible int

	// DisableHoverPause turns Pause into a no-op.
	DisableHoverPause bool

	Logger   *zerolog.Logger
	Recorder Recorder

	// OnChange runs after every change to the active collection or to a
	// toast's paused state, including timer-driven expiry. It is called
	// without any Manager lock held and may run on a timer goroutine.
	OnChange func()

	// OnShow runs once per new toast with its snapshot at creation. It is
	// called with the Manager lock held, so it always precedes the toast's
	// OnRemove and must not call back into the Manager.
	OnShow func(Toast)

	// OnRemove runs once per removed toast with its final snapshot.
	OnRemove func(Toast, Reason)
}

// Toast is a point-in-time view of an active notification.
type Toast struct {
	ID        string
	Kind      notify.Kind
	Title     string
	Detail    string
	CreatedAt time.Time
	Total     time.Duration
	Remaining time.Duration
	Progress  float64 // remaining/total in [0,1]; 1 for untimed toasts
	Paused    bool
}

// Timed reports whether the toast dismisses itself.
func (t Toast) Timed() bool {
	return t.Total > 0
}

type entry struct {
	n         notify.Notification
	remaining time.Duration
	startedAt time.Time
	paused    bool
	slot      *clock.Slot
}

func (e *entry) remainingAt(now time.Time) time.Duration {
	if !e.n.Timed() {
		return 0
	}
	if e.paused {
		return e.remaining
	}
	return max(e.remaining-now.Sub(e.startedAt), 0)
}

func (e *entry) snapshot(now time.Time) Toast {
	t := Toast{
		ID:        e.n.ID,
		Kind:      e.n.Kind,
		Title:     e.n.Title,
		Detail:    e.n.Detail,
		CreatedAt: e.n.CreatedAt,
		Total:     max(e.n.Duration, 0),
		Paused:    e.paused,
		Progress:  1,
	}
	if e.n.Timed() {
		t.Remaining = e.remainingAt(now)
		t.Progress = min(max(float64(t.Remaining)/float64(t.Total), 0), 1)
	}
	return t
}

type removal struct {
	toast  Toast
	reason Reason
}

// Manager owns the active toasts. It is safe for concurrent use.
type Manager struct {
	clock      clock.Clock
	durations  notify.Durations
	maxVisible int
	hoverPause bool
	log        zerolog.Logger
	rec        Recorder
	onChange   func()
	onShow     func(Toast)
	onRemove   func(Toast, Reason)

	mu      sync.Mutex
	entries []*entry
	closed  bool
}

// New creates a Manager. Call Close when done to release pending timers.
func New(opts Options) *Manager {
	m := &Manager{
		clock:      opts.Clock,
		durations:  opts.Durations,
		maxVisible: opts.MaxVisible,
		hoverPause: !opts.DisableHoverPause,
		rec:        opts.Recorder,
		onChange:   opts.OnChange,
		onShow:     opts.OnShow,
		onRemove:   opts.OnRemove,
	}

	if m.clock == nil {
		m.clock = clock.Real()
	}
	if m.durations == (notify.Durations{}) {
		m.durations = notify.DefaultDurations()
	}
	if m.maxVisible == 0 {
		m.maxVisible = DefaultMaxVisible
	}
	if opts.Logger != nil {
		m.log = *opts.Logger
	} else {
		m.log = logging.Component("toast")
	}

	return m
}

// Option customizes a single Show call.
type Option func(*request)

type request struct {
	detail      string
	duration    time.Duration
	hasDuration bool
}

// WithDetail sets the secondary text.
func WithDetail(detail string) Option {
	return func(r *request) {
		r.detail = detail
	}
}

// WithDuration overrides the kind's default lifetime. Zero or negative
// keeps the toast until it is dismissed.
func WithDuration(d time.Duration) Option {
	return func(r *request) {
		r.duration = d
		r.hasDuration = true
	}
}

// Show adds a toast and starts its countdown. It returns the new toast's
// id, or "" once the Manager is closed.
func (m *Manager) Show(kind notify.Kind, title string, opts ...Option) string {
	if !kind.IsValid() {
		kind = notify.KindInfo
	}

	var req request
	for _, opt := range opts {
		opt(&req)
	}
	if !req.hasDuration {
		req.duration = m.durations.For(kind)
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ""
	}

	now := m.clock.Now()
	e := &entry{
		n: notify.Notification{
			ID:        uuid.NewString(),
			Kind:      kind,
			Title:     title,
			Detail:    req.detail,
			Duration:  req.duration,
			CreatedAt: now,
		},
		remaining: max(req.duration, 0),
		slot:      clock.NewSlot(m.clock),
	}
	m.entries = append(m.entries, e)
	m.start(e, now)
	if m.rec != nil {
		m.rec.ToastShown(kind)
	}
	if m.onShow != nil {
		m.onShow(e.snapshot(now))
	}

	var removed []removal
	if m.maxVisible > 0 && len(m.entries) > m.maxVisible {
		victims := slices.Clone(m.entries[:len(m.entries)-m.maxVisible])
		for _, old := range victims {
			removed = append(removed, m.removeLocked(old, ReasonEvicted, now))
		}
	}
	m.mu.Unlock()

	m.log.Debug().
		Str("id", e.n.ID).
		Str("kind", string(kind)).
		Dur("duration", req.duration).
		Msg("toast shown")

	m.finish(removed...)
	return e.n.ID
}

// ShowSuccess shows a success toast with the success default lifetime.
func (m *Manager) ShowSuccess(title string, opts ...Option) string {
	return m.Show(notify.KindSuccess, title, opts...)
}

// ShowError shows an error toast with the error default lifetime.
func (m *Manager) ShowError(title string, opts ...Option) string {
	return m.Show(notify.KindError, title, opts...)
}

// ShowWarning shows a warning toast with the warning default lifetime.
func (m *Manager) ShowWarning(title string, opts ...Option) string {
	return m.Show(notify.KindWarning, title, opts...)
}

// ShowInfo shows an info toast with the info default lifetime.
func (m *Manager) ShowInfo(title string, opts ...Option) string {
	return m.Show(notify.KindInfo, title, opts...)
}

// Dismiss removes the toast immediately. Unknown or already removed ids are
// ignored; the result reports whether anything was removed.
func (m *Manager) Dismiss(id string) bool {
	m.mu.Lock()
	e := m.find(id)
	if e == nil {
		m.mu.Unlock()
		return false
	}
	r := m.removeLocked(e, ReasonDismissed, m.clock.Now())
	m.mu.Unlock()

	m.finish(r)
	return true
}

// DismissNewest removes the most recently shown toast.
func (m *Manager) DismissNewest() bool {
	m.mu.Lock()
	if len(m.entries) == 0 {
		m.mu.Unlock()
		return false
	}
	r := m.removeLocked(m.entries[len(m.entries)-1], ReasonDismissed, m.clock.Now())
	m.mu.Unlock()

	m.finish(r)
	return true
}

// DismissAll removes every active toast.
func (m *Manager) DismissAll() {
	m.mu.Lock()
	removed := m.drainLocked(ReasonDismissed)
	m.mu.Unlock()

	m.finish(removed...)
}

// Pause freezes the toast's countdown. Pausing an unknown or already paused
// toast is a no-op.
func (m *Manager) Pause(id string) bool {
	if !m.hoverPause {
		return false
	}

	m.mu.Lock()
	e := m.find(id)
	if e == nil || e.paused {
		m.mu.Unlock()
		return false
	}

	if e.n.Timed() {
		e.remaining = e.remainingAt(m.clock.Now())
		e.slot.Cancel()
	}
	e.paused = true
	remaining := e.remaining
	if m.rec != nil {
		m.rec.ToastPaused(e.n.Kind)
	}
	m.mu.Unlock()

	m.log.Debug().Str("id", id).Dur("remaining", remaining).Msg("toast paused")
	m.finish()
	return true
}

// Resume restarts a paused countdown from the time it had left. A toast
// whose time ran out before the pause is removed immediately.
func (m *Manager) Resume(id string) bool {
	m.mu.Lock()
	e := m.find(id)
	if e == nil || !e.paused {
		m.mu.Unlock()
		return false
	}

	now := m.clock.Now()
	e.paused = false
	remaining := e.remaining

	var removed []removal
	if e.n.Timed() && e.remaining == 0 {
		removed = append(removed, m.removeLocked(e, ReasonExpired, now))
	} else {
		m.start(e, now)
	}
	m.mu.Unlock()

	m.log.Debug().Str("id", id).Dur("remaining", remaining).Msg("toast resumed")
	m.finish(removed...)
	return true
}

// Toasts returns a snapshot of the active toasts in insertion order.
func (m *Manager) Toasts() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	out := make([]Toast, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.snapshot(now))
	}
	return out
}

// Get returns the snapshot of a single toast.
func (m *Manager) Get(id string) (Toast, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.find(id)
	if e == nil {
		return Toast{}, false
	}
	return e.snapshot(m.clock.Now()), true
}

// Progress returns the toast's progress fraction.
func (m *Manager) Progress(id string) (float64, bool) {
	t, ok := m.Get(id)
	return t.Progress, ok
}

// Len returns the number of active toasts.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// HasToasts returns true if there are any active toasts.
func (m *Manager) HasToasts() bool {
	return m.Len() > 0
}

// Running reports whether any toast is counting down, i.e. whether the
// progress display needs animation frames.
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entries {
		if e.n.Timed() && !e.paused {
			return true
		}
	}
	return false
}

// Close cancels every pending timer and drops all toasts. Later calls to
// any method are no-ops.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	removed := m.drainLocked(ReasonClosed)
	m.mu.Unlock()

	if m.onRemove != nil {
		for _, r := range removed {
			m.onRemove(r.toast, r.reason)
		}
	}
}

// start records the (re)start time and arms the expiry timer.
func (m *Manager) start(e *entry, now time.Time) {
	e.startedAt = now
	if e.n.Timed() && e.remaining > 0 {
		e.slot.Schedule(e.remaining, func(tok clock.Token) {
			m.expire(e, tok)
		})
	}
}

func (m *Manager) expire(e *entry, tok clock.Token) {
	m.mu.Lock()
	if !e.slot.Claim(tok) || e.paused {
		m.mu.Unlock()
		return
	}
	e.remaining = 0
	e.startedAt = m.clock.Now()
	r := m.removeLocked(e, ReasonExpired, e.startedAt)
	m.mu.Unlock()

	m.finish(r)
}

func (m *Manager) find(id string) *entry {
	for _, e := range m.entries {
		if e.n.ID == id {
			return e
		}
	}
	return nil
}

func (m *Manager) removeLocked(e *entry, reason Reason, now time.Time) removal {
	e.slot.Cancel()
	snap := e.snapshot(now)
	if reason == ReasonExpired {
		snap.Remaining = 0
		snap.Progress = 0
	}

	m.entries = slices.DeleteFunc(m.entries, func(x *entry) bool { return x == e })
	if m.rec != nil {
		m.rec.ToastRemoved(e.n.Kind, string(reason))
	}
	return removal{toast: snap, reason: reason}
}

func (m *Manager) drainLocked(reason Reason) []removal {
	now := m.clock.Now()
	removed := make([]removal, 0, len(m.entries))
	for len(m.entries) > 0 {
		removed = append(removed, m.removeLocked(m.entries[0], reason, now))
	}
	return removed
}

// finish reports removals and the change signal. Must be called without
// m.mu held.
func (m *Manager) finish(removed ...removal) {
	for _, r := range removed {
		m.log.Debug().
			Str("id", r.toast.ID).
			Str("reason", string(r.reason)).
			Msg("toast removed")
		if m.onRemove != nil {
			m.onRemove(r.toast, r.reason)
		}
	}
	if m.onChange != nil {
		m.onChange()
	}
}
