// Package tui implements the hirewatch terminal dashboard.
package tui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/hirewatch/internal/core/clock"
	"github.com/colonyops/hirewatch/internal/core/config"
	"github.com/colonyops/hirewatch/internal/core/header"
	"github.com/colonyops/hirewatch/internal/core/logging"
	"github.com/colonyops/hirewatch/internal/core/metrics"
	"github.com/colonyops/hirewatch/internal/core/notify"
	"github.com/colonyops/hirewatch/internal/core/styles"
	"github.com/colonyops/hirewatch/internal/core/toast"
	"github.com/colonyops/hirewatch/internal/tui/components"
	tuinotify "github.com/colonyops/hirewatch/internal/tui/notify"
)

const (
	wheelStep     = 3
	footerHeight  = 1
	demoFeedSize  = 120
	stickyTimeout = time.Duration(-1) // negative duration requests an untimed toast
)

// Options configures the TUI.
type Options struct {
	Clock      clock.Clock      // defaults to the real clock
	Metrics    *metrics.Metrics // optional
	Candidates []Candidate      // defaults to SampleCandidates
	Simulate   time.Duration    // interval of simulated pipeline events; 0 disables
	Warnings   []string         // startup warnings shown as warning toasts
	Notices    []string         // startup messages shown as info toasts
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	keys KeyMap
	log  zerolog.Logger

	toasts *toast.Manager
	header *header.Visibility
	bus    *tuinotify.Bus
	events *EventBuffer
	sim    *PipelineSimulator
	frames frameLoop

	feed     feed
	width    int
	height   int
	pointerX int
	pointerY int
	pointer  bool   // a pointer position has been reported
	hovered  string // id of the toast under the pointer
	warnings []string
	notices  []string
	showHelp bool
	quitting bool
}

// New builds the model and its components. The caller must eventually call
// Close (the model also disposes itself when the user quits).
func New(cfg *config.Config, opts Options) Model {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Candidates == nil {
		opts.Candidates = SampleCandidates(demoFeedSize)
	}

	events := NewEventBuffer()

	toastLog := logging.Component("toast")
	toasts := toast.New(toast.Options{
		Clock:             opts.Clock,
		Durations:         cfg.Toasts.Durations,
		MaxVisible:        cfg.Toasts.MaxVisible,
		DisableHoverPause: !cfg.Toasts.PauseOnHover,
		Logger:            &toastLog,
		Recorder:          opts.Metrics,
		OnChange:          events.MarkChanged,
	})

	headerLog := logging.Component("header")
	vis := header.New(cfg.Header, header.Options{
		Clock:    opts.Clock,
		Logger:   &headerLog,
		Recorder: opts.Metrics,
		OnChange: func(header.State) { events.MarkChanged() },
	})

	bus := tuinotify.NewBus()
	bus.Subscribe(func(n notify.Notification) {
		showNotification(toasts, n)
	})

	return Model{
		keys:     DefaultKeyMap(),
		log:      logging.Component("tui"),
		toasts:   toasts,
		header:   vis,
		bus:      bus,
		events:   events,
		sim:      NewPipelineSimulator(opts.Clock, opts.Simulate, opts.Candidates, events),
		frames:   newFrameLoop(cfg.Toasts.FrameInterval),
		feed:     feed{rows: opts.Candidates},
		warnings: opts.Warnings,
		notices:  opts.Notices,
	}
}

// showNotification maps a bus notification onto the manager. A zero
// Duration keeps the kind default.
func showNotification(m *toast.Manager, n notify.Notification) string {
	opts := []toast.Option{toast.WithDetail(n.Detail)}
	if n.Duration != 0 {
		opts = append(opts, toast.WithDuration(n.Duration))
	}
	return m.Show(n.Kind, n.Title, opts...)
}

// Toasts exposes the toast manager.
func (m Model) Toasts() *toast.Manager { return m.toasts }

// Header exposes the header visibility state machine.
func (m Model) Header() *header.Visibility { return m.header }

// Bus exposes the notification bus.
func (m Model) Bus() *tuinotify.Bus { return m.bus }

// Close stops every timer owned by the model. It is safe to call twice.
func (m *Model) Close() {
	m.frames.Stop()
	m.sim.Stop()
	m.toasts.Close()
	m.header.Close()
}

// Init starts the event bridge and surfaces startup messages.
func (m Model) Init() tea.Cmd {
	for _, w := range m.warnings {
		m.bus.Warnf("%s", w)
	}
	for _, n := range m.notices {
		m.bus.Infof("%s", n)
	}
	m.sim.Start()

	return m.events.WaitForSignal()
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scrollTo(m.feed.offset)
		return m, nil

	case eventsMsg:
		return m.handleEvents()

	case frameMsg:
		if !m.frames.Current(msg) {
			return m, nil
		}
		if !m.toasts.Running() {
			m.frames.Stop()
			return m, nil
		}
		return m, m.frames.Next(msg)

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseWheelMsg:
		mouse := msg.Mouse()
		m.trackPointer(mouse.X, mouse.Y)
		switch mouse.Button {
		case tea.MouseWheelUp:
			m.scrollTo(m.feed.offset - wheelStep)
		case tea.MouseWheelDown:
			m.scrollTo(m.feed.offset + wheelStep)
		}
		return m, m.syncFrames()

	case tea.MouseMotionMsg:
		mouse := msg.Mouse()
		m.trackPointer(mouse.X, mouse.Y)
		return m, m.syncFrames()

	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		m.trackPointer(mouse.X, mouse.Y)
		if mouse.Button == tea.MouseLeft {
			if id := toastAt(m.layout(), mouse.X, mouse.Y); id != "" {
				m.toasts.Dismiss(id)
				m.refreshHover()
			}
		}
		return m, m.syncFrames()

	case tea.BlurMsg:
		m.pointerGone()
		return m, m.syncFrames()
	}

	return m, nil
}

func (m Model) handleEvents() (tea.Model, tea.Cmd) {
	pending, changed := m.events.Drain()
	m.log.Trace().Int("notifications", len(pending)).Bool("changed", changed).Msg("events drained")
	for _, n := range pending {
		m.bus.Publish(n)
	}
	// Toasts may have moved under a stationary pointer.
	m.refreshHover()

	return m, tea.Batch(m.events.WaitForSignal(), m.syncFrames())
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	page := max(m.bodyHeight()-1, 1)

	if key.Matches(msg, m.keys.Quit) {
		m.log.Debug().Int("toasts", m.toasts.Len()).Msg("quit requested")
		m.quitting = true
		m.Close()
		return m, tea.Quit
	}

	// The help dialog swallows everything except its own close keys.
	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.CloseHelp) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.scrollTo(m.feed.offset - 1)
	case key.Matches(msg, m.keys.Down):
		m.scrollTo(m.feed.offset + 1)
	case key.Matches(msg, m.keys.PageUp):
		m.scrollTo(m.feed.offset - page)
	case key.Matches(msg, m.keys.PageDown):
		m.scrollTo(m.feed.offset + page)
	case key.Matches(msg, m.keys.Top):
		m.scrollTo(0)
	case key.Matches(msg, m.keys.Bottom):
		m.scrollTo(m.feed.maxOffset(m.bodyHeight()))
	case key.Matches(msg, m.keys.Success):
		m.demo(notify.KindSuccess, 0)
	case key.Matches(msg, m.keys.Error):
		m.demo(notify.KindError, 0)
	case key.Matches(msg, m.keys.Warning):
		m.demo(notify.KindWarning, 0)
	case key.Matches(msg, m.keys.Info):
		m.demo(notify.KindInfo, 0)
	case key.Matches(msg, m.keys.Sticky):
		m.demo(notify.KindInfo, stickyTimeout)
	case key.Matches(msg, m.keys.Dismiss):
		m.toasts.DismissNewest()
		m.refreshHover()
	case key.Matches(msg, m.keys.DismissAll):
		m.toasts.DismissAll()
		m.refreshHover()
	default:
		return m, nil
	}

	return m, m.syncFrames()
}

// demo publishes a toast about the candidate at the top of the viewport.
func (m *Model) demo(kind notify.Kind, d time.Duration) {
	var c Candidate
	if len(m.feed.rows) > 0 {
		c = m.feed.rows[m.feed.offset]
	}

	n := notify.Notification{Kind: kind, Duration: d, Detail: c.Role}
	switch kind {
	case notify.KindSuccess:
		n.Title = fmt.Sprintf("%s moved to offer", c.Name)
	case notify.KindError:
		n.Title = fmt.Sprintf("Could not reach %s", c.Name)
	case notify.KindWarning:
		n.Title = fmt.Sprintf("%s: feedback overdue", c.Name)
	default:
		n.Title = fmt.Sprintf("%s viewed the job post", c.Name)
	}
	if d < 0 {
		n.Title = fmt.Sprintf("Pinned: %s", c.Name)
	}

	m.bus.Publish(n)
	m.refreshHover()
}

// scrollTo moves the feed and reports the new offset to the header. The
// header sees every scroll event, including ones clamped to the same offset.
func (m *Model) scrollTo(offset int) {
	m.feed.scrollTo(offset, m.bodyHeight())
	m.header.Scroll(m.feed.offset)
}

func (m *Model) trackPointer(x, y int) {
	m.pointerX, m.pointerY, m.pointer = x, y, true
	m.header.PointerMove(y)
	m.refreshHover()
}

func (m *Model) pointerGone() {
	m.pointer = false
	m.header.PointerLeave()
	m.refreshHover()
}

// refreshHover pauses the toast under the pointer and resumes the one the
// pointer left.
func (m *Model) refreshHover() {
	id := ""
	if m.pointer {
		id = toastAt(m.layout(), m.pointerX, m.pointerY)
	}
	if id == m.hovered {
		return
	}

	if m.hovered != "" {
		m.toasts.Resume(m.hovered)
	}
	if id != "" {
		m.toasts.Pause(id)
	}
	m.hovered = id
}

// syncFrames keeps the frame loop running exactly while a toast counts down.
func (m *Model) syncFrames() tea.Cmd {
	if m.quitting {
		return nil
	}
	if m.toasts.Running() {
		return m.frames.Ensure()
	}
	m.frames.Stop()
	return nil
}

// bodyHeight is the feed viewport with the header shown, which is the
// smaller of the two layouts.
func (m Model) bodyHeight() int {
	return max(m.height-headerHeight-footerHeight, 1)
}

func (m Model) layout() []toastBox {
	return layoutToasts(m.toasts.Toasts(), m.width, m.height)
}

// View renders the dashboard.
func (m Model) View() tea.View {
	if m.width == 0 || m.height == 0 || m.quitting {
		return tea.NewView("")
	}

	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	v.ReportFocus = true
	return v
}

func (m Model) render() string {
	var b strings.Builder

	bodyRows := m.height - footerHeight
	if m.header.Visible() {
		b.WriteString(renderHeader(m.width, len(m.feed.rows), m.feed.offset, m.header.Hovering()))
		b.WriteString("\n")
		bodyRows -= headerHeight
	}
	if bodyRows > 0 {
		b.WriteString(m.feed.render(m.width, bodyRows))
		b.WriteString("\n")
	}
	b.WriteString(styles.FeedFooterStyle.Render(fit(helpLine(m.keys.ShortHelp()), m.width)))

	out := overlayToasts(b.String(), m.layout())
	if m.showHelp {
		out = components.NewHelpDialog("hirewatch keys", m.keys.FullHelp()...).Overlay(out, m.width, m.height)
	}
	return out
}
