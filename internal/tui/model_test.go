package tui

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hirewatch/internal/core/clock/clocktest"
	"github.com/colonyops/hirewatch/internal/core/config"
	"github.com/colonyops/hirewatch/internal/core/header"
	"github.com/colonyops/hirewatch/internal/core/notify"
	"github.com/colonyops/hirewatch/pkg/tuitest"
)

const (
	testWidth  = 100
	testHeight = 30
)

type testModel struct {
	Model
	clock *clocktest.Clock
}

func newTestModel(t *testing.T, mutate ...func(*config.Config, *Options)) *testModel {
	t.Helper()

	cfg := config.DefaultConfig()
	opts := Options{
		Clock:      clocktest.New(time.Unix(0, 0)),
		Candidates: SampleCandidates(60),
	}
	for _, fn := range mutate {
		fn(&cfg, &opts)
	}

	tm := &testModel{Model: New(&cfg, opts), clock: opts.Clock.(*clocktest.Clock)}
	t.Cleanup(func() { tm.Close() })

	tm.send(t, tuitest.WindowSize(testWidth, testHeight))
	return tm
}

func (tm *testModel) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	updated, cmd := tm.Update(msg)
	m, ok := updated.(Model)
	require.True(t, ok)
	tm.Model = m
	return cmd
}

// firstBox returns the on-screen box of the oldest toast.
func (tm *testModel) firstBox(t *testing.T) toastBox {
	t.Helper()
	boxes := tm.layout()
	require.NotEmpty(t, boxes)
	return boxes[0]
}

func TestModel_demo_keys_show_toasts(t *testing.T) {
	tm := newTestModel(t)

	keys := map[rune]notify.Kind{
		's': notify.KindSuccess,
		'e': notify.KindError,
		'w': notify.KindWarning,
		'i': notify.KindInfo,
	}
	for r, kind := range keys {
		tm.send(t, tuitest.KeyPress(r))
		toasts := tm.Toasts().Toasts()
		require.NotEmpty(t, toasts)
		assert.Equal(t, kind, toasts[len(toasts)-1].Kind, "key %q", r)
	}

	assert.Equal(t, 4, tm.Toasts().Len())
	assert.True(t, tm.frames.Running())
}

func TestModel_render_shows_toast_over_feed(t *testing.T) {
	tm := newTestModel(t)
	tm.send(t, tuitest.KeyPress('s'))

	lines := tuitest.Lines(tm.render())
	require.Len(t, lines, testHeight)
	assert.Contains(t, lines[0], "hirewatch")

	want := tm.feed.rows[0].Name + " moved to offer"
	box := tm.firstBox(t)
	assert.Contains(t, lines[box.y+1], want)
}

func TestModel_toast_expires_and_frame_loop_stops(t *testing.T) {
	tm := newTestModel(t)
	tm.send(t, tuitest.KeyPress('s'))
	require.True(t, tm.frames.Running())

	tm.clock.Advance(2 * time.Second)
	assert.Equal(t, 0, tm.Toasts().Len())

	tm.send(t, eventsMsg{})
	assert.False(t, tm.frames.Running())
}

func TestModel_stale_frame_is_dropped(t *testing.T) {
	tm := newTestModel(t)
	tm.send(t, tuitest.KeyPress('s'))
	stale := frameMsg{gen: tm.frames.gen}

	tm.send(t, tuitest.KeyPress('X'))
	require.False(t, tm.frames.Running())

	assert.Nil(t, tm.send(t, stale))
	assert.False(t, tm.frames.Running())
}

func TestModel_frame_keeps_ticking_while_running(t *testing.T) {
	tm := newTestModel(t)
	tm.send(t, tuitest.KeyPress('s'))

	cmd := tm.send(t, frameMsg{gen: tm.frames.gen})
	assert.NotNil(t, cmd)
	assert.True(t, tm.frames.Running())
}

func TestModel_hover_pauses_and_resumes(t *testing.T) {
	tm := newTestModel(t)
	tm.send(t, tuitest.KeyPress('s'))
	box := tm.firstBox(t)
	id := box.toast.ID

	tm.send(t, tuitest.MouseMove(box.x+2, box.y+1))
	got, ok := tm.Toasts().Get(id)
	require.True(t, ok)
	assert.True(t, got.Paused)
	assert.False(t, tm.frames.Running(), "nothing counts down while paused")

	tm.clock.Advance(time.Minute)
	_, ok = tm.Toasts().Get(id)
	assert.True(t, ok, "paused toast survives")

	tm.send(t, tuitest.MouseMove(0, 10))
	got, _ = tm.Toasts().Get(id)
	assert.False(t, got.Paused)
	assert.True(t, tm.frames.Running())

	tm.clock.Advance(2 * time.Second)
	assert.Equal(t, 0, tm.Toasts().Len())
}

func TestModel_hover_pause_disabled(t *testing.T) {
	tm := newTestModel(t, func(cfg *config.Config, _ *Options) {
		cfg.Toasts.PauseOnHover = false
	})
	tm.send(t, tuitest.KeyPress('s'))
	box := tm.firstBox(t)

	tm.send(t, tuitest.MouseMove(box.x+1, box.y+1))
	got, _ := tm.Toasts().Get(box.toast.ID)
	assert.False(t, got.Paused)
}

func TestModel_blur_resumes_hovered_toast(t *testing.T) {
	tm := newTestModel(t)
	tm.send(t, tuitest.KeyPress('w'))
	box := tm.firstBox(t)

	tm.send(t, tuitest.MouseMove(box.x+1, box.y+1))
	tm.send(t, tea.BlurMsg{})

	got, _ := tm.Toasts().Get(box.toast.ID)
	assert.False(t, got.Paused)
}

func TestModel_click_dismisses_toast(t *testing.T) {
	tm := newTestModel(t)
	tm.send(t, tuitest.KeyPress('e'))
	tm.send(t, tuitest.KeyPress('i'))
	box := tm.firstBox(t)

	tm.send(t, tuitest.MouseClick(box.x+1, box.y+1))

	require.Equal(t, 1, tm.Toasts().Len())
	assert.Equal(t, notify.KindInfo, tm.Toasts().Toasts()[0].Kind)
}

func TestModel_dismiss_keys(t *testing.T) {
	tm := newTestModel(t)
	tm.send(t, tuitest.KeyPress('e'))
	tm.send(t, tuitest.KeyPress('i'))

	tm.send(t, tuitest.KeyPress('x'))
	require.Equal(t, 1, tm.Toasts().Len())
	assert.Equal(t, notify.KindError, tm.Toasts().Toasts()[0].Kind, "newest goes first")

	tm.send(t, tuitest.KeyPress('w'))
	tm.send(t, tuitest.KeyPress('X'))
	assert.Equal(t, 0, tm.Toasts().Len())
	assert.False(t, tm.frames.Running())
}

func TestModel_sticky_toast_never_expires(t *testing.T) {
	tm := newTestModel(t)
	tm.send(t, tuitest.KeyPress('t'))

	assert.False(t, tm.frames.Running(), "untimed toasts need no frames")
	tm.clock.Advance(time.Hour)
	require.Equal(t, 1, tm.Toasts().Len())
	assert.False(t, tm.Toasts().Toasts()[0].Timed())
}

func TestModel_scroll_drives_header(t *testing.T) {
	tm := newTestModel(t)
	hideDelay := header.DefaultConfig().HideDelay

	tm.send(t, tuitest.KeyPgDown())
	assert.Equal(t, header.StatePendingHide, tm.Header().State())
	assert.True(t, tm.Header().Visible())

	tm.clock.Advance(hideDelay)
	assert.False(t, tm.Header().Visible())
	assert.NotContains(t, tuitest.Lines(tm.render())[0], "hirewatch")

	tm.send(t, tuitest.KeyUp())
	assert.True(t, tm.Header().Visible(), "upward scroll reveals")

	tm.send(t, tuitest.KeyPress('G'))
	tm.clock.Advance(hideDelay)
	require.False(t, tm.Header().Visible())

	tm.send(t, tuitest.KeyHome())
	assert.Equal(t, 0, tm.feed.offset)
	assert.Equal(t, header.StateVisible, tm.Header().State())
}

func TestModel_wheel_scrolls_feed(t *testing.T) {
	tm := newTestModel(t)

	tm.send(t, tuitest.WheelDown(10, 10))
	assert.Equal(t, wheelStep, tm.feed.offset)
	assert.True(t, tm.Header().Visible(), "within the top threshold")

	tm.send(t, tuitest.WheelDown(10, 10))
	assert.Equal(t, 2*wheelStep, tm.feed.offset)
	assert.Equal(t, header.StatePendingHide, tm.Header().State())

	tm.send(t, tuitest.WheelUp(10, 10))
	assert.Equal(t, wheelStep, tm.feed.offset)
	assert.Equal(t, header.StateVisible, tm.Header().State())
}

func TestModel_hover_zone_reveals_header(t *testing.T) {
	tm := newTestModel(t)
	tm.send(t, tuitest.MouseMove(50, 15))
	tm.send(t, tuitest.KeyPgDown())
	tm.clock.Advance(time.Second)
	require.False(t, tm.Header().Visible())

	tm.send(t, tuitest.MouseMove(50, 0))
	assert.True(t, tm.Header().Hovering())
	assert.Contains(t, tuitest.Lines(tm.render())[0], "(peek)")

	tm.send(t, tuitest.MouseMove(50, 15))
	tm.clock.Advance(time.Second)
	assert.False(t, tm.Header().Visible())
}

func TestModel_bus_durations(t *testing.T) {
	tm := newTestModel(t)

	tm.Bus().Publish(notify.Notification{Kind: notify.KindError, Title: "default"})
	tm.Bus().Publish(notify.Notification{Kind: notify.KindInfo, Title: "custom", Duration: 10 * time.Second})
	tm.Bus().Publish(notify.Notification{Kind: notify.KindWarning, Title: "sticky", Duration: -1})

	toasts := tm.Toasts().Toasts()
	require.Len(t, toasts, 3)
	assert.Equal(t, 4*time.Second, toasts[0].Total)
	assert.Equal(t, 10*time.Second, toasts[1].Total)
	assert.False(t, toasts[2].Timed())
}

func TestModel_events_from_background(t *testing.T) {
	tm := newTestModel(t, func(_ *config.Config, opts *Options) {
		opts.Simulate = time.Second
	})
	tm.Init()

	tm.clock.Advance(time.Second)
	assert.Equal(t, 0, tm.Toasts().Len(), "delivered on the update loop only")

	cmd := tm.send(t, eventsMsg{})
	assert.NotNil(t, cmd)
	require.Equal(t, 1, tm.Toasts().Len())
	assert.True(t, tm.frames.Running())
}

func TestModel_Init_shows_startup_messages(t *testing.T) {
	tm := newTestModel(t, func(_ *config.Config, opts *Options) {
		opts.Warnings = []string{"config toasts.pause_on_hover: toasts keep counting down under the pointer"}
		opts.Notices = []string{"Debug server listening on 127.0.0.1:6060"}
	})
	tm.Init()

	toasts := tm.Toasts().Toasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, notify.KindWarning, toasts[0].Kind)
	assert.Equal(t, notify.KindInfo, toasts[1].Kind)
	assert.Equal(t, "Debug server listening on 127.0.0.1:6060", toasts[1].Title)
}

func TestModel_quit_disposes_components(t *testing.T) {
	tm := newTestModel(t)
	tm.send(t, tuitest.KeyPress('s'))
	tm.send(t, tuitest.KeyPgDown())
	require.Equal(t, 2, tm.clock.Active())

	cmd := tm.send(t, tuitest.KeyPress('q'))
	require.NotNil(t, cmd)

	assert.Equal(t, 0, tm.clock.Active(), "no timers outlive the model")
	assert.False(t, tm.frames.Running())
	assert.Equal(t, 0, tm.Toasts().Len())
}

func TestModel_View(t *testing.T) {
	tm := newTestModel(t)

	v := tm.View()
	assert.True(t, v.AltScreen)
	assert.Equal(t, tea.MouseModeAllMotion, v.MouseMode)

	empty := New(func() *config.Config { c := config.DefaultConfig(); return &c }(), Options{Clock: tm.clock})
	defer empty.Close()
	assert.False(t, empty.View().AltScreen, "nothing to draw before the first size")
}

func TestModel_help_dialog(t *testing.T) {
	tm := newTestModel(t)

	tm.send(t, tuitest.KeyPress('?'))
	assert.Contains(t, tuitest.StripANSI(tm.render()), "hirewatch keys")

	// Other keys are swallowed while the dialog is open.
	tm.send(t, tuitest.KeyPress('s'))
	assert.Zero(t, tm.Toasts().Len())

	tm.send(t, tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape}))
	assert.NotContains(t, tuitest.StripANSI(tm.render()), "hirewatch keys")

	tm.send(t, tuitest.KeyPress('?'))
	tm.send(t, tuitest.KeyPress('?'))
	assert.NotContains(t, tuitest.StripANSI(tm.render()), "hirewatch keys")

	tm.send(t, tuitest.KeyPress('s'))
	assert.Equal(t, 1, tm.Toasts().Len())
}
