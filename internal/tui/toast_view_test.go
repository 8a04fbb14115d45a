package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hirewatch/internal/core/notify"
	"github.com/colonyops/hirewatch/internal/core/styles"
	"github.com/colonyops/hirewatch/internal/core/toast"
	"github.com/colonyops/hirewatch/pkg/tuitest"
)

func sampleToast(id string, progress float64) toast.Toast {
	return toast.Toast{
		ID:        id,
		Kind:      notify.KindSuccess,
		Title:     "Offer accepted " + id,
		Detail:    "Backend Engineer",
		Total:     2 * time.Second,
		Remaining: time.Duration(progress * float64(2*time.Second)),
		Progress:  progress,
	}
}

func TestRenderProgress_fill(t *testing.T) {
	tests := []struct {
		name     string
		progress float64
		filled   int
	}{
		{"full", 1, 20},
		{"half", 0.5, 10},
		{"empty", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := tuitest.StripANSI(renderProgress(sampleToast("a", tt.progress), 20))
			assert.Equal(t, tt.filled, strings.Count(bar, styles.BarFilled))
			assert.Equal(t, 20-tt.filled, strings.Count(bar, styles.BarEmpty))
		})
	}
}

func TestRenderProgress_paused_and_untimed(t *testing.T) {
	paused := sampleToast("a", 0.5)
	paused.Paused = true
	assert.Contains(t, tuitest.StripANSI(renderProgress(paused, 30)), "paused")

	sticky := toast.Toast{ID: "b", Kind: notify.KindInfo, Title: "sticky", Progress: 1}
	plain := tuitest.StripANSI(renderProgress(sticky, 30))
	assert.Contains(t, plain, "until dismissed")
	assert.NotContains(t, plain, styles.BarFilled)
}

func TestRenderToast_contents(t *testing.T) {
	out := tuitest.StripANSI(renderToast(sampleToast("a", 1)))

	assert.Contains(t, out, styles.IconNotifySuccess+" Offer accepted a")
	assert.Contains(t, out, "Backend Engineer")
}

func TestLayoutToasts_stacks_bottom_right(t *testing.T) {
	toasts := []toast.Toast{sampleToast("old", 1), sampleToast("new", 1)}
	boxes := layoutToasts(toasts, 120, 40)
	require.Len(t, boxes, 2)

	old, newest := boxes[0], boxes[1]
	assert.Equal(t, old.y+old.h, newest.y, "newest directly below oldest")
	assert.Equal(t, 40-toastFooterSpace, newest.y+newest.h, "stack sits on the help line")
	assert.Equal(t, 120-newest.w-1, newest.x)
	assert.Equal(t, toastWidth+4, newest.w, "content plus border and padding")
}

func TestLayoutToasts_small_screen_clamps(t *testing.T) {
	boxes := layoutToasts([]toast.Toast{sampleToast("a", 1)}, 10, 2)
	require.Len(t, boxes, 1)
	assert.Equal(t, 0, boxes[0].x)
	assert.Equal(t, 0, boxes[0].y)

	assert.Nil(t, layoutToasts(nil, 80, 24))
}

func TestToastAt(t *testing.T) {
	boxes := layoutToasts([]toast.Toast{sampleToast("old", 1), sampleToast("new", 1)}, 100, 30)
	old, newest := boxes[0], boxes[1]

	assert.Equal(t, "old", toastAt(boxes, old.x, old.y))
	assert.Equal(t, "new", toastAt(boxes, newest.x+newest.w-1, newest.y+newest.h-1))
	assert.Empty(t, toastAt(boxes, old.x-1, old.y))
	assert.Empty(t, toastAt(boxes, 0, 0))
}

func TestOverlayToasts(t *testing.T) {
	bg := strings.Repeat(strings.Repeat(".", 80)+"\n", 23) + strings.Repeat(".", 80)
	boxes := layoutToasts([]toast.Toast{sampleToast("a", 1)}, 80, 24)

	lines := tuitest.Lines(overlayToasts(bg, boxes))
	require.Len(t, lines, 24)
	assert.Contains(t, lines[boxes[0].y+1], "Offer accepted a")
	assert.Equal(t, strings.Repeat(".", 80), lines[0], "rows above the stack untouched")

	assert.Equal(t, bg, overlayToasts(bg, nil))
}
