package tui

import (
	"math"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/hirewatch/internal/core/styles"
	"github.com/colonyops/hirewatch/internal/core/toast"
)

const (
	toastWidth       = 44 // content width, excluding border and padding
	toastFooterSpace = 1  // rows kept free for the help line
)

// toastBox is a rendered toast and its position on screen.
type toastBox struct {
	toast  toast.Toast
	render string
	x, y   int
	w, h   int
}

func (b toastBox) contains(x, y int) bool {
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

// layoutToasts stacks toasts in the lower-right corner, oldest at the top
// and newest at the bottom, directly above the help line.
func layoutToasts(toasts []toast.Toast, width, height int) []toastBox {
	if len(toasts) == 0 {
		return nil
	}

	boxes := make([]toastBox, len(toasts))
	total := 0
	for i, t := range toasts {
		r := renderToast(t)
		boxes[i] = toastBox{toast: t, render: r, w: lipgloss.Width(r), h: lipgloss.Height(r)}
		total += boxes[i].h
	}

	y := max(height-toastFooterSpace-total, 0)
	for i := range boxes {
		boxes[i].x = max(width-boxes[i].w-1, 0)
		boxes[i].y = y
		y += boxes[i].h
	}
	return boxes
}

// toastAt returns the id of the toast under (x, y), or "".
func toastAt(boxes []toastBox, x, y int) string {
	for _, b := range boxes {
		if b.contains(x, y) {
			return b.toast.ID
		}
	}
	return ""
}

func renderToast(t toast.Toast) string {
	title := styles.KindIcon(t.Kind) + " " + t.Title
	lines := []string{styles.ToastTitleStyle.Render(fit(title, toastWidth))}
	if t.Detail != "" {
		lines = append(lines, styles.ToastDetailStyle.Render(fit(t.Detail, toastWidth)))
	}
	lines = append(lines, renderProgress(t, toastWidth))

	return styles.ToastStyle(t.Kind).Render(strings.Join(lines, "\n"))
}

// renderProgress draws the countdown bar. Its colour fades from the kind
// accent towards the muted colour as the toast runs out.
func renderProgress(t toast.Toast, width int) string {
	if !t.Timed() {
		return styles.ToastPausedStyle.Render(fit(styles.IconPinned+" stays until dismissed", width))
	}

	label := ""
	if t.Paused {
		label = " " + styles.IconPaused + " paused"
	}
	barWidth := max(width-ansi.StringWidth(label), 0)

	filled := int(math.Round(t.Progress * float64(barWidth)))
	filled = min(max(filled, 0), barWidth)

	accent := styles.Blend(styles.KindColor(t.Kind), styles.CurrentPalette.Muted, 1-t.Progress)
	bar := lipgloss.NewStyle().Foreground(accent).Render(strings.Repeat(styles.BarFilled, filled)) +
		styles.TextMutedStyle.Render(strings.Repeat(styles.BarEmpty, barWidth-filled))

	if label != "" {
		bar += styles.ToastPausedStyle.Render(label)
	}
	return bar
}

// fit truncates s to w cells and pads it so every toast has the same width.
func fit(s string, w int) string {
	s = ansi.Truncate(s, w, "…")
	return s + strings.Repeat(" ", max(w-ansi.StringWidth(s), 0))
}

// overlayToasts composites the toast boxes over background.
func overlayToasts(background string, boxes []toastBox) string {
	if len(boxes) == 0 {
		return background
	}

	layers := make([]*lipgloss.Layer, 0, len(boxes)+1)
	layers = append(layers, lipgloss.NewLayer(background))
	for _, b := range boxes {
		layers = append(layers, lipgloss.NewLayer(b.render).X(b.x).Y(b.y).Z(2))
	}

	return lipgloss.NewCompositor(layers...).Render()
}
