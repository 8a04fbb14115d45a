package tui

import (
	"testing"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hirewatch/pkg/tuitest"
)

func TestRenderHeader(t *testing.T) {
	out := renderHeader(80, 42, 9, false)

	lines := tuitest.Lines(out)
	require.Len(t, lines, headerHeight)
	assert.Contains(t, lines[0], "hirewatch")
	assert.Contains(t, lines[0], "42 candidates · row 10")
	assert.NotContains(t, lines[0], "(peek)")
	assert.Equal(t, 80, lipgloss.Width(out))
}

func TestRenderHeader_peek(t *testing.T) {
	assert.Contains(t, tuitest.StripANSI(renderHeader(100, 1, 0, true)), "(peek)")
}

func TestRenderHeader_narrow(t *testing.T) {
	out := renderHeader(12, 42, 0, false)
	assert.LessOrEqual(t, lipgloss.Width(out), 12)
	assert.Empty(t, renderHeader(0, 1, 0, false))
}
