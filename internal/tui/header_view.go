package tui

import (
	"fmt"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/hirewatch/internal/core/styles"
)

// headerHeight is the number of rows the header occupies while visible.
const headerHeight = 2

var headerTabs = []string{"Pipeline", "Interviews", "Offers"}

// renderHeader draws the title bar and divider. peek marks a header shown
// only because the pointer is in the hover zone.
func renderHeader(width, candidates, offset int, peek bool) string {
	if width <= 0 {
		return ""
	}

	left := styles.HeaderTitleStyle.Render("hirewatch") + styles.HeaderTabStyle.Render("  "+strings.Join(headerTabs, "  "))
	if peek {
		left += styles.HeaderHoverStyle.Render("  (peek)")
	}
	right := styles.HeaderTabStyle.Render(fmt.Sprintf("%d candidates · row %d", candidates, offset+1))

	inner := max(width-2, 0) // HeaderStyle padding
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	var title string
	if gap >= 1 {
		title = left + styles.HeaderTabStyle.Render(strings.Repeat(" ", gap)) + right
	} else {
		title = ansi.Truncate(left, inner, "…")
	}

	bar := styles.HeaderStyle.Render(title)
	divider := styles.HeaderDividerLine.Render(strings.Repeat("─", width))
	return bar + "\n" + divider
}
