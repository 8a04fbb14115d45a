// Package components provides reusable TUI components.
package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/hirewatch/internal/core/styles"
)

const helpKeyWidth = 10

// HelpSection groups bindings under a title. An empty title renders the
// bindings without a heading.
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// HelpDialog lists key bindings in a bordered box.
type HelpDialog struct {
	title    string
	sections []HelpSection
}

// NewHelpDialog creates a help dialog.
func NewHelpDialog(title string, sections ...HelpSection) *HelpDialog {
	return &HelpDialog{title: title, sections: sections}
}

// View renders the dialog box. Disabled bindings are left out, as are
// sections with nothing left to show.
func (h *HelpDialog) View() string {
	lines := []string{styles.TextPrimaryStyle.Bold(true).Render(h.title)}

	for _, section := range h.sections {
		rows := make([]string, 0, len(section.Bindings))
		for _, b := range section.Bindings {
			if !b.Enabled() {
				continue
			}
			help := b.Help()
			rows = append(rows, styles.HelpDialogKeyStyle.Render(padRight(help.Key, helpKeyWidth))+help.Desc)
		}
		if len(rows) == 0 {
			continue
		}

		lines = append(lines, "")
		if section.Title != "" {
			lines = append(lines, styles.HelpDialogSectionStyle.Render(section.Title))
		}
		lines = append(lines, rows...)
	}

	lines = append(lines, "", styles.TextMutedStyle.Render("esc/? close"))

	return styles.HelpDialogModalStyle.Render(strings.Join(lines, "\n"))
}

// Overlay centres the dialog over background.
func (h *HelpDialog) Overlay(background string, width, height int) string {
	modal := h.View()

	x := max((width-lipgloss.Width(modal))/2, 0)
	y := max((height-lipgloss.Height(modal))/2, 0)

	return lipgloss.NewCompositor(
		lipgloss.NewLayer(background),
		lipgloss.NewLayer(modal).X(x).Y(y).Z(2),
	).Render()
}

func padRight(s string, w int) string {
	if n := w - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s + " "
}
