package tui

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/colonyops/hirewatch/internal/tui/components"
)

// KeyMap lists the TUI key bindings.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Success    key.Binding
	Error      key.Binding
	Warning    key.Binding
	Info       key.Binding
	Sticky     key.Binding
	Dismiss    key.Binding
	DismissAll key.Binding
	Help       key.Binding
	CloseHelp  key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the built-in bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown", "f", "space"), key.WithHelp("pgdn", "page down")),
		Top:        key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:     key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Success:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "success")),
		Error:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "error")),
		Warning:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "warning")),
		Info:       key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "info")),
		Sticky:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "sticky")),
		Dismiss:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss")),
		DismissAll: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		CloseHelp:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Down, k.Success, k.Error, k.Warning, k.Info, k.Sticky, k.Dismiss, k.DismissAll, k.Help, k.Quit,
	}
}

// FullHelp groups every binding for the help dialog.
func (k KeyMap) FullHelp() []components.HelpSection {
	return []components.HelpSection{
		{Title: "Feed", Bindings: []key.Binding{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom}},
		{Title: "Notifications", Bindings: []key.Binding{k.Success, k.Error, k.Warning, k.Info, k.Sticky, k.Dismiss, k.DismissAll}},
		{Title: "General", Bindings: []key.Binding{k.Help, k.Quit}},
	}
}

// helpLine renders bindings as "key desc" pairs.
func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
