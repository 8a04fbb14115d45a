// Package styles provides shared lipgloss v2 styles for the TUI.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/colonyops/hirewatch/internal/core/notify"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	HeaderStyle       lipgloss.Style
	HeaderTitleStyle  lipgloss.Style
	HeaderTabStyle    lipgloss.Style
	HeaderHoverStyle  lipgloss.Style
	HeaderDividerLine lipgloss.Style

	FeedRowStyle     lipgloss.Style
	FeedNameStyle    lipgloss.Style
	FeedRoleStyle    lipgloss.Style
	FeedScoreHigh    lipgloss.Style
	FeedScoreMid     lipgloss.Style
	FeedScoreLow     lipgloss.Style
	FeedStatusStyle  lipgloss.Style
	FeedFooterStyle  lipgloss.Style
	TextMutedStyle   lipgloss.Style
	TextPrimaryStyle lipgloss.Style

	ToastBaseStyle   lipgloss.Style
	ToastTitleStyle  lipgloss.Style
	ToastDetailStyle lipgloss.Style
	ToastPausedStyle lipgloss.Style

	HelpDialogModalStyle   lipgloss.Style
	HelpDialogSectionStyle lipgloss.Style
	HelpDialogKeyStyle     lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	HeaderStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Background(p.Surface).
		Padding(0, 1)
	HeaderTitleStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Background(p.Surface).
		Bold(true)
	HeaderTabStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Background(p.Surface)
	HeaderHoverStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Background(p.Surface).
		Italic(true)
	HeaderDividerLine = lipgloss.NewStyle().
		Foreground(p.Surface)

	FeedRowStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	FeedNameStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Bold(true)
	FeedRoleStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	FeedScoreHigh = lipgloss.NewStyle().Foreground(p.Success)
	FeedScoreMid = lipgloss.NewStyle().Foreground(p.Warning)
	FeedScoreLow = lipgloss.NewStyle().Foreground(p.Error)
	FeedStatusStyle = lipgloss.NewStyle().
		Foreground(p.Info)
	FeedFooterStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	TextMutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	TextPrimaryStyle = lipgloss.NewStyle().Foreground(p.Primary)

	ToastBaseStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastTitleStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Bold(true)
	ToastDetailStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	ToastPausedStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)

	HelpDialogModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
	HelpDialogSectionStyle = lipgloss.NewStyle().
		Foreground(p.Info).
		Bold(true)
	HelpDialogKeyStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
}

// KindColor returns the accent colour for a notification kind.
func KindColor(k notify.Kind) color.Color {
	switch k {
	case notify.KindSuccess:
		return CurrentPalette.Success
	case notify.KindError:
		return CurrentPalette.Error
	case notify.KindWarning:
		return CurrentPalette.Warning
	default:
		return CurrentPalette.Info
	}
}

// KindIcon returns the glyph shown before a toast title.
func KindIcon(k notify.Kind) string {
	switch k {
	case notify.KindSuccess:
		return IconNotifySuccess
	case notify.KindError:
		return IconNotifyError
	case notify.KindWarning:
		return IconNotifyWarning
	default:
		return IconNotifyInfo
	}
}

// ToastStyle returns the bordered container style for a kind.
func ToastStyle(k notify.Kind) lipgloss.Style {
	return ToastBaseStyle.BorderForeground(KindColor(k))
}

// Blend mixes from towards to in Lab space; t=0 yields from, t=1 yields to.
func Blend(from, to color.Color, t float64) color.Color {
	switch {
	case t <= 0:
		return from
	case t >= 1:
		return to
	}

	a, ok := colorful.MakeColor(from)
	if !ok {
		return from
	}
	b, ok := colorful.MakeColor(to)
	if !ok {
		return from
	}
	return a.BlendLab(b, t).Clamped()
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
