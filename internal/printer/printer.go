// Package printer writes styled status lines for CLI commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/hirewatch/internal/core/styles"
)

type ctxKey struct{}

// Printer prefixes messages with a coloured status icon.
type Printer struct {
	w io.Writer
}

// New creates a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// WithContext stores p on ctx.
func WithContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored on ctx, or one writing to stdout.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stdout)
}

func (p *Printer) line(icon string, style lipgloss.Style, msg string) {
	_, _ = fmt.Fprintln(p.w, style.Render(icon)+" "+msg)
}

// Success prints a success line with a muted detail.
func (p *Printer) Success(msg, detail string) {
	if detail != "" {
		msg += " " + styles.TextMutedStyle.Render(detail)
	}
	p.line(styles.IconNotifySuccess, lipgloss.NewStyle().Foreground(styles.CurrentPalette.Success), msg)
}

// Successf prints a formatted success line.
func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.IconNotifySuccess, lipgloss.NewStyle().Foreground(styles.CurrentPalette.Success), fmt.Sprintf(format, args...))
}

// Infof prints a formatted info line.
func (p *Printer) Infof(format string, args ...any) {
	p.line(styles.IconNotifyInfo, lipgloss.NewStyle().Foreground(styles.CurrentPalette.Info), fmt.Sprintf(format, args...))
}

// Warnf prints a formatted warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.line(styles.IconNotifyWarning, lipgloss.NewStyle().Foreground(styles.CurrentPalette.Warning), fmt.Sprintf(format, args...))
}

// Errorf prints a formatted error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.IconNotifyError, lipgloss.NewStyle().Foreground(styles.CurrentPalette.Error), fmt.Sprintf(format, args...))
}

// Printf prints an unadorned line.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}
