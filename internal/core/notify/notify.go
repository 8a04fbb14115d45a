// Package notify defines the notification value shown as a toast.
package notify

import (
	"fmt"
	"time"
)

// Kind is the severity tag of a notification. It affects presentation and
// the default lifetime only.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Kinds lists every kind in display order.
var Kinds = []Kind{KindSuccess, KindError, KindWarning, KindInfo}

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindSuccess, KindError, KindWarning, KindInfo:
		return true
	}
	return false
}

// ParseKind converts s to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("unknown notification kind %q", s)
	}
	return k, nil
}

// Durations holds the default lifetime per kind.
type Durations struct {
	Success time.Duration `yaml:"success"`
	Error   time.Duration `yaml:"error"`
	Warning time.Duration `yaml:"warning"`
	Info    time.Duration `yaml:"info"`
}

// DefaultDurations gives errors the longest reading time.
func DefaultDurations() Durations {
	return Durations{
		Success: 2 * time.Second,
		Error:   4 * time.Second,
		Warning: 3 * time.Second,
		Info:    3 * time.Second,
	}
}

// For returns the default lifetime for k.
func (d Durations) For(k Kind) time.Duration {
	switch k {
	case KindSuccess:
		return d.Success
	case KindError:
		return d.Error
	case KindWarning:
		return d.Warning
	default:
		return d.Info
	}
}

// Notification represents a single toast request.
type Notification struct {
	ID        string
	Kind      Kind
	Title     string
	Detail    string
	Duration  time.Duration // <= 0 never auto-dismisses
	CreatedAt time.Time
}

// Timed reports whether the notification dismisses itself.
func (n Notification) Timed() bool {
	return n.Duration > 0
}
