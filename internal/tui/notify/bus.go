// Package notify routes notification requests from the UI to subscribers.
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/hirewatch/internal/core/notify"
)

// Subscriber is a callback invoked when a notification is published.
type Subscriber func(notify.Notification)

// Bus is a synchronous in-process notification bus. Subscribers run inline
// on the publishing goroutine, which in the TUI is the Update loop.
type Bus struct {
	mu          sync.Mutex
	subscribers []Subscriber
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a callback that will be invoked on every Publish.
func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Publish dispatches a notification to all subscribers. Unknown kinds are
// published as info. A zero Duration means the kind's default lifetime; a
// negative one requests a toast that never expires.
func (b *Bus) Publish(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if !n.Kind.IsValid() {
		log.Debug().Str("kind", string(n.Kind)).Msg("unknown notification kind, using info")
		n.Kind = notify.KindInfo
	}

	b.mu.Lock()
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
}

// Successf publishes a success notification.
func (b *Bus) Successf(format string, args ...any) {
	b.publishf(notify.KindSuccess, format, args...)
}

// Errorf publishes an error notification.
func (b *Bus) Errorf(format string, args ...any) {
	b.publishf(notify.KindError, format, args...)
}

// Warnf publishes a warning notification.
func (b *Bus) Warnf(format string, args ...any) {
	b.publishf(notify.KindWarning, format, args...)
}

// Infof publishes an info notification.
func (b *Bus) Infof(format string, args ...any) {
	b.publishf(notify.KindInfo, format, args...)
}

func (b *Bus) publishf(kind notify.Kind, format string, args ...any) {
	b.Publish(notify.Notification{
		Kind:  kind,
		Title: fmt.Sprintf(format, args...),
	})
}
