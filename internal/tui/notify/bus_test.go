package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hirewatch/internal/core/notify"
)

func TestBus_Publish_dispatches_to_subscribers(t *testing.T) {
	bus := NewBus()

	var received []notify.Notification
	bus.Subscribe(func(n notify.Notification) {
		received = append(received, n)
	})

	bus.Errorf("offer rejected: %d", 42)
	bus.Infof("sync done")
	bus.Warnf("stale pipeline")
	bus.Successf("hired")

	require.Len(t, received, 4)
	assert.Equal(t, notify.KindError, received[0].Kind)
	assert.Equal(t, "offer rejected: 42", received[0].Title)
	assert.Equal(t, notify.KindInfo, received[1].Kind)
	assert.Equal(t, notify.KindWarning, received[2].Kind)
	assert.Equal(t, notify.KindSuccess, received[3].Kind)
	assert.Zero(t, received[0].Duration, "zero means kind default")
}

func TestBus_Publish_fans_out_in_order(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.Subscribe(func(notify.Notification) { order = append(order, "a") })
	bus.Subscribe(func(notify.Notification) { order = append(order, "b") })

	bus.Infof("x")
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestBus_Publish_normalizes(t *testing.T) {
	bus := NewBus()

	var got notify.Notification
	bus.Subscribe(func(n notify.Notification) { got = n })

	bus.Publish(notify.Notification{Kind: "fatal", Title: "boom"})
	assert.Equal(t, notify.KindInfo, got.Kind)
	assert.False(t, got.CreatedAt.IsZero())

	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	bus.Publish(notify.Notification{Kind: notify.KindError, CreatedAt: stamp})
	assert.Equal(t, stamp, got.CreatedAt)
}

func TestBus_Publish_without_subscribers(t *testing.T) {
	assert.NotPanics(t, func() { NewBus().Infof("nobody listens") })
}
