package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameLoop_Ensure_starts_once(t *testing.T) {
	f := newFrameLoop(time.Millisecond)

	require.NotNil(t, f.Ensure())
	assert.True(t, f.Running())
	assert.Nil(t, f.Ensure(), "already running")
}

func TestFrameLoop_tick_carries_generation(t *testing.T) {
	f := newFrameLoop(time.Millisecond)

	msg, ok := f.Ensure()().(frameMsg)
	require.True(t, ok)
	assert.True(t, f.Current(msg))
	assert.NotNil(t, f.Next(msg))
}

func TestFrameLoop_Stop_drops_inflight_tick(t *testing.T) {
	f := newFrameLoop(time.Millisecond)

	msg := f.Ensure()().(frameMsg)
	f.Stop()

	assert.False(t, f.Running())
	assert.Nil(t, f.Next(msg))
}

func TestFrameLoop_restart_drops_previous_generation(t *testing.T) {
	f := newFrameLoop(time.Millisecond)

	old := f.Ensure()().(frameMsg)
	f.Stop()
	fresh := f.Ensure()().(frameMsg)

	assert.Nil(t, f.Next(old), "stale loop must not keep ticking")
	assert.NotNil(t, f.Next(fresh))
}

func TestFrameLoop_Stop_idempotent(t *testing.T) {
	f := newFrameLoop(time.Millisecond)
	f.Stop()
	assert.Zero(t, f.gen)

	f.Ensure()
	f.Stop()
	f.Stop()
	assert.Equal(t, uint64(2), f.gen)
}
