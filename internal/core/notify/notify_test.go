package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseKind("fatal")
	assert.Error(t, err)
}

func TestDefaultDurations_error_reads_longest(t *testing.T) {
	d := DefaultDurations()

	assert.Greater(t, d.For(KindError), d.For(KindSuccess))
	assert.Greater(t, d.For(KindError), d.For(KindWarning))
	assert.Equal(t, 3*time.Second, d.For(KindInfo))
	assert.Equal(t, d.Info, d.For(Kind("unknown")))
}

func TestNotification_Timed(t *testing.T) {
	assert.True(t, Notification{Duration: time.Millisecond}.Timed())
	assert.False(t, Notification{}.Timed())
	assert.False(t, Notification{Duration: -time.Second}.Timed())
}
