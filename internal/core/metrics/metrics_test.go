package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/colonyops/hirewatch/internal/core/notify"
)

func TestMetrics_toast_lifecycle(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ToastShown(notify.KindError)
	m.ToastShown(notify.KindInfo)
	m.ToastPaused(notify.KindError)
	m.ToastRemoved(notify.KindError, "expired")

	assert.InDelta(t, 1, testutil.ToFloat64(m.toastsShown.WithLabelValues("error")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.toastPauses.WithLabelValues("error")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.toastsRemoved.WithLabelValues("error", "expired")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.toastsActive), 0)
}

func TestMetrics_header_transitions(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.HeaderTransition("hidden")
	m.HeaderTransition("hidden")
	m.HeaderTransition("visible")

	assert.InDelta(t, 2, testutil.ToFloat64(m.headerTransitions.WithLabelValues("hidden")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.headerTransitions.WithLabelValues("visible")), 0)
}

func TestMetrics_nil_is_noop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ToastShown(notify.KindInfo)
		m.ToastRemoved(notify.KindInfo, "dismissed")
		m.ToastPaused(notify.KindInfo)
		m.HeaderTransition("visible")
	})
}

func TestNew_independent_registries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
