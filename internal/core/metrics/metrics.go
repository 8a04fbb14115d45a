// Package metrics exposes Prometheus instrumentation for the toast and
// header components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/colonyops/hirewatch/internal/core/notify"
)

// Namespace prefixes every metric name.
const Namespace = "hirewatch"

// Metrics records toast lifecycle and header transitions. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	toastsShown       *prometheus.CounterVec
	toastsRemoved     *prometheus.CounterVec
	toastsActive      prometheus.Gauge
	toastPauses       *prometheus.CounterVec
	headerTransitions *prometheus.CounterVec
}

// New registers the collectors on reg. Passing a fresh prometheus.Registry
// keeps instances independent.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		toastsShown: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "toast",
			Name:      "shown_total",
			Help:      "Toasts shown, by kind",
		}, []string{"kind"}),

		toastsRemoved: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "toast",
			Name:      "removed_total",
			Help:      "Toasts removed, by kind and reason",
		}, []string{"kind", "reason"}),

		toastsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "toast",
			Name:      "active",
			Help:      "Toasts currently on screen",
		}),

		toastPauses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "toast",
			Name:      "pauses_total",
			Help:      "Toast countdowns paused by hover, by kind",
		}, []string{"kind"}),

		headerTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "header",
			Name:      "transitions_total",
			Help:      "Header visibility state transitions, by target state",
		}, []string{"state"}),
	}
}

func (m *Metrics) ToastShown(kind notify.Kind) {
	if m == nil {
		return
	}
	m.toastsShown.WithLabelValues(string(kind)).Inc()
	m.toastsActive.Inc()
}

func (m *Metrics) ToastRemoved(kind notify.Kind, reason string) {
	if m == nil {
		return
	}
	m.toastsRemoved.WithLabelValues(string(kind), reason).Inc()
	m.toastsActive.Dec()
}

func (m *Metrics) ToastPaused(kind notify.Kind) {
	if m == nil {
		return
	}
	m.toastPauses.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) HeaderTransition(state string) {
	if m == nil {
		return
	}
	m.headerTransitions.WithLabelValues(state).Inc()
}
