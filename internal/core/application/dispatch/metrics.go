package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes dispatch counters. Both failure counters cover the
// non-fatal halves of a dispatch: a persist failure does not stop the push
// and a push reaching zero connections is not a failure at all.
type Metrics struct {
	dispatched      *prometheus.CounterVec
	persistFailures prometheus.Counter
	pushedFrames    prometheus.Counter
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		dispatched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifications_dispatched_total",
				Help: "Notification events handled by the dispatch engine.",
			},
			[]string{"kind", "recipient_type"},
		),
		persistFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "notifications_persist_failures_total",
				Help: "Notification records that could not be stored.",
			},
		),
		pushedFrames: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "notifications_pushed_frames_total",
				Help: "Frames delivered to live connections.",
			},
		),
	}

	registerer.MustRegister(m.dispatched, m.persistFailures, m.pushedFrames)
	return m
}

func (m *Metrics) observeDispatch(kind, recipientType string) {
	if m == nil {
		return
	}
	m.dispatched.WithLabelValues(kind, recipientType).Inc()
}

func (m *Metrics) observePersistFailure() {
	if m == nil {
		return
	}
	m.persistFailures.Inc()
}

func (m *Metrics) observePushed(frames int) {
	if m == nil {
		return
	}
	m.pushedFrames.Add(float64(frames))
}
