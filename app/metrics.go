package app

import (
	"strconv"
	"time"

	"github.com/decentralwatch/registry/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects the executor statistics.
type Metrics struct {
	Messages       *prometheus.CounterVec
	Duration       *prometheus.HistogramVec
	EventsEmitted  *prometheus.CounterVec
	SinkFailures   prometheus.Counter
	CommittedBlock prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with given registerer.
// A nil registerer leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "watch",
			Name:      "messages_total",
			Help:      "Number of executed messages by path, call and result code.",
		}, []string{"path", "call", "code"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "watch",
			Name:      "message_duration_seconds",
			Help:      "Time spent executing a message.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path", "call"}),
		EventsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "watch",
			Name:      "events_emitted_total",
			Help:      "Number of events handed to the sink by event name.",
		}, []string{"event"}),
		SinkFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "watch",
			Name:      "sink_failures_total",
			Help:      "Number of failed event publications.",
		}),
		CommittedBlock: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "watch",
			Name:      "committed_version",
			Help:      "Latest committed store version.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Messages, m.Duration, m.EventsEmitted, m.SinkFailures, m.CommittedBlock)
	}
	return m
}

func (m *Metrics) observe(path, call string, start time.Time, err error) {
	if m == nil {
		return
	}
	code := strconv.FormatUint(uint64(errors.ABCICode(err)), 10)
	m.Messages.WithLabelValues(path, call, code).Inc()
	m.Duration.WithLabelValues(path, call).Observe(time.Since(start).Seconds())
}
