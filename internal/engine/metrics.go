package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bontastic/printerctl/internal/field"
)

// Write outcomes.
const (
	OutcomeEcho    = "echo"
	OutcomeStored  = "stored"
	OutcomeFed     = "fed"
	OutcomePrinted = "printed"
)

// Metrics counts field traffic.
type Metrics struct {
	writes        *prometheus.CounterVec
	notifications *prometheus.CounterVec
	persists      *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them on reg. A nil reg keeps them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		writes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "printerctl_field_writes_total",
			Help: "Number of accepted field writes, by field and outcome.",
		}, []string{"field", "outcome"}),
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "printerctl_notifications_total",
			Help: "Number of change notifications sent to subscribers, by field.",
		}, []string{"field"}),
		persists: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "printerctl_persist_writes_total",
			Help: "Number of write-through persistence writes, by field.",
		}, []string{"field"}),
	}
}

func (m *Metrics) write(f field.Field, outcome string) {
	m.writes.WithLabelValues(f.String(), outcome).Inc()
}

func (m *Metrics) notified(f field.Field) {
	m.notifications.WithLabelValues(f.String()).Inc()
}

func (m *Metrics) persisted(f field.Field) {
	m.persists.WithLabelValues(f.String()).Inc()
}
