// Package metrics exposes Prometheus counters for the quoting dialog.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Reply outcomes.
const (
	OutcomeOK           = "ok"
	OutcomeInvalidInput = "invalid_input"
	OutcomeNoSession    = "no_session"
	OutcomeCatalogError = "catalog_error"
	OutcomeBack         = "back"
)

// Metrics groups the service collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	inbound     prometheus.Counter
	replies     *prometheus.CounterVec
	transitions *prometheus.CounterVec
	quotes      *prometheus.CounterVec
	quoteTotals prometheus.Histogram
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		inbound: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quotebot",
			Name:      "inbound_messages_total",
			Help:      "Inbound messages handled by the dialog engine",
		}),
		replies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotebot",
			Name:      "replies_total",
			Help:      "Replies by outcome",
		}, []string{"outcome"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotebot",
			Name:      "state_transitions_total",
			Help:      "Dialog transitions by target state",
		}, []string{"state"}),
		quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotebot",
			Name:      "quotes_total",
			Help:      "Finalized quotes by status",
		}, []string{"status"}),
		quoteTotals: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quotebot",
			Name:      "quote_final_cost",
			Help:      "Final cost of issued quotes",
			Buckets:   prometheus.ExponentialBuckets(10, 2, 14),
		}),
	}
	reg.MustRegister(m.inbound, m.replies, m.transitions, m.quotes, m.quoteTotals)
	return m
}

func (m *Metrics) Inbound() {
	if m == nil {
		return
	}
	m.inbound.Inc()
}

func (m *Metrics) Reply(outcome string) {
	if m == nil {
		return
	}
	m.replies.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Transition(state string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(state).Inc()
}

// Quote records a finalized quote and, when it was sent, its total.
func (m *Metrics) Quote(status string, finalCost float64) {
	if m == nil {
		return
	}
	m.quotes.WithLabelValues(status).Inc()
	if finalCost > 0 {
		m.quoteTotals.Observe(finalCost)
	}
}
