package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors of balance subscriptions and chain connections.
type Metrics struct {
	ActiveSubscriptions *prometheus.GaugeVec
	BalanceUpdates      *prometheus.CounterVec
	BalanceFailures     *prometheus.CounterVec
	FeeQueries          *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg, if given.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ActiveSubscriptions: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "xcmbridge_balance_subscriptions_active",
				Help: "Number of open balance subscriptions",
			},
			[]string{"chain"},
		),
		BalanceUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xcmbridge_balance_updates_total",
				Help: "Total number of balance snapshots emitted",
			},
			[]string{"chain", "token"},
		),
		BalanceFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xcmbridge_balance_failures_total",
				Help: "Total number of balance read failures, by the policy applied",
			},
			[]string{"chain", "token", "policy"},
		),
		FeeQueries: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "xcmbridge_fee_query_duration_seconds",
				Help:    "Duration of fee queries against the chain",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"chain", "status"},
		),
	}
	if reg != nil {
		reg.MustRegister(
			m.ActiveSubscriptions,
			m.BalanceUpdates,
			m.BalanceFailures,
			m.FeeQueries,
		)
	}
	return m
}

var defaultOnce sync.Once
var defaultMetrics *Metrics

// Default returns collectors registered with the global prometheus registry.
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = New(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}
