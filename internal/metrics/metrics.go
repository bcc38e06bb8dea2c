package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Dispatch kinds used as label values
const (
	KindDigest    = "digest"
	KindNoMatches = "no_matches"
	KindError     = "error"
	KindLiveStub  = "live_stub"
)

// Metrics holds the job's Prometheus collectors
type Metrics struct {
	registry              *prometheus.Registry
	Dispatches            *prometheus.CounterVec
	DispatchFailures      *prometheus.CounterVec
	PredictionsFetched    prometheus.Counter
	QualifyingPredictions prometheus.Counter
}

// NewMetrics creates the collectors and registers them on a fresh registry
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.NewRegistry())
}

// NewMetricsWithRegistry creates the collectors and registers them on registry.
// It panics if the collectors are already registered there.
func NewMetricsWithRegistry(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		Dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "match_digest",
			Name:      "dispatches_total",
			Help:      "Messages successfully handed to the notifier, by kind.",
		}, []string{"kind"}),
		DispatchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "match_digest",
			Name:      "dispatch_failures_total",
			Help:      "Messages the notifier failed to deliver, by kind.",
		}, []string{"kind"}),
		PredictionsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "match_digest",
			Name:      "predictions_fetched_total",
			Help:      "Predictions received from the prediction source.",
		}),
		QualifyingPredictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "match_digest",
			Name:      "qualifying_predictions_total",
			Help:      "Predictions included in a digest.",
		}),
	}

	m.registry.MustRegister(
		m.Dispatches,
		m.DispatchFailures,
		m.PredictionsFetched,
		m.QualifyingPredictions,
	)

	return m
}

// Registry returns the registry holding all collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveDispatch records the outcome of one notifier call
func (m *Metrics) ObserveDispatch(kind string, err error) {
	if err != nil {
		m.DispatchFailures.WithLabelValues(kind).Inc()
		return
	}
	m.Dispatches.WithLabelValues(kind).Inc()
}

// Push sends the current values to a Prometheus Pushgateway
func (m *Metrics) Push(url, job string) error {
	return push.New(url, job).Gatherer(m.registry).Push()
}
