package mcts

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports search statistics to prometheus. A nil *Metrics records nothing.
type Metrics struct {
	Searches   prometheus.Counter
	Exhausted  prometheus.Counter
	Iterations prometheus.Counter
	Expansions prometheus.Counter
	Rollouts   prometheus.Counter
	Duration   prometheus.Histogram
	TreeSize   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Searches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mcts",
			Name:      "searches_total",
			Help:      "Number of completed move decisions.",
		}),
		Exhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mcts",
			Name:      "exhausted_searches_total",
			Help:      "Searches that stopped early because the whole tree was terminal.",
		}),
		Iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mcts",
			Name:      "iterations_total",
			Help:      "Selection/expansion/rollout/backpropagation iterations.",
		}),
		Expansions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mcts",
			Name:      "expansions_total",
			Help:      "Nodes expanded, roots included.",
		}),
		Rollouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mcts",
			Name:      "rollouts_total",
			Help:      "Rollout policy evaluations.",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mcts",
			Name:      "search_duration_seconds",
			Help:      "Wall time of one move decision.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		TreeSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mcts",
			Name:      "tree_nodes",
			Help:      "Number of nodes in the tree when the move was chosen.",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 10),
		}),
	}
	for _, c := range []prometheus.Collector{m.Searches, m.Exhausted, m.Iterations, m.Expansions, m.Rollouts, m.Duration, m.TreeSize} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) iteration() {
	if m != nil {
		m.Iterations.Inc()
	}
}

func (m *Metrics) expansion() {
	if m != nil {
		m.Expansions.Inc()
	}
}

func (m *Metrics) rollout() {
	if m != nil {
		m.Rollouts.Inc()
	}
}

func (m *Metrics) searched(elapsed time.Duration, nodes int, exhausted bool) {
	if m == nil {
		return
	}
	m.Searches.Inc()
	if exhausted {
		m.Exhausted.Inc()
	}
	m.Duration.Observe(elapsed.Seconds())
	m.TreeSize.Observe(float64(nodes))
}
