package observability

import (
	"context"

	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by a finished trace.
type Metrics struct {
	Traces         *prometheus.CounterVec
	Visited        *prometheus.CounterVec
	Transitions    *prometheus.CounterVec
	Depth          *prometheus.HistogramVec
	Nondeterminism *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Traces: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracetm_traces_total",
				Help: "Total number of traced strings by verdict",
			},
			[]string{"machine", "verdict"},
		),
		Visited: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracetm_configurations_visited_total",
				Help: "Total number of configurations popped from the frontier",
			},
			[]string{"machine"},
		),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracetm_transitions_total",
				Help: "Total number of configurations expanded",
			},
			[]string{"machine"},
		),
		Depth: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracetm_tree_depth",
				Help:    "Deepest level reached per trace",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"machine"},
		),
		Nondeterminism: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracetm_nondeterminism",
				Help:    "Average branching factor per trace",
				Buckets: []float64{1, 1.25, 1.5, 2, 3, 4, 8},
			},
			[]string{"machine"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.Traces, m.Visited, m.Transitions, m.Depth, m.Nondeterminism)
	}
	return m
}

// Observe records one finished trace.
func (m *Metrics) Observe(r *domain.Report) {
	m.Traces.WithLabelValues(r.Machine, string(r.Verdict)).Inc()
	m.Visited.WithLabelValues(r.Machine).Add(float64(r.Visited))
	m.Transitions.WithLabelValues(r.Machine).Add(float64(r.Transitions))
	m.Depth.WithLabelValues(r.Machine).Observe(float64(r.Depth))
	if r.Transitions > 0 {
		m.Nondeterminism.WithLabelValues(r.Machine).Observe(r.Nondeterminism)
	}
}

// Hooks returns explorer hooks that feed the collectors.
// Only the terminal hook is set; per-node hooks would sit on the hot path.
func (m *Metrics) Hooks() domain.TraceHooks {
	return domain.TraceHooks{
		OnTerminal: func(_ context.Context, r *domain.Report) {
			m.Observe(r)
		},
	}
}
