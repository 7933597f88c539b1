package service

import (
	"time"

	"reeferlink/domain"

	"github.com/prometheus/client_golang/prometheus"
)

var allStates = []domain.State{
	domain.StateIdle,
	domain.StateDiscovering,
	domain.StateProbing,
	domain.StateSucceeded,
	domain.StateFailed,
}

// Metrics holds the orchestrator's prometheus collectors. A nil *Metrics records nothing.
type Metrics struct {
	runs        *prometheus.CounterVec
	probes      *prometheus.CounterVec
	state       *prometheus.GaugeVec
	runDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reeferlink",
			Name:      "discovery_runs_total",
			Help:      "Discovery runs by mode and outcome.",
		}, []string{"mode", "outcome"}),
		probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reeferlink",
			Name:      "probes_total",
			Help:      "Reachability probes by mode, candidate source and result.",
		}, []string{"mode", "source", "result"}),
		state: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "reeferlink",
			Name:      "orchestrator_state",
			Help:      "1 for the orchestrator's current state, 0 otherwise.",
		}, []string{"state"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "reeferlink",
			Name:      "discovery_run_duration_seconds",
			Help:      "Wall time of discovery runs.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 12, 16},
		}, []string{"mode", "outcome"}),
	}
	reg.MustRegister(m.runs, m.probes, m.state, m.runDuration)
	m.setState(domain.StateIdle)
	return m
}

func (m *Metrics) setState(s domain.State) {
	if m == nil {
		return
	}
	for _, st := range allStates {
		v := 0.0
		if st == s {
			v = 1
		}
		m.state.WithLabelValues(string(st)).Set(v)
	}
}

func (m *Metrics) observeProbe(c domain.Candidate, r domain.ProbeResult) {
	if m == nil {
		return
	}
	m.probes.WithLabelValues(string(c.Mode), string(c.Source), string(r)).Inc()
}

func (m *Metrics) observeRun(mode domain.ConnectionMode, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(string(mode), outcome).Inc()
	m.runDuration.WithLabelValues(string(mode), outcome).Observe(d.Seconds())
}
