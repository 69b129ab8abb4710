package metrics

import "github.com/prometheus/client_golang/prometheus"

// MatchMetrics counts backfill decisions per matching strategy.
type MatchMetrics struct {
	decisions *prometheus.CounterVec
}

// NewMatchMetrics registers the backfill match counters.
func NewMatchMetrics(reg prometheus.Registerer) *MatchMetrics {
	if reg == nil {
		return &MatchMetrics{}
	}
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "backfill",
		Name:      "decisions_total",
		Help:      "Model to brand backfill decisions by strategy and action.",
	}, []string{"strategy", "action"})
	reg.MustRegister(decisions)
	return &MatchMetrics{decisions: decisions}
}

// IncDecision counts one backfill decision. action is applied, review,
// skipped or unmatched.
func (m *MatchMetrics) IncDecision(strategy, action string) {
	if m == nil || m.decisions == nil {
		return
	}
	m.decisions.WithLabelValues(normalizeLabel(strategy), normalizeLabel(action)).Inc()
}
