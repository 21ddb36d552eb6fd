package assessments

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Decision outcomes recorded by the metrics.
const (
	outcomeAllow = "allow"
	outcomeDeny  = "deny"
	outcomeError = "error"
)

// Metrics records authorization decisions so that denials and gateway
// failures are visible per role without logging every request.
type Metrics struct {
	decisions *prometheus.CounterVec
}

// NewMetrics creates and registers the policy metrics on the given registerer.
// Passing prometheus.DefaultRegisterer wires them into the standard /metrics
// endpoint.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		decisions: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "schoolforge",
				Subsystem: "assessment_policy",
				Name:      "decisions_total",
				Help:      "Authorization decisions by operation, role, and outcome.",
			},
			[]string{"operation", "role", "outcome"},
		),
	}
}

// record counts one decision. A nil Metrics is a no-op so the pure policy
// functions stay usable without any registry.
func (m *Metrics) record(operation, role, outcome string) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(operation, role, outcome).Inc()
}
