package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the member module: registration outcomes
// and decision throughput.
type Metrics struct {
	RegistrationsCommitted  prometheus.Counter
	RegistrationsRolledBack prometheus.Counter
	MembershipsApproved     prometheus.Counter
	MembershipsRejected     prometheus.Counter
	RegisterDuration        prometheus.Histogram
}

// New creates a Metrics instance registered against reg. Pass
// prometheus.DefaultRegisterer in main; tests use a fresh registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RegistrationsCommitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "guild_registrations_committed_total",
			Help: "Total number of registrations that committed successfully",
		}),
		RegistrationsRolledBack: factory.NewCounter(prometheus.CounterOpts{
			Name: "guild_registrations_rolled_back_total",
			Help: "Total number of registrations rolled back after a step failure",
		}),
		MembershipsApproved: factory.NewCounter(prometheus.CounterOpts{
			Name: "guild_memberships_approved_total",
			Help: "Total number of membership approvals",
		}),
		MembershipsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "guild_memberships_rejected_total",
			Help: "Total number of membership rejections",
		}),
		RegisterDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "guild_register_duration_seconds",
			Help:    "Duration of the registration workflow",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// ObserveRegister records the duration of a registration attempt.
// Call with time.Now() captured at the start of the workflow.
func (m *Metrics) ObserveRegister(start time.Time) {
	if m == nil {
		return
	}
	m.RegisterDuration.Observe(time.Since(start).Seconds())
}

// IncCommitted records a committed registration.
func (m *Metrics) IncCommitted() {
	if m == nil {
		return
	}
	m.RegistrationsCommitted.Inc()
}

// IncRolledBack records a rolled-back registration.
func (m *Metrics) IncRolledBack() {
	if m == nil {
		return
	}
	m.RegistrationsRolledBack.Inc()
}

// IncApproved records an approval decision.
func (m *Metrics) IncApproved() {
	if m == nil {
		return
	}
	m.MembershipsApproved.Inc()
}

// IncRejected records a rejection decision.
func (m *Metrics) IncRejected() {
	if m == nil {
		return
	}
	m.MembershipsRejected.Inc()
}
