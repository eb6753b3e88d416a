package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	EmployeesCreated prometheus.Counter
	PoliciesCreated  prometheus.Counter
	PoliciesAssigned prometheus.Counter
	RequestDuration  *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the default registry.
// Call once per process; components take *Metrics by injection and tolerate
// nil so tests can skip registration.
func New() *Metrics {
	return &Metrics{
		EmployeesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "policy_manager_employees_created_total",
			Help: "Total number of employees created",
		}),
		PoliciesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "policy_manager_policies_created_total",
			Help: "Total number of policies created",
		}),
		PoliciesAssigned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "policy_manager_policies_assigned_total",
			Help: "Total number of policy assignments applied",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "policy_manager_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// IncrementEmployeesCreated increments the employees created counter by 1.
func (m *Metrics) IncrementEmployeesCreated() {
	m.EmployeesCreated.Inc()
}

// IncrementPoliciesCreated increments the policies created counter by 1.
func (m *Metrics) IncrementPoliciesCreated() {
	m.PoliciesCreated.Inc()
}

// IncrementPoliciesAssigned increments the assignments counter by 1.
func (m *Metrics) IncrementPoliciesAssigned() {
	m.PoliciesAssigned.Inc()
}

// ObserveRequest records one HTTP request observation.
func (m *Metrics) ObserveRequest(method, route, status string, d time.Duration) {
	m.RequestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}
