package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records login attempts by result (success|invalid|inactive|error).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kurukshetra_auth_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)

	// AccessDecisions counts access-control outcomes per gate (allow|deny|error).
	AccessDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kurukshetra_access_decisions_total",
			Help: "Total number of access-control decisions",
		},
		[]string{"gate", "result"},
	)

	// MaintenanceRuns counts scheduled maintenance executions per job.
	MaintenanceRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kurukshetra_maintenance_runs_total",
			Help: "Total number of maintenance job runs",
		},
		[]string{"job", "result"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kurukshetra_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
