package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK           = "ok"
	ResultNetworkError = "network_error"
	ResultHttpError    = "http_error"
	ResultDecodeError  = "decode_error"
)

var (
	remoteRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vms_console",
		Subsystem: "remote",
		Name:      "requests_total",
		Help:      "Total number of VMS API requests broken down by operation and result.",
	}, []string{"operation", "result"})

	remoteLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "vms_console",
		Subsystem: "remote",
		Name:      "latency_seconds",
		Help:      "Latency distribution for VMS API requests.",
		Buckets: []float64{
			0.005, 0.01, 0.02, 0.05,
			0.1, 0.2, 0.5,
			1, 2, 5, 10,
		},
	}, []string{"operation"})

	optimisticOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vms_console",
		Subsystem: "optimistic",
		Name:      "outcomes_total",
		Help:      "Optimistic mutations broken down by kind and outcome (confirmed, compensated, superseded, kept).",
	}, []string{"kind", "outcome"})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "vms_console",
		Subsystem: "session",
		Name:      "active_workspaces",
		Help:      "Number of console workspaces held in memory.",
	})
)

func ObserveRemote(operation, result string, started time.Time) {
	remoteRequests.WithLabelValues(operation, result).Inc()
	remoteLatency.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func ObserveOptimistic(kind, outcome string) {
	optimisticOutcomes.WithLabelValues(kind, outcome).Inc()
}

func SetActiveWorkspaces(n int) {
	activeSessions.Set(float64(n))
}
