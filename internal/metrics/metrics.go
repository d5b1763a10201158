package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Gateway outcomes.
const (
	OutcomeOnline           = "online"
	OutcomeOffline          = "offline"
	OutcomeTransportFailure = "transport_failure"
	OutcomeSchemaError      = "schema_error"
	OutcomePlaceholder      = "placeholder"
)

var (
	GatewayRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fairfound_gateway_requests_total",
			Help: "AI gateway requests by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	GatewayDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fairfound_gateway_request_duration_seconds",
			Help:    "Latency of outbound generative calls",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 45, 90},
		},
		[]string{"operation"},
	)

	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fairfound_pipeline_runs_total",
			Help: "Profile analysis pipeline runs by result",
		},
		[]string{"result"},
	)

	PipelinesActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fairfound_pipelines_active",
			Help: "Analysis pipelines currently in flight",
		},
	)
)
