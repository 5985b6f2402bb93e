package v1

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	snapshotsUpserted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "centavo_snapshots_upserted_total",
		Help: "Number of monthly snapshots written, by snapshot type.",
	}, []string{"type"})

	analysisFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "centavo_analysis_fallbacks_total",
		Help: "Number of insight requests answered without the external analyzer.",
	})

	analysisRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "centavo_analysis_requests_total",
		Help: "Number of requests sent to the external analyzer.",
	})
)
