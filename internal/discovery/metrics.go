package discovery

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	candidateRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_candidate_requests_total",
			Help: "Total number of candidate discovery requests",
		},
		[]string{"status"},
	)

	candidatesReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "discovery_candidates_returned",
			Help:    "Number of candidates returned per request",
			Buckets: prometheus.LinearBuckets(0, 2, 11),
		},
	)

	interactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_interactions_total",
			Help: "Total number of approve/reject interactions recorded",
		},
		[]string{"status"},
	)
)

func recordCandidatesReturned(n int) {
	candidatesReturned.Observe(float64(n))
}

func recordInteraction(status string) {
	interactionsTotal.WithLabelValues(status).Inc()
}

// RecordRequest counts one discovery request by outcome
func RecordRequest(status string) {
	candidateRequestsTotal.WithLabelValues(status).Inc()
}
