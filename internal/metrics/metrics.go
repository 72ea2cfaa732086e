package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherlookup_provider_requests_total",
			Help: "Total forecast requests to the weather provider, by outcome",
		},
		[]string{"outcome"},
	)

	ProviderLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "weatherlookup_provider_latency_seconds",
			Help:    "Provider forecast request latency in seconds, including retries",
			Buckets: prometheus.DefBuckets,
		},
	)

	ProviderRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "weatherlookup_provider_retries_total",
			Help: "Total provider requests retried after a transient failure",
		},
	)

	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherlookup_fetches_total",
			Help: "Total coordinator fetches, by result",
		},
		[]string{"result"},
	)

	PreferenceErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherlookup_preference_errors_total",
			Help: "Swallowed errors reading or writing the persisted location",
		},
		[]string{"op"},
	)
)
