package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// searchRequests counts answered searches by how they were produced:
	// cache, relevance, sorted or newest.
	searchRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Product searches answered, by execution mode.",
		},
		[]string{"mode"},
	)

	suggestRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_suggest_requests_total",
			Help: "Suggestion lookups answered, by source (cache, fresh, short).",
		},
		[]string{"source"},
	)
)

func init() {
	prometheus.MustRegister(searchRequests, suggestRequests)
}
