package tracking

import "github.com/prometheus/client_golang/prometheus"

var (
	termsTracked = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "search_terms_tracked_total",
		Help: "Search terms recorded by the background tracker.",
	})

	trackFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "search_term_track_failures_total",
		Help: "Background search-term increments that failed and were dropped.",
	})
)

func init() {
	prometheus.MustRegister(termsTracked, trackFailures)
}
