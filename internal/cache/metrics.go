package cache

import "github.com/prometheus/client_golang/prometheus"

var (
	cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_cache_hits_total",
			Help: "Response cache lookups served from a fresh entry.",
		},
		[]string{"cache"},
	)

	cacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_cache_misses_total",
			Help: "Response cache lookups that found no fresh entry.",
		},
		[]string{"cache"},
	)

	cacheEvictions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_cache_evictions_total",
			Help: "Entries removed by size-based or manual eviction.",
		},
		[]string{"cache"},
	)

	// cacheEntries holds the last observed size per cache.
	cacheEntries = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "search_cache_entries",
			Help: "Current number of entries held by a response cache.",
		},
		[]string{"cache"},
	)
)

func init() {
	prometheus.MustRegister(cacheHits, cacheMisses, cacheEvictions, cacheEntries)
}
