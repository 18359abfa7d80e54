package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchMatchedListings = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "lotego",
			Name:      "search_matched_listings",
			Help:      "Number of listings matched by a search before pagination",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		},
	)

	SearchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lotego",
			Name:      "search_cache_total",
			Help:      "Search result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	CitySuggestionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lotego",
			Name:      "city_suggestions_total",
			Help:      "City suggestion requests by outcome",
		},
		[]string{"outcome"}, // "empty_query" / "no_match" / "match"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchMatchedListings)
	prometheus.MustRegister(SearchCacheTotal)
	prometheus.MustRegister(CitySuggestionsTotal)
	searchMetricsRegistered = true
}
