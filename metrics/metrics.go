package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	NearbyRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "goswim_nearby_requests_total",
		Help: "Total number of /api/pools/nearby requests",
	})
	NearbyDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "goswim_nearby_duration_ms",
		Help:    "Nearby request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	})
	FallbackResultsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "goswim_fallback_results_total",
		Help: "Total number of nearby requests answered by the all-pools fallback",
	})
	OverpassRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "goswim_overpass_requests_total",
		Help: "Total Overpass API requests",
	})
	OverpassFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "goswim_overpass_failures_total",
		Help: "Total failed Overpass API requests",
	})
	OverpassDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "goswim_overpass_duration_ms",
		Help:    "Overpass API call duration in milliseconds",
		Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 5000, 10000},
	})
	StoreFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "goswim_store_failures_total",
		Help: "Total failed swimming_pools queries",
	})
)

func init() {
	prometheus.MustRegister(NearbyRequestsTotal)
	prometheus.MustRegister(NearbyDurationMs)
	prometheus.MustRegister(FallbackResultsTotal)
	prometheus.MustRegister(OverpassRequestsTotal)
	prometheus.MustRegister(OverpassFailuresTotal)
	prometheus.MustRegister(OverpassDurationMs)
	prometheus.MustRegister(StoreFailuresTotal)
}

// Handler exposes the registered metrics for scraping; mounted at /metrics.
func Handler() http.Handler { return promhttp.Handler() }
