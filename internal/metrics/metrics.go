package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RouteRequests counts route computations by outcome.
	RouteRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusmetro_route_requests_total",
			Help: "Route plan requests by outcome (found, not_found, unknown_station)",
		},
		[]string{"outcome"},
	)

	// RouteCacheHits counts plans served from the route cache.
	RouteCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "campusmetro_route_cache_hits_total",
			Help: "Route plans served from cache",
		},
	)

	// RouteComputeSeconds observes the latency of uncached route planning.
	RouteComputeSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "campusmetro_route_compute_seconds",
			Help:    "Time spent computing a route plan (BFS + classification)",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
	)

	// StationsLoaded tracks the station count of the current graph.
	StationsLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "campusmetro_stations_loaded",
			Help: "Number of stations in the currently loaded map",
		},
	)
)

func init() {
	prometheus.MustRegister(RouteRequests)
	prometheus.MustRegister(RouteCacheHits)
	prometheus.MustRegister(RouteComputeSeconds)
	prometheus.MustRegister(StationsLoaded)
}

// Outcome labels for RouteRequests.
const (
	OutcomeFound          = "found"
	OutcomeNotFound       = "not_found"
	OutcomeUnknownStation = "unknown_station"
)
