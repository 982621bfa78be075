package observability

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Upstream fetch outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeNotFound = "not_found"
)

// Search cache tiers.
const (
	CacheTierMemory = "memory"
	CacheTierRedis  = "redis"
	CacheTierMiss   = "miss"
)

// StoreMetrics holds the storefront's Prometheus collectors.
type StoreMetrics struct {
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	catalogLoads     *prometheus.CounterVec
	catalogProducts  prometheus.Gauge
	searchLookups    *prometheus.CounterVec
	engineDuration   *prometheus.HistogramVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

var (
	storeMetricsOnce sync.Once
	storeMetrics     *StoreMetrics
)

// Store returns the process-wide metrics registered on the default registerer.
func Store() *StoreMetrics {
	storeMetricsOnce.Do(func() {
		storeMetrics = NewStoreMetrics(prometheus.DefaultRegisterer)
	})
	return storeMetrics
}

// NewStoreMetrics creates the collectors and registers them on registerer.
func NewStoreMetrics(registerer prometheus.Registerer) *StoreMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &StoreMetrics{
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_upstream_requests_total",
			Help: "Requests made to the upstream backend by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_upstream_request_duration_seconds",
			Help:    "Upstream backend request latency.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		catalogLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_catalog_loads_total",
			Help: "Catalog snapshot loads by outcome.",
		}, []string{"outcome"}),
		catalogProducts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_catalog_products",
			Help: "Products in the current catalog snapshot.",
		}),
		searchLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_search_cache_lookups_total",
			Help: "Search cache lookups by the tier that answered.",
		}, []string{"tier"}),
		engineDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_engine_duration_seconds",
			Help:    "Time spent in the filter and ranking engines.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"engine"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "HTTP requests served by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registerer.MustRegister(
		m.upstreamRequests,
		m.upstreamDuration,
		m.catalogLoads,
		m.catalogProducts,
		m.searchLookups,
		m.engineDuration,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// RecordUpstream records one upstream call.
func (m *StoreMetrics) RecordUpstream(endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	m.upstreamDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// RecordCatalogLoad records a snapshot refresh and the resulting product count.
func (m *StoreMetrics) RecordCatalogLoad(outcome string, products int) {
	if m == nil {
		return
	}
	m.catalogLoads.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		m.catalogProducts.Set(float64(products))
	}
}

// RecordSearchLookup records which cache tier answered a search.
func (m *StoreMetrics) RecordSearchLookup(tier string) {
	if m == nil {
		return
	}
	m.searchLookups.WithLabelValues(tier).Inc()
}

// ObserveEngine records time spent in engine ("filter" or "rank").
func (m *StoreMetrics) ObserveEngine(engine string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.engineDuration.WithLabelValues(engine).Observe(elapsed.Seconds())
}

// RecordHTTP records a served request. route is the gin route template.
func (m *StoreMetrics) RecordHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	if status == 0 {
		status = http.StatusOK
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
