package providers

import (
	"prayerd/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObserveProviderCall(provider, outcome string, duration time.Duration)
	IncResolutions(source, origin string)
	ObservePersistenceDuration(duration time.Duration)
	SetStoreEntries(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	providerCalls       *prometheus.CounterVec
	providerDuration    *prometheus.HistogramVec
	resolutions         *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
	storeEntries        prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObserveProviderCall(provider, outcome string, duration time.Duration) {
	m.providerCalls.WithLabelValues(provider, outcome).Inc()
	m.providerDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncResolutions(source, origin string) {
	m.resolutions.WithLabelValues(source, origin).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetStoreEntries(count int) {
	m.storeEntries.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "prayerd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "prayerd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prayerd_cache_hits_total",
			Help: "Total number of reverse geocode cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prayerd_cache_misses_total",
			Help: "Total number of reverse geocode cache misses",
		}),

		providerCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "prayerd_provider_requests_total",
			Help: "Total number of calls to external providers",
		}, []string{"provider", "outcome"}),

		providerDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "prayerd_provider_duration_seconds",
			Help:    "External provider call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
		}, []string{"provider"}),

		resolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "prayerd_resolutions_total",
			Help: "Prayer time resolutions by confidence tier and origin",
		}, []string{"source", "origin"}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "prayerd_persistence_duration_seconds",
			Help:    "Duration of snapshot persistence in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		storeEntries: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "prayerd_store_entries",
			Help: "Number of entries in the local prayer time store",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObserveProviderCall(_, _ string, _ time.Duration) {}
func (n *noopMetrics) IncResolutions(_, _ string)                       {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) SetStoreEntries(_ int)                            {}
