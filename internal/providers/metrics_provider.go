package providers

import (
	"meetsync/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	AddBroadcastDelivered(count int)
	IncBroadcastSkipped()
	IncUpserts()
}

// SubscriptionStatsSource exposes the live size of the subscription table.
type SubscriptionStatsSource interface {
	GroupCount() int
	ListenerCount() int
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	broadcastDelivered  prometheus.Counter
	broadcastSkipped    prometheus.Counter
	upsertsTotal        prometheus.Counter
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

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) AddBroadcastDelivered(count int) {
	m.broadcastDelivered.Add(float64(count))
}

func (m *MetricsProvider) IncBroadcastSkipped() {
	m.broadcastSkipped.Inc()
}

func (m *MetricsProvider) IncUpserts() {
	m.upsertsTotal.Inc()
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

func NewMetricsProvider(conf *structures.Config, source SubscriptionStatsSource) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "meetsync_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "meetsync_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "meetsync_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "meetsync_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "meetsync_persistence_duration_seconds",
			Help:    "Duration of snapshot persistence in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		broadcastDelivered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "meetsync_broadcast_delivered_total",
			Help: "Notifications handed to open listeners",
		}),

		broadcastSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "meetsync_broadcast_skipped_total",
			Help: "Notifications skipped because the listener was closed or full",
		}),

		upsertsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "meetsync_availability_upserts_total",
			Help: "Availability records written",
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "meetsync_groups_watched",
		Help: "Groups with at least one connected listener",
	}, func() float64 {
		return float64(source.GroupCount())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "meetsync_listeners",
		Help: "Connected listeners subscribed to a group",
	}, func() float64 {
		return float64(source.ListenerCount())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) AddBroadcastDelivered(_ int)                      {}
func (n *noopMetrics) IncBroadcastSkipped()                             {}
func (n *noopMetrics) IncUpserts()                                      {}
