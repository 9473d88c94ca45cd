package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService owns the Prometheus registry for HTTP traffic, the view cache and the live workshop.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Histogram
	cacheWrite      prometheus.Histogram
	cacheHitRatio   prometheus.Gauge
	cacheLookups    *prometheus.CounterVec
	simTicks        *prometheus.CounterVec
	liveCount       prometheus.Gauge
	chatMessages    *prometheus.CounterVec
	registrations   prometheus.Counter
	exports         *prometheus.CounterVec

	hits   uint64
	misses uint64
}

// MetricsSnapshot is the small JSON summary served next to the Prometheus endpoint.
type MetricsSnapshot struct {
	CacheHits     uint64    `json:"cache_hits"`
	CacheMisses   uint64    `json:"cache_misses"`
	CacheHitRatio float64   `json:"cache_hit_ratio"`
	Goroutines    int       `json:"goroutines"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// NewMetricsService registers every collector on a private registry.
func NewMetricsService() *MetricsService {
	m := &MetricsService{registry: prometheus.NewRegistry()}

	m.requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
	m.requestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
	m.cacheLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "view_cache_latency_seconds",
		Help:    "Latency of view cache lookups",
		Buckets: prometheus.DefBuckets,
	})
	m.cacheWrite = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "view_cache_write_seconds",
		Help:    "Latency of view cache writes",
		Buckets: prometheus.DefBuckets,
	})
	m.cacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "view_cache_hit_ratio",
		Help: "Ratio of view cache hits to lookups",
	})
	m.cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "view_cache_lookups_total",
		Help: "View cache lookups by result",
	}, []string{"result"})
	m.simTicks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "simulation_ticks_total",
		Help: "Simulation steps applied, by task",
	}, []string{"task"})
	m.liveCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "workshop_live_attendees",
		Help: "Current live attendee counter",
	})
	m.chatMessages = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_messages_total",
		Help: "Chat transcript lines, by sender",
	}, []string{"sender"})
	m.registrations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "registrations_total",
		Help: "Successful registration submissions",
	})
	m.exports = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "exports_total",
		Help: "Generated export files, by kind",
	}, []string{"kind"})
	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 { return float64(runtime.NumGoroutine()) })

	m.registry.MustRegister(
		m.requestDuration, m.requestTotal,
		m.cacheLatency, m.cacheWrite, m.cacheHitRatio, m.cacheLookups,
		m.simTicks, m.liveCount, m.chatMessages, m.registrations, m.exports,
		goroutines,
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one served request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, code).Inc()
}

// RecordCacheOperation records a view cache lookup and refreshes the hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
		atomic.AddUint64(&m.hits, 1)
	} else {
		m.cacheLookups.WithLabelValues("miss").Inc()
		atomic.AddUint64(&m.misses, 1)
	}
	hits := atomic.LoadUint64(&m.hits)
	if total := hits + atomic.LoadUint64(&m.misses); total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks view cache write latency.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// RecordSimulationTick counts one applied simulation step.
func (m *MetricsService) RecordSimulationTick(task string) {
	if m == nil {
		return
	}
	m.simTicks.WithLabelValues(task).Inc()
}

// SetLiveCount mirrors the live attendee counter.
func (m *MetricsService) SetLiveCount(n int) {
	if m == nil {
		return
	}
	m.liveCount.Set(float64(n))
}

// RecordChatMessage counts one transcript line.
func (m *MetricsService) RecordChatMessage(sender string) {
	if m == nil {
		return
	}
	m.chatMessages.WithLabelValues(sender).Inc()
}

// RecordRegistration counts one successful submit.
func (m *MetricsService) RecordRegistration() {
	if m == nil {
		return
	}
	m.registrations.Inc()
}

// RecordExport counts one generated file.
func (m *MetricsService) RecordExport(kind string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(kind).Inc()
}

// Snapshot summarises cache effectiveness for the JSON metrics endpoint.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{Goroutines: runtime.NumGoroutine(), GeneratedAt: time.Now().UTC()}
	if m == nil {
		return snap
	}
	snap.CacheHits = atomic.LoadUint64(&m.hits)
	snap.CacheMisses = atomic.LoadUint64(&m.misses)
	if total := snap.CacheHits + snap.CacheMisses; total > 0 {
		snap.CacheHitRatio = float64(snap.CacheHits) / float64(total)
	}
	return snap
}
