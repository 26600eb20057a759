package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/career-guide-api/internal/models"
)

const metricsNamespace = "career_guide"

// timing accumulates a count and total duration for averaged snapshots.
type timing struct {
	count atomic.Uint64
	nanos atomic.Uint64
}

func (t *timing) add(d time.Duration) {
	t.count.Add(1)
	t.nanos.Add(uint64(d.Nanoseconds()))
}

func (t *timing) averageMs() (uint64, float64) {
	n := t.count.Load()
	if n == 0 {
		return 0, 0
	}
	return n, float64(t.nanos.Load()) / float64(n) / float64(time.Millisecond)
}

// MetricsService owns the Prometheus registry and keeps running totals for the
// JSON summary endpoint. A nil *MetricsService is a valid no-op.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	httpDuration  *prometheus.HistogramVec
	httpRequests  *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
	cacheDuration *prometheus.HistogramVec
	dbDuration    *prometheus.HistogramVec
	checks        *prometheus.CounterVec
	outcomes      *prometheus.CounterVec
	evalDuration  prometheus.Histogram

	requests    timing
	queries     timing
	cacheHits   atomic.Uint64
	cacheMisses atomic.Uint64
	checkCount  atomic.Uint64
	eligible    atomic.Uint64
	borderline  atomic.Uint64
	notEligible atomic.Uint64
}

// NewMetricsService builds a private registry with HTTP, cache, database and
// eligibility collectors plus the Go runtime and process collectors.
func NewMetricsService() *MetricsService {
	m := &MetricsService{registry: prometheus.NewRegistry()}

	m.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route template.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route template and status.",
	}, []string{"method", "path", "status"})
	m.cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "catalog_cache_lookups_total",
		Help:      "Catalog cache lookups by result.",
	}, []string{"result"})
	m.cacheDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "catalog_cache_duration_seconds",
		Help:      "Catalog cache round trip latency.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
	}, []string{"op"})
	m.dbDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "db_query_duration_seconds",
		Help:      "Catalog database query latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"query"})
	m.checks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "eligibility_checks_total",
		Help:      "Eligibility checks by student level.",
	}, []string{"level"})
	m.outcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "eligibility_results_total",
		Help:      "Per-college classifications by status and student level.",
	}, []string{"status", "level"})
	m.evalDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "eligibility_evaluation_seconds",
		Help:      "Time spent classifying one profile against the catalog.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
	})
	hitRatio := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "catalog_cache_hit_ratio",
		Help:      "Share of catalog cache lookups served from cache.",
	}, func() float64 {
		_, _, ratio := m.cacheTotals()
		return ratio
	})

	m.registry.MustRegister(
		m.httpDuration, m.httpRequests,
		m.cacheLookups, m.cacheDuration, hitRatio,
		m.dbDuration,
		m.checks, m.outcomes, m.evalDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
	return m
}

// Handler serves the Prometheus exposition format.
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
	m.httpDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	m.httpRequests.WithLabelValues(method, path, code).Inc()
	m.requests.add(duration)
}

// RecordCacheOperation records a catalog cache lookup.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheDuration.WithLabelValues("get").Observe(duration.Seconds())
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
		m.cacheHits.Add(1)
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
	m.cacheMisses.Add(1)
}

// ObserveCacheWrite records a catalog cache write.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheDuration.WithLabelValues("set").Observe(duration.Seconds())
}

// ObserveDBQuery records a catalog query.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbDuration.WithLabelValues(label).Observe(duration.Seconds())
	m.queries.add(duration)
}

// RecordEligibility counts the outcome of one evaluation pass.
func (m *MetricsService) RecordEligibility(level models.Level, summary models.EligibilitySummary, duration time.Duration) {
	if m == nil {
		return
	}
	lvl := string(level)
	m.checks.WithLabelValues(lvl).Inc()
	m.outcomes.WithLabelValues(string(models.StatusEligible), lvl).Add(float64(summary.Eligible))
	m.outcomes.WithLabelValues(string(models.StatusBorderline), lvl).Add(float64(summary.Borderline))
	m.outcomes.WithLabelValues(string(models.StatusNotEligible), lvl).Add(float64(summary.NotEligible))
	m.evalDuration.Observe(duration.Seconds())

	m.checkCount.Add(1)
	m.eligible.Add(uint64(summary.Eligible))
	m.borderline.Add(uint64(summary.Borderline))
	m.notEligible.Add(uint64(summary.NotEligible))
}

func (m *MetricsService) cacheTotals() (hits, misses uint64, ratio float64) {
	hits, misses = m.cacheHits.Load(), m.cacheMisses.Load()
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return hits, misses, ratio
}

// Snapshot returns the running totals as a JSON-friendly struct.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	requests, requestMs := m.requests.averageMs()
	queries, queryMs := m.queries.averageMs()
	hits, misses, ratio := m.cacheTotals()

	outcomes := models.EligibilitySummary{
		Eligible:    int(m.eligible.Load()),
		Borderline:  int(m.borderline.Load()),
		NotEligible: int(m.notEligible.Load()),
	}
	outcomes.Total = outcomes.Eligible + outcomes.Borderline + outcomes.NotEligible

	return models.SystemMetrics{
		HTTP:        models.HTTPMetrics{Requests: requests, AverageDurationMs: requestMs},
		Cache:       models.CacheMetrics{Hits: hits, Misses: misses, HitRatio: ratio},
		Database:    models.DatabaseMetrics{Queries: queries, AverageDurationMs: queryMs},
		Eligibility: models.EligibilityMetrics{Checks: m.checkCount.Load(), Outcomes: outcomes},
		Goroutines:  runtime.NumGoroutine(),
		GeneratedAt: time.Now().UTC(),
	}
}
