package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the Prometheus metrics of the application and implements
// [PipelineHooks], [CacheHooks] and [HTTPHooks].
//
// Each Collector owns a private registry, so several collectors (one per
// test, say) never clash on registration.
type Collector struct {
	registry *prometheus.Registry

	// Inbound API metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Pipeline metrics
	Extractions        *prometheus.CounterVec
	ExtractionDuration *prometheus.HistogramVec
	BackendFailures    *prometheus.CounterVec
	HierarchyNodes     prometheus.Histogram
	Renders            *prometheus.CounterVec
	RenderDuration     *prometheus.HistogramVec

	// Cache metrics
	CacheEvents *prometheus.CounterVec

	// Outbound HTTP metrics
	BackendRequests *prometheus.CounterVec
	BackendDuration *prometheus.HistogramVec
}

// NewCollector creates a collector whose metrics are prefixed with namespace.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of inbound HTTP requests",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Inbound HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Total number of graph extractions by backend and outcome",
		}, []string{"backend", "status"}),
		ExtractionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extraction_duration_seconds",
			Help:      "Graph extraction duration in seconds",
			Buckets:   []float64{.1, .5, 1, 2.5, 5, 10, 20, 45, 90},
		}, []string{"backend"}),
		BackendFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_failures_total",
			Help:      "Total number of extraction backend failures recovered by fallback",
		}, []string{"backend"}),
		HierarchyNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "hierarchy_nodes",
			Help:      "Number of nodes in normalized hierarchies",
			Buckets:   prometheus.LinearBuckets(5, 5, 10),
		}),
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Total number of rendered diagrams by format and outcome",
		}, []string{"format", "status"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Diagram render duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"format"}),
		CacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Cache hits, misses and writes by key type",
		}, []string{"key_type", "event"}),
		BackendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Total number of outbound backend requests",
		}, []string{"host", "status"}),
		BackendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Outbound backend request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"host"}),
	}

	c.registry.MustRegister(
		c.RequestsTotal,
		c.RequestDuration,
		c.Extractions,
		c.ExtractionDuration,
		c.BackendFailures,
		c.HierarchyNodes,
		c.Renders,
		c.RenderDuration,
		c.CacheEvents,
		c.BackendRequests,
		c.BackendDuration,
	)
	return c
}

// Registry returns the Prometheus registry for this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collector's metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one inbound API request.
func (c *Collector) ObserveRequest(method, route string, status int, duration time.Duration) {
	c.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// =============================================================================
// PipelineHooks
// =============================================================================

func (c *Collector) OnExtractStart(context.Context, bool) {}

func (c *Collector) OnExtractComplete(_ context.Context, backend string, _ int, d time.Duration, err error) {
	if backend == "" {
		backend = "none"
	}
	c.Extractions.WithLabelValues(backend, outcome(err)).Inc()
	c.ExtractionDuration.WithLabelValues(backend).Observe(d.Seconds())
}

func (c *Collector) OnBackendFailure(_ context.Context, backend string, _ error) {
	c.BackendFailures.WithLabelValues(backend).Inc()
}

func (c *Collector) OnNormalizeComplete(_ context.Context, nodeCount, _ int, _ time.Duration) {
	c.HierarchyNodes.Observe(float64(nodeCount))
}

func (c *Collector) OnRenderStart(context.Context, string) {}

func (c *Collector) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	c.Renders.WithLabelValues(format, outcome(err)).Inc()
	c.RenderDuration.WithLabelValues(format).Observe(d.Seconds())
}

// =============================================================================
// CacheHooks
// =============================================================================

func (c *Collector) OnCacheHit(_ context.Context, keyType string) {
	c.CacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (c *Collector) OnCacheMiss(_ context.Context, keyType string) {
	c.CacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (c *Collector) OnCacheSet(_ context.Context, keyType string, _ int) {
	c.CacheEvents.WithLabelValues(keyType, "set").Inc()
}

// =============================================================================
// HTTPHooks
// =============================================================================

func (c *Collector) OnRequest(context.Context, string, string, string) {}

func (c *Collector) OnResponse(_ context.Context, _, host, _ string, status int, d time.Duration) {
	c.BackendRequests.WithLabelValues(host, strconv.Itoa(status)).Inc()
	c.BackendDuration.WithLabelValues(host).Observe(d.Seconds())
}

func (c *Collector) OnError(_ context.Context, _, host, _ string, _ error) {
	c.BackendRequests.WithLabelValues(host, "error").Inc()
}

var (
	_ PipelineHooks = (*Collector)(nil)
	_ CacheHooks    = (*Collector)(nil)
	_ HTTPHooks     = (*Collector)(nil)
)
