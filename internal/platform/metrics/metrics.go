// Package metrics exposes dashboard telemetry through a dedicated Prometheus registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "crypto_pulse"

// DashboardMetrics records fetch, surface and HTTP activity.
type DashboardMetrics struct {
	registry *prometheus.Registry

	FetchesIssued   *prometheus.CounterVec
	FetchesSettled  *prometheus.CounterVec
	FetchDuration   *prometheus.HistogramVec
	SurfacesCreated *prometheus.CounterVec
	SurfacesLive    *prometheus.GaugeVec
	Loading         prometheus.Gauge

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

func NewDashboardMetrics() *DashboardMetrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &DashboardMetrics{
		registry: reg,

		FetchesIssued: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "issued_total",
			Help:      "Price history retrievals issued, by currency",
		}, []string{"currency"}),

		FetchesSettled: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "settled_total",
			Help:      "Price history retrievals settled, by currency and outcome (applied, failed, discarded)",
		}, []string{"currency", "outcome"}),

		FetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "duration_seconds",
			Help:      "Time from issuing a retrieval to its settlement",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"outcome"}),

		SurfacesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "surface",
			Name:      "created_total",
			Help:      "Render surfaces created, by region",
		}, []string{"region"}),

		SurfacesLive: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "surface",
			Name:      "live",
			Help:      "Render surfaces currently alive, by region",
		}, []string{"region"}),

		Loading: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "chart",
			Name:      "loading",
			Help:      "1 while the live chart generation is loading",
		}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served, by route, method and status",
		}, []string{"route", "method", "status"}),

		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency, by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

func (m *DashboardMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *DashboardMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *DashboardMetrics) RecordFetchIssued(currency string) {
	m.FetchesIssued.WithLabelValues(currency).Inc()
}

func (m *DashboardMetrics) RecordFetchSettled(currency, outcome string, seconds float64) {
	m.FetchesSettled.WithLabelValues(currency, outcome).Inc()
	m.FetchDuration.WithLabelValues(outcome).Observe(seconds)
}

func (m *DashboardMetrics) RecordSurfaceCreated(region string) {
	m.SurfacesCreated.WithLabelValues(region).Inc()
	m.SurfacesLive.WithLabelValues(region).Inc()
}

func (m *DashboardMetrics) RecordSurfaceDisposed(region string) {
	m.SurfacesLive.WithLabelValues(region).Dec()
}

func (m *DashboardMetrics) SetLoading(loading bool) {
	if loading {
		m.Loading.Set(1)
		return
	}
	m.Loading.Set(0)
}

// GinMiddleware records request counts and latency keyed by the matched route.
func (m *DashboardMetrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
