package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the dashboard.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	renderCycles    *prometheus.CounterVec
	renderRecords   prometheus.Histogram
	upstreamLatency *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sales_dashboard_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sales_dashboard_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		renderCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sales_dashboard_render_cycles_total",
			Help: "Render cycles by outcome.",
		}, []string{"outcome"}),
		renderRecords: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sales_dashboard_render_records",
			Help:    "Records aggregated per render cycle after the seller filter.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sales_dashboard_upstream_fetch_duration_seconds",
			Help:    "Latency of the sales API fetch by result.",
			Buckets: prometheus.DefBuckets,
		}, []string{"result"}),
	}
	registry.MustRegister(m.requestsTotal, m.requestDuration, m.renderCycles, m.renderRecords, m.upstreamLatency)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records request count and latency per chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveRenderCycle counts one finished render cycle. outcome is "ok" or an
// error code.
func (m *Metrics) ObserveRenderCycle(outcome string, records int) {
	if m == nil {
		return
	}
	m.renderCycles.WithLabelValues(outcome).Inc()
	if outcome == "ok" {
		m.renderRecords.Observe(float64(records))
	}
}

func (m *Metrics) ObserveUpstreamFetch(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamLatency.WithLabelValues(result).Observe(d.Seconds())
}

func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
