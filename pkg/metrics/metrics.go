package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config configures the collector.
type Config struct {
	Namespace string `env:"METRICS_NAMESPACE" envDefault:"microfin"`
	Enabled   bool   `env:"METRICS_ENABLED" envDefault:"true"`
}

// Collector owns the application metrics and their registry.
// All recording methods are no-ops on a nil *Collector.
type Collector struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	validations  *prometheus.CounterVec
	backendCalls *prometheus.HistogramVec
	cacheHits    *prometheus.CounterVec
	cacheMisses  *prometheus.CounterVec
	explanations *prometheus.CounterVec
}

// New registers the application metrics on a fresh registry together with
// the Go runtime and process collectors.
func New(cfg Config) *Collector {
	ns := cfg.Namespace
	if ns == "" {
		ns = "microfin"
	}
	reg := prometheus.NewRegistry()

	c := &Collector{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "validations_total",
			Help:      "Form validations by form and result.",
		}, []string{"form", "result"}),
		backendCalls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Marketplace backend call latency by operation and outcome.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"operation", "outcome"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Cache hits by cache name.",
		}, []string{"cache"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Cache misses by cache name.",
		}, []string{"cache"}),
		explanations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "explanations_total",
			Help:      "Contract term explanations by provider and outcome.",
		}, []string{"provider", "outcome"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.httpRequests,
		c.httpDuration,
		c.validations,
		c.backendCalls,
		c.cacheHits,
		c.cacheMisses,
		c.explanations,
	)
	return c
}

// Registry exposes the underlying registry for tests and extra collectors.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}

// ObserveValidation counts one validation of form.
func (c *Collector) ObserveValidation(form string, valid bool) {
	if c == nil {
		return
	}
	result := "invalid"
	if valid {
		result = "valid"
	}
	c.validations.WithLabelValues(form, result).Inc()
}

// ObserveBackend records the latency of one backend call.
func (c *Collector) ObserveBackend(operation string, err error, d time.Duration) {
	if c == nil {
		return
	}
	c.backendCalls.WithLabelValues(operation, outcome(err)).Observe(d.Seconds())
}

// ObserveExplanation counts one explanation request served by provider.
func (c *Collector) ObserveExplanation(provider string, err error) {
	if c == nil {
		return
	}
	c.explanations.WithLabelValues(provider, outcome(err)).Inc()
}

func (c *Collector) CacheHit(cache string) {
	if c == nil {
		return
	}
	c.cacheHits.WithLabelValues(cache).Inc()
}

func (c *Collector) CacheMiss(cache string) {
	if c == nil {
		return
	}
	c.cacheMisses.WithLabelValues(cache).Inc()
}

// Middleware records request counts and latency labelled by the chi route
// pattern, so path parameters do not explode cardinality.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	if c == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		c.httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		c.httpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
