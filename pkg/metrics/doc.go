// Package metrics exposes Prometheus metrics for the marketplace front end:
// HTTP traffic per route, form validation outcomes, backend call latency,
// cache efficiency and contract explanation outcomes.
//
//	m := metrics.New(metrics.Config{Namespace: "microfin"})
//	r.Use(m.Middleware)
//	r.Handle("/metrics", m.Handler())
//
// A nil *Collector is valid and records nothing.
package metrics
