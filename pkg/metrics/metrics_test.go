package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microfin-hq/microfin/pkg/metrics"
)

func scrape(t *testing.T, c *metrics.Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestCollector(t *testing.T) {
	t.Parallel()

	c := metrics.New(metrics.Config{Namespace: "test"})
	c.ObserveValidation("loan_application", false)
	c.ObserveValidation("loan_application", false)
	c.ObserveValidation("login", true)
	c.ObserveBackend("list_applications", nil, 120*time.Millisecond)
	c.ObserveExplanation("claude", assert.AnError)
	c.CacheHit("explanations")
	c.CacheMiss("explanations")
	c.CacheMiss("explanations")

	body := scrape(t, c)
	assert.Contains(t, body, `test_validations_total{form="loan_application",result="invalid"} 2`)
	assert.Contains(t, body, `test_validations_total{form="login",result="valid"} 1`)
	assert.Contains(t, body, `test_backend_request_duration_seconds_count{operation="list_applications",outcome="ok"} 1`)
	assert.Contains(t, body, `test_explanations_total{outcome="error",provider="claude"} 1`)
	assert.Contains(t, body, `test_cache_hits_total{cache="explanations"} 1`)
	assert.Contains(t, body, `test_cache_misses_total{cache="explanations"} 2`)
}

func TestCollector_Middleware(t *testing.T) {
	t.Parallel()

	c := metrics.New(metrics.Config{Namespace: "test"})
	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/market/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/market/"+id, nil))
	}

	count, err := testutil.GatherAndCount(c.Registry(), "test_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Contains(t, scrape(t, c), `test_http_requests_total{method="GET",route="/market/{id}",status="404"} 3`)
}

func TestCollector_Nil(t *testing.T) {
	t.Parallel()

	var c *metrics.Collector
	assert.NotPanics(t, func() {
		c.ObserveValidation("login", true)
		c.ObserveBackend("login", nil, time.Second)
		c.CacheHit("x")
		c.CacheMiss("x")
		c.ObserveExplanation("backend", nil)
	})

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	assert.NotNil(t, c.Middleware(next))

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
