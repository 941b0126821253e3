package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microfin-hq/microfin/pkg/clientip"
	"github.com/microfin-hq/microfin/pkg/httpserver"
	"github.com/microfin-hq/microfin/pkg/logger"
)

func TestAccessLog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))
	h := httpserver.AccessLog(log, clientip.New(), "/health/live")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))

	for _, p := range []string{"/loans", "/missing", "/health/live"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))

	assert.Equal(t, "INFO", first["level"])
	assert.Equal(t, "/loans", first["path"])
	assert.EqualValues(t, 200, first["status"])
	assert.EqualValues(t, 2, first["bytes"])
	assert.Equal(t, "192.0.2.1", first["ip"])

	assert.Equal(t, "WARN", second["level"])
	assert.EqualValues(t, 404, second["status"])
}
