package clientip_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/microfin-hq/microfin/pkg/clientip"
)

func TestResolver_IP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		trusted []string
		want    string
	}{
		{name: "remote addr", remote: "10.0.0.1:5000", want: "10.0.0.1"},
		{name: "remote without port", remote: "10.0.0.2", want: "10.0.0.2"},
		{name: "forwarded first valid", headers: map[string]string{"X-Forwarded-For": "bogus, 203.0.113.7, 10.0.0.1"}, remote: "10.0.0.1:1", want: "203.0.113.7"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "198.51.100.4"}, remote: "10.0.0.1:1", want: "198.51.100.4"},
		{name: "untrusted header ignored", headers: map[string]string{"CF-Connecting-IP": "198.51.100.9"}, remote: "10.0.0.1:1", want: "10.0.0.1"},
		{name: "custom header", headers: map[string]string{"CF-Connecting-IP": "198.51.100.9"}, remote: "10.0.0.1:1", trusted: []string{"CF-Connecting-IP"}, want: "198.51.100.9"},
		{name: "mapped v4", remote: "[::ffff:192.0.2.1]:80", want: "192.0.2.1"},
		{name: "ipv6", remote: "[2001:db8::1]:80", want: "2001:db8::1"},
		{name: "garbage", remote: "nope", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.New(tt.trusted...).IP(r))
		})
	}
}

func TestResolver_Key(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.10:443"
	assert.Equal(t, "ip:192.0.2.10", clientip.New().Key(r))

	r.RemoteAddr = ""
	assert.Empty(t, clientip.New().Key(r))
}
