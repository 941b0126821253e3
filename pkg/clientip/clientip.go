package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// DefaultHeaders are consulted when New is called without headers.
var DefaultHeaders = []string{"X-Forwarded-For", "X-Real-IP"}

// Resolver extracts client addresses from requests.
type Resolver struct {
	headers []string
}

// New returns a Resolver trusting the given headers in priority order.
func New(headers ...string) Resolver {
	if len(headers) == 0 {
		headers = DefaultHeaders
	}
	return Resolver{headers: headers}
}

// IP returns the normalised client address or an empty string.
func (res Resolver) IP(r *http.Request) string {
	for _, h := range res.headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		for part := range strings.SplitSeq(v, ",") {
			if ip := parse(part); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parse(r.RemoteAddr)
	}
	return parse(host)
}

// Key returns a rate limit key for anonymous callers.
func (res Resolver) Key(r *http.Request) string {
	if ip := res.IP(r); ip != "" {
		return "ip:" + ip
	}
	return ""
}

func parse(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return addr.Unmap().String()
}
