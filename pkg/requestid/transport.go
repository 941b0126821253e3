package requestid

import "net/http"

// Transport copies the request ID from the outgoing request's context into
// the X-Request-ID header so the backend can correlate its logs with ours.
type Transport struct {
	Base http.RoundTripper
}

// NewTransport wraps base, or http.DefaultTransport when base is nil.
func NewTransport(base http.RoundTripper) *Transport {
	return &Transport{Base: base}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	id := FromContext(req.Context())
	if id == "" || req.Header.Get(Header) != "" {
		return base.RoundTrip(req)
	}

	// RoundTrippers must not modify the caller's request.
	clone := req.Clone(req.Context())
	clone.Header.Set(Header, id)
	return base.RoundTrip(clone)
}
