package ratelimiter

import (
	"net/http"
	"strconv"

	"github.com/microfin-hq/microfin/pkg/session"
)

// KeyFunc extracts the bucket key from a request. An empty key skips
// limiting.
type KeyFunc func(r *http.Request) string

// ByPrincipal keys requests by the signed-in user and falls back to
// anonymous for everyone else.
func ByPrincipal(anonymous KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		if p, ok := session.PrincipalFromContext(r.Context()); ok && p.UserID != "" {
			return "user:" + p.UserID
		}
		if anonymous == nil {
			return ""
		}
		return anonymous(r)
	}
}

// RejectFunc writes the response for a denied request. Rate limit headers
// are already set.
type RejectFunc func(w http.ResponseWriter, r *http.Request, res Result)

type middlewareOptions struct {
	reject RejectFunc
	scope  string
}

type MiddlewareOption func(*middlewareOptions)

// WithReject replaces the plain text 429 response.
func WithReject(fn RejectFunc) MiddlewareOption {
	return func(o *middlewareOptions) {
		if fn != nil {
			o.reject = fn
		}
	}
}

// WithScope prefixes keys so one store can serve several limiters.
func WithScope(scope string) MiddlewareOption {
	return func(o *middlewareOptions) { o.scope = scope }
}

// Middleware consumes one token per request.
func Middleware(b *Bucket, key KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	o := middlewareOptions{
		reject: func(w http.ResponseWriter, _ *http.Request, _ Result) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		},
	}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}
			if o.scope != "" {
				k = o.scope + ":" + k
			}

			res, err := b.Allow(r.Context(), k)
			if err != nil {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed() {
				if secs := int(res.RetryAfter().Seconds()); secs > 0 {
					h.Set("Retry-After", strconv.Itoa(secs))
				}
				o.reject(w, r, res)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
