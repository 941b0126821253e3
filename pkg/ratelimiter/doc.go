// Package ratelimiter implements a token bucket limiter with an in-memory
// store and HTTP middleware.
//
// Each key owns a bucket that holds up to Capacity tokens and regains
// RefillRate tokens every RefillInterval. A request consumes one token and is
// rejected once the bucket is empty.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, cfg)
//	if err != nil {
//		return err
//	}
//	r.With(ratelimiter.Middleware(limiter, ratelimiter.ByPrincipal(ips.Key))).Post("/contracts", h)
//
// The middleware sets X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset on every response and Retry-After on rejections.
package ratelimiter
