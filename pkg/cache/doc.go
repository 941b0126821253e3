// Package cache provides a generic, thread-safe LRU cache with optional
// per-entry expiry.
//
//	explanations := cache.NewLRUCache[string, string](512,
//		cache.WithTTL[string, string](time.Hour),
//	)
//	explanations.Put(key, text)
//	text, ok := explanations.Get(key)
//
// Get, Put and Remove are O(1). Expired entries are dropped lazily when they
// are read or overwritten, and pushed out by the LRU order otherwise.
package cache
