package cache

import (
	"container/list"
	"sync"
	"time"
)

type lruEntry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

func (e *lruEntry[K, V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// Option configures an LRUCache.
type Option[K comparable, V any] func(*LRUCache[K, V])

// WithTTL expires entries ttl after they were last written. Zero disables expiry.
func WithTTL[K comparable, V any](ttl time.Duration) Option[K, V] {
	return func(c *LRUCache[K, V]) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock[K comparable, V any](now func() time.Time) Option[K, V] {
	return func(c *LRUCache[K, V]) {
		if now != nil {
			c.now = now
		}
	}
}

// WithEvictCallback registers fn to run for every entry that leaves the cache
// through eviction, expiry, Remove or Clear.
func WithEvictCallback[K comparable, V any](fn func(key K, value V)) Option[K, V] {
	return func(c *LRUCache[K, V]) {
		c.onEvict = fn
	}
}

// LRUCache is a thread-safe cache that drops the least recently used entry
// once it holds more than its capacity.
type LRUCache[K comparable, V any] struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time
	items    map[K]*list.Element
	eviction *list.List
	mu       sync.Mutex
	onEvict  func(key K, value V)
}

// NewLRUCache creates a cache holding at most capacity entries.
// It panics when capacity is not positive.
func NewLRUCache[K comparable, V any](capacity int, opts ...Option[K, V]) *LRUCache[K, V] {
	if capacity <= 0 {
		panic("LRU cache capacity must be positive")
	}
	c := &LRUCache[K, V]{
		capacity: capacity,
		now:      time.Now,
		items:    make(map[K]*list.Element),
		eviction: list.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value for key and marks it as recently used.
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*lruEntry[K, V])
		if entry.expired(c.now()) {
			c.removeElement(elem)
		} else {
			c.eviction.MoveToFront(elem)
			return entry.value, true
		}
	}

	var zero V
	return zero, false
}

// Put stores value under key, evicting the oldest entry when the cache is
// full. It returns the previous value if one was live.
func (c *LRUCache[K, V]) Put(key K, value V) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = now.Add(c.ttl)
	}

	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*lruEntry[K, V])
		old, live := entry.value, !entry.expired(now)
		entry.value = value
		entry.expiresAt = expiresAt
		c.eviction.MoveToFront(elem)
		if live {
			return old, true
		}
		var zero V
		return zero, false
	}

	elem := c.eviction.PushFront(&lruEntry[K, V]{key: key, value: value, expiresAt: expiresAt})
	c.items[key] = elem

	if c.eviction.Len() > c.capacity {
		c.removeElement(c.eviction.Back())
	}

	var zero V
	return zero, false
}

// Remove deletes key and returns its value if it was present.
func (c *LRUCache[K, V]) Remove(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.removeElement(elem)
		return elem.Value.(*lruEntry[K, V]).value, true
	}

	var zero V
	return zero, false
}

// Values returns the live values from most to least recently used without
// changing their order.
func (c *LRUCache[K, V]) Values() []V {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	out := make([]V, 0, c.eviction.Len())
	for elem := c.eviction.Front(); elem != nil; elem = elem.Next() {
		entry := elem.Value.(*lruEntry[K, V])
		if !entry.expired(now) {
			out = append(out, entry.value)
		}
	}
	return out
}

// Keys returns the keys of live entries from most to least recently used.
func (c *LRUCache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	out := make([]K, 0, c.eviction.Len())
	for elem := c.eviction.Front(); elem != nil; elem = elem.Next() {
		entry := elem.Value.(*lruEntry[K, V])
		if !entry.expired(now) {
			out = append(out, entry.key)
		}
	}
	return out
}

// Len counts stored entries, expired ones included until they are touched.
func (c *LRUCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eviction.Len()
}

// Clear removes every entry.
func (c *LRUCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.onEvict != nil {
		for _, elem := range c.items {
			entry := elem.Value.(*lruEntry[K, V])
			c.onEvict(entry.key, entry.value)
		}
	}
	c.items = make(map[K]*list.Element)
	c.eviction.Init()
}

// Must be called with lock held.
func (c *LRUCache[K, V]) removeElement(elem *list.Element) {
	c.eviction.Remove(elem)
	entry := elem.Value.(*lruEntry[K, V])
	delete(c.items, entry.key)

	if c.onEvict != nil {
		c.onEvict(entry.key, entry.value)
	}
}
