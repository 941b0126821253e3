package cache_test

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microfin-hq/microfin/pkg/cache"
)

func TestLRUCache_Basic(t *testing.T) {
	t.Parallel()

	c := cache.NewLRUCache[string, int](3)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	_, existed := c.Put("a", 1)
	assert.False(t, existed)

	old, existed := c.Put("a", 2)
	assert.True(t, existed)
	assert.Equal(t, 1, old)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())

	removed, ok := c.Remove("a")
	assert.True(t, ok)
	assert.Equal(t, 2, removed)
	_, ok = c.Remove("a")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	t.Parallel()

	var evicted []string
	c := cache.NewLRUCache(2, cache.WithEvictCallback(func(k string, _ int) {
		evicted = append(evicted, k)
	}))

	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a")
	c.Put("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok, "b was least recently used")
	assert.Equal(t, []string{"b"}, evicted)
	assert.Equal(t, []int{3, 1}, c.Values())
	assert.Equal(t, []string{"c", "a"}, c.Keys())

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.ElementsMatch(t, []string{"b", "a", "c"}, evicted)
}

func TestLRUCache_TTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := cache.NewLRUCache(4,
		cache.WithTTL[string, string](time.Minute),
		cache.WithClock[string, string](clock),
	)

	c.Put("explain:/risk", "high")
	now = now.Add(30 * time.Second)
	v, ok := c.Get("explain:/risk")
	require.True(t, ok)
	assert.Equal(t, "high", v)

	c.Put("explain:/rate", "fixed")
	now = now.Add(45 * time.Second)

	_, ok = c.Get("explain:/risk")
	assert.False(t, ok, "written 75s ago")
	assert.Equal(t, []string{"fixed"}, c.Values())

	_, existed := c.Put("explain:/risk", "again")
	assert.False(t, existed)

	now = now.Add(time.Minute)
	_, existed = c.Put("explain:/rate", "refreshed")
	assert.False(t, existed, "expired values are not reported as previous")
}

func TestLRUCache_InvalidCapacity(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { cache.NewLRUCache[string, int](0) })
}

func TestLRUCache_Concurrent(t *testing.T) {
	t.Parallel()

	c := cache.NewLRUCache[string, int](50)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				key := strconv.Itoa((g*200 + i) % 80)
				c.Put(key, i)
				c.Get(key)
				if i%10 == 0 {
					c.Remove(key)
				}
			}
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 50)
}
