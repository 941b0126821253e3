package ratelimiter_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microfin-hq/microfin/pkg/ratelimiter"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newLimiter(t *testing.T, cfg ratelimiter.Config) (*ratelimiter.Bucket, *ratelimiter.MemoryStore, *clock) {
	t.Helper()
	c := &clock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0), ratelimiter.WithClock(c.Now))
	t.Cleanup(func() { _ = store.Close() })
	b, err := ratelimiter.NewBucket(store, cfg, ratelimiter.WithBucketClock(c.Now))
	require.NoError(t, err)
	return b, store, c
}

func TestNewBucket_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  ratelimiter.Config
	}{
		{name: "zero capacity", cfg: ratelimiter.Config{RefillRate: 1, RefillInterval: time.Second}},
		{name: "zero rate", cfg: ratelimiter.Config{Capacity: 1, RefillInterval: time.Second}},
		{name: "zero interval", cfg: ratelimiter.Config{Capacity: 1, RefillRate: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0)), tt.cfg)
			assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
		})
	}
}

func TestBucket_AllowAndRefill(t *testing.T) {
	t.Parallel()

	b, _, c := newLimiter(t, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: 10 * time.Second})
	ctx := context.Background()

	for i := range 2 {
		res, err := b.Allow(ctx, "user:1")
		require.NoError(t, err)
		assert.True(t, res.Allowed(), "request %d", i)
		assert.Equal(t, 2, res.Limit)
	}

	res, err := b.Allow(ctx, "user:1")
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.Equal(t, 10*time.Second, res.RetryAfter())

	other, err := b.Allow(ctx, "user:2")
	require.NoError(t, err)
	assert.True(t, other.Allowed())

	c.Advance(10 * time.Second)
	res, err = b.Allow(ctx, "user:1")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
	assert.Equal(t, 0, res.Remaining)
	assert.Zero(t, res.RetryAfter())
}

func TestBucket_DeniedRequestsDoNotDrain(t *testing.T) {
	t.Parallel()

	b, _, c := newLimiter(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})
	ctx := context.Background()

	_, err := b.Allow(ctx, "k")
	require.NoError(t, err)
	for range 5 {
		res, err := b.Allow(ctx, "k")
		require.NoError(t, err)
		assert.False(t, res.Allowed())
	}

	c.Advance(time.Minute)
	res, err := b.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
}

func TestBucket_RefillCapsAtCapacity(t *testing.T) {
	t.Parallel()

	b, _, c := newLimiter(t, ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: time.Second})
	ctx := context.Background()

	_, err := b.AllowN(ctx, "k", 3)
	require.NoError(t, err)
	c.Advance(24 * time.Hour)

	res, err := b.Status(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Remaining)
}

func TestBucket_AllowNInvalid(t *testing.T) {
	t.Parallel()

	b, _, _ := newLimiter(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second})
	_, err := b.AllowN(context.Background(), "k", 0)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
}

func TestBucket_Reset(t *testing.T) {
	t.Parallel()

	b, store, _ := newLimiter(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})
	ctx := context.Background()

	_, err := b.Allow(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	require.NoError(t, b.Reset(ctx, "k"))
	assert.Equal(t, 0, store.Len())

	res, err := b.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
}

func TestBucket_Concurrent(t *testing.T) {
	t.Parallel()

	b, _, _ := newLimiter(t, ratelimiter.Config{Capacity: 50, RefillRate: 1, RefillInterval: time.Hour})
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := b.Allow(ctx, "shared")
			if err == nil && res.Allowed() {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}

func TestMemoryStore_CloseTwice(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(time.Millisecond))
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
