package cache

import (
	"context"
	"time"
)

// maxBackfillTTL bounds how long an entry read back from the shared
// layer may live in the local layer. Keeps a local copy from outliving
// the shared entry by more than this window.
const maxBackfillTTL = time.Minute

// sharedLayer is the cross-instance backend behind the in-process
// layer. TTL reports the remaining lifetime of a key so reads can be
// backfilled locally without extending their expiry.
type sharedLayer interface {
	Service
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// LayeredCache implements two-level cache (L1: Memory, L2: Redis).
type LayeredCache struct {
	memCache   *MemoryCache
	redisCache sharedLayer
}

// NewLayeredCache creates a layered cache with memory and Redis.
func NewLayeredCache(redisCache *RedisCache, opts ...LayeredOption) *LayeredCache {
	cfg := defaultLayeredConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	return &LayeredCache{
		memCache:   NewMemoryCache(WithMemoryMaxSize(cfg.MemoryMaxSize)),
		redisCache: redisCache,
	}
}

func (lc *LayeredCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	// Write-through: Redis first, then memory
	if err := lc.redisCache.Set(ctx, key, value, expiration); err != nil {
		return err
	}
	_ = lc.memCache.Set(ctx, key, value, expiration)
	return nil
}

func (lc *LayeredCache) Get(ctx context.Context, key string, dest interface{}) error {
	// L1: Try memory first
	if err := lc.memCache.Get(ctx, key, dest); err == nil {
		return nil
	}

	// L2: Try Redis
	if err := lc.redisCache.Get(ctx, key, dest); err != nil {
		return err
	}

	// Store in memory for next time, at the remaining shared lifetime so
	// the local copy expires with the shared entry.
	ttl, err := lc.redisCache.TTL(ctx, key)
	if err != nil || ttl <= 0 || ttl > maxBackfillTTL {
		ttl = maxBackfillTTL
	}
	_ = lc.memCache.Set(ctx, key, dest, ttl)
	return nil
}

func (lc *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	_ = lc.memCache.Delete(ctx, keys...)
	return lc.redisCache.Delete(ctx, keys...)
}

func (lc *LayeredCache) Exists(ctx context.Context, keys ...string) (bool, error) {
	return lc.redisCache.Exists(ctx, keys...)
}

// Close closes both cache layers.
func (lc *LayeredCache) Close() error {
	_ = lc.memCache.Close()
	return lc.redisCache.Close()
}
