package cache

import (
	"context"
	"testing"
	"time"
)

// sharedStub stands in for the Redis layer. It rides on MemoryCache for
// storage and tracks expirations so TTL can be answered.
type sharedStub struct {
	*MemoryCache
	expiry map[string]time.Time
}

func newSharedStub() *sharedStub {
	return &sharedStub{
		MemoryCache: NewMemoryCache(),
		expiry:      make(map[string]time.Time),
	}
}

func (s *sharedStub) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	s.expiry[key] = time.Now().Add(expiration)
	return s.MemoryCache.Set(ctx, key, value, expiration)
}

func (s *sharedStub) TTL(_ context.Context, key string) (time.Duration, error) {
	at, ok := s.expiry[key]
	if !ok {
		return -2, nil
	}
	return time.Until(at), nil
}

func newTestLayered(t *testing.T) (*LayeredCache, *sharedStub) {
	t.Helper()

	shared := newSharedStub()
	lc := &LayeredCache{
		memCache:   NewMemoryCache(),
		redisCache: shared,
	}
	t.Cleanup(func() { _ = lc.Close() })
	return lc, shared
}

func TestLayeredBackfillServesFromLocalLayer(t *testing.T) {
	lc, shared := newTestLayered(t)
	ctx := context.Background()

	if err := shared.Set(ctx, "k", "warm", time.Minute); err != nil {
		t.Fatalf("shared set: %v", err)
	}

	var got string
	if err := lc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}

	// Drop the shared copy; the backfilled local entry must still serve.
	if err := shared.Delete(ctx, "k"); err != nil {
		t.Fatalf("shared delete: %v", err)
	}
	got = ""
	if err := lc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get after shared delete: %v", err)
	}
	if got != "warm" {
		t.Errorf("got %q, want warm", got)
	}
}

func TestLayeredBackfillExpiresWithSharedEntry(t *testing.T) {
	lc, shared := newTestLayered(t)
	ctx := context.Background()

	if err := shared.Set(ctx, "k", "short", 40*time.Millisecond); err != nil {
		t.Fatalf("shared set: %v", err)
	}

	var got string
	if err := lc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}

	time.Sleep(80 * time.Millisecond)

	if err := lc.Get(ctx, "k", &got); err != ErrCacheMiss {
		t.Fatalf("get after expiry = %v, want ErrCacheMiss", err)
	}
}

func TestLayeredWriteThroughExpiry(t *testing.T) {
	lc, _ := newTestLayered(t)
	ctx := context.Background()

	if err := lc.Set(ctx, "k", "v", 40*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got string
	if err := lc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}

	time.Sleep(80 * time.Millisecond)

	if err := lc.Get(ctx, "k", &got); err != ErrCacheMiss {
		t.Fatalf("get after expiry = %v, want ErrCacheMiss", err)
	}
}
