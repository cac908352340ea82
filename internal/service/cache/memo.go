package cache

import (
	"context"
	"time"

	"EcoBoard/pkg/cache"
	applogger "EcoBoard/pkg/logger"
)

// Observer is notified about memoization outcomes. It matches the
// metrics recorder but stays an interface so tests can run without one.
type Observer interface {
	RecordCache(key string, hit bool)
	RecordLatency(op string, seconds float64)
}

// Memo wraps a cache backend with produce-on-miss semantics. A failed
// produce is never stored, so the next call retries the upstream.
type Memo struct {
	store    cache.Service
	logger   *applogger.Logger
	observer Observer
}

func NewMemo(store cache.Service, logger *applogger.Logger, observer Observer) *Memo {
	return &Memo{store: store, logger: logger, observer: observer}
}

// Do returns the cached value for key when a fresh entry exists,
// otherwise invokes produce and stores the result for ttl. Concurrent
// misses may each invoke produce; the last write wins.
func Do[T any](ctx context.Context, m *Memo, key string, ttl time.Duration, produce func(context.Context) (T, error)) (T, error) {
	var cached T
	err := m.store.Get(ctx, key, &cached)
	if err == nil {
		m.observe(key, true)
		return cached, nil
	}
	if err != cache.ErrCacheMiss {
		m.logger.Warn("cache read failed",
			applogger.String("key", key),
			applogger.Error(err))
	}
	m.observe(key, false)

	start := time.Now()
	fresh, err := produce(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if m.observer != nil {
		m.observer.RecordLatency("produce:"+key, time.Since(start).Seconds())
	}

	if err := m.store.Set(ctx, key, fresh, ttl); err != nil {
		m.logger.Warn("cache write failed",
			applogger.String("key", key),
			applogger.Error(err))
	}
	return fresh, nil
}

func (m *Memo) observe(key string, hit bool) {
	if m.observer != nil {
		m.observer.RecordCache(key, hit)
	}
}

// Invalidate drops a key so the next Do call re-fetches.
func (m *Memo) Invalidate(ctx context.Context, key string) error {
	return m.store.Delete(ctx, key)
}
