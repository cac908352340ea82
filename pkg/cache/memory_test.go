package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheSetGetTyped(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	type payload struct {
		Rate   float64 `json:"rate"`
		Source string  `json:"source"`
	}

	if err := mc.Set(ctx, "k", payload{Rate: 15650, Source: "BCA"}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got payload
	if err := mc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Rate != 15650 || got.Source != "BCA" {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", 20*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}

	var s string
	if err := mc.Get(ctx, "k", &s); err != nil || s != "v" {
		t.Fatalf("get before expiry: err=%v s=%q", err, s)
	}

	time.Sleep(30 * time.Millisecond)
	if err := mc.Get(ctx, "k", &s); err != ErrCacheMiss {
		t.Fatalf("expected miss after expiry, got %v", err)
	}
}

func TestMemoryCacheOverwrite(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "k", "old", time.Minute)
	_ = mc.Set(ctx, "k", "new", time.Minute)

	var s string
	if err := mc.Get(ctx, "k", &s); err != nil {
		t.Fatalf("get: %v", err)
	}
	if s != "new" {
		t.Fatalf("expected last write to win, got %q", s)
	}
}
