package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgcache "EcoBoard/pkg/cache"
	applogger "EcoBoard/pkg/logger"
)

func testMemo(t *testing.T) *Memo {
	t.Helper()
	store := pkgcache.NewMemoryCache()
	t.Cleanup(func() { _ = store.Close() })

	log, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewMemo(store, log, nil)
}

func TestDoCachesSuccessfulProduce(t *testing.T) {
	m := testMemo(t)
	ctx := context.Background()

	calls := 0
	produce := func(context.Context) (string, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		got, err := Do(ctx, m, "k", time.Minute, produce)
		if err != nil {
			t.Fatalf("Do: %v", err)
		}
		if got != "value" {
			t.Fatalf("got %q, want %q", got, "value")
		}
	}
	if calls != 1 {
		t.Fatalf("produce called %d times, want 1", calls)
	}
}

func TestDoDoesNotMemoizeFailure(t *testing.T) {
	m := testMemo(t)
	ctx := context.Background()

	calls := 0
	boom := errors.New("upstream down")
	produce := func(context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, boom
		}
		return 42, nil
	}

	for i := 0; i < 2; i++ {
		if _, err := Do(ctx, m, "k", time.Minute, produce); !errors.Is(err, boom) {
			t.Fatalf("want produce error, got %v", err)
		}
	}

	got, err := Do(ctx, m, "k", time.Minute, produce)
	if err != nil {
		t.Fatalf("Do after recovery: %v", err)
	}
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
	if calls != 3 {
		t.Fatalf("produce called %d times, want 3", calls)
	}
}

func TestDoExpiryTriggersRefetch(t *testing.T) {
	m := testMemo(t)
	ctx := context.Background()

	calls := 0
	produce := func(context.Context) (string, error) {
		calls++
		return "v", nil
	}

	if _, err := Do(ctx, m, "k", 10*time.Millisecond, produce); err != nil {
		t.Fatalf("Do: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, err := Do(ctx, m, "k", time.Minute, produce); err != nil {
		t.Fatalf("Do after expiry: %v", err)
	}
	if calls != 2 {
		t.Fatalf("produce called %d times, want 2", calls)
	}
}

func TestDoTypedDestination(t *testing.T) {
	type quote struct {
		Symbol string  `json:"symbol"`
		Price  float64 `json:"price"`
	}
	m := testMemo(t)
	ctx := context.Background()

	produce := func(context.Context) (*quote, error) {
		return &quote{Symbol: "^JKSE", Price: 7200}, nil
	}
	if _, err := Do(ctx, m, "stocks", time.Minute, produce); err != nil {
		t.Fatalf("Do: %v", err)
	}

	got, err := Do(ctx, m, "stocks", time.Minute, func(context.Context) (*quote, error) {
		t.Fatal("produce called on warm cache")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got.Symbol != "^JKSE" || got.Price != 7200 {
		t.Fatalf("got %+v", got)
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	m := testMemo(t)
	ctx := context.Background()

	calls := 0
	produce := func(context.Context) (string, error) {
		calls++
		return "v", nil
	}

	if _, err := Do(ctx, m, "k", time.Minute, produce); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if err := m.Invalidate(ctx, "k"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, err := Do(ctx, m, "k", time.Minute, produce); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 2 {
		t.Fatalf("produce called %d times, want 2", calls)
	}
}
