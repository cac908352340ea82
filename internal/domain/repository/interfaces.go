package repository

import (
	"context"
	"time"

	"EcoBoard/internal/domain/models"
)

// RateProvider fetches IDR exchange rates from one upstream. Providers
// are tried in order; an unconfigured provider is skipped silently while
// a configured one that fails logs and falls through to the next.
type RateProvider interface {
	Name() string
	Configured() bool
	Fetch(ctx context.Context) (*models.CurrencyRates, error)
}

// GoldProvider fetches the current gold quote.
type GoldProvider interface {
	Name() string
	Configured() bool
	Fetch(ctx context.Context) (*models.GoldPrice, error)
}

// StockProvider fetches a single index quote.
type StockProvider interface {
	Name() string
	Configured() bool
	Fetch(ctx context.Context) (*models.StockIndex, error)
}

// NewsProvider fetches merged headlines across the configured feeds.
type NewsProvider interface {
	Name() string
	Configured() bool
	Fetch(ctx context.Context) ([]models.NewsItem, error)
}

// Metrics records provider outcomes. A nil-safe no-op implementation is
// used when metrics are disabled.
type Metrics interface {
	RecordFetch(domain, provider, result string)
	RecordFallback(domain string)
	RecordCache(key string, hit bool)
	RecordLatency(op string, seconds float64)
}

// HistoryStore persists rate samples for trend charts.
type HistoryStore interface {
	Append(ctx context.Context, points []models.RatePoint) error
	Range(ctx context.Context, domain string, from, to time.Time, limit int) ([]models.RatePoint, error)
	Close() error
}

// EventPublisher emits a refresh event each time a domain is re-fetched
// from upstream (cache misses only, not served-from-cache reads).
type EventPublisher interface {
	PublishRefresh(ctx context.Context, domain, source string, at time.Time) error
	Close() error
}
