package models

import "time"

// CurrencyRates maps currency codes (USD, SGD, JPY, EUR, ...) to their
// rate in IDR per unit of foreign currency.
type CurrencyRates struct {
	Rates     map[string]float64 `json:"rates"`
	Source    string             `json:"source"`
	FetchedAt time.Time          `json:"fetchedAt"`
}

// Valid reports whether the result carries the primary USD rate. A
// result without it is treated as a provider failure, not a partial
// success.
func (r *CurrencyRates) Valid() bool {
	return r != nil && r.Rates["USD"] > 0
}

// GoldPrice carries the upstream gold quote. Ounce is the raw price per
// troy ounce; Gram is derived from it.
type GoldPrice struct {
	Gram      float64   `json:"gram"`
	Ounce     float64   `json:"ounce"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// StockIndex is a single index quote. Change is a pre-formatted
// percentage string ("-0.42%"); nil when the upstream omitted it.
type StockIndex struct {
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Change    *string   `json:"change"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// NewsItem is one headline from an RSS feed. A zero PubDate means the
// feed item had no parseable date; such items sort last.
type NewsItem struct {
	Title   string    `json:"title"`
	Link    string    `json:"link"`
	Source  string    `json:"source"`
	PubDate time.Time `json:"pubDate"`
}

// EconomicSnapshot is the composed display payload. Each domain is nil
// when its entire provider chain failed; UpdatedAt is stamped at
// composition time, not per-domain fetch time.
type EconomicSnapshot struct {
	CurrencyRates *CurrencyRates `json:"currencyRates"`
	GoldPrice     *GoldPrice     `json:"goldPrice"`
	StockIndex    *StockIndex    `json:"stockIndex"`
	News          []NewsItem     `json:"news"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// RatePoint is one appended history sample for trend rendering.
type RatePoint struct {
	TS     time.Time `json:"ts"`
	Domain string    `json:"domain"`
	Source string    `json:"source"`
	Value  float64   `json:"value"`
}
