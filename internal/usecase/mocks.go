package usecase

import (
	"time"

	"EcoBoard/internal/domain/models"
)

// Static values served when every real provider in a chain is down or
// unconfigured. Screens keep rendering plausible numbers instead of
// blanks; the "fallback" source lets operators spot the condition.

func mockCurrencyRates(now time.Time) *models.CurrencyRates {
	return &models.CurrencyRates{
		Rates: map[string]float64{
			"USD": 15650,
			"SGD": 11600,
			"JPY": 104.25,
			"EUR": 17050,
		},
		Source:    "fallback",
		FetchedAt: now,
	}
}

func mockGoldPrice(now time.Time) *models.GoldPrice {
	return &models.GoldPrice{
		Gram:      74,
		Ounce:     2300,
		Source:    "fallback",
		FetchedAt: now,
	}
}

func mockStockIndex(symbol, name string, now time.Time) *models.StockIndex {
	return &models.StockIndex{
		Symbol:    symbol,
		Name:      name,
		Price:     7200,
		Change:    nil,
		Source:    "fallback",
		FetchedAt: now,
	}
}

func mockNews(now time.Time) []models.NewsItem {
	return []models.NewsItem{
		{
			Title:   "Rupiah stabil di tengah pergerakan pasar global",
			Link:    "https://www.bi.go.id",
			Source:  "fallback",
			PubDate: now,
		},
		{
			Title:   "IHSG bergerak mendatar pada perdagangan hari ini",
			Link:    "https://www.idx.co.id",
			Source:  "fallback",
			PubDate: now,
		},
	}
}
