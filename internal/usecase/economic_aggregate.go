package usecase

import (
	"context"
	"errors"
	"sync"

	"EcoBoard/internal/domain/models"
	applogger "EcoBoard/pkg/logger"
)

// ErrAllDomainsFailed means every domain getter failed in the same
// snapshot. Getters degrade to static values internally, so this only
// fires on an internal defect, but the endpoint still needs a defined
// all-down answer.
var ErrAllDomainsFailed = errors.New("all economic domains failed")

// ErrHistoryDisabled is returned when the history endpoint is hit while
// no history store is configured.
var ErrHistoryDisabled = errors.New("rate history is not enabled")

// nopMetrics keeps the use case free of nil checks when metrics are off.
type nopMetrics struct{}

func (nopMetrics) RecordFetch(string, string, string) {}
func (nopMetrics) RecordFallback(string)              {}
func (nopMetrics) RecordCache(string, bool)           {}
func (nopMetrics) RecordLatency(string, float64)      {}

// GetSnapshot composes all four domains into one display payload. The
// domains are independent, so they fetch concurrently; each outcome is
// captured on its own and a failed domain becomes a null field rather
// than failing the snapshot.
func (uc *EconomicUseCase) GetSnapshot(ctx context.Context) (*models.EconomicSnapshot, error) {
	snap := &models.EconomicSnapshot{}

	type item struct {
		name string
		val  interface{}
		err  error
	}
	ch := make(chan item, 4)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.GetCurrencyRates(ctx)
		ch <- item{"currency", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.GetGoldPrice(ctx)
		ch <- item{"gold", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.GetStockIndex(ctx)
		ch <- item{"stocks", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.GetNews(ctx)
		ch <- item{"news", v, err}
	}()

	go func() { wg.Wait(); close(ch) }()

	var failed int
	for it := range ch {
		if it.err != nil {
			failed++
			uc.logger.Error("domain getter failed",
				applogger.String("domain", it.name),
				applogger.Error(it.err))
			continue
		}
		switch it.name {
		case "currency":
			snap.CurrencyRates = it.val.(*models.CurrencyRates)
		case "gold":
			snap.GoldPrice = it.val.(*models.GoldPrice)
		case "stocks":
			snap.StockIndex = it.val.(*models.StockIndex)
		case "news":
			snap.News = it.val.([]models.NewsItem)
		}
	}

	if failed == 4 {
		return nil, ErrAllDomainsFailed
	}

	snap.UpdatedAt = uc.now()
	return snap, nil
}
