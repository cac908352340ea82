package usecase

import (
	"context"
	"sort"
	"time"

	"EcoBoard/internal/domain/models"
	domrepo "EcoBoard/internal/domain/repository"
	svccache "EcoBoard/internal/service/cache"
	"EcoBoard/pkg/config"
	applogger "EcoBoard/pkg/logger"
	"EcoBoard/pkg/util"
)

const maxNewsItems = 12

// Cache keys, one per data domain.
const (
	keyCurrency = "economic:currency"
	keyGold     = "economic:gold"
	keyStocks   = "economic:stocks"
	keyNews     = "economic:news"
)

// EconomicUseCase orchestrates the per-domain provider chains behind the
// memoization layer. Each getter tries its providers in preference
// order, short-circuits on the first success and degrades to a static
// value when the whole chain is down, so getters themselves only fail
// on internal defects.
type EconomicUseCase struct {
	cfg    *config.Config
	memo   *svccache.Memo
	logger *applogger.Logger

	rateChain []domrepo.RateProvider
	gold      domrepo.GoldProvider
	stocks    domrepo.StockProvider
	news      domrepo.NewsProvider

	metrics domrepo.Metrics
	history domrepo.HistoryStore   // optional
	events  domrepo.EventPublisher // optional

	now func() time.Time
}

type EconomicDeps struct {
	Config    *config.Config
	Memo      *svccache.Memo
	Logger    *applogger.Logger
	RateChain []domrepo.RateProvider
	Gold      domrepo.GoldProvider
	Stocks    domrepo.StockProvider
	News      domrepo.NewsProvider
	Metrics   domrepo.Metrics
	History   domrepo.HistoryStore
	Events    domrepo.EventPublisher
}

func NewEconomicUseCase(deps EconomicDeps) *EconomicUseCase {
	if deps.Metrics == nil {
		deps.Metrics = nopMetrics{}
	}
	return &EconomicUseCase{
		cfg:       deps.Config,
		memo:      deps.Memo,
		logger:    deps.Logger,
		rateChain: deps.RateChain,
		gold:      deps.Gold,
		stocks:    deps.Stocks,
		news:      deps.News,
		metrics:   deps.Metrics,
		history:   deps.History,
		events:    deps.Events,
		now:       time.Now,
	}
}

// GetCurrencyRates returns the cached exchange rates, refreshing through
// the provider chain when the entry expired.
func (uc *EconomicUseCase) GetCurrencyRates(ctx context.Context) (*models.CurrencyRates, error) {
	return svccache.Do(ctx, uc.memo, keyCurrency, uc.cfg.CurrencyTTL(),
		func(ctx context.Context) (*models.CurrencyRates, error) {
			result := uc.runRateChain(ctx)
			uc.recordRefresh(ctx, "currency", result.Source, result.Rates["USD"])
			return result, nil
		})
}

// runRateChain tries each provider in order and stops at the first
// valid result. Later providers are deliberate fallbacks, so they are
// never raced concurrently.
func (uc *EconomicUseCase) runRateChain(ctx context.Context) *models.CurrencyRates {
	for _, p := range uc.rateChain {
		if !p.Configured() {
			continue
		}
		result, err := p.Fetch(ctx)
		if err != nil {
			uc.metrics.RecordFetch("currency", p.Name(), "error")
			uc.logger.Warn("currency provider failed",
				applogger.String("provider", p.Name()),
				applogger.Error(err))
			continue
		}
		if !result.Valid() {
			uc.metrics.RecordFetch("currency", p.Name(), "invalid")
			uc.logger.Warn("currency provider returned no usd rate",
				applogger.String("provider", p.Name()))
			continue
		}
		uc.metrics.RecordFetch("currency", p.Name(), "ok")
		return result
	}

	uc.metrics.RecordFallback("currency")
	uc.logger.Warn("all currency providers exhausted, serving static rates")
	return mockCurrencyRates(uc.now())
}

// GetGoldPrice returns the cached gold quote.
func (uc *EconomicUseCase) GetGoldPrice(ctx context.Context) (*models.GoldPrice, error) {
	return svccache.Do(ctx, uc.memo, keyGold, uc.cfg.GoldTTL(),
		func(ctx context.Context) (*models.GoldPrice, error) {
			result := uc.fetchGold(ctx)
			uc.recordRefresh(ctx, "gold", result.Source, result.Gram)
			return result, nil
		})
}

func (uc *EconomicUseCase) fetchGold(ctx context.Context) *models.GoldPrice {
	if uc.gold.Configured() {
		result, err := uc.gold.Fetch(ctx)
		if err == nil {
			uc.metrics.RecordFetch("gold", uc.gold.Name(), "ok")
			return result
		}
		uc.metrics.RecordFetch("gold", uc.gold.Name(), "error")
		uc.logger.Warn("gold provider failed", applogger.Error(err))
	}
	uc.metrics.RecordFallback("gold")
	return mockGoldPrice(uc.now())
}

// GetStockIndex returns the cached index quote.
func (uc *EconomicUseCase) GetStockIndex(ctx context.Context) (*models.StockIndex, error) {
	return svccache.Do(ctx, uc.memo, keyStocks, uc.cfg.StocksTTL(),
		func(ctx context.Context) (*models.StockIndex, error) {
			result := uc.fetchStocks(ctx)
			uc.recordRefresh(ctx, "stocks", result.Source, result.Price)
			return result, nil
		})
}

func (uc *EconomicUseCase) fetchStocks(ctx context.Context) *models.StockIndex {
	if uc.stocks.Configured() {
		result, err := uc.stocks.Fetch(ctx)
		if err == nil {
			uc.metrics.RecordFetch("stocks", uc.stocks.Name(), "ok")
			return result
		}
		uc.metrics.RecordFetch("stocks", uc.stocks.Name(), "error")
		uc.logger.Warn("stock provider failed", applogger.Error(err))
	}
	uc.metrics.RecordFallback("stocks")
	return mockStockIndex(uc.cfg.Providers.Stocks.Symbol, uc.cfg.Providers.Stocks.Name, uc.now())
}

// GetNews returns the cached merged headlines, newest first, capped.
func (uc *EconomicUseCase) GetNews(ctx context.Context) ([]models.NewsItem, error) {
	return svccache.Do(ctx, uc.memo, keyNews, uc.cfg.NewsTTL(),
		func(ctx context.Context) ([]models.NewsItem, error) {
			items := uc.fetchNews(ctx)
			uc.recordRefresh(ctx, "news", "rss", float64(len(items)))
			return items, nil
		})
}

func (uc *EconomicUseCase) fetchNews(ctx context.Context) []models.NewsItem {
	if uc.news.Configured() {
		items, err := uc.news.Fetch(ctx)
		if err == nil {
			uc.metrics.RecordFetch("news", uc.news.Name(), "ok")
			return sortAndCapNews(items)
		}
		uc.metrics.RecordFetch("news", uc.news.Name(), "error")
		uc.logger.Warn("news provider failed", applogger.Error(err))
	}
	uc.metrics.RecordFallback("news")
	return mockNews(uc.now())
}

// sortAndCapNews orders items newest first. A zero PubDate means the
// feed item carried no parseable date; zero time sorts after every real
// date, so undated items land at the end instead of crashing the sort.
func sortAndCapNews(items []models.NewsItem) []models.NewsItem {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PubDate.After(items[j].PubDate)
	})
	if len(items) > maxNewsItems {
		items = items[:maxNewsItems]
	}
	return items
}

// recordRefresh feeds the optional history store and event stream. Both
// are best-effort; a sink failure never fails the refresh itself.
func (uc *EconomicUseCase) recordRefresh(ctx context.Context, domain, source string, value float64) {
	at := uc.now()
	if uc.history != nil && domain != "news" {
		point := models.RatePoint{TS: at, Domain: domain, Source: source, Value: value}
		if err := uc.history.Append(ctx, []models.RatePoint{point}); err != nil {
			uc.logger.Warn("history append failed",
				applogger.String("domain", domain),
				applogger.Error(err))
		}
	}
	if uc.events != nil {
		if err := uc.events.PublishRefresh(ctx, domain, source, at); err != nil {
			uc.logger.Warn("refresh event publish failed",
				applogger.String("domain", domain),
				applogger.Error(err))
		}
	}
}

// GetHistory reads back persisted rate samples for trend rendering.
func (uc *EconomicUseCase) GetHistory(ctx context.Context, req *models.HistoryRequest) ([]models.RatePoint, error) {
	if uc.history == nil {
		return nil, ErrHistoryDisabled
	}

	now := uc.now()
	from := util.ParseTimeDefault(req.From, now.Add(-24*time.Hour))
	to := util.ParseTimeDefault(req.To, now)
	return uc.history.Range(ctx, req.Domain, from, to, req.Limit)
}
