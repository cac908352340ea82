package di

import (
	"context"
	"fmt"
	"time"

	domrepo "EcoBoard/internal/domain/repository"
	"EcoBoard/internal/handler/api"
	internalrepo "EcoBoard/internal/repository"
	svccache "EcoBoard/internal/service/cache"
	"EcoBoard/internal/service/live"
	"EcoBoard/internal/service/providers"
	"EcoBoard/internal/usecase"
	pkgcache "EcoBoard/pkg/cache"
	pkgch "EcoBoard/pkg/clickhouse"
	"EcoBoard/pkg/config"
	xhttp "EcoBoard/pkg/http"
	pkgkafka "EcoBoard/pkg/kafka"
	applogger "EcoBoard/pkg/logger"
	"EcoBoard/pkg/metrics"
	"EcoBoard/pkg/server"
)

// ProvideLogger creates the application logger. Development gets a
// human-readable console, everything else structured JSON.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lcfg := &applogger.Config{Level: "info", Format: "json", Output: "stdout"}
	if cfg.Environment == "development" {
		lcfg.Level = "debug"
		lcfg.Format = "console"
	}
	return applogger.New(lcfg)
}

// ProvideHTTPClient creates the outbound client shared by all providers.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(xhttp.WithTimeout(cfg.Providers.Timeout))
}

// ProvideCacheStore selects the cache backend from configuration.
func ProvideCacheStore(cfg *config.Config) (pkgcache.Service, error) {
	switch cfg.Cache.Driver {
	case "memory":
		return pkgcache.NewMemoryCache(), nil
	case "redis":
		return newRedisCache(cfg)
	case "layered":
		redis, err := newRedisCache(cfg)
		if err != nil {
			return nil, err
		}
		return pkgcache.NewLayeredCache(redis), nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
}

func newRedisCache(cfg *config.Config) (*pkgcache.RedisCache, error) {
	return pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(cfg.Cache.Redis.Host),
		pkgcache.WithRedisPort(cfg.Cache.Redis.Port),
		pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		pkgcache.WithRedisPool(cfg.Cache.Redis.PoolSize, 2, 5*time.Second),
		pkgcache.WithRedisPrefix(cfg.Cache.Prefix),
	)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideMemo creates the memoization layer over the cache backend.
func ProvideMemo(store pkgcache.Service, logger *applogger.Logger, m domrepo.Metrics) *svccache.Memo {
	return svccache.NewMemo(store, logger, m)
}

// ProvideRateChain builds the currency provider chain in preference
// order: central bank first, commercial bank, generic API, then the
// keyless public fallback.
func ProvideRateChain(cfg *config.Config, client *xhttp.Client) []domrepo.RateProvider {
	return []domrepo.RateProvider{
		providers.NewBIProvider(providers.BIConfig{
			URL:          cfg.Providers.BI.URL,
			SOAPAction:   cfg.Providers.BI.SOAPAction,
			BodyTemplate: cfg.Providers.BI.BodyTemplate,
		}, client),
		providers.NewBCAProvider(cfg.Providers.BCA.URL, client),
		providers.NewExchangeAPIProvider(cfg.Providers.ExchangeAPI.URL, client),
		providers.NewOpenRatesProvider("", client),
	}
}

// ProvideGoldProvider creates the gold quote provider.
func ProvideGoldProvider(cfg *config.Config, client *xhttp.Client) domrepo.GoldProvider {
	return providers.NewGoldProvider(cfg.Providers.Gold.URL, cfg.Providers.Gold.APIKey, client)
}

// ProvideStockProvider creates the index quote provider.
func ProvideStockProvider(cfg *config.Config, client *xhttp.Client) domrepo.StockProvider {
	return providers.NewStockProvider(
		cfg.Providers.Stocks.URL,
		cfg.Providers.Stocks.Symbol,
		cfg.Providers.Stocks.Name,
		client,
	)
}

// ProvideNewsProvider creates the RSS headline provider.
func ProvideNewsProvider(cfg *config.Config, logger *applogger.Logger) domrepo.NewsProvider {
	return providers.NewNewsProvider(cfg.Providers.News.Feeds, logger)
}

// ProvideClickHouseClient connects to ClickHouse and applies the history
// schema. Returns nil when history is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.History.ClickHouse.Host),
		pkgch.WithPort(cfg.History.ClickHouse.Port),
		pkgch.WithDatabase(cfg.History.ClickHouse.Database),
		pkgch.WithCredentials(cfg.History.ClickHouse.User, cfg.History.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.History.ClickHouse.DialTimeout, cfg.History.ClickHouse.ReadTimeout, cfg.History.ClickHouse.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.HistorySchema); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideHistoryStore creates the rate history repository, or nil when
// history is disabled.
func ProvideHistoryStore(chClient *pkgch.Client) domrepo.HistoryStore {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewClickHouseHistory(chClient.DB())
}

// ProvideEventPublisher creates the Kafka refresh-event publisher, or
// nil when events are disabled.
func ProvideEventPublisher(cfg *config.Config) (domrepo.EventPublisher, error) {
	if !cfg.Events.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Events.Brokers),
		pkgkafka.WithCompression(cfg.Events.Compression),
		pkgkafka.WithRequiredAcks(cfg.Events.RequiredAcks),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaEvents(producer, cfg.Events.Topic), nil
}

// ProvideEconomicUseCase assembles the domain aggregators.
func ProvideEconomicUseCase(
	cfg *config.Config,
	memo *svccache.Memo,
	logger *applogger.Logger,
	rateChain []domrepo.RateProvider,
	gold domrepo.GoldProvider,
	stocks domrepo.StockProvider,
	news domrepo.NewsProvider,
	m domrepo.Metrics,
	history domrepo.HistoryStore,
	events domrepo.EventPublisher,
) *usecase.EconomicUseCase {
	return usecase.NewEconomicUseCase(usecase.EconomicDeps{
		Config:    cfg,
		Memo:      memo,
		Logger:    logger,
		RateChain: rateChain,
		Gold:      gold,
		Stocks:    stocks,
		News:      news,
		Metrics:   m,
		History:   history,
		Events:    events,
	})
}

// ProvideLiveHub creates the WebSocket hub, or nil when live push is
// disabled.
func ProvideLiveHub(cfg *config.Config, logger *applogger.Logger) *live.Hub {
	if !cfg.Live.Enabled {
		return nil
	}
	return live.NewHub(logger)
}

// ProvideHandler creates the HTTP route handler.
func ProvideHandler(logger *applogger.Logger, uc *usecase.EconomicUseCase, hub *live.Hub) xhttp.Handler {
	// A nil *Hub must stay a nil interface inside the handler.
	if hub == nil {
		return api.NewEconomicHandler(logger, uc, nil)
	}
	return api.NewEconomicHandler(logger, uc, hub)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	uc *usecase.EconomicUseCase,
	hub *live.Hub,
	store pkgcache.Service,
	chClient *pkgch.Client,
	events domrepo.EventPublisher,
) *server.App {
	return server.New(cfg, logger, handler, uc, hub, store, chClient, events)
}
