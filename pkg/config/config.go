package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"EcoBoard/pkg/util"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Cache struct {
		Driver string `yaml:"driver"` // memory, redis or layered
		Prefix string `yaml:"prefix"`
		Redis  struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			PoolSize int    `yaml:"pool_size"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Providers struct {
		Timeout time.Duration `yaml:"timeout"` // per outbound call
		BI      struct {
			URL          string `yaml:"url"`
			SOAPAction   string `yaml:"soap_action"`
			BodyTemplate string `yaml:"body_template"`
		} `yaml:"bi"`
		BCA struct {
			URL string `yaml:"url"`
		} `yaml:"bca"`
		ExchangeAPI struct {
			URL string `yaml:"url"`
		} `yaml:"exchange_api"`
		Gold struct {
			URL    string `yaml:"url"`
			APIKey string `yaml:"api_key"`
		} `yaml:"gold"`
		Stocks struct {
			URL    string `yaml:"url"`
			Symbol string `yaml:"symbol"`
			Name   string `yaml:"name"`
		} `yaml:"stocks"`
		News struct {
			Feeds []string `yaml:"feeds"`
		} `yaml:"news"`
	} `yaml:"providers"`
	Refresh struct {
		Currency int `yaml:"currency"` // seconds
		Gold     int `yaml:"gold"`
		Stocks   int `yaml:"stocks"`
		News     int `yaml:"news"`
	} `yaml:"refresh"`
	History struct {
		Enabled    bool `yaml:"enabled"`
		ClickHouse struct {
			Host         string        `yaml:"host"`
			Port         int           `yaml:"port"`
			Database     string        `yaml:"database"`
			User         string        `yaml:"user"`
			Password     string        `yaml:"password"`
			DialTimeout  time.Duration `yaml:"dial_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
		} `yaml:"clickhouse"`
	} `yaml:"history"`
	Events struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		Compression  string   `yaml:"compression"`
		RequiredAcks int      `yaml:"required_acks"`
	} `yaml:"events"`
	Live struct {
		Enabled  bool          `yaml:"enabled"`
		Interval time.Duration `yaml:"interval"`
	} `yaml:"live"`
}

// Refresh interval defaults in seconds.
const (
	DefaultCurrencyRefresh = 3600
	DefaultGoldRefresh     = 1800
	DefaultStocksRefresh   = 1800
	DefaultNewsRefresh     = 900
)

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("BI_KURS_URL"); v != "" {
		c.Providers.BI.URL = v
	}
	if v := os.Getenv("BI_KURS_SOAP_ACTION"); v != "" {
		c.Providers.BI.SOAPAction = v
	}
	if v := os.Getenv("BI_KURS_BODY"); v != "" {
		c.Providers.BI.BodyTemplate = v
	}
	if v := os.Getenv("BCA_RATES_URL"); v != "" {
		c.Providers.BCA.URL = v
	}
	if v := os.Getenv("EXCHANGE_API_URL"); v != "" {
		c.Providers.ExchangeAPI.URL = v
	}
	if v := os.Getenv("GOLD_API_KEY"); v != "" {
		c.Providers.Gold.APIKey = v
	}
	if v := os.Getenv("GOLD_API_URL"); v != "" {
		c.Providers.Gold.URL = v
	}
	if v := os.Getenv("STOCK_QUOTE_URL"); v != "" {
		c.Providers.Stocks.URL = v
	}
	if v := os.Getenv("STOCK_SYMBOL"); v != "" {
		c.Providers.Stocks.Symbol = v
	}
	if v := os.Getenv("NEWS_FEEDS"); v != "" {
		c.Providers.News.Feeds = util.SplitCSV(v)
	}
	if v := os.Getenv("CURRENCY_REFRESH"); v != "" {
		c.Refresh.Currency = util.ParseIntDefault(v, c.Refresh.Currency)
	}
	if v := os.Getenv("GOLD_REFRESH"); v != "" {
		c.Refresh.Gold = util.ParseIntDefault(v, c.Refresh.Gold)
	}
	if v := os.Getenv("STOCKS_REFRESH"); v != "" {
		c.Refresh.Stocks = util.ParseIntDefault(v, c.Refresh.Stocks)
	}
	if v := os.Getenv("NEWS_REFRESH"); v != "" {
		c.Refresh.News = util.ParseIntDefault(v, c.Refresh.News)
	}
	if v := os.Getenv("CACHE_DRIVER"); v != "" {
		c.Cache.Driver = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Events.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Events.Topic = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = "memory"
	}
	if c.Cache.Prefix == "" {
		c.Cache.Prefix = "ecoboard"
	}
	if c.Providers.Timeout == 0 {
		c.Providers.Timeout = 10 * time.Second
	}
	if c.Providers.Gold.URL == "" {
		c.Providers.Gold.URL = "https://www.goldapi.io/api/XAU/USD"
	}
	if c.Providers.Stocks.URL == "" {
		c.Providers.Stocks.URL = "https://query1.finance.yahoo.com/v7/finance/quote"
	}
	if c.Providers.Stocks.Symbol == "" {
		c.Providers.Stocks.Symbol = "^JKSE"
	}
	if c.Providers.Stocks.Name == "" {
		c.Providers.Stocks.Name = "IHSG"
	}
	if c.Refresh.Currency == 0 {
		c.Refresh.Currency = DefaultCurrencyRefresh
	}
	if c.Refresh.Gold == 0 {
		c.Refresh.Gold = DefaultGoldRefresh
	}
	if c.Refresh.Stocks == 0 {
		c.Refresh.Stocks = DefaultStocksRefresh
	}
	if c.Refresh.News == 0 {
		c.Refresh.News = DefaultNewsRefresh
	}
	if c.Live.Interval == 0 {
		c.Live.Interval = time.Minute
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	switch c.Cache.Driver {
	case "memory", "redis", "layered":
	default:
		return fmt.Errorf("cache.driver must be 'memory', 'redis' or 'layered', got '%s'", c.Cache.Driver)
	}
	if c.History.Enabled && c.History.ClickHouse.Host == "" {
		return fmt.Errorf("history.clickhouse.host is required when history is enabled")
	}
	if c.Events.Enabled {
		if len(c.Events.Brokers) == 0 {
			return fmt.Errorf("events.brokers cannot be empty when events are enabled")
		}
		if c.Events.Topic == "" {
			return fmt.Errorf("events.topic is required when events are enabled")
		}
	}
	return nil
}

// CurrencyTTL returns the currency cache TTL as a duration.
func (c *Config) CurrencyTTL() time.Duration { return time.Duration(c.Refresh.Currency) * time.Second }

// GoldTTL returns the gold cache TTL as a duration.
func (c *Config) GoldTTL() time.Duration { return time.Duration(c.Refresh.Gold) * time.Second }

// StocksTTL returns the stock index cache TTL as a duration.
func (c *Config) StocksTTL() time.Duration { return time.Duration(c.Refresh.Stocks) * time.Second }

// NewsTTL returns the news cache TTL as a duration.
func (c *Config) NewsTTL() time.Duration { return time.Duration(c.Refresh.News) * time.Second }
