package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeTempConfig(t, "environment: test\n")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 8080 {
		t.Fatalf("unexpected port %d", c.Server.Port)
	}
	if c.Cache.Driver != "memory" {
		t.Fatalf("unexpected cache driver %q", c.Cache.Driver)
	}
	if c.Refresh.Currency != DefaultCurrencyRefresh || c.Refresh.News != DefaultNewsRefresh {
		t.Fatalf("unexpected refresh defaults %+v", c.Refresh)
	}
	if c.CurrencyTTL() != time.Hour {
		t.Fatalf("unexpected currency ttl %v", c.CurrencyTTL())
	}
}

func TestLoadRejectsBadDriver(t *testing.T) {
	path := writeTempConfig(t, "environment: test\ncache:\n  driver: memcached\n")

	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeTempConfig(t, "environment: test\n")

	t.Setenv("CURRENCY_REFRESH", "120")
	t.Setenv("NEWS_FEEDS", "https://a.example/rss, https://b.example/rss")
	t.Setenv("GOLD_API_KEY", "secret")

	c, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Refresh.Currency != 120 {
		t.Fatalf("unexpected currency refresh %d", c.Refresh.Currency)
	}
	if len(c.Providers.News.Feeds) != 2 {
		t.Fatalf("unexpected feeds %v", c.Providers.News.Feeds)
	}
	if c.Providers.Gold.APIKey != "secret" {
		t.Fatalf("gold api key not applied")
	}
}
