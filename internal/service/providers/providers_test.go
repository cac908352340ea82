package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	apphttp "EcoBoard/pkg/http"
)

func jsonServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestBCAPrefersSellAndStripsSeparators(t *testing.T) {
	srv := jsonServer(t, `{
		"currencies": {
			"USD": {"sell": "15,650.00", "buy": "15,520.00"},
			"SGD": {"sell": "", "buy": "11,600.00"},
			"XXX": {"sell": "n/a", "buy": ""}
		}
	}`)

	p := NewBCAProvider(srv.URL, apphttp.NewClient())
	got, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got.Rates["USD"] != 15650 {
		t.Errorf("USD = %v, want 15650", got.Rates["USD"])
	}
	if got.Rates["SGD"] != 11600 {
		t.Errorf("SGD = %v, want 11600 (buy fallback)", got.Rates["SGD"])
	}
	if _, ok := got.Rates["XXX"]; ok {
		t.Error("unparseable currency should be dropped")
	}
	if got.Source != "BCA" {
		t.Errorf("source = %q, want BCA", got.Source)
	}
	if got.FetchedAt.IsZero() {
		t.Error("fetchedAt not stamped")
	}
}

func TestBCAFailsWithoutUSD(t *testing.T) {
	srv := jsonServer(t, `{"currencies": {"SGD": {"sell": "11,600.00"}}}`)

	p := NewBCAProvider(srv.URL, apphttp.NewClient())
	if _, err := p.Fetch(context.Background()); err == nil {
		t.Fatal("want error for response without USD")
	}
}

func TestBCAConfigured(t *testing.T) {
	if NewBCAProvider("", apphttp.NewClient()).Configured() {
		t.Error("empty url should not be configured")
	}
	if !NewBCAProvider("http://x", apphttp.NewClient()).Configured() {
		t.Error("url present should be configured")
	}
}

func TestExchangeAPIPassesThrough(t *testing.T) {
	srv := jsonServer(t, `{"rates": {"USD": 15700, "EUR": 17100}}`)

	p := NewExchangeAPIProvider(srv.URL, apphttp.NewClient())
	got, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got.Rates["USD"] != 15700 || got.Rates["EUR"] != 17100 {
		t.Errorf("rates = %v", got.Rates)
	}
	if got.Source != "exchange-api" {
		t.Errorf("source = %q", got.Source)
	}
}

func TestOpenRatesCrossRates(t *testing.T) {
	// 1 USD = 15650 IDR; SGD and EUR round to whole rupiah, JPY keeps
	// four decimals.
	srv := jsonServer(t, `{
		"result": "success",
		"rates": {"IDR": 15650.4, "SGD": 1.35, "JPY": 150.1, "EUR": 0.92}
	}`)

	p := NewOpenRatesProvider(srv.URL, apphttp.NewClient())
	got, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got.Rates["USD"] != 15650 {
		t.Errorf("USD = %v, want 15650", got.Rates["USD"])
	}
	if want := float64(11593); got.Rates["SGD"] != want {
		t.Errorf("SGD = %v, want %v", got.Rates["SGD"], want)
	}
	if want := 104.2665; got.Rates["JPY"] != want {
		t.Errorf("JPY = %v, want %v", got.Rates["JPY"], want)
	}
	if got.Source != "fallback" {
		t.Errorf("source = %q", got.Source)
	}
	if !p.Configured() {
		t.Error("fallback provider must always be configured")
	}
}

func TestOpenRatesRejectsFailureResult(t *testing.T) {
	srv := jsonServer(t, `{"result": "error", "rates": {}}`)

	p := NewOpenRatesProvider(srv.URL, apphttp.NewClient())
	if _, err := p.Fetch(context.Background()); err == nil {
		t.Fatal("want error for non-success upstream result")
	}
}

func TestGoldDerivesGramPrice(t *testing.T) {
	var gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("x-access-token")
		_, _ = w.Write([]byte(`{"price": 2300}`))
	}))
	defer srv.Close()

	p := NewGoldProvider(srv.URL, "secret", apphttp.NewClient())
	got, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotToken != "secret" {
		t.Errorf("token header = %q", gotToken)
	}
	// round(2300 / 31.1034768) = 74
	if got.Gram != 74 {
		t.Errorf("gram = %v, want 74", got.Gram)
	}
	if got.Ounce != 2300 {
		t.Errorf("ounce = %v, want 2300 (unrounded)", got.Ounce)
	}
}

func TestGoldConfiguredRequiresKey(t *testing.T) {
	if NewGoldProvider("http://x", "", apphttp.NewClient()).Configured() {
		t.Error("missing api key should not be configured")
	}
}

func TestStockFormatsChange(t *testing.T) {
	srv := jsonServer(t, `{
		"quoteResponse": {"result": [
			{"symbol": "^JKSE", "regularMarketPrice": 7231.5, "regularMarketChangePercent": -0.4213}
		]}
	}`)

	p := NewStockProvider(srv.URL, "^JKSE", "IHSG", apphttp.NewClient())
	got, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got.Price != 7231.5 {
		t.Errorf("price = %v", got.Price)
	}
	if got.Change == nil || *got.Change != "-0.42%" {
		t.Errorf("change = %v, want -0.42%%", got.Change)
	}
	if got.Name != "IHSG" {
		t.Errorf("name = %q", got.Name)
	}
}

func TestStockChangeMayBeNull(t *testing.T) {
	srv := jsonServer(t, `{
		"quoteResponse": {"result": [{"symbol": "^JKSE", "regularMarketPrice": 7200}]}
	}`)

	p := NewStockProvider(srv.URL, "^JKSE", "IHSG", apphttp.NewClient())
	got, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got.Change != nil {
		t.Errorf("change = %q, want nil", *got.Change)
	}
}

func TestStockFailsWithoutPrice(t *testing.T) {
	srv := jsonServer(t, `{"quoteResponse": {"result": [{"symbol": "^JKSE"}]}}`)

	p := NewStockProvider(srv.URL, "^JKSE", "IHSG", apphttp.NewClient())
	if _, err := p.Fetch(context.Background()); err == nil {
		t.Fatal("want error for quote without price")
	}
}
