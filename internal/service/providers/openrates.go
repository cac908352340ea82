package providers

import (
	"context"
	"fmt"
	"math"
	"time"

	"EcoBoard/internal/domain/models"
	apphttp "EcoBoard/pkg/http"
)

// DefaultOpenRatesURL is the keyless public fallback; it quotes every
// currency against a USD base.
const DefaultOpenRatesURL = "https://open.er-api.com/v6/latest/USD"

// Cross-rate targets derived from the USD/IDR base. JPY keeps four
// decimals because a single yen is worth so little in IDR that whole
// units would lose the signal; the rest display as whole rupiah.
var openRatesTargets = []string{"SGD", "JPY", "EUR"}

// OpenRatesProvider is the last-resort currency source. It never needs
// credentials, so it is always configured.
type OpenRatesProvider struct {
	url    string
	client *apphttp.Client
	now    func() time.Time
}

type openRatesResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

func NewOpenRatesProvider(url string, client *apphttp.Client) *OpenRatesProvider {
	if url == "" {
		url = DefaultOpenRatesURL
	}
	return &OpenRatesProvider{url: url, client: client, now: time.Now}
}

func (p *OpenRatesProvider) Name() string { return "fallback" }

func (p *OpenRatesProvider) Configured() bool { return true }

func (p *OpenRatesProvider) Fetch(ctx context.Context) (*models.CurrencyRates, error) {
	var resp openRatesResponse
	err := p.client.SendAndParse(ctx, &apphttp.RequestOptions{
		Method: apphttp.MethodGet,
		URL:    p.url,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fallback: %w", err)
	}
	if resp.Result != "success" {
		return nil, fmt.Errorf("fallback: upstream result %q", resp.Result)
	}

	usdIDR := resp.Rates["IDR"]
	if usdIDR <= 0 {
		return nil, fmt.Errorf("fallback: response missing idr rate")
	}

	rates := map[string]float64{"USD": math.Round(usdIDR)}
	for _, code := range openRatesTargets {
		perUSD := resp.Rates[code]
		if perUSD <= 0 {
			continue
		}
		cross := usdIDR / perUSD
		if code == "JPY" {
			rates[code] = math.Round(cross*10000) / 10000
		} else {
			rates[code] = math.Round(cross)
		}
	}

	return &models.CurrencyRates{
		Rates:     rates,
		Source:    "fallback",
		FetchedAt: p.now(),
	}, nil
}
