package providers

import (
	"context"
	"fmt"
	"time"

	"EcoBoard/internal/domain/models"
	apphttp "EcoBoard/pkg/http"
)

// ExchangeAPIProvider proxies a generic exchange-rate endpoint that
// already returns IDR rates keyed by currency code; the payload passes
// through with a provider tag.
type ExchangeAPIProvider struct {
	url    string
	client *apphttp.Client
	now    func() time.Time
}

type exchangeAPIResponse struct {
	Rates map[string]float64 `json:"rates"`
}

func NewExchangeAPIProvider(url string, client *apphttp.Client) *ExchangeAPIProvider {
	return &ExchangeAPIProvider{url: url, client: client, now: time.Now}
}

func (p *ExchangeAPIProvider) Name() string { return "exchange-api" }

func (p *ExchangeAPIProvider) Configured() bool { return p.url != "" }

func (p *ExchangeAPIProvider) Fetch(ctx context.Context) (*models.CurrencyRates, error) {
	var resp exchangeAPIResponse
	err := p.client.SendAndParse(ctx, &apphttp.RequestOptions{
		Method: apphttp.MethodGet,
		URL:    p.url,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("exchange-api: %w", err)
	}

	result := &models.CurrencyRates{
		Rates:     resp.Rates,
		Source:    "exchange-api",
		FetchedAt: p.now(),
	}
	if !result.Valid() {
		return nil, fmt.Errorf("exchange-api: response missing usd rate")
	}
	return result, nil
}
