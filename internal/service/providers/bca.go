package providers

import (
	"context"
	"fmt"
	"time"

	"EcoBoard/internal/domain/models"
	apphttp "EcoBoard/pkg/http"
	"EcoBoard/pkg/util"
)

// BCAProvider fetches counter rates from the commercial bank's JSON
// endpoint. Values arrive as strings with thousands separators
// ("15,650.00"); the sell rate is preferred over buy.
type BCAProvider struct {
	url    string
	client *apphttp.Client
	now    func() time.Time
}

type bcaRate struct {
	Sell string `json:"sell"`
	Buy  string `json:"buy"`
}

type bcaResponse struct {
	Currencies map[string]bcaRate `json:"currencies"`
}

func NewBCAProvider(url string, client *apphttp.Client) *BCAProvider {
	return &BCAProvider{url: url, client: client, now: time.Now}
}

func (p *BCAProvider) Name() string { return "BCA" }

func (p *BCAProvider) Configured() bool { return p.url != "" }

func (p *BCAProvider) Fetch(ctx context.Context) (*models.CurrencyRates, error) {
	var resp bcaResponse
	err := p.client.SendAndParse(ctx, &apphttp.RequestOptions{
		Method: apphttp.MethodGet,
		URL:    p.url,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("bca: %w", err)
	}

	rates := make(map[string]float64, len(resp.Currencies))
	for code, r := range resp.Currencies {
		raw := r.Sell
		if raw == "" {
			raw = r.Buy
		}
		v, err := util.ParseAmount(raw)
		if err != nil || v <= 0 {
			continue
		}
		rates[code] = v
	}

	result := &models.CurrencyRates{
		Rates:     rates,
		Source:    "BCA",
		FetchedAt: p.now(),
	}
	if !result.Valid() {
		return nil, fmt.Errorf("bca: response missing usd rate")
	}
	return result, nil
}
