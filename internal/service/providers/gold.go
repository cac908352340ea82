package providers

import (
	"context"
	"fmt"
	"math"
	"time"

	"EcoBoard/internal/domain/models"
	apphttp "EcoBoard/pkg/http"
)

const gramsPerTroyOunce = 31.1034768

// GoldProvider fetches the per-ounce gold quote from goldapi.io and
// derives the per-gram price. Requires an API key.
type GoldProvider struct {
	url    string
	apiKey string
	client *apphttp.Client
	now    func() time.Time
}

type goldResponse struct {
	Price float64 `json:"price"`
}

func NewGoldProvider(url, apiKey string, client *apphttp.Client) *GoldProvider {
	return &GoldProvider{url: url, apiKey: apiKey, client: client, now: time.Now}
}

func (p *GoldProvider) Name() string { return "goldapi" }

func (p *GoldProvider) Configured() bool { return p.apiKey != "" }

func (p *GoldProvider) Fetch(ctx context.Context) (*models.GoldPrice, error) {
	var resp goldResponse
	err := p.client.SendAndParse(ctx, &apphttp.RequestOptions{
		Method: apphttp.MethodGet,
		URL:    p.url,
		Headers: map[string]string{
			"x-access-token": p.apiKey,
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("goldapi: %w", err)
	}
	if resp.Price <= 0 {
		return nil, fmt.Errorf("goldapi: response missing price")
	}

	return &models.GoldPrice{
		Gram:      math.Round(resp.Price / gramsPerTroyOunce),
		Ounce:     resp.Price,
		Source:    "goldapi",
		FetchedAt: p.now(),
	}, nil
}
