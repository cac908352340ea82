package providers

import (
	"context"
	"fmt"
	"time"

	"EcoBoard/internal/domain/models"
	apphttp "EcoBoard/pkg/http"
)

// StockProvider fetches one index quote from the Yahoo-style quote
// endpoint. The percent change may be absent upstream, in which case
// the result carries a nil change rather than a fabricated zero.
type StockProvider struct {
	url    string
	symbol string
	name   string
	client *apphttp.Client
	now    func() time.Time
}

type stockQuote struct {
	Symbol               string   `json:"symbol"`
	RegularMarketPrice   *float64 `json:"regularMarketPrice"`
	RegularMarketChgPerc *float64 `json:"regularMarketChangePercent"`
}

type stockResponse struct {
	QuoteResponse struct {
		Result []stockQuote `json:"result"`
	} `json:"quoteResponse"`
}

func NewStockProvider(url, symbol, name string, client *apphttp.Client) *StockProvider {
	return &StockProvider{url: url, symbol: symbol, name: name, client: client, now: time.Now}
}

func (p *StockProvider) Name() string { return "yahoo" }

func (p *StockProvider) Configured() bool { return p.url != "" && p.symbol != "" }

func (p *StockProvider) Fetch(ctx context.Context) (*models.StockIndex, error) {
	var resp stockResponse
	err := p.client.SendAndParse(ctx, &apphttp.RequestOptions{
		Method: apphttp.MethodGet,
		URL:    p.url,
		QueryParams: map[string][]string{
			"symbols": {p.symbol},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("yahoo: %w", err)
	}
	if len(resp.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("yahoo: empty quote result for %s", p.symbol)
	}

	q := resp.QuoteResponse.Result[0]
	if q.RegularMarketPrice == nil {
		return nil, fmt.Errorf("yahoo: quote for %s missing price", p.symbol)
	}

	var change *string
	if q.RegularMarketChgPerc != nil {
		s := fmt.Sprintf("%.2f%%", *q.RegularMarketChgPerc)
		change = &s
	}

	return &models.StockIndex{
		Symbol:    p.symbol,
		Name:      p.name,
		Price:     *q.RegularMarketPrice,
		Change:    change,
		Source:    "yahoo",
		FetchedAt: p.now(),
	}, nil
}
