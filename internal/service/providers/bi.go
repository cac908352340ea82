package providers

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"EcoBoard/internal/domain/models"
	apphttp "EcoBoard/pkg/http"
	"EcoBoard/pkg/util"
)

// BIConfig carries the central-bank SOAP endpoint settings. The body
// template may contain a {date} placeholder replaced with today's date.
type BIConfig struct {
	URL          string
	SOAPAction   string
	BodyTemplate string
}

// BIProvider fetches the USD sell rate from the Bank Indonesia SOAP
// service.
type BIProvider struct {
	cfg    BIConfig
	client *apphttp.Client
	now    func() time.Time
}

func NewBIProvider(cfg BIConfig, client *apphttp.Client) *BIProvider {
	return &BIProvider{cfg: cfg, client: client, now: time.Now}
}

func (p *BIProvider) Name() string { return "BI" }

// Configured reports whether the provider should be attempted at all.
// Only a fully absent configuration means "skip": a partial one is
// treated as configured so the misconfiguration surfaces as a fetch
// error instead of a silent skip.
func (p *BIProvider) Configured() bool {
	return p.cfg.URL != "" || p.cfg.SOAPAction != "" || p.cfg.BodyTemplate != ""
}

func (p *BIProvider) Fetch(ctx context.Context) (*models.CurrencyRates, error) {
	if p.cfg.URL == "" || p.cfg.SOAPAction == "" || p.cfg.BodyTemplate == "" {
		return nil, fmt.Errorf("bi: incomplete configuration")
	}

	body := strings.ReplaceAll(p.cfg.BodyTemplate, "{date}", util.ISODate(p.now()))

	var raw []byte
	err := p.client.SendAndParse(ctx, &apphttp.RequestOptions{
		Method: apphttp.MethodPost,
		URL:    p.cfg.URL,
		Headers: map[string]string{
			"Content-Type": "text/xml; charset=utf-8",
			"SOAPAction":   p.cfg.SOAPAction,
		},
		Body: body,
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("bi: %w", err)
	}

	usd, err := extractUSDSellRate(raw)
	if err != nil {
		return nil, fmt.Errorf("bi: %w", err)
	}

	return &models.CurrencyRates{
		Rates:     map[string]float64{"USD": usd},
		Source:    "BI",
		FetchedAt: p.now(),
	}, nil
}

// extractUSDSellRate walks the SOAP response tolerantly: upstream schema
// revisions move elements around, so it tracks the surrounding currency
// code and picks the sell ("jual") value under the USD record rather
// than binding to a fixed document shape.
func extractUSDSellRate(raw []byte) (float64, error) {
	dec := xml.NewDecoder(strings.NewReader(string(raw)))

	var element string
	var currency string
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			element = strings.ToLower(t.Name.Local)
		case xml.CharData:
			text := strings.TrimSpace(string(t))
			if text == "" {
				continue
			}
			if strings.EqualFold(text, "USD") {
				currency = "USD"
				continue
			}
			if currency != "USD" {
				continue
			}
			if strings.Contains(element, "jual") || strings.Contains(element, "sell") {
				if v, err := util.ParseAmount(text); err == nil && v > 0 {
					return v, nil
				}
			}
		case xml.EndElement:
			element = ""
		}
	}
	return 0, fmt.Errorf("usd sell rate not found in response")
}
