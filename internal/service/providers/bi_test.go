package providers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apphttp "EcoBoard/pkg/http"
	"EcoBoard/pkg/util"
)

const biSampleResponse = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <getKursResponse>
      <kurs>
        <mata_uang>EUR</mata_uang>
        <kurs_jual>17,050.00</kurs_jual>
        <kurs_beli>16,900.00</kurs_beli>
      </kurs>
      <kurs>
        <mata_uang>USD</mata_uang>
        <kurs_jual>15,650.00</kurs_jual>
        <kurs_beli>15,520.00</kurs_beli>
      </kurs>
    </getKursResponse>
  </soap:Body>
</soap:Envelope>`

func TestBIFetchesUSDSellRate(t *testing.T) {
	var gotAction string
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAction = r.Header.Get("SOAPAction")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(biSampleResponse))
	}))
	defer srv.Close()

	p := NewBIProvider(BIConfig{
		URL:          srv.URL,
		SOAPAction:   "urn:getKurs",
		BodyTemplate: `<getKurs><tanggal>{date}</tanggal></getKurs>`,
	}, apphttp.NewClient())

	got, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got.Rates["USD"] != 15650 {
		t.Errorf("USD = %v, want 15650 (sell, not buy)", got.Rates["USD"])
	}
	if got.Source != "BI" {
		t.Errorf("source = %q", got.Source)
	}
	if gotAction != "urn:getKurs" {
		t.Errorf("SOAPAction header = %q", gotAction)
	}
	if want := util.ISODate(time.Now()); !strings.Contains(gotBody, want) {
		t.Errorf("request body %q missing substituted date %q", gotBody, want)
	}
}

func TestBIFailsWhenUSDAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<r><mata_uang>EUR</mata_uang><kurs_jual>17,050</kurs_jual></r>`))
	}))
	defer srv.Close()

	p := NewBIProvider(BIConfig{URL: srv.URL, SOAPAction: "a", BodyTemplate: "b"}, apphttp.NewClient())
	if _, err := p.Fetch(context.Background()); err == nil {
		t.Fatal("want error when response has no USD sell rate")
	}
}

func TestBIConfiguredOnlyWhenSomethingSet(t *testing.T) {
	client := apphttp.NewClient()

	if NewBIProvider(BIConfig{}, client).Configured() {
		t.Error("fully absent config should not be configured")
	}
	// A partial config counts as configured so the operator sees fetch
	// errors instead of a silent skip.
	p := NewBIProvider(BIConfig{URL: "http://x"}, client)
	if !p.Configured() {
		t.Error("partial config should be configured")
	}
	if _, err := p.Fetch(context.Background()); err == nil {
		t.Error("partial config should fail the fetch")
	}
}
