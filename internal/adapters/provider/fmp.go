package provider

import (
	"context"
	"fmt"
	"net/url"
	"ryzexbot/internal/core/domain"
	"strings"
)

const (
	fmpURL        = "https://financialmodelingprep.com"
	fmpDemoAPIKey = "demo"
)

// FMP quotes stock prices from Financial Modeling Prep. Without a key it uses the public demo key.
type FMP struct {
	client
	apiKey string
}

func NewFMP(apiKey string, opts Options) *FMP {
	if apiKey == "" {
		apiKey = fmpDemoAPIKey
	}

	return &FMP{client: newClient("fmp", fmpURL, opts), apiKey: apiKey}
}

type fmpQuote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

// Price ignores currency; quotes are in the listing currency.
func (f *FMP) Price(ctx context.Context, symbol, _ string) (domain.Quote, error) {
	symbol = strings.ToUpper(symbol)

	var res []fmpQuote
	err := f.getJSON(ctx, "/api/v3/quote-short/"+url.PathEscape(symbol), url.Values{"apikey": {f.apiKey}}, &res)
	if err != nil {
		return domain.Quote{}, err
	}

	if len(res) == 0 {
		return domain.Quote{}, fmt.Errorf("%w: fmp: unknown symbol %s", domain.ErrProviderFailed, symbol)
	}

	return domain.Quote{Symbol: symbol, Price: res[0].Price}, nil
}
