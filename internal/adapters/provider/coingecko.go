package provider

import (
	"context"
	"fmt"
	"net/url"
	"ryzexbot/internal/core/domain"
	"strings"
)

const coinGeckoURL = "https://api.coingecko.com"

type CoinGecko struct {
	client
}

func NewCoinGecko(opts Options) *CoinGecko {
	return &CoinGecko{client: newClient("coingecko", coinGeckoURL, opts)}
}

// Price returns the spot price of a coin by its CoinGecko id, e.g. "bitcoin" in "usd".
func (c *CoinGecko) Price(ctx context.Context, coin, currency string) (domain.Quote, error) {
	coin, currency = strings.ToLower(coin), strings.ToLower(currency)

	query := url.Values{}
	query.Set("ids", coin)
	query.Set("vs_currencies", currency)

	var res map[string]map[string]float64
	if err := c.getJSON(ctx, "/api/v3/simple/price", query, &res); err != nil {
		return domain.Quote{}, err
	}

	price, ok := res[coin][currency]
	if !ok {
		return domain.Quote{}, fmt.Errorf("%w: coingecko: no price for %s in %s", domain.ErrProviderFailed, coin,
			currency)
	}

	return domain.Quote{Symbol: coin, Currency: currency, Price: price}, nil
}
