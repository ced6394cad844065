// Package rates fetches BTC and USD/JPY cross rates from CoinGecko.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	exchangeRatesURL = "https://api.coingecko.com/api/v3/exchange_rates"
	usdJpyURL        = "https://api.coingecko.com/api/v3/simple/price?ids=usd&vs_currencies=jpy"
)

type Client struct {
	http *http.Client
}

func NewClient() *Client {
	return &Client{http: &http.Client{Timeout: 10 * time.Second}}
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// BTCRates returns the BTC→USD and BTC→JPY rates.
func (c *Client) BTCRates(ctx context.Context) (btc2usd, btc2jpy float64, err error) {
	var body struct {
		Rates map[string]struct {
			Value float64 `json:"value"`
		} `json:"rates"`
	}
	if err := c.getJSON(ctx, exchangeRatesURL, &body); err != nil {
		return 0, 0, err
	}
	usd, okUSD := body.Rates["usd"]
	jpy, okJPY := body.Rates["jpy"]
	if !okUSD || !okJPY {
		return 0, 0, fmt.Errorf("exchange_rates: missing usd/jpy entries")
	}
	return usd.Value, jpy.Value, nil
}

// USDJPY returns the USD→JPY rate.
func (c *Client) USDJPY(ctx context.Context) (float64, error) {
	var body struct {
		USD struct {
			JPY float64 `json:"jpy"`
		} `json:"usd"`
	}
	if err := c.getJSON(ctx, usdJpyURL, &body); err != nil {
		return 0, err
	}
	if body.USD.JPY == 0 {
		return 0, fmt.Errorf("simple/price: missing usd.jpy")
	}
	return body.USD.JPY, nil
}
