package marketdata

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"GoldPulse/internal/domain/models"
	xhttp "GoldPulse/pkg/http"
	"GoldPulse/pkg/util"
)

// Client fetches daily candles and index quotes from the configured
// market-data provider over JSON HTTP.
type Client struct {
	baseURL string
	apiKey  string
	client  *xhttp.Client
}

// NewClient creates a market data client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type candleRow struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

type candleResponse struct {
	Symbol  string      `json:"symbol"`
	Candles []candleRow `json:"candles"`
}

// DailyCandles fetches up to days daily candles for a code, oldest first.
func (c *Client) DailyCandles(ctx context.Context, code string, days int) ([]models.Candle, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("market data base url not configured")
	}

	var resp candleResponse
	err := c.client.GetJSON(ctx, c.baseURL+"/v1/candles/daily",
		map[string][]string{
			"symbol": {code},
			"days":   {strconv.Itoa(days)},
		},
		c.authHeaders(), &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch candles %s: %w", code, err)
	}
	if len(resp.Candles) == 0 {
		return nil, fmt.Errorf("no candles returned for %s", code)
	}

	candles := make([]models.Candle, 0, len(resp.Candles))
	for _, row := range resp.Candles {
		day, ok := util.ParseTime(row.Date)
		if !ok {
			continue
		}
		candles = append(candles, models.Candle{
			Day:    day,
			Code:   code,
			Open:   row.Open,
			High:   row.High,
			Low:    row.Low,
			Close:  row.Close,
			Volume: row.Volume,
		})
	}

	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Day.Before(candles[j].Day)
	})
	return candles, nil
}

// IndexQuote is a point-in-time index level with its day change.
type IndexQuote struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change_pct"`
}

// Quote fetches the latest level for an index symbol (DXY, VIX, yields).
func (c *Client) Quote(ctx context.Context, symbol string) (*IndexQuote, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("market data base url not configured")
	}

	var quote IndexQuote
	err := c.client.GetJSON(ctx, c.baseURL+"/v1/quote",
		map[string][]string{"symbol": {symbol}},
		c.authHeaders(), &quote)
	if err != nil {
		return nil, fmt.Errorf("fetch quote %s: %w", symbol, err)
	}
	return &quote, nil
}

func (c *Client) authHeaders() map[string]string {
	if c.apiKey == "" {
		return nil
	}
	return map[string]string{"X-Api-Key": c.apiKey}
}
