package macro

import (
	"context"
	"fmt"
	"time"

	xhttp "GoldPulse/pkg/http"
)

// StatsSource serves the slower-moving statistical indicators.
type StatsSource interface {
	Inflation(ctx context.Context) (float64, error)
	CentralBankPurchases(ctx context.Context) (float64, error)
	Geopolitical(ctx context.Context) (float64, error)
}

// StatsClient fetches statistical indicators from the configured provider.
type StatsClient struct {
	baseURL string
	apiKey  string
	client  *xhttp.Client
}

// NewStatsClient creates a statistics provider client.
func NewStatsClient(baseURL, apiKey string, timeout time.Duration) *StatsClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &StatsClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type indicatorResponse struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
	AsOf  string  `json:"as_of,omitempty"`
}

func (c *StatsClient) indicator(ctx context.Context, name string) (float64, error) {
	if c.baseURL == "" {
		return 0, fmt.Errorf("stats base url not configured")
	}

	var resp indicatorResponse
	err := c.client.GetJSON(ctx, c.baseURL+"/v1/indicator",
		map[string][]string{"name": {name}},
		c.authHeaders(), &resp)
	if err != nil {
		return 0, fmt.Errorf("fetch indicator %s: %w", name, err)
	}
	return resp.Value, nil
}

// Inflation returns the CPI year-over-year rate in percent.
func (c *StatsClient) Inflation(ctx context.Context) (float64, error) {
	return c.indicator(ctx, "cpi_yoy")
}

// CentralBankPurchases returns quarterly purchases in tonnes.
func (c *StatsClient) CentralBankPurchases(ctx context.Context) (float64, error) {
	return c.indicator(ctx, "central_bank_gold_purchases")
}

// Geopolitical returns the geopolitical risk index, 0-100.
func (c *StatsClient) Geopolitical(ctx context.Context) (float64, error) {
	return c.indicator(ctx, "geopolitical_risk")
}

func (c *StatsClient) authHeaders() map[string]string {
	if c.apiKey == "" {
		return nil
	}
	return map[string]string{"X-Api-Key": c.apiKey}
}
