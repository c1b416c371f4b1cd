package news

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"GoldPulse/internal/analysis"
	"GoldPulse/internal/domain/models"
	xhttp "GoldPulse/pkg/http"
	applogger "GoldPulse/pkg/logger"
	"GoldPulse/pkg/util"
)

// categories searched per run. Each query gets its own headline budget.
var categories = []string{
	"gold price",
	"federal reserve policy",
	"geopolitical risk",
	"inflation outlook",
}

var bullishKeywords = []string{
	"rally", "surge", "record high", "safe haven", "rate cut",
	"central bank buying", "risk-off", "tensions", "weak dollar",
}

var bearishKeywords = []string{
	"fall", "drop", "decline", "sell-off", "rate hike",
	"strong dollar", "risk-on", "profit taking", "easing tensions",
}

// Client searches a news provider and derives a sentiment score.
type Client struct {
	baseURL    string
	apiKey     string
	maxResults int
	client     *xhttp.Client
	logger     *applogger.Logger
}

// NewClient creates a news search client. An empty API key disables it.
func NewClient(baseURL, apiKey string, timeout time.Duration, maxResults int, l *applogger.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if maxResults <= 0 {
		maxResults = 5
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		maxResults: maxResults,
		client:     xhttp.NewClient(xhttp.WithTimeout(timeout)),
		logger:     l,
	}
}

// Enabled reports whether a credential is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != "" && c.baseURL != ""
}

type searchResult struct {
	Title       string `json:"title"`
	Snippet     string `json:"snippet"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

// Search runs the category queries and scores the combined digest.
// A single failed category is skipped, not fatal.
func (c *Client) Search(ctx context.Context, code string) (*models.NewsDigest, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("news search not configured")
	}

	digest := &models.NewsDigest{GeneratedAt: time.Now().UTC()}
	for _, category := range categories {
		var resp searchResponse
		err := c.client.GetJSON(ctx, c.baseURL+"/v1/search",
			map[string][]string{
				"q":     {category},
				"limit": {strconv.Itoa(c.maxResults)},
			},
			map[string]string{"X-Api-Key": c.apiKey}, &resp)
		if err != nil {
			if c.logger != nil {
				c.logger.Warn("news category search failed",
					applogger.String("category", category),
					applogger.Error(err),
				)
			}
			continue
		}

		for _, r := range resp.Results {
			digest.Headlines = append(digest.Headlines, models.Headline{
				Title:       r.Title,
				Snippet:     r.Snippet,
				Source:      r.Source,
				URL:         r.URL,
				Category:    category,
				PublishedAt: util.ParseTimeDefault(r.PublishedAt, time.Time{}),
			})
		}
	}

	if len(digest.Headlines) == 0 {
		return nil, fmt.Errorf("no headlines found for %s", code)
	}

	digest.Score = Score(digest.Headlines)
	return digest, nil
}

// Score derives a 0-100 sentiment score from keyword counts, centered
// at a neutral 50.
func Score(headlines []models.Headline) int {
	var bullish, bearish int
	for _, h := range headlines {
		text := strings.ToLower(h.Title + " " + h.Snippet)
		for _, kw := range bullishKeywords {
			if strings.Contains(text, kw) {
				bullish++
			}
		}
		for _, kw := range bearishKeywords {
			if strings.Contains(text, kw) {
				bearish++
			}
		}
	}
	return analysis.Clamp(50 + 5*(bullish-bearish))
}
